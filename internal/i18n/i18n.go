// Package i18n holds the user-facing strings of the admin surfaces and picks
// a printer from the request's Accept-Language.
package i18n

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/message/catalog"
)

// Message keys. The English text doubles as the key.
const (
	Bookmarks        = "Bookmarks"
	BookmarksCount   = "Bookmarks (%d)"
	MyBookmarks      = "My Bookmarks"
	NoBookmarks      = "You have no saved bookmarks"
	InvalidRequest   = "Invalid Admin Bookmark request!"
	Edit             = "Edit"
	View             = "View"
	AddBookmark      = "Bookmark"
	RemoveBookmark   = "Remove bookmark"
	BookmarkTitle    = "Bookmark Title"
	ViewAll          = "All (%d)"
	ViewPublished    = "Published (%d)"
	ViewDrafts       = "Drafts (%d)"
	ViewPending      = "Pending (%d)"
	ViewPrivate      = "Private (%d)"
	Unauthorized     = "You are not allowed to access this page."
	NotAllowedToEdit = "You are not allowed to edit this item."
	UnsupportedType  = "This content type does not support bookmarks."
	ItemNotFound     = "Content item not found."
	TooManyRequests  = "Too many requests, slow down."
	InternalError    = "Something went wrong."
)

var french = map[string]string{
	Bookmarks:        "Favoris",
	BookmarksCount:   "Favoris (%d)",
	MyBookmarks:      "Mes favoris",
	NoBookmarks:      "Vous n'avez aucun favori enregistré",
	InvalidRequest:   "Requête de favori invalide !",
	Edit:             "Modifier",
	View:             "Voir",
	AddBookmark:      "Ajouter aux favoris",
	RemoveBookmark:   "Retirer des favoris",
	BookmarkTitle:    "Titre du favori",
	ViewAll:          "Tous (%d)",
	ViewPublished:    "Publiés (%d)",
	ViewDrafts:       "Brouillons (%d)",
	ViewPending:      "En attente (%d)",
	ViewPrivate:      "Privés (%d)",
	Unauthorized:     "Vous n'êtes pas autorisé à accéder à cette page.",
	NotAllowedToEdit: "Vous n'êtes pas autorisé à modifier cet élément.",
	UnsupportedType:  "Ce type de contenu ne prend pas en charge les favoris.",
	ItemNotFound:     "Élément introuvable.",
	TooManyRequests:  "Trop de requêtes, ralentissez.",
	InternalError:    "Une erreur est survenue.",
}

var (
	supported = []language.Tag{language.English, language.French}
	matcher   = language.NewMatcher(supported)
	cat       = build()
)

func build() catalog.Catalog {
	b := catalog.NewBuilder(catalog.Fallback(language.English))
	for key, fr := range french {
		_ = b.SetString(language.English, key, key)
		_ = b.SetString(language.French, key, fr)
	}
	return b
}

// Printer returns a printer for the best match of an Accept-Language header.
// Unknown or empty headers fall back to English.
func Printer(acceptLanguage string) *message.Printer {
	tags, _, _ := language.ParseAcceptLanguage(acceptLanguage)
	tag, _, _ := matcher.Match(tags...)
	base, _ := tag.Base()
	return message.NewPrinter(language.Make(base.String()), message.Catalog(cat))
}

// English is the default printer used outside request scope.
func English() *message.Printer {
	return message.NewPrinter(language.English, message.Catalog(cat))
}
