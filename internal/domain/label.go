package domain

import (
	"strconv"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// DefaultUntitledPattern labels items with neither a custom nor an own title.
const DefaultUntitledPattern = "ID: %s"

var titleCaser = cases.Title(language.English)

// HumanizeTypeName turns a machine name into a display label.
// Example: "book_review" -> "Book Review", "faq-entry" -> "Faq Entry"
func HumanizeTypeName(name string) string {
	name = strings.NewReplacer("-", " ", "_", " ").Replace(name)
	name = strings.Join(strings.Fields(name), " ")
	return titleCaser.String(name)
}

// UntitledLabel substitutes id into pattern. Supported placeholders are %s,
// %d and %1$s; a pattern without one gets the id appended.
func UntitledLabel(pattern string, id int64) string {
	if pattern == "" {
		pattern = DefaultUntitledPattern
	}
	sid := strconv.FormatInt(id, 10)
	for _, ph := range []string{"%1$s", "%s", "%d"} {
		if strings.Contains(pattern, ph) {
			return strings.Replace(pattern, ph, sid, 1)
		}
	}
	return pattern + " " + sid
}

// ResolveLabel picks the label shown for a bookmarked item:
// custom title, then the item's own title, then the untitled pattern.
func ResolveLabel(customTitle, title string, id int64, untitledPattern string) string {
	if s := strings.TrimSpace(customTitle); s != "" {
		return s
	}
	if s := strings.TrimSpace(title); s != "" {
		return s
	}
	return UntitledLabel(untitledPattern, id)
}
