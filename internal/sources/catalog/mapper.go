package catalog

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/MrSnakeDoc/adminmarks/internal/domain"
)

// SourceCatalog tags items discovered from the catalog file
const SourceCatalog = "catalog"

// Catalog is the validated, domain-level content of a catalog file
type Catalog struct {
	Types []domain.ContentType
	Items []*domain.ContentItem
	Users []*domain.User

	// Skipped lists entries rejected during mapping, one message each
	Skipped []string
}

// Mapper converts catalog config to domain entities
type Mapper struct {
	validate *validator.Validate
	now      func() time.Time
}

// NewMapper creates a new catalog mapper
func NewMapper() *Mapper {
	return &Mapper{
		validate: validator.New(),
		now:      time.Now,
	}
}

// Map validates every entry and converts the valid ones. Invalid entries are
// skipped and reported in Catalog.Skipped; items of unregistered types and
// duplicate IDs are skipped too. A catalog without any registered type is an
// error.
func (m *Mapper) Map(config *Config) (*Catalog, error) {
	if config == nil {
		return nil, errors.New("nil catalog config")
	}

	out := &Catalog{}
	now := m.now()

	registered := make(map[string]bool, len(config.ContentTypes))
	for i, entry := range config.ContentTypes {
		if err := m.validate.Struct(entry); err != nil {
			out.skip("content_types[%d]: %s", i, describe(err))
			continue
		}
		if registered[entry.Name] {
			out.skip("content_types[%d]: duplicate name %q", i, entry.Name)
			continue
		}
		registered[entry.Name] = true
		out.Types = append(out.Types, domain.ContentType{
			Name:          entry.Name,
			Label:         strings.TrimSpace(entry.Label),
			SingularLabel: strings.TrimSpace(entry.SingularLabel),
		})
	}

	if len(out.Types) == 0 {
		return nil, fmt.Errorf("no valid content types found in catalog")
	}

	seen := make(map[int64]bool, len(config.Items))
	for i, entry := range config.Items {
		if err := m.validate.Struct(entry); err != nil {
			out.skip("items[%d]: %s", i, describe(err))
			continue
		}
		if !registered[entry.Type] {
			out.skip("items[%d]: unregistered content type %q", i, entry.Type)
			continue
		}
		if seen[entry.ID] {
			out.skip("items[%d]: duplicate id %d", i, entry.ID)
			continue
		}
		seen[entry.ID] = true

		status := entry.Status
		if status == "" {
			status = domain.StatusPublish
		}

		out.Items = append(out.Items, &domain.ContentItem{
			ID:        entry.ID,
			Type:      entry.Type,
			Title:     entry.Title,
			Status:    status,
			AuthorID:  entry.Author,
			Permalink: entry.Permalink,
			Sticky:    entry.Sticky,
			Sources:   []string{SourceCatalog},
			CreatedAt: now,
			UpdatedAt: now,
		})
	}

	users := make(map[string]bool, len(config.Users))
	for i, entry := range config.Users {
		if err := m.validate.Struct(entry); err != nil {
			out.skip("users[%d]: %s", i, describe(err))
			continue
		}
		if users[entry.ID] {
			out.skip("users[%d]: duplicate id %q", i, entry.ID)
			continue
		}
		users[entry.ID] = true

		name := entry.DisplayName
		if name == "" {
			name = entry.ID
		}
		out.Users = append(out.Users, &domain.User{
			ID:            entry.ID,
			DisplayName:   name,
			Role:          entry.Role,
			EditableTypes: entry.EditableTypes,
			Disabled:      entry.Disabled,
		})
	}

	return out, nil
}

func (c *Catalog) skip(format string, args ...any) {
	c.Skipped = append(c.Skipped, fmt.Sprintf(format, args...))
}

// describe flattens validator errors into "field tag" pairs.
func describe(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err.Error()
	}
	parts := make([]string, 0, len(verrs))
	for _, e := range verrs {
		if e.Param() != "" {
			parts = append(parts, fmt.Sprintf("%s failed %s=%s", e.Field(), e.Tag(), e.Param()))
		} else {
			parts = append(parts, fmt.Sprintf("%s failed %s", e.Field(), e.Tag()))
		}
	}
	return strings.Join(parts, ", ")
}
