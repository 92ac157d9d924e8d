package catalog

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrSnakeDoc/adminmarks/internal/domain"
)

func TestMapperMap(t *testing.T) {
	fixed := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	m := NewMapper()
	m.now = func() time.Time { return fixed }

	cat, err := m.Map(&Config{
		ContentTypes: []TypeEntry{{Name: "post", Label: " Posts "}},
		Items: []ItemEntry{
			{ID: 42, Type: "post", Title: "Hello", Author: "alice"},
		},
		Users: []UserEntry{{ID: "alice", Role: domain.RoleAuthor}},
	})
	require.NoError(t, err)
	assert.Empty(t, cat.Skipped)

	require.Len(t, cat.Types, 1)
	assert.Equal(t, "Posts", cat.Types[0].Label)

	require.Len(t, cat.Items, 1)
	item := cat.Items[0]
	assert.Equal(t, domain.StatusPublish, item.Status, "status defaults to publish")
	assert.Equal(t, []string{SourceCatalog}, item.Sources)
	assert.Equal(t, fixed, item.CreatedAt)

	require.Len(t, cat.Users, 1)
	assert.Equal(t, "alice", cat.Users[0].DisplayName, "display name defaults to id")
}

func TestMapperSkipsInvalidEntries(t *testing.T) {
	cat, err := NewMapper().Map(&Config{
		ContentTypes: []TypeEntry{{Name: "post"}, {Name: ""}, {Name: "post"}},
		Items: []ItemEntry{
			{ID: 0, Type: "post"},
			{ID: 1, Type: "unknown"},
			{ID: 2, Type: "post", Status: "archived"},
			{ID: 3, Type: "post"},
			{ID: 3, Type: "post"},
		},
		Users: []UserEntry{
			{ID: "bob", Role: "superuser"},
			{ID: "carol", Role: domain.RoleEditor},
		},
	})
	require.NoError(t, err)

	assert.Len(t, cat.Types, 1)
	require.Len(t, cat.Items, 1)
	assert.EqualValues(t, 3, cat.Items[0].ID)
	require.Len(t, cat.Users, 1)
	assert.Equal(t, "carol", cat.Users[0].ID)

	// two bad types, four bad items, one bad user
	assert.Len(t, cat.Skipped, 7)
}

func TestMapperRequiresTypes(t *testing.T) {
	_, err := NewMapper().Map(&Config{Items: []ItemEntry{{ID: 1, Type: "post"}}})
	assert.Error(t, err)

	_, err = NewMapper().Map(nil)
	assert.Error(t, err)
}
