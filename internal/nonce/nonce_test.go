package nonce

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func newClockedIssuer(start time.Time) (*Issuer, *time.Time) {
	now := start
	iss := NewIssuer("s3cret", time.Hour)
	iss.now = func() time.Time { return now }
	return iss, &now
}

func TestIssuer_RoundTrip(t *testing.T) {
	iss, _ := newClockedIssuer(time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC))

	tok := iss.Create("admin-bookmarks", "alice")
	assert.Len(t, tok, tokenLen)
	assert.True(t, iss.Verify(tok, "admin-bookmarks", "alice"))
}

func TestIssuer_Rejects(t *testing.T) {
	iss, _ := newClockedIssuer(time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC))
	tok := iss.Create("admin-bookmarks", "alice")

	tests := []struct {
		name   string
		token  string
		action string
		user   string
	}{
		{"empty token", "", "admin-bookmarks", "alice"},
		{"other action", tok, "admin_bookmarks_quick_edit", "alice"},
		{"other user", tok, "admin-bookmarks", "bob"},
		{"garbage", "not-a-token", "admin-bookmarks", "alice"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.False(t, iss.Verify(tt.token, tt.action, tt.user))
		})
	}
}

func TestIssuer_OtherSecret(t *testing.T) {
	iss, _ := newClockedIssuer(time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC))
	other := NewIssuer("different", time.Hour)
	other.now = iss.now

	assert.False(t, other.Verify(iss.Create("a", "u"), "a", "u"))
}

func TestIssuer_Expiry(t *testing.T) {
	start := time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC)
	iss, now := newClockedIssuer(start)
	tok := iss.Create("admin-bookmarks", "alice")

	// Next tick still verifies
	*now = start.Add(30 * time.Minute)
	assert.True(t, iss.Verify(tok, "admin-bookmarks", "alice"))

	// Two ticks later it is expired
	*now = start.Add(60 * time.Minute)
	assert.False(t, iss.Verify(tok, "admin-bookmarks", "alice"))
}
