package client

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrSnakeDoc/adminmarks/internal/domain"
)

func TestNewValidates(t *testing.T) {
	_, err := New(Options{BaseURL: "ftp://x", User: "alice"})
	assert.Error(t, err)

	_, err = New(Options{BaseURL: "http://localhost"})
	assert.Error(t, err)

	c, err := New(Options{BaseURL: "http://localhost/", User: "alice", AdminBase: "admin/"})
	require.NoError(t, err)
	assert.Equal(t, "/admin", c.opts.AdminBase)
	assert.Equal(t, "X-Remote-User", c.opts.UserHeader)
}

func TestBootstrap(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/admin/bootstrap", r.URL.Path)
		assert.Equal(t, "alice", r.Header.Get("X-Remote-User"))
		assert.Equal(t, "content-post", r.URL.Query().Get("screen"))
		assert.Equal(t, "42", r.URL.Query().Get("current"))
		_ = json.NewEncoder(w).Encode(domain.ClientConfig{
			Nonce:   "abc",
			Label:   "Bookmarks",
			Anchors: []string{"content-post"},
		})
	}))
	defer srv.Close()

	c, err := New(Options{BaseURL: srv.URL, User: "alice"})
	require.NoError(t, err)

	cfg, err := c.Bootstrap(context.Background(), "content-post", 42)
	require.NoError(t, err)
	assert.Equal(t, "abc", cfg.Nonce)
	assert.Equal(t, []string{"content-post"}, cfg.Anchors)
}

func TestToggle(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/admin/ajax", r.URL.Path)
		assert.NoError(t, r.ParseForm())
		assert.Equal(t, domain.ToggleAction, r.PostFormValue("action"))
		assert.Equal(t, "42", r.PostFormValue("post_id"))
		assert.Equal(t, "tok", r.PostFormValue("nonce"))
		_ = json.NewEncoder(w).Encode(domain.ToggleResult{ItemID: 42, Removed: true, GroupHandle: "content-post"})
	}))
	defer srv.Close()

	c, err := New(Options{BaseURL: srv.URL, User: "alice"})
	require.NoError(t, err)

	res, err := c.Toggle(context.Background(), "tok", 42)
	require.NoError(t, err)
	assert.True(t, res.Removed)
	assert.Equal(t, "content-post", res.GroupHandle)
}

func TestToggleErrorEnvelope(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		_, _ = w.Write([]byte(`{"error":{"code":"INVALID_NONCE","message":"Invalid Admin Bookmark request!"}}`))
	}))
	defer srv.Close()

	c, err := New(Options{BaseURL: srv.URL, User: "alice"})
	require.NoError(t, err)

	_, err = c.Toggle(context.Background(), "bad", 42)
	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusForbidden, apiErr.Status)
	assert.Equal(t, "INVALID_NONCE", apiErr.Code)
}
