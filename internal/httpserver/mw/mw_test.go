package mw

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/MrSnakeDoc/adminmarks/internal/bookmarks"
	"github.com/MrSnakeDoc/adminmarks/internal/domain"
	"github.com/MrSnakeDoc/adminmarks/internal/logger"
)

type users map[string]*domain.User

func (u users) ResolveUser(id string) (*domain.User, error) {
	if user, ok := u[id]; ok {
		return user, nil
	}
	return nil, domain.ErrUserNotFound
}

func ok(w http.ResponseWriter, _ *http.Request) { w.WriteHeader(http.StatusNoContent) }

func TestActor(t *testing.T) {
	var seen *domain.User
	h := Actor("X-Remote-User", users{"alice": {ID: "alice"}}, logger.NewNop())(
		http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			seen = UserFrom(r.Context())
			ok(w, r)
		}))

	tests := []struct {
		name   string
		header string
		want   int
	}{
		{"missing", "", http.StatusUnauthorized},
		{"unknown", "mallory", http.StatusUnauthorized},
		{"known", "alice", http.StatusNoContent},
		{"padded", "  alice ", http.StatusNoContent},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			seen = nil
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.header != "" {
				req.Header.Set("X-Remote-User", tt.header)
			}
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, req)

			assert.Equal(t, tt.want, rec.Code)
			if tt.want == http.StatusNoContent {
				if assert.NotNil(t, seen) {
					assert.Equal(t, "alice", seen.ID)
				}
			} else {
				assert.Nil(t, seen)
				assert.Contains(t, rec.Body.String(), `"UNAUTHORIZED"`)
			}
		})
	}
}

func TestRateLimitPerKey(t *testing.T) {
	var rejected []string
	h := RateLimit(RateLimitConfig{
		Burst:        2,
		RefillPerMin: 1,
		Key:          func(r *http.Request) string { return r.Header.Get("X-Key") },
		OnReject:     func(key string) { rejected = append(rejected, key) },
	})(http.HandlerFunc(ok))

	call := func(key string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodPost, "/", nil)
		req.Header.Set("X-Key", key)
		req.Header.Set("Accept-Language", "fr-FR,fr;q=0.9")
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		return rec
	}

	assert.Equal(t, http.StatusNoContent, call("a").Code)
	assert.Equal(t, http.StatusNoContent, call("a").Code)

	rec := call("a")
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.Equal(t, "2", rec.Header().Get("X-RateLimit-Limit"))
	assert.Equal(t, "0", rec.Header().Get("X-RateLimit-Remaining"))
	assert.NotEmpty(t, rec.Header().Get("Retry-After"))
	assert.Contains(t, rec.Body.String(), `"RATE_LIMITED"`)
	assert.Contains(t, rec.Body.String(), "Trop de requêtes, ralentissez.")

	assert.Equal(t, http.StatusNoContent, call("b").Code)
	assert.Equal(t, []string{"a"}, rejected)
}

func TestRequestCache(t *testing.T) {
	var cache *bookmarks.RequestCache
	RequestCache()(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		cache = bookmarks.CacheFrom(r.Context())
	})).ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))

	assert.NotNil(t, cache)
}

func TestCORS(t *testing.T) {
	t.Run("disabled", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Origin", "https://admin.example.com")
		rec := httptest.NewRecorder()
		CORS(nil, "X-Remote-User")(http.HandlerFunc(ok)).ServeHTTP(rec, req)

		assert.Empty(t, rec.Header().Get("Access-Control-Allow-Origin"))
	})

	t.Run("preflight", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodOptions, "/admin/ajax", nil)
		req.Header.Set("Origin", "https://admin.example.com")
		req.Header.Set("Access-Control-Request-Method", http.MethodPost)
		req.Header.Set("Access-Control-Request-Headers", "X-Remote-User")
		rec := httptest.NewRecorder()
		CORS([]string{"https://admin.example.com"}, "X-Remote-User")(http.HandlerFunc(ok)).ServeHTTP(rec, req)

		assert.Equal(t, "https://admin.example.com", rec.Header().Get("Access-Control-Allow-Origin"))
	})
}

func TestMatchHost(t *testing.T) {
	tests := []struct {
		host, pattern string
		want          bool
	}{
		{"admin.example.com", "admin.example.com", true},
		{"admin.example.com", "*.example.com", true},
		{"example.com", "*.example.com", false},
		{"admin.example.org", "*.example.com", false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, matchHost(tt.host, tt.pattern), "%s vs %s", tt.host, tt.pattern)
	}
}
