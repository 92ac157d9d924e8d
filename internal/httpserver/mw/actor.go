package mw

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/MrSnakeDoc/adminmarks/internal/domain"
	"github.com/MrSnakeDoc/adminmarks/internal/httpserver/respond"
	"github.com/MrSnakeDoc/adminmarks/internal/i18n"
	"github.com/MrSnakeDoc/adminmarks/internal/logger"
)

type actorKey struct{}

// UserResolver resolves the id carried by the identity header.
type UserResolver interface {
	ResolveUser(id string) (*domain.User, error)
}

// Actor resolves the authenticated user from header and stores it in the
// request context. Missing or unknown users get 401.
func Actor(header string, users UserResolver, log logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id := strings.TrimSpace(r.Header.Get(header))
			if id == "" {
				unauthorized(w, r)
				return
			}

			user, err := users.ResolveUser(id)
			if err != nil {
				if !errors.Is(err, domain.ErrUserNotFound) {
					log.Warn("failed to resolve actor",
						logger.String("user", id),
						logger.Error(err))
				}
				unauthorized(w, r)
				return
			}

			next.ServeHTTP(w, r.WithContext(WithUser(r.Context(), user)))
		})
	}
}

func unauthorized(w http.ResponseWriter, r *http.Request) {
	pr := i18n.Printer(r.Header.Get("Accept-Language"))
	respond.Error(w, http.StatusUnauthorized, respond.CodeUnauthorized, pr.Sprintf(i18n.Unauthorized))
}

// WithUser returns ctx carrying user.
func WithUser(ctx context.Context, user *domain.User) context.Context {
	return context.WithValue(ctx, actorKey{}, user)
}

// UserFrom returns the actor stored by Actor, nil outside of it.
func UserFrom(ctx context.Context) *domain.User {
	u, _ := ctx.Value(actorKey{}).(*domain.User)
	return u
}
