package handlers

import (
	"errors"
	"net/http"

	"golang.org/x/text/message"

	"github.com/MrSnakeDoc/adminmarks/internal/domain"
	"github.com/MrSnakeDoc/adminmarks/internal/httpserver/deps"
	"github.com/MrSnakeDoc/adminmarks/internal/httpserver/respond"
	"github.com/MrSnakeDoc/adminmarks/internal/i18n"
	"github.com/MrSnakeDoc/adminmarks/internal/logger"
)

func printer(r *http.Request) *message.Printer {
	return i18n.Printer(r.Header.Get("Accept-Language"))
}

// writeError maps domain errors to the JSON error envelope.
func writeError(w http.ResponseWriter, r *http.Request, d deps.Deps, err error) {
	pr := printer(r)

	switch {
	case errors.Is(err, domain.ErrInvalidNonce):
		respond.Error(w, http.StatusForbidden, respond.CodeInvalidNonce, pr.Sprintf(i18n.InvalidRequest))
	case errors.Is(err, domain.ErrUserNotFound):
		respond.Error(w, http.StatusUnauthorized, respond.CodeUnauthorized, pr.Sprintf(i18n.Unauthorized))
	case errors.Is(err, domain.ErrForbidden):
		respond.Error(w, http.StatusForbidden, respond.CodeForbidden, pr.Sprintf(i18n.NotAllowedToEdit))
	case errors.Is(err, domain.ErrItemNotFound):
		respond.Error(w, http.StatusNotFound, respond.CodeNotFound, pr.Sprintf(i18n.ItemNotFound))
	case errors.Is(err, domain.ErrUnsupportedType):
		respond.Error(w, http.StatusNotFound, respond.CodeUnsupportedType, pr.Sprintf(i18n.UnsupportedType))
	default:
		d.Logger.Error("request failed",
			logger.String("path", r.URL.Path),
			logger.Error(err))
		respond.Error(w, http.StatusInternalServerError, respond.CodeInternal, pr.Sprintf(i18n.InternalError))
	}
}
