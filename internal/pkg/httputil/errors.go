package httputil

import (
	"context"
	"errors"
	"net/http"

	"github.com/forama/newsletter/internal/pkg/ctxlog"
)

// ErrorMapping defines how a domain error maps to an HTTP response.
type ErrorMapping struct {
	Error   error
	Status  int
	Message string // if empty, uses err.Error()
	Tipo    string // optional discriminator for the frontend
}

// HandleError maps a domain error to an HTTP response using provided mappings.
// Unmapped errors are logged and surfaced as a 500 with the given fallback
// message so that internal detail never leaks to the caller.
func HandleError(ctx context.Context, w http.ResponseWriter, err error, mappings []ErrorMapping, fallback string) {
	for _, m := range mappings {
		if errors.Is(err, m.Error) {
			msg := m.Message
			if msg == "" {
				msg = err.Error()
			}
			if m.Tipo != "" {
				FailTipo(w, m.Status, msg, m.Tipo)
			} else {
				Fail(w, m.Status, msg)
			}
			return
		}
	}
	ctxlog.FromContext(ctx).Error("internal error", "error", err)
	if fallback == "" {
		fallback = "Error interno del servidor"
	}
	Fail(w, http.StatusInternalServerError, fallback)
}
