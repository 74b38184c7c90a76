package subscribers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/forama/newsletter/internal/domain"
)

func setupHandler(repo *mockRepository) http.Handler {
	svc := NewService(repo, nil)
	h := NewHandler(svc, "https://forama.org")
	r := chi.NewRouter()
	r.Route("/api", func(r chi.Router) {
		h.RegisterRoutes(r)
	})
	return r
}

func doSubscribe(t *testing.T, handler http.Handler, body string) (*httptest.ResponseRecorder, map[string]interface{}) {
	t.Helper()

	req := httptest.NewRequest(http.MethodPost, "/api/subscribe-newsletter", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	return rec, resp
}

func TestHandler_Subscribe_Success(t *testing.T) {
	repo := newMockRepository()
	handler := setupHandler(repo)

	rec, resp := doSubscribe(t, handler, `{"email": "ana@example.com", "name": "Ana"}`)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, true, resp["success"])
	assert.Equal(t, "¡Te has suscrito exitosamente! Revisa tu email.", resp["message"])
	assert.Len(t, repo.created, 1)
}

func TestHandler_Subscribe_Reactivation(t *testing.T) {
	repo := newMockRepository()
	repo.subscribers["ana@example.com"] = &domain.Subscriber{
		Email:  "ana@example.com",
		Status: domain.SubscriberInactive,
	}
	handler := setupHandler(repo)

	rec, resp := doSubscribe(t, handler, `{"email": "ana@example.com"}`)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "¡Tu suscripción ha sido reactivada! Revisa tu email.", resp["message"])
}

func TestHandler_Subscribe_MissingEmail(t *testing.T) {
	handler := setupHandler(newMockRepository())

	tests := []struct {
		name string
		body string
	}{
		{name: "empty body", body: ``},
		{name: "empty object", body: `{}`},
		{name: "blank email", body: `{"email": "   "}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec, resp := doSubscribe(t, handler, tt.body)
			assert.Equal(t, http.StatusBadRequest, rec.Code)
			assert.Equal(t, false, resp["success"])
			assert.Equal(t, "Email es requerido", resp["error"])
		})
	}
}

func TestHandler_Subscribe_InvalidEmail(t *testing.T) {
	repo := newMockRepository()
	handler := setupHandler(repo)

	rec, resp := doSubscribe(t, handler, `{"email": "not-an-email"}`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Email inválido", resp["error"])
	// Validation failed before any store access
	assert.Empty(t, repo.created)
}

func TestHandler_Subscribe_AlreadyRegistered(t *testing.T) {
	repo := newMockRepository()
	repo.subscribers["ana@example.com"] = &domain.Subscriber{
		Email:  "ana@example.com",
		Status: domain.SubscriberActive,
	}
	handler := setupHandler(repo)

	rec, resp := doSubscribe(t, handler, `{"email": "ana@example.com"}`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, false, resp["success"])
	assert.Equal(t, "ya_registrado", resp["tipo"])
}

func TestHandler_Subscribe_Cancelled(t *testing.T) {
	repo := newMockRepository()
	repo.subscribers["ana@example.com"] = &domain.Subscriber{
		Email:  "ana@example.com",
		Status: domain.SubscriberCancelled,
	}
	handler := setupHandler(repo)

	rec, resp := doSubscribe(t, handler, `{"email": "ana@example.com"}`)

	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Equal(t, "email_cancelled", resp["tipo"])
	assert.Contains(t, resp["error"], "canceló su suscripción")
}

func TestHandler_Subscribe_RepositoryError(t *testing.T) {
	repo := newMockRepository()
	repo.getErr = assert.AnError
	handler := setupHandler(repo)

	rec, resp := doSubscribe(t, handler, `{"email": "ana@example.com"}`)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, "Error al procesar la suscripción. Inténtalo de nuevo.", resp["error"])
}

func TestClientIP(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/", nil)
	assert.Equal(t, "unknown", clientIP(req))

	req.Header.Set("X-Real-IP", "198.51.100.4")
	assert.Equal(t, "198.51.100.4", clientIP(req))

	req.Header.Set("X-Forwarded-For", "203.0.113.7")
	assert.Equal(t, "203.0.113.7", clientIP(req))
}
