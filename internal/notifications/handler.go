package notifications

import (
	"crypto/subtle"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/forama/newsletter/internal/content"
	"github.com/forama/newsletter/internal/pkg/httputil"
)

const notifyFallback = "Error al enviar notificaciones"

var errorMappings = []httputil.ErrorMapping{
	{
		Error:   content.ErrPublicationNotFound,
		Status:  http.StatusNotFound,
		Message: "Publicación no encontrada",
	},
}

// Handler handles HTTP requests for the notifications module.
type Handler struct {
	service    *Service
	adminToken string
	baseURL    string // overrides the request origin when set
}

// NewHandler creates a new notifications handler.
func NewHandler(service *Service, adminToken, baseURL string) *Handler {
	return &Handler{
		service:    service,
		adminToken: adminToken,
		baseURL:    baseURL,
	}
}

// RegisterRoutes registers notification routes.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Post("/notify-subscribers", h.Notify)
}

// NotifyRequest represents the notify request body.
type NotifyRequest struct {
	PublicacionID int64  `json:"publicacion_id"`
	AdminToken    string `json:"admin_token"`
}

// Notify handles POST /api/notify-subscribers. The admin token is checked in
// constant time before any lookup so an attacker learns nothing about the
// catalog from a rejected request.
func (h *Handler) Notify(w http.ResponseWriter, r *http.Request) {
	var req NotifyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.Fail(w, http.StatusBadRequest, "Solicitud inválida")
		return
	}

	if subtle.ConstantTimeCompare([]byte(req.AdminToken), []byte(h.adminToken)) != 1 {
		httputil.Fail(w, http.StatusUnauthorized, "No autorizado")
		return
	}

	if req.PublicacionID <= 0 {
		httputil.Fail(w, http.StatusBadRequest, "publicacion_id es requerido")
		return
	}

	stats, err := h.service.NotifyPublication(r.Context(), req.PublicacionID, h.origin(r))
	if err != nil {
		httputil.HandleError(r.Context(), w, err, errorMappings, notifyFallback)
		return
	}

	message := "Notificaciones enviadas exitosamente"
	if stats.Total == 0 {
		message = "No hay suscriptores activos"
	}
	httputil.SuccessStats(w, http.StatusOK, message, stats)
}

func (h *Handler) origin(r *http.Request) string {
	if h.baseURL != "" {
		return h.baseURL
	}
	return httputil.RequestOrigin(r)
}
