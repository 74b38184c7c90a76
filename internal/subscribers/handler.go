package subscribers

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/forama/newsletter/internal/pkg/httputil"
	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
)

const subscribeFallback = "Error al procesar la suscripción. Inténtalo de nuevo."

var errorMappings = []httputil.ErrorMapping{
	{
		Error:   ErrAlreadySubscribed,
		Status:  http.StatusBadRequest,
		Message: "Este correo electrónico ya está registrado en nuestro boletín.",
		Tipo:    "ya_registrado",
	},
	{
		Error:   ErrSubscriptionCancelled,
		Status:  http.StatusForbidden,
		Message: "Este correo electrónico canceló su suscripción anteriormente. La función de re-suscripción estará disponible próximamente.",
		Tipo:    "email_cancelled",
	},
}

// Handler handles HTTP requests for the subscribers module.
type Handler struct {
	service   *Service
	baseURL   string // overrides the request origin when set
	validator *validator.Validate
}

// NewHandler creates a new subscribers handler.
func NewHandler(service *Service, baseURL string) *Handler {
	return &Handler{
		service:   service,
		baseURL:   baseURL,
		validator: validator.New(),
	}
}

// RegisterRoutes registers subscription routes.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Post("/subscribe-newsletter", h.Subscribe)
}

// SubscribeRequest represents the subscribe request body.
type SubscribeRequest struct {
	Email string  `json:"email" validate:"required,email"`
	Name  *string `json:"name"`
}

// Subscribe handles POST /api/subscribe-newsletter.
func (h *Handler) Subscribe(w http.ResponseWriter, r *http.Request) {
	var req SubscribeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.Fail(w, http.StatusBadRequest, "Email es requerido")
		return
	}

	// Validation happens before any store access.
	email := strings.TrimSpace(req.Email)
	if email == "" {
		httputil.Fail(w, http.StatusBadRequest, "Email es requerido")
		return
	}
	if err := h.validator.Var(email, "email"); err != nil {
		httputil.Fail(w, http.StatusBadRequest, "Email inválido")
		return
	}

	result, err := h.service.Subscribe(r.Context(), SubscribeInput{
		Email:     email,
		Name:      req.Name,
		SourceIP:  clientIP(r),
		UserAgent: userAgent(r),
		Origin:    h.origin(r),
	})
	if err != nil {
		httputil.HandleError(r.Context(), w, err, errorMappings, subscribeFallback)
		return
	}

	message := "¡Te has suscrito exitosamente! Revisa tu email."
	if result.Outcome == OutcomeReactivated {
		message = "¡Tu suscripción ha sido reactivada! Revisa tu email."
	}
	httputil.Success(w, http.StatusOK, message)
}

func (h *Handler) origin(r *http.Request) string {
	if h.baseURL != "" {
		return h.baseURL
	}
	return httputil.RequestOrigin(r)
}

// clientIP resolves the subscriber's address for the audit columns.
func clientIP(r *http.Request) string {
	if ip := r.Header.Get("X-Forwarded-For"); ip != "" {
		return ip
	}
	if ip := r.Header.Get("X-Real-IP"); ip != "" {
		return ip
	}
	return "unknown"
}

func userAgent(r *http.Request) string {
	if ua := r.UserAgent(); ua != "" {
		return ua
	}
	return "unknown"
}
