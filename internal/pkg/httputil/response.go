// Package httputil provides HTTP response helpers and shared middleware.
//
// All API responses use the site's envelope: {"success": bool, "message": ...}
// on success, {"success": false, "error": ..., "tipo": ...} on failure. The
// "tipo" discriminator lets the frontend branch on business-rule rejections.
package httputil

import (
	"encoding/json"
	"log/slog"
	"net/http"
)

// Envelope is the JSON response envelope used by every API endpoint.
type Envelope struct {
	Success bool        `json:"success"`
	Message string      `json:"message,omitempty"`
	Error   string      `json:"error,omitempty"`
	Tipo    string      `json:"tipo,omitempty"`
	Stats   interface{} `json:"stats,omitempty"`
}

// JSON writes an arbitrary JSON response.
func JSON(w http.ResponseWriter, statusCode int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)

	if data != nil {
		if err := json.NewEncoder(w).Encode(data); err != nil {
			slog.Error("failed to encode response", "error", err)
		}
	}
}

// Text writes a plain text response.
func Text(w http.ResponseWriter, statusCode int, text string) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(statusCode)
	if _, err := w.Write([]byte(text)); err != nil {
		slog.Error("failed to write response", "error", err)
	}
}

// Success writes a success envelope with a user-facing message.
func Success(w http.ResponseWriter, status int, message string) {
	JSON(w, status, Envelope{Success: true, Message: message})
}

// SuccessStats writes a success envelope carrying dispatch statistics.
func SuccessStats(w http.ResponseWriter, status int, message string, stats interface{}) {
	JSON(w, status, Envelope{Success: true, Message: message, Stats: stats})
}

// Fail writes a failure envelope.
func Fail(w http.ResponseWriter, status int, message string) {
	JSON(w, status, Envelope{Success: false, Error: message})
}

// FailTipo writes a failure envelope with a machine-readable discriminator.
func FailTipo(w http.ResponseWriter, status int, message, tipo string) {
	JSON(w, status, Envelope{Success: false, Error: message, Tipo: tipo})
}
