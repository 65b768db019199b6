// internal/app/system/uierrors/uierrors.go
//
// JSON error responses and the error logger handlers share. Every
// error body has the same shape: {"error": "...", "fields": {...}},
// with fields present only for validation failures.
package uierrors

import (
	"encoding/json"
	"net/http"

	"go.uber.org/zap"
)

// ErrorLogger records handler-level failures with request context so
// operators can trace a 5xx back to its cause.
type ErrorLogger struct {
	log *zap.Logger
}

// NewErrorLogger wraps a zap logger.
func NewErrorLogger(logger *zap.Logger) *ErrorLogger {
	return &ErrorLogger{log: logger}
}

// LogError records a failure in a named handler.
func (e *ErrorLogger) LogError(r *http.Request, where string, err error) {
	if e == nil || err == nil {
		return
	}
	e.log.Error("handler error",
		zap.String("where", where),
		zap.String("method", r.Method),
		zap.String("path", r.URL.Path),
		zap.Error(err))
}

type errorBody struct {
	Error  string            `json:"error"`
	Fields map[string]string `json:"fields,omitempty"`
}

// WriteJSON writes any payload as JSON with the given status.
func WriteJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// RenderBadRequest writes a 400 with a message and optional per-field
// validation errors.
func RenderBadRequest(w http.ResponseWriter, msg string, fields map[string]string) {
	WriteJSON(w, http.StatusBadRequest, errorBody{Error: msg, Fields: fields})
}

// RenderUnauthorized writes a 401.
func RenderUnauthorized(w http.ResponseWriter, msg string) {
	if msg == "" {
		msg = "sign in required"
	}
	WriteJSON(w, http.StatusUnauthorized, errorBody{Error: msg})
}

// RenderForbidden writes a 403.
func RenderForbidden(w http.ResponseWriter, msg string) {
	if msg == "" {
		msg = "you don't have permission to do that"
	}
	WriteJSON(w, http.StatusForbidden, errorBody{Error: msg})
}

// RenderNotFound writes a 404.
func RenderNotFound(w http.ResponseWriter, msg string) {
	if msg == "" {
		msg = "not found"
	}
	WriteJSON(w, http.StatusNotFound, errorBody{Error: msg})
}

// RenderConflict writes a 409.
func RenderConflict(w http.ResponseWriter, msg string) {
	WriteJSON(w, http.StatusConflict, errorBody{Error: msg})
}

// RenderTooManyRequests writes a 429.
func RenderTooManyRequests(w http.ResponseWriter, msg string) {
	if msg == "" {
		msg = "too many requests"
	}
	WriteJSON(w, http.StatusTooManyRequests, errorBody{Error: msg})
}

// RenderServerError writes a 500. The message is for the client; the
// underlying error belongs in the ErrorLogger, not the response.
func RenderServerError(w http.ResponseWriter, msg string) {
	if msg == "" {
		msg = "something went wrong"
	}
	WriteJSON(w, http.StatusInternalServerError, errorBody{Error: msg})
}
