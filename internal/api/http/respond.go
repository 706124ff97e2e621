package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"roofbox-backend/internal/domain"
	"roofbox-backend/internal/logger"
)

const (
	MsgGenericError       = "Ein unerwarteter Fehler ist aufgetreten."
	MsgSubmissionFailed   = "Ihre Anfrage konnte nicht gesendet werden. Bitte versuchen Sie es erneut."
	MsgNotificationFailed = "Failed to process notification"
	MsgInvalidRequestBody = "Invalid request body"
	MsgNotFound           = "Nicht gefunden."
	MsgUnauthorized       = "Bitte melden Sie sich an."
	MsgForbidden          = "Keine Berechtigung."
	MsgInvalidCredentials = "E-Mail oder Passwort ist falsch."
	MsgEmailTaken         = "Diese E-Mail-Adresse ist bereits registriert."
	MsgTooManyRequests    = "Zu viele Anfragen. Bitte versuchen Sie es später erneut."
)

const maxJSONBodyBytes = 64 << 10

type errorResponse struct {
	Error string `json:"error"`
}

type listResponse[T any] struct {
	Items []T   `json:"items"`
	Total int32 `json:"total"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if v == nil {
		return
	}
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Error("Failed to encode response", "error", err)
	}
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, errorResponse{Error: message})
}

// decodeJSON reads a bounded JSON body. Unknown fields are ignored.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxJSONBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		logger.Debug("Rejected request body", "path", r.URL.Path, "error", err)
		writeError(w, http.StatusBadRequest, MsgInvalidRequestBody)
		return false
	}
	return true
}

// writeServiceError maps domain errors to status codes. Anything unexpected
// becomes a 500 carrying only the generic message; the detail is logged.
func writeServiceError(w http.ResponseWriter, r *http.Request, err error, generic string) {
	if ve, ok := domain.IsValidationError(err); ok {
		writeError(w, http.StatusBadRequest, ve.Message)
		return
	}

	switch {
	case errors.Is(err, domain.ErrNotFound):
		writeError(w, http.StatusNotFound, MsgNotFound)
	case errors.Is(err, domain.ErrInvalidCredentials):
		writeError(w, http.StatusUnauthorized, MsgInvalidCredentials)
	case errors.Is(err, domain.ErrUnauthorized):
		writeError(w, http.StatusUnauthorized, MsgUnauthorized)
	case errors.Is(err, domain.ErrForbidden):
		writeError(w, http.StatusForbidden, MsgForbidden)
	case errors.Is(err, domain.ErrEmailTaken):
		writeError(w, http.StatusConflict, MsgEmailTaken)
	default:
		logger.ErrorContext(r.Context(), "Request failed", "method", r.Method, "path", r.URL.Path, "error", err)
		writeError(w, http.StatusInternalServerError, generic)
	}
}
