package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/custodia-labs/descriptor-studio/internal/core/domain"
	"github.com/custodia-labs/descriptor-studio/internal/core/editor"
)

// ErrorResponse represents an API error response
// @Description API error response
type ErrorResponse struct {
	Error string `json:"error" example:"invalid request body"`
}

// statusFor maps a service error to its HTTP status
func statusFor(err error) int {
	var submitErr *editor.SubmitError
	if errors.As(err, &submitErr) {
		if errors.Is(err, domain.ErrInvalidJSON) || errors.Is(err, domain.ErrInvalidInput) {
			return http.StatusUnprocessableEntity
		}
	}

	switch {
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrInvalidInput),
		errors.Is(err, domain.ErrInvalidJSON),
		errors.Is(err, domain.ErrUnknownField),
		errors.Is(err, domain.ErrUnknownList):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrIndexOutOfRange):
		return http.StatusUnprocessableEntity
	case errors.Is(err, domain.ErrWrongMode),
		errors.Is(err, domain.ErrSubmissionPending),
		errors.Is(err, domain.ErrSessionBusy):
		return http.StatusConflict
	case errors.Is(err, domain.ErrInvalidCredentials),
		errors.Is(err, domain.ErrUnauthorized),
		errors.Is(err, domain.ErrTokenExpired),
		errors.Is(err, domain.ErrTokenInvalid):
		return http.StatusUnauthorized
	case errors.Is(err, domain.ErrForbidden):
		return http.StatusForbidden
	}
	return http.StatusInternalServerError
}

// writeServiceError writes err with its mapped status. Server errors are
// logged and replaced by fallback so internals do not leak.
func (s *Server) writeServiceError(w http.ResponseWriter, r *http.Request, err error, fallback string) {
	status := statusFor(err)
	if status == http.StatusInternalServerError {
		s.logger.ErrorContext(r.Context(), fallback, "error", err, "path", r.URL.Path)
		writeError(w, status, fallback)
		return
	}
	writeError(w, status, err.Error())
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, ErrorResponse{Error: message})
}

// decodeJSON reads a JSON request body into v
func decodeJSON(w http.ResponseWriter, r *http.Request, v any) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, 1<<20))
	return dec.Decode(v)
}
