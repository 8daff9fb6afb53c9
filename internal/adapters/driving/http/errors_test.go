package http

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/custodia-labs/descriptor-studio/internal/core/domain"
	"github.com/custodia-labs/descriptor-studio/internal/core/editor"
)

func TestStatusFor(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{domain.ErrNotFound, http.StatusNotFound},
		{fmt.Errorf("wrapped: %w", domain.ErrNotFound), http.StatusNotFound},
		{domain.ErrInvalidInput, http.StatusBadRequest},
		{domain.ErrUnknownField, http.StatusBadRequest},
		{domain.ErrUnknownList, http.StatusBadRequest},
		{domain.ErrIndexOutOfRange, http.StatusUnprocessableEntity},
		{domain.ErrWrongMode, http.StatusConflict},
		{domain.ErrSubmissionPending, http.StatusConflict},
		{domain.ErrSessionBusy, http.StatusConflict},
		{domain.ErrInvalidCredentials, http.StatusUnauthorized},
		{domain.ErrTokenExpired, http.StatusUnauthorized},
		{domain.ErrForbidden, http.StatusForbidden},
		{&editor.SubmitError{Err: domain.ErrInvalidJSON}, http.StatusUnprocessableEntity},
		{&editor.SubmitError{Err: fmt.Errorf("%w: name is required", domain.ErrInvalidInput)}, http.StatusUnprocessableEntity},
		{&editor.SubmitError{Err: errors.New("db down")}, http.StatusInternalServerError},
		{errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.err.Error(), func(t *testing.T) {
			if got := statusFor(tt.err); got != tt.want {
				t.Errorf("statusFor(%v) = %d, want %d", tt.err, got, tt.want)
			}
		})
	}
}
