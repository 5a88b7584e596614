package apperror

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGetAppError(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		wantCode int
	}{
		{"validation", NewFieldValidationError("amount", "must be positive"), http.StatusUnprocessableEntity},
		{"not found", NewNotFoundError("Installment"), http.StatusNotFound},
		{"wrapped", fmt.Errorf("service: %w", NewBadRequestError("bad")), http.StatusBadRequest},
		{"plain error", errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.wantCode, GetAppError(tt.err).Code)
		})
	}
}

func TestPersistenceErrorUnwrap(t *testing.T) {
	cause := errors.New("connection reset")
	err := NewPersistenceError("create sale", cause)

	assert.ErrorIs(t, err, cause)
	assert.Equal(t, http.StatusInternalServerError, err.Code)
	assert.Equal(t, "Failed to create sale", err.Message)
	assert.Contains(t, err.Error(), "connection reset")
}

func TestKindHelpers(t *testing.T) {
	assert.True(t, IsValidation(NewValidationError(nil)))
	assert.False(t, IsValidation(NewNotFoundError("Sale")))
	assert.True(t, IsNotFound(fmt.Errorf("x: %w", NewNotFoundError("Sale"))))
	assert.False(t, IsNotFound(errors.New("plain")))
	assert.True(t, IsAppError(ErrConflict))
}

func TestNewFieldValidationError(t *testing.T) {
	err := NewFieldValidationError("installment_count", "must be between 2 and 12")

	assert.Equal(t, "Validation failed", err.Message)
	if assert.Len(t, err.Errors, 1) {
		assert.Equal(t, "installment_count", err.Errors[0].Field)
	}
}
