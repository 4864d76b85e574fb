package errors

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

// TestConstructors tests status code mapping
func TestConstructors(t *testing.T) {
	tests := []struct {
		name   string
		err    *AppError
		status int
		code   string
	}{
		{"BadRequest", BadRequest("bad", nil), http.StatusBadRequest, "BAD_REQUEST"},
		{"Forbidden", Forbidden("no", nil), http.StatusForbidden, "FORBIDDEN"},
		{"NotFound", NotFound("gone", nil), http.StatusNotFound, "NOT_FOUND"},
		{"Conflict", Conflict("taken", nil), http.StatusConflict, "CONFLICT"},
		{"Internal", Internal("boom", nil), http.StatusInternalServerError, "INTERNAL_ERROR"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.status, tt.err.Status)
			assert.Equal(t, tt.code, tt.err.Code)
		})
	}
}

// TestGetAppError tests classification of arbitrary errors
func TestGetAppError(t *testing.T) {
	t.Run("passes through app errors", func(t *testing.T) {
		assert.Equal(t, ErrRideNotFound, GetAppError(ErrRideNotFound))
	})

	t.Run("finds wrapped app errors", func(t *testing.T) {
		wrapped := fmt.Errorf("context: %w", ErrUsernameTaken)
		assert.Equal(t, ErrUsernameTaken, GetAppError(wrapped))
	})

	t.Run("unknown errors become 500", func(t *testing.T) {
		got := GetAppError(fmt.Errorf("disk on fire"))
		assert.Equal(t, http.StatusInternalServerError, got.Status)
	})
}

// TestErrorMessage tests the error string with and without a cause
func TestErrorMessage(t *testing.T) {
	bare := NotFound("User not found", nil)
	assert.Equal(t, "User not found", bare.Error())

	cause := fmt.Errorf("row missing")
	withCause := NotFound("User not found", cause)
	assert.Contains(t, withCause.Error(), "row missing")
	assert.Equal(t, cause, withCause.Unwrap())
}
