package errors

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStatusOf(t *testing.T) {
	cause := errors.New("boom")

	tests := []struct {
		name string
		err  error
		want int
	}{
		{"not found", NotFound("appointment", cause), http.StatusNotFound},
		{"bad request", BadRequest("invalid date", cause), http.StatusBadRequest},
		{"conflict", Conflict("Username already exists", nil), http.StatusConflict},
		{"unauthorized", Unauthorized(nil), http.StatusUnauthorized},
		{"wrapped", fmt.Errorf("handler: %w", NotFound("doctor", nil)), http.StatusNotFound},
		{"plain", cause, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, StatusOf(tt.err))
		})
	}
}

func TestMessageOf(t *testing.T) {
	assert.Equal(t, "doctor not found", MessageOf(NotFound("doctor", errors.New("sql: no rows"))))
	assert.Equal(t, "Internal server error", MessageOf(errors.New("pq: connection refused")))
	assert.Equal(t, "Internal server error", MessageOf(Internal(errors.New("x"))))
}

func TestAppError_Unwrap(t *testing.T) {
	cause := errors.New("root")
	err := BadRequest("invalid", cause)
	assert.ErrorIs(t, err, cause)
	assert.Equal(t, "invalid: root", err.Error())
}
