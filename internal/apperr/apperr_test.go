package apperr

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStatus(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{name: "nil", err: nil, want: http.StatusOK},
		{name: "validation", err: fmt.Errorf("%w: phone too short", ErrValidation), want: http.StatusBadRequest},
		{name: "conflict", err: ErrConflict, want: http.StatusConflict},
		{name: "not found", err: fmt.Errorf("contact: %w", ErrNotFound), want: http.StatusNotFound},
		{name: "bad password", err: ErrInvalidCredentials, want: http.StatusBadRequest},
		{name: "no header", err: ErrUnauthenticated, want: http.StatusUnauthorized},
		{name: "bad token", err: ErrInvalidToken, want: http.StatusForbidden},
		{name: "storage", err: fmt.Errorf("%w: conn reset", ErrStorage), want: http.StatusInternalServerError},
		{name: "unknown", err: errors.New("boom"), want: http.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Status(tt.err))
		})
	}
}
