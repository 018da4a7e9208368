package api

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/phrazzld/lexi-api/internal/domain"
	"github.com/phrazzld/lexi-api/internal/service/achievement"
	"github.com/phrazzld/lexi-api/internal/service/auth"
	"github.com/phrazzld/lexi-api/internal/service/practice"
	"github.com/phrazzld/lexi-api/internal/service/progression"
	"github.com/phrazzld/lexi-api/internal/store"
	"github.com/stretchr/testify/assert"
)

func TestMapErrorToStatusCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"expired token", auth.ErrExpiredToken, http.StatusUnauthorized},
		{"unauthorized", domain.ErrUnauthorized, http.StatusUnauthorized},
		{"validation", domain.NewValidationError("limit", "too big", progression.ErrInvalidLimit), http.StatusBadRequest},
		{"invalid entity", fmt.Errorf("%w: fk", store.ErrInvalidEntity), http.StatusBadRequest},
		{"completed session", practice.ErrSessionCompleted, http.StatusConflict},
		{"session not found", practice.ErrSessionNotFound, http.StatusNotFound},
		{"word not owned", practice.ErrWordNotOwned, http.StatusNotFound},
		{"achievement not found", achievement.ErrAchievementNotFound, http.StatusNotFound},
		{"store not found", store.ErrUserXPNotFound, http.StatusNotFound},
		{"concurrency", practice.NewSubmitResultError("x", store.ErrConcurrency), http.StatusServiceUnavailable},
		{"data integrity", progression.NewAwardError("x", domain.ErrDataIntegrity), http.StatusInternalServerError},
		{"unknown", errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, MapErrorToStatusCode(tc.err))
		})
	}
}

func TestGetSafeErrorMessage(t *testing.T) {
	assert.Equal(t, "An unexpected error occurred", GetSafeErrorMessage(nil))
	assert.Equal(t, "An unexpected error occurred",
		GetSafeErrorMessage(fmt.Errorf("query: %w", errors.New("pq: password authentication failed"))))
	assert.Equal(t, "Invalid request: bad", GetSafeErrorMessage(domain.NewValidationError("", "bad", nil)))
	assert.Equal(t, "Practice session already completed",
		GetSafeErrorMessage(fmt.Errorf("complete: %w", practice.ErrSessionCompleted)))
}
