package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/phrazzld/lexi-api/internal/service/auth"
	"github.com/stretchr/testify/mock"
)

// MockJWTService is a testify mock of auth.JWTService.
type MockJWTService struct {
	mock.Mock
}

var _ auth.JWTService = (*MockJWTService)(nil)

func (m *MockJWTService) GenerateToken(ctx context.Context, userID uuid.UUID) (string, error) {
	args := m.Called(ctx, userID)
	return args.String(0), args.Error(1)
}

func (m *MockJWTService) ValidateToken(ctx context.Context, tokenString string) (*auth.Claims, error) {
	args := m.Called(ctx, tokenString)
	claims, _ := args.Get(0).(*auth.Claims)
	return claims, args.Error(1)
}
