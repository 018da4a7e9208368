package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/phrazzld/lexi-api/internal/domain"
	"github.com/phrazzld/lexi-api/internal/service/achievement"
	"github.com/stretchr/testify/mock"
)

// MockAchievementService is a testify mock of achievement.Service.
type MockAchievementService struct {
	mock.Mock
}

var _ achievement.Service = (*MockAchievementService)(nil)

// CheckAndUnlock is a mock implementation of achievement.Service.CheckAndUnlock
func (m *MockAchievementService) CheckAndUnlock(
	ctx context.Context,
	userID uuid.UUID,
) ([]domain.UnlockedAchievement, error) {
	args := m.Called(ctx, userID)
	if u, ok := args.Get(0).([]domain.UnlockedAchievement); ok {
		return u, args.Error(1)
	}
	return nil, args.Error(1)
}

// Progress is a mock implementation of achievement.Service.Progress
func (m *MockAchievementService) Progress(
	ctx context.Context,
	userID uuid.UUID,
	key string,
) (*domain.AchievementProgress, error) {
	args := m.Called(ctx, userID, key)
	if p, ok := args.Get(0).(*domain.AchievementProgress); ok {
		return p, args.Error(1)
	}
	return nil, args.Error(1)
}

// ListProgress is a mock implementation of achievement.Service.ListProgress
func (m *MockAchievementService) ListProgress(
	ctx context.Context,
	userID uuid.UUID,
) ([]domain.AchievementProgress, error) {
	args := m.Called(ctx, userID)
	if p, ok := args.Get(0).([]domain.AchievementProgress); ok {
		return p, args.Error(1)
	}
	return nil, args.Error(1)
}
