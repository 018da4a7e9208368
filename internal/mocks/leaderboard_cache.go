package mocks

import (
	"context"

	"github.com/phrazzld/lexi-api/internal/domain"
	"github.com/stretchr/testify/mock"
)

// MockLeaderboardCache is a testify mock of progression.LeaderboardCache.
type MockLeaderboardCache struct {
	mock.Mock
}

// Get is a mock implementation of LeaderboardCache.Get
func (m *MockLeaderboardCache) Get(ctx context.Context, limit int) ([]domain.LeaderboardEntry, int64, bool, error) {
	args := m.Called(ctx, limit)
	entries, _ := args.Get(0).([]domain.LeaderboardEntry)
	gen, _ := args.Get(1).(int64)
	return entries, gen, args.Bool(2), args.Error(3)
}

// Set is a mock implementation of LeaderboardCache.Set
func (m *MockLeaderboardCache) Set(ctx context.Context, generation int64, limit int, entries []domain.LeaderboardEntry) error {
	return m.Called(ctx, generation, limit, entries).Error(0)
}

// Invalidate is a mock implementation of LeaderboardCache.Invalidate
func (m *MockLeaderboardCache) Invalidate(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}
