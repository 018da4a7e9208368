package mocks

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/phrazzld/lexi-api/internal/domain"
	"github.com/phrazzld/lexi-api/internal/service/progression"
	"github.com/stretchr/testify/mock"
)

// MockProgressionService is a testify mock of progression.Service.
type MockProgressionService struct {
	mock.Mock
}

var _ progression.Service = (*MockProgressionService)(nil)

func awardResult(args mock.Arguments) (*domain.AwardResult, error) {
	if r, ok := args.Get(0).(*domain.AwardResult); ok {
		return r, args.Error(1)
	}
	return nil, args.Error(1)
}

// Award is a mock implementation of progression.Service.Award
func (m *MockProgressionService) Award(
	ctx context.Context,
	userID uuid.UUID,
	activityType domain.ActivityType,
	amount int,
	description string,
) (*domain.AwardResult, error) {
	return awardResult(m.Called(ctx, userID, activityType, amount, description))
}

// AwardTx is a mock implementation of progression.Service.AwardTx
func (m *MockProgressionService) AwardTx(
	ctx context.Context,
	tx *sql.Tx,
	userID uuid.UUID,
	activityType domain.ActivityType,
	amount int,
	description string,
) (*domain.AwardResult, error) {
	return awardResult(m.Called(ctx, tx, userID, activityType, amount, description))
}

// AwardVocabularyAdded is a mock implementation of progression.Service.AwardVocabularyAdded
func (m *MockProgressionService) AwardVocabularyAdded(
	ctx context.Context,
	tx *sql.Tx,
	userID uuid.UUID,
	count int,
) (*domain.AwardResult, error) {
	return awardResult(m.Called(ctx, tx, userID, count))
}

// SessionXP is a mock implementation of progression.Service.SessionXP
func (m *MockProgressionService) SessionXP(correct, total int) int {
	return m.Called(correct, total).Int(0)
}

// Info is a mock implementation of progression.Service.Info
func (m *MockProgressionService) Info(ctx context.Context, userID uuid.UUID) (*domain.XPInfo, error) {
	args := m.Called(ctx, userID)
	if info, ok := args.Get(0).(*domain.XPInfo); ok {
		return info, args.Error(1)
	}
	return nil, args.Error(1)
}

// Top is a mock implementation of progression.Service.Top
func (m *MockProgressionService) Top(ctx context.Context, limit int) ([]domain.LeaderboardEntry, error) {
	args := m.Called(ctx, limit)
	if e, ok := args.Get(0).([]domain.LeaderboardEntry); ok {
		return e, args.Error(1)
	}
	return nil, args.Error(1)
}

// InvalidateLeaderboard is a mock implementation of progression.Service.InvalidateLeaderboard
func (m *MockProgressionService) InvalidateLeaderboard(ctx context.Context) {
	m.Called(ctx)
}
