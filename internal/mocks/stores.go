package mocks

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
	"github.com/phrazzld/lexi-api/internal/domain"
	"github.com/phrazzld/lexi-api/internal/store"
	"github.com/stretchr/testify/mock"
)

// MockVocabularyStore is a mock of store.VocabularyStore.
type MockVocabularyStore struct {
	mock.Mock
}

var _ store.VocabularyStore = (*MockVocabularyStore)(nil)

// GetOwned is a mock implementation of store.VocabularyStore.GetOwned
func (m *MockVocabularyStore) GetOwned(ctx context.Context, userID, wordID uuid.UUID) (*domain.VocabularyItem, error) {
	args := m.Called(ctx, userID, wordID)
	if item, ok := args.Get(0).(*domain.VocabularyItem); ok {
		return item, args.Error(1)
	}
	return nil, args.Error(1)
}

// FilterOwned is a mock implementation of store.VocabularyStore.FilterOwned
func (m *MockVocabularyStore) FilterOwned(ctx context.Context, userID uuid.UUID, wordIDs []uuid.UUID) ([]uuid.UUID, error) {
	args := m.Called(ctx, userID, wordIDs)
	if ids, ok := args.Get(0).([]uuid.UUID); ok {
		return ids, args.Error(1)
	}
	return nil, args.Error(1)
}

// ListPracticeCandidates is a mock implementation of store.VocabularyStore.ListPracticeCandidates
func (m *MockVocabularyStore) ListPracticeCandidates(
	ctx context.Context,
	userID uuid.UUID,
	threshold int,
	difficulty *domain.Difficulty,
	limit int,
) ([]domain.PracticeCandidate, error) {
	args := m.Called(ctx, userID, threshold, difficulty, limit)
	if c, ok := args.Get(0).([]domain.PracticeCandidate); ok {
		return c, args.Error(1)
	}
	return nil, args.Error(1)
}

// ListByUser is a mock implementation of store.VocabularyStore.ListByUser
func (m *MockVocabularyStore) ListByUser(ctx context.Context, userID uuid.UUID) ([]domain.VocabularyItem, error) {
	args := m.Called(ctx, userID)
	if items, ok := args.Get(0).([]domain.VocabularyItem); ok {
		return items, args.Error(1)
	}
	return nil, args.Error(1)
}

// WithTx returns the receiver.
func (m *MockVocabularyStore) WithTx(*sql.Tx) store.VocabularyStore { return m }

// MockSettingsStore is a mock of store.SettingsStore.
type MockSettingsStore struct {
	mock.Mock
}

var _ store.SettingsStore = (*MockSettingsStore)(nil)

// Get is a mock implementation of store.SettingsStore.Get
func (m *MockSettingsStore) Get(ctx context.Context, userID uuid.UUID) (*domain.UserSettings, error) {
	args := m.Called(ctx, userID)
	if s, ok := args.Get(0).(*domain.UserSettings); ok {
		return s, args.Error(1)
	}
	return nil, args.Error(1)
}

// MockMasteryStore is a mock of store.MasteryStore.
type MockMasteryStore struct {
	mock.Mock
}

var _ store.MasteryStore = (*MockMasteryStore)(nil)

// EnsureRecords is a mock implementation of store.MasteryStore.EnsureRecords
func (m *MockMasteryStore) EnsureRecords(ctx context.Context, userID uuid.UUID, wordIDs []uuid.UUID) (int, error) {
	args := m.Called(ctx, userID, wordIDs)
	return args.Int(0), args.Error(1)
}

// ApplyOutcome is a mock implementation of store.MasteryStore.ApplyOutcome
func (m *MockMasteryStore) ApplyOutcome(
	ctx context.Context,
	userID, wordID uuid.UUID,
	correct bool,
	at time.Time,
	delta domain.MasteryDelta,
) (*domain.MasteryRecord, error) {
	args := m.Called(ctx, userID, wordID, correct, at, delta)
	if r, ok := args.Get(0).(*domain.MasteryRecord); ok {
		return r, args.Error(1)
	}
	return nil, args.Error(1)
}

// CountMastered is a mock implementation of store.MasteryStore.CountMastered
func (m *MockMasteryStore) CountMastered(ctx context.Context, userID uuid.UUID, minLevel int) (int, error) {
	args := m.Called(ctx, userID, minLevel)
	return args.Int(0), args.Error(1)
}

// WithTx returns the receiver.
func (m *MockMasteryStore) WithTx(*sql.Tx) store.MasteryStore { return m }

// MockPracticeSessionStore is a mock of store.PracticeSessionStore.
type MockPracticeSessionStore struct {
	mock.Mock
}

var _ store.PracticeSessionStore = (*MockPracticeSessionStore)(nil)

// Create is a mock implementation of store.PracticeSessionStore.Create
func (m *MockPracticeSessionStore) Create(ctx context.Context, session *domain.PracticeSession) error {
	return m.Called(ctx, session).Error(0)
}

// GetForShare is a mock implementation of store.PracticeSessionStore.GetForShare
func (m *MockPracticeSessionStore) GetForShare(ctx context.Context, userID, sessionID uuid.UUID) (*domain.PracticeSession, error) {
	args := m.Called(ctx, userID, sessionID)
	if s, ok := args.Get(0).(*domain.PracticeSession); ok {
		return s, args.Error(1)
	}
	return nil, args.Error(1)
}

// GetForUpdate is a mock implementation of store.PracticeSessionStore.GetForUpdate
func (m *MockPracticeSessionStore) GetForUpdate(ctx context.Context, userID, sessionID uuid.UUID) (*domain.PracticeSession, error) {
	args := m.Called(ctx, userID, sessionID)
	if s, ok := args.Get(0).(*domain.PracticeSession); ok {
		return s, args.Error(1)
	}
	return nil, args.Error(1)
}

// AddResult is a mock implementation of store.PracticeSessionStore.AddResult
func (m *MockPracticeSessionStore) AddResult(ctx context.Context, result *domain.PracticeResult) error {
	return m.Called(ctx, result).Error(0)
}

// CountResults is a mock implementation of store.PracticeSessionStore.CountResults
func (m *MockPracticeSessionStore) CountResults(ctx context.Context, sessionID uuid.UUID) (int, int, error) {
	args := m.Called(ctx, sessionID)
	return args.Int(0), args.Int(1), args.Error(2)
}

// Complete is a mock implementation of store.PracticeSessionStore.Complete
func (m *MockPracticeSessionStore) Complete(ctx context.Context, session *domain.PracticeSession) error {
	return m.Called(ctx, session).Error(0)
}

// WithTx returns the receiver.
func (m *MockPracticeSessionStore) WithTx(*sql.Tx) store.PracticeSessionStore { return m }

// MockXPStore is a mock of store.XPStore.
type MockXPStore struct {
	mock.Mock
}

var _ store.XPStore = (*MockXPStore)(nil)

// GetForUpdate is a mock implementation of store.XPStore.GetForUpdate
func (m *MockXPStore) GetForUpdate(ctx context.Context, userID uuid.UUID) (*domain.UserXP, error) {
	args := m.Called(ctx, userID)
	if x, ok := args.Get(0).(*domain.UserXP); ok {
		return x, args.Error(1)
	}
	return nil, args.Error(1)
}

// Get is a mock implementation of store.XPStore.Get
func (m *MockXPStore) Get(ctx context.Context, userID uuid.UUID) (*domain.UserXP, error) {
	args := m.Called(ctx, userID)
	if x, ok := args.Get(0).(*domain.UserXP); ok {
		return x, args.Error(1)
	}
	return nil, args.Error(1)
}

// Update is a mock implementation of store.XPStore.Update
func (m *MockXPStore) Update(ctx context.Context, xp *domain.UserXP) error {
	return m.Called(ctx, xp).Error(0)
}

// AppendActivity is a mock implementation of store.XPStore.AppendActivity
func (m *MockXPStore) AppendActivity(ctx context.Context, activity *domain.XPActivity) error {
	return m.Called(ctx, activity).Error(0)
}

// SumActivities is a mock implementation of store.XPStore.SumActivities
func (m *MockXPStore) SumActivities(ctx context.Context, userID uuid.UUID) (int, error) {
	args := m.Called(ctx, userID)
	return args.Int(0), args.Error(1)
}

// RecentActivities is a mock implementation of store.XPStore.RecentActivities
func (m *MockXPStore) RecentActivities(ctx context.Context, userID uuid.UUID, limit int) ([]domain.XPActivity, error) {
	args := m.Called(ctx, userID, limit)
	if a, ok := args.Get(0).([]domain.XPActivity); ok {
		return a, args.Error(1)
	}
	return nil, args.Error(1)
}

// Top is a mock implementation of store.XPStore.Top
func (m *MockXPStore) Top(ctx context.Context, limit int) ([]domain.LeaderboardEntry, error) {
	args := m.Called(ctx, limit)
	if e, ok := args.Get(0).([]domain.LeaderboardEntry); ok {
		return e, args.Error(1)
	}
	return nil, args.Error(1)
}

// WithTx returns the receiver.
func (m *MockXPStore) WithTx(*sql.Tx) store.XPStore { return m }

// MockAchievementStore is a mock of store.AchievementStore.
type MockAchievementStore struct {
	mock.Mock
}

var _ store.AchievementStore = (*MockAchievementStore)(nil)

// ListActive is a mock implementation of store.AchievementStore.ListActive
func (m *MockAchievementStore) ListActive(ctx context.Context) ([]domain.Achievement, error) {
	args := m.Called(ctx)
	if a, ok := args.Get(0).([]domain.Achievement); ok {
		return a, args.Error(1)
	}
	return nil, args.Error(1)
}

// GetByKey is a mock implementation of store.AchievementStore.GetByKey
func (m *MockAchievementStore) GetByKey(ctx context.Context, key string) (*domain.Achievement, error) {
	args := m.Called(ctx, key)
	if a, ok := args.Get(0).(*domain.Achievement); ok {
		return a, args.Error(1)
	}
	return nil, args.Error(1)
}

// ListUnlocked is a mock implementation of store.AchievementStore.ListUnlocked
func (m *MockAchievementStore) ListUnlocked(ctx context.Context, userID uuid.UUID) (map[uuid.UUID]domain.UserAchievement, error) {
	args := m.Called(ctx, userID)
	if u, ok := args.Get(0).(map[uuid.UUID]domain.UserAchievement); ok {
		return u, args.Error(1)
	}
	return nil, args.Error(1)
}

// Unlock is a mock implementation of store.AchievementStore.Unlock
func (m *MockAchievementStore) Unlock(ctx context.Context, ua *domain.UserAchievement) (bool, error) {
	args := m.Called(ctx, ua)
	return args.Bool(0), args.Error(1)
}

// WithTx returns the receiver.
func (m *MockAchievementStore) WithTx(*sql.Tx) store.AchievementStore { return m }

// MockStatsStore is a mock of store.StatsStore.
type MockStatsStore struct {
	mock.Mock
}

var _ store.StatsStore = (*MockStatsStore)(nil)

// Snapshot is a mock implementation of store.StatsStore.Snapshot
func (m *MockStatsStore) Snapshot(ctx context.Context, userID uuid.UUID, now time.Time) (*domain.UserStats, error) {
	args := m.Called(ctx, userID, now)
	if s, ok := args.Get(0).(*domain.UserStats); ok {
		return s, args.Error(1)
	}
	return nil, args.Error(1)
}

// WithTx returns the receiver.
func (m *MockStatsStore) WithTx(*sql.Tx) store.StatsStore { return m }
