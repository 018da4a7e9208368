package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/phrazzld/lexi-api/internal/domain"
	"github.com/phrazzld/lexi-api/internal/service/practice"
	"github.com/stretchr/testify/mock"
)

// MockPracticeService is a testify mock of practice.Service.
type MockPracticeService struct {
	mock.Mock
}

var _ practice.Service = (*MockPracticeService)(nil)

// SelectWords is a mock implementation of practice.Service.SelectWords
func (m *MockPracticeService) SelectWords(
	ctx context.Context,
	userID uuid.UUID,
	limit int,
	difficulty string,
) ([]domain.PracticeQuestion, error) {
	args := m.Called(ctx, userID, limit, difficulty)
	if q, ok := args.Get(0).([]domain.PracticeQuestion); ok {
		return q, args.Error(1)
	}
	return nil, args.Error(1)
}

// StartSession is a mock implementation of practice.Service.StartSession
func (m *MockPracticeService) StartSession(ctx context.Context, userID uuid.UUID) (*domain.PracticeSession, error) {
	args := m.Called(ctx, userID)
	if s, ok := args.Get(0).(*domain.PracticeSession); ok {
		return s, args.Error(1)
	}
	return nil, args.Error(1)
}

// SubmitResult is a mock implementation of practice.Service.SubmitResult
func (m *MockPracticeService) SubmitResult(
	ctx context.Context,
	userID uuid.UUID,
	input practice.SubmitResultInput,
) (*practice.SubmitResultOutput, error) {
	args := m.Called(ctx, userID, input)
	if out, ok := args.Get(0).(*practice.SubmitResultOutput); ok {
		return out, args.Error(1)
	}
	return nil, args.Error(1)
}

// CompleteSession is a mock implementation of practice.Service.CompleteSession
func (m *MockPracticeService) CompleteSession(
	ctx context.Context,
	userID uuid.UUID,
	input practice.CompleteSessionInput,
) (*practice.SessionSummary, error) {
	args := m.Called(ctx, userID, input)
	if s, ok := args.Get(0).(*practice.SessionSummary); ok {
		return s, args.Error(1)
	}
	return nil, args.Error(1)
}

// RegisterVocabulary is a mock implementation of practice.Service.RegisterVocabulary
func (m *MockPracticeService) RegisterVocabulary(
	ctx context.Context,
	userID uuid.UUID,
	wordIDs []uuid.UUID,
) (*practice.RegistrationResult, error) {
	args := m.Called(ctx, userID, wordIDs)
	if r, ok := args.Get(0).(*practice.RegistrationResult); ok {
		return r, args.Error(1)
	}
	return nil, args.Error(1)
}
