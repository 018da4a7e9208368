// Package practice selects practice words, records practice outcomes and
// closes practice sessions.
package practice

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/phrazzld/lexi-api/internal/domain"
)

// SubmitResultInput is one answered question.
type SubmitResultInput struct {
	SessionID    uuid.UUID `json:"session_id" validate:"required"`
	WordID       uuid.UUID `json:"word_id" validate:"required"`
	WasCorrect   bool      `json:"was_correct"`
	ResponseTime *float64  `json:"response_time,omitempty" validate:"omitempty,gte=0"`
}

// SubmitResultOutput is the recorded result and the mastery record after it.
type SubmitResultOutput struct {
	Result  *domain.PracticeResult `json:"result"`
	Mastery *domain.MasteryRecord  `json:"mastery"`
}

// CompleteSessionInput closes a session.
type CompleteSessionInput struct {
	SessionID       uuid.UUID `json:"session_id" validate:"required"`
	DurationSeconds int       `json:"duration_seconds" validate:"gte=0"`
}

// SessionSummary is returned when a session is completed.
type SessionSummary struct {
	SessionID      uuid.UUID           `json:"session_id"`
	TotalQuestions int                 `json:"total_questions"`
	CorrectAnswers int                 `json:"correct_answers"`
	Accuracy       float64             `json:"accuracy"`
	XPEarned       int                 `json:"xp"`
	Award          *domain.AwardResult `json:"award,omitempty"`
}

// RegistrationResult reports what the vocabulary registration hook changed.
type RegistrationResult struct {
	Registered int                 `json:"registered"`
	Created    int                 `json:"created"`
	XPAwarded  int                 `json:"xp_awarded"`
	Award      *domain.AwardResult `json:"award,omitempty"`
}

// Service is the practice engine.
type Service interface {
	// SelectWords builds a round of multiple-choice questions from the user's
	// least-practiced, least-mastered words below the mastery threshold.
	//
	// A limit of 0 selects the user's round size or the configured default.
	// difficulty is "" or one of easy, medium, hard.
	// An empty list is returned when no word is eligible.
	SelectWords(ctx context.Context, userID uuid.UUID, limit int, difficulty string) ([]domain.PracticeQuestion, error)

	// StartSession opens a practice session with zero counters.
	StartSession(ctx context.Context, userID uuid.UUID) (*domain.PracticeSession, error)

	// SubmitResult records one answer in a single transaction: the session is
	// share-locked and checked, the word ownership is checked, the mastery
	// record is updated atomically and the result is appended.
	//
	// Error Handling:
	//   - Returns ErrSessionNotFound when the session is missing or belongs to another user
	//   - Returns ErrSessionCompleted when the session is already closed
	//   - Returns ErrWordNotOwned when the word is not in the user's vocabulary
	SubmitResult(ctx context.Context, userID uuid.UUID, input SubmitResultInput) (*SubmitResultOutput, error)

	// CompleteSession recomputes the counters from the recorded results,
	// closes the session and credits the session XP, all in one transaction.
	// A practice.session_completed event is emitted after commit.
	CompleteSession(ctx context.Context, userID uuid.UUID, input CompleteSessionInput) (*SessionSummary, error)

	// RegisterVocabulary is called after words were added to the user's
	// vocabulary. It creates mastery records at level 0 and credits XP for
	// each newly created record. Registering a word twice awards nothing.
	RegisterVocabulary(ctx context.Context, userID uuid.UUID, wordIDs []uuid.UUID) (*RegistrationResult, error)
}

// MaxRegistrationBatch bounds the number of words registered per call.
const MaxRegistrationBatch = 500

// Common error types for the practice service
var (
	// ErrSessionNotFound indicates the session does not exist for the user.
	ErrSessionNotFound = errors.New("practice session not found")

	// ErrSessionCompleted indicates the session was already completed.
	ErrSessionCompleted = errors.New("practice session already completed")

	// ErrWordNotOwned indicates the word is not in the user's vocabulary.
	ErrWordNotOwned = errors.New("word not found in vocabulary")

	// ErrInvalidLimit indicates a round size outside the allowed range.
	ErrInvalidLimit = errors.New("invalid practice round size")

	// ErrInvalidResponseTime indicates a negative response time.
	ErrInvalidResponseTime = errors.New("invalid response time")

	// ErrInvalidDuration indicates a negative session duration.
	ErrInvalidDuration = errors.New("invalid session duration")

	// ErrInvalidWordList indicates an empty or oversized registration batch.
	ErrInvalidWordList = errors.New("invalid word list")
)

// ServiceError wraps errors from the practice service with additional context.
type ServiceError struct {
	// Operation is the operation that failed (e.g., "submit_result")
	Operation string
	// Message is a human-readable description of the error
	Message string
	// Err is the underlying error that caused the failure
	Err error
}

// Error implements the error interface for ServiceError.
func (e *ServiceError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s operation failed: %s: %v", e.Operation, e.Message, e.Err)
	}
	return fmt.Sprintf("%s operation failed: %s", e.Operation, e.Message)
}

// Unwrap returns the wrapped error to support errors.Is/errors.As.
func (e *ServiceError) Unwrap() error {
	return e.Err
}

// NewSelectWordsError returns a new ServiceError for the select_words operation.
func NewSelectWordsError(message string, err error) *ServiceError {
	return &ServiceError{Operation: "select_words", Message: message, Err: err}
}

// NewStartSessionError returns a new ServiceError for the start_session operation.
func NewStartSessionError(message string, err error) *ServiceError {
	return &ServiceError{Operation: "start_session", Message: message, Err: err}
}

// NewSubmitResultError returns a new ServiceError for the submit_result operation.
func NewSubmitResultError(message string, err error) *ServiceError {
	return &ServiceError{Operation: "submit_result", Message: message, Err: err}
}

// NewCompleteSessionError returns a new ServiceError for the complete_session operation.
func NewCompleteSessionError(message string, err error) *ServiceError {
	return &ServiceError{Operation: "complete_session", Message: message, Err: err}
}

// NewRegisterVocabularyError returns a new ServiceError for the register_vocabulary operation.
func NewRegisterVocabularyError(message string, err error) *ServiceError {
	return &ServiceError{Operation: "register_vocabulary", Message: message, Err: err}
}
