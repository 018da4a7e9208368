package events

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// MockEventHandler implements the EventHandler interface for testing
type MockEventHandler struct {
	// The last event received by this handler
	LastEvent *ProgressEvent
	// Error to return from HandleEvent
	HandlerError error
	// Count of events handled
	HandledCount int
}

// HandleEvent implements the EventHandler interface
func (h *MockEventHandler) HandleEvent(ctx context.Context, event *ProgressEvent) error {
	h.LastEvent = event
	h.HandledCount++
	return h.HandlerError
}

func TestNewProgressEvent(t *testing.T) {
	userID := uuid.New()
	payload := SessionCompletedPayload{SessionID: uuid.New(), TotalQuestions: 3, CorrectAnswers: 3, XPAwarded: 90}

	event, err := NewProgressEvent(TypeSessionCompleted, userID, payload)
	require.NoError(t, err)

	assert.NotEqual(t, uuid.Nil, event.ID)
	assert.Equal(t, TypeSessionCompleted, event.Type)
	assert.Equal(t, userID, event.UserID)
	assert.False(t, event.CreatedAt.IsZero())

	var decoded SessionCompletedPayload
	require.NoError(t, event.UnmarshalPayload(&decoded))
	assert.Equal(t, payload, decoded)
}

func TestNewProgressEvent_UnencodablePayload(t *testing.T) {
	_, err := NewProgressEvent(TypeXPAwarded, uuid.New(), make(chan int))
	assert.Error(t, err)
}

func TestEventHandler(t *testing.T) {
	handler := &MockEventHandler{}

	event, err := NewProgressEvent(TypeXPAwarded, uuid.New(), XPAwardedPayload{ActivityType: "daily_goal", Amount: 20})
	require.NoError(t, err)

	err = handler.HandleEvent(context.Background(), event)
	assert.NoError(t, err)
	assert.Equal(t, 1, handler.HandledCount)
	assert.Equal(t, event, handler.LastEvent)

	expectedErr := errors.New("handler error")
	handler.HandlerError = expectedErr
	err = handler.HandleEvent(context.Background(), event)
	assert.Equal(t, expectedErr, err)
	assert.Equal(t, 2, handler.HandledCount)
}

func TestNoopEmitter(t *testing.T) {
	var emitter EventEmitter = NoopEmitter{}
	assert.NoError(t, emitter.EmitEvent(context.Background(), &ProgressEvent{}))
}
