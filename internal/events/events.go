package events

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// Event types emitted by the engine.
const (
	// TypeSessionCompleted is emitted after a practice session is completed.
	TypeSessionCompleted = "practice.session_completed"

	// TypeXPAwarded is emitted after an award outside a session commits.
	TypeXPAwarded = "xp.awarded"
)

// ProgressEvent reports that a user's progress changed.
type ProgressEvent struct {
	// ID is a unique identifier for this event
	ID uuid.UUID `json:"id"`

	// Type is one of the Type* constants
	Type string `json:"type"`

	// UserID is the user whose progress changed
	UserID uuid.UUID `json:"user_id"`

	// Payload contains the type-specific data serialized as JSON
	Payload json.RawMessage `json:"payload"`

	// CreatedAt is the timestamp when the event was created
	CreatedAt time.Time `json:"created_at"`
}

// SessionCompletedPayload is the payload of TypeSessionCompleted.
type SessionCompletedPayload struct {
	SessionID      uuid.UUID `json:"session_id"`
	TotalQuestions int       `json:"total_questions"`
	CorrectAnswers int       `json:"correct_answers"`
	XPAwarded      int       `json:"xp_awarded"`
}

// XPAwardedPayload is the payload of TypeXPAwarded.
type XPAwardedPayload struct {
	ActivityType string `json:"activity_type"`
	Amount       int    `json:"amount"`
	Bonus        int    `json:"bonus"`
	TotalXP      int    `json:"total_xp"`
	LevelUp      bool   `json:"level_up"`
}

// UnmarshalPayload decodes the event payload into the provided structure.
func (e *ProgressEvent) UnmarshalPayload(v any) error {
	return json.Unmarshal(e.Payload, v)
}

// NewProgressEvent creates a ProgressEvent for the user with the given type and payload.
func NewProgressEvent(eventType string, userID uuid.UUID, payload any) (*ProgressEvent, error) {
	payloadBytes, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}

	return &ProgressEvent{
		ID:        uuid.New(),
		Type:      eventType,
		UserID:    userID,
		Payload:   payloadBytes,
		CreatedAt: time.Now().UTC(),
	}, nil
}

// EventHandler defines an interface for components that can handle events.
type EventHandler interface {
	// HandleEvent processes the given event within the provided context.
	// Returns an error if the event cannot be handled successfully.
	HandleEvent(ctx context.Context, event *ProgressEvent) error
}

// EventEmitter defines an interface for components that can emit events.
// This allows services to publish events without direct knowledge of handlers.
type EventEmitter interface {
	// EmitEvent publishes the given event to all registered handlers.
	EmitEvent(ctx context.Context, event *ProgressEvent) error
}

// NoopEmitter drops every event.
type NoopEmitter struct{}

// EmitEvent implements EventEmitter.
func (NoopEmitter) EmitEvent(context.Context, *ProgressEvent) error { return nil }
