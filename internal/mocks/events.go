package mocks

import (
	"context"
	"sync"

	"github.com/phrazzld/lexi-api/internal/events"
)

// MockEventEmitter records every emitted event.
type MockEventEmitter struct {
	mu     sync.Mutex
	Events []*events.ProgressEvent
	Err    error
}

var _ events.EventEmitter = (*MockEventEmitter)(nil)

// EmitEvent implements events.EventEmitter.
func (m *MockEventEmitter) EmitEvent(ctx context.Context, event *events.ProgressEvent) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Events = append(m.Events, event)
	return m.Err
}

// Types returns the types of the recorded events in emission order.
func (m *MockEventEmitter) Types() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	types := make([]string, len(m.Events))
	for i, e := range m.Events {
		types[i] = e.Type
	}
	return types
}
