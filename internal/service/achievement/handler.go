package achievement

import (
	"context"
	"log/slog"

	"github.com/phrazzld/lexi-api/internal/events"
	"github.com/phrazzld/lexi-api/internal/platform/logger"
)

// EventHandler runs CheckAndUnlock whenever a user's progress changes.
type EventHandler struct {
	service Service
	logger  *slog.Logger
}

var _ events.EventHandler = (*EventHandler)(nil)

// NewEventHandler creates an EventHandler backed by service.
func NewEventHandler(service Service, logger *slog.Logger) *EventHandler {
	if service == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("service cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &EventHandler{
		service: service,
		logger:  logger.With(slog.String("component", "achievement_event_handler")),
	}
}

// HandleEvent implements events.EventHandler. Events of other types are ignored.
func (h *EventHandler) HandleEvent(ctx context.Context, event *events.ProgressEvent) error {
	switch event.Type {
	case events.TypeSessionCompleted, events.TypeXPAwarded:
	default:
		return nil
	}

	log := logger.FromContextOrDefault(ctx, h.logger)

	unlocked, err := h.service.CheckAndUnlock(ctx, event.UserID)
	if err != nil {
		return err
	}
	if len(unlocked) > 0 {
		log.Info("achievements unlocked by event",
			slog.String("event_type", event.Type),
			slog.String("user_id", event.UserID.String()),
			slog.Int("count", len(unlocked)))
	}
	return nil
}
