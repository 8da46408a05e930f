package messaging

import (
	"context"

	"skillpath/internal/domain/event"
	"skillpath/internal/pkg/logger"
)

// Fanout delivers each event to every sink. Sink failures are logged and
// never reported to the caller.
type Fanout struct {
	sinks  []event.Publisher
	logger *logger.Logger
}

func NewFanout(log *logger.Logger, sinks ...event.Publisher) *Fanout {
	kept := make([]event.Publisher, 0, len(sinks))
	for _, s := range sinks {
		if s != nil {
			kept = append(kept, s)
		}
	}
	return &Fanout{sinks: kept, logger: logger.OrNop(log)}
}

func (f *Fanout) Publish(ctx context.Context, e event.Event) error {
	for _, s := range f.sinks {
		if err := s.Publish(ctx, e); err != nil {
			f.logger.Warn("event delivery failed", "type", e.Type, "user_id", e.UserID, "error", err)
		}
	}
	return nil
}
