package event

import (
	"context"
	"time"

	"github.com/google/uuid"
)

type Type string

const (
	GrowthPathGenerated Type = "growth_path.generated"
	GrowthPathExtended  Type = "growth_path.extended"
	ProgressUpdated     Type = "progress.updated"
	ItemCompleted       Type = "item.completed"
	ProfileRefreshed    Type = "profile.refreshed"
)

type Event struct {
	Type      Type      `json:"type"`
	UserID    uuid.UUID `json:"user_id"`
	Payload   any       `json:"payload,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

func New(t Type, userID uuid.UUID, payload any) Event {
	return Event{Type: t, UserID: userID, Payload: payload, Timestamp: time.Now().UTC()}
}

// Publisher delivers events best-effort.
type Publisher interface {
	Publish(ctx context.Context, e Event) error
}

type nopPublisher struct{}

func (nopPublisher) Publish(context.Context, Event) error { return nil }

// Nop discards every event.
func Nop() Publisher { return nopPublisher{} }
