package ws

import (
	"context"
	"encoding/json"

	"skillpath/internal/domain/event"
)

// Publisher pushes domain events to the websocket clients of the event's user.
type Publisher struct {
	hub *Hub
}

func NewPublisher(hub *Hub) *Publisher {
	return &Publisher{hub: hub}
}

func (p *Publisher) Publish(_ context.Context, e event.Event) error {
	if p == nil || p.hub == nil {
		return nil
	}
	b, err := json.Marshal(e)
	if err != nil {
		return err
	}
	p.hub.Send(e.UserID, b)
	return nil
}
