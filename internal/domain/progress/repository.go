package progress

import (
	"context"

	"github.com/google/uuid"
)

type Repository interface {
	ListByUser(ctx context.Context, userID uuid.UUID) ([]Tracker, error)
	GetByItem(ctx context.Context, userID uuid.UUID, itemID string) (Tracker, error)
	Update(ctx context.Context, t Tracker) error
}
