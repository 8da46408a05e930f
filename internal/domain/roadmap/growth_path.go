package roadmap

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
)

var (
	ErrNoActivePath  = errors.New("no active growth path")
	ErrPhaseConflict = errors.New("growth path changed concurrently")
)

type GrowthPath struct {
	ID          uuid.UUID
	UserID      uuid.UUID
	Phase       int
	Roadmap     Roadmap
	GeneratedAt time.Time
	IsActive    bool
}

// NewTrackerRow is the minimal tracker shape the growth path repository writes
// alongside a roadmap change.
type NewTrackerRow struct {
	ID       uuid.UUID
	ItemID   string
	ItemType ItemType
	ItemName string
}

type Repository interface {
	GetActive(ctx context.Context, userID uuid.UUID) (GrowthPath, error)

	// CreateActive deactivates the user's current paths, stores gp as the only
	// active one and inserts trackers whose item ids are not yet tracked.
	// It returns how many trackers were inserted.
	CreateActive(ctx context.Context, gp GrowthPath, trackers []NewTrackerRow) (int, error)

	// AppendPhase stores the extended roadmap if the stored phase counter still
	// equals expectedPhase, inserting untracked trackers in the same transaction.
	AppendPhase(ctx context.Context, gp GrowthPath, expectedPhase int, trackers []NewTrackerRow) (int, error)
}

// TrackerRows builds one not_started tracker row per item.
func TrackerRows(items []TrackedItem) []NewTrackerRow {
	out := make([]NewTrackerRow, 0, len(items))
	for _, it := range items {
		out = append(out, NewTrackerRow{
			ID:       uuid.New(),
			ItemID:   it.Item.ID,
			ItemType: it.Type,
			ItemName: it.Name,
		})
	}
	return out
}
