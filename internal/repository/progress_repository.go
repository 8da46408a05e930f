package repository

import (
	"context"

	"skillpath/internal/database"
	"skillpath/internal/domain/progress"
	"skillpath/internal/domain/roadmap"

	"github.com/google/uuid"
)

type PostgresProgressRepository struct {
	db database.DB
}

func NewPostgresProgressRepository(db database.DB) *PostgresProgressRepository {
	return &PostgresProgressRepository{db: db}
}

const selectTracker = `SELECT id, user_id, item_id, item_type, item_name, status, completion_date,
	notes, encouragement_message, created_at
 FROM progress_trackers`

func (r *PostgresProgressRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]progress.Tracker, error) {
	rows, err := r.db.Query(ctx, selectTracker+` WHERE user_id = $1 ORDER BY created_at ASC, item_id ASC`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]progress.Tracker, 0)
	for rows.Next() {
		t, err := scanTracker(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *PostgresProgressRepository) GetByItem(ctx context.Context, userID uuid.UUID, itemID string) (progress.Tracker, error) {
	row := r.db.QueryRow(ctx, selectTracker+` WHERE user_id = $1 AND item_id = $2`, userID, itemID)
	t, err := scanTracker(row)
	if err != nil {
		if database.IsNoRows(err) {
			return progress.Tracker{}, progress.ErrNotFound
		}
		return progress.Tracker{}, err
	}
	return t, nil
}

func (r *PostgresProgressRepository) Update(ctx context.Context, t progress.Tracker) error {
	n, err := r.db.Exec(ctx,
		`UPDATE progress_trackers
		 SET status = $1, completion_date = $2, notes = $3, encouragement_message = $4
		 WHERE id = $5 AND user_id = $6`,
		string(t.Status), t.CompletionDate, t.Notes, t.EncouragementMessage, t.ID, t.UserID,
	)
	if err != nil {
		return err
	}
	if n == 0 {
		return progress.ErrNotFound
	}
	return nil
}

func scanTracker(row database.Row) (progress.Tracker, error) {
	var t progress.Tracker
	var itemType, status string
	err := row.Scan(
		&t.ID, &t.UserID, &t.ItemID, &itemType, &t.ItemName, &status, &t.CompletionDate,
		&t.Notes, &t.EncouragementMessage, &t.CreatedAt,
	)
	if err != nil {
		return progress.Tracker{}, err
	}
	t.ItemType = roadmap.ItemType(itemType)
	t.Status = progress.Status(status)
	return t, nil
}
