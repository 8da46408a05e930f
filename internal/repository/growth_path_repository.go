package repository

import (
	"context"
	"fmt"

	"skillpath/internal/database"
	"skillpath/internal/domain/progress"
	"skillpath/internal/domain/roadmap"

	"github.com/google/uuid"
)

type PostgresGrowthPathRepository struct {
	db database.DB
}

func NewPostgresGrowthPathRepository(db database.DB) *PostgresGrowthPathRepository {
	return &PostgresGrowthPathRepository{db: db}
}

func (r *PostgresGrowthPathRepository) GetActive(ctx context.Context, userID uuid.UUID) (roadmap.GrowthPath, error) {
	row := r.db.QueryRow(ctx,
		`SELECT id, user_id, phase, roadmap, generated_at, is_active
		 FROM growth_paths
		 WHERE user_id = $1 AND is_active
		 ORDER BY generated_at DESC
		 LIMIT 1`,
		userID,
	)

	var gp roadmap.GrowthPath
	var raw []byte
	if err := row.Scan(&gp.ID, &gp.UserID, &gp.Phase, &raw, &gp.GeneratedAt, &gp.IsActive); err != nil {
		if database.IsNoRows(err) {
			return roadmap.GrowthPath{}, roadmap.ErrNoActivePath
		}
		return roadmap.GrowthPath{}, err
	}
	if err := decodeJSON("roadmap", raw, &gp.Roadmap); err != nil {
		return roadmap.GrowthPath{}, err
	}
	if err := gp.Roadmap.Validate(); err != nil {
		return roadmap.GrowthPath{}, fmt.Errorf("growth path %s: %w", gp.ID, err)
	}
	return gp, nil
}

func (r *PostgresGrowthPathRepository) CreateActive(ctx context.Context, gp roadmap.GrowthPath, trackers []roadmap.NewTrackerRow) (int, error) {
	if gp.ID == uuid.Nil {
		gp.ID = uuid.New()
	}
	raw, err := encodeJSON("roadmap", gp.Roadmap)
	if err != nil {
		return 0, err
	}

	created := 0
	err = database.WithTx(ctx, r.db, func(tx database.Tx) error {
		if _, err := tx.Exec(ctx,
			`UPDATE growth_paths SET is_active = FALSE WHERE user_id = $1 AND is_active`,
			gp.UserID,
		); err != nil {
			return err
		}

		if _, err := tx.Exec(ctx,
			`INSERT INTO growth_paths (id, user_id, phase, roadmap, generated_at, is_active)
			 VALUES ($1, $2, $3, $4, $5, TRUE)`,
			gp.ID, gp.UserID, gp.Phase, raw, gp.GeneratedAt.UTC(),
		); err != nil {
			return err
		}

		n, err := insertTrackers(ctx, tx, gp.UserID, trackers)
		created = n
		return err
	})
	if err != nil {
		return 0, err
	}
	return created, nil
}

func (r *PostgresGrowthPathRepository) AppendPhase(ctx context.Context, gp roadmap.GrowthPath, expectedPhase int, trackers []roadmap.NewTrackerRow) (int, error) {
	raw, err := encodeJSON("roadmap", gp.Roadmap)
	if err != nil {
		return 0, err
	}

	created := 0
	err = database.WithTx(ctx, r.db, func(tx database.Tx) error {
		n, err := tx.Exec(ctx,
			`UPDATE growth_paths
			 SET roadmap = $1, phase = $2
			 WHERE id = $3 AND user_id = $4 AND is_active AND phase = $5`,
			raw, gp.Phase, gp.ID, gp.UserID, expectedPhase,
		)
		if err != nil {
			return err
		}
		if n == 0 {
			return roadmap.ErrPhaseConflict
		}

		created, err = insertTrackers(ctx, tx, gp.UserID, trackers)
		return err
	})
	if err != nil {
		return 0, err
	}
	return created, nil
}

func insertTrackers(ctx context.Context, q database.Querier, userID uuid.UUID, trackers []roadmap.NewTrackerRow) (int, error) {
	created := 0
	for _, t := range trackers {
		if t.ItemID == "" {
			continue
		}
		id := t.ID
		if id == uuid.Nil {
			id = uuid.New()
		}
		n, err := q.Exec(ctx,
			`INSERT INTO progress_trackers (id, user_id, item_id, item_type, item_name, status)
			 VALUES ($1, $2, $3, $4, $5, $6)
			 ON CONFLICT (user_id, item_id) DO NOTHING`,
			id, userID, t.ItemID, string(t.ItemType), t.ItemName, string(progress.StatusNotStarted),
		)
		if err != nil {
			return created, fmt.Errorf("insert tracker %s: %w", t.ItemID, err)
		}
		created += int(n)
	}
	return created, nil
}
