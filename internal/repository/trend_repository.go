package repository

import (
	"context"
	"time"

	"skillpath/internal/database"
	"skillpath/internal/domain/trend"

	"github.com/google/uuid"
)

type PostgresTrendRepository struct {
	db database.DB
}

func NewPostgresTrendRepository(db database.DB) *PostgresTrendRepository {
	return &PostgresTrendRepository{db: db}
}

func (r *PostgresTrendRepository) Create(ctx context.Context, s trend.Snapshot) (trend.Snapshot, error) {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	if s.GeneratedAt.IsZero() {
		s.GeneratedAt = time.Now().UTC()
	}
	s.Industry = trend.NormalizeIndustry(s.Industry)

	raw, err := encodeJSON("trends", s.Trends)
	if err != nil {
		return trend.Snapshot{}, err
	}
	if _, err := r.db.Exec(ctx,
		`INSERT INTO simulated_trends (id, industry, trends, generated_at) VALUES ($1, $2, $3, $4)`,
		s.ID, s.Industry, raw, s.GeneratedAt,
	); err != nil {
		return trend.Snapshot{}, err
	}
	return s, nil
}

func (r *PostgresTrendRepository) Latest(ctx context.Context, industry string) (trend.Snapshot, error) {
	row := r.db.QueryRow(ctx,
		`SELECT id, industry, trends, generated_at
		 FROM simulated_trends
		 WHERE industry = $1
		 ORDER BY generated_at DESC
		 LIMIT 1`,
		trend.NormalizeIndustry(industry),
	)

	var s trend.Snapshot
	var raw []byte
	if err := row.Scan(&s.ID, &s.Industry, &raw, &s.GeneratedAt); err != nil {
		if database.IsNoRows(err) {
			return trend.Snapshot{}, trend.ErrNotFound
		}
		return trend.Snapshot{}, err
	}
	if err := decodeJSON("trends", raw, &s.Trends); err != nil {
		return trend.Snapshot{}, err
	}
	return s, nil
}
