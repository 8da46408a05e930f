package seeder

import (
	"context"
	"encoding/json"
	"fmt"

	"skillpath/internal/database"
	"skillpath/internal/domain/trend"

	"github.com/google/uuid"
)

// DefaultIndustry keys the snapshot used when a profile names no industry.
const DefaultIndustry = "general"

// TrendsSeeder stores the static snapshot once so trend lookups have a baseline.
type TrendsSeeder struct{}

func (TrendsSeeder) Name() string { return "simulated_trends" }

func (TrendsSeeder) Run(ctx context.Context, db database.DB) error {
	var n int
	if err := db.QueryRow(ctx, `SELECT COUNT(*) FROM simulated_trends WHERE industry = $1`, DefaultIndustry).Scan(&n); err != nil {
		return err
	}
	if n > 0 {
		return nil
	}

	b, err := json.Marshal(trend.Static())
	if err != nil {
		return fmt.Errorf("encode trends: %w", err)
	}
	_, err = db.Exec(ctx,
		`INSERT INTO simulated_trends (id, industry, trends) VALUES ($1, $2, $3)`,
		uuid.New(), DefaultIndustry, b,
	)
	return err
}
