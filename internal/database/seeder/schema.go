package seeder

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"skillpath/internal/database"
)

var ErrSchemaMismatch = errors.New("schema mismatch")

// EnsureTableColumns fails when any of the columns is absent from table.
func EnsureTableColumns(ctx context.Context, db database.DB, table string, columns ...string) error {
	if db == nil {
		return database.ErrNilDB
	}
	if table == "" {
		return fmt.Errorf("empty table")
	}
	for _, col := range columns {
		if col == "" {
			return fmt.Errorf("empty column")
		}
	}

	rows, err := db.Query(
		ctx,
		`SELECT column_name FROM information_schema.columns WHERE table_schema='public' AND table_name=$1`,
		table,
	)
	if err != nil {
		return err
	}
	defer rows.Close()

	existing := map[string]struct{}{}
	for rows.Next() {
		var c string
		if err := rows.Scan(&c); err != nil {
			return err
		}
		existing[c] = struct{}{}
	}
	if err := rows.Err(); err != nil {
		return err
	}

	var missing []string
	for _, col := range columns {
		if _, ok := existing[col]; !ok {
			missing = append(missing, table+"."+col)
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("%w: missing columns %s", ErrSchemaMismatch, strings.Join(missing, ", "))
	}
	return nil
}

// SchemaSeeder checks that the migrated tables carry the columns the
// repositories read and write.
type SchemaSeeder struct{}

func (SchemaSeeder) Name() string { return "schema" }

func (SchemaSeeder) Run(ctx context.Context, db database.DB) error {
	for _, t := range requiredColumns {
		if err := EnsureTableColumns(ctx, db, t.table, t.columns...); err != nil {
			return err
		}
	}
	return nil
}

var requiredColumns = []struct {
	table   string
	columns []string
}{
	{"users", []string{"id", "email", "name", "onboarding_complete", "created_at"}},
	{"student_profiles", []string{
		"id", "user_id", "major", "university", "gpa", "experience_level", "career_aspirations",
		"current_skills", "target_industries", "preferred_learning", "preferred_content_types",
		"time_commitment", "relocation_goal", "extracurricular_interests", "planning_horizon_years",
		"analysis", "updated_at",
	}},
	{"growth_paths", []string{"id", "user_id", "phase", "roadmap", "generated_at", "is_active"}},
	{"progress_trackers", []string{
		"id", "user_id", "item_id", "item_type", "item_name", "status", "completion_date",
		"notes", "encouragement_message", "created_at",
	}},
	{"professional_profiles", []string{"id", "user_id", "resume", "linkedin", "last_generated"}},
	{"simulated_trends", []string{"id", "industry", "trends", "generated_at"}},
}
