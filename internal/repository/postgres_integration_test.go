package repository

import (
	"context"
	"errors"
	"os"
	"strings"
	"testing"
	"time"

	"skillpath/internal/config"
	"skillpath/internal/database"
	"skillpath/internal/database/migration"
	dbpostgres "skillpath/internal/database/postgres"
	"skillpath/internal/domain/professional"
	"skillpath/internal/domain/progress"
	"skillpath/internal/domain/roadmap"
	"skillpath/internal/domain/trend"
	"skillpath/internal/domain/user"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func connectTestDB(t *testing.T, ctx context.Context) database.DB {
	t.Helper()

	env := func(key string) string { return strings.TrimSpace(os.Getenv("SKILLPATH_TEST_DB_" + key)) }
	host, port, name, usr := env("HOST"), env("PORT"), env("NAME"), env("USER")
	if host == "" || port == "" || name == "" || usr == "" {
		t.Skip("missing test DB env vars: set SKILLPATH_TEST_DB_HOST/PORT/NAME/USER/PASSWORD")
	}
	ssl := env("SSL_MODE")
	if ssl == "" {
		ssl = "disable"
	}

	db, err := dbpostgres.Connect(ctx, config.DatabaseConfig{
		DBHost:     host,
		DBPort:     port,
		DBName:     name,
		DBUser:     usr,
		DBPassword: env("PASSWORD"),
		DBSSLMode:  ssl,
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	require.NoError(t, migration.Runner{}.Run(ctx, db.SQLDB()))
	return db
}

func createTestUser(t *testing.T, ctx context.Context, db database.DB) user.User {
	t.Helper()
	u, err := NewPostgresUserRepository(db).Create(ctx, user.User{
		Email: "it-" + uuid.NewString() + "@example.com",
		Name:  "Integration",
	})
	require.NoError(t, err)
	t.Cleanup(func() {
		_, _ = db.Exec(context.Background(), `DELETE FROM users WHERE id = $1`, u.ID)
	})
	return u
}

func TestIntegration_Users(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	db := connectTestDB(t, ctx)
	repo := NewPostgresUserRepository(db)

	u := createTestUser(t, ctx, db)

	_, err := repo.Create(ctx, user.User{Email: strings.ToUpper(u.Email), Name: "dup"})
	require.True(t, errors.Is(err, user.ErrEmailTaken))

	got, err := repo.GetByEmail(ctx, strings.ToUpper(u.Email))
	require.NoError(t, err)
	require.Equal(t, u.ID, got.ID)

	require.NoError(t, repo.MarkOnboarded(ctx, u.ID))
	got, err = repo.GetByID(ctx, u.ID)
	require.NoError(t, err)
	require.True(t, got.OnboardingComplete)

	_, err = repo.GetByID(ctx, uuid.New())
	require.True(t, errors.Is(err, user.ErrNotFound))
}

func TestIntegration_StudentProfileRoundTrip(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	db := connectTestDB(t, ctx)
	u := createTestUser(t, ctx, db)
	repo := NewPostgresStudentProfileRepository(db)

	gpa := 3.7
	in := user.Profile{
		UserID:                   u.ID,
		Major:                    "Computer Science",
		GPA:                      &gpa,
		CurrentSkills:            []string{"Python", "SQL", "Go"},
		TargetIndustries:         []string{"Fintech", "Healthcare"},
		PreferredContentTypes:    []string{"video"},
		ExtracurricularInterests: []string{"chess"},
		PlanningHorizonYears:     2,
		Analysis:                 user.Analysis{Strengths: []string{"math"}, CareerPaths: []string{"Data Engineer"}},
	}
	_, err := repo.Upsert(ctx, in)
	require.NoError(t, err)

	got, err := repo.GetByUserID(ctx, u.ID)
	require.NoError(t, err)
	require.Equal(t, in.CurrentSkills, got.CurrentSkills)
	require.Equal(t, in.TargetIndustries, got.TargetIndustries)
	require.Equal(t, in.Analysis, got.Analysis)
	require.Equal(t, 3.7, *got.GPA)

	in.Major = "Mathematics"
	_, err = repo.Upsert(ctx, in)
	require.NoError(t, err)
	got, err = repo.GetByUserID(ctx, u.ID)
	require.NoError(t, err)
	require.Equal(t, "Mathematics", got.Major)
}

func TestIntegration_GrowthPathSingleActiveAndIdempotentTrackers(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	db := connectTestDB(t, ctx)
	u := createTestUser(t, ctx, db)
	paths := NewPostgresGrowthPathRepository(db)
	trackers := NewPostgresProgressRepository(db)

	rm := roadmap.Roadmap{Phases: []roadmap.Phase{{
		Phase:    1,
		Title:    "Year 1",
		Courses:  []roadmap.Item{{ID: "c1", Name: "Intro"}},
		Projects: []roadmap.Item{{ID: "p1", Name: "Portfolio"}},
	}}}
	rm.Normalize()

	for i := 0; i < 2; i++ {
		gp := roadmap.GrowthPath{UserID: u.ID, Phase: 1, Roadmap: rm, GeneratedAt: time.Now()}
		n, err := paths.CreateActive(ctx, gp, roadmap.TrackerRows(rm.Items()))
		require.NoError(t, err)
		if i == 0 {
			require.Equal(t, 2, n)
		} else {
			require.Equal(t, 0, n)
		}
	}

	var active int
	require.NoError(t, db.QueryRow(ctx, `SELECT COUNT(*) FROM growth_paths WHERE user_id = $1 AND is_active`, u.ID).Scan(&active))
	require.Equal(t, 1, active)

	gp, err := paths.GetActive(ctx, u.ID)
	require.NoError(t, err)
	require.Equal(t, rm, gp.Roadmap)

	next := roadmap.Phase{Phase: 2, Courses: []roadmap.Item{{ID: "c21", Name: "Advanced Course"}}}
	next.Normalize()
	gp.Roadmap.Append(next)
	gp.Phase = 2
	n, err := paths.AppendPhase(ctx, gp, 1, roadmap.TrackerRows(next.Items()))
	require.NoError(t, err)
	require.Equal(t, 1, n)

	_, err = paths.AppendPhase(ctx, gp, 1, nil)
	require.True(t, errors.Is(err, roadmap.ErrPhaseConflict))

	list, err := trackers.ListByUser(ctx, u.ID)
	require.NoError(t, err)
	require.Len(t, list, 3)

	tr, err := trackers.GetByItem(ctx, u.ID, "p1")
	require.NoError(t, err)
	tr.Transition(progress.StatusCompleted, "shipped", time.Now())
	require.NoError(t, trackers.Update(ctx, tr))
	tr, err = trackers.GetByItem(ctx, u.ID, "p1")
	require.NoError(t, err)
	require.NotNil(t, tr.CompletionDate)
	require.Equal(t, roadmap.ItemProject, tr.ItemType)
}

func TestIntegration_ProfessionalAndTrends(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	db := connectTestDB(t, ctx)
	u := createTestUser(t, ctx, db)

	profiles := NewPostgresProfessionalProfileRepository(db)
	_, err := profiles.GetByUserID(ctx, u.ID)
	require.True(t, errors.Is(err, professional.ErrNotFound))

	p := professional.New(u.ID)
	p.Resume.AppendCompleted(roadmap.ItemProject, "Portfolio", []string{"Built a site"}, nil)
	_, err = profiles.Upsert(ctx, p)
	require.NoError(t, err)
	got, err := profiles.GetByUserID(ctx, u.ID)
	require.NoError(t, err)
	require.Equal(t, p.Resume, got.Resume)

	trends := NewPostgresTrendRepository(db)
	industry := "it-" + uuid.NewString()
	_, err = trends.Create(ctx, trend.Snapshot{Industry: industry, Trends: trend.Static()})
	require.NoError(t, err)
	t.Cleanup(func() {
		_, _ = db.Exec(context.Background(), `DELETE FROM simulated_trends WHERE industry = $1`, industry)
	})
	s, err := trends.Latest(ctx, industry)
	require.NoError(t, err)
	require.Equal(t, trend.Static(), s.Trends)
}
