package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"skillpath/internal/config"
	"skillpath/internal/domain/event"
	"skillpath/internal/domain/progress"
	"skillpath/internal/domain/roadmap"
	"skillpath/internal/domain/trend"
	"skillpath/internal/domain/user"
	"skillpath/internal/generation"
	"skillpath/internal/pkg/logger"

	"github.com/google/uuid"
)

// Extension context is bounded to the most recently completed items.
const extensionContextLimit = 10

// DefaultTrendIndustry is consulted when the profile's industry has no snapshot.
const DefaultTrendIndustry = "general"

type GenerateResult struct {
	GrowthPath      roadmap.GrowthPath
	TrackersCreated int
	SideEffects     []StepResult
}

type ExtendResult struct {
	GrowthPath      roadmap.GrowthPath
	Phase           roadmap.Phase
	TrackersCreated int
	SideEffects     []StepResult
}

// ActiveGrowthPath is the active path with the user's trackers keyed by item id.
type ActiveGrowthPath struct {
	GrowthPath roadmap.GrowthPath
	Progress   map[string]progress.Tracker
}

type GrowthPathUsecase interface {
	Generate(ctx context.Context, userID uuid.UUID) (GenerateResult, error)
	GetActive(ctx context.Context, userID uuid.UUID) (ActiveGrowthPath, error)
	Extend(ctx context.Context, userID uuid.UUID) (ExtendResult, error)
}

type GrowthPathDeps struct {
	Users     user.Repository
	Profiles  user.ProfileRepository
	Paths     roadmap.Repository
	Trackers  progress.Repository
	Trends    trend.Repository
	Generator generation.Client
	Locker    Locker
	Events    event.Publisher
	Planner   config.PlannerConfig
	Logger    *logger.Logger
}

type GrowthPath struct {
	users    user.Repository
	profiles user.ProfileRepository
	paths    roadmap.Repository
	trackers progress.Repository
	trends   trend.Repository
	gen      generation.Client
	locker   Locker
	events   event.Publisher
	planner  config.PlannerConfig
	logger   *logger.Logger
	now      func() time.Time
}

func NewGrowthPathUsecase(d GrowthPathDeps) *GrowthPath {
	return &GrowthPath{
		users:    d.Users,
		profiles: d.Profiles,
		paths:    d.Paths,
		trackers: d.Trackers,
		trends:   d.Trends,
		gen:      d.Generator,
		locker:   d.Locker,
		events:   orNopPublisher(d.Events),
		planner:  d.Planner,
		logger:   logger.OrNop(d.Logger),
		now:      time.Now,
	}
}

// Generate replaces the user's active roadmap with a freshly generated one
// and creates a not_started tracker for every item.
func (u *GrowthPath) Generate(ctx context.Context, userID uuid.UUID) (GenerateResult, error) {
	if err := u.requireUser(ctx, userID); err != nil {
		return GenerateResult{}, err
	}
	profile, err := u.profiles.GetByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, user.ErrProfileNotFound) {
			return GenerateResult{}, ErrProfileNotFound
		}
		return GenerateResult{}, fmt.Errorf("load profile: %w", err)
	}
	if u.gen == nil || !u.gen.Available() {
		return GenerateResult{}, ErrGeneratorUnavailable
	}

	years := profile.HorizonYears(u.planner.DefaultHorizonYears, u.planner.MaxHorizonYears)
	r, genErr := u.gen.GenerateRoadmap(ctx, generation.RoadmapInput{
		Profile:  profile,
		Analysis: profile.Analysis,
		Years:    years,
		Trends:   u.trendText(ctx, profile.PrimaryIndustry()),
	})
	steps := []StepResult{generationStep("generate_roadmap", genErr)}

	r.Normalize()
	if err := r.Validate(); err != nil {
		return GenerateResult{}, fmt.Errorf("generated roadmap: %w", err)
	}

	gp := roadmap.GrowthPath{
		ID:          uuid.New(),
		UserID:      userID,
		Phase:       len(r.Phases),
		Roadmap:     r,
		GeneratedAt: u.now().UTC(),
		IsActive:    true,
	}
	created, err := u.paths.CreateActive(ctx, gp, roadmap.TrackerRows(r.Items()))
	if err != nil {
		return GenerateResult{}, fmt.Errorf("store growth path: %w", err)
	}

	u.logger.Info("growth path generated", "user_id", userID, "phases", len(r.Phases), "trackers_created", created)
	publish(ctx, u.events, u.logger, event.New(event.GrowthPathGenerated, userID, map[string]any{
		"growth_path_id":   gp.ID,
		"phases":           len(r.Phases),
		"trackers_created": created,
	}))
	return GenerateResult{GrowthPath: gp, TrackersCreated: created, SideEffects: steps}, nil
}

func (u *GrowthPath) GetActive(ctx context.Context, userID uuid.UUID) (ActiveGrowthPath, error) {
	gp, err := u.paths.GetActive(ctx, userID)
	if err != nil {
		if errors.Is(err, roadmap.ErrNoActivePath) {
			return ActiveGrowthPath{}, ErrNoActivePath
		}
		return ActiveGrowthPath{}, fmt.Errorf("load growth path: %w", err)
	}
	trackers, err := u.trackers.ListByUser(ctx, userID)
	if err != nil {
		return ActiveGrowthPath{}, fmt.Errorf("list trackers: %w", err)
	}
	return ActiveGrowthPath{GrowthPath: gp, Progress: progress.Index(trackers)}, nil
}

// Extend appends the next phase once every tracked item is completed. A
// per-user lock serializes callers; the stored phase counter is re-checked on
// write so a lost race is reported as ErrConcurrentExtension.
//
// When the new phase adds no untracked items the extension is still stored and
// the result is returned together with ErrNoTrackersCreated.
func (u *GrowthPath) Extend(ctx context.Context, userID uuid.UUID) (ExtendResult, error) {
	if err := u.requireUser(ctx, userID); err != nil {
		return ExtendResult{}, err
	}
	gp, err := u.paths.GetActive(ctx, userID)
	if err != nil {
		if errors.Is(err, roadmap.ErrNoActivePath) {
			return ExtendResult{}, ErrNoActivePath
		}
		return ExtendResult{}, fmt.Errorf("load growth path: %w", err)
	}
	trackers, err := u.trackers.ListByUser(ctx, userID)
	if err != nil {
		return ExtendResult{}, fmt.Errorf("list trackers: %w", err)
	}
	if len(trackers) == 0 {
		return ExtendResult{}, ErrNoTasks
	}
	if !progress.AllCompleted(trackers) {
		return ExtendResult{}, ErrTasksIncomplete
	}
	if u.gen == nil || !u.gen.Available() {
		return ExtendResult{}, ErrGeneratorUnavailable
	}

	unlock, err := u.lock(ctx, userID)
	if err != nil {
		return ExtendResult{}, err
	}
	defer unlock()

	profile, err := u.profiles.GetByUserID(ctx, userID)
	if err != nil && !errors.Is(err, user.ErrProfileNotFound) {
		return ExtendResult{}, fmt.Errorf("load profile: %w", err)
	}

	recent := progress.RecentCompleted(trackers, extensionContextLimit)
	completed := make([]roadmap.TrackedItem, 0, len(recent))
	for _, t := range recent {
		completed = append(completed, roadmap.TrackedItem{Type: t.ItemType, Name: t.ItemName})
	}

	next := gp.Roadmap.NextPhase()
	phase, genErr := u.gen.ExtendRoadmap(ctx, generation.ExtensionInput{
		Profile:   profile,
		Analysis:  profile.Analysis,
		Completed: completed,
		Phase:     next,
	})
	steps := []StepResult{generationStep("extend_roadmap", genErr)}

	phase.Phase = next
	phase.NormalizeAgainst(gp.Roadmap)

	expected := gp.Phase
	gp.Roadmap.Append(phase)
	gp.Phase = next

	created, err := u.paths.AppendPhase(ctx, gp, expected, roadmap.TrackerRows(phase.Items()))
	if err != nil {
		switch {
		case errors.Is(err, roadmap.ErrPhaseConflict):
			return ExtendResult{}, ErrConcurrentExtension
		case errors.Is(err, roadmap.ErrNoActivePath):
			return ExtendResult{}, ErrNoActivePath
		}
		return ExtendResult{}, fmt.Errorf("store extension: %w", err)
	}

	u.logger.Info("growth path extended", "user_id", userID, "phase", next, "trackers_created", created)
	publish(ctx, u.events, u.logger, event.New(event.GrowthPathExtended, userID, map[string]any{
		"growth_path_id":   gp.ID,
		"phase":            next,
		"trackers_created": created,
	}))

	res := ExtendResult{GrowthPath: gp, Phase: phase, TrackersCreated: created, SideEffects: steps}
	if created == 0 {
		u.logger.Warn("extension created no trackers", "user_id", userID, "phase", next)
		return res, ErrNoTrackersCreated
	}
	return res, nil
}

func (u *GrowthPath) lock(ctx context.Context, userID uuid.UUID) (func(), error) {
	if u.locker == nil {
		return func() {}, nil
	}
	key := ExtendLockKey(userID.String())
	token, ok, err := u.locker.TryLock(ctx, key, u.planner.ExtendLockTTL)
	if err != nil {
		// The phase check on write still guards the update.
		u.logger.Warn("extend lock unavailable", "user_id", userID, "error", err)
		return func() {}, nil
	}
	if !ok {
		return nil, ErrConcurrentExtension
	}
	return func() {
		if err := u.locker.Unlock(context.WithoutCancel(ctx), key, token); err != nil {
			u.logger.Warn("extend unlock failed", "user_id", userID, "error", err)
		}
	}, nil
}

// trendText describes the latest snapshot for the industry, then the default
// snapshot, then the built-in one.
func (u *GrowthPath) trendText(ctx context.Context, industry string) string {
	if u.trends != nil {
		for _, ind := range []string{industry, DefaultTrendIndustry} {
			if ind == "" {
				continue
			}
			s, err := u.trends.Latest(ctx, ind)
			if err == nil {
				return s.Trends.Describe()
			}
			if !errors.Is(err, trend.ErrNotFound) {
				u.logger.Warn("trend lookup failed", "industry", ind, "error", err)
				break
			}
		}
	}
	return trend.Static().Describe()
}

func (u *GrowthPath) requireUser(ctx context.Context, userID uuid.UUID) error {
	if _, err := u.users.GetByID(ctx, userID); err != nil {
		if errors.Is(err, user.ErrNotFound) {
			return ErrUserNotFound
		}
		return fmt.Errorf("load user: %w", err)
	}
	return nil
}
