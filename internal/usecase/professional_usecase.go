package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"skillpath/internal/domain/event"
	"skillpath/internal/domain/professional"
	"skillpath/internal/domain/progress"
	"skillpath/internal/domain/roadmap"
	"skillpath/internal/domain/user"
	"skillpath/internal/generation"
	"skillpath/internal/pkg/logger"

	"github.com/google/uuid"
)

type ResumeView struct {
	Resume        professional.Resume
	LastGenerated *time.Time
}

type RefreshResult struct {
	Profile     professional.Profile
	SideEffects []StepResult
}

type ProfessionalUsecase interface {
	Resume(ctx context.Context, userID uuid.UUID) (ResumeView, error)
	LinkedIn(ctx context.Context, userID uuid.UUID) (professional.LinkedIn, error)
	Refresh(ctx context.Context, userID uuid.UUID) (RefreshResult, error)
}

type Professional struct {
	users    user.Repository
	profiles professional.Repository
	learners learnerContextLoader
	gen      generation.Client
	cache    Cache
	cacheTTL time.Duration
	events   event.Publisher
	logger   *logger.Logger
	now      func() time.Time
}

type ProfessionalDeps struct {
	Users     user.Repository
	Profiles  professional.Repository
	Students  user.ProfileRepository
	Trackers  progress.Repository
	Paths     roadmap.Repository
	Generator generation.Client
	Cache     Cache
	CacheTTL  time.Duration
	Events    event.Publisher
	Logger    *logger.Logger
}

func NewProfessionalUsecase(d ProfessionalDeps) *Professional {
	return &Professional{
		users:    d.Users,
		profiles: d.Profiles,
		learners: learnerContextLoader{profiles: d.Students, trackers: d.Trackers, paths: d.Paths},
		gen:      d.Generator,
		cache:    d.Cache,
		cacheTTL: d.CacheTTL,
		events:   orNopPublisher(d.Events),
		logger:   logger.OrNop(d.Logger),
		now:      time.Now,
	}
}

func (u *Professional) Resume(ctx context.Context, userID uuid.UUID) (ResumeView, error) {
	p, err := u.profiles.GetByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, professional.ErrNotFound) {
			return ResumeView{}, ErrProfileNotFound
		}
		return ResumeView{}, fmt.Errorf("load professional profile: %w", err)
	}
	p.Resume.EnsureLists()
	return ResumeView{Resume: p.Resume, LastGenerated: p.LastGenerated}, nil
}

// LinkedIn reads suggestions from the cache, then the stored profile, and
// generates and stores them when neither has any. Without a working
// generator the result is empty.
func (u *Professional) LinkedIn(ctx context.Context, userID uuid.UUID) (professional.LinkedIn, error) {
	key := LinkedInCacheKey(userID.String())
	if u.cache != nil {
		var cached professional.LinkedIn
		if hit, err := u.cache.GetJSON(ctx, key, &cached); err == nil && hit {
			cached.EnsureLists()
			return cached, nil
		}
	}

	p, err := u.profiles.GetByUserID(ctx, userID)
	switch {
	case err == nil:
		if !p.LinkedIn.IsZero() {
			u.cacheLinkedIn(ctx, key, p.LinkedIn)
			return p.LinkedIn, nil
		}
	case errors.Is(err, professional.ErrNotFound):
		p = professional.New(userID)
	default:
		return professional.LinkedIn{}, fmt.Errorf("load professional profile: %w", err)
	}

	empty := professional.LinkedIn{}
	empty.EnsureLists()
	if u.gen == nil || !u.gen.Available() {
		return empty, nil
	}

	l, err := u.generateLinkedIn(ctx, userID)
	if err != nil {
		u.logger.Warn("linkedin suggestions unavailable", "user_id", userID, "error", err)
		return empty, nil
	}

	p.LinkedIn = l
	if _, err := u.profiles.Upsert(ctx, p); err != nil {
		return professional.LinkedIn{}, fmt.Errorf("save professional profile: %w", err)
	}
	u.cacheLinkedIn(ctx, key, l)
	return l, nil
}

// Refresh regenerates LinkedIn content and stores it, replacing the cached copy.
func (u *Professional) Refresh(ctx context.Context, userID uuid.UUID) (RefreshResult, error) {
	if _, err := u.users.GetByID(ctx, userID); err != nil {
		if errors.Is(err, user.ErrNotFound) {
			return RefreshResult{}, ErrUserNotFound
		}
		return RefreshResult{}, fmt.Errorf("load user: %w", err)
	}
	if u.gen == nil || !u.gen.Available() {
		return RefreshResult{}, ErrGeneratorUnavailable
	}

	l, genErr := u.generateLinkedIn(ctx, userID)
	steps := []StepResult{generationStep("linkedin_content", genErr)}

	p, err := u.profiles.GetByUserID(ctx, userID)
	switch {
	case errors.Is(err, professional.ErrNotFound):
		p = professional.New(userID)
	case err != nil:
		return RefreshResult{}, fmt.Errorf("load professional profile: %w", err)
	}
	p.LinkedIn = l
	now := u.now().UTC()
	p.LastGenerated = &now

	saved, err := u.profiles.Upsert(ctx, p)
	if err != nil {
		return RefreshResult{}, fmt.Errorf("save professional profile: %w", err)
	}
	u.cacheLinkedIn(ctx, LinkedInCacheKey(userID.String()), l)

	publish(ctx, u.events, u.logger, event.New(event.ProfileRefreshed, userID, map[string]any{
		"post_ideas": len(l.PostIdeas),
	}))
	return RefreshResult{Profile: saved, SideEffects: steps}, nil
}

// generateLinkedIn returns the generated content, or the fallback content and
// the generation error.
func (u *Professional) generateLinkedIn(ctx context.Context, userID uuid.UUID) (professional.LinkedIn, error) {
	usr, err := u.users.GetByID(ctx, userID)
	if err != nil && !errors.Is(err, user.ErrNotFound) {
		return professional.LinkedIn{}, fmt.Errorf("load user: %w", err)
	}
	lc, err := u.learners.load(ctx, userID)
	if err != nil {
		return professional.LinkedIn{}, err
	}
	return u.gen.LinkedInContent(ctx, generation.LinkedInInput{
		Name:               usr.Name,
		Profile:            lc.Profile,
		CareerGoal:         lc.CareerGoal,
		RecentAchievements: lc.RecentAchievements,
		NewSkills:          lc.Profile.CurrentSkills,
	})
}

func (u *Professional) cacheLinkedIn(ctx context.Context, key string, l professional.LinkedIn) {
	if u.cache == nil {
		return
	}
	if err := u.cache.SetJSON(ctx, key, l, u.cacheTTL); err != nil {
		u.logger.Debug("linkedin cache write failed", "key", key, "error", err)
	}
}
