package usecase

import (
	"context"
	"errors"
	"fmt"

	"skillpath/internal/domain/progress"
	"skillpath/internal/domain/roadmap"
	"skillpath/internal/domain/user"

	"github.com/google/uuid"
)

const recentAchievementLimit = 5

// learnerContext is the progress snapshot passed to encouragement and
// LinkedIn generation.
type learnerContext struct {
	Profile            user.Profile
	CompletedCount     int
	CurrentPhase       int
	CareerGoal         string
	RecentAchievements []string
}

type learnerContextLoader struct {
	profiles user.ProfileRepository
	trackers progress.Repository
	paths    roadmap.Repository
}

func (l learnerContextLoader) load(ctx context.Context, userID uuid.UUID) (learnerContext, error) {
	profile, err := l.profiles.GetByUserID(ctx, userID)
	if err != nil && !errors.Is(err, user.ErrProfileNotFound) {
		return learnerContext{}, fmt.Errorf("load profile: %w", err)
	}
	trackers, err := l.trackers.ListByUser(ctx, userID)
	if err != nil {
		return learnerContext{}, fmt.Errorf("list trackers: %w", err)
	}

	lc := learnerContext{
		Profile:      profile,
		CareerGoal:   profile.Analysis.TargetRole(),
		CurrentPhase: 1,
	}
	for _, t := range progress.RecentCompleted(trackers, recentAchievementLimit) {
		lc.RecentAchievements = append(lc.RecentAchievements, t.ItemName)
	}
	for _, t := range trackers {
		if t.IsCompleted() {
			lc.CompletedCount++
		}
	}

	if l.paths != nil {
		gp, err := l.paths.GetActive(ctx, userID)
		switch {
		case err == nil && gp.Phase > 0:
			lc.CurrentPhase = gp.Phase
		case err != nil && !errors.Is(err, roadmap.ErrNoActivePath):
			return learnerContext{}, fmt.Errorf("load growth path: %w", err)
		}
	}
	return lc, nil
}
