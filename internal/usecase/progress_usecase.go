package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"skillpath/internal/domain/event"
	"skillpath/internal/domain/progress"
	"skillpath/internal/domain/roadmap"
	"skillpath/internal/domain/user"
	"skillpath/internal/generation"
	"skillpath/internal/pkg/logger"

	"github.com/google/uuid"
)

type UpdateProgressInput struct {
	UserID uuid.UUID
	ItemID string
	Status string
	Notes  string
}

type UpdateProgressResult struct {
	Tracker      progress.Tracker
	AllCompleted bool
	SideEffects  []StepResult
}

type ProgressUsecase interface {
	Update(ctx context.Context, in UpdateProgressInput) (UpdateProgressResult, error)
	Summary(ctx context.Context, userID uuid.UUID) (progress.Summary, error)
	Tasks(ctx context.Context, userID uuid.UUID) ([]progress.Tracker, error)
}

type Progress struct {
	trackers progress.Repository
	learners learnerContextLoader
	gen      generation.Client
	updater  *ProfessionalUpdater
	events   event.Publisher
	logger   *logger.Logger
	now      func() time.Time
}

func NewProgressUsecase(
	trackers progress.Repository,
	profiles user.ProfileRepository,
	paths roadmap.Repository,
	gen generation.Client,
	updater *ProfessionalUpdater,
	events event.Publisher,
	log *logger.Logger,
) *Progress {
	return &Progress{
		trackers: trackers,
		learners: learnerContextLoader{profiles: profiles, trackers: trackers, paths: paths},
		gen:      gen,
		updater:  updater,
		events:   orNopPublisher(events),
		logger:   logger.OrNop(log),
		now:      time.Now,
	}
}

// Update changes one tracker's status and notes. Completing an item stores an
// encouragement message and updates the resume; each side effect is reported
// in the result.
func (u *Progress) Update(ctx context.Context, in UpdateProgressInput) (UpdateProgressResult, error) {
	itemID := strings.TrimSpace(in.ItemID)
	if in.UserID == uuid.Nil || itemID == "" || strings.TrimSpace(in.Status) == "" {
		return UpdateProgressResult{}, fmt.Errorf("%w: user_id, item_id, and status are required", ErrInvalidInput)
	}
	status, ok := progress.ParseStatus(in.Status)
	if !ok {
		return UpdateProgressResult{}, fmt.Errorf("%w: status must be one of not_started, in_progress, completed", ErrInvalidInput)
	}

	t, err := u.trackers.GetByItem(ctx, in.UserID, itemID)
	if err != nil {
		if errors.Is(err, progress.ErrNotFound) {
			return UpdateProgressResult{}, ErrTrackerNotFound
		}
		return UpdateProgressResult{}, fmt.Errorf("load tracker: %w", err)
	}
	wasCompleted := t.IsCompleted()
	t.Transition(status, in.Notes, u.now())

	var steps []StepResult
	if t.IsCompleted() {
		steps = append(steps, u.encourage(ctx, &t, wasCompleted))
	}

	if err := u.trackers.Update(ctx, t); err != nil {
		if errors.Is(err, progress.ErrNotFound) {
			return UpdateProgressResult{}, ErrTrackerNotFound
		}
		return UpdateProgressResult{}, fmt.Errorf("save tracker: %w", err)
	}

	if t.IsCompleted() && u.updater != nil {
		steps = append(steps, u.updater.Apply(ctx, t))
	}

	all, err := u.trackers.ListByUser(ctx, in.UserID)
	if err != nil {
		return UpdateProgressResult{}, fmt.Errorf("list trackers: %w", err)
	}
	allCompleted := progress.AllCompleted(all)

	publish(ctx, u.events, u.logger, event.New(event.ProgressUpdated, in.UserID, map[string]any{
		"item_id":       t.ItemID,
		"status":        t.Status,
		"all_completed": allCompleted,
	}))
	if t.IsCompleted() {
		publish(ctx, u.events, u.logger, event.New(event.ItemCompleted, in.UserID, map[string]any{
			"item_id":               t.ItemID,
			"item_type":             t.ItemType,
			"item_name":             t.ItemName,
			"encouragement_message": t.EncouragementMessage,
		}))
	}

	return UpdateProgressResult{Tracker: t, AllCompleted: allCompleted, SideEffects: steps}, nil
}

func (u *Progress) encourage(ctx context.Context, t *progress.Tracker, wasCompleted bool) StepResult {
	const step = "encouragement"
	lc, err := u.learners.load(ctx, t.UserID)
	if err != nil {
		t.EncouragementMessage = generation.FallbackEncouragement(t.ItemName)
		return StepResult{Step: step, Status: StepFallback, Error: err.Error()}
	}
	count := lc.CompletedCount
	if !wasCompleted {
		count++
	}

	gen := u.gen
	if gen == nil || !gen.Available() {
		gen = generation.Unavailable{}
	}
	msg, genErr := gen.Encouragement(ctx, generation.EncouragementInput{
		ItemName:       t.ItemName,
		ItemType:       t.ItemType,
		CompletedCount: count,
		CurrentPhase:   lc.CurrentPhase,
		CareerGoal:     lc.CareerGoal,
	})
	if strings.TrimSpace(msg) == "" {
		msg = generation.FallbackEncouragement(t.ItemName)
	}
	t.EncouragementMessage = msg
	return generationStep(step, genErr)
}

func (u *Progress) Summary(ctx context.Context, userID uuid.UUID) (progress.Summary, error) {
	trackers, err := u.trackers.ListByUser(ctx, userID)
	if err != nil {
		return progress.Summary{}, fmt.Errorf("list trackers: %w", err)
	}
	return progress.Summarize(trackers), nil
}

func (u *Progress) Tasks(ctx context.Context, userID uuid.UUID) ([]progress.Tracker, error) {
	trackers, err := u.trackers.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list trackers: %w", err)
	}
	if trackers == nil {
		trackers = []progress.Tracker{}
	}
	return trackers, nil
}
