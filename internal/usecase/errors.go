package usecase

import "errors"

var (
	ErrInvalidInput         = errors.New("invalid input")
	ErrInternal             = errors.New("internal error")
	ErrUserNotFound         = errors.New("user not found")
	ErrEmailTaken           = errors.New("user already exists")
	ErrProfileNotFound      = errors.New("profile not found")
	ErrNoActivePath         = errors.New("no active growth path found")
	ErrTrackerNotFound      = errors.New("progress tracker not found")
	ErrNoTasks              = errors.New("no tasks found")
	ErrTasksIncomplete      = errors.New("all tasks must be completed before extending")
	ErrGeneratorUnavailable = errors.New("generation service not available")
	ErrConcurrentExtension  = errors.New("growth path is being extended")
	ErrNoTrackersCreated    = errors.New("extension created no new tasks")
	ErrTrendNotFound        = errors.New("trend snapshot not found")
)
