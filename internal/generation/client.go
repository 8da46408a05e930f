// Package generation turns profile and progress snapshots into prompts, asks a
// hosted model for structured output and parses it into domain types. Every
// entry point returns a schema-valid value: on failure the value is the entry
// point's fallback and the error says why.
package generation

import (
	"context"
	"errors"

	"skillpath/internal/domain/professional"
	"skillpath/internal/domain/roadmap"
	"skillpath/internal/domain/user"
)

var (
	// ErrUnavailable is returned by every method of Unavailable.
	ErrUnavailable = errors.New("generation client unavailable")
	ErrEmptyOutput = errors.New("model returned no usable content")
)

type Client interface {
	// Available is false when no model is configured.
	Available() bool

	AnalyzeProfile(ctx context.Context, in AnalysisInput) (user.Analysis, error)
	GenerateRoadmap(ctx context.Context, in RoadmapInput) (roadmap.Roadmap, error)
	ExtendRoadmap(ctx context.Context, in ExtensionInput) (roadmap.Phase, error)
	ResumeBullets(ctx context.Context, in BulletsInput) ([]string, error)
	Encouragement(ctx context.Context, in EncouragementInput) (string, error)
	LinkedInContent(ctx context.Context, in LinkedInInput) (professional.LinkedIn, error)
}

type AnalysisInput struct {
	user.Profile
	Years int
}

type RoadmapInput struct {
	Profile  user.Profile
	Analysis user.Analysis
	Years    int
	// Trends is a prose paragraph describing current industry trends.
	Trends string
}

func (in RoadmapInput) TargetRole() string { return in.Analysis.TargetRole() }

func (in RoadmapInput) Gaps() []string { return in.Analysis.Gaps }

type ExtensionInput struct {
	Profile   user.Profile
	Analysis  user.Analysis
	Completed []roadmap.TrackedItem
	Phase     int
}

func (in ExtensionInput) TargetRole() string { return in.Analysis.TargetRole() }

type BulletsInput struct {
	ItemType    roadmap.ItemType
	Title       string
	Description string
	Skills      []string
	TargetRole  string
}

type EncouragementInput struct {
	ItemName       string
	ItemType       roadmap.ItemType
	CompletedCount int
	CurrentPhase   int
	CareerGoal     string
}

type LinkedInInput struct {
	Name               string
	Profile            user.Profile
	CareerGoal         string
	RecentAchievements []string
	NewSkills          []string
}
