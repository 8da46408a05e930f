package generation

import (
	"context"
	"errors"

	"skillpath/internal/config"
	"skillpath/internal/domain/professional"
	"skillpath/internal/domain/roadmap"
	"skillpath/internal/domain/user"
	"skillpath/internal/pkg/logger"
)

// Unavailable is the Client used when no model is configured. Every method
// returns its fallback together with ErrUnavailable.
type Unavailable struct{}

func (Unavailable) Available() bool { return false }

func (Unavailable) AnalyzeProfile(context.Context, AnalysisInput) (user.Analysis, error) {
	return FallbackAnalysis(), ErrUnavailable
}

func (Unavailable) GenerateRoadmap(context.Context, RoadmapInput) (roadmap.Roadmap, error) {
	return FallbackRoadmap(), ErrUnavailable
}

func (Unavailable) ExtendRoadmap(_ context.Context, in ExtensionInput) (roadmap.Phase, error) {
	return FallbackPhase(in.Phase), ErrUnavailable
}

func (Unavailable) ResumeBullets(_ context.Context, in BulletsInput) ([]string, error) {
	return FallbackBullets(in), ErrUnavailable
}

func (Unavailable) Encouragement(_ context.Context, in EncouragementInput) (string, error) {
	return FallbackEncouragement(in.ItemName), ErrUnavailable
}

func (Unavailable) LinkedInContent(_ context.Context, in LinkedInInput) (professional.LinkedIn, error) {
	return FallbackLinkedIn(in), ErrUnavailable
}

// New returns a Gemini-backed client when an API key is configured, and
// Unavailable otherwise.
func New(ctx context.Context, cfg config.GeminiConfig, log *logger.Logger) (Client, error) {
	model, err := NewGemini(ctx, cfg)
	if err != nil {
		if errors.Is(err, ErrNoAPIKey) {
			return Unavailable{}, nil
		}
		return Unavailable{}, err
	}
	return NewService(model, cfg.Timeout, log), nil
}
