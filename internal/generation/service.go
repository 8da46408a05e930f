package generation

import (
	"context"
	"strings"
	"time"

	"skillpath/internal/domain/professional"
	"skillpath/internal/domain/roadmap"
	"skillpath/internal/domain/user"
	"skillpath/internal/generation/prompts"
	"skillpath/internal/pkg/logger"
)

// Service implements Client on top of a Model.
type Service struct {
	model   Model
	timeout time.Duration
	logger  *logger.Logger
}

func NewService(model Model, timeout time.Duration, log *logger.Logger) *Service {
	return &Service{model: model, timeout: timeout, logger: logger.OrNop(log)}
}

func (s *Service) Available() bool { return s != nil && s.model != nil }

func (s *Service) call(ctx context.Context, entry, tmpl string, data any, opts Options) (string, error) {
	prompt, err := prompts.Render(tmpl, data)
	if err != nil {
		return "", err
	}
	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}
	start := time.Now()
	out, err := s.model.Generate(ctx, prompt, opts)
	if err != nil {
		return "", err
	}
	s.logger.Debug("generation call", "entry", entry, "duration_ms", time.Since(start).Milliseconds())
	return out, nil
}

func (s *Service) fallback(entry string, err error) {
	s.logger.Warn("generation fallback", "entry", entry, "error", err)
}

func (s *Service) AnalyzeProfile(ctx context.Context, in AnalysisInput) (user.Analysis, error) {
	raw, err := s.call(ctx, "analyze_profile", prompts.Analysis, in, jsonOptions)
	if err == nil {
		var a user.Analysis
		if a, err = parseAnalysis(raw); err == nil {
			return a, nil
		}
	}
	s.fallback("analyze_profile", err)
	return FallbackAnalysis(), err
}

func (s *Service) GenerateRoadmap(ctx context.Context, in RoadmapInput) (roadmap.Roadmap, error) {
	raw, err := s.call(ctx, "generate_roadmap", prompts.Roadmap, in, jsonOptions)
	if err == nil {
		var r roadmap.Roadmap
		if r, err = parseRoadmap(raw, in.Years); err == nil {
			return r, nil
		}
	}
	s.fallback("generate_roadmap", err)
	return FallbackRoadmap(), err
}

func (s *Service) ExtendRoadmap(ctx context.Context, in ExtensionInput) (roadmap.Phase, error) {
	raw, err := s.call(ctx, "extend_roadmap", prompts.Extension, in, jsonOptions)
	if err == nil {
		var p roadmap.Phase
		if p, err = parsePhase(raw, in.Phase); err == nil {
			return p, nil
		}
	}
	s.fallback("extend_roadmap", err)
	return FallbackPhase(in.Phase), err
}

func (s *Service) ResumeBullets(ctx context.Context, in BulletsInput) ([]string, error) {
	opts := Options{JSON: true, Temperature: 0.7, MaxOutputTokens: 500}
	raw, err := s.call(ctx, "resume_bullets", prompts.ResumeBullets, in, opts)
	if err == nil {
		var b []string
		if b, err = parseBullets(raw); err == nil {
			return b, nil
		}
	}
	s.fallback("resume_bullets", err)
	return FallbackBullets(in), err
}

func (s *Service) Encouragement(ctx context.Context, in EncouragementInput) (string, error) {
	raw, err := s.call(ctx, "encouragement", prompts.Encouragement, in, textOptions)
	if err == nil {
		if msg := strings.TrimSpace(raw); msg != "" {
			return msg, nil
		}
		err = ErrEmptyOutput
	}
	s.fallback("encouragement", err)
	return FallbackEncouragement(in.ItemName), err
}

func (s *Service) LinkedInContent(ctx context.Context, in LinkedInInput) (professional.LinkedIn, error) {
	opts := Options{JSON: true, Temperature: 0.8, MaxOutputTokens: 1200}
	raw, err := s.call(ctx, "linkedin_content", prompts.LinkedIn, in, opts)
	if err == nil {
		var l professional.LinkedIn
		if l, err = parseLinkedIn(raw); err == nil {
			return l, nil
		}
	}
	s.fallback("linkedin_content", err)
	return FallbackLinkedIn(in), err
}
