package generation

import (
	"encoding/json"
	"fmt"
	"strings"

	"skillpath/internal/domain/professional"
	"skillpath/internal/domain/roadmap"
	"skillpath/internal/domain/user"
)

// CleanJSON strips surrounding code fences from model output.
func CleanJSON(s string) string {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "```") {
		s = strings.TrimPrefix(s, "```")
		if nl := strings.IndexByte(s, '\n'); nl >= 0 && !strings.ContainsAny(s[:nl], "{[") {
			s = s[nl+1:]
		} else {
			s = strings.TrimPrefix(s, "json")
		}
	}
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}

func decode(raw string, v any) error {
	cleaned := CleanJSON(raw)
	if cleaned == "" {
		return ErrEmptyOutput
	}
	if err := json.Unmarshal([]byte(cleaned), v); err != nil {
		return fmt.Errorf("parse model output: %w", err)
	}
	return nil
}

func parseAnalysis(raw string) (user.Analysis, error) {
	var a user.Analysis
	if err := decode(raw, &a); err != nil {
		return user.Analysis{}, err
	}
	if a.IsZero() {
		return user.Analysis{}, ErrEmptyOutput
	}
	return a, nil
}

// parseRoadmap keeps at most years phases and normalizes ids.
func parseRoadmap(raw string, years int) (roadmap.Roadmap, error) {
	var r roadmap.Roadmap
	if err := decode(raw, &r); err != nil {
		return roadmap.Roadmap{}, err
	}
	if len(r.Phases) == 0 {
		return roadmap.Roadmap{}, fmt.Errorf("%w: no phases", ErrEmptyOutput)
	}
	if years > 0 && len(r.Phases) > years {
		r.Phases = r.Phases[:years]
	}
	for i := range r.Phases {
		r.Phases[i].Phase = i + 1
	}
	r.Normalize()
	if err := r.Validate(); err != nil {
		return roadmap.Roadmap{}, err
	}
	return r, nil
}

// parsePhase forces the phase number to want and normalizes ids.
func parsePhase(raw string, want int) (roadmap.Phase, error) {
	var p roadmap.Phase
	if err := decode(raw, &p); err != nil {
		return roadmap.Phase{}, err
	}
	p.Phase = want
	p.Normalize()
	return p, nil
}

func parseBullets(raw string) ([]string, error) {
	var out struct {
		Bullets []string `json:"bullets"`
	}
	if err := decode(raw, &out); err != nil {
		return nil, err
	}
	bullets := make([]string, 0, len(out.Bullets))
	for _, b := range out.Bullets {
		if b = strings.TrimSpace(b); b != "" {
			bullets = append(bullets, b)
		}
	}
	if len(bullets) == 0 {
		return nil, fmt.Errorf("%w: no bullets", ErrEmptyOutput)
	}
	return bullets, nil
}

func parseLinkedIn(raw string) (professional.LinkedIn, error) {
	var l professional.LinkedIn
	if err := decode(raw, &l); err != nil {
		return professional.LinkedIn{}, err
	}
	if l.IsZero() {
		return professional.LinkedIn{}, ErrEmptyOutput
	}
	l.EnsureLists()
	for i := range l.PostIdeas {
		if l.PostIdeas[i].Hashtags == nil {
			l.PostIdeas[i].Hashtags = []string{}
		}
	}
	return l, nil
}
