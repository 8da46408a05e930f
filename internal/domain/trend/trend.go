package trend

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

var ErrNotFound = errors.New("trend snapshot not found")

const (
	SourceStatic  = "static"
	SourceScraped = "scraped"
)

type Trends struct {
	HotSkills      []string `json:"hot_skills"`
	EmergingRoles  []string `json:"emerging_roles"`
	Certifications []string `json:"certifications"`
	IndustryGrowth string   `json:"industry_growth"`
	Source         string   `json:"source"`
}

type Snapshot struct {
	ID          uuid.UUID
	Industry    string
	Trends      Trends
	GeneratedAt time.Time
}

// Static is the built-in snapshot used when nothing better is known.
func Static() Trends {
	return Trends{
		HotSkills:      []string{"AI/ML", "Cloud Computing", "Data Analysis", "Cybersecurity"},
		EmergingRoles:  []string{"ML Engineer", "Data Scientist", "Cloud Architect"},
		Certifications: []string{"AWS Certified", "Google Cloud", "Azure Fundamentals"},
		IndustryGrowth: "15% YoY",
		Source:         SourceStatic,
	}
}

// NormalizeIndustry is the lookup key for an industry name.
func NormalizeIndustry(s string) string {
	return strings.ToLower(strings.Join(strings.Fields(s), " "))
}

// Slug turns an industry into a tag slug: "Data Science" -> "datascience".
func Slug(s string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(s) {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// Describe renders the snapshot as a paragraph for prompts.
func (t Trends) Describe() string {
	return fmt.Sprintf(
		"Hot skills: %s. Emerging roles: %s. In-demand certifications: %s. Industry growth: %s.",
		joinOrNone(t.HotSkills), joinOrNone(t.EmergingRoles), joinOrNone(t.Certifications), orNone(t.IndustryGrowth),
	)
}

func joinOrNone(xs []string) string {
	if len(xs) == 0 {
		return "none"
	}
	return strings.Join(xs, ", ")
}

func orNone(s string) string {
	if strings.TrimSpace(s) == "" {
		return "unknown"
	}
	return s
}

type Repository interface {
	Create(ctx context.Context, s Snapshot) (Snapshot, error)
	Latest(ctx context.Context, industry string) (Snapshot, error)
}
