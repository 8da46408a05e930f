package user

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

type User struct {
	ID                 uuid.UUID
	Email              string
	Name               string
	CreatedAt          time.Time
	OnboardingComplete bool
}

func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

type Analysis struct {
	Strengths    []string `json:"strengths"`
	Gaps         []string `json:"gaps"`
	CareerPaths  []string `json:"career_paths"`
	LearningTips []string `json:"learning_tips"`
}

// TargetRole is the most specific recommended career path.
func (a Analysis) TargetRole() string {
	for _, p := range a.CareerPaths {
		if p = strings.TrimSpace(p); p != "" {
			return p
		}
	}
	return "Professional"
}

func (a Analysis) IsZero() bool {
	return len(a.Strengths) == 0 && len(a.Gaps) == 0 && len(a.CareerPaths) == 0 && len(a.LearningTips) == 0
}

type Profile struct {
	ID                       uuid.UUID
	UserID                   uuid.UUID
	Major                    string
	University               string
	GPA                      *float64
	ExperienceLevel          string
	CareerAspirations        string
	CurrentSkills            []string
	TargetIndustries         []string
	PreferredLearning        string
	PreferredContentTypes    []string
	TimeCommitment           string
	RelocationGoal           string
	ExtracurricularInterests []string
	PlanningHorizonYears     int
	Analysis                 Analysis
	UpdatedAt                time.Time
}

// HorizonYears clamps the planning horizon into [1, max], substituting def when unset.
func (p Profile) HorizonYears(def, max int) int {
	y := p.PlanningHorizonYears
	if y <= 0 {
		y = def
	}
	if y < 1 {
		y = 1
	}
	if max > 0 && y > max {
		y = max
	}
	return y
}

// PrimaryIndustry is the first non-empty target industry.
func (p Profile) PrimaryIndustry() string {
	for _, ind := range p.TargetIndustries {
		if ind = strings.TrimSpace(ind); ind != "" {
			return ind
		}
	}
	return ""
}
