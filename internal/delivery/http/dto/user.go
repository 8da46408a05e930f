package dto

import (
	"time"

	"skillpath/internal/domain/user"

	"github.com/google/uuid"
)

type UserResponse struct {
	ID                 uuid.UUID `json:"id"`
	Email              string    `json:"email"`
	Name               string    `json:"name"`
	OnboardingComplete bool      `json:"onboarding_complete"`
	CreatedAt          time.Time `json:"created_at"`
}

type StudentProfileResponse struct {
	ID                       uuid.UUID     `json:"id"`
	UserID                   uuid.UUID     `json:"user_id"`
	Major                    string        `json:"major"`
	University               string        `json:"university"`
	GPA                      *float64      `json:"gpa"`
	ExperienceLevel          string        `json:"experience_level"`
	CareerAspirations        string        `json:"career_aspirations"`
	CurrentSkills            []string      `json:"current_skills"`
	TargetIndustries         []string      `json:"target_industries"`
	PreferredLearning        string        `json:"preferred_learning"`
	PreferredContentTypes    []string      `json:"preferred_content_types"`
	TimeCommitment           string        `json:"time_commitment"`
	RelocationGoal           string        `json:"relocation_goal"`
	ExtracurricularInterests []string      `json:"extracurricular_interests"`
	PlanningHorizonYears     int           `json:"planning_horizon_years"`
	Analysis                 user.Analysis `json:"analysis"`
	UpdatedAt                time.Time     `json:"updated_at"`
}

type UserProfileResponse struct {
	User    UserResponse            `json:"user"`
	Profile *StudentProfileResponse `json:"profile"`
}

type ProfileResponse struct {
	Profile     StudentProfileResponse `json:"profile"`
	SideEffects []SideEffect           `json:"side_effects"`
}

func NewUserResponse(u user.User) UserResponse {
	return UserResponse{
		ID:                 u.ID,
		Email:              u.Email,
		Name:               u.Name,
		OnboardingComplete: u.OnboardingComplete,
		CreatedAt:          u.CreatedAt,
	}
}

func NewStudentProfileResponse(p user.Profile) StudentProfileResponse {
	a := p.Analysis
	return StudentProfileResponse{
		ID:                       p.ID,
		UserID:                   p.UserID,
		Major:                    p.Major,
		University:               p.University,
		GPA:                      p.GPA,
		ExperienceLevel:          p.ExperienceLevel,
		CareerAspirations:        p.CareerAspirations,
		CurrentSkills:            list(p.CurrentSkills),
		TargetIndustries:         list(p.TargetIndustries),
		PreferredLearning:        p.PreferredLearning,
		PreferredContentTypes:    list(p.PreferredContentTypes),
		TimeCommitment:           p.TimeCommitment,
		RelocationGoal:           p.RelocationGoal,
		ExtracurricularInterests: list(p.ExtracurricularInterests),
		PlanningHorizonYears:     p.PlanningHorizonYears,
		Analysis: user.Analysis{
			Strengths:    list(a.Strengths),
			Gaps:         list(a.Gaps),
			CareerPaths:  list(a.CareerPaths),
			LearningTips: list(a.LearningTips),
		},
		UpdatedAt: p.UpdatedAt,
	}
}

func list(xs []string) []string {
	if xs == nil {
		return []string{}
	}
	return xs
}
