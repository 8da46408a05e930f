package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"skillpath/internal/config"
	"skillpath/internal/domain/user"
	"skillpath/internal/generation"
	"skillpath/internal/pkg/logger"

	"github.com/google/uuid"
)

type RegisterInput struct {
	Email string
	Name  string
}

// ProfileInput carries student profile details. Nil fields are left
// unchanged; an empty, non-nil list clears the stored list. List entries are
// stored as given, in order.
type ProfileInput struct {
	Major                    *string
	University               *string
	GPA                      *float64
	ExperienceLevel          *string
	CareerAspirations        *string
	CurrentSkills            []string
	TargetIndustries         []string
	PreferredLearning        *string
	PreferredContentTypes    []string
	TimeCommitment           *string
	RelocationGoal           *string
	ExtracurricularInterests []string
	PlanningHorizonYears     *int
}

type OnboardResult struct {
	Profile     user.Profile
	SideEffects []StepResult
}

type UserProfile struct {
	User    user.User
	Profile *user.Profile
}

type UserUsecase interface {
	Register(ctx context.Context, in RegisterInput) (user.User, error)
	Onboard(ctx context.Context, userID uuid.UUID, in ProfileInput) (OnboardResult, error)
	GetProfile(ctx context.Context, userID uuid.UUID) (UserProfile, error)
	UpdateProfile(ctx context.Context, userID uuid.UUID, in ProfileInput, reanalyze bool) (OnboardResult, error)
}

type User struct {
	users    user.Repository
	profiles user.ProfileRepository
	gen      generation.Client
	planner  config.PlannerConfig
	logger   *logger.Logger
}

func NewUserUsecase(users user.Repository, profiles user.ProfileRepository, gen generation.Client, planner config.PlannerConfig, log *logger.Logger) *User {
	return &User{users: users, profiles: profiles, gen: gen, planner: planner, logger: logger.OrNop(log)}
}

func (u *User) Register(ctx context.Context, in RegisterInput) (user.User, error) {
	email := user.NormalizeEmail(in.Email)
	name := strings.TrimSpace(in.Name)
	if email == "" || name == "" {
		return user.User{}, fmt.Errorf("%w: email and name are required", ErrInvalidInput)
	}

	created, err := u.users.Create(ctx, user.User{ID: uuid.New(), Email: email, Name: name})
	if err != nil {
		if errors.Is(err, user.ErrEmailTaken) {
			return user.User{}, ErrEmailTaken
		}
		return user.User{}, fmt.Errorf("create user: %w", err)
	}
	u.logger.Info("user registered", "user_id", created.ID)
	return created, nil
}

// Onboard creates or updates the student profile, re-analyzes it and marks
// the user onboarded.
func (u *User) Onboard(ctx context.Context, userID uuid.UUID, in ProfileInput) (OnboardResult, error) {
	if _, err := u.requireUser(ctx, userID); err != nil {
		return OnboardResult{}, err
	}

	profile, err := u.profiles.GetByUserID(ctx, userID)
	switch {
	case errors.Is(err, user.ErrProfileNotFound):
		profile = user.Profile{ID: uuid.New(), UserID: userID}
	case err != nil:
		return OnboardResult{}, fmt.Errorf("load profile: %w", err)
	}

	res, err := u.save(ctx, profile, in, true)
	if err != nil {
		return OnboardResult{}, err
	}
	if err := u.users.MarkOnboarded(ctx, userID); err != nil {
		return OnboardResult{}, fmt.Errorf("mark onboarded: %w", err)
	}
	return res, nil
}

func (u *User) GetProfile(ctx context.Context, userID uuid.UUID) (UserProfile, error) {
	usr, err := u.requireUser(ctx, userID)
	if err != nil {
		return UserProfile{}, err
	}
	out := UserProfile{User: usr}
	profile, err := u.profiles.GetByUserID(ctx, userID)
	switch {
	case err == nil:
		out.Profile = &profile
	case !errors.Is(err, user.ErrProfileNotFound):
		return UserProfile{}, fmt.Errorf("load profile: %w", err)
	}
	return out, nil
}

// UpdateProfile applies a partial update to an existing profile. The stored
// analysis is kept unless reanalyze is set.
func (u *User) UpdateProfile(ctx context.Context, userID uuid.UUID, in ProfileInput, reanalyze bool) (OnboardResult, error) {
	if _, err := u.requireUser(ctx, userID); err != nil {
		return OnboardResult{}, err
	}
	profile, err := u.profiles.GetByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, user.ErrProfileNotFound) {
			return OnboardResult{}, ErrProfileNotFound
		}
		return OnboardResult{}, fmt.Errorf("load profile: %w", err)
	}
	return u.save(ctx, profile, in, reanalyze)
}

func (u *User) save(ctx context.Context, profile user.Profile, in ProfileInput, analyze bool) (OnboardResult, error) {
	if in.PlanningHorizonYears != nil {
		y := *in.PlanningHorizonYears
		if y < 1 || (u.planner.MaxHorizonYears > 0 && y > u.planner.MaxHorizonYears) {
			return OnboardResult{}, fmt.Errorf("%w: planning_horizon_years must be between 1 and %d", ErrInvalidInput, u.planner.MaxHorizonYears)
		}
	}
	in.apply(&profile)

	var steps []StepResult
	if analyze {
		steps = append(steps, u.analyze(ctx, &profile))
	}

	saved, err := u.profiles.Upsert(ctx, profile)
	if err != nil {
		return OnboardResult{}, fmt.Errorf("save profile: %w", err)
	}
	return OnboardResult{Profile: saved, SideEffects: steps}, nil
}

func (u *User) analyze(ctx context.Context, profile *user.Profile) StepResult {
	const step = "analyze_profile"
	if u.gen == nil || !u.gen.Available() {
		return stepSkipped(step, generation.ErrUnavailable.Error())
	}
	a, err := u.gen.AnalyzeProfile(ctx, generation.AnalysisInput{
		Profile: *profile,
		Years:   profile.HorizonYears(u.planner.DefaultHorizonYears, u.planner.MaxHorizonYears),
	})
	profile.Analysis = a
	return generationStep(step, err)
}

func (u *User) requireUser(ctx context.Context, userID uuid.UUID) (user.User, error) {
	usr, err := u.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			return user.User{}, ErrUserNotFound
		}
		return user.User{}, fmt.Errorf("load user: %w", err)
	}
	return usr, nil
}

func (in ProfileInput) apply(p *user.Profile) {
	setString(&p.Major, in.Major)
	setString(&p.University, in.University)
	if in.GPA != nil {
		gpa := *in.GPA
		p.GPA = &gpa
	}
	setString(&p.ExperienceLevel, in.ExperienceLevel)
	setString(&p.CareerAspirations, in.CareerAspirations)
	setList(&p.CurrentSkills, in.CurrentSkills)
	setList(&p.TargetIndustries, in.TargetIndustries)
	setString(&p.PreferredLearning, in.PreferredLearning)
	setList(&p.PreferredContentTypes, in.PreferredContentTypes)
	setString(&p.TimeCommitment, in.TimeCommitment)
	setString(&p.RelocationGoal, in.RelocationGoal)
	setList(&p.ExtracurricularInterests, in.ExtracurricularInterests)
	if in.PlanningHorizonYears != nil {
		p.PlanningHorizonYears = *in.PlanningHorizonYears
	}
}

func setString(dst *string, v *string) {
	if v != nil {
		*dst = strings.TrimSpace(*v)
	}
}

func setList(dst *[]string, v []string) {
	if v == nil {
		return
	}
	*dst = append([]string{}, v...)
}
