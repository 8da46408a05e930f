package handler

import (
	"errors"

	"skillpath/internal/delivery/http/dto"
	"skillpath/internal/delivery/http/middleware"
	"skillpath/internal/pkg/response"
	"skillpath/internal/usecase"

	"github.com/gofiber/fiber/v3"
)

type UserHandler struct {
	uc usecase.UserUsecase
}

type registerRequest struct {
	Email string `json:"email"`
	Name  string `json:"name"`
}

type profileFields struct {
	Major                    *string  `json:"major"`
	University               *string  `json:"university"`
	GPA                      *float64 `json:"gpa"`
	ExperienceLevel          *string  `json:"experience_level"`
	CareerAspirations        *string  `json:"career_aspirations"`
	CurrentSkills            []string `json:"current_skills"`
	TargetIndustries         []string `json:"target_industries"`
	PreferredLearning        *string  `json:"preferred_learning"`
	PreferredContentTypes    []string `json:"preferred_content_types"`
	TimeCommitment           *string  `json:"time_commitment"`
	RelocationGoal           *string  `json:"relocation_goal"`
	ExtracurricularInterests []string `json:"extracurricular_interests"`
	PlanningHorizonYears     *int     `json:"planning_horizon_years"`
}

type onboardRequest struct {
	UserID string `json:"user_id"`
	profileFields
}

type updateProfileRequest struct {
	profileFields
	Reanalyze bool `json:"reanalyze"`
}

func NewUserHandler(uc usecase.UserUsecase) *UserHandler {
	return &UserHandler{uc: uc}
}

func (h *UserHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}

	users := r.Group("/users")
	users.Post("/register", h.Register)
	users.Post("/onboard", h.Onboard)
	users.Get("/:user_id/profile", h.GetProfile)
	users.Put("/:user_id/profile", h.UpdateProfile)
}

func (h *UserHandler) Register(c fiber.Ctx) error {
	var req registerRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Invalid request payload", nil, err)
	}

	u, err := h.uc.Register(c.Context(), usecase.RegisterInput{Email: req.Email, Name: req.Name})
	if err != nil {
		return mapUserUsecaseError(err)
	}

	return response.Success(c, fiber.StatusCreated, "User registered", fiber.Map{"user": dto.NewUserResponse(u)})
}

func (h *UserHandler) Onboard(c fiber.Ctx) error {
	var req onboardRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Invalid request payload", nil, err)
	}
	userID, err := parseUserID(req.UserID)
	if err != nil {
		return err
	}

	res, err := h.uc.Onboard(c.Context(), userID, req.profileFields.input())
	if err != nil {
		return mapUserUsecaseError(err)
	}

	return response.Success(c, fiber.StatusOK, "Onboarding complete", dto.ProfileResponse{
		Profile:     dto.NewStudentProfileResponse(res.Profile),
		SideEffects: sideEffects(res.SideEffects),
	})
}

func (h *UserHandler) GetProfile(c fiber.Ctx) error {
	userID, err := userIDParam(c)
	if err != nil {
		return err
	}

	up, err := h.uc.GetProfile(c.Context(), userID)
	if err != nil {
		return mapUserUsecaseError(err)
	}

	res := dto.UserProfileResponse{User: dto.NewUserResponse(up.User)}
	if up.Profile != nil {
		p := dto.NewStudentProfileResponse(*up.Profile)
		res.Profile = &p
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, res)
}

func (h *UserHandler) UpdateProfile(c fiber.Ctx) error {
	userID, err := userIDParam(c)
	if err != nil {
		return err
	}
	var req updateProfileRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Invalid request payload", nil, err)
	}

	res, err := h.uc.UpdateProfile(c.Context(), userID, req.profileFields.input(), req.Reanalyze)
	if err != nil {
		return mapUserUsecaseError(err)
	}

	return response.Success(c, fiber.StatusOK, "Profile updated", dto.ProfileResponse{
		Profile:     dto.NewStudentProfileResponse(res.Profile),
		SideEffects: sideEffects(res.SideEffects),
	})
}

func (f profileFields) input() usecase.ProfileInput {
	return usecase.ProfileInput{
		Major:                    f.Major,
		University:               f.University,
		GPA:                      f.GPA,
		ExperienceLevel:          f.ExperienceLevel,
		CareerAspirations:        f.CareerAspirations,
		CurrentSkills:            f.CurrentSkills,
		TargetIndustries:         f.TargetIndustries,
		PreferredLearning:        f.PreferredLearning,
		PreferredContentTypes:    f.PreferredContentTypes,
		TimeCommitment:           f.TimeCommitment,
		RelocationGoal:           f.RelocationGoal,
		ExtracurricularInterests: f.ExtracurricularInterests,
		PlanningHorizonYears:     f.PlanningHorizonYears,
	}
}

func mapUserUsecaseError(err error) error {
	if errors.Is(err, usecase.ErrEmailTaken) {
		return middleware.NewAppError(fiber.StatusConflict, "User already exists", nil, err)
	}
	return mapUsecaseError(err)
}
