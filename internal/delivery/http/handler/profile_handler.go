package handler

import (
	"skillpath/internal/delivery/http/dto"
	"skillpath/internal/pkg/response"
	"skillpath/internal/usecase"

	"github.com/gofiber/fiber/v3"
)

type ProfileHandler struct {
	uc usecase.ProfessionalUsecase
}

func NewProfileHandler(uc usecase.ProfessionalUsecase) *ProfileHandler {
	return &ProfileHandler{uc: uc}
}

func (h *ProfileHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}

	p := r.Group("/profile")
	p.Post("/refresh", h.Refresh)
	p.Get("/:user_id/resume", h.Resume)
	p.Get("/:user_id/linkedin", h.LinkedIn)
}

func (h *ProfileHandler) Resume(c fiber.Ctx) error {
	userID, err := userIDParam(c)
	if err != nil {
		return err
	}

	v, err := h.uc.Resume(c.Context(), userID)
	if err != nil {
		return mapUsecaseError(err)
	}
	v.Resume.EnsureLists()
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.ResumeResponse{Resume: v.Resume, LastGenerated: v.LastGenerated})
}

func (h *ProfileHandler) LinkedIn(c fiber.Ctx) error {
	userID, err := userIDParam(c)
	if err != nil {
		return err
	}

	l, err := h.uc.LinkedIn(c.Context(), userID)
	if err != nil {
		return mapUsecaseError(err)
	}
	l.EnsureLists()
	return response.Success(c, fiber.StatusOK, response.MessageOK, l)
}

func (h *ProfileHandler) Refresh(c fiber.Ctx) error {
	userID, err := bindUserID(c)
	if err != nil {
		return err
	}

	res, err := h.uc.Refresh(c.Context(), userID)
	if err != nil {
		return mapUsecaseError(err)
	}

	return response.Success(c, fiber.StatusOK, "Profile refreshed", dto.RefreshProfileResponse{
		Profile:     dto.NewProfessionalProfileResponse(res.Profile),
		SideEffects: sideEffects(res.SideEffects),
	})
}
