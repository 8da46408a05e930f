package handler

import (
	"errors"

	"skillpath/internal/delivery/http/dto"
	"skillpath/internal/delivery/http/middleware"
	"skillpath/internal/pkg/response"
	"skillpath/internal/usecase"

	"github.com/gofiber/fiber/v3"
)

type GrowthPathHandler struct {
	uc usecase.GrowthPathUsecase
}

func NewGrowthPathHandler(uc usecase.GrowthPathUsecase) *GrowthPathHandler {
	return &GrowthPathHandler{uc: uc}
}

func (h *GrowthPathHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}

	g := r.Group("/growth-path")
	g.Post("/generate", h.Generate)
	g.Post("/extend", h.Extend)
	g.Get("/:user_id", h.GetActive)
}

func (h *GrowthPathHandler) Generate(c fiber.Ctx) error {
	userID, err := bindUserID(c)
	if err != nil {
		return err
	}

	res, err := h.uc.Generate(c.Context(), userID)
	if err != nil {
		return mapGrowthPathUsecaseError(err)
	}

	return response.Success(c, fiber.StatusCreated, "Growth path generated", dto.GenerateGrowthPathResponse{
		GrowthPath:      dto.NewGrowthPathResponse(res.GrowthPath),
		TrackersCreated: res.TrackersCreated,
		SideEffects:     sideEffects(res.SideEffects),
	})
}

func (h *GrowthPathHandler) GetActive(c fiber.Ctx) error {
	userID, err := userIDParam(c)
	if err != nil {
		return err
	}

	res, err := h.uc.GetActive(c.Context(), userID)
	if err != nil {
		return mapGrowthPathUsecaseError(err)
	}

	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.ActiveGrowthPathResponse{
		GrowthPath:      dto.NewGrowthPathResponse(res.GrowthPath),
		EnrichedRoadmap: dto.NewEnrichedRoadmap(res.GrowthPath.Roadmap, res.Progress),
	})
}

func (h *GrowthPathHandler) Extend(c fiber.Ctx) error {
	userID, err := bindUserID(c)
	if err != nil {
		return err
	}

	res, err := h.uc.Extend(c.Context(), userID)
	data := dto.ExtendGrowthPathResponse{
		GrowthPath:      dto.NewGrowthPathResponse(res.GrowthPath),
		Phase:           res.Phase,
		TrackersCreated: res.TrackersCreated,
		SideEffects:     sideEffects(res.SideEffects),
	}
	if errors.Is(err, usecase.ErrNoTrackersCreated) {
		return middleware.NewAppError(fiber.StatusInternalServerError, "Extension created no new tasks", data, err)
	}
	if err != nil {
		return mapGrowthPathUsecaseError(err)
	}

	return response.Success(c, fiber.StatusCreated, "Growth path extended", data)
}

func mapGrowthPathUsecaseError(err error) error {
	switch {
	case errors.Is(err, usecase.ErrNoActivePath):
		return middleware.NewAppError(fiber.StatusNotFound, "No active growth path found", nil, err)
	case errors.Is(err, usecase.ErrNoTasks):
		return middleware.NewAppError(fiber.StatusBadRequest, "No tasks found for current phase", nil, err)
	case errors.Is(err, usecase.ErrTasksIncomplete):
		return middleware.NewAppError(fiber.StatusBadRequest, "All tasks must be completed before extending", nil, err)
	case errors.Is(err, usecase.ErrConcurrentExtension):
		return middleware.NewAppError(fiber.StatusConflict, "Growth path is already being extended", nil, err)
	default:
		return mapUsecaseError(err)
	}
}
