package handler

import (
	"errors"

	"skillpath/internal/delivery/http/dto"
	"skillpath/internal/delivery/http/middleware"
	"skillpath/internal/pkg/response"
	"skillpath/internal/usecase"

	"github.com/gofiber/fiber/v3"
)

type TrendHandler struct {
	uc usecase.TrendUsecase
}

type simulateTrendRequest struct {
	Industry string `json:"industry"`
}

func NewTrendHandler(uc usecase.TrendUsecase) *TrendHandler {
	return &TrendHandler{uc: uc}
}

func (h *TrendHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}

	t := r.Group("/trends")
	t.Post("/simulate", h.Simulate)
	t.Get("/:industry", h.Latest)
}

func (h *TrendHandler) Simulate(c fiber.Ctx) error {
	var req simulateTrendRequest
	if len(c.Body()) > 0 {
		if err := c.Bind().Body(&req); err != nil {
			return middleware.NewAppError(fiber.StatusBadRequest, "Invalid request payload", nil, err)
		}
	}

	s, err := h.uc.Simulate(c.Context(), req.Industry)
	if err != nil {
		return mapTrendUsecaseError(err)
	}
	return response.Success(c, fiber.StatusCreated, "Trend snapshot recorded", fiber.Map{"trend": dto.NewTrendResponse(s)})
}

func (h *TrendHandler) Latest(c fiber.Ctx) error {
	s, err := h.uc.Latest(c.Context(), c.Params("industry"))
	if err != nil {
		return mapTrendUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewTrendResponse(s))
}

func mapTrendUsecaseError(err error) error {
	if errors.Is(err, usecase.ErrTrendNotFound) {
		return middleware.NewAppError(fiber.StatusNotFound, "No trend snapshot for industry", nil, err)
	}
	return mapUsecaseError(err)
}
