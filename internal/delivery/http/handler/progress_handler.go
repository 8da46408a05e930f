package handler

import (
	"errors"

	"skillpath/internal/delivery/http/dto"
	"skillpath/internal/delivery/http/middleware"
	"skillpath/internal/pkg/response"
	"skillpath/internal/usecase"

	"github.com/gofiber/fiber/v3"
)

type ProgressHandler struct {
	uc usecase.ProgressUsecase
}

type updateProgressRequest struct {
	UserID string `json:"user_id"`
	ItemID string `json:"item_id"`
	Status string `json:"status"`
	Notes  string `json:"notes"`
}

func NewProgressHandler(uc usecase.ProgressUsecase) *ProgressHandler {
	return &ProgressHandler{uc: uc}
}

func (h *ProgressHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}

	p := r.Group("/progress")
	p.Post("/update", h.Update)
	p.Get("/:user_id/summary", h.Summary)
	p.Get("/:user_id/tasks", h.Tasks)
}

func (h *ProgressHandler) Update(c fiber.Ctx) error {
	var req updateProgressRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Invalid request payload", nil, err)
	}
	userID, err := parseUserID(req.UserID)
	if err != nil {
		return err
	}

	res, err := h.uc.Update(c.Context(), usecase.UpdateProgressInput{
		UserID: userID,
		ItemID: req.ItemID,
		Status: req.Status,
		Notes:  req.Notes,
	})
	if err != nil {
		return mapProgressUsecaseError(err)
	}

	return response.Success(c, fiber.StatusOK, "Progress updated", dto.UpdateProgressResponse{
		Progress:     dto.NewTrackerResponse(res.Tracker),
		AllCompleted: res.AllCompleted,
		SideEffects:  sideEffects(res.SideEffects),
	})
}

func (h *ProgressHandler) Summary(c fiber.Ctx) error {
	userID, err := userIDParam(c)
	if err != nil {
		return err
	}

	s, err := h.uc.Summary(c.Context(), userID)
	if err != nil {
		return mapProgressUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, s)
}

func (h *ProgressHandler) Tasks(c fiber.Ctx) error {
	userID, err := userIDParam(c)
	if err != nil {
		return err
	}

	tasks, err := h.uc.Tasks(c.Context(), userID)
	if err != nil {
		return mapProgressUsecaseError(err)
	}

	out := make([]dto.TrackerResponse, 0, len(tasks))
	for _, t := range tasks {
		out = append(out, dto.NewTrackerResponse(t))
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.TasksResponse{Tasks: out})
}

func mapProgressUsecaseError(err error) error {
	if errors.Is(err, usecase.ErrTrackerNotFound) {
		return middleware.NewAppError(fiber.StatusNotFound, "Progress tracker not found", nil, err)
	}
	return mapUsecaseError(err)
}
