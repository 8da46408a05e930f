package handler

import (
	"errors"
	"strings"

	"skillpath/internal/delivery/http/dto"
	"skillpath/internal/delivery/http/middleware"
	"skillpath/internal/pkg/response"
	"skillpath/internal/usecase"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
)

type userIDRequest struct {
	UserID string `json:"user_id"`
}

func parseUserID(raw string) (uuid.UUID, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return uuid.Nil, middleware.NewAppError(fiber.StatusBadRequest, "user_id is required", nil, nil)
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, middleware.NewAppError(fiber.StatusBadRequest, "Invalid user_id", nil, err)
	}
	return id, nil
}

func userIDParam(c fiber.Ctx) (uuid.UUID, error) {
	return parseUserID(c.Params("user_id"))
}

// bindUserID decodes a {"user_id": ...} body.
func bindUserID(c fiber.Ctx) (uuid.UUID, error) {
	var req userIDRequest
	if err := c.Bind().Body(&req); err != nil {
		return uuid.Nil, middleware.NewAppError(fiber.StatusBadRequest, "Invalid request payload", nil, err)
	}
	return parseUserID(req.UserID)
}

func sideEffects(steps []usecase.StepResult) []dto.SideEffect {
	out := make([]dto.SideEffect, 0, len(steps))
	for _, s := range steps {
		out = append(out, dto.SideEffect{Step: s.Step, Status: string(s.Status), Error: s.Error})
	}
	return out
}

// mapUsecaseError translates the sentinels shared by every usecase.
func mapUsecaseError(err error) error {
	if err == nil {
		return nil
	}

	switch {
	case errors.Is(err, usecase.ErrInvalidInput):
		return middleware.NewAppError(fiber.StatusBadRequest, "Invalid request payload", nil, err)
	case errors.Is(err, usecase.ErrUserNotFound):
		return middleware.NewAppError(fiber.StatusNotFound, "User not found", nil, err)
	case errors.Is(err, usecase.ErrProfileNotFound):
		return middleware.NewAppError(fiber.StatusNotFound, "Profile not found", nil, err)
	case errors.Is(err, usecase.ErrGeneratorUnavailable):
		return middleware.NewAppError(fiber.StatusServiceUnavailable, "AI service not available", nil, err)
	default:
		return middleware.NewAppError(fiber.StatusInternalServerError, response.MessageInternalServerError, nil, err)
	}
}
