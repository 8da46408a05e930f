package handler

import (
	"context"
	"time"

	"skillpath/internal/pkg/response"

	"github.com/gofiber/fiber/v3"
)

type Pinger interface {
	Ping(ctx context.Context) error
}

type Availability interface {
	Available() bool
}

type HealthHandler struct {
	generator Availability
	db        Pinger
	cache     Pinger
}

type healthResponse struct {
	Service         string `json:"service"`
	GeminiAvailable bool   `json:"gemini_available"`
	Database        string `json:"database"`
	Cache           string `json:"cache"`
	Time            string `json:"time"`
}

// NewHealthHandler reports on the given dependencies; any of them may be nil.
func NewHealthHandler(generator Availability, db, cache Pinger) *HealthHandler {
	return &HealthHandler{generator: generator, db: db, cache: cache}
}

func (h *HealthHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}
	r.Get("/health", h.Health)
}

func (h *HealthHandler) Health(c fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.Context(), 2*time.Second)
	defer cancel()

	res := healthResponse{
		Service:         "skillpath",
		GeminiAvailable: h.generator != nil && h.generator.Available(),
		Database:        pingState(ctx, h.db),
		Cache:           pingState(ctx, h.cache),
		Time:            time.Now().UTC().Format(time.RFC3339),
	}
	return response.Success(c, fiber.StatusOK, "healthy", res)
}

func pingState(ctx context.Context, p Pinger) string {
	if p == nil {
		return "disabled"
	}
	if err := p.Ping(ctx); err != nil {
		return "unavailable"
	}
	return "ok"
}
