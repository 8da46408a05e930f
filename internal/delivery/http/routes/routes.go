package routes

import (
	"github.com/gofiber/fiber/v3"
)

// RouteRegistrar is implemented by every HTTP handler.
type RouteRegistrar interface {
	RegisterRoutes(r fiber.Router)
}

type Registry struct {
	health RouteRegistrar
	v1     []RouteRegistrar
}

// NewRegistry mounts health at the root and under /api/v1, and every v1
// handler under /api/v1.
func NewRegistry(health RouteRegistrar, v1 ...RouteRegistrar) *Registry {
	return &Registry{health: health, v1: v1}
}

func (r *Registry) Register(app *fiber.App) {
	if app == nil {
		return
	}

	r.registerHealth(app)
	r.registerAPI(app)
}

func (r *Registry) registerHealth(app *fiber.App) {
	if r.health != nil {
		r.health.RegisterRoutes(app)
	}
}

func (r *Registry) registerAPI(app *fiber.App) {
	api := app.Group("/api")
	v1 := api.Group("/v1")
	if r.health != nil {
		r.health.RegisterRoutes(v1)
	}
	RegisterV1(v1, r.v1...)
}
