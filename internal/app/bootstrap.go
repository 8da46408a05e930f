package app

import (
	"fmt"
	"strings"

	"skillpath/internal/config"
	"skillpath/internal/delivery/http/handler"
	"skillpath/internal/delivery/http/middleware"
	"skillpath/internal/delivery/http/routes"
	"skillpath/internal/pkg/logger"
	"skillpath/internal/ws"

	"github.com/gofiber/fiber/v3"
)

type App struct {
	Fiber     *fiber.App
	Container *Container
}

// New builds the HTTP app on top of an initialized container.
func New(c *Container) *App {
	f := fiber.New(fiber.Config{AppName: c.Config.App.AppName})

	registerGlobalMiddleware(f, c.Logger)
	registerRoutes(f, c)

	return &App{Fiber: f, Container: c}
}

func Bootstrap(cfg config.Config, log *logger.Logger) (*App, func() error, error) {
	c, err := NewContainer(cfg, log)
	if err != nil {
		return nil, nil, err
	}
	app := New(c)
	return app, c.Close, nil
}

func registerGlobalMiddleware(app *fiber.App, log *logger.Logger) {
	if app == nil {
		return
	}

	app.Use(middleware.NewAccessLogMiddleware(log).Middleware())
	app.Use(middleware.NewErrorMiddleware(log).Middleware())
}

func registerRoutes(app *fiber.App, c *Container) {
	if app == nil {
		return
	}

	health := handler.NewHealthHandler(c.Generator, c.DB, c.Cache)
	routes.NewRegistry(health,
		handler.NewUserHandler(c.Users),
		handler.NewGrowthPathHandler(c.GrowthPaths),
		handler.NewProgressHandler(c.Progress),
		handler.NewProfileHandler(c.Professional),
		handler.NewTrendHandler(c.Trends),
		ws.NewHandler(c.Hub, c.Logger),
	).Register(app)
}

func ListenAddr(port string) (string, error) {
	p := strings.TrimSpace(port)
	if p == "" {
		return "", fmt.Errorf("empty HTTP port")
	}
	if strings.HasPrefix(p, ":") {
		return p, nil
	}
	return ":" + p, nil
}
