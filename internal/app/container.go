package app

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"skillpath/internal/config"
	"skillpath/internal/database"
	"skillpath/internal/database/migration"
	dbpostgres "skillpath/internal/database/postgres"
	"skillpath/internal/database/seeder"
	"skillpath/internal/domain/event"
	"skillpath/internal/generation"
	"skillpath/internal/infrastructure/cache"
	"skillpath/internal/infrastructure/messaging"
	"skillpath/internal/pkg/logger"
	"skillpath/internal/repository"
	"skillpath/internal/scraper"
	"skillpath/internal/usecase"
	"skillpath/internal/ws"
)

// Container owns the process-wide dependencies and the usecases built on them.
type Container struct {
	Config    config.Config
	Logger    *logger.Logger
	DB        database.DB
	Cache     *cache.Redis
	Generator generation.Client
	Hub       *ws.Hub
	Events    event.Publisher

	Users        usecase.UserUsecase
	GrowthPaths  usecase.GrowthPathUsecase
	Progress     usecase.ProgressUsecase
	Professional usecase.ProfessionalUsecase
	Trends       usecase.TrendUsecase

	amqp *messaging.AMQPPublisher
}

func NewContainer(cfg config.Config, log *logger.Logger) (*Container, error) {
	log = logger.OrNop(log)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	db, err := dbpostgres.Connect(ctx, cfg.Database)
	if err != nil {
		return nil, err
	}
	c := &Container{Config: cfg, Logger: log, DB: db}

	if err := (migration.Runner{Logger: log}).Run(ctx, db.SQLDB()); err != nil {
		_ = c.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}
	if err := (seeder.Runner{Seeders: seeder.Defaults(), Logger: log}).Run(ctx, db); err != nil {
		_ = c.Close()
		return nil, fmt.Errorf("run seeders: %w", err)
	}

	c.Cache = cache.NewRedis(cfg.Redis, log)

	gen, err := generation.New(ctx, cfg.Gemini, log)
	if err != nil {
		log.Warn("generation client init failed, running without ai", "error", err)
	}
	c.Generator = gen
	if !gen.Available() {
		log.Warn("GEMINI_API_KEY not set or invalid, ai features use fallbacks")
	}

	c.Hub = ws.NewHub(log)
	go c.Hub.Run()

	sinks := []event.Publisher{ws.NewPublisher(c.Hub)}
	if strings.TrimSpace(cfg.AMQP.URL) != "" {
		p, err := messaging.NewAMQPPublisher(cfg.AMQP)
		if err != nil {
			log.Warn("amqp unavailable, events stay local", "error", err)
		} else {
			c.amqp = p
			sinks = append(sinks, p)
		}
	}
	c.Events = messaging.NewFanout(log, sinks...)

	c.wireUsecases()
	return c, nil
}

func (c *Container) wireUsecases() {
	cfg := c.Config

	users := repository.NewPostgresUserRepository(c.DB)
	students := repository.NewPostgresStudentProfileRepository(c.DB)
	paths := repository.NewPostgresGrowthPathRepository(c.DB)
	trackers := repository.NewPostgresProgressRepository(c.DB)
	profiles := repository.NewPostgresProfessionalProfileRepository(c.DB)
	trends := repository.NewPostgresTrendRepository(c.DB)

	var trendScraper usecase.TrendScraper
	if cfg.Trends.ScrapeEnabled {
		trendScraper = scraper.NewTrendScraper(cfg.Trends, c.Logger)
	}

	c.Users = usecase.NewUserUsecase(users, students, c.Generator, cfg.Planner, c.Logger)
	c.GrowthPaths = usecase.NewGrowthPathUsecase(usecase.GrowthPathDeps{
		Users:     users,
		Profiles:  students,
		Paths:     paths,
		Trackers:  trackers,
		Trends:    trends,
		Generator: c.Generator,
		Locker:    c.Cache,
		Events:    c.Events,
		Planner:   cfg.Planner,
		Logger:    c.Logger,
	})
	updater := usecase.NewProfessionalUpdater(profiles, students, c.Generator, c.Logger)
	c.Progress = usecase.NewProgressUsecase(trackers, students, paths, c.Generator, updater, c.Events, c.Logger)
	c.Professional = usecase.NewProfessionalUsecase(usecase.ProfessionalDeps{
		Users:     users,
		Profiles:  profiles,
		Students:  students,
		Trackers:  trackers,
		Paths:     paths,
		Generator: c.Generator,
		Cache:     c.Cache,
		CacheTTL:  cfg.Redis.TTL,
		Events:    c.Events,
		Logger:    c.Logger,
	})
	c.Trends = usecase.NewTrendUsecase(trends, trendScraper, c.Logger)
}

func (c *Container) Close() error {
	if c == nil {
		return nil
	}

	var errs []error
	if c.Hub != nil {
		c.Hub.Stop()
	}
	if c.amqp != nil {
		errs = append(errs, c.amqp.Close())
	}
	if c.Cache != nil {
		errs = append(errs, c.Cache.Close())
	}
	if c.DB != nil {
		errs = append(errs, c.DB.Close())
	}
	return errors.Join(errs...)
}
