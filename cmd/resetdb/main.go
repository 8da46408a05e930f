package main

import (
	"context"
	"flag"
	"log"
	"time"

	"skillpath/internal/config"
	"skillpath/internal/database/migration"
	dbpostgres "skillpath/internal/database/postgres"
	"skillpath/internal/database/seeder"
	"skillpath/internal/pkg/logger"
)

func main() {
	confirm := flag.Bool("yes", false, "confirm dropping every table")
	flag.Parse()

	if !*confirm {
		log.Fatalf("refusing to reset database without -yes")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}
	lg, err := logger.New(cfg.App.Environment)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer lg.Sync()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	db, err := dbpostgres.Connect(ctx, cfg.Database)
	if err != nil {
		lg.Fatal("failed to connect database", "error", err)
	}
	defer func() {
		_ = db.Close()
	}()

	if err := (migration.Runner{Logger: lg}).Reset(ctx, db.SQLDB()); err != nil {
		lg.Fatal("reset failed", "error", err)
	}
	if err := (seeder.Runner{Seeders: seeder.Defaults(), Logger: lg}).Run(ctx, db); err != nil {
		lg.Fatal("seed failed", "error", err)
	}
	lg.Info("database reset complete")
}
