package main

import (
	"context"
	"flag"
	"log"
	"time"

	"profile-sync/internal/config"
	"profile-sync/internal/database/migration"
	"profile-sync/internal/database/postgres"
	"profile-sync/internal/database/seeder"
	"profile-sync/internal/pkg/logger"

	"go.uber.org/zap"
)

func main() {
	migrationsDir := flag.String("migrations", "migrations", "migration files directory")
	skipSeed := flag.Bool("skip-seed", false, "run migrations only")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	zl, err := logger.New(cfg.App.Environment, cfg.App.Debug)
	if err != nil {
		log.Fatalf("failed to build logger: %v", err)
	}
	defer func() {
		_ = zl.Sync()
	}()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	db, err := postgres.Connect(ctx, cfg.Database)
	if err != nil {
		zl.Fatal("failed to connect to database", zap.Error(err))
	}
	defer func() {
		_ = db.Close()
	}()

	runner := migration.Runner{Dir: *migrationsDir}
	if err := runner.Run(ctx, db); err != nil {
		zl.Fatal("migration failed", zap.Error(err))
	}
	zl.Info("migrations applied")

	if *skipSeed {
		return
	}

	seeders := seeder.Runner{Seeders: seeder.Defaults()}
	if err := seeders.Run(ctx, db); err != nil {
		zl.Fatal("seeding failed", zap.Error(err))
	}
	zl.Info("seeding complete")
}
