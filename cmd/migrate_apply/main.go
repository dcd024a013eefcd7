package main

import (
	"context"
	"flag"
	"path/filepath"

	"ledger_service/internal/config"
	"ledger_service/internal/db"
	"ledger_service/internal/logger"
)

// Lists the migrations under internal/migrations; with -apply, runs them
// against DATABASE_URL in lexical order.
func main() {
	apply := flag.Bool("apply", false, "apply migrations instead of listing them")
	flag.Parse()

	cfg := config.Load()
	logger.Init(cfg.LogLevel, cfg.LogJSON)

	migDir := filepath.Join("internal", "migrations")

	if !*apply {
		names, err := db.MigrationFiles(migDir)
		if err != nil {
			logger.Fatal("list migrations", "error", err)
		}
		for _, name := range names {
			logger.Info("pending migration", "file", name)
		}
		return
	}

	pool := db.Connect(cfg.DatabaseURL)
	defer pool.Close()

	if err := db.RunMigrations(context.Background(), pool, migDir); err != nil {
		logger.Fatal("migrate", "error", err)
	}
	logger.Info("migrations applied", "dir", migDir)
}
