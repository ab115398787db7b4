package main

// Run database migrations:
//   go run ./cmd/migrate

import (
	"context"
	"os"

	"verdicto-api/internal/bootstrap"
	"verdicto-api/internal/shared/config"
	"verdicto-api/internal/shared/storage/db"
	"verdicto-api/internal/shared/telemetry"
)

func main() {
	cfg := config.Load()
	_ = telemetry.Init(cfg.Env, cfg.LogLevel)
	defer telemetry.Sync()
	ctx := context.Background()

	sqlDB, err := bootstrap.ConnectDB(ctx, cfg)
	if err != nil {
		telemetry.Error("migrate.connect_failed", map[string]any{"error": err})
		telemetry.Sync()
		os.Exit(1)
	}
	defer sqlDB.Close()

	if err := db.RunMigrations(ctx, sqlDB); err != nil {
		telemetry.Error("migrate.failed", map[string]any{"error": err})
		telemetry.Sync()
		os.Exit(1)
	}
	version, err := db.MigrationVersion(ctx, sqlDB)
	if err != nil {
		telemetry.Warn("migrate.version_unknown", map[string]any{"error": err})
		return
	}
	telemetry.Info("migrate.done", map[string]any{"version": version})
}
