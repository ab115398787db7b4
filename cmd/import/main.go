package main

// Load a dataset file into the catalog table:
//   go run ./cmd/import -file data/dataset.json

import (
	"context"
	"flag"
	"os"

	"verdicto-api/internal/bootstrap"
	"verdicto-api/internal/dataset"
	"verdicto-api/internal/laws"
	"verdicto-api/internal/shared/config"
	"verdicto-api/internal/shared/storage/db"
	"verdicto-api/internal/shared/telemetry"
)

func main() {
	file := flag.String("file", "data/dataset.json", "dataset JSON file")
	migrate := flag.Bool("migrate", true, "apply migrations before importing")
	flag.Parse()

	cfg := config.Load()
	_ = telemetry.Init(cfg.Env, cfg.LogLevel)
	defer telemetry.Sync()

	if err := run(context.Background(), cfg, *file, *migrate); err != nil {
		telemetry.Error("import.failed", map[string]any{"file": *file, "error": err})
		telemetry.Sync()
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg config.Config, file string, migrate bool) error {
	entries, err := dataset.Load(file)
	if err != nil {
		return err
	}
	units, err := laws.FromEntries(entries)
	if err != nil {
		return err
	}

	sqlDB, err := bootstrap.ConnectDB(ctx, cfg)
	if err != nil {
		return err
	}
	defer sqlDB.Close()

	if migrate {
		if err := db.RunMigrations(ctx, sqlDB); err != nil {
			return err
		}
	}

	repo := &laws.PGRepo{DB: sqlDB}
	inserted, err := repo.InsertMany(ctx, units)
	if err != nil {
		return err
	}
	telemetry.Info("import.done", map[string]any{
		"file":     file,
		"entries":  len(units),
		"inserted": inserted,
		"skipped":  len(units) - inserted,
	})
	return nil
}
