package config

import (
	"errors"
	"io/fs"

	"github.com/joho/godotenv"

	"verdicto-api/internal/shared/telemetry"
)

// loadEnvFiles loads KEY=VALUE pairs from the given files if they exist.
// Variables already present in the environment are left alone.
func loadEnvFiles(paths ...string) {
	for _, path := range paths {
		if err := godotenv.Load(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
			telemetry.Warn("config.env_file_invalid", map[string]any{"path": path, "error": err})
		}
	}
}
