package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"verdicto-api/internal/shared/telemetry"
)

// Config holds application configuration.
type Config struct {
	Port             string
	Env              string
	LogLevel         string
	DatabaseURL      string
	CatalogSeedFile  string
	CORSAllowOrigin  []string
	ArtifactStore    string
	ArtifactDir      string
	AWSRegion        string
	ArtifactBucket   string
	ArtifactPrefix   string
	RedisURL         string
	AnalysisCacheTTL time.Duration
	AnalyzeRate      float64
	AnalyzeBurst     int
	MaxDocumentBytes int64
}

// Load reads configuration from environment variables with sensible defaults.
func Load() Config {
	// Best-effort load of local env files for dev convenience.
	loadEnvFiles(".env", "cmd/.env")

	env := normalizeEnv(getEnv("ENV", "dev"))
	dbURL := os.Getenv("DATABASE_URL")

	if env == "production" && dbURL == "" {
		telemetry.Warn("config.database_url_missing", map[string]any{"env": env})
	}

	return Config{
		Port:             getEnv("PORT", "8080"),
		Env:              env,
		LogLevel:         getEnv("LOG_LEVEL", ""),
		DatabaseURL:      dbURL,
		CatalogSeedFile:  getEnv("CATALOG_SEED_FILE", ""),
		CORSAllowOrigin:  splitAndTrim(getEnv("CORS_ALLOW_ORIGINS", "http://localhost:5173")),
		ArtifactStore:    normalizeStoreType(getEnv("ARTIFACT_STORE", "local")),
		ArtifactDir:      getEnv("ARTIFACT_DIR", "./models"),
		AWSRegion:        getEnv("AWS_REGION", ""),
		ArtifactBucket:   getEnv("ARTIFACT_S3_BUCKET", ""),
		ArtifactPrefix:   getEnv("ARTIFACT_S3_PREFIX", ""),
		RedisURL:         getEnv("REDIS_URL", ""),
		AnalysisCacheTTL: getDuration("ANALYSIS_CACHE_TTL", time.Hour),
		AnalyzeRate:      getFloat("ANALYZE_RATE_PER_SEC", 5),
		AnalyzeBurst:     getInt("ANALYZE_BURST", 10),
		MaxDocumentBytes: int64(getInt("MAX_DOCUMENT_BYTES", 1<<20)),
	}
}

// IsDevLike reports whether env allows in-memory fallbacks.
func (c Config) IsDevLike() bool {
	switch c.Env {
	case "dev", "local":
		return true
	default:
		return false
	}
}

func getEnv(key, def string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return def
}

func getInt(key string, def int) int {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return def
	}
	val, err := strconv.Atoi(raw)
	if err != nil {
		telemetry.Warn("config.invalid_int", map[string]any{"key": key, "value": raw})
		return def
	}
	return val
}

func getFloat(key string, def float64) float64 {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return def
	}
	val, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		telemetry.Warn("config.invalid_float", map[string]any{"key": key, "value": raw})
		return def
	}
	return val
}

func getDuration(key string, def time.Duration) time.Duration {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return def
	}
	val, err := time.ParseDuration(raw)
	if err != nil {
		telemetry.Warn("config.invalid_duration", map[string]any{"key": key, "value": raw})
		return def
	}
	return val
}

func splitAndTrim(raw string) []string {
	parts := strings.Split(raw, ",")
	var out []string
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

func normalizeEnv(raw string) string {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "production", "prod":
		return "production"
	case "staging":
		return "staging"
	case "local":
		return "local"
	case "development", "dev":
		return "dev"
	default:
		return "dev"
	}
}

func normalizeStoreType(raw string) string {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "s3":
		return "s3"
	default:
		return "local"
	}
}
