package bootstrap

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"verdicto-api/internal/analysis"
	"verdicto-api/internal/artifacts"
	"verdicto-api/internal/dataset"
	"verdicto-api/internal/laws"
	"verdicto-api/internal/services/health"
	"verdicto-api/internal/shared/config"
	"verdicto-api/internal/shared/server"
	"verdicto-api/internal/shared/storage/db"
	"verdicto-api/internal/shared/storage/object"
	localstore "verdicto-api/internal/shared/storage/object/local"
	s3store "verdicto-api/internal/shared/storage/object/s3"
	"verdicto-api/internal/shared/telemetry"
)

// App holds the process-wide dependencies built once at startup. Everything
// reachable from it is read-only after Build returns.
type App struct {
	Config          config.Config
	Router          *gin.Engine
	DB              *sql.DB
	Redis           *redis.Client
	ArtifactStore   object.ObjectStore
	Bundle          *artifacts.Bundle
	LawsRepo        laws.Repo
	LawsService     *laws.Service
	AnalysisService *analysis.Service
	HealthService   *health.Service
	LawsHandler     *laws.Handler
	AnalysisHandler *analysis.Handler
}

// Build wires repositories, models and handlers. It fails when the analysis
// artifacts cannot be loaded; there is no degraded mode without them.
func Build(cfg config.Config) (*App, error) {
	if strings.TrimSpace(cfg.Env) == "" {
		cfg.Env = "dev"
	}
	if strings.TrimSpace(cfg.ArtifactStore) == "" {
		cfg.ArtifactStore = "local"
	}
	ctx := context.Background()

	store, err := BuildArtifactStore(ctx, cfg)
	if err != nil {
		return nil, err
	}
	bundle, err := artifacts.Load(ctx, store)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", analysis.ErrModelUnavailable, err)
	}
	models, err := analysis.ModelsFromBundle(bundle)
	if err != nil {
		return nil, err
	}
	telemetry.Info("bootstrap.models_loaded", map[string]any{
		"fit_id":      bundle.Manifest.FitID,
		"labels":      bundle.Manifest.Labels,
		"corpus_size": bundle.Manifest.CorpusSize,
	})

	sqlDB, err := buildDB(ctx, cfg)
	if err != nil {
		return nil, err
	}

	app := &App{
		Config:        cfg,
		DB:            sqlDB,
		ArtifactStore: store,
		Bundle:        bundle,
	}

	app.Redis = buildRedis(ctx, cfg)
	var cache analysis.Cache
	if app.Redis != nil {
		cache = analysis.NewRedisCache(app.Redis, cfg.AnalysisCacheTTL)
	}

	if app.AnalysisService, err = analysis.NewService(models, cache); err != nil {
		app.Close()
		return nil, err
	}
	if app.LawsRepo, err = buildLawsRepo(ctx, cfg, sqlDB); err != nil {
		app.Close()
		return nil, err
	}
	app.LawsService = laws.NewService(app.LawsRepo)
	app.LawsHandler = laws.NewHandler(app.LawsService)
	app.AnalysisHandler = analysis.NewHandler(app.AnalysisService, cfg.MaxDocumentBytes)

	app.HealthService = health.NewService(nil, bundle.Manifest.FitID)
	if sqlDB != nil {
		app.HealthService.DB = sqlDB
	}

	app.Router = server.NewRouter(cfg, server.RouterDeps{
		Health:   app.HealthService,
		Laws:     app.LawsHandler,
		Analysis: app.AnalysisHandler,
	})
	return app, nil
}

// Close releases the database pool and Redis client.
func (a *App) Close() {
	if a.DB != nil {
		_ = a.DB.Close()
	}
	if a.Redis != nil {
		_ = a.Redis.Close()
	}
}

// BuildArtifactStore returns the object store holding the model bundle.
func BuildArtifactStore(ctx context.Context, cfg config.Config) (object.ObjectStore, error) {
	switch cfg.ArtifactStore {
	case "s3":
		if strings.TrimSpace(cfg.ArtifactBucket) == "" {
			return nil, errors.New("ARTIFACT_STORE=s3 requires ARTIFACT_S3_BUCKET")
		}
		return s3store.New(ctx, cfg.AWSRegion, cfg.ArtifactBucket, cfg.ArtifactPrefix)
	default:
		return localstore.New(cfg.ArtifactDir), nil
	}
}

// ConnectDB opens the catalog database for short-lived CLI tools.
func ConnectDB(ctx context.Context, cfg config.Config) (*sql.DB, error) {
	return db.Connect(ctx, cfg.DatabaseURL, db.OptionsFromEnv(db.DefaultMigrateOptions()))
}

func buildDB(ctx context.Context, cfg config.Config) (*sql.DB, error) {
	if strings.TrimSpace(cfg.DatabaseURL) == "" {
		if cfg.IsDevLike() {
			telemetry.Info("bootstrap.memory_catalog", map[string]any{"reason": "DATABASE_URL empty"})
			return nil, nil
		}
		return nil, fmt.Errorf("DATABASE_URL is required")
	}

	var (
		sqlDB *sql.DB
		err   error
	)
	if db.IsLambdaRuntime() {
		opts := db.OptionsFromEnv(db.DefaultLambdaOptions())
		sqlDB, err = db.GetSingleton(ctx, cfg.DatabaseURL, opts)
	} else {
		opts := db.OptionsFromEnv(db.DefaultServerOptions())
		sqlDB, err = db.Connect(ctx, cfg.DatabaseURL, opts)
	}
	if err != nil {
		if cfg.IsDevLike() {
			telemetry.Warn("bootstrap.memory_catalog", map[string]any{"reason": "database connect failed", "error": err})
			return nil, nil
		}
		return nil, err
	}
	return sqlDB, nil
}

func buildLawsRepo(ctx context.Context, cfg config.Config, sqlDB *sql.DB) (laws.Repo, error) {
	if sqlDB != nil {
		return &laws.PGRepo{DB: sqlDB}, nil
	}
	repo := laws.NewMemoryRepo()
	if strings.TrimSpace(cfg.CatalogSeedFile) == "" {
		return repo, nil
	}
	entries, err := dataset.Load(cfg.CatalogSeedFile)
	if err != nil {
		return nil, fmt.Errorf("seed catalog: %w", err)
	}
	units, err := laws.FromEntries(entries)
	if err != nil {
		return nil, fmt.Errorf("seed catalog: %w", err)
	}
	n, err := repo.InsertMany(ctx, units)
	if err != nil {
		return nil, fmt.Errorf("seed catalog: %w", err)
	}
	telemetry.Info("bootstrap.catalog_seeded", map[string]any{"file": cfg.CatalogSeedFile, "units": n})
	return repo, nil
}

// buildRedis returns nil when no cache is configured or Redis is unreachable;
// analysis works without it.
func buildRedis(ctx context.Context, cfg config.Config) *redis.Client {
	raw := strings.TrimSpace(cfg.RedisURL)
	if raw == "" {
		return nil
	}
	var rdb *redis.Client
	if strings.HasPrefix(raw, "redis://") || strings.HasPrefix(raw, "rediss://") {
		opt, err := redis.ParseURL(raw)
		if err != nil {
			telemetry.Warn("bootstrap.redis_disabled", map[string]any{"reason": "invalid REDIS_URL", "error": err})
			return nil
		}
		rdb = redis.NewClient(opt)
	} else {
		rdb = redis.NewClient(&redis.Options{Addr: raw})
	}

	pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	if err := rdb.Ping(pingCtx).Err(); err != nil {
		telemetry.Warn("bootstrap.redis_disabled", map[string]any{"reason": "ping failed", "error": err})
		_ = rdb.Close()
		return nil
	}
	return rdb
}
