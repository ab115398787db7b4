package main

// Fit the analysis models and write them to the artifact store:
//   go run ./cmd/train -data data/dataset.json

import (
	"context"
	"flag"
	"os"

	"verdicto-api/internal/artifacts"
	"verdicto-api/internal/bootstrap"
	"verdicto-api/internal/dataset"
	"verdicto-api/internal/shared/config"
	"verdicto-api/internal/shared/telemetry"
	"verdicto-api/internal/training"
)

func main() {
	data := flag.String("data", "data/dataset.json", "dataset JSON file")
	c := flag.Float64("c", 1.0, "inverse L2 regularisation strength")
	maxIter := flag.Int("max-iter", 1000, "gradient descent iterations")
	flag.Parse()

	cfg := config.Load()
	_ = telemetry.Init(cfg.Env, cfg.LogLevel)
	defer telemetry.Sync()

	opts := training.DefaultOptions()
	opts.Classifier.C = *c
	opts.Classifier.MaxIter = *maxIter

	if err := run(context.Background(), cfg, *data, opts); err != nil {
		telemetry.Error("train.failed", map[string]any{"data": *data, "error": err})
		telemetry.Sync()
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg config.Config, data string, opts training.Options) error {
	entries, err := dataset.Load(data)
	if err != nil {
		return err
	}
	bundle, err := training.Fit(entries, opts)
	if err != nil {
		return err
	}
	store, err := bootstrap.BuildArtifactStore(ctx, cfg)
	if err != nil {
		return err
	}
	if err := artifacts.Save(ctx, store, bundle); err != nil {
		return err
	}
	telemetry.Info("train.done", map[string]any{
		"fit_id":      bundle.Manifest.FitID,
		"labels":      bundle.Manifest.Labels,
		"corpus_size": bundle.Manifest.CorpusSize,
		"store":       cfg.ArtifactStore,
	})
	return nil
}
