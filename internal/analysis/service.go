package analysis

import (
	"context"
	"fmt"
	"strings"
	"time"

	"verdicto-api/internal/shared/metrics"
	"verdicto-api/internal/shared/telemetry"
	"verdicto-api/internal/shared/util"
)

// Service runs the vectorize, classify, retrieve pipeline over frozen models.
type Service struct {
	models Models
	cache  Cache
	now    func() time.Time
}

// NewService validates models and returns a Service. cache may be nil.
func NewService(models Models, cache Cache) (*Service, error) {
	if err := models.validate(); err != nil {
		return nil, err
	}
	return &Service{models: models, cache: cache, now: time.Now}, nil
}

// FitID identifies the artifact fit the service answers from.
func (s *Service) FitID() string { return s.models.FitID }

// Analyze classifies the whole document as one clause and attaches the
// nearest reference summary. For a fixed set of models the result depends
// only on document.
func (s *Service) Analyze(ctx context.Context, document string) (Result, error) {
	if strings.TrimSpace(document) == "" {
		return Result{}, ErrEmptyDocument
	}
	if err := ctx.Err(); err != nil {
		return Result{}, err
	}

	key := ""
	if s.cache != nil {
		key = util.HashParts(s.models.FitID, document)
		res, ok, err := s.cache.Get(ctx, key)
		switch {
		case err != nil:
			metrics.IncAnalysisCache("error")
			telemetry.Warn("analysis.cache_get_failed", map[string]any{"error": err})
		case ok && len(res.Risks) > 0:
			metrics.IncAnalysisCache("hit")
			return res, nil
		default:
			metrics.IncAnalysisCache("miss")
		}
	}

	start := s.now()
	res, err := s.run(document)
	if err != nil {
		return Result{}, err
	}
	metrics.ObserveAnalysis(res.Risks[0].RiskLevel, s.now().Sub(start))

	if s.cache != nil {
		if err := s.cache.Set(ctx, key, res); err != nil {
			metrics.IncAnalysisCache("error")
			telemetry.Warn("analysis.cache_set_failed", map[string]any{"error": err})
		}
	}
	return res, nil
}

func (s *Service) run(document string) (Result, error) {
	label := s.models.RiskClassifier.Predict(s.models.RiskVectorizer.Transform(document))

	idx, _, err := s.models.SummaryIndex.Nearest(s.models.SummaryVectorizer.Transform(document))
	if err != nil {
		return Result{}, fmt.Errorf("%w: %v", ErrModelUnavailable, err)
	}
	if idx < 0 || idx >= len(s.models.Corpus) {
		return Result{}, fmt.Errorf("%w: neighbour %d outside corpus of %d", ErrModelUnavailable, idx, len(s.models.Corpus))
	}

	return Result{
		Risks:   []RiskFinding{{Clause: document, RiskLevel: label}},
		Summary: s.models.Corpus[idx],
	}, nil
}
