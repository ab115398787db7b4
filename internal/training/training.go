// Package training fits an artifact bundle from a labelled dataset. It runs
// offline from cmd/train; the API server only ever loads its output.
package training

import (
	"errors"
	"fmt"
	"time"

	"verdicto-api/internal/artifacts"
	"verdicto-api/internal/dataset"
	"verdicto-api/internal/ml"
	"verdicto-api/internal/shared/util"
)

// Options controls a fit pass.
type Options struct {
	Classifier ml.FitOptions
	Now        func() time.Time
}

// DefaultOptions returns the standard fit settings.
func DefaultOptions() Options {
	return Options{Classifier: ml.DefaultFitOptions(), Now: time.Now}
}

// Fit trains both pipelines in one pass so the index and corpus share a fit id.
func Fit(entries []dataset.Entry, opts Options) (*artifacts.Bundle, error) {
	if opts.Now == nil {
		opts.Now = time.Now
	}
	clauses, labels := dataset.Clauses(entries)
	if len(clauses) == 0 {
		return nil, errors.New("dataset has no labelled clauses")
	}
	summaries := dataset.Summaries(entries)
	if len(summaries) == 0 {
		return nil, errors.New("dataset has no summaries")
	}

	riskVec, err := ml.FitVectorizer(clauses)
	if err != nil {
		return nil, fmt.Errorf("fit risk vectorizer: %w", err)
	}
	xs := make([]ml.Sparse, len(clauses))
	for i, c := range clauses {
		xs[i] = riskVec.Transform(c)
	}
	classifier, err := ml.FitClassifier(xs, labels, opts.Classifier)
	if err != nil {
		return nil, fmt.Errorf("fit risk classifier: %w", err)
	}

	summaryVec, err := ml.FitVectorizer(summaries)
	if err != nil {
		return nil, fmt.Errorf("fit summary vectorizer: %w", err)
	}
	vectors := make([]ml.Sparse, len(summaries))
	for i, s := range summaries {
		vectors[i] = summaryVec.Transform(s)
	}

	fitID := fitID(clauses, labels, summaries)
	bundle := &artifacts.Bundle{
		Manifest: artifacts.Manifest{
			FormatVersion: artifacts.FormatVersion,
			FitID:         fitID,
			CreatedAt:     opts.Now().UTC().Truncate(time.Second),
			Labels:        classifier.Labels(),
			CorpusSize:    len(summaries),
			Files:         artifacts.DefaultFiles(),
		},
		RiskVectorizer:    riskVec,
		RiskClassifier:    classifier,
		SummaryVectorizer: summaryVec,
		SummaryIndex:      ml.BuildIndex(fitID, summaryVec.Dimension(), vectors),
		Corpus:            summaries,
	}
	if err := bundle.Validate(); err != nil {
		return nil, err
	}
	return bundle, nil
}

// fitID hashes the training inputs so refitting identical data yields the same id.
func fitID(clauses, labels, summaries []string) string {
	return util.HashParts(
		util.HashParts(clauses...),
		util.HashParts(labels...),
		util.HashParts(summaries...),
	)[:16]
}
