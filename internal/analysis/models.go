package analysis

import (
	"fmt"

	"verdicto-api/internal/artifacts"
	"verdicto-api/internal/ml"
)

// Vectorizer maps text onto a fixed feature space.
type Vectorizer interface {
	Transform(text string) ml.Sparse
}

// Classifier returns the single top label for a feature vector.
type Classifier interface {
	Predict(x ml.Sparse) string
}

// Retriever returns the corpus position nearest to a query vector.
type Retriever interface {
	Nearest(q ml.Sparse) (int, float64, error)
}

// Models is the read-only set of fitted artifacts shared by every request.
// Corpus[i] is the summary for retriever position i.
type Models struct {
	FitID             string
	RiskVectorizer    Vectorizer
	RiskClassifier    Classifier
	SummaryVectorizer Vectorizer
	SummaryIndex      Retriever
	Corpus            []string
}

// ModelsFromBundle adapts a validated artifact bundle.
func ModelsFromBundle(b *artifacts.Bundle) (Models, error) {
	if b == nil {
		return Models{}, fmt.Errorf("%w: no artifact bundle", ErrModelUnavailable)
	}
	if err := b.Validate(); err != nil {
		return Models{}, fmt.Errorf("%w: %w", ErrModelUnavailable, err)
	}
	return Models{
		FitID:             b.Manifest.FitID,
		RiskVectorizer:    b.RiskVectorizer,
		RiskClassifier:    b.RiskClassifier,
		SummaryVectorizer: b.SummaryVectorizer,
		SummaryIndex:      b.SummaryIndex,
		Corpus:            b.Corpus,
	}, nil
}

func (m Models) validate() error {
	switch {
	case m.RiskVectorizer == nil:
		return fmt.Errorf("%w: risk vectorizer missing", ErrModelUnavailable)
	case m.RiskClassifier == nil:
		return fmt.Errorf("%w: risk classifier missing", ErrModelUnavailable)
	case m.SummaryVectorizer == nil:
		return fmt.Errorf("%w: summary vectorizer missing", ErrModelUnavailable)
	case m.SummaryIndex == nil:
		return fmt.Errorf("%w: summary index missing", ErrModelUnavailable)
	case len(m.Corpus) == 0:
		return fmt.Errorf("%w: summary corpus empty", ErrModelUnavailable)
	}
	return nil
}
