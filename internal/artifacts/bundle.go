package artifacts

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"reflect"

	"gopkg.in/yaml.v3"

	"verdicto-api/internal/ml"
	"verdicto-api/internal/shared/storage/object"
)

var (
	// ErrMisaligned means the retrieval index and the summary corpus do not come
	// from the same fit or disagree in length.
	ErrMisaligned = errors.New("artifact bundle misaligned")
	// ErrIncomplete means an artifact is missing or cannot be decoded.
	ErrIncomplete = errors.New("artifact bundle incomplete")
)

// Bundle is the frozen inference state: two vectorizers, the risk classifier,
// the summary index and the reference summaries it was built from.
type Bundle struct {
	Manifest          Manifest
	RiskVectorizer    *ml.Vectorizer
	RiskClassifier    *ml.Classifier
	SummaryVectorizer *ml.Vectorizer
	SummaryIndex      *ml.Index
	Corpus            []string
}

type corpusFile struct {
	FitID     string   `json:"fit_id"`
	Summaries []string `json:"summaries"`
}

// Validate checks shapes and the index/corpus alignment.
func (b *Bundle) Validate() error {
	if b == nil {
		return fmt.Errorf("%w: nil bundle", ErrIncomplete)
	}
	if err := b.Manifest.validate(); err != nil {
		return fmt.Errorf("%w: %v", ErrIncomplete, err)
	}
	if b.RiskVectorizer == nil || b.RiskClassifier == nil || b.SummaryVectorizer == nil || b.SummaryIndex == nil {
		return fmt.Errorf("%w: missing artifact", ErrIncomplete)
	}
	if err := b.RiskVectorizer.Validate(); err != nil {
		return fmt.Errorf("risk vectorizer: %w", err)
	}
	if err := b.RiskClassifier.Validate(); err != nil {
		return fmt.Errorf("risk classifier: %w", err)
	}
	if err := b.SummaryVectorizer.Validate(); err != nil {
		return fmt.Errorf("summary vectorizer: %w", err)
	}
	if err := b.SummaryIndex.Validate(); err != nil {
		return fmt.Errorf("summary index: %w", err)
	}
	if got, want := b.RiskClassifier.Dimension(), b.RiskVectorizer.Dimension(); got != want {
		return fmt.Errorf("risk classifier expects %d features, vectorizer produces %d", got, want)
	}
	if got, want := b.SummaryIndex.Dim, b.SummaryVectorizer.Dimension(); got != want {
		return fmt.Errorf("summary index dim %d, vectorizer produces %d", got, want)
	}
	if b.SummaryIndex.FitID != b.Manifest.FitID {
		return fmt.Errorf("%w: index fit %q, manifest fit %q", ErrMisaligned, b.SummaryIndex.FitID, b.Manifest.FitID)
	}
	if b.SummaryIndex.Len() != len(b.Corpus) {
		return fmt.Errorf("%w: index has %d vectors, corpus has %d summaries", ErrMisaligned, b.SummaryIndex.Len(), len(b.Corpus))
	}
	if b.Manifest.CorpusSize != len(b.Corpus) {
		return fmt.Errorf("%w: manifest corpus_size %d, corpus has %d", ErrMisaligned, b.Manifest.CorpusSize, len(b.Corpus))
	}
	if len(b.Manifest.Labels) > 0 && !reflect.DeepEqual(b.Manifest.Labels, b.RiskClassifier.Classes) {
		return fmt.Errorf("manifest labels %v differ from classifier classes %v", b.Manifest.Labels, b.RiskClassifier.Classes)
	}
	return nil
}

// Load reads the manifest and all five artifacts from store and validates them.
func Load(ctx context.Context, store object.ObjectStore) (*Bundle, error) {
	var manifest Manifest
	if err := readYAML(ctx, store, ManifestKey, &manifest); err != nil {
		return nil, err
	}
	if err := manifest.validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrIncomplete, err)
	}

	b := &Bundle{
		Manifest:          manifest,
		RiskVectorizer:    &ml.Vectorizer{},
		RiskClassifier:    &ml.Classifier{},
		SummaryVectorizer: &ml.Vectorizer{},
		SummaryIndex:      &ml.Index{},
	}
	var corpus corpusFile

	files := manifest.Files
	for _, item := range []struct {
		key string
		dst any
	}{
		{files.RiskVectorizer, b.RiskVectorizer},
		{files.RiskClassifier, b.RiskClassifier},
		{files.SummaryVectorizer, b.SummaryVectorizer},
		{files.SummaryIndex, b.SummaryIndex},
		{files.Corpus, &corpus},
	} {
		if err := readJSON(ctx, store, item.key, item.dst); err != nil {
			return nil, err
		}
	}
	if corpus.FitID != manifest.FitID {
		return nil, fmt.Errorf("%w: corpus fit %q, manifest fit %q", ErrMisaligned, corpus.FitID, manifest.FitID)
	}
	b.Corpus = corpus.Summaries

	if err := b.Validate(); err != nil {
		return nil, err
	}
	return b, nil
}

// Save validates b and writes every artifact, then the manifest last so a
// partially written bundle is never loadable.
func Save(ctx context.Context, store object.ObjectStore, b *Bundle) error {
	if err := b.Validate(); err != nil {
		return err
	}
	files := b.Manifest.Files
	for _, item := range []struct {
		key string
		src any
	}{
		{files.RiskVectorizer, b.RiskVectorizer},
		{files.RiskClassifier, b.RiskClassifier},
		{files.SummaryVectorizer, b.SummaryVectorizer},
		{files.SummaryIndex, b.SummaryIndex},
		{files.Corpus, corpusFile{FitID: b.Manifest.FitID, Summaries: b.Corpus}},
	} {
		data, err := json.Marshal(item.src)
		if err != nil {
			return fmt.Errorf("encode %s: %w", item.key, err)
		}
		if _, err := store.SaveWithKey(ctx, item.key, "application/json", bytes.NewReader(data)); err != nil {
			return fmt.Errorf("write %s: %w", item.key, err)
		}
	}

	manifest, err := yaml.Marshal(b.Manifest)
	if err != nil {
		return fmt.Errorf("encode manifest: %w", err)
	}
	if _, err := store.SaveWithKey(ctx, ManifestKey, "application/yaml", bytes.NewReader(manifest)); err != nil {
		return fmt.Errorf("write manifest: %w", err)
	}
	return nil
}

func readAll(ctx context.Context, store object.ObjectStore, key string) ([]byte, error) {
	rc, err := store.Open(ctx, key)
	if err != nil {
		return nil, fmt.Errorf("%w: open %s: %w", ErrIncomplete, key, err)
	}
	defer rc.Close()
	data, err := io.ReadAll(rc)
	if err != nil {
		return nil, fmt.Errorf("%w: read %s: %w", ErrIncomplete, key, err)
	}
	return data, nil
}

func readJSON(ctx context.Context, store object.ObjectStore, key string, dst any) error {
	data, err := readAll(ctx, store, key)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(data, dst); err != nil {
		return fmt.Errorf("%w: decode %s: %v", ErrIncomplete, key, err)
	}
	return nil
}

func readYAML(ctx context.Context, store object.ObjectStore, key string, dst any) error {
	data, err := readAll(ctx, store, key)
	if err != nil {
		return err
	}
	if err := yaml.Unmarshal(data, dst); err != nil {
		return fmt.Errorf("%w: decode %s: %v", ErrIncomplete, key, err)
	}
	return nil
}
