package training

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"verdicto-api/internal/artifacts"
	"verdicto-api/internal/dataset"
	"verdicto-api/internal/shared/storage/object/local"
)

const fixture = `[
  {"title": "Section 1", "summary": "Whoever fails to comply with the provisions shall be punishable with imprisonment up to 5 years or fine up to Rs. 1 lakh.",
   "risks": [{"clause": "shall be punishable with imprisonment up to 5 years", "risk_level": "High"},
             {"clause": "fine up to one lakh rupees", "risk_level": "Medium"}]},
  {"title": "Section 2", "summary": "Every establishment shall be registered with the inspector within thirty days.",
   "risks": [{"clause": "register the establishment within thirty days", "risk_level": "Low"}]}
]`

func fixedOptions() Options {
	opts := DefaultOptions()
	opts.Now = func() time.Time { return time.Date(2026, time.January, 2, 3, 4, 5, 0, time.UTC) }
	return opts
}

func loadFixture(t *testing.T) []dataset.Entry {
	t.Helper()
	entries, err := dataset.Decode(strings.NewReader(fixture))
	if err != nil {
		t.Fatalf("decode fixture: %v", err)
	}
	return entries
}

func TestFitProducesAlignedBundle(t *testing.T) {
	bundle, err := Fit(loadFixture(t), fixedOptions())
	if err != nil {
		t.Fatalf("Fit: %v", err)
	}
	if bundle.SummaryIndex.Len() != 2 || len(bundle.Corpus) != 2 {
		t.Fatalf("expected 2 indexed summaries, got %d/%d", bundle.SummaryIndex.Len(), len(bundle.Corpus))
	}
	if bundle.SummaryIndex.FitID != bundle.Manifest.FitID {
		t.Fatalf("index fit id %q != manifest %q", bundle.SummaryIndex.FitID, bundle.Manifest.FitID)
	}
	if got := strings.Join(bundle.Manifest.Labels, ","); got != "High,Low,Medium" {
		t.Fatalf("labels = %s", got)
	}
}

func TestFitIDIsStableForSameData(t *testing.T) {
	a, err := Fit(loadFixture(t), fixedOptions())
	if err != nil {
		t.Fatalf("Fit: %v", err)
	}
	b, err := Fit(loadFixture(t), fixedOptions())
	if err != nil {
		t.Fatalf("Fit: %v", err)
	}
	if a.Manifest.FitID != b.Manifest.FitID {
		t.Fatalf("fit ids differ: %s vs %s", a.Manifest.FitID, b.Manifest.FitID)
	}
}

func TestFitRejectsDatasetWithoutClauses(t *testing.T) {
	entries := []dataset.Entry{{Title: "x", Summary: "only a summary"}}
	if _, err := Fit(entries, fixedOptions()); err == nil {
		t.Fatal("expected error without labelled clauses")
	}
}

func TestSaveThenLoadRoundTrip(t *testing.T) {
	bundle, err := Fit(loadFixture(t), fixedOptions())
	if err != nil {
		t.Fatalf("Fit: %v", err)
	}
	store := local.New(t.TempDir())
	ctx := context.Background()
	if err := artifacts.Save(ctx, store, bundle); err != nil {
		t.Fatalf("Save: %v", err)
	}
	loaded, err := artifacts.Load(ctx, store)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if loaded.Manifest.FitID != bundle.Manifest.FitID {
		t.Fatalf("fit id mismatch")
	}
	if !loaded.Manifest.CreatedAt.Equal(bundle.Manifest.CreatedAt) {
		t.Fatalf("created_at = %v, want %v", loaded.Manifest.CreatedAt, bundle.Manifest.CreatedAt)
	}
	doc := "punishable with imprisonment"
	if got, want := loaded.RiskClassifier.Predict(loaded.RiskVectorizer.Transform(doc)),
		bundle.RiskClassifier.Predict(bundle.RiskVectorizer.Transform(doc)); got != want {
		t.Fatalf("loaded model predicts %q, fitted predicts %q", got, want)
	}
}

func TestLoadRejectsMisalignedCorpus(t *testing.T) {
	bundle, err := Fit(loadFixture(t), fixedOptions())
	if err != nil {
		t.Fatalf("Fit: %v", err)
	}
	store := local.New(t.TempDir())
	ctx := context.Background()
	if err := artifacts.Save(ctx, store, bundle); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if _, err := store.SaveWithKey(ctx, bundle.Manifest.Files.Corpus, "application/json",
		strings.NewReader(`{"fit_id":"other","summaries":["a","b"]}`)); err != nil {
		t.Fatalf("overwrite corpus: %v", err)
	}
	if _, err := artifacts.Load(ctx, store); !errors.Is(err, artifacts.ErrMisaligned) {
		t.Fatalf("expected ErrMisaligned, got %v", err)
	}
}

func TestLoadMissingArtifactIsIncomplete(t *testing.T) {
	store := local.New(t.TempDir())
	if _, err := artifacts.Load(context.Background(), store); !errors.Is(err, artifacts.ErrIncomplete) {
		t.Fatalf("expected ErrIncomplete, got %v", err)
	}
}
