package analysis

import (
	"strings"
	"testing"

	"verdicto-api/internal/artifacts"
	"verdicto-api/internal/dataset"
	"verdicto-api/internal/training"
)

const penaltySummary = "Whoever fails to comply with the provisions shall be punishable with imprisonment up to 5 years or fine up to Rs. 1 lakh."

const singleEntryDataset = `[
  {"title": "Section 1", "summary": "` + penaltySummary + `",
   "risks": [{"clause": "shall be punishable with imprisonment up to 5 years", "risk_level": "High"},
             {"clause": "submit the annual return to the registrar", "risk_level": "Low"}]}
]`

const multiEntryDataset = `[
  {"title": "Section 1", "summary": "` + penaltySummary + `",
   "risks": [{"clause": "shall be punishable with imprisonment up to 5 years", "risk_level": "High"},
             {"clause": "liable to a penalty of ten thousand rupees per day", "risk_level": "High"}]},
  {"title": "Section 2", "summary": "Every establishment shall be registered with the inspector within thirty days.",
   "risks": [{"clause": "register the establishment within thirty days", "risk_level": "Low"},
             {"clause": "display the certificate at a conspicuous place", "risk_level": "Low"}]},
  {"title": "Section 3", "summary": "The employer shall maintain registers of wages in the prescribed form.",
   "risks": [{"clause": "maintain registers of wages and overtime", "risk_level": "Medium"}]}
]`

func fitBundle(t *testing.T, raw string) *artifacts.Bundle {
	t.Helper()
	entries, err := dataset.Decode(strings.NewReader(raw))
	if err != nil {
		t.Fatalf("decode dataset: %v", err)
	}
	b, err := training.Fit(entries, training.DefaultOptions())
	if err != nil {
		t.Fatalf("fit: %v", err)
	}
	return b
}

func newTestService(t *testing.T, raw string, cache Cache) *Service {
	t.Helper()
	models, err := ModelsFromBundle(fitBundle(t, raw))
	if err != nil {
		t.Fatalf("ModelsFromBundle: %v", err)
	}
	svc, err := NewService(models, cache)
	if err != nil {
		t.Fatalf("NewService: %v", err)
	}
	return svc
}
