package bootstrap_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"verdicto-api/internal/analysis"
	"verdicto-api/internal/artifacts"
	"verdicto-api/internal/bootstrap"
	"verdicto-api/internal/dataset"
	"verdicto-api/internal/shared/config"
	"verdicto-api/internal/shared/storage/object/local"
	"verdicto-api/internal/training"
)

const penaltySummary = "Whoever fails to comply with the provisions shall be punishable with imprisonment up to 5 years or fine up to Rs. 1 lakh."

const seedDataset = `[
  {"id": 1, "act": "Shops Act", "section": "1", "title": "Section 1", "state": "Delhi", "risk_level": "High",
   "tags": "finance,penalty", "metadata": {"year": 1954},
   "summary": "` + penaltySummary + `",
   "risks": [{"clause": "shall be punishable with imprisonment up to 5 years", "risk_level": "High"},
             {"clause": "file the annual return before the due date", "risk_level": "Low"}]}
]`

func buildTestApp(t *testing.T) *bootstrap.App {
	t.Helper()
	gin.SetMode(gin.TestMode)

	dir := t.TempDir()
	seedPath := filepath.Join(dir, "seed.json")
	if err := os.WriteFile(seedPath, []byte(seedDataset), 0o644); err != nil {
		t.Fatalf("write seed: %v", err)
	}

	entries, err := dataset.Decode(strings.NewReader(seedDataset))
	if err != nil {
		t.Fatalf("decode seed: %v", err)
	}
	bundle, err := training.Fit(entries, training.DefaultOptions())
	if err != nil {
		t.Fatalf("fit: %v", err)
	}
	modelDir := filepath.Join(dir, "models")
	if err := artifacts.Save(context.Background(), local.New(modelDir), bundle); err != nil {
		t.Fatalf("save artifacts: %v", err)
	}

	app, err := bootstrap.Build(config.Config{
		Port:             "0",
		Env:              "dev",
		CORSAllowOrigin:  []string{"http://localhost:5173"},
		ArtifactStore:    "local",
		ArtifactDir:      modelDir,
		CatalogSeedFile:  seedPath,
		AnalyzeRate:      100,
		AnalyzeBurst:     100,
		MaxDocumentBytes: 1 << 16,
	})
	if err != nil {
		t.Fatalf("bootstrap build: %v", err)
	}
	t.Cleanup(app.Close)
	return app
}

func get(t *testing.T, h http.Handler, path string) *httptest.ResponseRecorder {
	t.Helper()
	resp := httptest.NewRecorder()
	h.ServeHTTP(resp, httptest.NewRequest(http.MethodGet, path, nil))
	return resp
}

func TestHealth(t *testing.T) {
	app := buildTestApp(t)
	resp := get(t, app.Router, "/health")
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}
	if body := strings.TrimSpace(resp.Body.String()); body != `{"ok":true}` {
		t.Fatalf("unexpected body: %s", body)
	}
}

func TestLawsEndToEnd(t *testing.T) {
	app := buildTestApp(t)

	resp := get(t, app.Router, "/laws?tag=penalty")
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}
	var units []map[string]any
	if err := json.NewDecoder(resp.Body).Decode(&units); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(units) != 1 || units[0]["state"] != "Delhi" || units[0]["risk_level"] != "High" {
		t.Fatalf("unexpected units: %v", units)
	}

	if resp := get(t, app.Router, "/laws?tag=nomatch"); strings.TrimSpace(resp.Body.String()) != "[]" {
		t.Fatalf("expected empty array, got %s", resp.Body.String())
	}
	if resp := get(t, app.Router, "/laws/9999"); resp.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", resp.Code)
	}
}

func TestAnalyzeEndToEnd(t *testing.T) {
	app := buildTestApp(t)

	req := httptest.NewRequest(http.MethodPost, "/analyze",
		strings.NewReader(`{"document":"The offender shall be punishable with imprisonment"}`))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()
	app.Router.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", resp.Code, resp.Body.String())
	}
	var res analysis.Result
	if err := json.NewDecoder(resp.Body).Decode(&res); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if res.Summary != penaltySummary {
		t.Fatalf("unexpected summary: %q", res.Summary)
	}
	if lvl := res.Risks[0].RiskLevel; lvl != "High" && lvl != "Low" {
		t.Fatalf("unexpected risk level: %q", lvl)
	}
}

func TestMetricsExposed(t *testing.T) {
	app := buildTestApp(t)
	get(t, app.Router, "/health")

	resp := get(t, app.Router, "/metrics")
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}
	if !strings.Contains(resp.Body.String(), "verdicto_http_requests_total") {
		t.Fatalf("expected request counter in metrics output")
	}
}

func TestBuildFailsWithoutArtifacts(t *testing.T) {
	_, err := bootstrap.Build(config.Config{
		Env:           "dev",
		ArtifactStore: "local",
		ArtifactDir:   t.TempDir(),
	})
	if !errors.Is(err, analysis.ErrModelUnavailable) {
		t.Fatalf("expected ErrModelUnavailable, got %v", err)
	}
}

func TestBuildRequiresDatabaseOutsideDev(t *testing.T) {
	dir := t.TempDir()
	entries, _ := dataset.Decode(strings.NewReader(seedDataset))
	bundle, err := training.Fit(entries, training.DefaultOptions())
	if err != nil {
		t.Fatalf("fit: %v", err)
	}
	if err := artifacts.Save(context.Background(), local.New(dir), bundle); err != nil {
		t.Fatalf("save artifacts: %v", err)
	}

	if _, err := bootstrap.Build(config.Config{Env: "production", ArtifactDir: dir}); err == nil {
		t.Fatal("expected error without DATABASE_URL in production")
	}
}

func TestReadyReportsFitID(t *testing.T) {
	app := buildTestApp(t)
	resp := get(t, app.Router, "/ready")
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}
	var body struct {
		Ready   bool   `json:"ready"`
		Catalog string `json:"catalog"`
		FitID   string `json:"fit_id"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if !body.Ready || body.Catalog != "memory" || body.FitID != app.Bundle.Manifest.FitID {
		t.Fatalf("unexpected readiness: %+v", body)
	}
}
