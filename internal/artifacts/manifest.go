package artifacts

import (
	"fmt"
	"time"
)

// FormatVersion is the bundle layout this build reads and writes.
const FormatVersion = 1

// ManifestKey is the storage key of the bundle manifest.
const ManifestKey = "manifest.yaml"

// Manifest describes one fitted bundle. Every artifact in a bundle comes from the
// same fit pass, identified by FitID.
type Manifest struct {
	FormatVersion int       `yaml:"format_version"`
	FitID         string    `yaml:"fit_id"`
	CreatedAt     time.Time `yaml:"created_at"`
	Labels        []string  `yaml:"labels"`
	CorpusSize    int       `yaml:"corpus_size"`
	Files         Files     `yaml:"files"`
}

// Files maps each artifact to its storage key.
type Files struct {
	RiskVectorizer    string `yaml:"risk_vectorizer"`
	RiskClassifier    string `yaml:"risk_classifier"`
	SummaryVectorizer string `yaml:"summary_vectorizer"`
	SummaryIndex      string `yaml:"summary_index"`
	Corpus            string `yaml:"corpus"`
}

// DefaultFiles returns the conventional artifact keys.
func DefaultFiles() Files {
	return Files{
		RiskVectorizer:    "risk_vectorizer.json",
		RiskClassifier:    "risk_classifier.json",
		SummaryVectorizer: "summary_vectorizer.json",
		SummaryIndex:      "summary_index.json",
		Corpus:            "summaries.json",
	}
}

func (m Manifest) validate() error {
	if m.FormatVersion != FormatVersion {
		return fmt.Errorf("unsupported bundle format version %d", m.FormatVersion)
	}
	if m.FitID == "" {
		return fmt.Errorf("manifest missing fit_id")
	}
	f := m.Files
	for name, key := range map[string]string{
		"risk_vectorizer":    f.RiskVectorizer,
		"risk_classifier":    f.RiskClassifier,
		"summary_vectorizer": f.SummaryVectorizer,
		"summary_index":      f.SummaryIndex,
		"corpus":             f.Corpus,
	} {
		if key == "" {
			return fmt.Errorf("manifest missing file for %s", name)
		}
	}
	return nil
}
