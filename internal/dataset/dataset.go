package dataset

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
)

// Risk is one labelled clause attached to a dataset entry.
type Risk struct {
	Clause    string `json:"clause"`
	RiskLevel string `json:"risk_level"`
}

// Entry is one legal document in the import dataset.
type Entry struct {
	ID        *int64          `json:"id,omitempty"`
	Act       string          `json:"act"`
	Section   string          `json:"section"`
	Title     string          `json:"title"`
	State     string          `json:"state"`
	Citation  string          `json:"citation"`
	Summary   string          `json:"summary"`
	Tags      Tags            `json:"tags"`
	RiskLevel string          `json:"risk_level"`
	Metadata  json.RawMessage `json:"metadata,omitempty"`
	Risks     []Risk          `json:"risks"`
}

// Tags accepts either a CSV string or an array of strings and stores the CSV form.
type Tags string

// UnmarshalJSON implements json.Unmarshaler.
func (t *Tags) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		*t = ""
		return nil
	}
	if trimmed[0] == '[' {
		var parts []string
		if err := json.Unmarshal(trimmed, &parts); err != nil {
			return fmt.Errorf("tags: %w", err)
		}
		clean := make([]string, 0, len(parts))
		for _, p := range parts {
			if p = strings.TrimSpace(p); p != "" {
				clean = append(clean, p)
			}
		}
		*t = Tags(strings.Join(clean, ","))
		return nil
	}
	var s string
	if err := json.Unmarshal(trimmed, &s); err != nil {
		return fmt.Errorf("tags: %w", err)
	}
	*t = Tags(s)
	return nil
}

// Load reads a dataset file.
func Load(path string) ([]Entry, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open dataset %s: %w", path, err)
	}
	defer f.Close()
	entries, err := Decode(f)
	if err != nil {
		return nil, fmt.Errorf("dataset %s: %w", path, err)
	}
	return entries, nil
}

// Decode parses a JSON array of entries.
func Decode(r io.Reader) ([]Entry, error) {
	var entries []Entry
	dec := json.NewDecoder(r)
	if err := dec.Decode(&entries); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, errors.New("empty dataset")
		}
		return nil, fmt.Errorf("invalid dataset json: %w", err)
	}
	return entries, nil
}

// Clauses flattens every entry's risks into parallel clause/label slices,
// skipping clauses without text or label.
func Clauses(entries []Entry) ([]string, []string) {
	var clauses, labels []string
	for _, e := range entries {
		for _, r := range e.Risks {
			if strings.TrimSpace(r.Clause) == "" || strings.TrimSpace(r.RiskLevel) == "" {
				continue
			}
			clauses = append(clauses, r.Clause)
			labels = append(labels, strings.TrimSpace(r.RiskLevel))
		}
	}
	return clauses, labels
}

// Summaries returns every entry's summary in dataset order.
func Summaries(entries []Entry) []string {
	out := make([]string, 0, len(entries))
	for _, e := range entries {
		out = append(out, e.Summary)
	}
	return out
}
