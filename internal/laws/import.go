package laws

import (
	"bytes"
	"fmt"
	"strings"

	"verdicto-api/internal/dataset"
)

// FromEntries converts dataset entries into catalog units. Entries without an
// explicit id get their 1-based position; entries without a title are rejected.
func FromEntries(entries []dataset.Entry) ([]LegalUnit, error) {
	units := make([]LegalUnit, 0, len(entries))
	seen := make(map[int64]int, len(entries))
	for i, e := range entries {
		id := int64(i + 1)
		if e.ID != nil {
			id = *e.ID
		}
		if strings.TrimSpace(e.Title) == "" {
			return nil, fmt.Errorf("%w: entry %d has no title", ErrInvalidInput, i)
		}
		if prev, dup := seen[id]; dup {
			return nil, fmt.Errorf("%w: entries %d and %d share id %d", ErrInvalidInput, prev, i, id)
		}
		seen[id] = i

		var raw string
		if m := bytes.TrimSpace(e.Metadata); len(m) > 0 && !bytes.Equal(m, []byte("null")) {
			raw = string(m)
		}
		units = append(units, LegalUnit{
			ID:          id,
			Act:         e.Act,
			Section:     e.Section,
			Title:       e.Title,
			State:       e.State,
			Citation:    e.Citation,
			Summary:     e.Summary,
			Tags:        string(e.Tags),
			RiskLevel:   e.RiskLevel,
			RawMetadata: raw,
		})
	}
	return units, nil
}
