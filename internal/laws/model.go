package laws

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"
)

// LegalUnit is one catalog record: a section of an act with its summary,
// tags and risk level.
type LegalUnit struct {
	ID        int64
	Act       string
	Section   string
	Title     string
	State     string
	Citation  string
	Summary   string
	Tags      string
	RiskLevel string
	// RawMetadata is the serialized metadata document as stored.
	RawMetadata string

	// Metadata is RawMetadata decoded with numbers kept as json.Number;
	// nil when absent or malformed.
	Metadata any
	// MetadataErr is set when RawMetadata could not be decoded.
	MetadataErr error
}

// decodeMetadata fills Metadata from RawMetadata. A decode failure is kept on
// the unit rather than returned so one bad record never fails a listing.
func (u *LegalUnit) decodeMetadata() {
	u.Metadata = nil
	u.MetadataErr = nil
	raw := strings.TrimSpace(u.RawMetadata)
	if raw == "" {
		return
	}
	v, err := decodeJSON(raw)
	if err != nil {
		u.MetadataErr = fmt.Errorf("%w: unit %d: %v", ErrMalformedMetadata, u.ID, err)
		return
	}
	u.Metadata = v
}

// decodeJSON decodes exactly one JSON value without rounding numbers through
// float64.
func decodeJSON(raw string) (any, error) {
	dec := json.NewDecoder(strings.NewReader(raw))
	dec.UseNumber()
	var v any
	if err := dec.Decode(&v); err != nil {
		return nil, err
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return nil, errors.New("unexpected data after top-level value")
	}
	return v, nil
}
