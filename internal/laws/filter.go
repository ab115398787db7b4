package laws

import (
	"strconv"
	"strings"
)

// Filter narrows a catalog listing. Every non-empty field must match; an
// empty field is ignored. Tag is a case-sensitive substring of the stored
// tags string, the other fields are exact matches.
type Filter struct {
	State     string
	Act       string
	RiskLevel string
	Tag       string
}

// IsZero reports whether the filter matches everything.
func (f Filter) IsZero() bool {
	return f.State == "" && f.Act == "" && f.RiskLevel == "" && f.Tag == ""
}

// Matches applies the filter to a unit in memory.
func (f Filter) Matches(u LegalUnit) bool {
	if f.State != "" && u.State != f.State {
		return false
	}
	if f.Act != "" && u.Act != f.Act {
		return false
	}
	if f.RiskLevel != "" && u.RiskLevel != f.RiskLevel {
		return false
	}
	if f.Tag != "" && !strings.Contains(u.Tags, f.Tag) {
		return false
	}
	return true
}

// where renders the filter as a parameterized WHERE clause. strpos is used
// for the tag so % and _ in user input stay literal.
func (f Filter) where() (string, []any) {
	var (
		b    strings.Builder
		args []any
	)
	b.WriteString("WHERE 1=1")
	add := func(expr, val string) {
		if val == "" {
			return
		}
		args = append(args, val)
		b.WriteString(" AND ")
		b.WriteString(strings.Replace(expr, "?", "$"+strconv.Itoa(len(args)), 1))
	}
	add("state = ?", f.State)
	add("act = ?", f.Act)
	add("risk_level = ?", f.RiskLevel)
	add("strpos(tags, ?) > 0", f.Tag)
	return b.String(), args
}
