package laws

// UnitResponse is the outward-facing representation of a legal unit.
type UnitResponse struct {
	ID        int64  `json:"id"`
	Act       string `json:"act"`
	Section   string `json:"section"`
	Title     string `json:"title"`
	State     string `json:"state"`
	Citation  string `json:"citation"`
	Summary   string `json:"summary"`
	Tags      string `json:"tags"`
	RiskLevel string `json:"risk_level"`
	Metadata  any    `json:"metadata,omitempty"`
}

func toResponse(u LegalUnit) UnitResponse {
	return UnitResponse{
		ID:        u.ID,
		Act:       u.Act,
		Section:   u.Section,
		Title:     u.Title,
		State:     u.State,
		Citation:  u.Citation,
		Summary:   u.Summary,
		Tags:      u.Tags,
		RiskLevel: u.RiskLevel,
		Metadata:  u.Metadata,
	}
}

func toResponses(units []LegalUnit) []UnitResponse {
	out := make([]UnitResponse, 0, len(units))
	for _, u := range units {
		out = append(out, toResponse(u))
	}
	return out
}
