package analysis

// RiskFinding is one classified clause.
type RiskFinding struct {
	Clause    string `json:"clause"`
	RiskLevel string `json:"risk_level"`
}

// Result is the per-request analysis output. It is never persisted.
type Result struct {
	Risks   []RiskFinding `json:"risks"`
	Summary string        `json:"summary"`
}
