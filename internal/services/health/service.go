package health

import (
	"context"
	"time"
)

// Pinger is satisfied by *sql.DB.
type Pinger interface {
	PingContext(ctx context.Context) error
}

// Service encapsulates health-related checks.
type Service struct {
	DB    Pinger
	FitID string
}

// NewService constructs a health service. db may be nil for the in-memory catalog.
func NewService(db Pinger, fitID string) *Service {
	return &Service{DB: db, FitID: fitID}
}

// Status returns the liveness payload. It never fails.
func (s *Service) Status() map[string]bool {
	return map[string]bool{"ok": true}
}

// Readiness reports whether the catalog store answers and which model fit is
// being served.
type Readiness struct {
	Ready   bool   `json:"ready"`
	Catalog string `json:"catalog"`
	FitID   string `json:"fit_id"`
}

// Ready checks the catalog store within a short timeout.
func (s *Service) Ready(ctx context.Context) Readiness {
	r := Readiness{Ready: true, Catalog: "memory", FitID: s.FitID}
	if s.DB == nil {
		return r
	}
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	if err := s.DB.PingContext(ctx); err != nil {
		r.Ready = false
		r.Catalog = "unreachable"
		return r
	}
	r.Catalog = "postgres"
	return r
}
