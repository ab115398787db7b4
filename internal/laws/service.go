package laws

import (
	"context"

	"verdicto-api/internal/shared/metrics"
	"verdicto-api/internal/shared/telemetry"
)

// Service answers catalog queries.
type Service struct {
	Repo Repo
}

// NewService constructs a Service.
func NewService(repo Repo) *Service {
	return &Service{Repo: repo}
}

// ListUnits returns every unit matching f with metadata decoded.
func (s *Service) ListUnits(ctx context.Context, f Filter) ([]LegalUnit, error) {
	units, err := s.Repo.List(ctx, f)
	if err != nil {
		return nil, err
	}
	for i := range units {
		decode(&units[i])
	}
	return units, nil
}

// GetUnit returns one unit by id or ErrNotFound.
func (s *Service) GetUnit(ctx context.Context, id int64) (LegalUnit, error) {
	u, err := s.Repo.GetByID(ctx, id)
	if err != nil {
		return LegalUnit{}, err
	}
	decode(&u)
	return u, nil
}

func decode(u *LegalUnit) {
	u.decodeMetadata()
	if u.MetadataErr != nil {
		metrics.IncMetadataDecodeFailure()
		telemetry.Warn("laws.metadata_decode_failed", map[string]any{
			"law_id": u.ID,
			"error":  u.MetadataErr,
		})
	}
}
