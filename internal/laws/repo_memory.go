package laws

import (
	"context"
	"sort"
	"sync"
)

// MemoryRepo is an in-memory implementation of Repo and Importer.
type MemoryRepo struct {
	mu    sync.RWMutex
	units map[int64]LegalUnit
}

// NewMemoryRepo constructs a MemoryRepo.
func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{units: make(map[int64]LegalUnit)}
}

// List returns units matching the filter ordered by id.
func (r *MemoryRepo) List(ctx context.Context, f Filter) ([]LegalUnit, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := []LegalUnit{}
	for _, u := range r.units {
		if f.Matches(u) {
			out = append(out, u)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

// GetByID returns the unit with the given id or ErrNotFound.
func (r *MemoryRepo) GetByID(ctx context.Context, id int64) (LegalUnit, error) {
	if err := ctx.Err(); err != nil {
		return LegalUnit{}, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	u, ok := r.units[id]
	if !ok {
		return LegalUnit{}, ErrNotFound
	}
	return u, nil
}

// InsertMany stores units, skipping ids that already exist.
func (r *MemoryRepo) InsertMany(ctx context.Context, units []LegalUnit) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	inserted := 0
	for _, u := range units {
		if _, exists := r.units[u.ID]; exists {
			continue
		}
		u.Metadata, u.MetadataErr = nil, nil
		r.units[u.ID] = u
		inserted++
	}
	return inserted, nil
}
