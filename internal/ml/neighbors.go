package ml

import (
	"errors"
	"fmt"
)

// ErrEmptyIndex is returned when searching an index with no vectors.
var ErrEmptyIndex = errors.New("nearest neighbour index is empty")

// Index is a brute-force cosine nearest-neighbour index. Vector i corresponds to
// position i of the reference corpus it was built from.
type Index struct {
	FitID   string   `json:"fit_id"`
	Dim     int      `json:"dim"`
	Vectors []Sparse `json:"vectors"`
}

// BuildIndex stores unit-length copies of vectors in the given order.
func BuildIndex(fitID string, dim int, vectors []Sparse) *Index {
	ix := &Index{FitID: fitID, Dim: dim, Vectors: make([]Sparse, len(vectors))}
	for i, v := range vectors {
		ix.Vectors[i] = v.Normalized()
	}
	return ix
}

// Len returns the number of indexed vectors.
func (ix *Index) Len() int { return len(ix.Vectors) }

// Nearest returns the position of the vector with the smallest cosine distance
// to q and that distance. The first minimum wins, so ties resolve to the lowest
// position. A zero query is at distance 1 from everything and resolves to 0.
func (ix *Index) Nearest(q Sparse) (int, float64, error) {
	if ix == nil || len(ix.Vectors) == 0 {
		return 0, 0, ErrEmptyIndex
	}
	qn := q.Normalized()
	best, bestDist := 0, 0.0
	for i, v := range ix.Vectors {
		dist := 1 - qn.Dot(v)
		if i == 0 || dist < bestDist {
			best, bestDist = i, dist
		}
	}
	return best, bestDist, nil
}

// Validate checks every stored vector against the index dimension.
func (ix *Index) Validate() error {
	if ix == nil || len(ix.Vectors) == 0 {
		return ErrEmptyIndex
	}
	for i, v := range ix.Vectors {
		if v.Dim != ix.Dim {
			return fmt.Errorf("index vector %d has dim %d, want %d", i, v.Dim, ix.Dim)
		}
		if err := v.Validate(); err != nil {
			return fmt.Errorf("index vector %d: %w", i, err)
		}
	}
	return nil
}
