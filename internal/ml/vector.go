package ml

import (
	"fmt"
	"math"
)

// Sparse is a feature vector stored as parallel index/value slices.
// Indices are strictly increasing and lie in [0, Dim).
type Sparse struct {
	Dim     int       `json:"dim"`
	Indices []int     `json:"indices"`
	Values  []float64 `json:"values"`
}

// Norm returns the L2 norm of the vector.
func (s Sparse) Norm() float64 {
	sum := 0.0
	for _, v := range s.Values {
		sum += v * v
	}
	return math.Sqrt(sum)
}

// IsZero reports whether the vector has no non-zero entries.
func (s Sparse) IsZero() bool {
	for _, v := range s.Values {
		if v != 0 {
			return false
		}
	}
	return true
}

// Normalized returns a unit-length copy. A zero vector is returned unchanged.
func (s Sparse) Normalized() Sparse {
	norm := s.Norm()
	out := Sparse{
		Dim:     s.Dim,
		Indices: append([]int(nil), s.Indices...),
		Values:  append([]float64(nil), s.Values...),
	}
	if norm == 0 {
		return out
	}
	for i := range out.Values {
		out.Values[i] /= norm
	}
	return out
}

// DotDense computes the inner product with a dense weight row.
func (s Sparse) DotDense(dense []float64) float64 {
	sum := 0.0
	for i, idx := range s.Indices {
		if idx < len(dense) {
			sum += s.Values[i] * dense[idx]
		}
	}
	return sum
}

// Dot computes the inner product of two sparse vectors.
func (s Sparse) Dot(o Sparse) float64 {
	sum := 0.0
	i, j := 0, 0
	for i < len(s.Indices) && j < len(o.Indices) {
		switch {
		case s.Indices[i] == o.Indices[j]:
			sum += s.Values[i] * o.Values[j]
			i++
			j++
		case s.Indices[i] < o.Indices[j]:
			i++
		default:
			j++
		}
	}
	return sum
}

// Validate checks the structural invariants of the vector.
func (s Sparse) Validate() error {
	if len(s.Indices) != len(s.Values) {
		return fmt.Errorf("sparse vector: %d indices for %d values", len(s.Indices), len(s.Values))
	}
	prev := -1
	for _, idx := range s.Indices {
		if idx <= prev || idx >= s.Dim {
			return fmt.Errorf("sparse vector: index %d out of order or range (dim %d)", idx, s.Dim)
		}
		prev = idx
	}
	return nil
}
