// Package lattice implements the two occupancy grids (committed + scratch)
// that back the move engine's excluded-volume test, plus the periodic,
// power-of-two masked indexing and the 3×3 face collision test.
package lattice

import "errors"

// Sentinel errors for lattice construction.
var (
	// ErrNotPowerOfTwo indicates a box edge length was not a power of two.
	ErrNotPowerOfTwo = errors.New("lattice: box edge must be a power of two")
	// ErrNonPositiveEdge indicates a box edge length was <= 0.
	ErrNonPositiveEdge = errors.New("lattice: box edge must be positive")
)
