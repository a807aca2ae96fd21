// Package bondtable encodes the bond-fluctuation-model's allowed/forbidden
// bond-difference vectors and the six canonical unit move directions.
//
// A Table is a 512-entry boolean lookup keyed by the packed bond delta
// ((Δz&7)<<6)|((Δy&7)<<3)|(Δx&7), Δ ∈ [-4,3]. Populate it with Set, then call
// Finalize once: the core requires exactly AllowedCount entries to be
// allowed, matching the standard 108-vector BFM bond set.
package bondtable

import (
	"fmt"

	"github.com/lgh0504/pscbfm-go/bfmerr"
)

// Size is the number of entries in the packed bond-delta lookup table.
const Size = 512

// AllowedCount is the number of allowed entries a finalized Table must carry.
const AllowedCount = 108

// deltaBits is the number of bits used per axis of a packed bond delta; the
// domain Δ∈[-4,3] fits exactly in a 3-bit two's-complement-style wrap.
const deltaBits = 3

// deltaMask isolates the low deltaBits bits of a signed delta for packing.
const deltaMask = (1 << deltaBits) - 1

// Direction indexes the six canonical unit moves in the order the move
// engine uses for its direction hash: -x,+x,-y,+y,-z,+z.
type Direction int

const (
	DirNegX Direction = iota
	DirPosX
	DirNegY
	DirPosY
	DirNegZ
	DirPosZ
	// NumDirections is the size of the direction table.
	NumDirections = 6
)

// directions holds the six canonical unit move vectors, indexed by Direction.
var directions = [NumDirections][3]int{
	DirNegX: {-1, 0, 0},
	DirPosX: {+1, 0, 0},
	DirNegY: {0, -1, 0},
	DirPosY: {0, +1, 0},
	DirNegZ: {0, 0, -1},
	DirPosZ: {0, 0, +1},
}

// Vector returns the unit move vector for direction d.
func Vector(d Direction) (dx, dy, dz int) {
	v := directions[d]
	return v[0], v[1], v[2]
}

// Axis returns the axis (0=x,1=y,2=z) that direction d moves along.
func Axis(d Direction) int { return int(d) >> 1 }

// Sign returns +1 or -1 for the motion direction d.
func Sign(d Direction) int {
	if d&1 == 1 {
		return +1
	}
	return -1
}

// Table is the 512-entry allowed/forbidden bond lookup.
//
// Zero value is an empty (all-forbidden) table; use Set to populate and
// Finalize to lock in and validate the allowed-entry count.
type Table struct {
	allowed   [Size]bool
	finalized bool
	numAllow  int
}

// linearize packs a bond delta (dx,dy,dz), each constrained to [-4,3], into
// an index in [0,Size). This is the formula spec'd in the BFM core: bit
// layout ((Δz&7)<<6)|((Δy&7)<<3)|(Δx&7).
func linearize(dx, dy, dz int) int {
	return ((dz & deltaMask) << 6) | ((dy & deltaMask) << 3) | (dx & deltaMask)
}

// Linearize exposes the packing formula for callers (the verifier reuses it
// to classify an observed bond vector).
func Linearize(dx, dy, dz int) int { return linearize(dx, dy, dz) }

// Set marks the bond delta (dx,dy,dz) as allowed or forbidden. Panics if
// called after Finalize, or if any component is outside [-4,3] (a
// programmer error in the staging caller, per the teacher's panic-in-option
// convention — see builder.WithRand's nil-guard idiom, which instead no-ops;
// here an out-of-domain delta can never be produced by a valid caller, so it
// is treated as a contract violation rather than a silently ignored input).
func (t *Table) Set(dx, dy, dz int, allowed bool) {
	if t.finalized {
		panic("bondtable: Set called after Finalize")
	}
	if dx < -4 || dx > 3 || dy < -4 || dy > 3 || dz < -4 || dz > 3 {
		panic(fmt.Sprintf("bondtable: delta (%d,%d,%d) outside [-4,3]", dx, dy, dz))
	}
	idx := linearize(dx, dy, dz)
	if t.allowed[idx] != allowed {
		if allowed {
			t.numAllow++
		} else {
			t.numAllow--
		}
	}
	t.allowed[idx] = allowed
}

// Finalize locks the table and validates that exactly AllowedCount entries
// are allowed. Returns a bfmerr.Configuration error (wrapping
// bfmerr.ErrBadAllowedBondCount) otherwise; Finalize is idempotent on
// success and may be retried after fixing Set calls on failure, since the
// table is not marked finalized until the count check passes.
func (t *Table) Finalize() error {
	if t.numAllow != AllowedCount {
		return bfmerr.Configuration(
			fmt.Sprintf("bond table has %d allowed entries", t.numAllow),
			bfmerr.ErrBadAllowedBondCount,
		)
	}
	t.finalized = true
	return nil
}

// Finalized reports whether Finalize has succeeded.
func (t *Table) Finalized() bool { return t.finalized }

// AllowedCountSoFar returns the number of entries currently marked allowed,
// useful for diagnosing a Finalize failure before retrying.
func (t *Table) AllowedCountSoFar() int { return t.numAllow }

// Allowed reports whether the bond delta (dx,dy,dz) is allowed. Deltas
// outside [-4,3] are always forbidden (they cannot have been Set).
func (t *Table) Allowed(dx, dy, dz int) bool {
	if dx < -4 || dx > 3 || dy < -4 || dy > 3 || dz < -4 || dz > 3 {
		return false
	}
	return t.allowed[linearize(dx, dy, dz)]
}

// bfmBondClasses are the 6 bond-length classes of the canonical BFM
// allowed-bond set (Deutsch & Binder): each entry is a representative
// (a,b,c) triple; axis permutations and independent sign flips of its
// nonzero components generate that class's full vector list. The six
// classes contribute 6+24+24+24+6+24 = 108 distinct vectors.
var bfmBondClasses = [6][3]int{
	{2, 0, 0},
	{2, 1, 0},
	{2, 1, 1},
	{2, 2, 1},
	{3, 0, 0},
	{3, 1, 0},
}

// permute3 returns the (at most 6) distinct axis permutations of (a,b,c).
func permute3(a, b, c int) [][3]int {
	cands := [][3]int{{a, b, c}, {a, c, b}, {b, a, c}, {b, c, a}, {c, a, b}, {c, b, a}}
	seen := make(map[[3]int]bool, 6)
	out := make([][3]int, 0, 6)
	for _, p := range cands {
		if !seen[p] {
			seen[p] = true
			out = append(out, p)
		}
	}
	return out
}

// signFlips returns the independent sign choices for v: {0} if v==0, else {v,-v}.
func signFlips(v int) []int {
	if v == 0 {
		return []int{0}
	}
	return []int{v, -v}
}

// StandardBFMSet returns the 108 (dx,dy,dz) tuples of the canonical BFM
// allowed-bond set, for use by tests and by callers that don't have their
// own bond-set source: the union, over each of the 6 classes in
// bfmBondClasses, of every axis permutation with every independent sign
// flip of its nonzero components, deduplicated.
func StandardBFMSet() [][3]int {
	seen := make(map[[3]int]bool, AllowedCount)
	out := make([][3]int, 0, AllowedCount)
	for _, class := range bfmBondClasses {
		for _, perm := range permute3(class[0], class[1], class[2]) {
			for _, sx := range signFlips(perm[0]) {
				for _, sy := range signFlips(perm[1]) {
					for _, sz := range signFlips(perm[2]) {
						v := [3]int{sx, sy, sz}
						if !seen[v] {
							seen[v] = true
							out = append(out, v)
						}
					}
				}
			}
		}
	}
	return out
}

// NewStandardTable builds and finalizes a Table from StandardBFMSet,
// marking every other delta forbidden implicitly (the zero value).
func NewStandardTable() (*Table, error) {
	t := &Table{}
	for _, v := range StandardBFMSet() {
		t.Set(v[0], v[1], v[2], true)
	}
	if err := t.Finalize(); err != nil {
		return nil, err
	}
	return t, nil
}
