// Package verify implements the optional O(N) invariant checks described in
// spec §4.7 and §8: bond validity, excluded volume, population identity,
// coloring separation, and scratch-lattice cleanliness. It is a diagnostic
// aid, never called from the hot sweep path, matching the spec's framing of
// the verifier as optional.
package verify

import (
	"fmt"

	"github.com/lgh0504/pscbfm-go/bfmerr"
	"github.com/lgh0504/pscbfm-go/bondtable"
	"github.com/lgh0504/pscbfm-go/color"
	"github.com/lgh0504/pscbfm-go/lattice"
	"github.com/lgh0504/pscbfm-go/monomer"
)

// BondFailure describes the first bond-validity violation found.
type BondFailure struct {
	I, J  int
	Delta [3]int
}

// Report summarizes one verification pass. A clean run has all failure
// fields at their zero value and Err == nil.
type Report struct {
	N                int
	OccupiedCorners  int // distinct cube-corner cells observed, of the 8*N marked
	ExpectedCorners  int // always 8*N; OccupiedCorners equals it when no two cubes share a corner
	OverlapCount     int // corners claimed by more than one monomer's cube
	FirstBondFailure *BondFailure
	ColoringFailure  *ColoringFailure
	ScratchDirty     int // number of non-zero scratch cells
	Err              error
}

// ColoringFailure describes the first coloring-separation violation found.
type ColoringFailure struct {
	I, J int
}

// OK reports whether the report found no invariant violations.
func (r Report) OK() bool {
	return r.OverlapCount == 0 &&
		r.OccupiedCorners == r.ExpectedCorners &&
		r.FirstBondFailure == nil &&
		r.ColoringFailure == nil &&
		r.ScratchDirty == 0
}

// adjacency is the minimal view verify needs over a Store's bond graph.
type adjacency[C monomer.Coord] struct {
	store *monomer.Store[C]
}

func (a adjacency[C]) Len() int                { return a.store.Len() }
func (a adjacency[C]) Neighbors(i int) []int32 { return a.store.Neighbors(i) }

// Run performs every check in spec §4.7/§8 against store, table, colors, and
// lat, returning a Report. It never mutates store or lat.
func Run[C monomer.Coord](store *monomer.Store[C], table *bondtable.Table, colors []int, lat *lattice.Lattice) Report {
	n := store.Len()
	rep := Report{N: n, ExpectedCorners: 8 * n}

	checkOccupancy(store, lat, &rep)
	checkBonds(store, table, &rep)
	if colors != nil {
		checkColoring(store, colors, &rep)
	}
	rep.ScratchDirty = countScratchDirty(lat)

	if !rep.OK() {
		rep.Err = firstError(rep)
	}
	return rep
}

// cubeCorners are the 8 unit-cube corner offsets of a monomer's 2³ cube,
// relative to its stored lower-front-left corner (spec §4.7).
var cubeCorners = [8][3]int{
	{0, 0, 0}, {1, 0, 0}, {0, 1, 0}, {0, 0, 1},
	{1, 1, 0}, {1, 0, 1}, {0, 1, 1}, {1, 1, 1},
}

// checkOccupancy implements spec §4.7's excluded-volume check literally:
// mark all 8 corners of every monomer's 2³ cube into a scratch tally and
// assert the total distinct count equals 8*N. Two monomers whose cubes
// merely overlap (without sharing a base corner) are caught here, since
// their corner sets intersect even when their base corners differ.
func checkOccupancy[C monomer.Coord](store *monomer.Store[C], lat *lattice.Lattice, rep *Report) {
	seen := make(map[int]int, 8*store.Len())
	for i := 0; i < store.Len(); i++ {
		x, y, z := store.PositionInt(i)
		for _, c := range cubeCorners {
			idx := lat.Box().Index(x+c[0], y+c[1], z+c[2])
			seen[idx]++
		}
	}
	rep.OccupiedCorners = len(seen)
	for _, count := range seen {
		if count > 1 {
			rep.OverlapCount += count - 1
		}
	}
}

func checkBonds[C monomer.Coord](store *monomer.Store[C], table *bondtable.Table, rep *Report) {
	for i := 0; i < store.Len(); i++ {
		xi, yi, zi := store.PositionInt(i)
		for _, j32 := range store.Neighbors(i) {
			j := int(j32)
			if j < i {
				continue // each undirected edge is checked once, from its lower endpoint
			}
			xj, yj, zj := store.PositionInt(j)
			dx, dy, dz := xj-xi, yj-yi, zj-zi
			if !inBondDomain(dx, dy, dz) || !table.Allowed(dx, dy, dz) {
				if rep.FirstBondFailure == nil {
					rep.FirstBondFailure = &BondFailure{I: i, J: j, Delta: [3]int{dx, dy, dz}}
				}
			}
		}
	}
}

func inBondDomain(dx, dy, dz int) bool {
	return dx >= -4 && dx <= 3 && dy >= -4 && dy <= 3 && dz >= -4 && dz <= 3
}

func checkColoring[C monomer.Coord](store *monomer.Store[C], colors []int, rep *Report) {
	i, j, ok := color.Validate(colors, adjacency[C]{store: store})
	if !ok {
		rep.ColoringFailure = &ColoringFailure{I: i, J: j}
	}
}

func countScratchDirty(lat *lattice.Lattice) int {
	if lat.ScratchIsClean() {
		return 0
	}
	// ScratchIsClean already scanned once; a second pass counting non-zero
	// cells is only needed when the fast path reports dirt, keeping the
	// common (clean) case a single O(Volume) scan.
	count := 0
	bx, by, bz := lat.Box().Dims()
	for z := 0; z < bz; z++ {
		for y := 0; y < by; y++ {
			for x := 0; x < bx; x++ {
				if lat.TestScratch(x, y, z) {
					count++
				}
			}
		}
	}
	return count
}

func firstError(rep Report) error {
	switch {
	case rep.FirstBondFailure != nil:
		f := rep.FirstBondFailure
		return bfmerr.InvariantViolation(
			fmt.Sprintf("bond (%d,%d) delta %v", f.I, f.J, f.Delta),
			bfmerr.ErrBrokenBond,
		)
	case rep.OverlapCount > 0:
		return bfmerr.InvariantViolation(
			fmt.Sprintf("%d overlapping corner(s)", rep.OverlapCount),
			bfmerr.ErrOverlap,
		)
	case rep.ColoringFailure != nil:
		f := rep.ColoringFailure
		return bfmerr.InvariantViolation(
			fmt.Sprintf("edge (%d,%d)", f.I, f.J),
			bfmerr.ErrColoringViolation,
		)
	case rep.ScratchDirty > 0:
		return bfmerr.InvariantViolation(
			fmt.Sprintf("%d dirty scratch cell(s)", rep.ScratchDirty),
			bfmerr.ErrScratchNotClean,
		)
	default:
		return nil
	}
}
