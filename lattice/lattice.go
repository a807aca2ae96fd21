package lattice

// Lattice holds the two occupancy byte-grids the move engine reads and
// writes: Committed (accepted positions) and Scratch (the ephemeral,
// per-substep collision channel described in spec §4.5). Both are
// byte-arrays of length Box.Volume(); a cell holds 0 (empty) or 1 (occupied).
type Lattice struct {
	box       *Box
	committed []byte
	scratch   []byte
}

// New allocates a Lattice over box with both grids zeroed.
func New(box *Box) *Lattice {
	n := box.Volume()
	return &Lattice{
		box:       box,
		committed: make([]byte, n),
		scratch:   make([]byte, n),
	}
}

// Box returns the lattice's Box.
func (l *Lattice) Box() *Box { return l.box }

// Clear zeroes both committed and scratch grids (spec §4.4 "Lattice priming").
func (l *Lattice) Clear() {
	for i := range l.committed {
		l.committed[i] = 0
	}
	for i := range l.scratch {
		l.scratch[i] = 0
	}
}

// Prime clears both grids and then sets the committed cell of every given
// corner position (spec §4.4). positions holds one (x,y,z) triple per
// monomer, len(positions) == N.
func (l *Lattice) Prime(positions [][3]int) {
	l.Clear()
	for _, p := range positions {
		l.SetCommitted(p[0], p[1], p[2])
	}
}

// SetCommitted marks (x,y,z) occupied in the committed grid.
func (l *Lattice) SetCommitted(x, y, z int) {
	l.committed[l.box.Index(x, y, z)] = 1
}

// ClearCommitted marks (x,y,z) empty in the committed grid.
func (l *Lattice) ClearCommitted(x, y, z int) {
	l.committed[l.box.Index(x, y, z)] = 0
}

// TestCommitted reports whether (x,y,z) is occupied in the committed grid.
func (l *Lattice) TestCommitted(x, y, z int) bool {
	return l.committed[l.box.Index(x, y, z)] != 0
}

// SetScratch marks (x,y,z) occupied in the scratch grid. This is the
// idempotent byte-store described in spec §4.5's atomicity note: concurrent
// workers writing the same constant 1 here need no synchronization.
func (l *Lattice) SetScratch(x, y, z int) {
	l.scratch[l.box.Index(x, y, z)] = 1
}

// ClearScratch marks (x,y,z) empty in the scratch grid (spec §4.5 Phase C).
func (l *Lattice) ClearScratch(x, y, z int) {
	l.scratch[l.box.Index(x, y, z)] = 0
}

// TestScratch reports whether (x,y,z) is occupied in the scratch grid.
func (l *Lattice) TestScratch(x, y, z int) bool {
	return l.scratch[l.box.Index(x, y, z)] != 0
}

// ScratchIsClean reports whether every scratch cell is zero (spec §8
// invariant "Scratch zero"). O(Volume); intended for tests and the verifier,
// not the hot sweep path.
func (l *Lattice) ScratchIsClean() bool {
	for _, b := range l.scratch {
		if b != 0 {
			return false
		}
	}
	return true
}

// ReadView is an immutable snapshot of one of the lattice's grids, taken
// once per kernel launch. It re-expresses the source's texture-bound cached
// read (spec §9 "Texture-style reads"): callers see exactly the state the
// barrier made visible before the kernel started, regardless of how the
// live grid changes afterward.
type ReadView struct {
	box  *Box
	data []byte
}

// CommittedView snapshots the committed grid for one kernel phase's reads.
func (l *Lattice) CommittedView() ReadView {
	cp := make([]byte, len(l.committed))
	copy(cp, l.committed)
	return ReadView{box: l.box, data: cp}
}

// ScratchView snapshots the scratch grid for one kernel phase's reads.
func (l *Lattice) ScratchView() ReadView {
	cp := make([]byte, len(l.scratch))
	copy(cp, l.scratch)
	return ReadView{box: l.box, data: cp}
}

// Test reports whether (x,y,z) is occupied in the snapshot.
func (v ReadView) Test(x, y, z int) bool {
	return v.data[v.box.Index(x, y, z)] != 0
}

// FaceOccupied implements the 3×3 face test (spec §4.6): given origin
// (x,y,z) and direction d, inspect the 9 cells on the plane
// p[axis]=coord[axis]+2*sign around the destination, OR-reducing occupancy.
// view is the read-only snapshot to test against (committed for phase A,
// scratch for phase B, per spec §4.5).
func FaceOccupied(view ReadView, x, y, z int, axis int, sign int) bool {
	var p [3]int
	p[axis] = [3]int{x, y, z}[axis] + 2*sign

	other0, other1 := otherAxes(axis)
	base := [3]int{x, y, z}

	for d0 := -1; d0 <= 1; d0++ {
		for d1 := -1; d1 <= 1; d1++ {
			coord := p
			coord[other0] = base[other0] + d0
			coord[other1] = base[other1] + d1
			if view.Test(coord[0], coord[1], coord[2]) {
				return true
			}
		}
	}
	return false
}

// otherAxes returns the two axis indices other than axis, in ascending order.
func otherAxes(axis int) (int, int) {
	switch axis {
	case 0:
		return 1, 2
	case 1:
		return 0, 2
	default:
		return 0, 1
	}
}
