package lattice

import "math/bits"

// Box describes the lattice's cubic (or rectangular prism) extent and
// caches the derived constants the hot path needs: per-axis masks and the
// log2 shifts that turn the linear-index formula into pure bit ops.
//
// Edge lengths must each be a power of two (spec §3 "Box"); NewBox validates
// this once so every later index computation is branch-free.
type Box struct {
	bx, by, bz       int
	maskX, maskY     int
	maskZ            int
	shiftY           int // log2(bx)
	shiftZ           int // log2(bx*by)
	periodicX        bool
	periodicY        bool
	periodicZ        bool
}

// NewBox validates (bx,by,bz) are each powers of two and returns a Box with
// its derived constants cached. periodic{X,Y,Z} select whether moves across
// that axis's boundary wrap (spec §6 SetPeriodicity).
func NewBox(bx, by, bz int, periodicX, periodicY, periodicZ bool) (*Box, error) {
	for _, edge := range [3]int{bx, by, bz} {
		if edge <= 0 {
			return nil, ErrNonPositiveEdge
		}
		if edge&(edge-1) != 0 {
			return nil, ErrNotPowerOfTwo
		}
	}
	return &Box{
		bx: bx, by: by, bz: bz,
		maskX: bx - 1, maskY: by - 1, maskZ: bz - 1,
		shiftY: bits.TrailingZeros(uint(bx)),
		shiftZ: bits.TrailingZeros(uint(bx * by)),
		periodicX: periodicX, periodicY: periodicY, periodicZ: periodicZ,
	}, nil
}

// Dims returns the box's edge lengths (Bx,By,Bz).
func (b *Box) Dims() (bx, by, bz int) { return b.bx, b.by, b.bz }

// Periodic reports the configured periodicity per axis.
func (b *Box) Periodic() (px, py, pz bool) { return b.periodicX, b.periodicY, b.periodicZ }

// Volume returns Bx*By*Bz, the number of lattice cells.
func (b *Box) Volume() int { return b.bx * b.by * b.bz }

// Index computes the masked linear cell index for (x,y,z):
// (x & Bx-1) | ((y & By-1) << log2Bx) | ((z & Bz-1) << log2(Bx*By)).
// Position components may lie outside [0,B*) in periodic mode; the mask
// wraps them implicitly (spec §4.5 "Numeric semantics").
func (b *Box) Index(x, y, z int) int {
	return (x & b.maskX) | ((y & b.maskY) << b.shiftY) | ((z & b.maskZ) << b.shiftZ)
}

// InBounds reports whether (x,y,z) lies within [0,Bx)x[0,By)x[0,Bz) without
// any wraparound. The engine's non-periodic boundary test checks only the
// moving axis and does not call this.
func (b *Box) InBounds(x, y, z int) bool {
	return x >= 0 && x < b.bx && y >= 0 && y < b.by && z >= 0 && z < b.bz
}
