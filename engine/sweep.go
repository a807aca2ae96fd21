package engine

import (
	"sync/atomic"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/lgh0504/pscbfm-go/bfmerr"
	"github.com/lgh0504/pscbfm-go/bondtable"
	"github.com/lgh0504/pscbfm-go/lattice"
	"github.com/lgh0504/pscbfm-go/monomer"
	"github.com/lgh0504/pscbfm-go/rng"
)

// RunSweeps executes nSteps Monte-Carlo steps, each C substeps where C is
// the species count chosen at Initialize (spec §4.5).
func (e *Engine[C]) RunSweeps(nSteps int) error {
	if e.state != stateInitialized {
		return bfmerr.StateOrder("RunSweeps", bfmerr.ErrNotInitialized)
	}
	for step := 0; step < nSteps; step++ {
		start := time.Now()
		acceptedA, acceptedB := 0, 0
		for sub := 0; sub < e.numColors; sub++ {
			species := e.seeds.NextSpecies(e.numColors)
			sigma := e.seeds.NextSeed()
			a, b, err := e.runSubstep(species, sigma)
			if err != nil {
				return err
			}
			acceptedA += a
			acceptedB += b
		}
		e.cfg.logger.Debug().
			Int("step", step).
			Int("accepted_a", acceptedA).
			Int("accepted_b", acceptedB).
			Dur("duration", time.Since(start)).
			Msg("sweep step complete")
	}
	return nil
}

// runSubstep runs the three-phase pipeline over species s's monomers under
// per-substep seed sigma, with a barrier between each phase (spec §4.5).
func (e *Engine[C]) runSubstep(s int, sigma uint32) (acceptedA, acceptedB int, err error) {
	lo, hi := e.plan.Range(s)
	n := hi - lo
	if n == 0 {
		return 0, 0, nil
	}

	committedView := e.lat.CommittedView()
	var countA int64
	if err := e.partition(n, func(m int) error {
		e.phaseA(lo+m, s, sigma, committedView)
		return nil
	}); err != nil {
		return 0, 0, err
	}
	for j := lo; j < hi; j++ {
		if monomer.Accepted(e.sorted.Flags(j)) {
			countA++
		}
	}

	scratchView := e.lat.ScratchView()
	var countB int64
	if err := e.partition(n, func(m int) error {
		j := lo + m
		if monomer.Accepted(e.sorted.Flags(j)) {
			if e.phaseB(j, scratchView) {
				atomic.AddInt64(&countB, 1)
			}
		}
		return nil
	}); err != nil {
		return 0, 0, err
	}

	if err := e.partition(n, func(m int) error {
		e.phaseC(lo + m)
		return nil
	}); err != nil {
		return 0, 0, err
	}

	return int(countA), int(countB), nil
}

// partition fans work over [0,n) out across e.cfg.workers goroutines and
// blocks until every worker finishes, re-expressing the source's
// one-goroutine-per-row lattice sweep as a chunked index partition
// (grounded on the pack's Wa-Tor-style parallel step function).
func (e *Engine[C]) partition(n int, work func(i int) error) error {
	workers := e.cfg.workers
	if workers > n {
		workers = n
	}
	if workers < 1 {
		workers = 1
	}
	chunk := (n + workers - 1) / workers

	var g errgroup.Group
	for w := 0; w < workers; w++ {
		start := w * chunk
		end := start + chunk
		if end > n {
			end = n
		}
		if start >= end {
			continue
		}
		g.Go(func() error {
			for i := start; i < end; i++ {
				if err := work(i); err != nil {
					return err
				}
			}
			return nil
		})
	}
	return g.Wait()
}

// phaseA is the check-kernel: propose a direction for sorted monomer j and
// accept it against the committed lattice (spec §4.5 Phase A).
func (e *Engine[C]) phaseA(j, species int, sigma uint32, committed lattice.ReadView) {
	e.sorted.SetFlags(j, 0)

	oldIdx := e.plan.NewToOld[j]
	x, y, z := e.sorted.PositionInt(j)
	d := bondtable.Direction(rng.DirectionIndex(uint32(oldIdx), sigma, bondtable.NumDirections))
	dx, dy, dz := bondtable.Vector(d)
	axis, sign := bondtable.Axis(d), bondtable.Sign(d)
	nx, ny, nz := x+dx, y+dy, z+dz

	if !e.axisInBounds(axis, [3]int{nx, ny, nz}[axis]) {
		return
	}

	k := int(e.degreeSorted[j])
	lo, _ := e.plan.Range(species)
	m := j - lo
	for slot := 0; slot < k; slot++ {
		nb := e.nm.At(species, slot, m)
		if nb < 0 {
			continue
		}
		nbx, nby, nbz := e.sorted.PositionInt(int(nb))
		delta := [3]int{nbx - nx, nby - ny, nbz - nz}
		if !e.table.Allowed(delta[0], delta[1], delta[2]) {
			return
		}
	}

	if lattice.FaceOccupied(committed, x, y, z, axis, sign) {
		return
	}

	e.sorted.SetFlags(j, monomer.EncodeAccept(int(d)))
	e.lat.SetScratch(nx, ny, nz)
}

// phaseB is the perform-kernel: re-test a phase-A-accepted proposal against
// the scratch lattice and, if it still holds, commit it (spec §4.5 Phase B).
func (e *Engine[C]) phaseB(j int, scratch lattice.ReadView) bool {
	flags := e.sorted.Flags(j)
	d := bondtable.Direction(monomer.DecodeDirection(flags))
	x, y, z := e.sorted.PositionInt(j)
	dx, dy, dz := bondtable.Vector(d)
	axis, sign := bondtable.Axis(d), bondtable.Sign(d)
	nx, ny, nz := x+dx, y+dy, z+dz

	if lattice.FaceOccupied(scratch, x, y, z, axis, sign) {
		return false
	}

	e.sorted.SetFlags(j, flags|monomer.FlagCommitAccepted)
	e.lat.SetCommitted(nx, ny, nz)
	e.lat.ClearCommitted(x, y, z)
	return true
}

// phaseC is the zero-kernel: clear this substep's scratch mark and, for
// fully-committed proposals, advance the stored position (spec §4.5 Phase C).
func (e *Engine[C]) phaseC(j int) {
	flags := e.sorted.Flags(j)
	if !monomer.Accepted(flags) {
		return
	}
	d := bondtable.Direction(monomer.DecodeDirection(flags))
	x, y, z := e.sorted.PositionInt(j)
	dx, dy, dz := bondtable.Vector(d)
	e.lat.ClearScratch(x+dx, y+dy, z+dz)

	if monomer.Committed(flags) {
		e.sorted.Move(j, dx, dy, dz)
	}
}

func (e *Engine[C]) axisInBounds(axis, coord int) bool {
	px, py, pz := e.box.Periodic()
	periodic := [3]bool{px, py, pz}[axis]
	if periodic {
		return true
	}
	bx, by, bz := e.box.Dims()
	size := [3]int{bx, by, bz}[axis]
	return coord >= 0 && coord < size
}
