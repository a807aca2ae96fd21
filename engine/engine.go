// Package engine implements the embeddable move engine: the staging API
// that accepts a bond graph and box geometry, the one-time Initialize step
// that colors and lays out that graph, and the sweep loop that runs the
// three-phase (check/perform/commit) kernel pipeline over it (spec §4.5,
// §6).
//
// Engine is not safe for concurrent calls from multiple goroutines; it
// models the single ordered host stream of spec §5, and each RunSweeps call
// must complete before the next staging or sweep call begins.
package engine

import (
	"fmt"

	"github.com/lgh0504/pscbfm-go/bfmerr"
	"github.com/lgh0504/pscbfm-go/bondtable"
	"github.com/lgh0504/pscbfm-go/color"
	"github.com/lgh0504/pscbfm-go/lattice"
	"github.com/lgh0504/pscbfm-go/layout"
	"github.com/lgh0504/pscbfm-go/monomer"
	"github.com/lgh0504/pscbfm-go/rng"
)

type lifecycleState int

const (
	stateStaging lifecycleState = iota
	stateInitialized
)

// Engine is the move engine, generic over the lattice position width C
// (spec §9 "Polymorphism over integer width").
type Engine[C monomer.Coord] struct {
	cfg   config
	state lifecycleState

	// staging
	bx, by, bz                int
	boxSet                    bool
	periodicX, periodicY, periodicZ bool
	periodicitySet            bool
	n                         int
	numSet                    bool
	draft                     *monomer.Store[C]
	table                     bondtable.Table

	// initialized
	box          *lattice.Box
	lat          *lattice.Lattice
	plan         layout.Plan
	nm           layout.NeighborMatrix
	sorted       *monomer.Store[C]
	degreeSorted []int8
	colors       []int
	numColors    int
	seeds        *rng.SeedStream
}

// New constructs an Engine in its pre-configured (staging) state.
func New[C monomer.Coord](opts ...Option) *Engine[C] {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	return &Engine[C]{cfg: cfg, state: stateStaging}
}

func (e *Engine[C]) requireStaging(op string) error {
	if e.state != stateStaging {
		return bfmerr.StateOrder(op, bfmerr.ErrStagingAfterInit)
	}
	return nil
}

// SetBoxSize stages the box edge lengths; each must be a power of two.
func (e *Engine[C]) SetBoxSize(bx, by, bz int) error {
	if err := e.requireStaging("SetBoxSize"); err != nil {
		return err
	}
	for _, edge := range [3]int{bx, by, bz} {
		if edge <= 0 {
			return bfmerr.Configuration("SetBoxSize", lattice.ErrNonPositiveEdge)
		}
		if edge&(edge-1) != 0 {
			return bfmerr.Configuration("SetBoxSize", bfmerr.ErrNotPowerOfTwo)
		}
	}
	e.bx, e.by, e.bz = bx, by, bz
	e.boxSet = true
	return nil
}

// SetPeriodicity stages per-axis periodicity.
func (e *Engine[C]) SetPeriodicity(px, py, pz bool) error {
	if err := e.requireStaging("SetPeriodicity"); err != nil {
		return err
	}
	e.periodicX, e.periodicY, e.periodicZ = px, py, pz
	e.periodicitySet = true
	return nil
}

// SetNumMonomers allocates the staging monomer store. Valid once per lifecycle.
func (e *Engine[C]) SetNumMonomers(n int) error {
	if err := e.requireStaging("SetNumMonomers"); err != nil {
		return err
	}
	if e.numSet {
		return bfmerr.Configuration("SetNumMonomers", bfmerr.ErrMonomerCountAlreadySet)
	}
	if n <= 0 {
		return bfmerr.Configuration("SetNumMonomers", bfmerr.ErrBadMonomerIndex)
	}
	e.n = n
	e.numSet = true
	e.draft = monomer.NewStore[C](n)
	return nil
}

func (e *Engine[C]) requireMonomer(op string, i int) error {
	if err := e.requireStaging(op); err != nil {
		return err
	}
	if !e.numSet {
		return bfmerr.Configuration(op, bfmerr.ErrMonomerCountNotSet)
	}
	if i < 0 || i >= e.n {
		return bfmerr.Configuration(op, bfmerr.ErrBadMonomerIndex)
	}
	return nil
}

// SetPosition stages monomer i's initial position.
func (e *Engine[C]) SetPosition(i int, x, y, z C) error {
	if err := e.requireMonomer("SetPosition", i); err != nil {
		return err
	}
	e.draft.SetPosition(i, x, y, z)
	return nil
}

// SetAttribute stages monomer i's caller-defined attribute byte.
func (e *Engine[C]) SetAttribute(i int, a byte) error {
	if err := e.requireMonomer("SetAttribute", i); err != nil {
		return err
	}
	e.draft.SetAttribute(i, a)
	return nil
}

// AddBond stages an undirected bond between monomers i and j.
func (e *Engine[C]) AddBond(i, j int) error {
	if err := e.requireMonomer("AddBond", i); err != nil {
		return err
	}
	if err := e.requireMonomer("AddBond", j); err != nil {
		return err
	}
	return e.draft.AddBond(i, j)
}

// SetAllowedBond stages one entry of the 512-entry bond-delta table.
func (e *Engine[C]) SetAllowedBond(dx, dy, dz int, allowed bool) error {
	if err := e.requireStaging("SetAllowedBond"); err != nil {
		return err
	}
	if dx < -4 || dx > 3 || dy < -4 || dy > 3 || dz < -4 || dz > 3 {
		return bfmerr.Configuration("SetAllowedBond", bfmerr.ErrCoordOutOfRange)
	}
	e.table.Set(dx, dy, dz, allowed)
	return nil
}

// draftAdjacency adapts the staging Store to color.Adjacency.
type draftAdjacency[C monomer.Coord] struct{ store *monomer.Store[C] }

func (a draftAdjacency[C]) Len() int                { return a.store.Len() }
func (a draftAdjacency[C]) Neighbors(i int) []int32 { return a.store.Neighbors(i) }

// Initialize freezes staging, finalizes the bond table, colors the bond
// graph, plans the sorted layout, and primes the lattice (spec §6
// "initialize").
func (e *Engine[C]) Initialize() error {
	if e.state != stateStaging {
		return bfmerr.StateOrder("Initialize", bfmerr.ErrAlreadyInitialized)
	}
	if !e.boxSet {
		return bfmerr.Configuration("Initialize", bfmerr.ErrBoxNotSet)
	}
	if !e.periodicitySet {
		return bfmerr.Configuration("Initialize", bfmerr.ErrPeriodicityNotSet)
	}
	if !e.numSet {
		return bfmerr.Configuration("Initialize", bfmerr.ErrMonomerCountNotSet)
	}

	box, err := lattice.NewBox(e.bx, e.by, e.bz, e.periodicX, e.periodicY, e.periodicZ)
	if err != nil {
		return bfmerr.Configuration("Initialize", err)
	}
	if err := e.table.Finalize(); err != nil {
		return err
	}

	adj := draftAdjacency[C]{store: e.draft}
	result, err := color.Greedy(adj, monomer.MaxConnectivity)
	if err != nil {
		return bfmerr.Configuration("Initialize: coloring", err)
	}
	if e.cfg.uniformColoring {
		result = color.Balance(result, adj)
	}
	if i, j, ok := color.Validate(result.Colors, adj); !ok {
		return bfmerr.InvariantViolation(
			fmt.Sprintf("Initialize: coloring edge (%d,%d)", i, j),
			bfmerr.ErrColoringViolation,
		)
	}

	plan := layout.NewPlan(result.Colors, result.NumColors, e.cfg.alignment)
	nm := layout.BuildNeighborMatrix(plan, monomer.MaxConnectivity, func(old int) []int32 {
		return e.draft.Neighbors(old)
	})

	sorted := monomer.NewStore[C](plan.Padded)
	degreeSorted := make([]int8, plan.Padded)
	positions := make([][3]int, 0, e.n)
	for j := 0; j < plan.Padded; j++ {
		oldIdx := plan.NewToOld[j]
		if oldIdx == layout.Unused {
			continue
		}
		x, y, z := e.draft.Position(oldIdx)
		sorted.SetPosition(j, x, y, z)
		sorted.SetAttribute(j, e.draft.Attribute(oldIdx))
		degreeSorted[j] = int8(e.draft.NeighborCount(oldIdx))
		xi, yi, zi := e.draft.PositionInt(oldIdx)
		positions = append(positions, [3]int{xi, yi, zi})
	}

	lat := lattice.New(box)
	lat.Prime(positions)

	e.box = box
	e.lat = lat
	e.plan = plan
	e.nm = nm
	e.sorted = sorted
	e.degreeSorted = degreeSorted
	e.colors = result.Colors
	e.numColors = result.NumColors
	e.seeds = rng.NewSeedStream(e.cfg.seed)
	e.state = stateInitialized

	e.cfg.logger.Debug().
		Int("n", e.n).
		Int("num_colors", e.numColors).
		Int("padded", plan.Padded).
		Msg("engine initialized")
	return nil
}

// GetPosition returns monomer i's current committed position, in original
// staging order (spec §6 "getPosition").
func (e *Engine[C]) GetPosition(i int) (x, y, z int, err error) {
	if e.state != stateInitialized {
		return 0, 0, 0, bfmerr.StateOrder("GetPosition", bfmerr.ErrNotInitialized)
	}
	if i < 0 || i >= e.n {
		return 0, 0, 0, bfmerr.Configuration("GetPosition", bfmerr.ErrBadMonomerIndex)
	}
	j := e.plan.OldToNew[i]
	x, y, z = e.sorted.PositionInt(j)
	return x, y, z, nil
}

// Cleanup releases the initialized arrays and returns the Engine to its
// pre-configured (staging) state; every staging call must be repeated
// before the next Initialize (spec §3 "Lifecycle").
func (e *Engine[C]) Cleanup() error {
	if e.state != stateInitialized {
		return bfmerr.StateOrder("Cleanup", bfmerr.ErrNotInitialized)
	}
	*e = Engine[C]{cfg: e.cfg, state: stateStaging}
	return nil
}
