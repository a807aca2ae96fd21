package verify_test

import (
	"testing"

	"github.com/lgh0504/pscbfm-go/bondtable"
	"github.com/lgh0504/pscbfm-go/lattice"
	"github.com/lgh0504/pscbfm-go/monomer"
	"github.com/lgh0504/pscbfm-go/verify"
	"github.com/stretchr/testify/require"
)

func newTestLattice(t *testing.T) (*lattice.Lattice, *bondtable.Table) {
	t.Helper()
	box, err := lattice.NewBox(8, 8, 8, true, true, true)
	require.NoError(t, err)
	table, err := bondtable.NewStandardTable()
	require.NoError(t, err)
	return lattice.New(box), table
}

func TestRunCleanDimerPasses(t *testing.T) {
	lat, table := newTestLattice(t)
	store := monomer.NewStore[int32](2)
	store.SetPosition(0, 2, 2, 2)
	store.SetPosition(1, 4, 2, 2)
	require.NoError(t, store.AddBond(0, 1))
	lat.Prime([][3]int{{2, 2, 2}, {4, 2, 2}})

	rep := verify.Run(store, table, []int{0, 1}, lat)
	require.True(t, rep.OK(), "report: %+v, err: %v", rep, rep.Err)
	require.NoError(t, rep.Err)
}

func TestRunDetectsOverlap(t *testing.T) {
	lat, table := newTestLattice(t)
	store := monomer.NewStore[int32](2)
	store.SetPosition(0, 2, 2, 2)
	store.SetPosition(1, 2, 2, 2) // same cell
	lat.Prime([][3]int{{2, 2, 2}, {2, 2, 2}})

	rep := verify.Run(store, table, nil, lat)
	require.False(t, rep.OK())
	require.Greater(t, rep.OverlapCount, 0)
	require.Error(t, rep.Err)
}

func TestRunDetectsPartialCubeOverlap(t *testing.T) {
	lat, table := newTestLattice(t)
	store := monomer.NewStore[int32](2)
	// Distinct base corners, but adjacent cubes: monomer 0's cube spans
	// x in [0,1], monomer 1's spans x in [1,2] — they share the whole
	// x=1 face (4 corners), which a base-corner-only check would miss.
	store.SetPosition(0, 0, 0, 0)
	store.SetPosition(1, 1, 0, 0)
	lat.Prime([][3]int{{0, 0, 0}, {1, 0, 0}})

	rep := verify.Run(store, table, nil, lat)
	require.False(t, rep.OK())
	require.Equal(t, 4, rep.OverlapCount)
}

func TestRunDetectsBrokenBond(t *testing.T) {
	lat, table := newTestLattice(t)
	store := monomer.NewStore[int32](2)
	store.SetPosition(0, 2, 2, 2)
	store.SetPosition(1, 6, 2, 2) // delta (4,0,0): outside bond domain
	require.NoError(t, store.AddBond(0, 1))
	lat.Prime([][3]int{{2, 2, 2}, {6, 2, 2}})

	rep := verify.Run(store, table, []int{0, 0}, lat)
	require.NotNil(t, rep.FirstBondFailure)
	require.Equal(t, 0, rep.FirstBondFailure.I)
	require.Equal(t, 1, rep.FirstBondFailure.J)
}

func TestRunDetectsColoringViolation(t *testing.T) {
	lat, table := newTestLattice(t)
	store := monomer.NewStore[int32](2)
	store.SetPosition(0, 2, 2, 2)
	store.SetPosition(1, 4, 2, 2)
	require.NoError(t, store.AddBond(0, 1))
	lat.Prime([][3]int{{2, 2, 2}, {4, 2, 2}})

	rep := verify.Run(store, table, []int{0, 0}, lat) // same color, bonded
	require.NotNil(t, rep.ColoringFailure)
}

func TestRunDetectsDirtyScratch(t *testing.T) {
	lat, table := newTestLattice(t)
	store := monomer.NewStore[int32](1)
	store.SetPosition(0, 2, 2, 2)
	lat.Prime([][3]int{{2, 2, 2}})
	lat.SetScratch(5, 5, 5)

	rep := verify.Run(store, table, nil, lat)
	require.Equal(t, 1, rep.ScratchDirty)
	require.False(t, rep.OK())
}
