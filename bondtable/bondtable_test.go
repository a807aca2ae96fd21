package bondtable_test

import (
	"errors"
	"testing"

	"github.com/lgh0504/pscbfm-go/bfmerr"
	"github.com/lgh0504/pscbfm-go/bondtable"
	"github.com/stretchr/testify/require"
)

func TestStandardBFMSetHas108Vectors(t *testing.T) {
	set := bondtable.StandardBFMSet()
	require.Len(t, set, bondtable.AllowedCount)

	seen := make(map[[3]int]bool, len(set))
	for _, v := range set {
		require.False(t, seen[v], "duplicate vector %v", v)
		seen[v] = true
	}
}

func TestNewStandardTableFinalizes(t *testing.T) {
	tbl, err := bondtable.NewStandardTable()
	require.NoError(t, err)
	require.True(t, tbl.Finalized())
	require.Equal(t, bondtable.AllowedCount, tbl.AllowedCountSoFar())

	for _, v := range bondtable.StandardBFMSet() {
		require.True(t, tbl.Allowed(v[0], v[1], v[2]))
	}
	require.False(t, tbl.Allowed(0, 0, 0))
	require.False(t, tbl.Allowed(4, 0, 0)) // out of [-4,3]
}

func TestFinalizeRejectsWrongCount(t *testing.T) {
	var tbl bondtable.Table
	tbl.Set(2, 0, 0, true)
	err := tbl.Finalize()
	require.Error(t, err)
	require.True(t, errors.Is(err, bfmerr.ErrBadAllowedBondCount))
	require.False(t, tbl.Finalized())
}

func TestSetIsIdempotentOnCount(t *testing.T) {
	var tbl bondtable.Table
	tbl.Set(2, 0, 0, true)
	tbl.Set(2, 0, 0, true)
	require.Equal(t, 1, tbl.AllowedCountSoFar())
	tbl.Set(2, 0, 0, false)
	require.Equal(t, 0, tbl.AllowedCountSoFar())
}

func TestDirectionVectors(t *testing.T) {
	dx, dy, dz := bondtable.Vector(bondtable.DirNegX)
	require.Equal(t, -1, dx)
	require.Equal(t, 0, dy)
	require.Equal(t, 0, dz)

	dx, dy, dz = bondtable.Vector(bondtable.DirPosZ)
	require.Equal(t, 0, dx)
	require.Equal(t, 0, dy)
	require.Equal(t, 1, dz)

	require.Equal(t, 0, bondtable.Axis(bondtable.DirNegX))
	require.Equal(t, 1, bondtable.Axis(bondtable.DirPosY))
	require.Equal(t, 2, bondtable.Axis(bondtable.DirPosZ))

	require.Equal(t, -1, bondtable.Sign(bondtable.DirNegX))
	require.Equal(t, +1, bondtable.Sign(bondtable.DirPosX))
}

func TestLinearizeRange(t *testing.T) {
	seen := make(map[int]bool)
	for dx := -4; dx <= 3; dx++ {
		for dy := -4; dy <= 3; dy++ {
			for dz := -4; dz <= 3; dz++ {
				idx := bondtable.Linearize(dx, dy, dz)
				require.GreaterOrEqual(t, idx, 0)
				require.Less(t, idx, bondtable.Size)
				seen[idx] = true
			}
		}
	}
	require.Len(t, seen, bondtable.Size)
}
