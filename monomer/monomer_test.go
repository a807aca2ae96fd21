package monomer_test

import (
	"testing"

	"github.com/lgh0504/pscbfm-go/bfmerr"
	"github.com/lgh0504/pscbfm-go/monomer"
	"github.com/stretchr/testify/require"
)

func TestSetPositionAndMove(t *testing.T) {
	s := monomer.NewStore[int16](3)
	s.SetPosition(0, 2, 2, 2)
	x, y, z := s.Position(0)
	require.Equal(t, int16(2), x)
	require.Equal(t, int16(2), y)
	require.Equal(t, int16(2), z)

	s.Move(0, 1, 0, 0)
	x, y, z = s.Position(0)
	require.Equal(t, int16(3), x)
	require.Equal(t, int16(2), y)
	require.Equal(t, int16(2), z)
}

func TestAddBondIsUndirected(t *testing.T) {
	s := monomer.NewStore[int32](2)
	require.NoError(t, s.AddBond(0, 1))
	require.Equal(t, 1, s.NeighborCount(0))
	require.Equal(t, 1, s.NeighborCount(1))
	require.Equal(t, []int32{1}, s.Neighbors(0))
	require.Equal(t, []int32{0}, s.Neighbors(1))
}

func TestAddBondOverflow(t *testing.T) {
	s := monomer.NewStore[int32](monomer.MaxConnectivity + 2)
	for j := 1; j <= monomer.MaxConnectivity; j++ {
		require.NoError(t, s.AddBond(0, j))
	}
	err := s.AddBond(0, monomer.MaxConnectivity+1)
	require.Error(t, err)
	require.ErrorIs(t, err, bfmerr.ErrNeighborOverflow)
	// Overflow must not have partially linked the other endpoint either.
	require.Equal(t, 0, s.NeighborCount(monomer.MaxConnectivity+1))
}

func TestAttributeBitsDoNotClobberNeighborCount(t *testing.T) {
	s := monomer.NewStore[int32](2)
	require.NoError(t, s.AddBond(0, 1))
	s.SetAttribute(0, 0x1f)
	require.Equal(t, byte(0x1f), s.Attribute(0))
	require.Equal(t, 1, s.NeighborCount(0))
}

func TestFlagEncodeDecode(t *testing.T) {
	f := monomer.EncodeAccept(5)
	require.True(t, monomer.Accepted(f))
	require.False(t, monomer.Committed(f))
	require.Equal(t, 5, monomer.DecodeDirection(f))

	f |= monomer.FlagCommitAccepted
	require.True(t, monomer.Committed(f))
}

func TestMirrorSyncHooksAreNoOps(t *testing.T) {
	s := monomer.NewStore[int32](1)
	m := monomer.NewMirror(s)
	require.Same(t, s, m.Host())
	m.SyncToDevice()
	m.SyncFromDevice()
}
