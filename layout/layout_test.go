package layout_test

import (
	"testing"

	"github.com/lgh0504/pscbfm-go/layout"
	"github.com/stretchr/testify/require"
)

func TestNewPlanContiguousAndPadded(t *testing.T) {
	colors := []int{0, 1, 0, 1, 0, 1, 0} // n[0]=4, n[1]=3
	plan := layout.NewPlan(colors, 2, 4)

	require.Equal(t, []int{4, 3}, plan.N)
	require.Equal(t, []int{0, 4}, plan.Off)
	require.Equal(t, 8, plan.Padded) // 4 padded to 4, 3 padded to 4

	for i, c := range colors {
		j := plan.OldToNew[i]
		lo, hi := plan.Range(c)
		require.GreaterOrEqual(t, j, lo)
		require.Less(t, j, hi)
		require.Equal(t, i, plan.NewToOld[j])
	}
}

func TestNewPlanPaddingSlotsAreUnused(t *testing.T) {
	colors := []int{0, 0, 0} // n[0]=3, pad to 4 with align 4
	plan := layout.NewPlan(colors, 1, 4)
	require.Equal(t, 4, plan.Padded)
	require.Equal(t, layout.Unused, plan.NewToOld[3])
}

func TestNewPlanAlignOne(t *testing.T) {
	colors := []int{0, 1, 0, 1}
	plan := layout.NewPlan(colors, 2, 1)
	require.Equal(t, 4, plan.Padded)
	require.Equal(t, []int{0, 2}, plan.Off)
}

func TestBuildNeighborMatrixRewritesAdjacency(t *testing.T) {
	// A 4-cycle 0-1-2-3-0, colored alternately: 0,2 -> color0; 1,3 -> color1.
	colors := []int{0, 1, 0, 1}
	plan := layout.NewPlan(colors, 2, 2)

	oldAdj := map[int][]int32{
		0: {1, 3},
		1: {0, 2},
		2: {1, 3},
		3: {0, 2},
	}
	nm := layout.BuildNeighborMatrix(plan, 2, func(i int) []int32 { return oldAdj[i] })

	for oldIdx, nbrs := range oldAdj {
		c := colors[oldIdx]
		j := plan.OldToNew[oldIdx]
		lo, _ := plan.Range(c)
		m := j - lo
		for s, oldNb := range nbrs {
			got := nm.At(c, s, m)
			require.Equal(t, int32(plan.OldToNew[oldNb]), got)
		}
	}
}
