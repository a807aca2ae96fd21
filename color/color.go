// Package color assigns a conflict-free species (color) to every monomer in
// the bond graph, so that a parallel sweep over one species can never
// contain two bonded monomers moving simultaneously (spec §4.1).
//
// Adjacency is accepted in the CSR-like form the monomer package already
// stores: for vertex i, Neighbors(i) lists its bonded partners. Greedy
// assigns the smallest color not already used by a neighbor, in vertex
// order; Balance then redistributes populations toward ⌈N/C⌉ per color
// without ever breaking the separation invariant.
package color

import "fmt"

// Adjacency is the minimal view the colorer needs over a vertex set: the
// bonded neighbor indices of vertex i.
type Adjacency interface {
	Len() int
	Neighbors(i int) []int32
}

// Result holds a valid coloring: Colors[i] is vertex i's species id, and
// NumColors is the palette size actually used (<= the greedy upper bound of
// max-degree+1).
type Result struct {
	Colors    []int
	NumColors int
}

// Histogram returns the population of each color, Histogram()[c] == n[c].
// Useful for the coloring-stress scenario (spec §8 scenario 3) and as an
// input to the layout planner.
func (r Result) Histogram() []int {
	h := make([]int, r.NumColors)
	for _, c := range r.Colors {
		h[c]++
	}
	return h
}

// Greedy assigns colors by a single smallest-available-color pass over
// vertices in index order (spec §4.1: "a greedy smallest-available-color
// pass in arbitrary vertex order ... satisfies this"). Returns an error if
// any vertex's neighbor list exceeds the caller-declared maxConnectivity,
// matching the source's documented failure mode.
func Greedy(adj Adjacency, maxConnectivity int) (Result, error) {
	n := adj.Len()
	colors := make([]int, n)
	for i := range colors {
		colors[i] = -1
	}

	// used is reused across vertices to avoid an allocation per vertex;
	// sized to the worst case (every neighbor a distinct color).
	used := make([]bool, maxConnectivity+1)

	maxColor := -1
	for i := 0; i < n; i++ {
		nbrs := adj.Neighbors(i)
		if len(nbrs) > maxConnectivity {
			return Result{}, fmt.Errorf("color: vertex %d has %d neighbors, exceeds max connectivity %d", i, len(nbrs), maxConnectivity)
		}
		for k := range used {
			used[k] = false
		}
		for _, j := range nbrs {
			if c := colors[j]; c >= 0 && c < len(used) {
				used[c] = true
			}
		}
		c := 0
		for c < len(used) && used[c] {
			c++
		}
		colors[i] = c
		if c > maxColor {
			maxColor = c
		}
	}

	return Result{Colors: colors, NumColors: maxColor + 1}, nil
}

// Balance rebalances a Greedy result toward ⌈N/C⌉ vertices per color
// (spec §4.1's "uniform" mode), via the swap-to-median heuristic named in
// DESIGN.md: repeatedly find the most- and least-populated colors, and move
// the lowest-index vertex of the former whose neighborhood does not already
// use the latter into it. Only the single least-populated color is tried as
// a target. Terminates when no color exceeds ⌈N/C⌉, when no vertex of the
// most-populated color can move to the least-populated one, or after V*C
// moves, so it always halts; populations are not guaranteed to reach
// ⌈N/C⌉ (spec §9 open question, resolved).
func Balance(res Result, adj Adjacency) Result {
	n := len(res.Colors)
	if res.NumColors <= 1 || n == 0 {
		return res
	}
	target := (n + res.NumColors - 1) / res.NumColors // ceil(N/C)

	colors := append([]int(nil), res.Colors...)
	pop := res.Histogram()

	maxAttempts := n * res.NumColors
	for attempt := 0; attempt < maxAttempts; attempt++ {
		maxC, minC := argMax(pop), argMin(pop)
		if pop[maxC]-pop[minC] <= 1 && pop[maxC] <= target {
			break
		}
		if pop[maxC] <= target {
			break
		}

		moved := false
		for i := 0; i < n; i++ {
			if colors[i] != maxC {
				continue
			}
			if canRecolor(i, minC, colors, adj) {
				colors[i] = minC
				pop[maxC]--
				pop[minC]++
				moved = true
				break
			}
		}
		if !moved {
			break
		}
	}

	return Result{Colors: colors, NumColors: res.NumColors}
}

// canRecolor reports whether vertex i may be repainted to newColor without
// any neighbor already holding newColor.
func canRecolor(i, newColor int, colors []int, adj Adjacency) bool {
	for _, j := range adj.Neighbors(i) {
		if colors[j] == newColor {
			return false
		}
	}
	return true
}

func argMax(xs []int) int {
	best := 0
	for i, v := range xs {
		if v > xs[best] {
			best = i
		}
	}
	return best
}

func argMin(xs []int) int {
	best := 0
	for i, v := range xs {
		if v < xs[best] {
			best = i
		}
	}
	return best
}

// Validate reports whether colors is a proper coloring of adj: no two
// adjacent vertices share a color. Returns the first offending edge
// (i,j) found, or (-1,-1,true) if the coloring is valid.
func Validate(colors []int, adj Adjacency) (i, j int, ok bool) {
	for v := 0; v < adj.Len(); v++ {
		for _, nb := range adj.Neighbors(v) {
			if colors[v] == colors[nb] {
				return v, int(nb), false
			}
		}
	}
	return -1, -1, true
}
