package placement

import "sort"

// Per-net cost is weight * (Δx + Δy), where Δx and Δy are the half-perimeter
// bounding-box spans of the net's member vertex coordinates. On a mesh that
// span is simply max-min; on a torus it is the length of the minimal arc
// that covers every member coordinate, i.e. width/height minus the largest
// gap between consecutive (sorted) coordinates, wrap-around gap included.
//
// Total placement cost is never maintained globally — only per-net values
// and per-swap deltas are ever computed, so GetNetCost is O(net size) and
// is the building block GetSwapCost calls for every net touched by a move.

// meshSpan returns max(coords) - min(coords) for a non-empty slice.
func meshSpan(coords []int) int {
	lo, hi := coords[0], coords[0]
	for _, c := range coords[1:] {
		if c < lo {
			lo = c
		}
		if c > hi {
			hi = c
		}
	}

	return hi - lo
}

// torusSpan returns the length of the minimal covering arc of coords on a
// cyclic axis of length size: size minus the largest gap between
// consecutive sorted coordinates (including the wrap gap from the last back
// to the first). coords must be non-empty; a single distinct coordinate
// yields a span of 0.
func torusSpan(coords []int, size int) int {
	sorted := append([]int(nil), coords...)
	sort.Ints(sorted)

	maxGap := 0
	for i := 1; i < len(sorted); i++ {
		if gap := sorted[i] - sorted[i-1]; gap > maxGap {
			maxGap = gap
		}
	}
	wrapGap := size - (sorted[len(sorted)-1] - sorted[0])
	if wrapGap > maxGap {
		maxGap = wrapGap
	}

	return size - maxGap
}

// netSpans returns the (Δx, Δy) half-perimeter spans for a net's member
// vertices under the State's configured topology. A single-member net
// (or one where every member shares a coordinate) costs zero on both axes.
func (s *State) netSpans(n *Net) (dx, dy int) {
	if len(n.members) <= 1 {
		return 0, 0
	}

	xs := make([]int, len(n.members))
	ys := make([]int, len(n.members))
	for i, vi := range n.members {
		xs[i] = s.vertices[vi].x
		ys[i] = s.vertices[vi].y
	}

	if s.topology == Torus {
		return torusSpan(xs, s.width), torusSpan(ys, s.height)
	}

	return meshSpan(xs), meshSpan(ys)
}

// GetNetCost returns weight * (Δx + Δy) for net n under the State's current
// topology. Every member vertex must be attached.
//
// Complexity: O(net size).
func (s *State) GetNetCost(n *Net) float64 {
	dx, dy := s.netSpans(n)
	return n.weight * float64(dx+dy)
}

// GetNetCostByIndex is a convenience wrapper over GetNetCost for callers
// that only have a net index (as returned from Vertex.NetIndices).
func (s *State) GetNetCostByIndex(nIdx int) float64 {
	return s.GetNetCost(&s.nets[nIdx])
}

// netCostDeltaWithOverride computes the change in GetNetCost for net n caused
// by moving the vertices keyed in override (vertex index -> [2]int{x,y}) to
// those coordinates, compared to their current (pre-move) coordinates,
// without mutating any vertex. Vertices not present in override keep their
// current coordinates in the comparison. It is the shared building block for
// GetSwapCost.
func (s *State) netCostDeltaWithOverride(n *Net, override map[int][2]int) float64 {
	if len(n.members) <= 1 {
		return 0
	}

	before := s.GetNetCost(n)

	xs := make([]int, len(n.members))
	ys := make([]int, len(n.members))
	for i, vi := range n.members {
		x, y := s.vertices[vi].x, s.vertices[vi].y
		if ov, ok := override[vi]; ok {
			x, y = ov[0], ov[1]
		}
		xs[i] = x
		ys[i] = y
	}

	var dx, dy int
	if s.topology == Torus {
		dx, dy = torusSpan(xs, s.width), torusSpan(ys, s.height)
	} else {
		dx, dy = meshSpan(xs), meshSpan(ys)
	}
	after := n.weight * float64(dx+dy)

	return after - before
}

// GetSwapCost returns the change in total weighted bounding-box cost that
// would result from swapping the coordinates of vertex A (currently at
// (xa,ya)) with vertex B (currently at (xb,yb)). The "before" cost of each
// net is read from the vertices' live coordinates; the "after" cost places
// A at (xb,yb) and B at (xa,ya) as passed, so callers normally pass the two
// vertices' current coordinates. Step does not call this estimator: it
// measures its Δcost by recomputing the touched nets' GetNetCost before and
// after the move (see step.go), the same per-net cost used here.
//
// Every net incident on A or B contributes once; a net shared by both A and
// B is taken into account exactly once (its delta already reflects both
// vertices moving simultaneously, not two independent single-vertex moves).
//
// Complexity: O(fan-out(A) + fan-out(B)).
func (s *State) GetSwapCost(xa, ya int, a *Vertex, xb, yb int, b *Vertex) float64 {
	override := map[int][2]int{
		a.index: {xb, yb},
		b.index: {xa, ya},
	}

	seen := make(map[int]bool, len(a.nets)+len(b.nets))
	var total float64
	for _, ni := range a.nets {
		if seen[ni] {
			continue
		}
		seen[ni] = true
		total += s.netCostDeltaWithOverride(&s.nets[ni], override)
	}
	for _, ni := range b.nets {
		if seen[ni] {
			continue
		}
		seen[ni] = true
		total += s.netCostDeltaWithOverride(&s.nets[ni], override)
	}

	return total
}

// chebyshev returns max(|dx|, |dy|) for a mesh, or its wrapped variant for
// a torus (each axis distance is min(|d|, size-|d|)).
func chebyshev(x1, y1, x2, y2, width, height int, topology Topology) int {
	dx := abs(x1 - x2)
	dy := abs(y1 - y2)
	if topology == Torus {
		if wrapped := width - dx; wrapped < dx {
			dx = wrapped
		}
		if wrapped := height - dy; wrapped < dy {
			dy = wrapped
		}
	}

	if dx > dy {
		return dx
	}
	return dy
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

// GetDistanceBetween returns the Chebyshev (L∞) grid distance between
// vertices a and b, wrapped if the State is configured as a torus. This is
// a by-product primitive, not used by the cost model; the move generator
// samples targets within the same Chebyshev radius but does not call it. It
// is a metric under both topologies (symmetric, non-negative, satisfies the
// triangle inequality).
func (s *State) GetDistanceBetween(a, b *Vertex) int {
	return chebyshev(a.x, a.y, b.x, b.y, s.width, s.height, s.topology)
}
