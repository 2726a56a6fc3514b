package placement

// RandomMovableVertex returns a uniformly-chosen vertex from the first
// MovableCount() entries of the vertex table. Undefined (panics, via the
// underlying math/rand.Intn(0)) when MovableCount() == 0 — callers (Step)
// must check MovableCount() first; this mirrors the original C contract
// ("undefined when M = 0, caller's responsibility") rather than silently
// returning a sentinel the caller could forget to check.
func (s *State) RandomMovableVertex() *Vertex {
	i := s.rng.intn(s.numMovableVertices)
	return &s.vertices[i]
}

// RandomNearbyChip draws a chip (x,y) uniformly at random from the set of
// chips within Chebyshev distance D of (ox,oy), excluding (ox,oy) itself,
// intersected with the grid on a mesh or wrapped into the grid on a torus.
// When D is large enough to cover the whole grid, the result is uniform
// over every chip except the origin. Implemented by rejection sampling: a
// candidate offset is drawn uniformly from the (2D+1)x(2D+1) box (on a
// torus, an axis shorter than 2D+1 is drawn over its whole length instead,
// so no chip is reached by more than one offset) and re-drawn whenever it
// lands back on the origin or, on a mesh, off-grid.
func (s *State) RandomNearbyChip(ox, oy, d int) (x, y int) {
	spanX, spanY := 2*d+1, 2*d+1
	offX, offY := d, d
	if s.topology == Torus {
		if spanX > s.width {
			spanX, offX = s.width, 0
		}
		if spanY > s.height {
			spanY, offY = s.height, 0
		}
	}
	for {
		dx := s.rng.intn(spanX) - offX
		dy := s.rng.intn(spanY) - offY
		if dx == 0 && dy == 0 {
			continue
		}

		cx, cy := ox+dx, oy+dy
		if s.topology == Torus {
			cx = wrapCoord(cx, s.width)
			cy = wrapCoord(cy, s.height)
		} else {
			if cx < 0 || cx >= s.width || cy < 0 || cy >= s.height {
				continue
			}
		}
		if cx == ox && cy == oy {
			continue
		}

		return cx, cy
	}
}

// wrapCoord folds v into [0, size) for a torus axis of length size.
func wrapCoord(v, size int) int {
	v %= size
	if v < 0 {
		v += size
	}
	return v
}
