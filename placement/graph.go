package placement

// NewVertex configures the vertex at table index i to carry a demand vector
// of State.NumResourceTypes() and room for numNets net back-references. The
// vertex record itself was allocated by NewState; this call (re)initialises
// its demand/nets storage in place — no new vertex slot is created, which is
// why the index must already be in range.
//
// Outer loaders call this once per declared vertex, then place each vertex
// on a chip with AddVertexToChip; the loader is responsible for calling
// SetMovableCount so the first MovableCount() indices are the movable ones.
//
// Complexity: O(R + numNets).
func (s *State) NewVertex(i, numNets int) (*Vertex, error) {
	if i < 0 || i >= len(s.vertices) {
		return nil, ErrTableExhausted
	}
	if numNets < 0 {
		return nil, ErrTableExhausted
	}

	v := &s.vertices[i]
	v.demand = make([]int, s.numResourceTypes)
	v.nets = make([]int, 0, numNets)
	v.next = -1
	v.attached = false

	return v, nil
}

// SetVertexDemand overwrites vertex i's resource demand vector. dem must
// have length State.NumResourceTypes().
func (s *State) SetVertexDemand(i int, dem []int) error {
	if i < 0 || i >= len(s.vertices) {
		return ErrTableExhausted
	}
	if len(dem) != s.numResourceTypes {
		return ErrResourceDimensionMismatch
	}
	copy(s.vertices[i].demand, dem)

	return nil
}

// NewNet configures the net at table index i with the given weight and room
// for numVertices members, to be populated by AddVertexToNet.
//
// Complexity: O(1).
func (s *State) NewNet(i int, weight float64, numVertices int) (*Net, error) {
	if i < 0 || i >= len(s.nets) {
		return nil, ErrTableExhausted
	}
	if numVertices < 0 {
		return nil, ErrTableExhausted
	}

	n := &s.nets[i]
	n.weight = weight
	n.capacity = numVertices
	n.members = make([]int, 0, numVertices)

	return n, nil
}

// AddVertexToNet appends vertex vIdx to net nIdx's membership, and appends
// nIdx to the vertex's own net back-reference list. Membership is
// append-only and is only ever mutated during problem construction; nothing
// in Step/RunSteps touches it. Returns ErrNetFull if the net already holds
// its declared number of members.
//
// Complexity: O(1) amortized.
func (s *State) AddVertexToNet(nIdx, vIdx int) error {
	if nIdx < 0 || nIdx >= len(s.nets) {
		return ErrTableExhausted
	}
	if vIdx < 0 || vIdx >= len(s.vertices) {
		return ErrTableExhausted
	}
	n := &s.nets[nIdx]
	if len(n.members) >= n.capacity {
		return ErrNetFull
	}
	n.members = append(n.members, vIdx)
	s.vertices[vIdx].nets = append(s.vertices[vIdx].nets, nIdx)

	return nil
}

// AddVertexToChip places vertex vIdx directly onto chip (x,y), unconditionally
// updating resources and the chip's occupant list; it is used only during
// initial problem loading, never during annealing (Step uses
// AttachChain/AttachChainIfFits, which share the same underlying splice
// logic but reason about feasibility). The movable argument is informational
// only — the engine's movability rule is positional (State.MovableCount),
// so callers must still arrange vertex table order to match. Returns
// ErrVertexAttached if vIdx is already placed.
//
// Complexity: O(R).
func (s *State) AddVertexToChip(vIdx, x, y int, movable bool) error {
	_ = movable // informational; movability is positional, see MovableCount

	if vIdx < 0 || vIdx >= len(s.vertices) {
		return ErrTableExhausted
	}
	v := &s.vertices[vIdx]
	if v.attached {
		return ErrVertexAttached
	}
	idx, err := s.chipIndex(x, y)
	if err != nil {
		return err
	}

	c := &s.chips[idx]
	resourceSubtract(c.remaining, v.demand)
	v.x, v.y = x, y
	v.attached = true
	v.next = c.occupant
	c.occupant = vIdx

	return nil
}
