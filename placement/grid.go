package placement

// Chip-resource storage is a dense, row-major array of per-chip resource
// vectors; chip-occupant storage is a dense array of intrusive singly linked
// list heads. Both give O(1) access by (x,y); the occupant list is O(L) to
// walk, where L is the (expected-small) number of vertices on one chip.

// SetChipResources writes a single resource-vector component at (x,y,r).
// Writing any negative value before any vertex has been attached to (x,y)
// marks the chip dead (IsDead reports true and MakeRoom/AttachChainIfFits
// refuse it), matching the sentinel convention NewState establishes (-1 in
// every component). A dead chip becomes live again once a write leaves every
// component non-negative, which is how the NewState sentinel is cleared.
// Returns ErrOutOfBounds or
// ErrResourceDimensionMismatch as appropriate.
func (s *State) SetChipResources(x, y, r, value int) error {
	idx, err := s.chipIndex(x, y)
	if err != nil {
		return err
	}
	if r < 0 || r >= s.numResourceTypes {
		return ErrResourceDimensionMismatch
	}
	c := &s.chips[idx]
	c.remaining[r] = value
	if value < 0 {
		c.dead = true
	} else if resourcePositive(c.remaining) {
		// All components are now non-negative: the chip is no longer dead,
		// unless a previous call already poisoned it with a negative value
		// elsewhere — the `dead` flag only flips false here when the full
		// vector currently checks out.
		c.dead = false
	}

	return nil
}

// GetChipResources reads the remaining-resource component r at (x,y).
func (s *State) GetChipResources(x, y, r int) (int, error) {
	idx, err := s.chipIndex(x, y)
	if err != nil {
		return 0, err
	}
	if r < 0 || r >= s.numResourceTypes {
		return 0, ErrResourceDimensionMismatch
	}

	return s.chips[idx].remaining[r], nil
}

// IsDead reports whether the chip at (x,y) is dead: its capacity was set
// with a negative component in some dimension (see SetChipResources).
// MakeRoom and AttachChainIfFits never place onto a dead chip regardless of
// how its remaining vector might otherwise look; AttachChain and
// AddVertexToChip do not check.
func (s *State) IsDead(x, y int) (bool, error) {
	idx, err := s.chipIndex(x, y)
	if err != nil {
		return false, err
	}

	return s.chips[idx].dead, nil
}

// OccupantsAt returns a snapshot slice of the vertex indices currently
// occupying chip (x,y), in head-to-tail list order. This allocates (O(L))
// and is intended for tests and inspection — never
// for the hot path, which walks the intrusive list directly.
func (s *State) OccupantsAt(x, y int) ([]int, error) {
	idx, err := s.chipIndex(x, y)
	if err != nil {
		return nil, err
	}

	var out []int
	for v := s.chips[idx].occupant; v != -1; v = s.vertices[v].next {
		out = append(out, v)
	}

	return out, nil
}

// chipRemaining returns the live remaining-resource slice for direct,
// allocation-free mutation by manipulate.go. Callers must not retain the
// slice past the current operation nor resize it.
func (s *State) chipRemaining(idx int) []int { return s.chips[idx].remaining }
