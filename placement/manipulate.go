package placement

// attachChain walks the chain linked by each vertex's next field starting at
// head (a vertex index, or -1 for an empty chain) and splices the whole
// chain onto chip idx's occupant list, subtracting each vertex's demand from
// the chip's remaining resources and stamping its coordinates. It does not
// test feasibility; callers are expected to have already established that
// the chip can afford the chain (or not to care, as with the initial loader
// path AddVertexToChip, which calls the single-vertex form inline instead).
//
// Complexity: O(chain length).
func (s *State) attachChain(head, x, y int, idx int) {
	if head == -1 {
		return
	}

	c := &s.chips[idx]
	// Find the tail of the incoming chain so we can splice it in front of
	// the chip's existing occupants in one step, preserving relative order
	// within the chain.
	tail := head
	for {
		v := &s.vertices[tail]
		resourceSubtract(c.remaining, v.demand)
		v.x, v.y = x, y
		v.attached = true
		if v.next == -1 {
			break
		}
		tail = v.next
	}
	s.vertices[tail].next = c.occupant
	c.occupant = head
}

// AttachChain attaches the chain of vertices linked from vHead (head vertex
// index, or -1 for an empty chain) onto chip (x,y), splicing it at the head
// of the chip's occupant list. Does not test feasibility — a chip's
// remaining resources may go negative; callers that need a feasibility
// guarantee must use AttachChainIfFits or must already know the chip was
// prepared with MakeRoom.
//
// Complexity: O(chain length).
func (s *State) AttachChain(vHead, x, y int) error {
	idx, err := s.chipIndex(x, y)
	if err != nil {
		return err
	}
	s.attachChain(vHead, x, y, idx)

	return nil
}

// AttachChainIfFits sums the demand of every vertex in the chain linked from
// vHead, subtracts the total from chip (x,y)'s remaining resources, and only
// if the result stays non-negative in every component does it actually
// splice the chain onto the chip (via AttachChain). On failure the chip's
// resources are left exactly as they were and false is returned. A dead
// chip always fails, even for an empty chain; on a live chip an empty chain
// (vHead == -1) always succeeds without attaching anything.
//
// Complexity: O(chain length).
func (s *State) AttachChainIfFits(vHead, x, y int) (bool, error) {
	idx, err := s.chipIndex(x, y)
	if err != nil {
		return false, err
	}

	c := &s.chips[idx]
	if c.dead {
		return false, nil
	}
	if vHead == -1 {
		return true, nil
	}

	var chainDemands [][]int
	for v := vHead; v != -1; v = s.vertices[v].next {
		chainDemands = append(chainDemands, s.vertices[v].demand)
	}
	total := resourceSum(s.numResourceTypes, chainDemands)

	trial := make([]int, s.numResourceTypes)
	copy(trial, c.remaining)
	resourceSubtract(trial, total)
	if !resourcePositive(trial) {
		return false, nil
	}

	s.attachChain(vHead, x, y, idx)

	return true, nil
}

// Detach unlinks v from the occupant list of its current chip (O(L) in that
// chip's occupant-list length L), restores its demand to the chip's
// remaining resources, and clears v's next link and attached flag. Detaching
// an unattached vertex is a no-op.
//
// Complexity: O(L).
func (s *State) Detach(vIdx int) error {
	if vIdx < 0 || vIdx >= len(s.vertices) {
		return ErrTableExhausted
	}
	v := &s.vertices[vIdx]
	if !v.attached {
		return nil
	}
	idx, err := s.chipIndex(v.x, v.y)
	if err != nil {
		return err
	}
	c := &s.chips[idx]

	if c.occupant == vIdx {
		c.occupant = v.next
	} else {
		prev := c.occupant
		for prev != -1 && s.vertices[prev].next != vIdx {
			prev = s.vertices[prev].next
		}
		if prev != -1 {
			s.vertices[prev].next = v.next
		}
	}

	resourceAdd(c.remaining, v.demand)
	v.next = -1
	v.attached = false

	return nil
}

// MakeRoom ensures chip (x,y) has at least `demand` free resources
// (componentwise), evicting occupants from the head of its occupant list one
// at a time into a private chain until the positivity test passes. The
// evicted chain is returned as the index of its head vertex (-1 if none were
// evicted), with vertices in the order they held in the occupant list
// (reverse attach order): the first vertex evicted, the list head, becomes
// the head of the returned chain, matching the natural head-first eviction
// discipline.
//
// Policies:
//   - A dead chip never succeeds.
//   - If the chip already has enough free room (including demand == all
//     zeros), it succeeds with an empty evicted chain and no mutation.
//   - If evicting every occupant is still insufficient, the chip and all of
//     its occupants are restored exactly as they were and the call fails;
//     the caller observes no change at all. This all-or-nothing guarantee
//     is the keystone of Step's roll-back logic.
//
// Complexity: O(occupant-list length).
func (s *State) MakeRoom(x, y int, demand []int) (ok bool, evictedHead int, err error) {
	idx, err := s.chipIndex(x, y)
	if err != nil {
		return false, -1, err
	}
	if len(demand) != s.numResourceTypes {
		return false, -1, ErrResourceDimensionMismatch
	}
	c := &s.chips[idx]
	if c.dead {
		return false, -1, nil
	}

	trial := make([]int, s.numResourceTypes)
	copy(trial, c.remaining)
	resourceSubtract(trial, demand)
	if resourcePositive(trial) {
		return true, -1, nil
	}

	// Evict from the head, one vertex at a time, re-testing after each
	// eviction, until either the test passes or the list is exhausted.
	var evictedTail = -1
	evictedHead = -1
	for c.occupant != -1 {
		v := c.occupant
		vv := &s.vertices[v]
		c.occupant = vv.next
		resourceAdd(c.remaining, vv.demand)
		vv.next = -1
		vv.attached = false

		if evictedHead == -1 {
			evictedHead = v
		} else {
			s.vertices[evictedTail].next = v
		}
		evictedTail = v

		copy(trial, c.remaining)
		resourceSubtract(trial, demand)
		if resourcePositive(trial) {
			return true, evictedHead, nil
		}
	}

	// Exhausted every occupant and still infeasible: restore everything
	// exactly as it was before this call so the caller observes no change.
	s.attachChain(evictedHead, x, y, idx)

	return false, -1, nil
}
