package placement

import "math"

// Step performs one simulated-annealing swap attempt:
//
//  1. Pick a movable vertex A at (xa,ya). If A's chip is dead, the step is
//     skipped (not accepted, cost delta 0) — this can only happen if a
//     caller placed a movable vertex on a dead chip (AddVertexToChip does
//     not check) or marked its chip dead afterwards, which the engine itself
//     never does, but Step defends against it
//     since the contract is observable state, not internal bookkeeping.
//  2. Pick a nearby chip (xb,yb) within Chebyshev distance distanceLimit.
//  3. Detach A.
//  4. MakeRoom(xb,yb, demand(A)) — on failure, reattach A and report
//     not-accepted.
//  5. AttachChainIfFits(evicted chain, xa,ya) — on failure, reattach the
//     evicted chain to (xb,yb) (guaranteed to succeed, by MakeRoom's
//     all-or-nothing contract) and reattach A to (xa,ya); report
//     not-accepted.
//  6. Attach A to (xb,yb) — guaranteed to fit, since MakeRoom just made
//     room for exactly A's demand there.
//  7. Compute Δcost as the combined net-bounding-box delta of A and every
//     evicted vertex (a net shared between them counted once). The delta
//     is taken by snapshotting the cost of every touched net just after
//     detachment (old coordinates are still live on detached vertex
//     records — Detach/MakeRoom never clear x/y, only the attached flag
//     and the occupant-list link) and again once both chains have been
//     re-attached at their new chips.
//  8. Accept unconditionally if Δcost <= 0; otherwise accept with
//     probability exp(-Δcost/T). T==0 rejects every uphill move; T==+Inf
//     accepts every move. On reject, undo the whole swap: detach A, detach
//     every evicted vertex by its index captured in step 5 (not by walking
//     the evicted chain's next-links, which the step-5 splice may have
//     extended into A's former co-residents), rebuild the evicted chain from
//     those indices and reattach it to (xb,yb), then reattach A to (xa,ya).
//     Report not-accepted with cost delta 0.
//
// Every non-skip path above has a defined, total roll-back; MakeRoom's and
// AttachChainIfFits's all-or-nothing contracts are what make every roll-back
// here unconditional (they cannot themselves fail partway).
//
// Complexity: O(fan-out(A) + fan-out(evicted chain)), independent of grid
// size or total vertex count.
func (s *State) Step(distanceLimit int, temperature float64) (accepted bool, costDelta float64, err error) {
	if s.numMovableVertices == 0 {
		return false, 0, ErrNoMovableVertices
	}

	a := s.RandomMovableVertex()
	xa, ya := a.x, a.y

	dead, err := s.IsDead(xa, ya)
	if err != nil {
		return false, 0, err
	}
	if dead {
		return false, 0, nil
	}

	xb, yb := s.RandomNearbyChip(xa, ya, distanceLimit)

	if err := s.Detach(a.index); err != nil {
		return false, 0, err
	}

	ok, evictedHead, err := s.MakeRoom(xb, yb, a.demand)
	if err != nil {
		return false, 0, err
	}
	if !ok {
		// MakeRoom guarantees no mutation on failure; only A needs undoing.
		if err := s.AttachChain(a.index, xa, ya); err != nil {
			return false, 0, err
		}
		return false, 0, nil
	}

	// Both A and every evicted vertex still carry their pre-move
	// coordinates here (detaching never clears x/y), so this is the last
	// point at which the "before" cost of every net they touch can be read.
	// evictedIndices is captured now too, while the chain is still
	// self-contained: AttachChainIfFits below splices it onto (xa,ya)'s
	// occupant list ahead of whatever vertices already live there, which
	// overwrites the evicted tail's next pointer to point into that list
	// instead of terminating it. Following next from evictedHead after that
	// splice would walk straight past the evicted vertices into A's former
	// co-residents; evictedIndices lets the reject path detach exactly the
	// evicted set, never relying on next-links that may since been spliced
	// elsewhere.
	touched := s.touchedNets(a.index, evictedHead)
	evictedIndices := s.chainIndices(evictedHead)
	before := s.sumNetCosts(touched)

	fits, err := s.AttachChainIfFits(evictedHead, xa, ya)
	if err != nil {
		return false, 0, err
	}
	if !fits {
		// AttachChainIfFits left (xa,ya) untouched on failure; restore the
		// evicted chain to (xb,yb) — guaranteed to succeed by MakeRoom's
		// all-or-nothing contract — then restore A.
		if err := s.AttachChain(evictedHead, xb, yb); err != nil {
			return false, 0, err
		}
		if err := s.AttachChain(a.index, xa, ya); err != nil {
			return false, 0, err
		}
		return false, 0, nil
	}

	if err := s.AttachChain(a.index, xb, yb); err != nil {
		return false, 0, err
	}

	after := s.sumNetCosts(touched)
	delta := after - before

	if delta <= 0 || acceptUphill(s.rng, delta, temperature) {
		return true, delta, nil
	}

	// Reject: undo the whole swap. Detach unlinks A from (xb,yb) by walking
	// that chip's list, so occupants MakeRoom did not evict stay in place;
	// (xa,ya), however, may hold co-residents of A that
	// were never evicted, interleaved in its occupant list with the evicted
	// chain since the AttachChainIfFits splice above — so the evicted
	// vertices must be detached individually by the indices captured before
	// that splice, never by walking next off evictedHead.
	if err := s.Detach(a.index); err != nil {
		return false, 0, err
	}
	for _, v := range evictedIndices {
		if err := s.Detach(v); err != nil {
			return false, 0, err
		}
	}
	if err := s.attachIndices(evictedIndices, xb, yb); err != nil {
		return false, 0, err
	}
	if err := s.AttachChain(a.index, xa, ya); err != nil {
		return false, 0, err
	}

	return false, 0, nil
}

// touchedNets returns the de-duplicated union of net indices incident on
// vertex aIdx or on any vertex in the chain rooted at chainHead.
func (s *State) touchedNets(aIdx, chainHead int) []int {
	seen := make(map[int]bool)
	var nets []int
	add := func(vIdx int) {
		for _, ni := range s.vertices[vIdx].nets {
			if !seen[ni] {
				seen[ni] = true
				nets = append(nets, ni)
			}
		}
	}

	add(aIdx)
	for v := chainHead; v != -1; v = s.vertices[v].next {
		add(v)
	}

	return nets
}

// chainIndices walks the chain linked from head via each vertex's next field
// and returns its member indices in order. Must be called before the chain
// is spliced onto another chip's occupant list — splicing overwrites the
// chain tail's next pointer, so any indices gathered afterward by following
// next would run on into whatever the chain was spliced in front of.
func (s *State) chainIndices(head int) []int {
	var out []int
	for v := head; v != -1; v = s.vertices[v].next {
		out = append(out, v)
	}

	return out
}

// attachIndices relinks the given vertex indices into a chain, in the given
// order, and attaches it to chip (x,y). Used to restore a chain whose
// original next-links have since been overwritten by a later splice, so the
// chain has to be rebuilt from known indices rather than followed.
func (s *State) attachIndices(indices []int, x, y int) error {
	if len(indices) == 0 {
		return nil
	}
	for i := 0; i < len(indices)-1; i++ {
		s.vertices[indices[i]].next = indices[i+1]
	}
	s.vertices[indices[len(indices)-1]].next = -1

	return s.AttachChain(indices[0], x, y)
}

// sumNetCosts returns the sum of GetNetCost over the given net indices.
func (s *State) sumNetCosts(nets []int) float64 {
	var total float64
	for _, ni := range nets {
		total += s.GetNetCost(&s.nets[ni])
	}

	return total
}

// acceptUphill applies the Metropolis criterion to a strictly positive
// delta: T==0 rejects unconditionally, T==+Inf accepts unconditionally,
// otherwise accept with probability exp(-delta/T).
func acceptUphill(r *rng, delta, temperature float64) bool {
	if temperature == 0 {
		return false
	}
	if math.IsInf(temperature, 1) {
		return true
	}

	p := math.Exp(-delta / temperature)
	return r.float64() < p
}
