package placement_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/vlsiplace/vlsiplace/placement"
)

func TestStep_NoMovableVertices(t *testing.T) {
	s, err := placement.NewState(2, 2, 1, 1, 0)
	require.NoError(t, err)

	_, _, err = s.Step(1, 1.0)
	require.ErrorIs(t, err, placement.ErrNoMovableVertices)
}

func TestStep_SkipsDeadOrigin(t *testing.T) {
	s, err := placement.NewState(2, 2, 1, 1, 0, placement.WithSeed(1))
	require.NoError(t, err)
	_, err = s.NewVertex(0, 0)
	require.NoError(t, err)
	require.NoError(t, s.SetVertexDemand(0, []int{0}))
	require.NoError(t, s.SetMovableCount(1))
	// Force-attach to a chip that is still dead (never had its capacity set).
	require.NoError(t, s.AddVertexToChip(0, 0, 0, true))

	accepted, delta, err := s.Step(1, 1.0)
	require.NoError(t, err)
	require.False(t, accepted)
	require.Zero(t, delta)
}

// TestStep_PreservesTotalChipResources checks resource conservation across
// steps: with one vertex and no nets every move has delta 0 and is accepted
// even at T=0, and the sum of remaining resources over all chips must stay
// the same after every step.
func TestStep_PreservesTotalChipResources(t *testing.T) {
	s, err := placement.NewState(3, 1, 1, 1, 0, placement.WithSeed(99))
	require.NoError(t, err)
	for x := 0; x < 3; x++ {
		require.NoError(t, s.SetChipResources(x, 0, 0, 1))
	}
	_, err = s.NewVertex(0, 0)
	require.NoError(t, err)
	require.NoError(t, s.SetVertexDemand(0, []int{1}))
	require.NoError(t, s.SetMovableCount(1))
	require.NoError(t, s.AddVertexToChip(0, 0, 0, true))

	type snap struct{ r0, r1, r2 int }
	before := func() snap {
		a, _ := s.GetChipResources(0, 0, 0)
		b, _ := s.GetChipResources(1, 0, 0)
		c, _ := s.GetChipResources(2, 0, 0)
		return snap{a, b, c}
	}
	want := before()

	for i := 0; i < 20; i++ {
		_, _, err := s.Step(2, 0) // T=0: any positive-delta proposal is rejected
		require.NoError(t, err)
		got := before()
		// A rejected step must restore resources exactly; an accepted step
		// (delta<=0) is also fine here since there is only one vertex and
		// no nets, so every move has delta==0 and is always accepted —
		// which must also leave the per-chip resource *sum* unchanged.
		require.Equal(t, 2, got.r0+got.r1+got.r2)
		want = got
	}
	_ = want
}

// TestStep_RejectedRestoresCoResidentOnEviction exercises the case where A's
// origin chip also holds a vertex that is never evicted (C) and the target
// chip's MakeRoom call does evict someone (B). A rejected step here used to
// walk next-links off the evicted chain after it had already been spliced
// ahead of C on (xa,ya)'s occupant list, detaching C along with the evicted
// chain and losing it. The fix detaches the evicted set by the indices
// captured before that splice, so C must come out of every rejected step
// exactly as it went in.
func TestStep_RejectedRestoresCoResidentOnEviction(t *testing.T) {
	s, err := placement.NewState(2, 1, 1, 3, 1, placement.WithSeed(7))
	require.NoError(t, err)
	require.NoError(t, s.SetChipResources(0, 0, 0, 2))
	require.NoError(t, s.SetChipResources(1, 0, 0, 1))

	// index 0: A, movable, demand 1, starts at (0,0).
	_, err = s.NewVertex(0, 1)
	require.NoError(t, err)
	require.NoError(t, s.SetVertexDemand(0, []int{1}))
	// index 1: C, fixed, demand 1, co-resident with A at (0,0), never evicted.
	_, err = s.NewVertex(1, 1)
	require.NoError(t, err)
	require.NoError(t, s.SetVertexDemand(1, []int{1}))
	// index 2: B, fixed, demand 1, alone at (1,0); evicted whenever A moves there.
	_, err = s.NewVertex(2, 0)
	require.NoError(t, err)
	require.NoError(t, s.SetVertexDemand(2, []int{1}))

	require.NoError(t, s.SetMovableCount(1)) // only A (index 0) is movable

	// Net 0 ties A and C together so moving A off (0,0) strictly increases
	// cost (bounding box grows from 0 to 1), forcing rejection under T=0.
	_, err = s.NewNet(0, 1.0, 2)
	require.NoError(t, err)
	require.NoError(t, s.AddVertexToNet(0, 0))
	require.NoError(t, s.AddVertexToNet(0, 1))

	require.NoError(t, s.AddVertexToChip(0, 0, 0, true))
	require.NoError(t, s.AddVertexToChip(1, 0, 0, false))
	require.NoError(t, s.AddVertexToChip(2, 1, 0, false))

	for i := 0; i < 20; i++ {
		accepted, delta, err := s.Step(1, 0) // T=0: the only candidate move is uphill
		require.NoError(t, err)
		require.False(t, accepted)
		require.Zero(t, delta)

		origin, err := s.OccupantsAt(0, 0)
		require.NoError(t, err)
		require.ElementsMatch(t, []int{0, 1}, origin)

		target, err := s.OccupantsAt(1, 0)
		require.NoError(t, err)
		require.Equal(t, []int{2}, target)

		r0, err := s.GetChipResources(0, 0, 0)
		require.NoError(t, err)
		require.Zero(t, r0)

		r1, err := s.GetChipResources(1, 0, 0)
		require.NoError(t, err)
		require.Zero(t, r1)

		require.Equal(t, 0.0, s.GetNetCostByIndex(0)) // A is back beside C at (0,0)
	}
}

func TestAcceptUphill_ZeroTemperatureRejectsUphill(t *testing.T) {
	s, err := placement.NewState(4, 4, 1, 2, 1, placement.WithSeed(3))
	require.NoError(t, err)
	for x := 0; x < 4; x++ {
		for y := 0; y < 4; y++ {
			require.NoError(t, s.SetChipResources(x, y, 0, 1))
		}
	}
	for i := 0; i < 2; i++ {
		_, err := s.NewVertex(i, 1)
		require.NoError(t, err)
		require.NoError(t, s.SetVertexDemand(i, []int{1}))
	}
	require.NoError(t, s.SetMovableCount(2))
	_, err = s.NewNet(0, 1.0, 2)
	require.NoError(t, err)
	require.NoError(t, s.AddVertexToNet(0, 0))
	require.NoError(t, s.AddVertexToNet(0, 1))
	require.NoError(t, s.AddVertexToChip(0, 0, 0, true))
	require.NoError(t, s.AddVertexToChip(1, 1, 0, true)) // already adjacent, cost 1

	// T=0: every uphill proposal (cost going above 1) must be rejected, so
	// cost can only stay at 1 or improve (impossible: unit demand on
	// unit-capacity chips keeps the two vertices on distinct chips, so 1 is
	// already minimal).
	for i := 0; i < 200; i++ {
		_, _, err := s.Step(4, 0)
		require.NoError(t, err)
		require.Equal(t, 1.0, s.GetNetCostByIndex(0))
	}
}
