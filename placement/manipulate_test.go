package placement_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/vlsiplace/vlsiplace/placement"
)

func setupTwoVertexChip(t *testing.T) (*placement.State, int, int) {
	t.Helper()
	s, err := placement.NewState(2, 1, 1, 2, 0)
	require.NoError(t, err)
	require.NoError(t, s.SetChipResources(0, 0, 0, 3))
	require.NoError(t, s.SetChipResources(1, 0, 0, 3))
	for i := 0; i < 2; i++ {
		_, err := s.NewVertex(i, 0)
		require.NoError(t, err)
		require.NoError(t, s.SetVertexDemand(i, []int{1}))
	}
	return s, 0, 1
}

func TestAttachDetach_RoundTrip(t *testing.T) {
	s, a, b := setupTwoVertexChip(t)
	require.NoError(t, s.AddVertexToChip(a, 0, 0, true))
	require.NoError(t, s.AddVertexToChip(b, 0, 0, true))

	v, err := s.GetChipResources(0, 0, 0)
	require.NoError(t, err)
	require.Equal(t, 1, v)

	occ, err := s.OccupantsAt(0, 0)
	require.NoError(t, err)
	require.Equal(t, []int{b, a}, occ) // head-first splice: most recent attach is head

	require.NoError(t, s.Detach(a))
	v, _ = s.GetChipResources(0, 0, 0)
	require.Equal(t, 2, v)

	occ, _ = s.OccupantsAt(0, 0)
	require.Equal(t, []int{b}, occ)
}

func TestAttachChainIfFits_RestoresOnFailure(t *testing.T) {
	s, a, b := setupTwoVertexChip(t)
	require.NoError(t, s.SetChipResources(0, 0, 0, 1)) // room for exactly one demand-1 vertex
	require.NoError(t, s.AddVertexToChip(a, 0, 0, true))

	before, err := s.GetChipResources(0, 0, 0)
	require.NoError(t, err)

	require.NoError(t, s.SetVertexDemand(b, []int{1}))
	fits, err := s.AttachChainIfFits(b, 0, 0)
	require.NoError(t, err)
	require.False(t, fits)

	after, err := s.GetChipResources(0, 0, 0)
	require.NoError(t, err)
	require.Equal(t, before, after)

	require.False(t, s.Vertex(b).Attached())
}

func TestAttachChainIfFits_DeadChipAlwaysFails(t *testing.T) {
	s, err := placement.NewState(1, 1, 1, 1, 0)
	require.NoError(t, err)
	_, err = s.NewVertex(0, 0)
	require.NoError(t, err)
	require.NoError(t, s.SetVertexDemand(0, []int{0}))

	fits, err := s.AttachChainIfFits(0, 0, 0)
	require.NoError(t, err)
	require.False(t, fits)
}

func TestMakeRoom_AlreadySufficient(t *testing.T) {
	s, a, _ := setupTwoVertexChip(t)
	before, err := s.OccupantsAt(0, 0)
	require.NoError(t, err)

	ok, head, err := s.MakeRoom(0, 0, []int{1})
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, -1, head)

	after, _ := s.OccupantsAt(0, 0)
	require.Equal(t, before, after)
	_ = a
}

func TestMakeRoom_EvictsUntilFits(t *testing.T) {
	s, a, b := setupTwoVertexChip(t)
	require.NoError(t, s.AddVertexToChip(a, 0, 0, true))
	require.NoError(t, s.AddVertexToChip(b, 0, 0, true))
	// Chip now has 1 resource remaining (capacity 3 - demand 1 - demand 1).

	ok, head, err := s.MakeRoom(0, 0, []int{3})
	require.NoError(t, err)
	require.True(t, ok)
	// b was attached last, so it sits at the occupant-list head and is the
	// first vertex evicted.
	require.Equal(t, b, head)
	require.False(t, s.Vertex(a).Attached())
	require.False(t, s.Vertex(b).Attached())

	remaining, err := s.GetChipResources(0, 0, 0)
	require.NoError(t, err)
	require.Equal(t, 3, remaining)
}

func TestMakeRoom_AllOrNothingOnFailure(t *testing.T) {
	s, a, b := setupTwoVertexChip(t)
	require.NoError(t, s.AddVertexToChip(a, 0, 0, true))
	require.NoError(t, s.AddVertexToChip(b, 0, 0, true))

	beforeOcc, err := s.OccupantsAt(0, 0)
	require.NoError(t, err)
	beforeRes, err := s.GetChipResources(0, 0, 0)
	require.NoError(t, err)

	ok, head, err := s.MakeRoom(0, 0, []int{100})
	require.NoError(t, err)
	require.False(t, ok)
	require.Equal(t, -1, head)

	afterOcc, err := s.OccupantsAt(0, 0)
	require.NoError(t, err)
	afterRes, err := s.GetChipResources(0, 0, 0)
	require.NoError(t, err)

	require.Equal(t, beforeOcc, afterOcc)
	require.Equal(t, beforeRes, afterRes)
	require.True(t, s.Vertex(a).Attached())
	require.True(t, s.Vertex(b).Attached())
}

func TestMakeRoom_DeadChipNeverSucceeds(t *testing.T) {
	s, err := placement.NewState(1, 1, 1, 0, 0)
	require.NoError(t, err)

	ok, head, err := s.MakeRoom(0, 0, []int{0})
	require.NoError(t, err)
	require.False(t, ok)
	require.Equal(t, -1, head)
}
