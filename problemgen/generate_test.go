package problemgen_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/vlsiplace/vlsiplace/problemgen"
)

func TestGenerate_DeterministicForSameSeed(t *testing.T) {
	opts := []problemgen.Option{
		problemgen.WithSeed(42),
		problemgen.WithDimensions(6, 6),
		problemgen.WithVertices(10),
		problemgen.WithNets(5),
		problemgen.WithChipCapacity(8),
		problemgen.WithVertexDemand(2),
	}

	a, err := problemgen.Generate(opts...)
	require.NoError(t, err)
	b, err := problemgen.Generate(opts...)
	require.NoError(t, err)

	for i := 0; i < a.VertexCount(); i++ {
		va, vb := a.Vertex(i), b.Vertex(i)
		require.Equal(t, va.X(), vb.X())
		require.Equal(t, va.Y(), vb.Y())
		require.Equal(t, va.Demand(), vb.Demand())
	}
	for i := 0; i < a.NetCount(); i++ {
		require.Equal(t, a.Net(i).Weight(), b.Net(i).Weight())
		require.Equal(t, a.Net(i).Members(), b.Net(i).Members())
	}
}

func TestGenerate_EveryVertexIsAttached(t *testing.T) {
	s, err := problemgen.Generate(
		problemgen.WithSeed(7),
		problemgen.WithDimensions(5, 5),
		problemgen.WithVertices(12),
		problemgen.WithNets(4),
		problemgen.WithChipCapacity(10),
		problemgen.WithVertexDemand(1),
	)
	require.NoError(t, err)

	for i := 0; i < s.VertexCount(); i++ {
		require.True(t, s.Vertex(i).Attached(), "vertex %d must be placed", i)
	}
}

func TestGenerate_MovableFractionAppliesToPrefix(t *testing.T) {
	s, err := problemgen.Generate(
		problemgen.WithSeed(3),
		problemgen.WithDimensions(4, 4),
		problemgen.WithVertices(8),
		problemgen.WithNets(2),
		problemgen.WithChipCapacity(10),
		problemgen.WithVertexDemand(1),
		problemgen.WithMovableFraction(0.5),
	)
	require.NoError(t, err)
	require.Equal(t, 4, s.MovableCount())
}

func TestGenerate_NoRoomReturnsError(t *testing.T) {
	// A single chip of capacity 1 cannot hold 30 vertices each independently
	// drawing demand in [0,3]; the odds that their demands total at most 1
	// (all 0, or exactly one 1) are 31 * 0.25^30, so this is deterministic in
	// all but theory.
	_, err := problemgen.Generate(
		problemgen.WithSeed(1),
		problemgen.WithDimensions(1, 1),
		problemgen.WithVertices(30),
		problemgen.WithNets(0),
		problemgen.WithChipCapacity(1),
		problemgen.WithVertexDemand(3),
	)
	require.ErrorIs(t, err, problemgen.ErrNoRoom)
}

func TestUniformWeightFn_PanicsOnInvertedRange(t *testing.T) {
	require.Panics(t, func() {
		problemgen.UniformWeightFn(5, 1)
	})
}

func TestWithDimensions_PanicsOnNonPositive(t *testing.T) {
	require.Panics(t, func() {
		problemgen.WithDimensions(0, 4)
	})
}
