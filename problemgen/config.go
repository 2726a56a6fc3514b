// Package problemgen builds synthetic placement.State problems and
// (de)serializes problem descriptions to YAML, in the functional-options
// idiom of lvlath's builder package: option constructors validate and panic
// on meaningless input, the generator itself never panics, and determinism
// is explicit via WithSeed.
package problemgen

import "math/rand"

// WeightFn produces a net weight given an RNG source, mirroring builder's
// WeightFn type for edge weights.
type WeightFn func(rng *rand.Rand) float64

// DefaultNetWeight is used when no WeightFn is configured.
const DefaultNetWeight = 1.0

// DefaultWeightFn always returns DefaultNetWeight.
func DefaultWeightFn(_ *rand.Rand) float64 { return DefaultNetWeight }

// UniformWeightFn samples uniformly in [min, max]. Panics if max < min.
func UniformWeightFn(min, max float64) WeightFn {
	if max < min {
		panic("problemgen: UniformWeightFn requires max >= min")
	}
	return func(rng *rand.Rand) float64 {
		if max == min {
			return min
		}
		return min + rng.Float64()*(max-min)
	}
}

// config collects the generator's tunables; zero value is never used
// directly, newConfig fills in the defaults.
type config struct {
	rng *rand.Rand

	width, height    int
	numResourceTypes int

	numVertices int
	numNets     int

	// deadChipFraction is the probability, independently per chip, that the
	// chip is left dead (never assigned resources).
	deadChipFraction float64

	// chipCapacity bounds the per-resource-component capacity assigned to
	// each live chip: drawn uniformly in [1, chipCapacity].
	chipCapacity int

	// vertexDemand bounds per-resource-component vertex demand: drawn
	// uniformly in [0, vertexDemand].
	vertexDemand int

	// movableFraction is the fraction of vertices (rounded down, at least
	// one if numVertices > 0 and the fraction is non-zero) placed at the
	// front of the table as movable.
	movableFraction float64

	// netArity bounds how many members a generated net has: drawn
	// uniformly in [2, netArity].
	netArity int

	weightFn WeightFn
	wrap     bool
}

func newConfig() *config {
	return &config{
		rng:              rand.New(rand.NewSource(1)),
		width:            8,
		height:           8,
		numResourceTypes: 1,
		numVertices:      16,
		numNets:          8,
		deadChipFraction: 0,
		chipCapacity:     4,
		vertexDemand:     1,
		movableFraction:  1.0,
		netArity:         3,
		weightFn:         DefaultWeightFn,
		wrap:             false,
	}
}

// Option configures the generator. Option constructors validate and panic
// on meaningless inputs; Generate itself never panics.
type Option func(*config)

// WithSeed seeds the generator's RNG deterministically.
func WithSeed(seed int64) Option {
	return func(c *config) { c.rng = rand.New(rand.NewSource(seed)) }
}

// WithDimensions sets the grid width and height. Panics if either is <= 0.
func WithDimensions(width, height int) Option {
	if width <= 0 || height <= 0 {
		panic("problemgen: WithDimensions requires width > 0 and height > 0")
	}
	return func(c *config) { c.width, c.height = width, height }
}

// WithResourceTypes sets the per-chip resource vector length. Panics if n <= 0.
func WithResourceTypes(n int) Option {
	if n <= 0 {
		panic("problemgen: WithResourceTypes requires n > 0")
	}
	return func(c *config) { c.numResourceTypes = n }
}

// WithVertices sets how many vertices are generated. Panics if n < 0.
func WithVertices(n int) Option {
	if n < 0 {
		panic("problemgen: WithVertices requires n >= 0")
	}
	return func(c *config) { c.numVertices = n }
}

// WithNets sets how many nets are generated. Panics if n < 0.
func WithNets(n int) Option {
	if n < 0 {
		panic("problemgen: WithNets requires n >= 0")
	}
	return func(c *config) { c.numNets = n }
}

// WithDeadChipFraction sets the independent per-chip probability of being
// left dead. Panics if f is outside [0, 1).
func WithDeadChipFraction(f float64) Option {
	if f < 0 || f >= 1 {
		panic("problemgen: WithDeadChipFraction requires f in [0, 1)")
	}
	return func(c *config) { c.deadChipFraction = f }
}

// WithChipCapacity bounds the per-resource-component capacity of live
// chips to [1, max]. Panics if max <= 0.
func WithChipCapacity(max int) Option {
	if max <= 0 {
		panic("problemgen: WithChipCapacity requires max > 0")
	}
	return func(c *config) { c.chipCapacity = max }
}

// WithVertexDemand bounds per-resource-component vertex demand to
// [0, max]. Panics if max < 0.
func WithVertexDemand(max int) Option {
	if max < 0 {
		panic("problemgen: WithVertexDemand requires max >= 0")
	}
	return func(c *config) { c.vertexDemand = max }
}

// WithMovableFraction sets the fraction of generated vertices that are
// movable (placed at the front of the vertex table). Panics if f is
// outside [0, 1].
func WithMovableFraction(f float64) Option {
	if f < 0 || f > 1 {
		panic("problemgen: WithMovableFraction requires f in [0, 1]")
	}
	return func(c *config) { c.movableFraction = f }
}

// WithNetArity bounds generated net size to [2, max]. Panics if max < 2.
func WithNetArity(max int) Option {
	if max < 2 {
		panic("problemgen: WithNetArity requires max >= 2")
	}
	return func(c *config) { c.netArity = max }
}

// WithWeightFn overrides the per-net weight generator. Panics on nil.
func WithWeightFn(fn WeightFn) Option {
	if fn == nil {
		panic("problemgen: WithWeightFn(nil)")
	}
	return func(c *config) { c.weightFn = fn }
}

// WithWrapAround selects torus (true) vs mesh (false) topology.
func WithWrapAround(wrap bool) Option {
	return func(c *config) { c.wrap = wrap }
}
