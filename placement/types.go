// Package placement implements a grid placement engine driven by simulated
// annealing: a set of Vertex records (compute tasks) is placed onto a
// rectangular grid of Chips (physical resources with a fixed multi-dimensional
// resource capacity), connected by a 2D mesh or torus topology. The objective
// is the weighted sum of per-net half-perimeter bounding-box wire length.
//
// The engine is single-threaded and synchronous: every State method mutates
// its receiver in place and returns before the caller regains control. No
// goroutine touches a *State concurrently; independent annealing runs must
// use disjoint States (see github.com/vlsiplace/vlsiplace/schedule).
//
// Vertex, net and chip records are allocated by NewState and reused for the
// lifetime of the State; evicted vertex chains during MakeRoom are spliced
// out of existing vertex records, never copied. The hot path (Step/RunSteps)
// is not allocation-free: each step allocates small transient buffers (trial
// resource vectors, per-net coordinate slices, the set of touched nets).
package placement

import (
	"errors"
	"fmt"
)

// Sentinel errors for placement operations. Infeasible moves are reported as
// booleans (spec: step/attach-if-fits never escalate infeasibility to an
// error); these sentinels cover programmer-misuse and construction failures
// instead.
var (
	// ErrInvalidDimensions indicates a non-positive width, height, or resource count.
	ErrInvalidDimensions = errors.New("placement: width, height and resource count must be positive")

	// ErrTableExhausted indicates more vertices or nets were requested than
	// the table sizes declared at NewState.
	ErrTableExhausted = errors.New("placement: vertex or net table exhausted")

	// ErrNetFull indicates AddVertexToNet was called more times than the net's declared size.
	ErrNetFull = errors.New("placement: net already has its declared number of members")

	// ErrOutOfBounds indicates a chip coordinate lies outside the grid.
	ErrOutOfBounds = errors.New("placement: chip coordinate out of bounds")

	// ErrResourceDimensionMismatch indicates a vector whose length differs from num_resource_types.
	ErrResourceDimensionMismatch = errors.New("placement: resource vector length mismatch")

	// ErrNoMovableVertices indicates Step was called on a State with zero
	// movable vertices (RandomMovableVertex itself panics in that case).
	ErrNoMovableVertices = errors.New("placement: no movable vertices")

	// ErrVertexAttached indicates AddVertexToChip was called on a vertex that is already placed.
	ErrVertexAttached = errors.New("placement: vertex is already attached to a chip")
)

// Topology selects whether grid distances and bounding-box costs wrap around
// at the edges (torus) or not (mesh).
type Topology int

const (
	// Mesh is the default: no wrap-around on either axis.
	Mesh Topology = iota
	// Torus wraps both axes; bounding boxes use the minimal covering arc.
	Torus
)

// Vertex is a placeable task with a resource demand vector and membership in
// zero or more Nets. A Vertex is attached to exactly one chip at a time; when
// detached, X and Y are meaningless and next is -1.
//
// Movability is positional: the owning State's first MovableCount() vertices
// (by table index) are movable; the rest are fixed. Vertex itself carries no
// movable flag — see State.MovableCount.
type Vertex struct {
	index   int    // position in State.vertices; identifies this vertex to the engine
	demand  []int  // resource demand vector, length == State.numResourceTypes
	x, y    int    // chip coordinates; valid only while attached
	attached bool
	next    int // index of next vertex in this chip's occupant list, or -1

	nets []int // indices into State.nets this vertex belongs to
}

// Index returns this vertex's stable position in the owning State's vertex table.
func (v *Vertex) Index() int { return v.index }

// Attached reports whether the vertex currently occupies a chip.
func (v *Vertex) Attached() bool { return v.attached }

// X returns the vertex's chip X coordinate. Meaningless if !Attached().
func (v *Vertex) X() int { return v.x }

// Y returns the vertex's chip Y coordinate. Meaningless if !Attached().
func (v *Vertex) Y() int { return v.y }

// Demand returns the vertex's resource demand vector. The returned slice
// aliases internal storage and must not be mutated by callers.
func (v *Vertex) Demand() []int { return v.demand }

// NetIndices returns the indices of the nets this vertex belongs to. The
// returned slice aliases internal storage and must not be mutated.
func (v *Vertex) NetIndices() []int { return v.nets }

// Net is a weighted hyperedge connecting a fixed set of vertices. Membership
// is append-only during construction (AddVertexToNet) and immutable during
// annealing.
type Net struct {
	index    int
	weight   float64
	capacity int   // declared number of member vertices
	members  []int // vertex indices, append-only up to capacity
}

// Index returns this net's stable position in the owning State's net table.
func (n *Net) Index() int { return n.index }

// Weight returns the net's weight.
func (n *Net) Weight() float64 { return n.weight }

// Members returns the indices of the net's member vertices. The returned
// slice aliases internal storage and must not be mutated.
func (n *Net) Members() []int { return n.members }

// chip holds one grid cell's remaining resource vector and the head of its
// occupant linked list (-1 when empty). dead records whether a negative
// component has been written (by SetChipResources or the NewState sentinel)
// without every component having since been set non-negative again;
// MakeRoom and AttachChainIfFits refuse a dead chip even when its remaining
// resources would otherwise look positive.
type chip struct {
	remaining []int // length == numResourceTypes
	occupant  int   // index of head vertex, or -1
	dead      bool
}

// State owns every vertex, net, and grid record for one placement problem.
// It is the unit of isolation for concurrent annealing: two goroutines must
// never call methods on the same *State concurrently.
type State struct {
	width, height     int
	numResourceTypes  int
	topology          Topology

	vertices []Vertex
	nets     []Net

	chips []chip // row-major, length width*height

	numMovableVertices int
	numVerticesUsed    int
	numNetsUsed        int

	rng *rng
}

// Option configures a State at construction time.
type Option func(*State)

// WithWrapAround configures the grid topology at construction. Equivalent to
// calling SetWrapAround immediately after NewState.
func WithWrapAround(wrap bool) Option {
	return func(s *State) {
		if wrap {
			s.topology = Torus
		} else {
			s.topology = Mesh
		}
	}
}

// WithSeed seeds the State's internal PRNG deterministically. Two States
// built with the same seed draw the same sequence of random numbers from
// their own rng, though RandomMovableVertex/RandomNearbyChip's use of
// rejection sampling means the draws consumed per call are not invariant
// across implementations (only the statistical contract is guaranteed).
func WithSeed(seed int64) Option {
	return func(s *State) { s.rng = newRNG(seed) }
}

// NewState constructs an empty State of the declared dimensions. All chip
// capacities start dead (every resource component at -1, the sentinel
// positive() always rejects); vertex and net tables are preallocated to
// numVertices/numNets and populated by New Vertex/NewNet. Returns
// ErrInvalidDimensions if any of width, height, numResourceTypes is <= 0.
//
// Complexity: O(W*H*R + numVertices + numNets).
func NewState(width, height, numResourceTypes, numVertices, numNets int, opts ...Option) (*State, error) {
	if width <= 0 || height <= 0 || numResourceTypes <= 0 {
		return nil, ErrInvalidDimensions
	}
	if numVertices < 0 || numNets < 0 {
		return nil, ErrInvalidDimensions
	}

	s := &State{
		width:            width,
		height:           height,
		numResourceTypes: numResourceTypes,
		topology:         Mesh,
		vertices:         make([]Vertex, numVertices),
		nets:             make([]Net, numNets),
		chips:            make([]chip, width*height),
		rng:              newRNG(0),
	}

	for i := range s.vertices {
		s.vertices[i] = Vertex{index: i, next: -1}
	}
	for i := range s.nets {
		s.nets[i] = Net{index: i}
	}
	for i := range s.chips {
		rem := make([]int, numResourceTypes)
		for r := range rem {
			rem[r] = -1
		}
		s.chips[i] = chip{remaining: rem, occupant: -1, dead: true}
	}

	for _, opt := range opts {
		opt(s)
	}

	return s, nil
}

// Free releases State resources. Go's garbage collector owns the backing
// arrays allocated by NewState; Free exists for API parity with the
// original construct/destruct pair and is safe (and a no-op) to skip.
func (s *State) Free() {}

// Width returns the grid width.
func (s *State) Width() int { return s.width }

// Height returns the grid height.
func (s *State) Height() int { return s.height }

// NumResourceTypes returns the per-chip resource vector length R.
func (s *State) NumResourceTypes() int { return s.numResourceTypes }

// Topology returns the configured grid topology.
func (s *State) Topology() Topology { return s.topology }

// SetWrapAround toggles mesh (false) vs torus (true) topology.
func (s *State) SetWrapAround(wrap bool) {
	if wrap {
		s.topology = Torus
	} else {
		s.topology = Mesh
	}
}

// VertexCount returns the number of vertex records allocated by NewState.
func (s *State) VertexCount() int { return len(s.vertices) }

// NetCount returns the number of net records allocated by NewState.
func (s *State) NetCount() int { return len(s.nets) }

// MovableCount returns the number of positionally-movable vertices (the
// first MovableCount() entries of the vertex table).
func (s *State) MovableCount() int { return s.numMovableVertices }

// SetMovableCount declares the first n vertices of the table movable. The
// outer loader is responsible for ordering vertex allocation so that
// movable vertices occupy the table prefix; this call only records the
// boundary. Returns ErrTableExhausted if n exceeds VertexCount().
func (s *State) SetMovableCount(n int) error {
	if n < 0 || n > len(s.vertices) {
		return ErrTableExhausted
	}
	s.numMovableVertices = n
	return nil
}

// Vertex returns the vertex at table index i.
func (s *State) Vertex(i int) *Vertex { return &s.vertices[i] }

// Net returns the net at table index i.
func (s *State) Net(i int) *Net { return &s.nets[i] }

func (s *State) chipIndex(x, y int) (int, error) {
	if x < 0 || x >= s.width || y < 0 || y >= s.height {
		return 0, fmt.Errorf("%w: (%d,%d)", ErrOutOfBounds, x, y)
	}
	return y*s.width + x, nil
}
