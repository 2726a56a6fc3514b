package problemgen

import (
	"github.com/vlsiplace/vlsiplace/placement"
)

// Generate builds a random, reproducible *placement.State: a grid of the
// configured dimensions with an independently-dead fraction of chips, the
// rest given random per-resource capacity; vertices with random demand
// vectors, the configured fraction of them movable; and nets with random
// membership drawn from the generated vertices and weight from the
// configured WeightFn. The same seed (WithSeed) with the same other options
// always yields the same State.
//
// Every generated vertex is placed onto some live chip that has room for it
// before Generate returns; ErrNoRoom is returned if the configured
// capacity/demand/dead-fraction combination cannot fit every vertex.
func Generate(opts ...Option) (*placement.State, error) {
	c := newConfig()
	for _, opt := range opts {
		opt(c)
	}

	s, err := placement.NewState(
		c.width, c.height, c.numResourceTypes, c.numVertices, c.numNets,
		placement.WithWrapAround(c.wrap),
		placement.WithSeed(c.rng.Int63()),
	)
	if err != nil {
		return nil, err
	}

	if err := populateChips(s, c); err != nil {
		return nil, err
	}
	if err := populateVertices(s, c); err != nil {
		return nil, err
	}
	if err := placeVertices(s, c); err != nil {
		return nil, err
	}
	if err := populateNets(s, c); err != nil {
		return nil, err
	}

	movable := int(float64(c.numVertices) * c.movableFraction)
	if c.numVertices > 0 && c.movableFraction > 0 && movable == 0 {
		movable = 1
	}
	if err := s.SetMovableCount(movable); err != nil {
		return nil, err
	}

	return s, nil
}

func populateChips(s *placement.State, c *config) error {
	for y := 0; y < c.height; y++ {
		for x := 0; x < c.width; x++ {
			if c.rng.Float64() < c.deadChipFraction {
				continue // left dead: never call SetChipResources
			}
			res := make([]int, c.numResourceTypes)
			for r := range res {
				res[r] = 1 + c.rng.Intn(c.chipCapacity)
			}
			if err := s.SetChipResources(x, y, 0, res[0]); err != nil {
				return err
			}
			for r := 1; r < c.numResourceTypes; r++ {
				if err := s.SetChipResources(x, y, r, res[r]); err != nil {
					return err
				}
			}
		}
	}
	return nil
}

func populateVertices(s *placement.State, c *config) error {
	for i := 0; i < c.numVertices; i++ {
		if _, err := s.NewVertex(i, c.netArity); err != nil {
			return err
		}
		demand := make([]int, c.numResourceTypes)
		for r := range demand {
			demand[r] = c.rng.Intn(c.vertexDemand + 1)
		}
		if err := s.SetVertexDemand(i, demand); err != nil {
			return err
		}
	}
	return nil
}

// placeVertices attaches every vertex to a live chip with room for its
// demand. It first tries a bounded number of random chips, then falls back
// to a deterministic linear scan of the grid; ErrNoRoom if nothing fits.
func placeVertices(s *placement.State, c *config) error {
	const randomAttempts = 32

	for i := 0; i < c.numVertices; i++ {
		placed := false
		for attempt := 0; attempt < randomAttempts; attempt++ {
			x := c.rng.Intn(c.width)
			y := c.rng.Intn(c.height)
			fits, err := s.AttachChainIfFits(i, x, y)
			if err != nil {
				return err
			}
			if fits {
				placed = true
				break
			}
		}
		if placed {
			continue
		}

		for y := 0; y < c.height && !placed; y++ {
			for x := 0; x < c.width && !placed; x++ {
				fits, err := s.AttachChainIfFits(i, x, y)
				if err != nil {
					return err
				}
				if fits {
					placed = true
				}
			}
		}
		if !placed {
			return ErrNoRoom
		}
	}
	return nil
}

func populateNets(s *placement.State, c *config) error {
	if c.numVertices == 0 {
		return nil
	}
	for i := 0; i < c.numNets; i++ {
		arity := 2 + c.rng.Intn(c.netArity-1)
		if arity > c.numVertices {
			arity = c.numVertices
		}
		weight := c.weightFn(c.rng)
		if _, err := s.NewNet(i, weight, arity); err != nil {
			return err
		}

		members := c.rng.Perm(c.numVertices)[:arity]
		for _, v := range members {
			if err := s.AddVertexToNet(i, v); err != nil {
				return err
			}
		}
	}
	return nil
}
