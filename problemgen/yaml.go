package problemgen

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/vlsiplace/vlsiplace/placement"
)

// chipDoc is the on-disk representation of one live chip; dead chips are
// simply absent from Chips.
type chipDoc struct {
	X         int   `yaml:"x"`
	Y         int   `yaml:"y"`
	Resources []int `yaml:"resources"`
}

type vertexDoc struct {
	Demand []int `yaml:"demand"`
	X      int   `yaml:"x"`
	Y      int   `yaml:"y"`
}

type netDoc struct {
	Weight  float64 `yaml:"weight"`
	Members []int   `yaml:"members"`
}

// problemDoc is the root YAML document produced by SaveProblem and consumed
// by LoadProblem.
type problemDoc struct {
	Width            int    `yaml:"width"`
	Height           int    `yaml:"height"`
	NumResourceTypes int    `yaml:"num_resource_types"`
	WrapAround       bool   `yaml:"wrap_around"`
	MovableCount     int    `yaml:"movable_count"`
	Chips            []chipDoc   `yaml:"chips"`
	Vertices         []vertexDoc `yaml:"vertices"`
	Nets             []netDoc    `yaml:"nets"`
}

// SaveProblem serializes s to path as YAML: grid dimensions and topology,
// the resource vector of every live chip (dead chips are omitted, since
// NewState's sentinel already defaults every chip to dead), every vertex's
// demand and current placement, and every net's weight and membership.
func SaveProblem(s *placement.State, path string) error {
	doc := problemDoc{
		Width:            s.Width(),
		Height:           s.Height(),
		NumResourceTypes: s.NumResourceTypes(),
		WrapAround:       s.Topology() == placement.Torus,
		MovableCount:     s.MovableCount(),
	}

	// Chips store the remaining resource vector, not the original capacity;
	// reconstruct capacity by adding back the demand of every vertex
	// currently occupying the chip, so LoadProblem's AddVertexToChip calls
	// (which subtract demand the same way Generate's placement did) land on
	// the same remaining values.
	capacity := make(map[[2]int][]int)
	for y := 0; y < s.Height(); y++ {
		for x := 0; x < s.Width(); x++ {
			dead, err := s.IsDead(x, y)
			if err != nil {
				return err
			}
			if dead {
				continue
			}
			res := make([]int, s.NumResourceTypes())
			for r := range res {
				v, err := s.GetChipResources(x, y, r)
				if err != nil {
					return err
				}
				res[r] = v
			}
			capacity[[2]int{x, y}] = res
		}
	}
	for i := 0; i < s.VertexCount(); i++ {
		v := s.Vertex(i)
		if !v.Attached() {
			continue
		}
		key := [2]int{v.X(), v.Y()}
		res, ok := capacity[key]
		if !ok {
			continue
		}
		for r, d := range v.Demand() {
			res[r] += d
		}
	}
	for y := 0; y < s.Height(); y++ {
		for x := 0; x < s.Width(); x++ {
			res, ok := capacity[[2]int{x, y}]
			if !ok {
				continue
			}
			doc.Chips = append(doc.Chips, chipDoc{X: x, Y: y, Resources: res})
		}
	}

	for i := 0; i < s.VertexCount(); i++ {
		v := s.Vertex(i)
		doc.Vertices = append(doc.Vertices, vertexDoc{
			Demand: append([]int(nil), v.Demand()...),
			X:      v.X(),
			Y:      v.Y(),
		})
	}

	for i := 0; i < s.NetCount(); i++ {
		n := s.Net(i)
		doc.Nets = append(doc.Nets, netDoc{
			Weight:  n.Weight(),
			Members: append([]int(nil), n.Members()...),
		})
	}

	out, err := yaml.Marshal(&doc)
	if err != nil {
		return fmt.Errorf("problemgen: marshal problem: %w", err)
	}
	if err := os.WriteFile(path, out, 0o644); err != nil {
		return fmt.Errorf("problemgen: write %s: %w", path, err)
	}
	return nil
}

// LoadProblem reads a problem description written by SaveProblem and
// rebuilds a *placement.State from it: chip resources are restored in
// increasing (x,y) order (live chips only — the rest stay dead per
// NewState's default), every vertex regains its demand and is reattached to
// its saved chip, and every net regains its weight and membership. The
// reconstructed grid resource state after this call is bit-for-bit
// equivalent to the original at save time, since SetChipResources/
// AddVertexToChip are deterministic given the same inputs.
func LoadProblem(path string) (*placement.State, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("problemgen: read %s: %w", path, err)
	}

	var doc problemDoc
	if err := yaml.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("problemgen: unmarshal %s: %w", path, err)
	}

	s, err := placement.NewState(
		doc.Width, doc.Height, doc.NumResourceTypes,
		len(doc.Vertices), len(doc.Nets),
		placement.WithWrapAround(doc.WrapAround),
	)
	if err != nil {
		return nil, err
	}

	for _, cd := range doc.Chips {
		for r, v := range cd.Resources {
			if err := s.SetChipResources(cd.X, cd.Y, r, v); err != nil {
				return nil, err
			}
		}
	}

	for i, vd := range doc.Vertices {
		if _, err := s.NewVertex(i, countMemberships(doc.Nets, i)); err != nil {
			return nil, err
		}
		if err := s.SetVertexDemand(i, vd.Demand); err != nil {
			return nil, err
		}
	}

	for i, nd := range doc.Nets {
		if _, err := s.NewNet(i, nd.Weight, len(nd.Members)); err != nil {
			return nil, err
		}
		for _, vIdx := range nd.Members {
			if err := s.AddVertexToNet(i, vIdx); err != nil {
				return nil, err
			}
		}
	}

	for i, vd := range doc.Vertices {
		if err := s.AddVertexToChip(i, vd.X, vd.Y, true); err != nil {
			return nil, err
		}
	}

	if err := s.SetMovableCount(doc.MovableCount); err != nil {
		return nil, err
	}

	return s, nil
}

func countMemberships(nets []netDoc, vIdx int) int {
	n := 0
	for _, nd := range nets {
		for _, m := range nd.Members {
			if m == vIdx {
				n++
				break
			}
		}
	}
	return n
}
