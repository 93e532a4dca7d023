package pattern

import (
	"math/rand"

	"github.com/pkg/errors"

	"github.com/lifesim/go-conway/model"
)

// Random builds a bounded-topology grid where each cell is independently
// live with probability density. Reproducibility is the caller's concern:
// pass a seeded rng, or nil for the shared math/rand source.
func Random(rows, cols int, density float64, rng *rand.Rand) (*model.Grid, error) {
	return RandomWithTopology(rows, cols, density, rng, model.Bounded)
}

// RandomWithTopology is Random with an explicit border topology.
func RandomWithTopology(rows, cols int, density float64, rng *rand.Rand, topology model.Topology) (*model.Grid, error) {
	if density < 0 || density > 1 {
		return nil, errors.Errorf("[Random] density %v outside [0, 1]", density)
	}

	g, err := model.NewGridWithTopology(rows, cols, topology)
	if err != nil {
		return nil, err
	}
	g.Randomize(density, rng)
	return g, nil
}
