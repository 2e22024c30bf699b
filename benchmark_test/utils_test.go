package benchmark_test

import (
	"fmt"

	"github.com/MehmetK01/KNN-and-BiasVariance/model"
	"github.com/MehmetK01/KNN-and-BiasVariance/testutil"
)

const benchSeed = 42

func formatDim(dim int) string {
	return fmt.Sprintf("dim=%d", dim)
}

func formatCount(n int) string {
	return fmt.Sprintf("n=%d", n)
}

// fixture returns a deterministic regression reference set and a query batch.
func fixture(n, dim, queries int) ([]model.Point, []float64, []model.Point) {
	rng := testutil.NewRNG(benchSeed)
	points := rng.UniformPoints(n, dim, -1, 1)
	labels := rng.GaussianLabels(n)
	qs := rng.UniformPoints(queries, dim, -1, 1)
	return points, labels, qs
}

// tieFixture places points on a coarse lattice so most queries hit ties.
func tieFixture(n, dim, queries int) ([]model.Point, []int, []model.Point) {
	rng := testutil.NewRNG(benchSeed)
	points := rng.GridPoints(n, dim, 3)
	labels := rng.ClassLabels(n, 10)
	qs := rng.GridPoints(queries, dim, 3)
	return points, labels, qs
}
