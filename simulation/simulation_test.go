package simulation

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"math"
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	knn "github.com/MehmetK01/KNN-and-BiasVariance"
	"github.com/MehmetK01/KNN-and-BiasVariance/distance"
	"github.com/MehmetK01/KNN-and-BiasVariance/model"
)

func constant(c float64) func([]float64) float64 {
	return func([]float64) float64 { return c }
}

func smooth(x []float64) float64 {
	return x[0] + x[1]*x[1] - math.Sin(2*x[2])
}

func TestAdditive(t *testing.T) {
	gen := &Additive{Dim: 3, Low: -1, High: 1, Sigma: 0.5, F: smooth}
	rng := rand.New(rand.NewPCG(1, 2))

	X, y := gen.Sample(rng, 50)
	require.Len(t, X, 50)
	require.Len(t, y, 50)
	for _, x := range X {
		require.Len(t, x, 3)
		for _, v := range x {
			assert.GreaterOrEqual(t, v, -1.0)
			assert.Less(t, v, 1.0)
		}
	}
	assert.Equal(t, 0.25, gen.NoiseVariance())
	assert.Equal(t, smooth([]float64{0.1, 0.2, 0.3}), gen.Truth(model.Point{0.1, 0.2, 0.3}))

	noiseless := &Additive{Dim: 1, Low: 0, High: 1, Sigma: 0, F: constant(4)}
	assert.Equal(t, 4.0, noiseless.Observe(rng, model.Point{0.5}))
}

func TestRunDeterministicAcrossConcurrency(t *testing.T) {
	gen := &Additive{Dim: 3, Low: -1, High: 1, Sigma: 0.5, F: smooth}
	x0 := model.Point{0.1, -0.2, 0.3}

	cfg := DefaultConfig
	cfg.Replicates = 64
	cfg.TrainSize = 60
	cfg.K = 21
	cfg.Seed = 42

	cfg.Concurrency = 1
	serial, err := Run(context.Background(), gen, x0, cfg)
	require.NoError(t, err)

	cfg.Concurrency = 8
	parallel, err := Run(context.Background(), gen, x0, cfg)
	require.NoError(t, err)

	assert.Equal(t, serial.Predictions, parallel.Predictions)
	assert.Equal(t, serial.Bias, parallel.Bias)
	assert.Equal(t, serial.Variance, parallel.Variance)
	assert.Len(t, serial.Predictions, 64)

	cfg.Seed = 43
	other, err := Run(context.Background(), gen, x0, cfg)
	require.NoError(t, err)
	assert.NotEqual(t, serial.Predictions, other.Predictions)
}

func TestRunReplicateMatchesQuery(t *testing.T) {
	gen := &Additive{Dim: 3, Low: -1, High: 1, Sigma: 0.5, F: smooth}
	x0 := model.Point{0, 0, 0}

	cfg := DefaultConfig
	cfg.Replicates = 3
	cfg.TrainSize = 40
	cfg.K = 5
	cfg.Seed = 9

	est, err := Run(context.Background(), gen, x0, cfg)
	require.NoError(t, err)

	// Replicate 1 is reproducible from its own PCG stream.
	rng := rand.New(rand.NewPCG(9, 1))
	X, y := gen.Sample(rng, 40)
	res, err := knn.Query(x0, X, y, 5, distance.MetricEuclidean, knn.ModeRegression)
	require.NoError(t, err)
	assert.InDelta(t, res.Value, est.Predictions[1], 1e-12)
}

func TestRunVarianceShrinksWithK(t *testing.T) {
	// With a constant truth the prediction is an average of noise terms, so the
	// bias is ~0 and the variance is ~sigma^2 / k.
	gen := &Additive{Dim: 2, Low: 0, High: 1, Sigma: 1, F: constant(3)}
	x0 := model.Point{0.5, 0.5}

	cfg := DefaultConfig
	cfg.Replicates = 2000
	cfg.TrainSize = 20
	cfg.Seed = 7

	ests, err := Sweep(context.Background(), gen, x0, cfg, []int{1, 5, 20})
	require.NoError(t, err)
	require.Len(t, ests, 3)

	assert.Equal(t, 1, ests[0].K)
	assert.InDelta(t, 1.0, ests[0].Variance, 0.15)
	assert.InDelta(t, 0.2, ests[1].Variance, 0.04)
	assert.InDelta(t, 0.05, ests[2].Variance, 0.01)

	for _, e := range ests {
		assert.Equal(t, 3.0, e.Truth)
		assert.InDelta(t, 0, e.Bias, 0.1)
		assert.InDelta(t, e.Bias*e.Bias+e.Variance+1, e.MSE, 1e-12)
		assert.InDelta(t, e.MSE, e.EmpiricalMSE, 0.25)
		assert.InDelta(t, math.Sqrt(e.Variance), e.StdDev(), 1e-12)
	}

	assert.Greater(t, ests[0].Variance, ests[1].Variance)
	assert.Greater(t, ests[1].Variance, ests[2].Variance)
}

func TestRunBiasGrowsWithK(t *testing.T) {
	// A steep truth with x0 at the edge of the domain: averaging more
	// neighbors pulls the prediction toward the interior.
	gen := &Additive{Dim: 1, Low: 0, High: 1, Sigma: 0.1, F: func(x []float64) float64 { return 10 * x[0] }}
	x0 := model.Point{0}

	cfg := DefaultConfig
	cfg.Replicates = 200
	cfg.TrainSize = 50
	cfg.Seed = 5

	ests, err := Sweep(context.Background(), gen, x0, cfg, []int{1, 25})
	require.NoError(t, err)
	assert.Less(t, math.Abs(ests[0].Bias), math.Abs(ests[1].Bias))
	assert.Greater(t, ests[1].Bias, 1.0)
}

func TestRunErrors(t *testing.T) {
	gen := &Additive{Dim: 2, Low: 0, High: 1, Sigma: 1, F: constant(0)}
	x0 := model.Point{0.5, 0.5}

	t.Run("InvalidK", func(t *testing.T) {
		cfg := DefaultConfig
		cfg.TrainSize = 10
		cfg.K = 11
		_, err := Run(context.Background(), gen, x0, cfg)
		assert.ErrorIs(t, err, knn.ErrInvalidK)

		cfg.K = 0
		_, err = Run(context.Background(), gen, x0, cfg)
		assert.ErrorIs(t, err, knn.ErrInvalidK)
	})

	t.Run("InvalidConfig", func(t *testing.T) {
		cfg := DefaultConfig
		cfg.Replicates = 0
		_, err := Run(context.Background(), gen, x0, cfg)
		assert.ErrorIs(t, err, ErrInvalidConfig)
	})

	t.Run("DimensionMismatch", func(t *testing.T) {
		_, err := Run(context.Background(), gen, model.Point{0.5}, DefaultConfig)
		var dm *knn.ErrDimensionMismatch
		assert.True(t, errors.As(err, &dm))
	})

	t.Run("Canceled", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		cfg := DefaultConfig
		cfg.Concurrency = 1
		_, err := Run(ctx, gen, x0, cfg)
		assert.ErrorIs(t, err, context.Canceled)
	})

	t.Run("SweepWrapsK", func(t *testing.T) {
		cfg := DefaultConfig
		cfg.TrainSize = 5
		_, err := Sweep(context.Background(), gen, x0, cfg, []int{1, 6})
		assert.ErrorIs(t, err, knn.ErrInvalidK)
		assert.Contains(t, err.Error(), "k=6")
	})
}

func TestRunLogs(t *testing.T) {
	var buf bytes.Buffer
	logger := knn.NewLogger(slog.NewTextHandler(&buf, nil))
	gen := &Additive{Dim: 1, Low: 0, High: 1, Sigma: 1, F: constant(0)}

	cfg := DefaultConfig
	cfg.Replicates = 10
	cfg.TrainSize = 10
	cfg.K = 3
	cfg.Logger = logger

	_, err := Run(context.Background(), gen, model.Point{0.5}, cfg)
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, "simulation progress")
	assert.Contains(t, out, "simulation completed")
	assert.Contains(t, out, "k=3")
}
