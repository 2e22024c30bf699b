// Package simulation estimates the bias and variance of a KNN regressor at a
// fixed query point by Monte-Carlo repetition over freshly drawn training sets.
package simulation

import (
	"context"
	"errors"
	"fmt"
	"math"
	"math/rand/v2"
	"runtime"
	"sync/atomic"
	"time"

	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"

	knn "github.com/MehmetK01/KNN-and-BiasVariance"
	"github.com/MehmetK01/KNN-and-BiasVariance/distance"
	"github.com/MehmetK01/KNN-and-BiasVariance/model"
)

// ErrInvalidConfig is returned for non-positive replicate or sample counts.
var ErrInvalidConfig = errors.New("invalid simulation config")

// Config controls a simulation run.
type Config struct {
	// Replicates is the number of independent training sets drawn.
	Replicates int
	// TrainSize is the number of points per training set.
	TrainSize int
	// K is the neighbor count passed to the regressor.
	K int
	// Metric measures distances; nil selects Euclidean.
	Metric distance.Distancer
	// Seed makes runs reproducible. Replicate r uses PCG(Seed, r).
	Seed uint64
	// Concurrency bounds parallel replicates; <= 0 selects GOMAXPROCS.
	Concurrency int
	// ProgressInterval is the minimum time between progress logs.
	ProgressInterval time.Duration
	// Logger receives progress and summary logs; nil disables logging.
	Logger *knn.Logger
}

// DefaultConfig contains the default simulation settings.
var DefaultConfig = Config{
	Replicates:       1000,
	TrainSize:        100,
	K:                10,
	Metric:           distance.MetricEuclidean,
	Seed:             1,
	ProgressInterval: time.Second,
}

// Estimate summarizes the predictions at one query point.
type Estimate struct {
	K int
	// Truth is f(x0).
	Truth float64
	// Mean is the average prediction over replicates.
	Mean float64
	// Bias is Mean - Truth.
	Bias float64
	// Variance is the population variance of the predictions.
	Variance float64
	// NoiseVariance is the irreducible error of the generator.
	NoiseVariance float64
	// MSE is Bias^2 + Variance + NoiseVariance.
	MSE float64
	// EmpiricalMSE averages (y0 - prediction)^2 over a fresh noisy y0 per replicate.
	EmpiricalMSE float64
	// Predictions holds one prediction per replicate, in replicate order.
	Predictions []float64
	// Elapsed is the wall-clock duration of the run.
	Elapsed time.Duration
}

func (c Config) validate(gen Generator, x0 model.Point) error {
	if c.Replicates < 1 || c.TrainSize < 1 {
		return fmt.Errorf("%w: replicates=%d, train size=%d", ErrInvalidConfig, c.Replicates, c.TrainSize)
	}
	if c.K < 1 || c.K > c.TrainSize {
		return fmt.Errorf("%w: k=%d, n=%d", knn.ErrInvalidK, c.K, c.TrainSize)
	}
	if len(x0) != gen.Dimension() {
		return &knn.ErrDimensionMismatch{Expected: gen.Dimension(), Actual: len(x0)}
	}
	return nil
}

// Run draws cfg.Replicates training sets from gen, predicts x0 with a KNN
// regressor for each, and reports bias and variance of those predictions.
// Results do not depend on cfg.Concurrency.
func Run(ctx context.Context, gen Generator, x0 model.Point, cfg Config) (*Estimate, error) {
	if err := cfg.validate(gen, x0); err != nil {
		return nil, err
	}

	logger := cfg.Logger
	if logger == nil {
		logger = knn.NoopLogger()
	}
	logger = logger.WithK(cfg.K)

	workers := cfg.Concurrency
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}

	interval := cfg.ProgressInterval
	if interval <= 0 {
		interval = DefaultConfig.ProgressInterval
	}
	progress := rate.Sometimes{Interval: interval}

	start := time.Now()
	preds := make([]float64, cfg.Replicates)
	sqErr := make([]float64, cfg.Replicates)

	var done atomic.Int64

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	for r := range cfg.Replicates {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}

			rng := rand.New(rand.NewPCG(cfg.Seed, uint64(r)))
			X, y := gen.Sample(rng, cfg.TrainSize)
			y0 := gen.Observe(rng, x0)

			res, err := knn.Query(x0, X, y, cfg.K, cfg.Metric, knn.ModeRegression)
			if err != nil {
				return fmt.Errorf("replicate %d: %w", r, err)
			}

			preds[r] = res.Value
			sqErr[r] = (y0 - res.Value) * (y0 - res.Value)

			n := done.Add(1)
			progress.Do(func() {
				logger.InfoContext(gctx, "simulation progress",
					"done", n,
					"total", cfg.Replicates,
				)
			})

			return nil
		})
	}

	if err := g.Wait(); err != nil {
		logger.ErrorContext(ctx, "simulation failed", "error", err)
		return nil, err
	}

	est := &Estimate{
		K:             cfg.K,
		Truth:         gen.Truth(x0),
		Mean:          mean(preds),
		Variance:      variance(preds),
		NoiseVariance: gen.NoiseVariance(),
		EmpiricalMSE:  mean(sqErr),
		Predictions:   preds,
		Elapsed:       time.Since(start),
	}
	est.Bias = est.Mean - est.Truth
	est.MSE = est.Bias*est.Bias + est.Variance + est.NoiseVariance

	logger.InfoContext(ctx, "simulation completed",
		"replicates", cfg.Replicates,
		"bias", est.Bias,
		"variance", est.Variance,
		"mse", est.MSE,
		"elapsed", est.Elapsed,
	)

	return est, nil
}

// Sweep runs the simulation once per k in ks with otherwise identical settings,
// so every k sees the same training sets.
func Sweep(ctx context.Context, gen Generator, x0 model.Point, cfg Config, ks []int) ([]*Estimate, error) {
	out := make([]*Estimate, 0, len(ks))
	for _, k := range ks {
		c := cfg
		c.K = k
		est, err := Run(ctx, gen, x0, c)
		if err != nil {
			return nil, fmt.Errorf("k=%d: %w", k, err)
		}
		out = append(out, est)
	}
	return out, nil
}

func mean(xs []float64) float64 {
	var sum float64
	for _, x := range xs {
		sum += x
	}
	return sum / float64(len(xs))
}

func variance(xs []float64) float64 {
	m := mean(xs)
	var ss float64
	for _, x := range xs {
		ss += (x - m) * (x - m)
	}
	return ss / float64(len(xs))
}

// StdDev returns the square root of the estimate's variance.
func (e *Estimate) StdDev() float64 {
	return math.Sqrt(e.Variance)
}
