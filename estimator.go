package knn

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/MehmetK01/KNN-and-BiasVariance/distance"
	"github.com/MehmetK01/KNN-and-BiasVariance/flat"
	"github.com/MehmetK01/KNN-and-BiasVariance/model"
)

// Model is a fitted KNN predictor. Fit captures the reference set; Predict and
// PredictBatch run Query against it. A fitted Model is read-only and safe for
// concurrent use.
type Model[L model.Label] struct {
	k      int
	metric distance.Distancer
	mode   Mode
	opts   options

	flat *flat.Flat[L]
}

// New creates an unfitted model. A nil metric selects Euclidean distance.
func New[L model.Label](k int, metric distance.Distancer, mode Mode, optFns ...Option) *Model[L] {
	if metric == nil {
		metric = distance.MetricEuclidean
	}
	return &Model[L]{
		k:      k,
		metric: metric,
		mode:   mode,
		opts:   applyOptions(optFns),
	}
}

// K returns the configured neighbor count.
func (m *Model[L]) K() int { return m.k }

// Mode returns the configured aggregation mode.
func (m *Model[L]) Mode() Mode { return m.mode }

// Fit validates X and y and stores them as the reference set.
// It fails with ErrInvalidK if k is outside [1, len(X)].
func (m *Model[L]) Fit(X []model.Point, y []L) error {
	ctx := context.Background()

	f, err := newFlat(X, y, m.metric, m.mode)
	if err == nil && f.Len() == 0 {
		err = ErrEmptyReferenceSet
	}
	if err == nil {
		err = flat.ValidateK(m.k, f.Len())
	}
	if err != nil {
		m.opts.logger.LogFit(ctx, len(X), 0, err)
		return err
	}

	m.flat = f
	m.opts.logger.LogFit(ctx, f.Len(), f.Dimension(), nil)

	return nil
}

// Predict runs a single query against the fitted reference set.
func (m *Model[L]) Predict(query model.Point) (*Result[L], error) {
	if m.flat == nil {
		return nil, ErrNotFitted
	}
	return predict(context.Background(), m.flat, query, m.k, m.mode, m.opts)
}

// PredictBatch predicts every query concurrently and returns results in input
// order. The first failure cancels the remaining queries and is returned.
func (m *Model[L]) PredictBatch(ctx context.Context, queries []model.Point) ([]*Result[L], error) {
	if m.flat == nil {
		return nil, ErrNotFitted
	}

	start := time.Now()
	out := make([]*Result[L], len(queries))

	var failed atomic.Int64

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(m.opts.concurrency)

	for i, q := range queries {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				failed.Add(1)
				return err
			}
			res, err := predict(gctx, m.flat, q, m.k, m.mode, m.opts)
			if err != nil {
				failed.Add(1)
				return fmt.Errorf("query %d: %w", i, err)
			}
			out[i] = res
			return nil
		})
	}

	err := g.Wait()

	m.opts.metricsCollector.RecordBatch(len(queries), int(failed.Load()), time.Since(start))
	m.opts.logger.LogBatch(ctx, len(queries), int(failed.Load()))

	if err != nil {
		return nil, err
	}

	return out, nil
}

// Accuracy returns the fraction of predictions equal to truth.
func Accuracy[L model.Label](predicted, truth []L) (float64, error) {
	if len(predicted) != len(truth) {
		return 0, fmt.Errorf("%w: %d predictions, %d labels", ErrLengthMismatch, len(predicted), len(truth))
	}
	if len(truth) == 0 {
		return 0, fmt.Errorf("%w: no labels", ErrLengthMismatch)
	}

	hits := 0
	for i := range truth {
		if predicted[i] == truth[i] {
			hits++
		}
	}

	return float64(hits) / float64(len(truth)), nil
}

// PredictedLabels extracts the winning labels from classification results.
func PredictedLabels[L model.Label](results []*Result[L]) []L {
	out := make([]L, len(results))
	for i, r := range results {
		out[i] = r.Label
	}
	return out
}

// PredictedValues extracts the predicted values from results.
func PredictedValues[L model.Label](results []*Result[L]) []float64 {
	out := make([]float64, len(results))
	for i, r := range results {
		out[i] = r.Value
	}
	return out
}
