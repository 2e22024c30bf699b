package knn

import (
	"context"
	"fmt"
	"time"

	"github.com/RoaringBitmap/roaring/v2"

	"github.com/MehmetK01/KNN-and-BiasVariance/aggregate"
	"github.com/MehmetK01/KNN-and-BiasVariance/distance"
	"github.com/MehmetK01/KNN-and-BiasVariance/flat"
	"github.com/MehmetK01/KNN-and-BiasVariance/model"
)

// Mode selects how neighbor labels are reduced to a prediction.
type Mode int

const (
	// ModeRegression predicts the mean of the neighbor labels.
	ModeRegression Mode = iota
	// ModeClassification predicts the most frequent neighbor label.
	ModeClassification
)

func (m Mode) String() string {
	switch m {
	case ModeRegression:
		return "regression"
	case ModeClassification:
		return "classification"
	default:
		return fmt.Sprintf("Unknown(%d)", m)
	}
}

func (m Mode) validate() error {
	switch m {
	case ModeRegression, ModeClassification:
		return nil
	default:
		return fmt.Errorf("%w: %v", ErrInvalidMode, m)
	}
}

// Result is the outcome of a neighbor query.
type Result[L model.Label] struct {
	// Mode used to aggregate the neighbors.
	Mode Mode
	// K is the requested neighbor count.
	K int
	// Value is the predicted value: the neighbor mean for regression,
	// the winning label for classification.
	Value float64
	// Label is the winning label. It is the zero value in regression mode.
	Label L
	// Neighbors holds every selected neighbor in ascending index order.
	// It has more than K entries when points tie at the boundary distance.
	Neighbors []model.Neighbor[L]
	// Votes is the label tally, set in classification mode only.
	Votes []aggregate.Vote[L]
}

// Tied reports whether boundary ties expanded the neighbor set beyond K.
func (r *Result[L]) Tied() bool {
	return len(r.Neighbors) > r.K
}

// Indices returns the selected neighbor indices.
func (r *Result[L]) Indices() *roaring.Bitmap {
	return flat.IndexSet(r.Neighbors)
}

// Distances maps each selected neighbor index to its distance from the query.
func (r *Result[L]) Distances() map[int]float64 {
	out := make(map[int]float64, len(r.Neighbors))
	for _, n := range r.Neighbors {
		out[n.Index] = n.Distance
	}
	return out
}

// Labels maps each selected neighbor index to its label.
func (r *Result[L]) Labels() map[int]L {
	out := make(map[int]L, len(r.Neighbors))
	for _, n := range r.Neighbors {
		out[n.Index] = n.Label
	}
	return out
}

// Query predicts a value for point from the k nearest points of referenceX,
// paired index-for-index with referenceY.
//
// All inputs are validated before any distance is computed. Neighbor
// selection is tie-inclusive, so the prediction may use more than k labels.
// A nil metric selects Euclidean distance.
//
// Example:
//
//	res, err := knn.Query(x0, X, y, 21, distance.MetricEuclidean, knn.ModeRegression)
//	if err != nil { ... }
//	fmt.Println(res.Value, res.Indices().GetCardinality())
func Query[L model.Label](
	point model.Point,
	referenceX []model.Point,
	referenceY []L,
	k int,
	metric distance.Distancer,
	mode Mode,
	optFns ...Option,
) (*Result[L], error) {
	o := applyOptions(optFns)
	ctx := context.Background()

	f, err := newFlat(referenceX, referenceY, metric, mode)
	if err != nil {
		o.metricsCollector.RecordQuery(mode, k, 0, 0, err)
		o.logger.LogQuery(ctx, mode, k, 0, err)
		return nil, err
	}

	return predict(ctx, f, point, k, mode, o)
}

func newFlat[L model.Label](X []model.Point, y []L, metric distance.Distancer, mode Mode) (*flat.Flat[L], error) {
	if err := mode.validate(); err != nil {
		return nil, err
	}

	ref, err := model.NewReferenceSet(X)
	if err != nil {
		return nil, err
	}

	return flat.New(ref, y, func(o *flat.Options) {
		o.Distancer = metric
	})
}

func predict[L model.Label](ctx context.Context, f *flat.Flat[L], point model.Point, k int, mode Mode, o options) (*Result[L], error) {
	start := time.Now()

	res, err := search(f, point, k, mode)

	neighbors := 0
	if res != nil {
		neighbors = len(res.Neighbors)
	}
	o.metricsCollector.RecordQuery(mode, k, neighbors, time.Since(start), err)
	o.logger.LogQuery(ctx, mode, k, neighbors, err)

	return res, err
}

func search[L model.Label](f *flat.Flat[L], point model.Point, k int, mode Mode) (*Result[L], error) {
	neighbors, err := f.Search(point, k)
	if err != nil {
		return nil, err
	}

	res := &Result[L]{
		Mode:      mode,
		K:         k,
		Neighbors: neighbors,
	}

	labels := model.Labels(neighbors)

	switch mode {
	case ModeRegression:
		res.Value, err = aggregate.Mean(labels)
	case ModeClassification:
		res.Label, res.Votes, err = aggregate.MajorityVote(labels)
		res.Value = float64(res.Label)
	default:
		err = mode.validate()
	}
	if err != nil {
		return nil, err
	}

	return res, nil
}
