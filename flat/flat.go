package flat

import (
	"errors"
	"fmt"
	"math"
	"slices"

	"github.com/RoaringBitmap/roaring/v2"

	"github.com/MehmetK01/KNN-and-BiasVariance/distance"
	"github.com/MehmetK01/KNN-and-BiasVariance/model"
)

var (
	// ErrEmptyReferenceSet is returned when there are no points to search.
	ErrEmptyReferenceSet = errors.New("empty reference set")

	// ErrInvalidK is returned when k is outside [1, n].
	ErrInvalidK = errors.New("k out of range")

	// ErrLabelMismatch is returned when labels and reference points differ in count.
	ErrLabelMismatch = errors.New("label count does not match reference set size")

	// ErrInvalidDistance is returned when a distancer yields a negative or NaN value.
	ErrInvalidDistance = errors.New("invalid distance")
)

// ValidateK checks 1 <= k <= n.
func ValidateK(k, n int) error {
	if k < 1 || k > n {
		return fmt.Errorf("%w: k=%d, n=%d", ErrInvalidK, k, n)
	}
	return nil
}

// Distances returns the distance from query to every point of ref, index-aligned
// with ref.
func Distances(query model.Point, ref model.ReferenceSet, d distance.Distancer) ([]float64, error) {
	if ref.Len() == 0 {
		return nil, ErrEmptyReferenceSet
	}
	if len(query) != ref.Dimension() {
		return nil, &distance.ErrDimensionMismatch{Expected: ref.Dimension(), Actual: len(query)}
	}

	out := make([]float64, ref.Len())
	for i := range out {
		dist, err := d.Distance(query, ref.At(i))
		if err != nil {
			return nil, fmt.Errorf("reference point %d: %w", i, err)
		}
		if math.IsNaN(dist) || dist < 0 {
			return nil, fmt.Errorf("%w: %v at reference point %d", ErrInvalidDistance, dist, i)
		}
		out[i] = dist
	}

	return out, nil
}

// Select returns, in ascending index order, every index whose distance is at
// most the k-th smallest distance. The result has at least k entries and has
// exactly k when the k-th and (k+1)-th smallest distances differ.
func Select(distances []float64, k int) ([]int, error) {
	if len(distances) == 0 {
		return nil, ErrEmptyReferenceSet
	}
	if err := ValidateK(k, len(distances)); err != nil {
		return nil, err
	}

	threshold := kthSmallest(distances, k)

	out := make([]int, 0, k)
	for i, d := range distances {
		if d <= threshold {
			out = append(out, i)
		}
	}

	return out, nil
}

// kthSmallest sorts a copy of distances and returns the value at rank k (1-based).
func kthSmallest(distances []float64, k int) float64 {
	sorted := slices.Clone(distances)
	slices.Sort(sorted)
	return sorted[k-1]
}

// Options contains configuration options for the flat searcher.
type Options struct {
	// Distancer measures dissimilarity between the query and reference points.
	Distancer distance.Distancer
}

// DefaultOptions contains the default configuration options for the flat searcher.
var DefaultOptions = Options{
	Distancer: distance.MetricEuclidean,
}

// Flat pairs a reference set with its labels and answers exact neighbor queries.
// It is read-only after construction and safe for concurrent use.
type Flat[L model.Label] struct {
	ref    model.ReferenceSet
	labels []L
	opts   Options
}

// New creates a flat searcher over ref. labels must have one entry per point.
func New[L model.Label](ref model.ReferenceSet, labels []L, optFns ...func(o *Options)) (*Flat[L], error) {
	opts := DefaultOptions

	for _, fn := range optFns {
		fn(&opts)
	}

	if opts.Distancer == nil {
		opts.Distancer = DefaultOptions.Distancer
	}

	if len(labels) != ref.Len() {
		return nil, fmt.Errorf("%w: %d labels, %d points", ErrLabelMismatch, len(labels), ref.Len())
	}

	return &Flat[L]{
		ref:    ref,
		labels: slices.Clone(labels),
		opts:   opts,
	}, nil
}

func (*Flat[L]) Name() string { return "Flat" }

// Len returns the number of reference points.
func (f *Flat[L]) Len() int { return f.ref.Len() }

// Dimension returns the dimension of the reference points.
func (f *Flat[L]) Dimension() int { return f.ref.Dimension() }

// Distancer returns the configured distance measure.
func (f *Flat[L]) Distancer() distance.Distancer { return f.opts.Distancer }

// Validate checks a query and k against the reference set without computing
// any distance.
func (f *Flat[L]) Validate(query model.Point, k int) error {
	if f.ref.Len() == 0 {
		return ErrEmptyReferenceSet
	}
	if err := ValidateK(k, f.ref.Len()); err != nil {
		return err
	}
	if len(query) != f.ref.Dimension() {
		return &distance.ErrDimensionMismatch{Expected: f.ref.Dimension(), Actual: len(query)}
	}
	return nil
}

// Search returns the tie-inclusive k nearest neighbors of query in ascending
// index order.
func (f *Flat[L]) Search(query model.Point, k int) ([]model.Neighbor[L], error) {
	if err := f.Validate(query, k); err != nil {
		return nil, err
	}

	dists, err := Distances(query, f.ref, f.opts.Distancer)
	if err != nil {
		return nil, err
	}

	idx, err := Select(dists, k)
	if err != nil {
		return nil, err
	}

	out := make([]model.Neighbor[L], len(idx))
	for i, j := range idx {
		out[i] = model.Neighbor[L]{
			Index:    j,
			Distance: dists[j],
			Label:    f.labels[j],
		}
	}

	return out, nil
}

// SearchSet is like Search but returns only the selected indices as a bitmap.
func (f *Flat[L]) SearchSet(query model.Point, k int) (*roaring.Bitmap, error) {
	neighbors, err := f.Search(query, k)
	if err != nil {
		return nil, err
	}
	return IndexSet(neighbors), nil
}

// IndexSet collects neighbor indices into a bitmap.
func IndexSet[L model.Label](neighbors []model.Neighbor[L]) *roaring.Bitmap {
	rb := roaring.New()
	for _, n := range neighbors {
		rb.Add(uint32(n.Index))
	}
	return rb
}
