package model

import (
	"fmt"
	"slices"

	"github.com/MehmetK01/KNN-and-BiasVariance/distance"
)

// Point is one observation's feature vector.
type Point = []float64

// Label is the constraint for values paired with reference points.
// Floats serve as regression targets, integers as class labels.
type Label interface {
	~int | ~int8 | ~int16 | ~int32 | ~int64 |
		~uint | ~uint8 | ~uint16 | ~uint32 | ~uint64 |
		~float32 | ~float64
}

// ReferenceSet is an ordered sequence of points sharing one dimension.
// The zero value is an empty set.
type ReferenceSet struct {
	points []Point
	dim    int
}

// NewReferenceSet validates that all points share the dimension of the first
// one and returns the set. An empty input yields an empty set.
func NewReferenceSet(points []Point) (ReferenceSet, error) {
	if len(points) == 0 {
		return ReferenceSet{}, nil
	}

	dim := len(points[0])
	for i, p := range points {
		if len(p) != dim {
			return ReferenceSet{}, fmt.Errorf("reference point %d: %w", i, &distance.ErrDimensionMismatch{Expected: dim, Actual: len(p)})
		}
	}

	return ReferenceSet{
		points: slices.Clone(points),
		dim:    dim,
	}, nil
}

// Len returns the number of points n.
func (rs ReferenceSet) Len() int { return len(rs.points) }

// Dimension returns the shared dimension p (0 for an empty set).
func (rs ReferenceSet) Dimension() int { return rs.dim }

// At returns the i-th point. The returned slice must not be modified.
func (rs ReferenceSet) At(i int) Point { return rs.points[i] }

// Neighbor is a reference point selected as near to a query.
type Neighbor[L Label] struct {
	// Index is the position of the point in the reference set.
	Index int
	// Distance from the query to the point.
	Distance float64
	// Label paired with the point.
	Label L
}

// String returns a string representation of the Neighbor.
func (n Neighbor[L]) String() string {
	return fmt.Sprintf("Neighbor(%d, d=%g, y=%v)", n.Index, n.Distance, n.Label)
}

// Labels extracts the labels of neighbors in order.
func Labels[L Label](neighbors []Neighbor[L]) []L {
	out := make([]L, len(neighbors))
	for i, n := range neighbors {
		out[i] = n.Label
	}
	return out
}
