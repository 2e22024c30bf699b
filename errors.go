package knn

import (
	"errors"

	"github.com/MehmetK01/KNN-and-BiasVariance/aggregate"
	"github.com/MehmetK01/KNN-and-BiasVariance/distance"
	"github.com/MehmetK01/KNN-and-BiasVariance/flat"
)

var (
	// ErrInvalidK is returned when k is outside [1, n].
	ErrInvalidK = flat.ErrInvalidK

	// ErrEmptyReferenceSet is returned when the reference set has no points.
	ErrEmptyReferenceSet = flat.ErrEmptyReferenceSet

	// ErrEmptyNeighborSet is returned when aggregation receives no neighbors.
	ErrEmptyNeighborSet = aggregate.ErrEmptyNeighborSet

	// ErrLabelMismatch is returned when labels and reference points differ in count.
	ErrLabelMismatch = flat.ErrLabelMismatch

	// ErrInvalidMode is returned for a Mode outside the known set.
	ErrInvalidMode = errors.New("invalid mode")

	// ErrNotFitted is returned by Model.Predict before Fit succeeded.
	ErrNotFitted = errors.New("model is not fitted")

	// ErrLengthMismatch is returned when predictions and ground truth differ in length.
	ErrLengthMismatch = errors.New("length mismatch")
)

// ErrDimensionMismatch indicates a point/query dimensionality mismatch.
// Use errors.As to inspect Expected and Actual.
type ErrDimensionMismatch = distance.ErrDimensionMismatch
