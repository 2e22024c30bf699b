// Package knn provides brute-force K-nearest-neighbors prediction with a
// pluggable distance metric.
//
// # Quick Start
//
// One-off query:
//
//	res, err := knn.Query(x0, X, y, 21, distance.MetricEuclidean, knn.ModeRegression)
//	fmt.Println(res.Value)
//
// Fitted model:
//
//	m := knn.New[int](5, distance.MetricEuclidean, knn.ModeClassification)
//	if err := m.Fit(trainX, trainY); err != nil { ... }
//	results, err := m.PredictBatch(ctx, testX)
//
// # Neighbor Selection
//
// Distances from the query to every reference point are computed, the k-th
// smallest becomes a threshold, and every point at or below the threshold is
// selected. Ties at the boundary therefore produce more than k neighbors, and
// each of them contributes equally to the prediction.
//
// # Aggregation
//
//   - ModeRegression: arithmetic mean of the neighbor labels
//   - ModeClassification: plurality vote; ties go to the smallest label
//
// # Errors
//
// Invalid input fails before any distance is computed:
//
//   - ErrDimensionMismatch: query or reference point has the wrong dimension
//   - ErrEmptyReferenceSet: no reference points
//   - ErrInvalidK: k outside [1, n]
//   - ErrLabelMismatch: label count differs from point count
//   - ErrEmptyNeighborSet: aggregation over zero labels
//
// Queries share no state, so callers may run them in parallel freely.
package knn
