// Package distance provides dissimilarity measures between points.
//
// # Supported Metrics
//
//   - MetricEuclidean: sqrt(sum((a_i - b_i)^2)) (default)
//   - MetricManhattan: sum(|a_i - b_i|)
//
// Both metrics are symmetric and return zero only for componentwise equal points.
// Any type implementing Distancer can be used where a Metric is accepted, so
// custom measures plug in without changing callers.
//
// # Usage
//
//	d, err := distance.Euclidean(a, b)
//	fn, err := distance.Provider(distance.MetricManhattan)
//	m, err := distance.ParseMetric("l1")
package distance
