package distance

import (
	"errors"
	"fmt"
	"math"
	"strings"
)

// ErrUnsupportedMetric is returned when a metric has no distance function.
var ErrUnsupportedMetric = errors.New("unsupported metric")

// ErrDimensionMismatch is a named error type for dimension mismatch.
type ErrDimensionMismatch struct {
	Expected int // Expected dimensions
	Actual   int // Actual dimensions
}

// Error returns the error message for dimension mismatch.
func (e *ErrDimensionMismatch) Error() string {
	return fmt.Sprintf("dimension mismatch: expected %d, got %d", e.Expected, e.Actual)
}

// Distancer computes a non-negative dissimilarity between two points of equal dimension.
type Distancer interface {
	Distance(a, b []float64) (float64, error)
}

// Func is a function type for distance calculation.
type Func func(a, b []float64) (float64, error)

// Distance implements Distancer.
func (f Func) Distance(a, b []float64) (float64, error) {
	return f(a, b)
}

// Euclidean calculates the Euclidean (L2) distance between two points.
func Euclidean(a, b []float64) (float64, error) {
	if len(a) != len(b) {
		return 0, &ErrDimensionMismatch{Expected: len(a), Actual: len(b)}
	}

	var sum float64
	for i := range a {
		d := a[i] - b[i]
		sum += d * d
	}

	return math.Sqrt(sum), nil
}

// Manhattan calculates the Manhattan (L1) distance between two points.
func Manhattan(a, b []float64) (float64, error) {
	if len(a) != len(b) {
		return 0, &ErrDimensionMismatch{Expected: len(a), Actual: len(b)}
	}

	var sum float64
	for i := range a {
		sum += math.Abs(a[i] - b[i])
	}

	return sum, nil
}

// Metric represents the distance metric used for point comparison.
type Metric int

const (
	MetricEuclidean Metric = iota
	MetricManhattan
)

func (m Metric) String() string {
	switch m {
	case MetricEuclidean:
		return "Euclidean"
	case MetricManhattan:
		return "Manhattan"
	default:
		return fmt.Sprintf("Unknown(%d)", m)
	}
}

// Distance implements Distancer.
func (m Metric) Distance(a, b []float64) (float64, error) {
	fn, err := Provider(m)
	if err != nil {
		return 0, err
	}
	return fn(a, b)
}

// Provider returns the distance function for the given metric.
func Provider(m Metric) (Func, error) {
	switch m {
	case MetricEuclidean:
		return Euclidean, nil
	case MetricManhattan:
		return Manhattan, nil
	default:
		return nil, fmt.Errorf("%w: %v", ErrUnsupportedMetric, m)
	}
}

// ParseMetric parses a metric name as used in flags and config files.
// Accepted values (case-insensitive): euclidean, l2, manhattan, l1.
func ParseMetric(s string) (Metric, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "euclidean", "l2":
		return MetricEuclidean, nil
	case "manhattan", "l1", "cityblock":
		return MetricManhattan, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnsupportedMetric, s)
	}
}
