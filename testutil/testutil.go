package testutil

import (
	"math"
	"math/rand/v2"
	"sort"
	"sync"
)

// RNG struct encapsulates the random number generator and seed.
// It is thread-safe.
type RNG struct {
	rand *rand.Rand
	seed uint64
	mu   sync.Mutex
}

// NewRNG creates a new RNG instance with the specified seed.
func NewRNG(seed uint64) *RNG {
	return &RNG{
		rand: rand.New(rand.NewPCG(seed, 0)),
		seed: seed,
	}
}

// Reset resets the RNG to its initial seed.
func (r *RNG) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rand = rand.New(rand.NewPCG(r.seed, 0))
}

// Seed returns the initial seed.
func (r *RNG) Seed() uint64 {
	return r.seed
}

// IntN returns a non-negative pseudo-random number in [0,n).
func (r *RNG) IntN(n int) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rand.IntN(n)
}

// UniformPoints generates num points of the given dimension with coordinates
// in [minVal, maxVal). Uses a single backing array for efficiency.
func (r *RNG) UniformPoints(num, dimensions int, minVal, maxVal float64) [][]float64 {
	r.mu.Lock()
	defer r.mu.Unlock()

	data := make([]float64, num*dimensions)
	points := make([][]float64, num)
	span := maxVal - minVal

	for i := range num {
		p := data[i*dimensions : (i+1)*dimensions : (i+1)*dimensions]
		for j := range p {
			p[j] = minVal + r.rand.Float64()*span
		}
		points[i] = p
	}

	return points
}

// GridPoints generates num points whose coordinates are small integers in
// [0, levels). Useful for provoking distance ties.
func (r *RNG) GridPoints(num, dimensions, levels int) [][]float64 {
	r.mu.Lock()
	defer r.mu.Unlock()

	points := make([][]float64, num)
	for i := range points {
		p := make([]float64, dimensions)
		for j := range p {
			p[j] = float64(r.rand.IntN(levels))
		}
		points[i] = p
	}

	return points
}

// GaussianLabels generates num values from a standard normal distribution.
func (r *RNG) GaussianLabels(num int) []float64 {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]float64, num)
	for i := range out {
		out[i] = r.rand.NormFloat64()
	}

	return out
}

// ClassLabels generates num labels uniformly from [0, classes).
func (r *RNG) ClassLabels(num, classes int) []int {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]int, num)
	for i := range out {
		out[i] = r.rand.IntN(classes)
	}

	return out
}

// EuclideanDistance is a plain Euclidean distance without validation.
func EuclideanDistance(a, b []float64) float64 {
	var sum float64
	for i := range a {
		d := a[i] - b[i]
		sum += d * d
	}
	return math.Sqrt(sum)
}

// BruteForceKNN returns the indices of the k nearest points to query, extended
// with every point whose distance equals the k-th one. Indices are returned in
// ascending order.
//
// It orders all candidates by (distance, index) and walks the sorted list
// instead of re-scanning against a threshold.
func BruteForceKNN(query []float64, points [][]float64, k int, dist func(a, b []float64) float64) []int {
	type candidate struct {
		idx  int
		dist float64
	}

	cands := make([]candidate, len(points))
	for i, p := range points {
		cands[i] = candidate{idx: i, dist: dist(query, p)}
	}

	sort.SliceStable(cands, func(a, b int) bool { return cands[a].dist < cands[b].dist })

	n := k
	for n < len(cands) && cands[n].dist == cands[k-1].dist {
		n++
	}

	out := make([]int, n)
	for i := range n {
		out[i] = cands[i].idx
	}
	sort.Ints(out)

	return out
}

// MeanAt averages labels at the given indices.
func MeanAt(labels []float64, idx []int) float64 {
	var sum float64
	for _, i := range idx {
		sum += labels[i]
	}
	return sum / float64(len(idx))
}
