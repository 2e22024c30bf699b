package simulation

import (
	"math/rand/v2"

	"github.com/MehmetK01/KNN-and-BiasVariance/model"
)

// Generator is a known data-generating process y = f(x) + noise.
// Implementations must draw all randomness from the supplied *rand.Rand.
type Generator interface {
	// Dimension returns the number of features p.
	Dimension() int
	// Sample draws n training pairs.
	Sample(r *rand.Rand, n int) ([]model.Point, []float64)
	// Observe draws a noisy response at x.
	Observe(r *rand.Rand, x model.Point) float64
	// Truth returns the noise-free response f(x).
	Truth(x model.Point) float64
	// NoiseVariance returns the variance of the additive noise.
	NoiseVariance() float64
}

// Additive draws features independently from Uniform(Low, High) and responses
// as F(x) plus Gaussian noise with standard deviation Sigma.
type Additive struct {
	Dim   int
	Low   float64
	High  float64
	Sigma float64
	F     func(x []float64) float64
}

var _ Generator = (*Additive)(nil)

// Dimension implements Generator.
func (a *Additive) Dimension() int { return a.Dim }

// Truth implements Generator.
func (a *Additive) Truth(x model.Point) float64 { return a.F(x) }

// NoiseVariance implements Generator.
func (a *Additive) NoiseVariance() float64 { return a.Sigma * a.Sigma }

// Observe implements Generator.
func (a *Additive) Observe(r *rand.Rand, x model.Point) float64 {
	return a.F(x) + a.Sigma*r.NormFloat64()
}

// Sample implements Generator.
func (a *Additive) Sample(r *rand.Rand, n int) ([]model.Point, []float64) {
	span := a.High - a.Low
	data := make([]float64, n*a.Dim)
	X := make([]model.Point, n)
	y := make([]float64, n)

	for i := range n {
		x := data[i*a.Dim : (i+1)*a.Dim : (i+1)*a.Dim]
		for j := range x {
			x[j] = a.Low + r.Float64()*span
		}
		X[i] = x
		y[i] = a.Observe(r, x)
	}

	return X, y
}
