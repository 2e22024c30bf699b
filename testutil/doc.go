// Package testutil provides testing utilities for the knn packages.
//
// This package is intended for use in tests and benchmarks only.
// It provides helpers for generating reproducible random points and an
// independent brute-force KNN used as ground truth.
//
// # Random Point Generation
//
//	rng := testutil.NewRNG(seed)
//	X := rng.UniformPoints(100, 3, -1, 1)
//	y := rng.GaussianLabels(100)
//
// # Ground Truth
//
//	idx := testutil.BruteForceKNN(query, X, k, testutil.EuclideanDistance)
//	want := testutil.MeanAt(y, idx)
package testutil
