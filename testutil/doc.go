// Package testutil provides testing utilities for clusteval.
//
// This package is intended for use in tests and benchmarks only.
// It provides deterministic generators for point clouds with a known
// cluster structure and a helper to render them in the dataset text format.
//
// # Random Point Generation
//
//	rng := testutil.NewRNG(seed)
//	points := rng.UniformPoints(100, 4)              // uniform [0, 1)
//	points, truth := rng.Blobs(300, 2, 3, 0.25)      // gaussian blobs + true labels
//
// # Dataset Text
//
//	text := testutil.FormatPoints(points)
package testutil
