// Package distance provides the geometry shared by the clustering engines and
// the evaluation layer.
//
// # Supported Metrics
//
//   - MetricEuclidean: Euclidean (L2) distance (default)
//   - MetricL2: Squared Euclidean distance
//
// # Usage
//
//	d, err := distance.Euclidean(a, b)
//	c, err := distance.Centroid(members)
package distance
