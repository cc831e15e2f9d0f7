// Package evaluate scores cluster assignments.
//
// A Scorer maps points and labels to a single quality number. The default
// scorer is Silhouette, the mean silhouette coefficient over Euclidean
// distance. Degenerate assignments (a single cluster, one cluster per point,
// or a dataset whose points all coincide) have no defined score: the scorer
// returns ErrUndefined and Evaluate turns that into an undefined Score, which
// renders as "N/A".
package evaluate
