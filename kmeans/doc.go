// Package kmeans implements Lloyd's k-means clustering with a deterministic
// first-k initialization.
//
// Train seeds the centroids with the first k points of the dataset, then
// alternates nearest-centroid assignment and centroid recomputation until every
// centroid moves less than epsilon or the iteration cap is reached:
//
//	res, err := kmeans.Train(ctx, points, 3, 300, 0.001)
//	labels, err := kmeans.Assign(points, res.Centroids)
//
// Ties between equally distant centroids resolve to the lowest cluster index,
// and a cluster that receives no points keeps its previous centroid.
//
// The assignment step may be spread across goroutines with Options.Workers.
// Centroids are only recomputed once every point of the pass is assigned.
package kmeans
