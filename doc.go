// Package clusteval compares K-means and SymNMF clustering on one dataset.
//
// An Evaluator runs both methods with the same cluster count and scores each
// assignment with the mean silhouette coefficient:
//
//	data, _ := dataset.Load(ctx, blobstore.NewLocalStore(""), "points.txt")
//	report, _ := clusteval.New(clusteval.WithSeed(1234)).Run(ctx, data, 3)
//	_ = report.WriteText(os.Stdout)
//
// which prints
//
//	nmf: 0.6123
//	kmeans: 0.5987
//
// A score is "N/A" when the silhouette is undefined for the assignment, for
// example when every point lands in one cluster.
//
// # Factorization
//
// The SymNMF factorization uses symnmf.Kernel unless WithPrimitives supplies
// another implementation of factorize.Primitives. The initial factor matrix
// is drawn from a generator seeded by WithSeed, so runs are reproducible.
//
// # Errors
//
// Errors returned by the Evaluator match one of the package error kinds with
// errors.Is: ErrInvalidClusterCount, ErrInvalidIterationBound,
// ErrFactorizationInput, ErrFactorization, ErrMalformedInput or
// ErrInvalidArguments. Dimension problems surface as *ErrDimensionMismatch.
package clusteval
