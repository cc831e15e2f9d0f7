// Package factorize turns a symmetric non-negative matrix factorization into
// hard cluster labels.
//
// The numeric work is delegated to a Primitives implementation (see package
// symnmf for the default one). The Orchestrator builds the normalized
// similarity matrix W, draws the initial factor H from a uniform distribution on
// [0, 2·sqrt(mean(W)/k)) using the injected random source, refines it with the
// factorize primitive and labels every point with the column of its largest
// affinity:
//
//	o := factorize.New(symnmf.New(), rand.New(rand.NewSource(1234)))
//	labels, err := o.Labels(ctx, x, 3)
//
// An Orchestrator owns its random source and must not be shared between
// goroutines.
package factorize
