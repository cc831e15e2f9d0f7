// Package symnmf implements Symmetric Non-negative Matrix Factorization on
// dense gonum matrices.
//
// A Kernel exposes four primitives over a data matrix X (one point per row):
//
//   - Similarity: A_ij = exp(-||x_i - x_j||² / 2) for i != j, zero diagonal
//   - DegreeDiagonal: D = diag(row sums of A)
//   - Normalize: W = D^(-1/2) A D^(-1/2)
//   - Factorize: refines an n×k matrix H so that H Hᵀ approximates W, using the
//     damped multiplicative update H ← H ∘ (1 - β + β (W H) ⊘ (H Hᵀ H))
//
// Factorize stops when the squared Frobenius norm of the update falls below
// Options.Epsilon or after Options.MaxIterations rounds.
package symnmf
