// Package cholesky computes sparse Cholesky factorizations A = L·Lᵀ of
// symmetric positive-definite matrices in compressed-column form, and
// solves the associated linear systems.
//
// The factorization runs in two phases:
//
//   - Symbolic analysis: a fill-reducing ordering (greedy minimum degree by
//     default), the elimination tree of the permuted matrix, and the exact
//     per-column nonzero counts of the factor. Pattern only, no values.
//   - Numeric factorization: an up-looking pass that computes one row of L
//     at a time. The row's pattern is read off the elimination tree, a
//     sparse triangular solve against the finished columns produces its
//     values, and a non-positive pivot aborts with ErrNotPositiveDefinite.
//
// The resulting Factorization is a single-owner handle: it keeps the
// symbolic result, the factor, and a reference to the source matrix that
// guards Update. Backsub solves A·x = b through the permutation (permute,
// forward solve with L, backward solve with Lᵀ, permute back). Update
// refactorizes a matrix with the identical sparsity pattern while reusing
// the symbolic analysis, which is the cheap path for sequences of systems
// that share structure: iterative re-linearization, sliding-window
// estimation, repeated assembly over a fixed mesh. Pattern equality is
// enforced entry by entry before any numeric work.
//
// Only the upper triangle of the input is read; the caller vouches for
// symmetry unless WithSymmetryCheck is enabled.
//
// Errors are package sentinels ("cholesky: ..."), wrapped with an operation
// tag; match with errors.Is. There is no internal locking: a Factorization
// may be read concurrently, never mutated concurrently.
package cholesky
