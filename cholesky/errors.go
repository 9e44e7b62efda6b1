// Package cholesky: sentinel error set. Public entry points return these
// sentinels wrapped with an operation tag; tests and callers match them
// via errors.Is.
package cholesky

import "errors"

var (
	// ErrNotSquare rejects factorization of a non-square matrix.
	ErrNotSquare = errors.New("cholesky: matrix is not square")

	// ErrNotPositiveDefinite signals a non-positive pivot during the
	// numeric phase: the input is not symmetric positive-definite.
	ErrNotPositiveDefinite = errors.New("cholesky: matrix is not positive definite")

	// ErrStructureMismatch rejects an Update whose matrix does not share
	// the exact sparsity pattern of the factorized matrix.
	ErrStructureMismatch = errors.New("cholesky: sparsity structure does not match factorized matrix")

	// ErrNotFactorized marks a handle with no usable factor: the zero
	// value, or a handle whose last Update failed numerically.
	ErrNotFactorized = errors.New("cholesky: no usable factorization")

	// ErrAsymmetric is returned by the opt-in symmetry pre-check.
	ErrAsymmetric = errors.New("cholesky: matrix is not symmetric within tolerance")
)
