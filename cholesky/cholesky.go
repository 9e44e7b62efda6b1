// Package cholesky: construction and accessors of the Factorization
// handle.
package cholesky

import (
	"fmt"
	"math"

	"github.com/yangyi-ioa/sparsemat/sparse"
)

// Operation name constants for uniform error wrapping.
const (
	opNew     = "New"
	opL       = "L"
	opBacksub = "Backsub"
	opUpdate  = "Update"
)

// choleskyErrorf wraps err with an operation tag; errors.Is keeps matching
// the underlying sentinel.
func choleskyErrorf(tag string, err error) error {
	return fmt.Errorf("%s: %w", tag, err)
}

// New factorizes a square symmetric positive-definite matrix given in
// compressed form: symbolic analysis under the configured ordering, then
// the numeric pass. On success the returned handle owns the factor and
// keeps a non-owning reference to a for Update's structural guard.
//
// Only the upper triangle of a is read. Symmetry of the rest is the
// caller's contract unless WithSymmetryCheck is enabled; the strict lower
// triangle may be stored, mirrored or absent without changing the result.
//
// Errors: sparse.ErrNilMatrix, sparse.ErrInvalidState (not compressed),
// ErrNotSquare, ErrAsymmetric (opt-in check), ErrNotPositiveDefinite.
// Determinism: both orderings are deterministic; identical inputs yield
// identical factors.
// Complexity: O(ordering + flops(L)).
func New(a *sparse.Matrix, opts ...Option) (*Factorization, error) {
	o := gatherOptions(opts...)
	if err := sparse.ValidateCompressed(a); err != nil {
		return nil, choleskyErrorf(opNew, err)
	}
	if a.Rows() != a.Cols() {
		return nil, choleskyErrorf(opNew, ErrNotSquare)
	}
	n := a.Rows()
	aColPtr, aRowIdx, aVal, err := a.RawCSC()
	if err != nil {
		return nil, choleskyErrorf(opNew, err)
	}
	if o.checkSym {
		if err = checkSymmetry(n, aColPtr, aRowIdx, aVal, o.symTol); err != nil {
			return nil, choleskyErrorf(opNew, err)
		}
	}

	sym := analyze(n, aColPtr, aRowIdx, o.ordering)
	num, err := refactor(n, aColPtr, aRowIdx, aVal, sym)
	if err != nil {
		return nil, choleskyErrorf(opNew, err)
	}
	return &Factorization{n: n, st: stateFactored, sym: sym, num: num, src: a}, nil
}

// refactor permutes the upper triangle under the symbolic permutation and
// runs the numeric pass. Shared by New and Update.
func refactor(n int, aColPtr, aRowIdx []int, aVal []float64, sym *symbolic) (*numeric, error) {
	cColPtr, cRowIdx, cVal := permuteUpper(n, aColPtr, aRowIdx, aVal, sym.pinv, true)
	return factorize(n, cColPtr, cRowIdx, cVal, sym)
}

// checkSymmetry verifies that the stored matrix equals its transpose within
// tol, entry by entry; an entry present on one side only compares against
// zero. One counting-sort transpose plus one scatter sweep: O(nnz + n).
func checkSymmetry(n int, colPtr, rowIdx []int, val []float64, tol float64) error {
	var (
		nnz = colPtr[n]

		tColPtr = make([]int, n+1)
		counts  = make([]int, n)
		tRowIdx = make([]int, nnz)
		tVal    = make([]float64, nnz)

		j, p, i, dst int
	)
	for p = 0; p < nnz; p++ {
		counts[rowIdx[p]]++
	}
	cumsum(tColPtr, counts)
	for j = 0; j < n; j++ {
		for p = colPtr[j]; p < colPtr[j+1]; p++ {
			dst = counts[rowIdx[p]]
			counts[rowIdx[p]]++
			tRowIdx[dst] = j
			tVal[dst] = val[p]
		}
	}

	// Column-by-column comparison of A and Aᵀ through a stamped scatter.
	var (
		x     = make([]float64, n)
		stamp = make([]int, n) // stamp[i] == j+1 ⇔ x[i] live for column j
	)
	for j = 0; j < n; j++ {
		for p = colPtr[j]; p < colPtr[j+1]; p++ {
			i = rowIdx[p]
			x[i] = val[p]
			stamp[i] = j + 1
		}
		for p = tColPtr[j]; p < tColPtr[j+1]; p++ {
			i = tRowIdx[p]
			if stamp[i] == j+1 {
				if math.Abs(x[i]-tVal[p]) > tol {
					return ErrAsymmetric
				}
				stamp[i] = 0 // matched and consumed
			} else if math.Abs(tVal[p]) > tol {
				return ErrAsymmetric // present in Aᵀ only
			}
		}
		for p = colPtr[j]; p < colPtr[j+1]; p++ {
			i = rowIdx[p]
			if stamp[i] == j+1 && math.Abs(x[i]) > tol {
				return ErrAsymmetric // present in A only
			}
		}
	}
	return nil
}

// L returns a deep copy of the lower-triangular factor as a compressed
// sparse matrix, diagonal entry first within each column. The handle keeps
// exclusive ownership of its internal buffers.
//
// Errors: ErrNotFactorized.
// Complexity: O(nnz(L)).
func (f *Factorization) L() (*sparse.Matrix, error) {
	if err := f.usable(); err != nil {
		return nil, choleskyErrorf(opL, err)
	}
	lmat, err := sparse.NewCSC(f.n, f.n, f.num.colPtr, f.num.rowIdx, f.num.val)
	if err != nil {
		return nil, choleskyErrorf(opL, err)
	}
	return lmat, nil
}

// Perm returns a copy of the fill-reducing permutation: row/column k of the
// factorized system corresponds to row/column Perm()[k] of the input. Nil
// under natural ordering or on an unusable handle.
func (f *Factorization) Perm() []int {
	if f == nil || f.sym == nil || f.sym.perm == nil {
		return nil
	}
	out := make([]int, len(f.sym.perm))
	copy(out, f.sym.perm)
	return out
}
