// Package cholesky: triangular solves and the public backsubstitution
// entry point.
package cholesky

import "github.com/yangyi-ioa/sparsemat/sparse"

// lsolve solves L·y = x in place: forward sweep over columns, diagonal
// first. x is overwritten with y.
func lsolve(num *numeric, x []float64) {
	var (
		n    = len(num.colPtr) - 1
		j, p int
	)
	for j = 0; j < n; j++ {
		x[j] /= num.val[num.colPtr[j]]
		for p = num.colPtr[j] + 1; p < num.colPtr[j+1]; p++ {
			x[num.rowIdx[p]] -= num.val[p] * x[j]
		}
	}
}

// ltsolve solves Lᵀ·y = x in place: backward sweep reading each column of
// L as a row of Lᵀ.
func ltsolve(num *numeric, x []float64) {
	var (
		n    = len(num.colPtr) - 1
		j, p int
	)
	for j = n - 1; j >= 0; j-- {
		for p = num.colPtr[j] + 1; p < num.colPtr[j+1]; p++ {
			x[j] -= num.val[p] * x[num.rowIdx[p]]
		}
		x[j] /= num.val[num.colPtr[j]]
	}
}

// Backsub solves A·x = b through the factorization: permute b into the
// factor's order, forward solve with L, backward solve with Lᵀ, permute
// back. b is never modified; x is freshly allocated.
//
// Errors: ErrNotFactorized, sparse.ErrNilMatrix (nil b),
// sparse.ErrDimensionMismatch (wrong length).
// Determinism: fixed sweep order; identical inputs yield identical x.
// Complexity: O(nnz(L)).
func (f *Factorization) Backsub(b []float64) ([]float64, error) {
	if err := f.usable(); err != nil {
		return nil, choleskyErrorf(opBacksub, err)
	}
	if err := sparse.ValidateVecLen(b, f.n); err != nil {
		return nil, choleskyErrorf(opBacksub, err)
	}

	var (
		y = make([]float64, f.n)
		x = make([]float64, f.n)
		k int
	)
	// y = P·b: row k of the permuted system reads b[perm[k]].
	if f.sym.pinv != nil {
		for k = 0; k < f.n; k++ {
			y[f.sym.pinv[k]] = b[k]
		}
	} else {
		copy(y, b)
	}

	lsolve(f.num, y)
	ltsolve(f.num, y)

	// x = Pᵀ·y: undo the relabeling.
	if f.sym.pinv != nil {
		for k = 0; k < f.n; k++ {
			x[k] = y[f.sym.pinv[k]]
		}
	} else {
		copy(x, y)
	}
	return x, nil
}
