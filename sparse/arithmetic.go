// SPDX-License-Identifier: MIT
// Package sparse: arithmetic kernels over the compressed-column form.
//
// Purpose:
//   - Add / Mul / MulVec / Transpose / Scale plus the compound-assignment
//     forms AddAssign / MulAssign.
//   - Every kernel accepts compressed operands only, never mutates its
//     inputs, and returns a freshly allocated result.
//
// Notes:
//   - The column scatter/gather workspace keeps each kernel proportional to
//     the arithmetic it performs: a marker array w tracks which rows are
//     live in the current output column, a dense accumulator x carries
//     their values.
//   - Kernels use the central validators and wrap failures via sparseErrorf.

package sparse

import (
	"fmt"
	"math"
)

// Operation name constants for unified error wrapping and reducing magic
// strings.
const (
	opAdd       = "Add"
	opMul       = "Mul"
	opMulVec    = "MulVec"
	opTranspose = "Transpose"
	opScale     = "Scale"
	opAddAssign = "AddAssign"
	opMulAssign = "MulAssign"
)

// sparseErrorf wraps err with an operation tag, preserving the original
// error via %w so errors.Is keeps matching the package sentinels.
// Use only when err != nil.
func sparseErrorf(tag string, err error) error {
	return fmt.Errorf("%s: %w", tag, err)
}

// scatterColumn folds beta times column j of a into the dense accumulator
// x, recording first-touched rows in rowIdx. w[r] >= mark means row r is
// already live in the current output column, so the contribution
// accumulates instead of appending. Returns the advanced entry count.
// O(nnz of the scattered column).
func scatterColumn(a *cscPayload, j int, beta float64, w []int, x []float64, mark int, rowIdx []int, nz int) int {
	var p, r int
	for p = a.colPtr[j]; p < a.colPtr[j+1]; p++ {
		r = a.rowIdx[p]
		if w[r] < mark {
			w[r] = mark
			rowIdx[nz] = r
			nz++
			x[r] = beta * a.val[p]
		} else {
			x[r] += beta * a.val[p]
		}
	}
	return nz
}

// growEntryBuffers enlarges the result's index/value buffers to hold at
// least need entries, preferring the geometric want. The arithmetic is
// guarded: an overflowed size surfaces as ErrAllocation instead of a
// runtime failure.
func growEntryBuffers(rowIdx []int, val []float64, need, want int) ([]int, []float64, error) {
	if need < 0 {
		return nil, nil, ErrAllocation
	}
	if want < need {
		want = need
	}
	if want < 0 || want > math.MaxInt/16 {
		return nil, nil, ErrAllocation
	}
	ri := make([]int, want)
	copy(ri, rowIdx)
	vv := make([]float64, want)
	copy(vv, val)
	return ri, vv, nil
}

// Add computes C = A + B over compressed operands of identical extent.
//
// Implementation:
//   - Stage 1 (Validate): both compressed, same extent.
//   - Stage 2 (Accumulate): per output column, scatter A's column then B's
//     column into the dense accumulator, collecting the union pattern;
//     gather the values back out.
//
// Behavior highlights:
//   - Entries that cancel to exactly 0 are KEPT as stored zeros: the result
//     pattern is the union of both patterns regardless of values.
//   - Operands are never mutated; the result is freshly allocated.
//
// Errors: ErrNilMatrix, ErrInvalidState, ErrDimensionMismatch.
// Determinism: fixed column order; within a column, A's rows first, then
// B's new rows.
// Complexity: O(nnz(A) + nnz(B) + cols) time, O(rows) workspace.
func Add(a, b *Matrix) (*Matrix, error) {
	if err := ValidateBinaryCompressed(a, b); err != nil {
		return nil, sparseErrorf(opAdd, err)
	}
	if err := ValidateSameShape(a, b); err != nil {
		return nil, sparseErrorf(opAdd, err)
	}

	var (
		rows, cols = a.rows, a.cols
		total      = a.NNZ() + b.NNZ() // the union never exceeds the sum

		colPtr = make([]int, cols+1)
		rowIdx = make([]int, total)
		val    = make([]float64, total)
		w      = make([]int, rows)     // column-liveness markers
		x      = make([]float64, rows) // dense accumulator

		nz, j, p int
	)
	for j = 0; j < cols; j++ {
		colPtr[j] = nz
		nz = scatterColumn(a.csc, j, 1, w, x, j+1, rowIdx, nz)
		nz = scatterColumn(b.csc, j, 1, w, x, j+1, rowIdx, nz)
		for p = colPtr[j]; p < nz; p++ {
			val[p] = x[rowIdx[p]]
		}
	}
	colPtr[cols] = nz

	return &Matrix{
		rows: rows, cols: cols,
		csc:         &cscPayload{colPtr: colPtr, rowIdx: rowIdx[:nz], val: val[:nz]},
		checkFinite: a.checkFinite,
	}, nil
}

// Mul computes C = A·B column by column: for output column j, every stored
// entry B(k, j) contributes B(k,j) · A(:,k), accumulated through the
// scatter workspace. The inner-dimension rule is a.Cols == b.Rows.
//
// Implementation:
//   - Stage 1 (Validate): both compressed, inner dimensions agree.
//   - Stage 2 (Accumulate): per column j of B, grow the result buffers when
//     the next column could overflow them (geometric growth), scatter each
//     selected column of A scaled by B's entry, gather the values.
//
// Behavior highlights:
//   - nnz(A)+nnz(B) seeds the result capacity; growth doubles and adds a
//     full column's worth, so total copying stays linear in the output.
//   - Explicit zeros propagate structurally like any other stored entry.
//
// Errors: ErrNilMatrix, ErrInvalidState, ErrDimensionMismatch,
// ErrAllocation.
// Complexity: O(flops + nnz + cols) time, O(rows) workspace.
func Mul(a, b *Matrix) (*Matrix, error) {
	if err := ValidateBinaryCompressed(a, b); err != nil {
		return nil, sparseErrorf(opMul, err)
	}
	if err := ValidateMulCompatible(a, b); err != nil {
		return nil, sparseErrorf(opMul, err)
	}

	var (
		rows, cols = a.rows, b.cols

		colPtr = make([]int, cols+1)
		rowIdx = make([]int, a.NNZ()+b.NNZ())
		val    = make([]float64, len(rowIdx))
		w      = make([]int, rows)
		x      = make([]float64, rows)

		nz, j, p int
		err      error
	)
	for j = 0; j < cols; j++ {
		if nz+rows > len(rowIdx) {
			if rowIdx, val, err = growEntryBuffers(rowIdx, val, nz+rows, 2*len(rowIdx)+rows); err != nil {
				return nil, sparseErrorf(opMul, err)
			}
		}
		colPtr[j] = nz
		for p = b.csc.colPtr[j]; p < b.csc.colPtr[j+1]; p++ {
			nz = scatterColumn(a.csc, b.csc.rowIdx[p], b.csc.val[p], w, x, j+1, rowIdx, nz)
		}
		for p = colPtr[j]; p < nz; p++ {
			val[p] = x[rowIdx[p]]
		}
	}
	colPtr[cols] = nz

	return &Matrix{
		rows: rows, cols: cols,
		csc:         &cscPayload{colPtr: colPtr, rowIdx: rowIdx[:nz], val: val[:nz]},
		checkFinite: a.checkFinite,
	}, nil
}

// MulVec computes y = A·x for a compressed A and a dense vector x of
// length a.Cols. The result is freshly allocated with length a.Rows.
//
// Errors: ErrNilMatrix (matrix or vector), ErrInvalidState,
// ErrDimensionMismatch.
// Determinism: column-major accumulation in fixed order.
// Complexity: O(nnz) time, O(rows) result.
func MulVec(a *Matrix, x []float64) ([]float64, error) {
	if err := ValidateCompressed(a); err != nil {
		return nil, sparseErrorf(opMulVec, err)
	}
	if err := ValidateVecLen(x, a.cols); err != nil {
		return nil, sparseErrorf(opMulVec, err)
	}
	var (
		y    = make([]float64, a.rows)
		j, p int
	)
	for j = 0; j < a.cols; j++ {
		for p = a.csc.colPtr[j]; p < a.csc.colPtr[j+1]; p++ {
			y[a.csc.rowIdx[p]] += a.csc.val[p] * x[j]
		}
	}
	return y, nil
}

// Transpose returns Aᵀ as a fresh compressed matrix. The row-counting sort
// doubles as an ordering pass: the result's columns come out with strictly
// increasing row indices, which makes Transpose(Transpose(A)) the canonical
// way to sort a matrix's columns.
//
// Errors: ErrNilMatrix, ErrInvalidState.
// Complexity: O(nnz + rows + cols) time and result space.
func Transpose(a *Matrix) (*Matrix, error) {
	if err := ValidateCompressed(a); err != nil {
		return nil, sparseErrorf(opTranspose, err)
	}

	var (
		nnz = a.NNZ()

		colPtr = make([]int, a.rows+1) // the result has a.rows columns
		counts = make([]int, a.rows)
		rowIdx = make([]int, nnz)
		val    = make([]float64, nnz)

		j, p, dst int
	)
	for p = 0; p < nnz; p++ {
		counts[a.csc.rowIdx[p]]++
	}
	cumsum(colPtr, counts)
	for j = 0; j < a.cols; j++ {
		for p = a.csc.colPtr[j]; p < a.csc.colPtr[j+1]; p++ {
			dst = counts[a.csc.rowIdx[p]]
			counts[a.csc.rowIdx[p]]++
			rowIdx[dst] = j
			val[dst] = a.csc.val[p]
		}
	}

	return &Matrix{
		rows: a.cols, cols: a.rows,
		csc:         &cscPayload{colPtr: colPtr, rowIdx: rowIdx, val: val},
		checkFinite: a.checkFinite,
	}, nil
}

// Scale returns alpha·A as a fresh compressed matrix with A's exact
// pattern: scaling by zero keeps every entry, stored as explicit zeros.
//
// Errors: ErrNilMatrix, ErrInvalidState, ErrNaNInf (non-finite alpha).
// Complexity: O(nnz).
func Scale(a *Matrix, alpha float64) (*Matrix, error) {
	if err := ValidateCompressed(a); err != nil {
		return nil, sparseErrorf(opScale, err)
	}
	if err := ValidateFinite(alpha); err != nil {
		return nil, sparseErrorf(opScale, err)
	}
	out := a.Clone()
	var p int
	for p = 0; p < len(out.csc.val); p++ {
		out.csc.val[p] *= alpha
	}
	return out, nil
}

// AddAssign folds b into the receiver: m = m + b. The sum is computed into
// a fresh result and then swapped in, so m.AddAssign(m) (doubling) is safe;
// the kernel never reads a buffer it is writing.
//
// Errors: as Add. Complexity: as Add.
func (m *Matrix) AddAssign(b *Matrix) error {
	res, err := Add(m, b)
	if err != nil {
		return sparseErrorf(opAddAssign, err)
	}
	*m = *res // swap the freshly built payload into place
	return nil
}

// MulAssign replaces the receiver with m·b. A square b keeps the extent; a
// rectangular b reshapes it. Computed out of place and swapped in, so
// m.MulAssign(m) (squaring) is safe.
//
// Errors: as Mul. Complexity: as Mul.
func (m *Matrix) MulAssign(b *Matrix) error {
	res, err := Mul(m, b)
	if err != nil {
		return sparseErrorf(opMulAssign, err)
	}
	*m = *res
	return nil
}
