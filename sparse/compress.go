// SPDX-License-Identifier: MIT
// Package sparse: triplet → CSC compression and direct compressed
// constructors. Compression is the classic two-phase column scheme: a
// counting sort over columns, then an in-place duplicate-summing sweep.

package sparse

import (
	"fmt"
	"math"
)

const (
	opCompress     = "Compress"
	opNewFromDense = "NewFromDense"
	opNewCSC       = "NewCSC"
)

// cumsum turns per-column counts into starting offsets: p[j] receives the
// prefix sum of counts[0..j), p[len(counts)] the grand total, and counts[j]
// is reset to p[j] so it can serve as the next-write cursor during scatter.
// Requires len(p) == len(counts)+1. Returns the total. O(len(counts)).
func cumsum(p, counts []int) int {
	var nz, j, c int
	for j = 0; j < len(counts); j++ {
		c = counts[j]
		p[j] = nz
		counts[j] = nz
		nz += c
	}
	p[len(counts)] = nz
	return nz
}

// Compress converts the matrix from triplet to compressed-column form, in
// place. Entries are grouped by column with a counting sort, then duplicate
// (row, col) coordinates are summed by a single marker sweep, preserving
// explicit zeros. The triplet storage is released; afterwards the matrix
// answers IsCompressed and the arithmetic kernels accept it.
//
// Implementation:
//   - Stage 1 (Count): histogram entries per column.
//   - Stage 2 (Scatter): cumulative offsets, then place each entry at its
//     column cursor. Row order within a column is unspecified.
//   - Stage 3 (Deduplicate): per column, a row-marker workspace redirects
//     repeated rows onto their first slot, accumulating the sum; the
//     arrays compact in place and truncate.
//
// Behavior highlights:
//   - Duplicates sum, including into explicit zeros; entries never vanish.
//   - Deterministic: identical insertion history yields identical storage.
//
// Errors: ErrNilMatrix, ErrInvalidState (already compressed).
// Complexity: O(nnz + rows + cols) time, O(nnz + rows + cols) transient.
func (m *Matrix) Compress() error {
	if err := ValidateTriplet(m); err != nil {
		return sparseErrorf(opCompress, err)
	}

	var (
		t   = m.trip
		nnz = len(t.val)

		colPtr = make([]int, m.cols+1)
		counts = make([]int, m.cols)
		rowIdx = make([]int, nnz)
		val    = make([]float64, nnz)

		k, dst int
	)

	// Stage 1: per-column histogram.
	for k = 0; k < nnz; k++ {
		counts[t.col[k]]++
	}

	// Stage 2: offsets, then scatter (stable in insertion order).
	cumsum(colPtr, counts)
	for k = 0; k < nnz; k++ {
		dst = counts[t.col[k]]
		counts[t.col[k]]++
		rowIdx[dst] = t.row[k]
		val[dst] = t.val[k]
	}

	// Stage 3: in-place duplicate summation.
	nnz = dedupeColumns(m.rows, m.cols, colPtr, rowIdx, val)

	m.csc = &cscPayload{colPtr: colPtr, rowIdx: rowIdx[:nnz], val: val[:nnz]}
	m.trip = nil
	return nil
}

// dedupeColumns sums duplicate row entries within each column, compacting
// the index/value arrays in place. w[r] remembers the output slot of row r;
// a slot at or past the current column's first output position means
// "already stored in this column", so the value folds into that slot.
// The write cursor nz never passes the read cursor p, which keeps the
// compaction safe. Returns the new entry count; colPtr is rewritten to the
// compacted offsets.
func dedupeColumns(rows, cols int, colPtr, rowIdx []int, val []float64) int {
	var (
		w = make([]int, rows)

		nz, j, p, r, q, colEnd int
	)
	for r = 0; r < rows; r++ {
		w[r] = -1
	}
	for j = 0; j < cols; j++ {
		q = nz // column j starts here in the compacted output
		colEnd = colPtr[j+1]
		for p = colPtr[j]; p < colEnd; p++ {
			r = rowIdx[p]
			if w[r] >= q {
				val[w[r]] += val[p] // duplicate: fold into the first slot
			} else {
				w[r] = nz
				rowIdx[nz] = r
				val[nz] = val[p]
				nz++
			}
		}
		colPtr[j] = q
	}
	colPtr[cols] = nz
	return nz
}

// NewFromDense builds a compressed matrix straight from a dense source,
// skipping elements with |v| <= the drop tolerance (default: exact zeros
// only). The scan is column-major, so the result carries sorted row indices
// within each column.
//
// Implementation:
//   - Stage 1 (Count): column-major sweep counting surviving elements,
//     validating finiteness along the way.
//   - Stage 2 (Fill): offsets, then a second sweep placing values at the
//     column cursors.
//
// Errors: ErrNilMatrix (nil src), ErrBadShape (empty extent), ErrNaNInf,
// plus any error surfaced by src.At.
// Complexity: O(rows·cols) time, O(nnz) result space.
func NewFromDense(src DenseSource, opts ...Option) (*Matrix, error) {
	o := gatherOptions(opts...)
	if src == nil {
		return nil, sparseErrorf(opNewFromDense, ErrNilMatrix)
	}
	rows, cols := src.Rows(), src.Cols()
	if err := ValidateShape(rows, cols); err != nil {
		return nil, sparseErrorf(opNewFromDense, err)
	}

	var (
		counts = make([]int, cols)

		i, j, nnz int
		v         float64
		err       error
	)

	// Stage 1: count survivors per column.
	for j = 0; j < cols; j++ {
		for i = 0; i < rows; i++ {
			if v, err = src.At(i, j); err != nil {
				return nil, sparseErrorf(opNewFromDense, fmt.Errorf("At(%d,%d): %w", i, j, err))
			}
			if o.validateFinite {
				if err = ValidateFinite(v); err != nil {
					return nil, sparseErrorf(opNewFromDense, err)
				}
			}
			if dropValue(v, o.dropTol) {
				continue
			}
			counts[j]++
			nnz++
		}
	}

	// Stage 2: offsets, then fill.
	var (
		colPtr = make([]int, cols+1)
		rowIdx = make([]int, nnz)
		val    = make([]float64, nnz)
		dst    int
	)
	cumsum(colPtr, counts)
	for j = 0; j < cols; j++ {
		for i = 0; i < rows; i++ {
			if v, err = src.At(i, j); err != nil {
				return nil, sparseErrorf(opNewFromDense, fmt.Errorf("At(%d,%d): %w", i, j, err))
			}
			if dropValue(v, o.dropTol) {
				continue
			}
			dst = counts[j]
			counts[j]++
			rowIdx[dst] = i
			val[dst] = v
		}
	}

	return &Matrix{
		rows: rows, cols: cols,
		csc:         &cscPayload{colPtr: colPtr, rowIdx: rowIdx, val: val},
		checkFinite: o.validateFinite,
	}, nil
}

// dropValue reports whether v counts as structurally zero under tol. With
// tol == 0 only exact zeros (signed zero included) are dropped.
func dropValue(v, tol float64) bool {
	return math.Abs(v) <= tol
}

// NewCSC adopts raw compressed-column arrays (colPtr, rowIdx, val) after
// validating every structural invariant: pointer monotonicity, index
// bounds, per-column row uniqueness, array-length agreement and value
// finiteness. Slices are copied, never aliased, so the caller's buffers
// stay free.
//
// Errors: ErrBadShape (extent, pointer structure, length disagreement, or
// a duplicated row within a column), ErrOutOfRange (row index), ErrNaNInf.
// Complexity: O(nnz + rows + cols).
func NewCSC(rows, cols int, colPtr, rowIdx []int, val []float64, opts ...Option) (*Matrix, error) {
	o := gatherOptions(opts...)
	if err := ValidateShape(rows, cols); err != nil {
		return nil, sparseErrorf(opNewCSC, err)
	}
	if len(colPtr) != cols+1 || colPtr[0] != 0 {
		return nil, sparseErrorf(opNewCSC, ErrBadShape)
	}
	var j, p, r int
	for j = 0; j < cols; j++ {
		if colPtr[j+1] < colPtr[j] {
			return nil, sparseErrorf(opNewCSC, ErrBadShape)
		}
	}
	nnz := colPtr[cols]
	if len(rowIdx) != nnz || len(val) != nnz {
		return nil, sparseErrorf(opNewCSC, ErrBadShape)
	}
	seen := make([]int, rows) // stamp workspace for per-column uniqueness
	for j = 0; j < cols; j++ {
		for p = colPtr[j]; p < colPtr[j+1]; p++ {
			r = rowIdx[p]
			if r < 0 || r >= rows {
				return nil, sparseErrorf(opNewCSC, ErrOutOfRange)
			}
			if seen[r] == j+1 {
				return nil, sparseErrorf(opNewCSC, ErrBadShape)
			}
			seen[r] = j + 1
			if o.validateFinite {
				if err := ValidateFinite(val[p]); err != nil {
					return nil, sparseErrorf(opNewCSC, err)
				}
			}
		}
	}
	c := &cscPayload{
		colPtr: make([]int, len(colPtr)),
		rowIdx: make([]int, nnz),
		val:    make([]float64, nnz),
	}
	copy(c.colPtr, colPtr)
	copy(c.rowIdx, rowIdx)
	copy(c.val, val)
	return &Matrix{rows: rows, cols: cols, csc: c, checkFinite: o.validateFinite}, nil
}
