// SPDX-License-Identifier: MIT
// Package sparse: core types of the dual-form engine.
// This file defines the Matrix container (a tagged triplet/compressed
// variant), its payload structs, the DenseSource capability contract, and
// the cheap accessors that are valid in every form.

package sparse

// DenseSource is the capability contract every dense conversion source must
// satisfy: extent plus bounds-checked element access. The package's own
// Dense implements it, and any external dense type (a gonum matrix via
// FromGonum, a test stub, a caller's own block type) adapts to it, so the
// conversion code is written once against this interface.
type DenseSource interface {
	// Rows returns the number of rows.
	Rows() int
	// Cols returns the number of columns.
	Cols() int
	// At returns the element at (row, col), or an error when out of bounds.
	At(row, col int) (float64, error)
}

// tripletPayload holds coordinate entries: three parallel slices, unordered,
// duplicates legal (they sum on Compress and on ToDense).
type tripletPayload struct {
	row []int
	col []int
	val []float64
}

// cscPayload holds compressed-sparse-column storage.
// Invariants: len(colPtr) == cols+1, colPtr[0] == 0, colPtr non-decreasing,
// colPtr[cols] == len(rowIdx) == len(val), every rowIdx in [0, rows), and
// row indices are unique within each column. Row order within a column is
// unspecified; explicit zeros may be stored.
type cscPayload struct {
	colPtr []int
	rowIdx []int
	val    []float64
}

// Matrix is a sparse matrix in exactly one of two storage forms. The active
// form is the non-nil payload (never both, never neither for a constructed
// matrix). The zero value is not usable: construct via NewTriplet,
// NewTripletFromParts, Compress's source constructors, NewFromDense, NewCSC
// or FromGonum.
//
// The extent (rows × cols) is logical: it may exceed the largest occupied
// index, grows on insertion, and never shrinks.
type Matrix struct {
	rows, cols int

	trip *tripletPayload // non-nil ⇔ triplet form
	csc  *cscPayload     // non-nil ⇔ compressed form

	checkFinite bool // finite-value policy, frozen at construction
}

// Rows returns the number of rows. Complexity: O(1).
func (m *Matrix) Rows() int {
	if m == nil {
		return 0
	}
	return m.rows
}

// Cols returns the number of columns. Complexity: O(1).
func (m *Matrix) Cols() int {
	if m == nil {
		return 0
	}
	return m.cols
}

// IsTriplet reports whether the matrix is in triplet (coordinate) form.
func (m *Matrix) IsTriplet() bool { return m != nil && m.trip != nil }

// IsCompressed reports whether the matrix is in compressed-column form.
func (m *Matrix) IsCompressed() bool { return m != nil && m.csc != nil }

// NNZ returns the number of stored entries in the current form. Triplet
// duplicates count individually; compressed explicit zeros count too.
// Complexity: O(1).
func (m *Matrix) NNZ() int {
	if m == nil {
		return 0
	}
	if m.trip != nil {
		return len(m.trip.val)
	}
	if m.csc != nil {
		return m.csc.colPtr[m.cols]
	}
	return 0
}

// Clone returns a deep copy in the same storage form. All buffers are
// freshly allocated; the receiver is never aliased. Cloning nil yields nil.
// Complexity: O(nnz).
func (m *Matrix) Clone() *Matrix {
	if m == nil {
		return nil
	}
	out := &Matrix{rows: m.rows, cols: m.cols, checkFinite: m.checkFinite}
	if m.trip != nil {
		t := &tripletPayload{
			row: make([]int, len(m.trip.row)),
			col: make([]int, len(m.trip.col)),
			val: make([]float64, len(m.trip.val)),
		}
		copy(t.row, m.trip.row)
		copy(t.col, m.trip.col)
		copy(t.val, m.trip.val)
		out.trip = t
		return out
	}
	if m.csc != nil {
		c := &cscPayload{
			colPtr: make([]int, len(m.csc.colPtr)),
			rowIdx: make([]int, len(m.csc.rowIdx)),
			val:    make([]float64, len(m.csc.val)),
		}
		copy(c.colPtr, m.csc.colPtr)
		copy(c.rowIdx, m.csc.rowIdx)
		copy(c.val, m.csc.val)
		out.csc = c
	}
	return out
}

// EachNonZero visits every stored entry as (row, col, value). Triplet form
// visits entries in insertion order, duplicates individually; compressed
// form visits column by column. The visitor must not mutate m.
// Complexity: O(nnz).
func (m *Matrix) EachNonZero(fn func(row, col int, v float64)) {
	if m == nil || fn == nil {
		return
	}
	var j, p int
	if m.trip != nil {
		for p = 0; p < len(m.trip.val); p++ {
			fn(m.trip.row[p], m.trip.col[p], m.trip.val[p])
		}
		return
	}
	if m.csc == nil {
		return
	}
	for j = 0; j < m.cols; j++ {
		for p = m.csc.colPtr[j]; p < m.csc.colPtr[j+1]; p++ {
			fn(m.csc.rowIdx[p], j, m.csc.val[p])
		}
	}
}

// RawCSC exposes the compressed-column arrays as a zero-copy view: column
// pointers (len Cols+1), row indices and values (len NNZ). The slices are
// the live backing store; callers MUST treat them as read-only, since
// mutating them bypasses every invariant this package maintains. Intended
// for tight consumers such as factorization and snapshot code.
//
// Errors: ErrNilMatrix, ErrInvalidState (not in compressed form).
// Complexity: O(1).
func (m *Matrix) RawCSC() (colPtr, rowIdx []int, val []float64, err error) {
	if err = ValidateCompressed(m); err != nil {
		return nil, nil, nil, err
	}
	return m.csc.colPtr, m.csc.rowIdx, m.csc.val, nil
}

// RawTriplet exposes the coordinate arrays as a zero-copy view: rows,
// columns and values, each of len NNZ. Same read-only contract as RawCSC.
//
// Errors: ErrNilMatrix, ErrInvalidState (not in triplet form).
// Complexity: O(1).
func (m *Matrix) RawTriplet() (row, col []int, val []float64, err error) {
	if err = ValidateTriplet(m); err != nil {
		return nil, nil, nil, err
	}
	return m.trip.row, m.trip.col, m.trip.val, nil
}
