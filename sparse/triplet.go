// SPDX-License-Identifier: MIT
// Package sparse: triplet-form construction and assembly.
// NewTriplet starts an empty coordinate store; InsertEntry/InsertSubmatrix
// append entries (duplicates sum later, on Compress or ToDense); the extent
// grows on demand and never shrinks.

package sparse

import "fmt"

// Operation name constants used by assembly entry points for uniform error
// wrapping and reducing magic strings.
const (
	opNewTriplet          = "NewTriplet"
	opNewTripletFromParts = "NewTripletFromParts"
	opInsertEntry         = "InsertEntry"
	opInsertSubmatrix     = "InsertSubmatrix"
	opSetRows             = "SetRows"
	opSetCols             = "SetCols"
)

// NewTriplet creates an empty rows×cols matrix in triplet form.
//
// Implementation:
//   - Stage 1 (Validate): extent must be strictly positive.
//   - Stage 2 (Prepare): reserve capacity for the configured entry hint.
//   - Stage 3 (Finalize): return the tagged triplet container.
//
// Inputs:
//   - rows, cols: initial logical extent (>= 1). Insertions may grow it.
//   - opts: WithCapacity, WithNoFiniteCheck.
//
// Returns:
//   - *Matrix in triplet form, or nil with an error.
//
// Errors:
//   - ErrBadShape — non-positive extent.
//
// Determinism: trivially deterministic.
// Complexity: O(1) time, O(capacity) reserved space.
func NewTriplet(rows, cols int, opts ...Option) (*Matrix, error) {
	o := gatherOptions(opts...)
	if err := ValidateShape(rows, cols); err != nil {
		return nil, sparseErrorf(opNewTriplet, err)
	}
	return &Matrix{
		rows: rows,
		cols: cols,
		trip: &tripletPayload{
			row: make([]int, 0, o.capacity),
			col: make([]int, 0, o.capacity),
			val: make([]float64, 0, o.capacity),
		},
		checkFinite: o.validateFinite,
	}, nil
}

// NewTripletFromParts adopts raw coordinate arrays as a triplet matrix.
// The three slices must have equal length; indices must lie inside the
// given extent (adoption never grows it); values must be finite under the
// active policy. Slices are copied, never aliased, so the caller's buffers
// stay free.
//
// Errors: ErrBadShape (extent or length disagreement), ErrOutOfRange,
// ErrNaNInf.
// Complexity: O(nnz).
func NewTripletFromParts(rows, cols int, row, col []int, val []float64, opts ...Option) (*Matrix, error) {
	o := gatherOptions(opts...)
	if err := ValidateShape(rows, cols); err != nil {
		return nil, sparseErrorf(opNewTripletFromParts, err)
	}
	if len(row) != len(col) || len(col) != len(val) {
		return nil, sparseErrorf(opNewTripletFromParts, ErrBadShape)
	}
	var k int
	for k = 0; k < len(val); k++ {
		if row[k] < 0 || row[k] >= rows || col[k] < 0 || col[k] >= cols {
			return nil, sparseErrorf(opNewTripletFromParts, ErrOutOfRange)
		}
		if o.validateFinite {
			if err := ValidateFinite(val[k]); err != nil {
				return nil, sparseErrorf(opNewTripletFromParts, err)
			}
		}
	}
	t := &tripletPayload{
		row: make([]int, len(row)),
		col: make([]int, len(col)),
		val: make([]float64, len(val)),
	}
	copy(t.row, row)
	copy(t.col, col)
	copy(t.val, val)
	return &Matrix{rows: rows, cols: cols, trip: t, checkFinite: o.validateFinite}, nil
}

// InsertEntry appends one coordinate entry (row, col, v).
//
// Behavior highlights:
//   - Allowed only in triplet form (ErrInvalidState otherwise).
//   - row/col at or beyond the current extent GROW the extent to index+1;
//     negative indices are rejected with ErrOutOfRange.
//   - Duplicate coordinates are legal; they sum on Compress and ToDense.
//   - Inserting an explicit 0.0 stores an entry (compression keeps it).
//
// Errors: ErrNilMatrix, ErrInvalidState, ErrOutOfRange, ErrNaNInf.
// Complexity: amortized O(1).
func (m *Matrix) InsertEntry(row, col int, v float64) error {
	if err := ValidateTriplet(m); err != nil {
		return sparseErrorf(opInsertEntry, err)
	}
	if err := ValidateIndex(row, col); err != nil {
		return sparseErrorf(opInsertEntry, err)
	}
	if m.checkFinite {
		if err := ValidateFinite(v); err != nil {
			return sparseErrorf(opInsertEntry, err)
		}
	}
	m.trip.row = append(m.trip.row, row)
	m.trip.col = append(m.trip.col, col)
	m.trip.val = append(m.trip.val, v)
	// Grow-only extent: writing at or past the border enlarges the matrix.
	if row >= m.rows {
		m.rows = row + 1
	}
	if col >= m.cols {
		m.cols = col + 1
	}
	return nil
}

// InsertSubmatrix appends every element of a dense block at offset
// (row, col): destination (row+r, col+c) receives src(r, c) for the whole
// block extent, zeros included. The extent grows to fit the block's far
// corner. The insert is atomic: on any failure the matrix is exactly as it
// was before the call.
//
// Implementation:
//   - Stage 1 (Validate): form, offset, non-nil source.
//   - Stage 2 (Append): all block entries in row-major order; a failure
//     truncates the appended prefix back to the pre-call length.
//   - Stage 3 (Grow): extend the extent once, from the far corner.
//
// Errors: ErrNilMatrix, ErrInvalidState, ErrOutOfRange, ErrNaNInf, plus any
// error surfaced by the source's At.
// Complexity: O(blockRows·blockCols) appended entries.
func (m *Matrix) InsertSubmatrix(row, col int, src DenseSource) error {
	if err := ValidateTriplet(m); err != nil {
		return sparseErrorf(opInsertSubmatrix, err)
	}
	if err := ValidateIndex(row, col); err != nil {
		return sparseErrorf(opInsertSubmatrix, err)
	}
	if src == nil {
		return sparseErrorf(opInsertSubmatrix, ErrNilMatrix)
	}

	var (
		br, bc = src.Rows(), src.Cols()
		before = len(m.trip.val) // rollback point for atomicity
		r, c   int
		v      float64
		err    error
	)
	for r = 0; r < br; r++ {
		for c = 0; c < bc; c++ {
			if v, err = src.At(r, c); err != nil {
				err = sparseErrorf(opInsertSubmatrix, fmt.Errorf("At(%d,%d): %w", r, c, err))
				break
			}
			if m.checkFinite {
				if err = ValidateFinite(v); err != nil {
					err = sparseErrorf(opInsertSubmatrix, err)
					break
				}
			}
			m.trip.row = append(m.trip.row, row+r)
			m.trip.col = append(m.trip.col, col+c)
			m.trip.val = append(m.trip.val, v)
		}
		if err != nil {
			break
		}
	}
	if err != nil {
		m.trip.row = m.trip.row[:before]
		m.trip.col = m.trip.col[:before]
		m.trip.val = m.trip.val[:before]
		return err
	}
	if br > 0 && bc > 0 {
		if row+br > m.rows {
			m.rows = row + br
		}
		if col+bc > m.cols {
			m.cols = col + bc
		}
	}
	return nil
}

// SetRows grows the row extent to n. Shrinking is rejected: stored entries
// or downstream structural references may already depend on the current
// extent. Valid in both storage forms.
//
// Errors: ErrNilMatrix, ErrShrink. Complexity: O(1).
func (m *Matrix) SetRows(n int) error {
	if err := ValidateNotNil(m); err != nil {
		return sparseErrorf(opSetRows, err)
	}
	if n < m.rows {
		return sparseErrorf(opSetRows, ErrShrink)
	}
	m.rows = n
	return nil
}

// SetCols grows the column extent to n. Shrinking is rejected. In
// compressed form the column pointers extend with empty columns so the
// structural invariants keep holding.
//
// Errors: ErrNilMatrix, ErrShrink.
// Complexity: O(1) in triplet form, O(growth) in compressed form.
func (m *Matrix) SetCols(n int) error {
	if err := ValidateNotNil(m); err != nil {
		return sparseErrorf(opSetCols, err)
	}
	if n < m.cols {
		return sparseErrorf(opSetCols, ErrShrink)
	}
	if m.csc != nil && n > m.cols {
		nnz := m.csc.colPtr[m.cols]
		var j int
		for j = m.cols; j < n; j++ {
			m.csc.colPtr = append(m.csc.colPtr, nnz)
		}
	}
	m.cols = n
	return nil
}

// Clear drops every stored entry and returns the matrix to an empty triplet
// form, whatever form it was in. The extent is preserved: a cleared matrix
// is ready for reassembly at the same shape (use NewTriplet for a fresh
// shape). Clearing nil is a no-op.
// Complexity: O(1); old buffers are released to the collector.
func (m *Matrix) Clear() {
	if m == nil {
		return
	}
	m.csc = nil
	m.trip = &tripletPayload{
		row: make([]int, 0, DefaultCapacity),
		col: make([]int, 0, DefaultCapacity),
		val: make([]float64, 0, DefaultCapacity),
	}
}
