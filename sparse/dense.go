// SPDX-License-Identifier: MIT
// Package sparse: dense interop. Dense is a minimal row-major matrix that
// satisfies DenseSource; it exists as a conversion source/target for the
// sparse engine, not as a dense-algebra layer. ToDense expands either
// storage form; WriteDenseText/SaveDenseText dump the expansion as text.

package sparse

import (
	"bufio"
	"fmt"
	"io"
	"os"
)

const (
	opToDense        = "ToDense"
	opWriteDenseText = "WriteDenseText"
	opSaveDenseText  = "SaveDenseText"
)

// denseErrorf wraps an underlying error with Dense method context.
func denseErrorf(method string, row, col int, err error) error {
	return fmt.Errorf("Dense.%s(%d,%d): %w", method, row, col, err)
}

// Dense is a row-major matrix of float64 values.
// r is rows, c is columns, and data holds r*c elements in row-major order.
type Dense struct {
	r, c int       // number of rows and columns
	data []float64 // flat backing storage, length == r*c
}

// NewDense creates an r×c Dense matrix initialized to zeros.
// Stage 1 (Validate): ensure rows and cols >= 1.
// Stage 2 (Prepare): allocate the flat backing slice.
// Complexity: O(rows·cols) time and memory.
func NewDense(rows, cols int) (*Dense, error) {
	if err := ValidateShape(rows, cols); err != nil {
		return nil, err
	}
	return &Dense{r: rows, c: cols, data: make([]float64, rows*cols)}, nil
}

// NewDenseFromRows builds a Dense from row slices; every row must have the
// same positive length. Convenient for block literals in assembly code and
// tests.
// Errors: ErrBadShape (empty or ragged input). Complexity: O(rows·cols).
func NewDenseFromRows(rows [][]float64) (*Dense, error) {
	if len(rows) == 0 || len(rows[0]) == 0 {
		return nil, ErrBadShape
	}
	var (
		r, c = len(rows), len(rows[0])
		d    = &Dense{r: r, c: c, data: make([]float64, r*c)}
		i    int
	)
	for i = 0; i < r; i++ {
		if len(rows[i]) != c {
			return nil, ErrBadShape
		}
		copy(d.data[i*c:(i+1)*c], rows[i])
	}
	return d, nil
}

// Rows returns the number of rows. Complexity: O(1).
func (m *Dense) Rows() int { return m.r }

// Cols returns the number of columns. Complexity: O(1).
func (m *Dense) Cols() int { return m.c }

// indexOf computes the flat index for (row, col) or returns ErrOutOfRange.
func (m *Dense) indexOf(method string, row, col int) (int, error) {
	if row < 0 || row >= m.r {
		return 0, denseErrorf(method, row, col, ErrOutOfRange)
	}
	if col < 0 || col >= m.c {
		return 0, denseErrorf(method, row, col, ErrOutOfRange)
	}
	return row*m.c + col, nil
}

// At retrieves the element at (row, col).
// Complexity: O(1).
func (m *Dense) At(row, col int) (float64, error) {
	idx, err := m.indexOf("At", row, col)
	if err != nil {
		return 0, err
	}
	return m.data[idx], nil
}

// Set assigns value v at (row, col).
// Complexity: O(1).
func (m *Dense) Set(row, col int, v float64) error {
	idx, err := m.indexOf("Set", row, col)
	if err != nil {
		return err
	}
	m.data[idx] = v
	return nil
}

// Clone returns a deep copy of the Dense matrix.
// Complexity: O(rows·cols).
func (m *Dense) Clone() *Dense {
	cp := make([]float64, len(m.data))
	copy(cp, m.data)
	return &Dense{r: m.r, c: m.c, data: cp}
}

// String renders the matrix row by row, for debugging.
func (m *Dense) String() string {
	var (
		s    string
		i, j int
	)
	for i = 0; i < m.r; i++ {
		s += "["
		for j = 0; j < m.c; j++ {
			s += fmt.Sprintf("%g", m.data[i*m.c+j])
			if j < m.c-1 {
				s += ", "
			}
		}
		s += "]\n"
	}
	return s
}

// ToDense expands the matrix into a freshly allocated Dense. Both storage
// forms expand; duplicate triplet coordinates SUM into their target cell,
// mirroring the coordinate semantics applied by Compress.
//
// Errors: ErrNilMatrix, ErrInvalidState (zero-value matrix).
// Complexity: O(rows·cols + nnz).
func (m *Matrix) ToDense() (*Dense, error) {
	if err := ValidateNotNil(m); err != nil {
		return nil, sparseErrorf(opToDense, err)
	}
	if m.trip == nil && m.csc == nil {
		return nil, sparseErrorf(opToDense, ErrInvalidState)
	}
	d, err := NewDense(m.rows, m.cols)
	if err != nil {
		return nil, sparseErrorf(opToDense, err)
	}
	m.EachNonZero(func(i, j int, v float64) {
		d.data[i*d.c+j] += v // += folds triplet duplicates
	})
	return d, nil
}

// WriteDenseText writes the dense expansion as text: one row per line,
// values space-separated in %g form. Works in either storage form.
//
// Errors: ErrNilMatrix, ErrInvalidState, plus any writer error.
// Complexity: O(rows·cols).
func (m *Matrix) WriteDenseText(w io.Writer) error {
	d, err := m.ToDense()
	if err != nil {
		return sparseErrorf(opWriteDenseText, err)
	}
	var i, j int
	for i = 0; i < d.r; i++ {
		for j = 0; j < d.c; j++ {
			if j > 0 {
				if _, err = io.WriteString(w, " "); err != nil {
					return sparseErrorf(opWriteDenseText, err)
				}
			}
			if _, err = fmt.Fprintf(w, "%g", d.data[i*d.c+j]); err != nil {
				return sparseErrorf(opWriteDenseText, err)
			}
		}
		if _, err = io.WriteString(w, "\n"); err != nil {
			return sparseErrorf(opWriteDenseText, err)
		}
	}
	return nil
}

// SaveDenseText writes the dense expansion to the file at path
// (create/truncate, buffered). Failures carry their cause: conversion
// errors, writer errors and file-system errors all surface.
//
// Errors: as WriteDenseText, plus any *os.PathError from the file system.
func (m *Matrix) SaveDenseText(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return sparseErrorf(opSaveDenseText, err)
	}
	bw := bufio.NewWriter(f)
	if err = m.WriteDenseText(bw); err != nil {
		f.Close() // best effort; the write error is the primary failure
		return err
	}
	if err = bw.Flush(); err != nil {
		f.Close()
		return sparseErrorf(opSaveDenseText, err)
	}
	if err = f.Close(); err != nil {
		return sparseErrorf(opSaveDenseText, err)
	}
	return nil
}
