// SPDX-License-Identifier: MIT
// Package sparse: gonum interop. gonum's mat types are the lingua franca
// for dense numerics in Go; FromGonum adapts any mat.Matrix to the
// DenseSource contract and ToGonum exports the dense expansion.

package sparse

import "gonum.org/v1/gonum/mat"

const (
	opFromGonum = "FromGonum"
	opToGonum   = "ToGonum"
)

// gonumSource adapts a mat.Matrix to the DenseSource contract. gonum
// panics on out-of-range access; the conversion sweeps never leave the
// declared extent, so At can return a nil error unconditionally.
type gonumSource struct {
	m mat.Matrix
}

func (g gonumSource) Rows() int { r, _ := g.m.Dims(); return r }

func (g gonumSource) Cols() int { _, c := g.m.Dims(); return c }

func (g gonumSource) At(row, col int) (float64, error) { return g.m.At(row, col), nil }

// FromGonum builds a compressed matrix from any gonum mat.Matrix, dropping
// elements under the configured tolerance (exact zeros by default). The
// conversion funnels through the DenseSource contract, so the semantics
// are exactly those of NewFromDense.
//
// Errors: ErrNilMatrix, ErrBadShape, ErrNaNInf.
// Complexity: O(rows·cols).
func FromGonum(src mat.Matrix, opts ...Option) (*Matrix, error) {
	if src == nil {
		return nil, sparseErrorf(opFromGonum, ErrNilMatrix)
	}
	m, err := NewFromDense(gonumSource{m: src}, opts...)
	if err != nil {
		return nil, sparseErrorf(opFromGonum, err)
	}
	return m, nil
}

// ToGonum expands the matrix into a gonum *mat.Dense (both storage forms;
// triplet duplicates sum). The result shares no storage with the receiver.
//
// Errors: ErrNilMatrix, ErrInvalidState.
// Complexity: O(rows·cols + nnz).
func (m *Matrix) ToGonum() (*mat.Dense, error) {
	d, err := m.ToDense()
	if err != nil {
		return nil, sparseErrorf(opToGonum, err)
	}
	return mat.NewDense(d.r, d.c, d.data), nil
}
