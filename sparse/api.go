// SPDX-License-Identifier: MIT
// Package sparse: convenience constructors for common compressed shapes.

package sparse

const (
	opIdentity = "Identity"
	opDiagonal = "Diagonal"
)

// Identity returns the n×n identity in compressed form: one entry of 1.0
// per column, already sorted.
//
// Errors: ErrBadShape (n < 1). Complexity: O(n).
func Identity(n int) (*Matrix, error) {
	if err := ValidateShape(n, n); err != nil {
		return nil, sparseErrorf(opIdentity, err)
	}
	var (
		colPtr = make([]int, n+1)
		rowIdx = make([]int, n)
		val    = make([]float64, n)
		j      int
	)
	for j = 0; j < n; j++ {
		colPtr[j] = j
		rowIdx[j] = j
		val[j] = 1
	}
	colPtr[n] = n
	return &Matrix{
		rows: n, cols: n,
		csc:         &cscPayload{colPtr: colPtr, rowIdx: rowIdx, val: val},
		checkFinite: DefaultValidateFinite,
	}, nil
}

// Diagonal returns diag(d) in compressed form. Every element of d is
// stored, zeros included, so the pattern is always the full diagonal.
//
// Errors: ErrBadShape (empty d), ErrNaNInf. Complexity: O(len(d)).
func Diagonal(d []float64) (*Matrix, error) {
	n := len(d)
	if err := ValidateShape(n, n); err != nil {
		return nil, sparseErrorf(opDiagonal, err)
	}
	var (
		colPtr = make([]int, n+1)
		rowIdx = make([]int, n)
		val    = make([]float64, n)
		j      int
	)
	for j = 0; j < n; j++ {
		if err := ValidateFinite(d[j]); err != nil {
			return nil, sparseErrorf(opDiagonal, err)
		}
		colPtr[j] = j
		rowIdx[j] = j
		val[j] = d[j]
	}
	colPtr[n] = n
	return &Matrix{
		rows: n, cols: n,
		csc:         &cscPayload{colPtr: colPtr, rowIdx: rowIdx, val: val},
		checkFinite: DefaultValidateFinite,
	}, nil
}
