// SPDX-License-Identifier: MIT
// Package: sparse
//
// Purpose:
//   - Provide a single, canonical source of truth for common validation
//     checks (nil, storage form, shape compatibility, index/value policy).
//   - Keep kernels and facades minimal by delegating these checks here.
//   - Return sentinel errors wrapped once with the validator tag, so entry
//     points can add their operation tag uniformly on top.
//
// Determinism & Performance:
//   - All checks are pure, deterministic, and allocation-free.
//
// Note:
//   - Composite validators follow a fixed sequence (NotNil → form → shape).

package sparse

import (
	"fmt"
	"math"
)

// validatorErrorf wraps an underlying sentinel with the given validator tag.
// Used internally to maintain consistent labeling of violations.
func validatorErrorf(tag string, err error) error {
	return fmt.Errorf("%s: %w", tag, err)
}

// ValidateNotNil ensures the matrix reference is non-nil.
// Returns ErrNilMatrix when m == nil. Complexity: O(1).
func ValidateNotNil(m *Matrix) error {
	if m == nil {
		return validatorErrorf("ValidateNotNil", ErrNilMatrix)
	}
	return nil
}

// ValidateTriplet — composite: NotNil → triplet form.
// Errors: ErrNilMatrix, ErrInvalidState. Complexity: O(1).
func ValidateTriplet(m *Matrix) error {
	if err := ValidateNotNil(m); err != nil {
		return validatorErrorf("ValidateTriplet", err)
	}
	if m.trip == nil {
		return validatorErrorf("ValidateTriplet", ErrInvalidState)
	}
	return nil
}

// ValidateCompressed — composite: NotNil → compressed form.
// Errors: ErrNilMatrix, ErrInvalidState. Complexity: O(1).
func ValidateCompressed(m *Matrix) error {
	if err := ValidateNotNil(m); err != nil {
		return validatorErrorf("ValidateCompressed", err)
	}
	if m.csc == nil {
		return validatorErrorf("ValidateCompressed", ErrInvalidState)
	}
	return nil
}

// ValidateBinaryCompressed — composite: Compressed(a) → Compressed(b).
// Both operands of a binary kernel must already be in compressed form.
func ValidateBinaryCompressed(a, b *Matrix) error {
	if err := ValidateCompressed(a); err != nil {
		return validatorErrorf("ValidateBinaryCompressed", err)
	}
	if err := ValidateCompressed(b); err != nil {
		return validatorErrorf("ValidateBinaryCompressed", err)
	}
	return nil
}

// ValidateSameShape ensures a and b have equal extent. Assumes both are
// non-nil (caller must ensure). Errors: ErrDimensionMismatch. O(1).
func ValidateSameShape(a, b *Matrix) error {
	if a.rows != b.rows {
		return validatorErrorf("ValidateSameShape: Rows", ErrDimensionMismatch)
	}
	if a.cols != b.cols {
		return validatorErrorf("ValidateSameShape: Columns", ErrDimensionMismatch)
	}
	return nil
}

// ValidateMulCompatible ensures the inner dimensions agree for a matrix
// product: a.Cols == b.Rows. Errors: ErrDimensionMismatch. O(1).
func ValidateMulCompatible(a, b *Matrix) error {
	if a.cols != b.rows {
		return validatorErrorf("ValidateMulCompatible", ErrDimensionMismatch)
	}
	return nil
}

// ValidateVecLen ensures the vector is non-nil with exactly n elements.
// Errors: ErrNilMatrix (nil slice), ErrDimensionMismatch (length). O(1).
func ValidateVecLen(x []float64, n int) error {
	if x == nil {
		return validatorErrorf("ValidateVecLen", ErrNilMatrix)
	}
	if len(x) != n {
		return validatorErrorf("ValidateVecLen", ErrDimensionMismatch)
	}
	return nil
}

// ValidateIndex ensures row and col are non-negative. Indices beyond the
// current extent are legal on insertion paths (the extent grows). O(1).
func ValidateIndex(row, col int) error {
	if row < 0 || col < 0 {
		return validatorErrorf("ValidateIndex", ErrOutOfRange)
	}
	return nil
}

// ValidateFinite rejects NaN and ±Inf under the finite-value policy. O(1).
func ValidateFinite(v float64) error {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return validatorErrorf("ValidateFinite", ErrNaNInf)
	}
	return nil
}

// ValidateShape ensures a requested extent is strictly positive.
// Errors: ErrBadShape. O(1).
func ValidateShape(rows, cols int) error {
	if rows <= 0 || cols <= 0 {
		return validatorErrorf("ValidateShape", ErrBadShape)
	}
	return nil
}
