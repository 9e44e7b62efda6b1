// SPDX-License-Identifier: MIT
// Package sparse: sentinel error set (unified, consistent).
// This file defines ONLY package-level sentinel errors used across the
// sparse package. All operations MUST return these sentinels and tests MUST
// check them via errors.Is. No operation panics on user-triggered error
// conditions; panics are reserved for programmer errors (option
// constructors with nonsensical parameters).

package sparse

import "errors"

// NOTE ON NAMING & PREFIXING
// --------------------------
// Every message is prefixed with "sparse: ..." for consistency and to allow
// easy grepping across logs. DO NOT wrap these sentinels when returning them
// directly from validators; entry points add an operation tag with
// fmt.Errorf("op: %w", err) so callers still match via errors.Is.

var (
	// ErrNilMatrix indicates that a nil *Matrix (receiver or argument) or a
	// nil required input (dense source, vector) was used.
	ErrNilMatrix = errors.New("sparse: nil matrix")

	// ErrInvalidState indicates an operation that is illegal in the matrix's
	// current storage form, e.g. InsertEntry after Compress, or Add on a
	// triplet operand. The zero value of Matrix (no form at all) also trips
	// this sentinel.
	ErrInvalidState = errors.New("sparse: operation illegal in current storage form")

	// ErrDimensionMismatch indicates incompatible extents between operands:
	// Add with different shapes, Mul where a.Cols != b.Rows, or a vector of
	// the wrong length.
	ErrDimensionMismatch = errors.New("sparse: dimension mismatch")

	// ErrOutOfRange indicates a negative or otherwise unusable index.
	// Indices beyond the current extent are NOT errors on insertion paths —
	// the extent grows instead (see InsertEntry).
	ErrOutOfRange = errors.New("sparse: index out of range")

	// ErrNaNInf signals a NaN or ±Inf value where the finite-value policy
	// requires finite input (ingestion, raw adoption, scaling).
	ErrNaNInf = errors.New("sparse: NaN or Inf encountered")

	// ErrBadShape is returned when a requested extent is invalid (rows or
	// cols < 1) or when adopted raw arrays are structurally inconsistent.
	ErrBadShape = errors.New("sparse: invalid shape")

	// ErrShrink is returned by SetRows/SetCols when the requested extent is
	// below the current one. The extent may only grow.
	ErrShrink = errors.New("sparse: extent may grow but never shrink")

	// ErrAllocation is returned when a computed buffer size cannot be
	// represented (overflow guards on result growth). A true out-of-memory
	// condition is a runtime panic in Go and is not modeled as a
	// recoverable error.
	ErrAllocation = errors.New("sparse: buffer allocation failed")
)
