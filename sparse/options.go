// SPDX-License-Identifier: MIT

// Package sparse: functional configuration for matrix construction and the
// numeric ingestion policy. This file defines:
//   - Option / Options — functional options with internal state,
//   - documented defaults (constants),
//   - WithX constructors with strong validation (panic on nonsense),
//   - gatherOptions (internal) that resolves setters over defaults.
//
// Design goals:
//   - Deterministic behavior: no global state, no implicit randomness.
//   - No dead switches: each flag impacts behavior and is covered by tests.
//   - Safe by construction: panic only on invalid parameters (programmer
//     error), never on data.

package sparse

import "math"

// ---------- Defaults (single source of truth) ----------

const (
	// DefaultCapacity is the initial entry capacity reserved by NewTriplet
	// when no WithCapacity hint is given.
	DefaultCapacity = 8

	// DefaultValidateFinite is the finite-value policy applied on ingestion
	// (InsertEntry, InsertSubmatrix, dense scans, raw adoption). NaN and
	// ±Inf are rejected with ErrNaNInf while the policy holds.
	DefaultValidateFinite = true

	// DefaultDropTolerance is the magnitude at or below which a dense source
	// element is treated as structurally zero by NewFromDense / FromGonum.
	// Zero means "exact zeros only": any nonzero survives, however small.
	DefaultDropTolerance = 0.0
)

// ---------- Internal panic messages (no magic strings) ----------

const (
	panicCapacityNegative = "sparse: WithCapacity: capacity must be >= 0"
	panicDropTolInvalid   = "sparse: WithDropTolerance: tol must be finite, non-negative"
)

// ---------- Public option type (functional) ----------

// Option mutates internal construction options. Safe to apply repeatedly
// (idempotent); last writer wins. Constructors MUST panic only on
// nonsensical values (programmer error).
type Option func(*Options)

// Options stores the effective configuration after applying Option setters.
// Fields are unexported; public entry points accept ...Option and resolve
// them via gatherOptions.
type Options struct {
	capacity       int     // entry preallocation hint; DefaultCapacity
	validateFinite bool    // finite-value policy; DefaultValidateFinite
	dropTol        float64 // dense-scan zero threshold; DefaultDropTolerance
}

// WithCapacity reserves room for n entries up front, so assembly of a
// matrix with a known entry count never reallocates.
//
// Inputs:
//   - n: expected number of stored entries (>= 0).
//
// Returns: Option. Panics when n < 0 (programmer error).
// Complexity: O(1) here; O(n) reserved memory at construction.
func WithCapacity(n int) Option {
	if n < 0 {
		panic(panicCapacityNegative)
	}
	return func(o *Options) { o.capacity = n }
}

// WithNoFiniteCheck disables NaN/±Inf rejection on ingestion. Use only when
// the caller guarantees finiteness upstream or deliberately traffics in
// sentinel values; every downstream kernel assumes finite data.
func WithNoFiniteCheck() Option {
	return func(o *Options) { o.validateFinite = false }
}

// WithDropTolerance treats dense elements with |v| <= tol as structural
// zeros during dense→sparse conversion (NewFromDense, FromGonum). It has no
// effect on triplet assembly: an explicitly inserted zero is always stored.
//
// Returns: Option. Panics when tol is NaN, ±Inf or negative.
func WithDropTolerance(tol float64) Option {
	if math.IsNaN(tol) || math.IsInf(tol, 0) || tol < 0 {
		panic(panicDropTolInvalid)
	}
	return func(o *Options) { o.dropTol = tol }
}

// gatherOptions applies user-provided setters on top of defaults.
func gatherOptions(user ...Option) Options {
	o := Options{
		capacity:       DefaultCapacity,
		validateFinite: DefaultValidateFinite,
		dropTol:        DefaultDropTolerance,
	}
	for _, set := range user {
		set(&o) // apply in order; last-writer-wins semantics
	}
	return o
}
