// Package cholesky: functional configuration. Ordering selects the
// fill-reducing strategy of the symbolic phase; the symmetry check is
// opt-in diagnostics for untrusted inputs.
package cholesky

import "math"

// Ordering selects the column permutation computed during symbolic
// analysis.
type Ordering int

const (
	// OrderMinDegree applies a greedy minimum-degree ordering with
	// smallest-index tie-breaking. Deterministic, and usually far less
	// fill than the natural order.
	OrderMinDegree Ordering = iota

	// OrderNatural factorizes in the given order (identity permutation).
	OrderNatural
)

const (
	// DefaultOrdering is the fill-reducing strategy used when no
	// WithOrdering option is given.
	DefaultOrdering = OrderMinDegree

	// DefaultSymmetryTol bounds |A(i,j) - A(j,i)| when the symmetry check
	// runs with a zero tolerance argument.
	DefaultSymmetryTol = 0.0
)

const (
	panicUnknownOrdering = "cholesky: WithOrdering: unknown ordering"
	panicSymTolInvalid   = "cholesky: WithSymmetryCheck: tol must be finite, non-negative"
)

// Option mutates internal options. Constructors panic only on nonsensical
// parameters (programmer error), never on data.
type Option func(*Options)

// Options stores the effective configuration after applying setters.
type Options struct {
	ordering Ordering // fill-reducing strategy; DefaultOrdering
	checkSym bool     // opt-in symmetry verification
	symTol   float64  // per-entry asymmetry bound when checkSym is set
}

// WithOrdering selects the fill-reducing strategy for symbolic analysis.
// Panics on an unknown Ordering value.
func WithOrdering(ord Ordering) Option {
	if ord != OrderMinDegree && ord != OrderNatural {
		panic(panicUnknownOrdering)
	}
	return func(o *Options) { o.ordering = ord }
}

// WithSymmetryCheck enables an O(nnz) verification that the input is
// symmetric within tol before any factorization work; entries present on
// only one side compare against zero. Off by default: the engine trusts
// its caller and reads only the upper triangle.
// Panics when tol is NaN, ±Inf or negative.
func WithSymmetryCheck(tol float64) Option {
	if math.IsNaN(tol) || math.IsInf(tol, 0) || tol < 0 {
		panic(panicSymTolInvalid)
	}
	return func(o *Options) {
		o.checkSym = true
		o.symTol = tol
	}
}

// gatherOptions applies user setters over defaults (last-writer-wins).
func gatherOptions(user ...Option) Options {
	o := Options{
		ordering: DefaultOrdering,
		checkSym: false,
		symTol:   DefaultSymmetryTol,
	}
	for _, set := range user {
		set(&o)
	}
	return o
}
