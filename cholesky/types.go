// Package cholesky: the Factorization handle and its internal state.
package cholesky

import "github.com/yangyi-ioa/sparsemat/sparse"

// state tracks the handle lifecycle. A handle is born factored (New fails
// otherwise) and can only degrade: a numerically failed Update moves it to
// stateFailed, after which every numeric accessor returns ErrNotFactorized
// until a fresh New succeeds.
type state int

const (
	stateEmpty state = iota // zero value: unusable
	stateFactored
	stateFailed
)

// symbolic is the pattern-level result shared by every refactorization:
// the fill-reducing permutation, the elimination tree of the permuted
// matrix, and the factor's fixed column layout. Values never appear here.
type symbolic struct {
	perm   []int // perm[k] = original index eliminated at step k; nil ⇒ natural
	pinv   []int // inverse permutation; nil ⇒ natural
	parent []int // elimination tree, -1 at roots
	colPtr []int // column pointers of L (len n+1); colPtr[n] == nnz(L)
}

// numeric holds the factor L in compressed-column layout with the diagonal
// entry FIRST within every column. The triangular solvers and the
// up-looking pass both rely on that placement.
type numeric struct {
	colPtr []int
	rowIdx []int
	val    []float64
}

// Factorization is a single-owner handle for one sparse Cholesky
// factorization. It is created by New, must not be copied (the embedded
// buffers are exclusively owned), and holds a non-owning reference to the
// most recent source matrix, consulted only when Update validates
// structure. The zero value is unusable; its methods return
// ErrNotFactorized.
type Factorization struct {
	n   int
	st  state
	sym *symbolic
	num *numeric       // the factor L; nil after a failed Update
	src *sparse.Matrix // non-owning structural witness for Update
}

// N returns the system dimension, 0 for the zero value.
func (f *Factorization) N() int {
	if f == nil {
		return 0
	}
	return f.n
}

// usable gates every numeric accessor on the handle state.
func (f *Factorization) usable() error {
	if f == nil || f.st != stateFactored || f.num == nil {
		return ErrNotFactorized
	}
	return nil
}
