// SPDX-License-Identifier: MIT
// Package sparse_test contains shared fixtures and assertion helpers.
//
// Purpose:
//   - Build small deterministic matrices through the public API only.
//   - Keep sentinel checks and dense comparisons in one place.

package sparse_test

import (
	"errors"
	"math"
	"testing"

	"github.com/yangyi-ioa/sparsemat/sparse"
)

// entry is one coordinate fixture element: (r, c) receives v.
type entry struct {
	r, c int
	v    float64
}

// errBoom is the failure injected by faultySource.
var errBoom = errors.New("boom")

// faultySource is a DenseSource whose At fails at one chosen cell. Every
// other cell reads as a small positive value, so partial sweeps stay finite.
type faultySource struct {
	rows, cols int
	badR, badC int
}

func (f faultySource) Rows() int { return f.rows }

func (f faultySource) Cols() int { return f.cols }

func (f faultySource) At(row, col int) (float64, error) {
	if row == f.badR && col == f.badC {
		return 0, errBoom
	}
	return float64(row*f.cols+col) + 1, nil
}

// MustTriplet allocates an empty rows×cols triplet store or fails the test.
func MustTriplet(t *testing.T, rows, cols int, opts ...sparse.Option) *sparse.Matrix {
	t.Helper()
	m, err := sparse.NewTriplet(rows, cols, opts...)
	if err != nil {
		t.Fatalf("NewTriplet(%d,%d): %v", rows, cols, err)
	}

	return m
}

// MustInsert appends one coordinate entry or fails the test.
func MustInsert(t *testing.T, m *sparse.Matrix, row, col int, v float64) {
	t.Helper()
	if err := m.InsertEntry(row, col, v); err != nil {
		t.Fatalf("InsertEntry(%d,%d,%v): %v", row, col, v, err)
	}
}

// MustCompress converts m to compressed-column form or fails the test.
func MustCompress(t *testing.T, m *sparse.Matrix) {
	t.Helper()
	if err := m.Compress(); err != nil {
		t.Fatalf("Compress: %v", err)
	}
}

// MustCompressed assembles entries into a rows×cols matrix and compresses
// it. The builder of choice for compressed fixtures.
func MustCompressed(t *testing.T, rows, cols int, entries []entry) *sparse.Matrix {
	t.Helper()
	m := MustTriplet(t, rows, cols)
	for _, e := range entries {
		MustInsert(t, m, e.r, e.c, e.v)
	}
	MustCompress(t, m)

	return m
}

// MustDenseAt reads d[i,j] or fails the test.
func MustDenseAt(t *testing.T, d *sparse.Dense, i, j int) float64 {
	t.Helper()
	v, err := d.At(i, j)
	if err != nil {
		t.Fatalf("At(%d,%d): %v", i, j, err)
	}

	return v
}

// CompareDense asserts the dense expansion of m equals want cell by cell
// with == (no tolerances). Use with integer-like fixtures only; float
// results go through CompareDenseClose.
func CompareDense(t *testing.T, want [][]float64, m *sparse.Matrix) {
	t.Helper()
	d, err := m.ToDense()
	if err != nil {
		t.Fatalf("ToDense: %v", err)
	}
	if d.Rows() != len(want) {
		t.Fatalf("Rows = %d; want %d", d.Rows(), len(want))
	}
	var i, j int // loop iterators
	var v float64
	for i = 0; i < d.Rows(); i++ {
		if len(want[i]) != d.Cols() {
			t.Fatalf("Cols[%d] = %d; want %d", i, d.Cols(), len(want[i]))
		}
		for j = 0; j < d.Cols(); j++ {
			if v = MustDenseAt(t, d, i, j); v != want[i][j] {
				t.Fatalf("m[%d,%d] = %v; want %v", i, j, v, want[i][j])
			}
		}
	}
}

// CompareDenseClose asserts |m[i,j] - want[i][j]| ≤ eps for every cell.
func CompareDenseClose(t *testing.T, want [][]float64, m *sparse.Matrix, eps float64) {
	t.Helper()
	d, err := m.ToDense()
	if err != nil {
		t.Fatalf("ToDense: %v", err)
	}
	if d.Rows() != len(want) {
		t.Fatalf("Rows = %d; want %d", d.Rows(), len(want))
	}
	var i, j int
	var v float64
	for i = 0; i < d.Rows(); i++ {
		if len(want[i]) != d.Cols() {
			t.Fatalf("Cols[%d] = %d; want %d", i, d.Cols(), len(want[i]))
		}
		for j = 0; j < d.Cols(); j++ {
			v = MustDenseAt(t, d, i, j)
			if math.Abs(v-want[i][j]) > eps {
				t.Fatalf("m[%d,%d] = %g; want %g (eps=%g)", i, j, v, want[i][j], eps)
			}
		}
	}
}

// SliceClose asserts |a[i]-b[i]| ≤ eps element-wise.
func SliceClose(t *testing.T, a, b []float64, eps float64) {
	t.Helper()
	if len(a) != len(b) {
		t.Fatalf("slice lengths: %d vs %d", len(a), len(b))
	}
	for i := range a {
		if math.Abs(a[i]-b[i]) > eps {
			t.Fatalf("idx=%d: got=%g want=%g (eps=%g)", i, a[i], b[i], eps)
		}
	}
}

// AssertErrorIs wraps errors.Is with consistent failure text.
func AssertErrorIs(t *testing.T, err, target error) {
	t.Helper()
	if !errors.Is(err, target) {
		t.Fatalf("want %v; got %v", target, err)
	}
}

// ExpectPanic asserts that fn() panics (any value).
func ExpectPanic(t *testing.T, fn func()) {
	t.Helper()
	defer func() {
		if recover() == nil {
			t.Fatalf("expected panic, got nil")
		}
	}()
	fn()
}

// ---------- bench helpers ----------

// bandedCompressed builds an n×n matrix with a symmetric band of half-width
// band, compressed. Deterministic values keep runs comparable.
func bandedCompressed(b *testing.B, n, band int) *sparse.Matrix {
	b.Helper()
	m, err := sparse.NewTriplet(n, n)
	if err != nil {
		b.Fatalf("NewTriplet(%d,%d): %v", n, n, err)
	}
	var i, j int
	for i = 0; i < n; i++ {
		for j = i - band; j <= i+band; j++ {
			if j < 0 || j >= n {
				continue
			}
			if err = m.InsertEntry(i, j, 1+float64((i+j)%7)); err != nil {
				b.Fatalf("InsertEntry(%d,%d): %v", i, j, err)
			}
		}
	}
	if err = m.Compress(); err != nil {
		b.Fatalf("Compress: %v", err)
	}

	return m
}

func onesVec(n int) []float64 {
	v := make([]float64, n)
	for i := 0; i < n; i++ {
		v[i] = 1
	}

	return v
}
