// SPDX-License-Identifier: MIT
// Compression-path tests: triplet → CSC conversion with duplicate folding,
// dense→sparse scans with drop tolerance, raw CSC adoption, and the raw
// zero-copy views.

package sparse_test

import (
	"math"
	"math/rand"
	"testing"

	"github.com/yangyi-ioa/sparsemat/sparse"
)

// ---------- 2.1 Compress ----------

func TestCompress_SumsDuplicates(t *testing.T) {
	t.Parallel()
	m := MustTriplet(t, 1, 1)
	MustInsert(t, m, 0, 0, 5.0)
	MustInsert(t, m, 0, 0, 3.0)
	MustCompress(t, m)
	if m.NNZ() != 1 {
		t.Fatalf("NNZ = %d; want 1", m.NNZ())
	}
	CompareDense(t, [][]float64{{8}}, m)
}

func TestCompress_DuplicatesCancelToStoredZero(t *testing.T) {
	t.Parallel()
	m := MustTriplet(t, 1, 1)
	MustInsert(t, m, 0, 0, 5.0)
	MustInsert(t, m, 0, 0, -5.0)
	MustCompress(t, m)
	// The coordinate stays stored even though its value summed to zero.
	if m.NNZ() != 1 {
		t.Fatalf("NNZ = %d; want 1", m.NNZ())
	}
	CompareDense(t, [][]float64{{0}}, m)
}

func TestCompress_WrongForm(t *testing.T) {
	t.Parallel()
	m := MustCompressed(t, 2, 2, []entry{{0, 0, 1}})
	AssertErrorIs(t, m.Compress(), sparse.ErrInvalidState)

	var nilM *sparse.Matrix
	AssertErrorIs(t, nilM.Compress(), sparse.ErrNilMatrix)
}

func TestCompress_EmptyTriplet(t *testing.T) {
	t.Parallel()
	m := MustTriplet(t, 3, 2)
	MustCompress(t, m)
	if !m.IsCompressed() || m.NNZ() != 0 {
		t.Fatalf("IsCompressed=%v NNZ=%d; want compressed with 0 entries", m.IsCompressed(), m.NNZ())
	}
	CompareDense(t, [][]float64{
		{0, 0},
		{0, 0},
	}, m)
}

func TestCompress_MatchesDenseAccumulation(t *testing.T) {
	t.Parallel()
	const (
		rows, cols = 7, 9
		inserts    = 120 // dense enough to force many duplicates
		seed       = 42
	)
	rng := rand.New(rand.NewSource(seed))
	m := MustTriplet(t, rows, cols)
	want := make([][]float64, rows)
	for i := range want {
		want[i] = make([]float64, cols)
	}
	var (
		k, r, c int
		v       float64
	)
	for k = 0; k < inserts; k++ {
		r, c = rng.Intn(rows), rng.Intn(cols)
		v = rng.Float64()*2 - 1
		MustInsert(t, m, r, c, v)
		want[r][c] += v
	}
	MustCompress(t, m)
	// Both sides fold duplicates in insertion order, so sums match exactly.
	CompareDense(t, want, m)
}

func TestCompress_Deterministic(t *testing.T) {
	t.Parallel()
	build := func() *sparse.Matrix {
		return MustCompressed(t, 3, 3, []entry{
			{2, 0, 1}, {0, 0, 2}, {1, 2, 3}, {2, 0, 4}, {0, 1, 5},
		})
	}
	a, b := build(), build()
	ap, ai, av, err := a.RawCSC()
	if err != nil {
		t.Fatalf("RawCSC(a): %v", err)
	}
	bp, bi, bv, err := b.RawCSC()
	if err != nil {
		t.Fatalf("RawCSC(b): %v", err)
	}
	if len(ap) != len(bp) || len(ai) != len(bi) {
		t.Fatalf("storage shapes differ: (%d,%d) vs (%d,%d)", len(ap), len(ai), len(bp), len(bi))
	}
	var i int
	for i = range ap {
		if ap[i] != bp[i] {
			t.Fatalf("colPtr[%d]: %d vs %d", i, ap[i], bp[i])
		}
	}
	for i = range ai {
		if ai[i] != bi[i] || av[i] != bv[i] {
			t.Fatalf("entry %d: (%d,%g) vs (%d,%g)", i, ai[i], av[i], bi[i], bv[i])
		}
	}
}

// ---------- 2.2 NewFromDense ----------

func TestNewFromDense_Basic(t *testing.T) {
	t.Parallel()
	d, err := sparse.NewDenseFromRows([][]float64{
		{1, 0, 2},
		{0, 3, 0},
		{4, 0, 5},
	})
	if err != nil {
		t.Fatalf("NewDenseFromRows: %v", err)
	}
	m, err := sparse.NewFromDense(d)
	if err != nil {
		t.Fatalf("NewFromDense: %v", err)
	}
	if !m.IsCompressed() || m.NNZ() != 5 {
		t.Fatalf("IsCompressed=%v NNZ=%d; want compressed with 5 entries", m.IsCompressed(), m.NNZ())
	}
	CompareDense(t, [][]float64{
		{1, 0, 2},
		{0, 3, 0},
		{4, 0, 5},
	}, m)
	assertSortedColumns(t, m)
}

func TestNewFromDense_DropTolerance(t *testing.T) {
	t.Parallel()
	d, err := sparse.NewDenseFromRows([][]float64{
		{0.1, 1},
		{-0.05, 0.5},
	})
	if err != nil {
		t.Fatalf("NewDenseFromRows: %v", err)
	}
	// |v| <= tol is dropped: the 0.1 boundary value goes too.
	m, err := sparse.NewFromDense(d, sparse.WithDropTolerance(0.1))
	if err != nil {
		t.Fatalf("NewFromDense: %v", err)
	}
	if m.NNZ() != 2 {
		t.Fatalf("NNZ = %d; want 2", m.NNZ())
	}
	CompareDense(t, [][]float64{
		{0, 1},
		{0, 0.5},
	}, m)
}

func TestNewFromDense_Errors(t *testing.T) {
	t.Parallel()
	_, err := sparse.NewFromDense(nil)
	AssertErrorIs(t, err, sparse.ErrNilMatrix)

	bad, err := sparse.NewDenseFromRows([][]float64{{1, math.Inf(-1)}})
	if err != nil {
		t.Fatalf("NewDenseFromRows: %v", err)
	}
	_, err = sparse.NewFromDense(bad)
	AssertErrorIs(t, err, sparse.ErrNaNInf)

	_, err = sparse.NewFromDense(faultySource{rows: 2, cols: 2, badR: 0, badC: 1})
	AssertErrorIs(t, err, errBoom)
}

// ---------- 2.3 NewCSC ----------

func TestNewCSC_ValidAndCopies(t *testing.T) {
	t.Parallel()
	colPtr := []int{0, 2, 3}
	rowIdx := []int{0, 2, 1}
	val := []float64{1, 4, -2}
	m, err := sparse.NewCSC(3, 2, colPtr, rowIdx, val)
	if err != nil {
		t.Fatalf("NewCSC: %v", err)
	}
	// Caller buffers must have been copied, not adopted.
	colPtr[1], rowIdx[0], val[0] = 99, 99, 99
	if m.NNZ() != 3 {
		t.Fatalf("NNZ = %d; want 3", m.NNZ())
	}
	CompareDense(t, [][]float64{
		{1, 0},
		{0, -2},
		{4, 0},
	}, m)
}

func TestNewCSC_Rejects(t *testing.T) {
	t.Parallel()
	cases := []struct {
		name   string
		colPtr []int
		rowIdx []int
		val    []float64
		want   error
	}{
		{"short colPtr", []int{0, 1}, []int{0}, []float64{1}, sparse.ErrBadShape},
		{"nonzero origin", []int{1, 1, 1}, nil, nil, sparse.ErrBadShape},
		{"decreasing colPtr", []int{0, 2, 1}, []int{0, 1}, []float64{1, 2}, sparse.ErrBadShape},
		{"length disagreement", []int{0, 1, 2}, []int{0, 1}, []float64{1}, sparse.ErrBadShape},
		{"row out of range", []int{0, 1, 1}, []int{3}, []float64{1}, sparse.ErrOutOfRange},
		{"negative row", []int{0, 1, 1}, []int{-1}, []float64{1}, sparse.ErrOutOfRange},
		{"duplicate row in column", []int{0, 2, 2}, []int{1, 1}, []float64{1, 2}, sparse.ErrBadShape},
		{"non-finite value", []int{0, 1, 1}, []int{0}, []float64{math.NaN()}, sparse.ErrNaNInf},
	}
	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			_, err := sparse.NewCSC(3, 2, tc.colPtr, tc.rowIdx, tc.val)
			AssertErrorIs(t, err, tc.want)
		})
	}
}

// ---------- 2.4 Raw views ----------

func TestRawViews_FormContract(t *testing.T) {
	t.Parallel()
	trip := MustTriplet(t, 2, 2)
	MustInsert(t, trip, 1, 0, 7)

	_, _, _, err := trip.RawCSC()
	AssertErrorIs(t, err, sparse.ErrInvalidState)

	row, col, val, err := trip.RawTriplet()
	if err != nil {
		t.Fatalf("RawTriplet: %v", err)
	}
	if len(row) != 1 || row[0] != 1 || col[0] != 0 || val[0] != 7 {
		t.Fatalf("RawTriplet view = (%v,%v,%v); want ([1],[0],[7])", row, col, val)
	}

	csc := MustCompressed(t, 2, 2, []entry{{1, 0, 7}})
	_, _, _, err = csc.RawTriplet()
	AssertErrorIs(t, err, sparse.ErrInvalidState)

	colPtr, rowIdx, cv, err := csc.RawCSC()
	if err != nil {
		t.Fatalf("RawCSC: %v", err)
	}
	if len(colPtr) != 3 || colPtr[2] != 1 || rowIdx[0] != 1 || cv[0] != 7 {
		t.Fatalf("RawCSC view = (%v,%v,%v); want ([0 1 1],[1],[7])", colPtr, rowIdx, cv)
	}

	var nilM *sparse.Matrix
	_, _, _, err = nilM.RawCSC()
	AssertErrorIs(t, err, sparse.ErrNilMatrix)
}

// assertSortedColumns fails unless every column of m carries strictly
// increasing row indices.
func assertSortedColumns(t *testing.T, m *sparse.Matrix) {
	t.Helper()
	colPtr, rowIdx, _, err := m.RawCSC()
	if err != nil {
		t.Fatalf("RawCSC: %v", err)
	}
	var j, p int
	for j = 0; j+1 < len(colPtr); j++ {
		for p = colPtr[j] + 1; p < colPtr[j+1]; p++ {
			if rowIdx[p-1] >= rowIdx[p] {
				t.Fatalf("column %d rows not strictly increasing: %d then %d", j, rowIdx[p-1], rowIdx[p])
			}
		}
	}
}
