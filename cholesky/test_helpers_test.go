// Package cholesky_test contains fixtures shared by the factorization
// tests: small known systems, randomized SPD builders and dense compares.
package cholesky_test

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/yangyi-ioa/sparsemat/sparse"
)

// entry is one coordinate fixture element: (r, c) receives v.
type entry struct {
	r, c int
	v    float64
}

// compressed assembles entries into a rows×cols compressed matrix.
func compressed(t *testing.T, rows, cols int, entries []entry) *sparse.Matrix {
	t.Helper()
	m, err := sparse.NewTriplet(rows, cols)
	require.NoError(t, err)
	for _, e := range entries {
		require.NoError(t, m.InsertEntry(e.r, e.c, e.v))
	}
	require.NoError(t, m.Compress())

	return m
}

// spdPair returns the canonical 2×2 SPD system [[4,2],[2,3]] in its two
// accepted storages: full symmetric and upper triangle only.
func spdPair(t *testing.T) (full, upper *sparse.Matrix) {
	t.Helper()
	full = compressed(t, 2, 2, []entry{{0, 0, 4}, {0, 1, 2}, {1, 0, 2}, {1, 1, 3}})
	upper = compressed(t, 2, 2, []entry{{0, 0, 4}, {0, 1, 2}, {1, 1, 3}})

	return full, upper
}

// randomSPD builds an n×n symmetric positive-definite matrix in full
// storage: BᵀB for a random sparse B, shifted by n on the diagonal.
func randomSPD(t *testing.T, rng *rand.Rand, n, inserts int) *sparse.Matrix {
	t.Helper()
	b, err := sparse.NewTriplet(n, n)
	require.NoError(t, err)
	var k int
	for k = 0; k < inserts; k++ {
		require.NoError(t, b.InsertEntry(rng.Intn(n), rng.Intn(n), rng.Float64()*2-1))
	}
	require.NoError(t, b.Compress())
	bt, err := sparse.Transpose(b)
	require.NoError(t, err)
	btb, err := sparse.Mul(bt, b)
	require.NoError(t, err)
	shift := make([]float64, n)
	for k = 0; k < n; k++ {
		shift[k] = float64(n)
	}
	d, err := sparse.Diagonal(shift)
	require.NoError(t, err)
	a, err := sparse.Add(btb, d)
	require.NoError(t, err)

	return a
}

// denseOf expands m into a row-major grid.
func denseOf(t *testing.T, m *sparse.Matrix) [][]float64 {
	t.Helper()
	d, err := m.ToDense()
	require.NoError(t, err)
	out := make([][]float64, d.Rows())
	var (
		i, j int
		v    float64
	)
	for i = 0; i < d.Rows(); i++ {
		out[i] = make([]float64, d.Cols())
		for j = 0; j < d.Cols(); j++ {
			v, err = d.At(i, j)
			require.NoError(t, err)
			out[i][j] = v
		}
	}

	return out
}

// permutedDense returns PAPᵀ as a grid: cell (i,j) reads A[perm[i],perm[j]].
// A nil perm is the identity.
func permutedDense(t *testing.T, a *sparse.Matrix, perm []int) [][]float64 {
	t.Helper()
	da := denseOf(t, a)
	if perm == nil {
		return da
	}
	n := len(da)
	require.Len(t, perm, n)
	out := make([][]float64, n)
	var i, j int
	for i = 0; i < n; i++ {
		out[i] = make([]float64, n)
		for j = 0; j < n; j++ {
			out[i][j] = da[perm[i]][perm[j]]
		}
	}

	return out
}

// requireCloseGrid asserts two dense grids agree within eps, cell by cell.
func requireCloseGrid(t *testing.T, want, got [][]float64, eps float64) {
	t.Helper()
	require.Len(t, got, len(want))
	var i, j int
	for i = 0; i < len(want); i++ {
		require.Len(t, got[i], len(want[i]))
		for j = 0; j < len(want[i]); j++ {
			require.InDelta(t, want[i][j], got[i][j], eps, "cell (%d,%d)", i, j)
		}
	}
}

// requireFactorShape asserts the factor storage invariants: every column
// non-empty with its diagonal entry first and positive, then strictly
// increasing row indices.
func requireFactorShape(t *testing.T, l *sparse.Matrix) {
	t.Helper()
	colPtr, rowIdx, val, err := l.RawCSC()
	require.NoError(t, err)
	n := l.Cols()
	var j, p int
	for j = 0; j < n; j++ {
		require.Greater(t, colPtr[j+1], colPtr[j], "column %d is empty", j)
		require.Equal(t, j, rowIdx[colPtr[j]], "column %d diagonal placement", j)
		require.Greater(t, val[colPtr[j]], 0.0, "column %d pivot sign", j)
		for p = colPtr[j] + 1; p < colPtr[j+1]; p++ {
			require.Greater(t, rowIdx[p], rowIdx[p-1], "column %d row order", j)
		}
	}
}
