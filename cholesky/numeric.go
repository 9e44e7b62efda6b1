// Package cholesky: the numeric phase. Up-looking factorization computes
// one row of L per step: pattern from the elimination tree, values from a
// sparse triangular solve against the already-finished columns.
package cholesky

import "math"

// factorize runs the up-looking numeric pass over C = triu(P·A·Pᵀ) using
// the fixed column layout from symbolic analysis. Returns
// ErrNotPositiveDefinite on the first non-positive (or NaN) pivot.
//
// Per step k (row k of L):
//   - Stage 1 (Reach): the pattern of row k via ereach — the columns j < k
//     the triangular solve touches, in dependency order.
//   - Stage 2 (Scatter): column k of C (rows ≤ k) into the accumulator x;
//     the diagonal seed d = C(k,k).
//   - Stage 3 (Solve): for each pattern column j: l_kj = x[j] / L(j,j),
//     push j's column updates through x, fold l_kj² out of d, and append
//     l_kj to column j at its cursor.
//   - Stage 4 (Pivot): d must stay positive; L(k,k) = sqrt(d) opens
//     column k with its diagonal in the first slot.
//
// The column cursors never overrun: the symbolic counts come from the same
// ereach replay, so each column receives exactly the entries it was sized
// for. After every step x returns to all-zero — scattered entries are
// consumed by the solve, and the solve's own fill stays inside the reach.
//
// Complexity: O(flops(L)) time, O(n) workspace.
func factorize(n int, cColPtr, cRowIdx []int, cVal []float64, sym *symbolic) (*numeric, error) {
	var (
		lnz = sym.colPtr[n]
		num = &numeric{
			colPtr: make([]int, n+1),
			rowIdx: make([]int, lnz),
			val:    make([]float64, lnz),
		}
		cursor = make([]int, n)     // next free slot per column of L
		x      = make([]float64, n) // dense accumulator for row k
		stack  = make([]int, n)
		marked = make([]bool, n)

		k, p, top, j, q int
		lkj, d          float64
	)
	copy(num.colPtr, sym.colPtr)
	copy(cursor, sym.colPtr[:n])

	for k = 0; k < n; k++ {
		// Stage 1: row pattern.
		top = ereach(cColPtr, cRowIdx, k, sym.parent, stack, marked)

		// Stage 2: scatter C(:,k), rows ≤ k; lift the diagonal seed.
		for p = cColPtr[k]; p < cColPtr[k+1]; p++ {
			if cRowIdx[p] <= k {
				x[cRowIdx[p]] = cVal[p]
			}
		}
		d = x[k]
		x[k] = 0

		// Stage 3: sparse triangular solve along the pattern.
		for ; top < n; top++ {
			j = stack[top]
			lkj = x[j] / num.val[num.colPtr[j]] // L(j,j) sits first in column j
			x[j] = 0
			for p = num.colPtr[j] + 1; p < cursor[j]; p++ {
				x[num.rowIdx[p]] -= num.val[p] * lkj
			}
			d -= lkj * lkj
			q = cursor[j]
			cursor[j]++
			num.rowIdx[q] = k
			num.val[q] = lkj
		}

		// Stage 4: pivot. The negated comparison also rejects a NaN d.
		if !(d > 0) {
			return nil, ErrNotPositiveDefinite
		}
		q = cursor[k]
		cursor[k]++
		num.rowIdx[q] = k
		num.val[q] = math.Sqrt(d)
	}
	return num, nil
}
