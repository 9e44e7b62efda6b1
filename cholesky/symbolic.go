// Package cholesky: symbolic analysis. Fill-reducing ordering, symmetric
// permutation of the upper triangle, elimination tree, row reach, and the
// factor's column counts. Everything in this file is pattern-level; values
// travel only through permuteUpper when the numeric phase asks for them.
package cholesky

// cumsum turns per-column counts into starting offsets: p[j] receives the
// prefix sum of counts[0..j) and p[len(counts)] the total, while counts[j]
// resets to p[j] for use as a write cursor. O(len(counts)).
func cumsum(p, counts []int) int {
	var nz, j, c int
	for j = 0; j < len(counts); j++ {
		c = counts[j]
		p[j] = nz
		counts[j] = nz
		nz += c
	}
	p[len(counts)] = nz
	return nz
}

// permuteUpper extracts C = triu(P·A·Pᵀ) from the raw CSC arrays of A.
// Entries of A's strict lower triangle are ignored: A is read as the
// symmetric matrix defined by its upper part. pinv == nil means identity;
// withVals controls whether values travel along with the pattern.
//
// A permuted entry lands in column max(i2, j2) at row min(i2, j2) — its
// upper-triangle home after relabeling.
// Complexity: O(nnz + n).
func permuteUpper(n int, aColPtr, aRowIdx []int, aVal []float64, pinv []int, withVals bool) (colPtr, rowIdx []int, val []float64) {
	var (
		counts = make([]int, n)

		j, p, i, i2, j2, hi, lo, dst int
	)
	colPtr = make([]int, n+1)

	// Count pass: size each destination column.
	for j = 0; j < n; j++ {
		j2 = j
		if pinv != nil {
			j2 = pinv[j]
		}
		for p = aColPtr[j]; p < aColPtr[j+1]; p++ {
			i = aRowIdx[p]
			if i > j {
				continue // strict lower triangle: not read
			}
			i2 = i
			if pinv != nil {
				i2 = pinv[i]
			}
			hi = i2
			if j2 > hi {
				hi = j2
			}
			counts[hi]++
		}
	}
	cumsum(colPtr, counts)

	// Placement pass.
	rowIdx = make([]int, colPtr[n])
	if withVals {
		val = make([]float64, colPtr[n])
	}
	for j = 0; j < n; j++ {
		j2 = j
		if pinv != nil {
			j2 = pinv[j]
		}
		for p = aColPtr[j]; p < aColPtr[j+1]; p++ {
			i = aRowIdx[p]
			if i > j {
				continue
			}
			i2 = i
			if pinv != nil {
				i2 = pinv[i]
			}
			lo, hi = i2, j2
			if lo > hi {
				lo, hi = hi, lo
			}
			dst = counts[hi]
			counts[hi]++
			rowIdx[dst] = lo
			if withVals {
				val[dst] = aVal[p]
			}
		}
	}
	return colPtr, rowIdx, val
}

// etree computes the elimination tree of the upper-triangular pattern C:
// parent[k] is the first off-diagonal ancestor of column k in the factor's
// dependency forest, -1 at roots. An ancestor array with path compression
// keeps the sweep near-linear.
// Complexity: effectively O(nnz) with inverse-Ackermann overhead.
func etree(n int, colPtr, rowIdx []int) []int {
	var (
		parent   = make([]int, n)
		ancestor = make([]int, n)

		k, p, i, next int
	)
	for k = 0; k < n; k++ {
		parent[k] = -1
		ancestor[k] = -1
		for p = colPtr[k]; p < colPtr[k+1]; p++ {
			for i = rowIdx[p]; i != -1 && i < k; i = next {
				next = ancestor[i]
				ancestor[i] = k // path compression toward the newest column
				if next == -1 {
					parent[i] = k
				}
			}
		}
	}
	return parent
}

// ereach collects the nonzero pattern of row k of the factor: the columns
// j < k with L(k,j) ≠ 0, in topological (elimination) order. The result
// lands in stack[top:n]; marked must arrive all-false and is restored
// before returning, so one allocation serves every row.
//
// Each entry of column k of C starts a walk up the elimination tree that
// stops at the first already-marked node; the visited prefix is pushed onto
// the output from the far end, which reverses it into dependency order.
// Complexity: O(pattern length) — every visited column is marked once.
func ereach(colPtr, rowIdx []int, k int, parent []int, stack []int, marked []bool) int {
	var (
		n   = len(parent)
		top = n

		p, i, length int
	)
	marked[k] = true
	for p = colPtr[k]; p < colPtr[k+1]; p++ {
		i = rowIdx[p]
		if i > k {
			continue // upper triangle only
		}
		for length = 0; !marked[i]; i = parent[i] {
			stack[length] = i
			length++
			marked[i] = true
		}
		for length > 0 {
			length--
			top--
			stack[top] = stack[length]
		}
	}
	for p = top; p < n; p++ {
		marked[stack[p]] = false
	}
	marked[k] = false
	return top
}

// factorColCounts sizes each column of L exactly, by replaying the reach of
// every row: column j gains one entry for each row k whose pattern includes
// j, plus its own diagonal. The sum of counts is nnz(L).
// Complexity: O(nnz(L)).
func factorColCounts(n int, colPtr, rowIdx []int, parent []int) []int {
	var (
		counts = make([]int, n)
		stack  = make([]int, n)
		marked = make([]bool, n)

		k, top int
	)
	for k = 0; k < n; k++ {
		counts[k]++ // diagonal of column k
		for top = ereach(colPtr, rowIdx, k, parent, stack, marked); top < n; top++ {
			counts[stack[top]]++
		}
	}
	return counts
}

// minDegreeOrder computes a greedy minimum-degree permutation of the
// symmetric pattern: repeatedly eliminate the vertex of smallest current
// degree, connecting its remaining neighbors into a clique (the fill that
// elimination would create). Ties break toward the smallest index, and
// degrees are order-independent quantities, so the result is deterministic
// even though adjacency lives in maps.
//
// Exact greedy elimination: quadratic in the worst case, effective and
// predictable at the extents this engine targets.
//
// Returns perm with perm[k] = the original index eliminated at step k.
func minDegreeOrder(n int, colPtr, rowIdx []int) []int {
	// Undirected adjacency over the full pattern, diagonal excluded. Both
	// triangles mirror in, so upper-only storage orders identically to a
	// fully stored symmetric matrix.
	var (
		adj = make([]map[int]struct{}, n)

		j, p, i, k, v, best, bestDeg, x, y int
	)
	for j = 0; j < n; j++ {
		adj[j] = make(map[int]struct{})
	}
	for j = 0; j < n; j++ {
		for p = colPtr[j]; p < colPtr[j+1]; p++ {
			i = rowIdx[p]
			if i == j {
				continue
			}
			adj[i][j] = struct{}{}
			adj[j][i] = struct{}{}
		}
	}

	var (
		perm = make([]int, 0, n)
		dead = make([]bool, n)
	)
	for k = 0; k < n; k++ {
		// Scan ascending so ties break toward the smallest index.
		best, bestDeg = -1, n+1
		for v = 0; v < n; v++ {
			if !dead[v] && len(adj[v]) < bestDeg {
				best, bestDeg = v, len(adj[v])
			}
		}
		perm = append(perm, best)
		dead[best] = true

		// Adjacency sets hold live vertices only: the eliminated vertex is
		// removed from each neighbor before its clique fill is added.
		nbrs := make([]int, 0, len(adj[best]))
		for v = range adj[best] {
			nbrs = append(nbrs, v)
		}
		for x = 0; x < len(nbrs); x++ {
			delete(adj[nbrs[x]], best)
		}
		for x = 0; x < len(nbrs); x++ {
			for y = x + 1; y < len(nbrs); y++ {
				adj[nbrs[x]][nbrs[y]] = struct{}{}
				adj[nbrs[y]][nbrs[x]] = struct{}{}
			}
		}
		adj[best] = nil // release
	}
	return perm
}

// invertPerm builds pinv with pinv[perm[k]] = k.
func invertPerm(perm []int) []int {
	pinv := make([]int, len(perm))
	for k, v := range perm {
		pinv[v] = k
	}
	return pinv
}

// analyze runs the full symbolic phase over the raw CSC pattern of A:
// ordering, permuted upper pattern, elimination tree, and the factor's
// exact column layout.
func analyze(n int, aColPtr, aRowIdx []int, ord Ordering) *symbolic {
	var perm, pinv []int
	if ord == OrderMinDegree {
		perm = minDegreeOrder(n, aColPtr, aRowIdx)
		pinv = invertPerm(perm)
	}
	colPtr, rowIdx, _ := permuteUpper(n, aColPtr, aRowIdx, nil, pinv, false)
	parent := etree(n, colPtr, rowIdx)
	counts := factorColCounts(n, colPtr, rowIdx, parent)
	lp := make([]int, n+1)
	cumsum(lp, counts)
	return &symbolic{perm: perm, pinv: pinv, parent: parent, colPtr: lp}
}
