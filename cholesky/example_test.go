// Package cholesky_test provides runnable examples for the factor → solve
// → refresh workflow. Each example runs via "go test -run Example".
package cholesky_test

import (
	"fmt"

	"github.com/yangyi-ioa/sparsemat/cholesky"
	"github.com/yangyi-ioa/sparsemat/sparse"
)

// ExampleNew demonstrates factorizing a 3×3 SPD system and solving it.
// Complexity: O(flops(L)) for the factorization, O(nnz(L)) per solve.
func ExampleNew() {
	// 1) Assemble the upper triangle of A = [[4,1,0],[1,3,1],[0,1,2]].
	a, _ := sparse.NewTriplet(3, 3)
	_ = a.InsertEntry(0, 0, 4)
	_ = a.InsertEntry(0, 1, 1)
	_ = a.InsertEntry(1, 1, 3)
	_ = a.InsertEntry(1, 2, 1)
	_ = a.InsertEntry(2, 2, 2)
	_ = a.Compress()

	// 2) Factorize and solve A·x = b.
	f, _ := cholesky.New(a)
	x, _ := f.Backsub([]float64{1, 2, 3})
	fmt.Printf("x = [%.4f %.4f %.4f]\n", x[0], x[1], x[2])
	// Output:
	// x = [0.2222 0.1111 1.4444]
}

// ExampleFactorization_Update demonstrates refreshing the numeric factor
// after the system's values changed over an unchanged sparsity pattern.
func ExampleFactorization_Update() {
	// 1) Factor A = [[4,2],[2,3]] (upper triangle storage) and solve.
	a, _ := sparse.NewTriplet(2, 2)
	_ = a.InsertEntry(0, 0, 4)
	_ = a.InsertEntry(0, 1, 2)
	_ = a.InsertEntry(1, 1, 3)
	_ = a.Compress()
	f, _ := cholesky.New(a)
	x, _ := f.Backsub([]float64{4, 4})
	fmt.Printf("x  = [%.2f %.2f]\n", x[0], x[1])

	// 2) Reassemble the same pattern with doubled values and refresh.
	a2, _ := sparse.NewTriplet(2, 2)
	_ = a2.InsertEntry(0, 0, 8)
	_ = a2.InsertEntry(0, 1, 4)
	_ = a2.InsertEntry(1, 1, 6)
	_ = a2.Compress()
	_ = f.Update(a2)

	// 3) The refreshed factor solves the new system at numeric cost only.
	x2, _ := f.Backsub([]float64{4, 4})
	fmt.Printf("x2 = [%.2f %.2f]\n", x2[0], x2[1])
	// Output:
	// x  = [0.50 1.00]
	// x2 = [0.25 0.50]
}
