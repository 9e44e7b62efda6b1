// Package sparsemat is an in-memory engine for sparse linear algebra in
// compressed-column form — from incremental matrix assembly to direct
// solvers for symmetric positive-definite systems.
//
// 🚀 What is sparsemat?
//
//	A small, deterministic library that brings together:
//		• Dual-form storage: triplet (coordinate) assembly → compressed columns
//		• Arithmetic kernels: Add, Mul, MulVec, Transpose, Scale
//		• Sparse Cholesky: fill-reducing ordering, elimination-tree analysis,
//		  up-looking factorization, backsubstitution, pattern-reusing updates
//		• Interop: dense conversion, gonum mat adapters, text dumps
//		• Snapshots: checksummed binary persistence with optional zstd
//		• Spy plots: sparsity-pattern rendering to PNG/SVG/PDF
//
// ✨ Why choose sparsemat?
//
//   - Predictable – explicit storage forms, sentinel errors, no hidden state
//   - Deterministic – identical inputs produce identical storage and results
//   - Single-threaded core – no locks to fight; callers own synchronization
//   - Grounded – the classic column-compression and elimination-tree
//     algorithms, expressed as plain Go
//
// Everything is organized under four subpackages:
//
//	sparse/   — matrix container, assembly, compression, arithmetic, interop
//	cholesky/ — symbolic + numeric factorization, solves, structural updates
//	persist/  — binary snapshots (checksummed, optionally compressed)
//	spy/      — sparsity-pattern plots
//
// Quick ASCII example:
//
//	    A = ⎡4 2⎤ = L·Lᵀ,  L = ⎡2  0⎤
//	        ⎣2 3⎦              ⎣1 √2⎦
//
//	factor once, then solve A·x = b at numeric cost only.
//
// Dive into the subpackage docs for the full API surface.
//
//	go get github.com/yangyi-ioa/sparsemat
package sparsemat
