// SPDX-License-Identifier: MIT

// Package sparse implements a compressed-column sparse matrix engine with a
// twin storage scheme: an append-only triplet (coordinate) form for cheap
// incremental assembly, and a compressed sparse column (CSC) form for
// arithmetic.
//
// The two forms, and the one-way conversion between them:
//
//   - Triplet form: unordered (row, col, value) entries. Duplicates are
//     legal and understood as implicit sums. Built by NewTriplet, grown by
//     InsertEntry / InsertSubmatrix. The logical extent grows on demand and
//     never shrinks.
//   - Compressed form: column pointers, row indices and values (CSC).
//     Produced by Compress, NewFromDense, FromGonum or NewCSC. All
//     arithmetic (Add, Mul, MulVec, Transpose, Scale) operates on this form
//     only. Row indices are unique within every column; their order within
//     a column is unspecified unless a constructor documents otherwise.
//
// A Matrix is always in exactly one form; IsTriplet / IsCompressed report
// which, and operations invoked on the wrong form fail with
// ErrInvalidState. Compression sums duplicate coordinates and releases the
// triplet storage. Stored (explicit) zeros are first-class: compression
// keeps zero values that were explicitly inserted, and Add keeps entries
// that cancel to zero. The stored pattern is therefore a structural fact,
// independent of the values.
//
// Dense interop goes through the DenseSource capability contract (row
// count, column count, checked element access). Dense is the package's own
// minimal row-major implementation, and gonum mat types adapt through
// FromGonum / ToGonum. RawCSC and RawTriplet expose the live backing
// arrays for zero-copy consumers (factorization, snapshots); treat those
// slices as read-only.
//
// Errors are package-level sentinels ("sparse: ..."); entry points wrap
// them with an operation tag, so match with errors.Is.
//
// Concurrency: the engine is deliberately single-threaded. No internal
// locking; concurrent reads of one Matrix are safe, any mutation requires
// external synchronization.
package sparse
