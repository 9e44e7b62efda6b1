// Package persist stores sparse matrices as self-describing binary
// snapshots: a fixed little-endian header, the entry arrays of whichever
// storage form the matrix is in, and a CRC32 (IEEE) trailer over the raw
// array bytes. Optional zstd compression wraps the arrays and the trailer
// in a single frame, so decoding never reads past the compressed stream.
//
// Snapshots restore through the sparse package's validating constructors;
// a corrupted or truncated stream surfaces ErrBadMagic, ErrBadVersion,
// ErrChecksum or ErrCorrupt instead of a malformed matrix.
//
// Logging is optional and off by default: WithLogger attaches a
// *slog.Logger that records save/load outcomes.
package persist
