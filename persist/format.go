// Package persist: the on-disk format. One fixed-size little-endian
// header, then the payload arrays, then a CRC32 of the raw payload bytes.
package persist

import "errors"

const (
	// Magic identifies a sparsemat snapshot ("SPM1" read as little-endian
	// bytes 'S' 'P' 'M' '1').
	Magic uint32 = 0x314D5053

	// Version is the current format revision. Readers reject anything
	// else; the reserved header bytes leave room to grow without moving
	// the payload.
	Version uint16 = 1

	// flagZstd marks a snapshot whose payload section (arrays + trailer)
	// is one zstd frame.
	flagZstd uint16 = 1 << 0

	// Storage-form tags carried in the header.
	formTriplet uint8 = 0
	formCSC     uint8 = 1
)

// header is the fixed 40-byte preamble of every snapshot. The blank field
// pads the fixed-width section to an 8-byte boundary and is written as
// zeros.
type header struct {
	Magic   uint32
	Version uint16
	Flags   uint16
	Form    uint8
	_       [7]uint8 // reserved
	Rows    int64
	Cols    int64
	NNZ     int64
}

var (
	// ErrBadMagic — the stream does not start with a snapshot header.
	ErrBadMagic = errors.New("persist: bad magic")

	// ErrBadVersion — the snapshot was written by an unknown format
	// revision.
	ErrBadVersion = errors.New("persist: unsupported snapshot version")

	// ErrChecksum — the payload bytes do not match the stored CRC32.
	ErrChecksum = errors.New("persist: checksum mismatch")

	// ErrCorrupt — a structurally invalid snapshot: implausible sizes,
	// truncation, an unknown form tag, or a payload the sparse
	// constructors reject.
	ErrCorrupt = errors.New("persist: corrupt snapshot")
)
