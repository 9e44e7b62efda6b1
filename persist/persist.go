// Package persist: the snapshot writer and reader.
package persist

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"hash/crc32"
	"io"
	"math"
	"os"

	"github.com/klauspost/compress/zstd"

	"github.com/yangyi-ioa/sparsemat/sparse"
)

// byteOrder pins every multi-byte field to little-endian.
var byteOrder = binary.LittleEndian

// crcTable is the IEEE polynomial table shared by writer and reader.
var crcTable = crc32.MakeTable(crc32.IEEE)

// maxSnapshotEntries caps header-declared array lengths before any
// allocation happens, so an absurd header cannot size gigantic buffers.
const maxSnapshotEntries = int64(1) << 40

// checksumWriter forwards writes while folding them into a running CRC32.
type checksumWriter struct {
	w   io.Writer
	sum uint32
}

func (c *checksumWriter) Write(p []byte) (int, error) {
	n, err := c.w.Write(p)
	if n > 0 {
		c.sum = crc32.Update(c.sum, crcTable, p[:n])
	}
	return n, err
}

// checksumReader folds everything read into a running CRC32.
type checksumReader struct {
	r   io.Reader
	sum uint32
}

func (c *checksumReader) Read(p []byte) (int, error) {
	n, err := c.r.Read(p)
	if n > 0 {
		c.sum = crc32.Update(c.sum, crcTable, p[:n])
	}
	return n, err
}

// corruptf tags an underlying failure as snapshot corruption while keeping
// ErrCorrupt matchable via errors.Is.
func corruptf(stage string, cause error) error {
	return fmt.Errorf("Load: %s: %w (%v)", stage, ErrCorrupt, cause)
}

// Save writes m as one snapshot to w.
//
// Layout: header | payload arrays | crc32(payload). With compression the
// arrays and the trailer travel inside a single zstd frame; the CRC always
// covers the uncompressed array bytes, so it verifies the data, not the
// frame.
//
// Triplet matrices store (row, col, val) arrays; compressed matrices store
// (colPtr, rowIdx, val). Either form round-trips into the same form.
//
// Errors: sparse.ErrNilMatrix, ErrCorrupt (zero-value matrix), plus writer
// and encoder errors.
func Save(w io.Writer, m *sparse.Matrix, opts ...Option) error {
	o := gatherOptions(opts...)
	err := save(w, m, o)
	if o.logger != nil {
		if err != nil {
			o.logger.Error("snapshot save failed", "error", err)
		} else {
			o.logger.Debug("snapshot saved",
				"rows", m.Rows(), "cols", m.Cols(), "nnz", m.NNZ(),
				"compressed", o.compress)
		}
	}
	return err
}

func save(w io.Writer, m *sparse.Matrix, o Options) error {
	if m == nil {
		return fmt.Errorf("Save: %w", sparse.ErrNilMatrix)
	}
	h := header{
		Magic:   Magic,
		Version: Version,
		Rows:    int64(m.Rows()),
		Cols:    int64(m.Cols()),
		NNZ:     int64(m.NNZ()),
	}
	if o.compress {
		h.Flags |= flagZstd
	}

	var (
		first, second []int
		vals          []float64
	)
	switch {
	case m.IsTriplet():
		row, col, val, err := m.RawTriplet()
		if err != nil {
			return fmt.Errorf("Save: %w", err)
		}
		h.Form = formTriplet
		first, second, vals = row, col, val
	case m.IsCompressed():
		colPtr, rowIdx, val, err := m.RawCSC()
		if err != nil {
			return fmt.Errorf("Save: %w", err)
		}
		h.Form = formCSC
		first, second, vals = colPtr, rowIdx, val
	default:
		return fmt.Errorf("Save: %w", ErrCorrupt) // zero-value matrix
	}

	if err := binary.Write(w, byteOrder, &h); err != nil {
		return fmt.Errorf("Save: header: %w", err)
	}

	// Payload sink: the plain writer, or one zstd frame on top of it.
	var (
		payload io.Writer = w
		enc     *zstd.Encoder
		err     error
	)
	if o.compress {
		enc, err = zstd.NewWriter(w,
			zstd.WithEncoderLevel(zstd.EncoderLevelFromZstd(o.level)))
		if err != nil {
			return fmt.Errorf("Save: zstd: %w", err)
		}
		payload = enc
	}

	cw := &checksumWriter{w: payload}
	if err = writeInts(cw, first); err != nil {
		return fmt.Errorf("Save: payload: %w", err)
	}
	if err = writeInts(cw, second); err != nil {
		return fmt.Errorf("Save: payload: %w", err)
	}
	if err = binary.Write(cw, byteOrder, vals); err != nil {
		return fmt.Errorf("Save: payload: %w", err)
	}
	// The trailer travels next to the data it guards: inside the frame
	// when compressed, so the decoder never reads beyond it.
	if err = binary.Write(payload, byteOrder, cw.sum); err != nil {
		return fmt.Errorf("Save: checksum: %w", err)
	}
	if enc != nil {
		if err = enc.Close(); err != nil {
			return fmt.Errorf("Save: zstd: %w", err)
		}
	}
	return nil
}

// Load reads one snapshot from r and rebuilds the matrix through the
// validating sparse constructors. Compression is detected from the header;
// options only affect logging.
//
// Errors: ErrBadMagic, ErrBadVersion, ErrCorrupt (sizes, truncation,
// unknown form, rejected payload), ErrChecksum.
func Load(r io.Reader, opts ...Option) (*sparse.Matrix, error) {
	o := gatherOptions(opts...)
	m, err := load(r)
	if o.logger != nil {
		if err != nil {
			o.logger.Error("snapshot load failed", "error", err)
		} else {
			o.logger.Debug("snapshot loaded",
				"rows", m.Rows(), "cols", m.Cols(), "nnz", m.NNZ())
		}
	}
	return m, err
}

func load(r io.Reader) (*sparse.Matrix, error) {
	var h header
	if err := binary.Read(r, byteOrder, &h); err != nil {
		return nil, corruptf("header", err)
	}
	if h.Magic != Magic {
		return nil, fmt.Errorf("Load: %w", ErrBadMagic)
	}
	if h.Version != Version {
		return nil, fmt.Errorf("Load: %w", ErrBadVersion)
	}
	if h.Rows < 1 || h.Cols < 1 || h.NNZ < 0 ||
		h.Rows > maxSnapshotEntries || h.Cols > maxSnapshotEntries ||
		h.NNZ > maxSnapshotEntries ||
		h.Rows > math.MaxInt || h.Cols > math.MaxInt || h.NNZ > math.MaxInt {
		return nil, fmt.Errorf("Load: header bounds: %w", ErrCorrupt)
	}

	payload := io.Reader(r)
	if h.Flags&flagZstd != 0 {
		dec, err := zstd.NewReader(r)
		if err != nil {
			return nil, corruptf("zstd", err)
		}
		defer dec.Close()
		payload = dec.IOReadCloser()
	}
	cr := &checksumReader{r: payload}

	var (
		rows, cols, nnz = int(h.Rows), int(h.Cols), int(h.NNZ)

		first, second []int
		vals          []float64
		err           error
	)
	switch h.Form {
	case formTriplet:
		if first, err = readInts(cr, nnz); err != nil {
			return nil, corruptf("row indices", err)
		}
		if second, err = readInts(cr, nnz); err != nil {
			return nil, corruptf("col indices", err)
		}
	case formCSC:
		if first, err = readInts(cr, cols+1); err != nil {
			return nil, corruptf("column pointers", err)
		}
		if second, err = readInts(cr, nnz); err != nil {
			return nil, corruptf("row indices", err)
		}
	default:
		return nil, fmt.Errorf("Load: form tag: %w", ErrCorrupt)
	}
	if vals, err = readFloats(cr, nnz); err != nil {
		return nil, corruptf("values", err)
	}

	// Trailer: read from the payload stream directly so the CRC does not
	// fold itself.
	var want uint32
	if err = binary.Read(payload, byteOrder, &want); err != nil {
		return nil, corruptf("trailer", err)
	}
	if want != cr.sum {
		return nil, fmt.Errorf("Load: %w", ErrChecksum)
	}

	var m *sparse.Matrix
	if h.Form == formTriplet {
		m, err = sparse.NewTripletFromParts(rows, cols, first, second, vals)
	} else {
		m, err = sparse.NewCSC(rows, cols, first, second, vals)
	}
	if err != nil {
		return nil, corruptf("payload", err)
	}
	return m, nil
}

// writeInts streams an []int as little-endian int64 values.
func writeInts(w io.Writer, s []int) error {
	buf := make([]int64, len(s))
	for k, v := range s {
		buf[k] = int64(v)
	}
	return binary.Write(w, byteOrder, buf)
}

// readInts reads n little-endian int64 values into an []int.
func readInts(r io.Reader, n int) ([]int, error) {
	buf := make([]int64, n)
	if err := binary.Read(r, byteOrder, buf); err != nil {
		return nil, err
	}
	out := make([]int, n)
	for k, v := range buf {
		if v < math.MinInt || v > math.MaxInt {
			return nil, ErrCorrupt
		}
		out[k] = int(v)
	}
	return out, nil
}

// readFloats reads n little-endian float64 values.
func readFloats(r io.Reader, n int) ([]float64, error) {
	out := make([]float64, n)
	if err := binary.Read(r, byteOrder, out); err != nil {
		return nil, err
	}
	return out, nil
}

// SaveFile writes a snapshot to path (create or truncate, buffered,
// synced before close).
func SaveFile(path string, m *sparse.Matrix, opts ...Option) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("SaveFile: %w", err)
	}
	bw := bufio.NewWriter(f)
	if err = Save(bw, m, opts...); err != nil {
		f.Close()
		return err
	}
	if err = bw.Flush(); err != nil {
		f.Close()
		return fmt.Errorf("SaveFile: %w", err)
	}
	if err = f.Sync(); err != nil {
		f.Close()
		return fmt.Errorf("SaveFile: %w", err)
	}
	if err = f.Close(); err != nil {
		return fmt.Errorf("SaveFile: %w", err)
	}
	return nil
}

// LoadFile reads one snapshot from path.
func LoadFile(path string, opts ...Option) (*sparse.Matrix, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("LoadFile: %w", err)
	}
	defer f.Close()
	return Load(bufio.NewReader(f), opts...)
}
