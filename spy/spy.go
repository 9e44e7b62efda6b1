// Package spy renders the sparsity pattern of a matrix: the classic spy
// plot, one marker per stored entry, row 0 at the top. Either storage form
// renders; values never affect the picture, only the pattern does, so
// explicit zeros show up like any other entry.
package spy

import (
	"fmt"
	"io"
	"os"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"

	"github.com/yangyi-ioa/sparsemat/sparse"
)

const (
	// DefaultFormat is the image encoding used when none is configured.
	DefaultFormat = "png"

	// DefaultSizeInches is the square canvas edge length.
	DefaultSizeInches = 4.0

	// DefaultMarkerPoints is the per-entry marker radius in points.
	DefaultMarkerPoints = 2.0
)

const (
	panicBadFormat = "spy: WithFormat: format must be one of png, svg, pdf"
	panicBadSize   = "spy: WithSize: inches must be > 0"
	panicBadRadius = "spy: WithMarkerRadius: points must be > 0"
)

// Option mutates render configuration.
type Option func(*Options)

// Options stores the effective render configuration.
type Options struct {
	format string
	size   vg.Length
	radius vg.Length
}

// WithFormat selects the output encoding: "png", "svg" or "pdf".
// Panics on anything else.
func WithFormat(format string) Option {
	switch format {
	case "png", "svg", "pdf":
	default:
		panic(panicBadFormat)
	}
	return func(o *Options) { o.format = format }
}

// WithSize sets the square canvas edge in inches. Panics unless > 0.
func WithSize(inches float64) Option {
	if !(inches > 0) {
		panic(panicBadSize)
	}
	return func(o *Options) { o.size = vg.Length(inches) * vg.Inch }
}

// WithMarkerRadius sets the per-entry marker radius in points.
// Panics unless > 0.
func WithMarkerRadius(points float64) Option {
	if !(points > 0) {
		panic(panicBadRadius)
	}
	return func(o *Options) { o.radius = vg.Points(points) }
}

func gatherOptions(user ...Option) Options {
	o := Options{
		format: DefaultFormat,
		size:   vg.Length(DefaultSizeInches) * vg.Inch,
		radius: vg.Points(DefaultMarkerPoints),
	}
	for _, set := range user {
		set(&o)
	}
	return o
}

// Render draws m's sparsity pattern to w.
//
// Every stored entry becomes one box marker at (col, row) with the row
// axis inverted, so the picture reads like the matrix: row 0 on top,
// column 0 on the left. The title carries the extent and the stored entry
// count.
//
// Errors: sparse.ErrNilMatrix, sparse.ErrInvalidState (zero-value matrix),
// plus plot construction and writer errors.
// Complexity: O(nnz) points plus rendering cost.
func Render(m *sparse.Matrix, w io.Writer, opts ...Option) error {
	o := gatherOptions(opts...)
	if m == nil {
		return fmt.Errorf("Render: %w", sparse.ErrNilMatrix)
	}
	if !m.IsTriplet() && !m.IsCompressed() {
		return fmt.Errorf("Render: %w", sparse.ErrInvalidState)
	}

	pts := make(plotter.XYs, 0, m.NNZ())
	m.EachNonZero(func(row, col int, _ float64) {
		pts = append(pts, plotter.XY{
			X: float64(col),
			Y: float64(m.Rows() - 1 - row), // invert so row 0 lands on top
		})
	})

	sc, err := plotter.NewScatter(pts)
	if err != nil {
		return fmt.Errorf("Render: scatter: %w", err)
	}
	sc.GlyphStyle.Shape = draw.BoxGlyph{}
	sc.GlyphStyle.Radius = o.radius

	p := plot.New()
	p.Title.Text = fmt.Sprintf("%d×%d, %d stored", m.Rows(), m.Cols(), m.NNZ())
	p.X.Label.Text = "column"
	p.Y.Label.Text = "row"
	p.X.Min, p.X.Max = -0.5, float64(m.Cols())-0.5
	p.Y.Min, p.Y.Max = -0.5, float64(m.Rows())-0.5
	p.Add(sc)

	wt, err := p.WriterTo(o.size, o.size, o.format)
	if err != nil {
		return fmt.Errorf("Render: %w", err)
	}
	if _, err = wt.WriteTo(w); err != nil {
		return fmt.Errorf("Render: write: %w", err)
	}
	return nil
}

// RenderFile draws m's sparsity pattern into the file at path, deriving
// nothing from the extension: pass WithFormat to change the encoding.
func RenderFile(m *sparse.Matrix, path string, opts ...Option) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("RenderFile: %w", err)
	}
	if err = Render(m, f, opts...); err != nil {
		f.Close()
		return err
	}
	if err = f.Close(); err != nil {
		return fmt.Errorf("RenderFile: %w", err)
	}
	return nil
}
