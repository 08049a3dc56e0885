// Package logplot draws well-log curves against depth, as PNG track
// layouts (gonum/plot) and interactive HTML charts (go-echarts).
package logplot

import (
	"errors"
	"fmt"
	"io"
	"math"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"

	"github.com/banshee-data/welllog/internal/las"
)

// ErrNoSamples is returned when a document has nothing to draw.
var ErrNoSamples = errors.New("document has no samples")

// series is one curve resolved for plotting: the index column, the curve
// column and a title.
type series struct {
	name  string
	unit  string
	depth []float64
	value []float64
	null  func(float64) bool
}

// resolveSeries picks the index column (DEPT/DEPTH, else the first curve)
// and the curves to draw. An empty selection draws every non-index curve.
func resolveSeries(doc *las.Document, mnemonics []string) (string, []series, error) {
	if doc.NumSamples() == 0 {
		return "", nil, ErrNoSamples
	}
	curves := doc.Curves()
	indexPos, ok := doc.DepthCurve()
	if !ok {
		indexPos = 0
	}
	index := curves[indexPos]
	depth, _ := doc.Column(index.Mnemonic)

	if len(mnemonics) == 0 {
		for i, c := range curves {
			if i != indexPos {
				mnemonics = append(mnemonics, c.Mnemonic)
			}
		}
	}

	out := make([]series, 0, len(mnemonics))
	seen := make(map[string]bool, len(mnemonics))
	for _, name := range mnemonics {
		if seen[name] {
			continue
		}
		seen[name] = true
		c, ok := doc.Curve(name)
		if !ok {
			return "", nil, fmt.Errorf("%w: %s", las.ErrUnknownCurve, name)
		}
		col, _ := doc.Column(name)
		out = append(out, series{
			name:  c.Mnemonic,
			unit:  c.UnitSymbol(),
			depth: depth,
			value: col,
			null:  doc.IsNull,
		})
	}
	if len(out) == 0 {
		return "", nil, las.ErrNoCurvesSelected
	}

	axis := index.Mnemonic
	if u := index.UnitSymbol(); u != "" {
		axis = fmt.Sprintf("%s (%s)", index.Mnemonic, u)
	}
	return axis, out, nil
}

// segments splits a series into runs of valid samples so that nulls break
// the drawn line.
func (s series) segments() []plotter.XYs {
	var (
		out []plotter.XYs
		cur plotter.XYs
	)
	for i, v := range s.value {
		d := s.depth[i]
		if s.null(v) || math.IsInf(v, 0) || s.null(d) {
			if len(cur) > 0 {
				out = append(out, cur)
				cur = nil
			}
			continue
		}
		cur = append(cur, plotter.XY{X: v, Y: d})
	}
	if len(cur) > 0 {
		out = append(out, cur)
	}
	return out
}

// RenderPNG draws one track per curve, side by side, with depth increasing
// downwards, and writes the image as PNG. Sizes are in inches.
func RenderPNG(w io.Writer, doc *las.Document, mnemonics []string, widthIn, heightIn float64) error {
	axis, all, err := resolveSeries(doc, mnemonics)
	if err != nil {
		return err
	}

	colors := generateColors(len(all))
	row := make([]*plot.Plot, len(all))
	for i, s := range all {
		p := plot.New()
		p.Title.Text = s.name
		p.X.Label.Text = s.unit
		if i == 0 {
			p.Y.Label.Text = axis
		}
		p.Y.Scale = plot.InvertedScale{Normalizer: plot.LinearScale{}}
		p.Add(plotter.NewGrid())

		for _, seg := range s.segments() {
			line, err := plotter.NewLine(seg)
			if err != nil {
				return fmt.Errorf("failed to create line for %s: %w", s.name, err)
			}
			line.Color = colors[i]
			line.Width = vg.Points(1)
			p.Add(line)
		}
		row[i] = p
	}

	width := vg.Length(widthIn) * vg.Inch
	height := vg.Length(heightIn) * vg.Inch
	img := vgimg.New(width, height)
	dc := draw.New(img)
	tiles := draw.Tiles{
		Rows:      1,
		Cols:      len(row),
		PadX:      vg.Millimeter,
		PadTop:    vg.Points(4),
		PadBottom: vg.Points(4),
		PadLeft:   vg.Points(4),
		PadRight:  vg.Points(4),
	}
	canvases := plot.Align([][]*plot.Plot{row}, tiles, dc)
	for i, p := range row {
		p.Draw(canvases[0][i])
	}

	png := vgimg.PngCanvas{Canvas: img}
	if _, err := png.WriteTo(w); err != nil {
		return fmt.Errorf("failed to write png: %w", err)
	}
	return nil
}
