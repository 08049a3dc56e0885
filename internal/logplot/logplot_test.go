package logplot

import (
	"bytes"
	"image/png"
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/plot/plotter"

	"github.com/banshee-data/welllog/internal/las"
	"github.com/banshee-data/welllog/internal/testutil"
)

func sampleDoc(t *testing.T) *las.Document {
	t.Helper()
	doc, err := las.Parse(testutil.Lines(testutil.FullLAS20), nil)
	require.NoError(t, err)
	return doc
}

func TestResolveSeries(t *testing.T) {
	t.Parallel()

	doc := sampleDoc(t)

	axis, all, err := resolveSeries(doc, nil)
	require.NoError(t, err)
	assert.Equal(t, "DEPT (M)", axis)
	require.Len(t, all, 3)
	assert.Equal(t, "DT", all[0].name)

	_, all, err = resolveSeries(doc, []string{"NPHI", "NPHI"})
	require.NoError(t, err)
	assert.Len(t, all, 1)

	_, _, err = resolveSeries(doc, []string{"NOPE"})
	assert.ErrorIs(t, err, las.ErrUnknownCurve)
}

func TestResolveSeriesEmptyDocument(t *testing.T) {
	t.Parallel()

	doc, err := las.NewDocument(las.Header{NullValue: -999.25},
		[]las.CurveDefinition{{Mnemonic: "DEPT"}}, [][]float64{{}})
	require.NoError(t, err)

	_, _, err = resolveSeries(doc, nil)
	assert.ErrorIs(t, err, ErrNoSamples)
}

func TestSegmentsBreakOnNull(t *testing.T) {
	t.Parallel()

	s := series{
		depth: []float64{1, 2, 3, 4, 5, 6},
		value: []float64{10, 20, -999.25, 40, math.NaN(), 60},
		null:  func(v float64) bool { return v == -999.25 || math.IsNaN(v) },
	}
	got := s.segments()
	want := []plotter.XYs{
		{{X: 10, Y: 1}, {X: 20, Y: 2}},
		{{X: 40, Y: 4}},
		{{X: 60, Y: 6}},
	}
	assert.Equal(t, want, got)
}

func TestRenderPNG(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	require.NoError(t, RenderPNG(&buf, sampleDoc(t), []string{"DT", "RHOB"}, 4, 6))

	img, err := png.Decode(&buf)
	require.NoError(t, err)
	assert.Greater(t, img.Bounds().Dx(), 0)
	assert.Greater(t, img.Bounds().Dy(), img.Bounds().Dx(), "tracks are taller than wide")
}

func TestRenderHTML(t *testing.T) {
	t.Parallel()

	doc, err := las.Parse(testutil.Lines(testutil.MinimalLAS), nil)
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, RenderHTML(&buf, doc, nil, ChartOptions{}))

	html := buf.String()
	assert.Contains(t, html, "<html")
	assert.Contains(t, html, "TestWell")
	assert.Contains(t, html, "GR")
	assert.True(t, strings.Contains(html, `"-"`), "null sample rendered as a gap")
}

func TestColors(t *testing.T) {
	t.Parallel()

	assert.Nil(t, generateColors(0))
	cs := generateColors(3)
	require.Len(t, cs, 3)
	assert.NotEqual(t, hexColor(cs[0]), hexColor(cs[1]))
	assert.Regexp(t, `^#[0-9a-f]{6}$`, hexColor(cs[2]))
}
