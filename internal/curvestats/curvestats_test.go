package curvestats

import (
	"encoding/json"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/banshee-data/welllog/internal/las"
	"github.com/banshee-data/welllog/internal/testutil"
)

func TestSummarise(t *testing.T) {
	t.Parallel()

	h := las.Header{NullValue: -999.25}
	curves := []las.CurveDefinition{
		{Mnemonic: "DEPT", FileUnit: "m"},
		{Mnemonic: "GR", FileUnit: "GAPI"},
		{Mnemonic: "EMPTY"},
	}
	data := [][]float64{
		{1, 2, 3, 4, 5},
		{10, -999.25, 30, math.NaN(), 50},
		{-999.25, -999.25, -999.25, -999.25, -999.25},
	}
	doc, err := las.NewDocument(h, curves, data)
	require.NoError(t, err)

	got := Summarise(doc)
	require.Len(t, got, 3)

	dept := got[0]
	assert.Equal(t, "DEPT", dept.Mnemonic)
	assert.Equal(t, 5, dept.Count)
	assert.Equal(t, 0, dept.Nulls)
	assert.Equal(t, 1.0, dept.Min)
	assert.Equal(t, 5.0, dept.Max)
	assert.Equal(t, 3.0, dept.Mean)
	assert.InDelta(t, math.Sqrt(2.5), dept.StdDev, 1e-12)
	assert.Equal(t, 3.0, dept.P50)

	gr := got[1]
	assert.Equal(t, "GAPI", gr.Unit)
	assert.Equal(t, 3, gr.Count)
	assert.Equal(t, 2, gr.Nulls)
	assert.Equal(t, 10.0, gr.Min)
	assert.Equal(t, 50.0, gr.Max)
	assert.Equal(t, 30.0, gr.Mean)
	assert.Equal(t, 10.0, gr.P10)
	assert.Equal(t, 50.0, gr.P90)

	empty := got[2]
	assert.Equal(t, 0, empty.Count)
	assert.Equal(t, 5, empty.Nulls)
	assert.True(t, math.IsNaN(empty.Mean))
	assert.True(t, math.IsNaN(empty.P50))
}

func TestSummariseSingleSample(t *testing.T) {
	t.Parallel()

	doc, err := las.NewDocument(las.Header{NullValue: -999.25},
		[]las.CurveDefinition{{Mnemonic: "DEPT"}}, [][]float64{{7}})
	require.NoError(t, err)

	s, ok := SummariseCurve(doc, "DEPT")
	require.True(t, ok)
	assert.Equal(t, 1, s.Count)
	assert.Equal(t, 0.0, s.StdDev)
	assert.Equal(t, 7.0, s.P10)

	_, ok = SummariseCurve(doc, "NOPE")
	assert.False(t, ok)
}

func TestSummariseParsedFile(t *testing.T) {
	t.Parallel()

	doc, err := las.Parse(testutil.Lines(testutil.MinimalLAS), nil)
	require.NoError(t, err)

	got := Summarise(doc)
	require.Len(t, got, 2)
	assert.Equal(t, 1, got[1].Count)
	assert.Equal(t, 1, got[1].Nulls)
	assert.Equal(t, 50.2, got[1].Mean)
}

func TestCurveSummaryJSON(t *testing.T) {
	t.Parallel()

	s := CurveSummary{Mnemonic: "GR", Count: 0, Nulls: 2, Min: math.NaN(), Max: math.NaN(),
		Mean: math.NaN(), StdDev: math.NaN(), P10: math.NaN(), P50: math.NaN(), P90: math.NaN()}
	b, err := json.Marshal(s)
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(b, &decoded))
	assert.Nil(t, decoded["mean"])
	assert.Equal(t, "GR", decoded["mnemonic"])
	assert.Equal(t, float64(2), decoded["nulls"])

	s.Mean = 4.5
	b, err = json.Marshal(s)
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal(b, &decoded))
	assert.Equal(t, 4.5, decoded["mean"])
}
