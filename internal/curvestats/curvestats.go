// Package curvestats computes per-curve summary statistics for parsed LAS
// documents.
package curvestats

import (
	"encoding/json"
	"math"
	"sort"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/banshee-data/welllog/internal/las"
)

// CurveSummary describes the valid samples of one curve. Null and NaN
// samples are counted in Nulls and excluded from every statistic. When
// Count is zero the statistics are NaN.
type CurveSummary struct {
	Mnemonic string
	Unit     string
	Count    int
	Nulls    int
	Min      float64
	Max      float64
	Mean     float64
	StdDev   float64
	P10      float64
	P50      float64
	P90      float64
}

// Summarise returns one summary per curve in document order.
func Summarise(doc *las.Document) []CurveSummary {
	curves := doc.Curves()
	out := make([]CurveSummary, 0, len(curves))
	for _, c := range curves {
		col, _ := doc.Column(c.Mnemonic)
		out = append(out, summariseColumn(c, col, doc.IsNull))
	}
	return out
}

// SummariseCurve summarises a single named curve.
func SummariseCurve(doc *las.Document, mnemonic string) (CurveSummary, bool) {
	c, ok := doc.Curve(mnemonic)
	if !ok {
		return CurveSummary{}, false
	}
	col, _ := doc.Column(mnemonic)
	return summariseColumn(c, col, doc.IsNull), true
}

func summariseColumn(c las.CurveDefinition, col []float64, isNull func(float64) bool) CurveSummary {
	s := CurveSummary{Mnemonic: c.Mnemonic, Unit: c.UnitSymbol()}

	valid := make([]float64, 0, len(col))
	for _, v := range col {
		if isNull(v) || math.IsInf(v, 0) {
			s.Nulls++
			continue
		}
		valid = append(valid, v)
	}
	s.Count = len(valid)
	if s.Count == 0 {
		nan := math.NaN()
		s.Min, s.Max, s.Mean, s.StdDev = nan, nan, nan, nan
		s.P10, s.P50, s.P90 = nan, nan, nan
		return s
	}

	s.Min = floats.Min(valid)
	s.Max = floats.Max(valid)
	s.Mean = stat.Mean(valid, nil)
	if s.Count > 1 {
		s.StdDev = stat.StdDev(valid, nil)
	}

	sort.Float64s(valid)
	s.P10 = stat.Quantile(0.10, stat.Empirical, valid, nil)
	s.P50 = stat.Quantile(0.50, stat.Empirical, valid, nil)
	s.P90 = stat.Quantile(0.90, stat.Empirical, valid, nil)
	return s
}

// MarshalJSON writes NaN statistics as null.
func (s CurveSummary) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Mnemonic string   `json:"mnemonic"`
		Unit     string   `json:"unit"`
		Count    int      `json:"count"`
		Nulls    int      `json:"nulls"`
		Min      *float64 `json:"min"`
		Max      *float64 `json:"max"`
		Mean     *float64 `json:"mean"`
		StdDev   *float64 `json:"std_dev"`
		P10      *float64 `json:"p10"`
		P50      *float64 `json:"p50"`
		P90      *float64 `json:"p90"`
	}{
		Mnemonic: s.Mnemonic,
		Unit:     s.Unit,
		Count:    s.Count,
		Nulls:    s.Nulls,
		Min:      finite(s.Min),
		Max:      finite(s.Max),
		Mean:     finite(s.Mean),
		StdDev:   finite(s.StdDev),
		P10:      finite(s.P10),
		P50:      finite(s.P50),
		P90:      finite(s.P90),
	})
}

func finite(v float64) *float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return nil
	}
	return &v
}
