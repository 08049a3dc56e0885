package las

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/banshee-data/welllog/internal/units"
)

// DefaultNullValue is the LAS convention used when a file declares no NULL.
const DefaultNullValue = -999.25

// Country is the jurisdiction inferred from the well section.
type Country int

const (
	CountryUnknown Country = iota
	CountryUS
	CountryCanada
)

func (c Country) String() string {
	switch c {
	case CountryUS:
		return "us"
	case CountryCanada:
		return "ca"
	default:
		return ""
	}
}

// MarshalText renders the country as its two-letter code.
func (c Country) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}

// USLocation holds the US-specific well identifiers.
type USLocation struct {
	State  string `json:"state,omitempty"`
	County string `json:"county,omitempty"`
	API    string `json:"api,omitempty"`
}

func (l USLocation) isZero() bool { return l == USLocation{} }

// CanadaLocation holds the Canadian well identifiers.
type CanadaLocation struct {
	Province string `json:"province,omitempty"`
	UWI      string `json:"uwi,omitempty"`
	License  string `json:"license,omitempty"`
}

func (l CanadaLocation) isZero() bool { return l == CanadaLocation{} }

// WellMetadata is the content of the ~W section. Unset numeric and date
// fields are nil.
type WellMetadata struct {
	Name           string         `json:"name,omitempty"`
	Company        string         `json:"company,omitempty"`
	Field          string         `json:"field,omitempty"`
	Location       string         `json:"location,omitempty"`
	ServiceCompany string         `json:"service_company,omitempty"`
	CountryCode    string         `json:"country_code,omitempty"`
	ServiceDate    *time.Time     `json:"service_date,omitempty"`
	GeodeticDatum  string         `json:"geodetic_datum,omitempty"`
	HorizontalCRS  string         `json:"horizontal_crs,omitempty"`
	Latitude       *float64       `json:"latitude,omitempty"`
	Longitude      *float64       `json:"longitude,omitempty"`
	X              *float64       `json:"x,omitempty"`
	Y              *float64       `json:"y,omitempty"`
	Country        Country        `json:"country"`
	US             USLocation     `json:"us"`
	Canada         CanadaLocation `json:"canada"`
}

func (w WellMetadata) clone() WellMetadata {
	out := w
	out.ServiceDate = cloneTime(w.ServiceDate)
	out.Latitude = cloneFloat(w.Latitude)
	out.Longitude = cloneFloat(w.Longitude)
	out.X = cloneFloat(w.X)
	out.Y = cloneFloat(w.Y)
	return out
}

// DataRange is the STRT/STOP/STEP triple as declared in the header.
type DataRange struct {
	Start *float64 `json:"start,omitempty"`
	Stop  *float64 `json:"stop,omitempty"`
	Step  *float64 `json:"step,omitempty"`
	Unit  string   `json:"unit,omitempty"`
}

func (r DataRange) clone() DataRange {
	return DataRange{
		Start: cloneFloat(r.Start),
		Stop:  cloneFloat(r.Stop),
		Step:  cloneFloat(r.Step),
		Unit:  r.Unit,
	}
}

// EstimatedSamples returns 1 + round((stop-start)/step). It is advisory;
// Document.NumSamples is the decoded count.
func (r DataRange) EstimatedSamples() (int, bool) {
	if r.Start == nil || r.Stop == nil || r.Step == nil || *r.Step == 0 {
		return 0, false
	}
	start, stop, step := *r.Start, *r.Stop, *r.Step
	n := 1 + math.Round((stop-start)/step)
	if n < 0 || math.IsNaN(n) || math.IsInf(n, 0) {
		return 0, false
	}
	return int(n), true
}

// CurveDefinition describes one column of the data matrix.
type CurveDefinition struct {
	Mnemonic string     `json:"mnemonic"`
	FileUnit string     `json:"file_unit"`
	Unit     units.Unit `json:"unit"`
	APICode  string     `json:"api_code,omitempty"`
	Comment  string     `json:"comment,omitempty"`
}

// UnitSymbol is the unit written for the curve: the resolved symbol when
// the unit is known, otherwise the unit as it appeared in the file.
func (c CurveDefinition) UnitSymbol() string {
	if c.Unit.IsDefined() {
		return c.Unit.Symbol
	}
	return c.FileUnit
}

// IsDepth reports whether the curve is named DEPT or DEPTH.
func (c CurveDefinition) IsDepth() bool {
	return strings.EqualFold(c.Mnemonic, "DEPT") || strings.EqualFold(c.Mnemonic, "DEPTH")
}

// Header carries everything parsed from the ~V and ~W sections.
type Header struct {
	Version        string
	Wrapped        bool
	Delimiter      Delimiter
	DelimiterToken string
	NullValue      float64
	Well           WellMetadata
	Range          DataRange
}

func (h Header) clone() Header {
	out := h
	out.Well = h.Well.clone()
	out.Range = h.Range.clone()
	return out
}

// Document is a parsed LAS file. It is immutable; accessors return copies.
type Document struct {
	header    Header
	curves    []CurveDefinition
	index     map[string]int
	data      [][]float64
	samples   int
	indexUnit units.Unit
}

// NewDocument builds a Document from parts. data is column-major with one
// slice per curve; all columns must have the same length. The inputs are
// copied.
func NewDocument(h Header, curves []CurveDefinition, data [][]float64) (*Document, error) {
	if math.IsNaN(h.NullValue) {
		return nil, ErrInvalidNullValue
	}
	if len(curves) == 0 {
		return nil, ErrNoCurves
	}
	if len(curves) != len(data) {
		return nil, fmt.Errorf("%w: %d curves, %d columns", ErrShapeMismatch, len(curves), len(data))
	}
	seen := make(map[string]struct{}, len(curves))
	for _, c := range curves {
		if _, dup := seen[c.Mnemonic]; dup {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateMnemonic, c.Mnemonic)
		}
		seen[c.Mnemonic] = struct{}{}
	}
	for i, col := range data {
		if len(col) != len(data[0]) {
			return nil, fmt.Errorf("%w: column %s has %d samples, want %d",
				ErrShapeMismatch, curves[i].Mnemonic, len(col), len(data[0]))
		}
	}

	cs := make([]CurveDefinition, len(curves))
	copy(cs, curves)
	return newDocument(h.clone(), cs, cloneMatrix(data)), nil
}

// newDocument takes ownership of its arguments, which must already satisfy
// the Document invariants.
func newDocument(h Header, curves []CurveDefinition, data [][]float64) *Document {
	index := make(map[string]int, len(curves))
	for i, c := range curves {
		index[c.Mnemonic] = i
	}
	samples := 0
	if len(data) > 0 {
		samples = len(data[0])
	}
	return &Document{
		header:    h,
		curves:    curves,
		index:     index,
		data:      data,
		samples:   samples,
		indexUnit: units.DepthUnit(curves[0].FileUnit),
	}
}

// Header returns a copy of the parsed header.
func (d *Document) Header() Header { return d.header.clone() }

func (d *Document) Version() string        { return d.header.Version }
func (d *Document) Wrapped() bool          { return d.header.Wrapped }
func (d *Document) Delimiter() Delimiter   { return d.header.Delimiter }
func (d *Document) DelimiterToken() string { return d.header.DelimiterToken }
func (d *Document) NullValue() float64     { return d.header.NullValue }
func (d *Document) Well() WellMetadata     { return d.header.Well.clone() }
func (d *Document) Range() DataRange       { return d.header.Range.clone() }

// NumSamples is the number of decoded data records.
func (d *Document) NumSamples() int { return d.samples }

// EstimatedSamples is the record count implied by STRT, STOP and STEP.
func (d *Document) EstimatedSamples() (int, bool) { return d.header.Range.EstimatedSamples() }

// IndexUnit is the depth unit guessed from the first curve's unit.
func (d *Document) IndexUnit() units.Unit { return d.indexUnit }

// NumCurves returns the number of curves.
func (d *Document) NumCurves() int { return len(d.curves) }

// Curves returns the curve definitions in file order.
func (d *Document) Curves() []CurveDefinition {
	out := make([]CurveDefinition, len(d.curves))
	copy(out, d.curves)
	return out
}

// Curve returns the definition of the named curve.
func (d *Document) Curve(mnemonic string) (CurveDefinition, bool) {
	i, ok := d.index[mnemonic]
	if !ok {
		return CurveDefinition{}, false
	}
	return d.curves[i], true
}

// CurveIndex returns the column position of the named curve.
func (d *Document) CurveIndex(mnemonic string) (int, bool) {
	i, ok := d.index[mnemonic]
	return i, ok
}

// DepthCurve returns the position of the first curve named DEPT or DEPTH.
func (d *Document) DepthCurve() (int, bool) {
	for i, c := range d.curves {
		if c.IsDepth() {
			return i, true
		}
	}
	return 0, false
}

// Data returns a copy of the column-major sample matrix.
func (d *Document) Data() [][]float64 { return cloneMatrix(d.data) }

// Column returns a copy of one curve's samples.
func (d *Document) Column(mnemonic string) ([]float64, bool) {
	i, ok := d.index[mnemonic]
	if !ok {
		return nil, false
	}
	out := make([]float64, len(d.data[i]))
	copy(out, d.data[i])
	return out, true
}

// IsNull reports whether v is the document's null value or NaN.
func (d *Document) IsNull(v float64) bool {
	return math.IsNaN(v) || v == d.header.NullValue
}

// Select returns a new Document holding only the named curves, in the order
// given. An empty selection copies every curve. Repeated names are kept once.
func (d *Document) Select(mnemonics []string) (*Document, error) {
	positions, err := d.resolve(mnemonics)
	if err != nil {
		return nil, err
	}
	curves := make([]CurveDefinition, len(positions))
	data := make([][]float64, len(positions))
	for i, p := range positions {
		curves[i] = d.curves[p]
		data[i] = make([]float64, len(d.data[p]))
		copy(data[i], d.data[p])
	}
	return newDocument(d.header.clone(), curves, data), nil
}

// resolve maps curve names to column positions, dropping repeats.
func (d *Document) resolve(mnemonics []string) ([]int, error) {
	if len(mnemonics) == 0 {
		all := make([]int, len(d.curves))
		for i := range all {
			all[i] = i
		}
		return all, nil
	}
	seen := make(map[int]struct{}, len(mnemonics))
	positions := make([]int, 0, len(mnemonics))
	for _, name := range mnemonics {
		i, ok := d.index[name]
		if !ok {
			return nil, fmt.Errorf("%w: %s", ErrUnknownCurve, name)
		}
		if _, dup := seen[i]; dup {
			continue
		}
		seen[i] = struct{}{}
		positions = append(positions, i)
	}
	return positions, nil
}

func cloneMatrix(in [][]float64) [][]float64 {
	out := make([][]float64, len(in))
	for i, col := range in {
		out[i] = make([]float64, len(col))
		copy(out[i], col)
	}
	return out
}

func cloneFloat(v *float64) *float64 {
	if v == nil {
		return nil
	}
	c := *v
	return &c
}

func cloneTime(v *time.Time) *time.Time {
	if v == nil {
		return nil
	}
	c := *v
	return &c
}
