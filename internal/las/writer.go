package las

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

const defaultColumnWidth = 12

// WriterOptions controls the layout of the ~A block.
type WriterOptions struct {
	// ColumnWidth is the minimum width of each data column. Zero means 12.
	ColumnWidth int
	// Precision is the minimum number of decimals written. Zero or a
	// negative value writes the shortest representation of each value. A
	// column is widened past Precision whenever fewer decimals would not
	// read back as the same float.
	Precision int
}

// Writer serialises documents as LAS 2.0 text.
type Writer struct {
	width     int
	precision int
}

// NewWriter returns a Writer with opts applied over the defaults.
func NewWriter(opts WriterOptions) *Writer {
	w := &Writer{width: opts.ColumnWidth, precision: opts.Precision}
	if w.width <= 0 {
		w.width = defaultColumnWidth
	}
	if w.precision <= 0 {
		w.precision = -1
	}
	return w
}

// Write serialises doc with the default options.
func Write(doc *Document, selected []string) ([]string, error) {
	return NewWriter(WriterOptions{}).Write(doc, selected)
}

// Write serialises the selected curves of doc. An empty selection writes
// every curve. A DEPT or DEPTH curve is always written, and always first.
// The output is unwrapped and space delimited.
func (w *Writer) Write(doc *Document, selected []string) ([]string, error) {
	if doc == nil || doc.NumCurves() == 0 {
		return nil, ErrNoCurvesSelected
	}
	order, err := columnOrder(doc, selected)
	if err != nil {
		return nil, err
	}
	if len(order) == 0 {
		return nil, ErrNoCurvesSelected
	}

	var out []string
	out = w.appendVersion(out)
	out = w.appendWell(out, doc, order)
	out = w.appendCurves(out, doc, order)
	out = w.appendData(out, doc, order)
	return out, nil
}

// columnOrder resolves the selection to column positions with the depth
// curve moved to the front.
func columnOrder(doc *Document, selected []string) ([]int, error) {
	positions, err := doc.resolve(selected)
	if err != nil {
		return nil, err
	}
	depth, ok := doc.DepthCurve()
	if !ok {
		return positions, nil
	}
	order := make([]int, 0, len(positions)+1)
	order = append(order, depth)
	for _, p := range positions {
		if p != depth {
			order = append(order, p)
		}
	}
	return order, nil
}

func (w *Writer) appendVersion(out []string) []string {
	return append(out,
		"~Version Information",
		recordLine("VERS", "", "2.0", "CWLS LOG ASCII STANDARD - VERSION 2.0"),
		recordLine("WRAP", "", "NO", "ONE LINE PER DEPTH STEP"),
		recordLine("DLM", "", "SPACE", "DELIMITING CHARACTER"),
	)
}

func (w *Writer) appendWell(out []string, doc *Document, order []int) []string {
	index := doc.curves[order[0]]
	unit := index.UnitSymbol()
	start, stop, step := w.indexRange(doc.data[order[0]], doc.header.Range)
	well := doc.header.Well

	out = append(out,
		"~Well Information",
		"#MNEM.UNIT                  DATA : DESCRIPTION",
		recordLine("STRT", unit, start, "START DEPTH"),
		recordLine("STOP", unit, stop, "STOP DEPTH"),
		recordLine("STEP", unit, step, "STEP"),
		recordLine("NULL", "", formatShortest(doc.header.NullValue), "NULL VALUE"),
		recordLine("COMP", "", well.Company, "COMPANY"),
		recordLine("WELL", "", well.Name, "WELL"),
		recordLine("FLD", "", well.Field, "FIELD"),
		recordLine("LOC", "", well.Location, "LOCATION"),
		recordLine("SRVC", "", well.ServiceCompany, "SERVICE COMPANY"),
	)

	ctry := well.CountryCode
	if ctry == "" {
		ctry = well.Country.String()
	}
	out = append(out, recordLine("CTRY", "", ctry, "COUNTRY"))

	date := ""
	if well.ServiceDate != nil {
		date = well.ServiceDate.Format("2006-01-02")
	}
	out = append(out, recordLine("DATE", "", date, "LOG DATE"))

	if well.GeodeticDatum != "" {
		out = append(out, recordLine("GDAT", "", well.GeodeticDatum, "GEODETIC DATUM"))
	}
	if well.HorizontalCRS != "" {
		out = append(out, recordLine("HZCS", "", well.HorizontalCRS, "HORIZONTAL CO-ORDINATE SYSTEM"))
	}
	out = appendOptionalFloat(out, "LAT", "DEG", well.Latitude, "LATITUDE")
	out = appendOptionalFloat(out, "LONG", "DEG", well.Longitude, "LONGITUDE")
	out = appendOptionalFloat(out, "X", "", well.X, "X OR EAST-WEST CO-ORDINATE")
	out = appendOptionalFloat(out, "Y", "", well.Y, "Y OR NORTH-SOUTH CO-ORDINATE")

	switch well.Country {
	case CountryUS:
		out = append(out,
			recordLine("STAT", "", well.US.State, "STATE"),
			recordLine("CNTY", "", well.US.County, "COUNTY"),
			recordLine("API", "", well.US.API, "API NUMBER"),
		)
	case CountryCanada:
		out = append(out,
			recordLine("PROV", "", well.Canada.Province, "PROVINCE"),
			recordLine("UWI", "", well.Canada.UWI, "UNIQUE WELL ID"),
			recordLine("LIC", "", well.Canada.License, "LICENSE NUMBER"),
		)
	}
	return out
}

// indexRange derives STRT, STOP and STEP from the emitted index column.
// With no samples the declared range is written instead.
func (w *Writer) indexRange(index []float64, declared DataRange) (string, string, string) {
	n := len(index)
	if n == 0 {
		return w.optionalNumber(declared.Start), w.optionalNumber(declared.Stop), w.optionalNumber(declared.Step)
	}
	first, last := index[0], index[n-1]
	step := 0.0
	if n > 1 {
		step = (last - first) / float64(n-1)
	}
	return w.number(first), w.number(last), w.number(step)
}

func (w *Writer) appendCurves(out []string, doc *Document, order []int) []string {
	out = append(out,
		"~Curve Information",
		"#MNEM.UNIT              API CODE : CURVE DESCRIPTION",
	)
	for _, p := range order {
		c := doc.curves[p]
		out = append(out, recordLine(c.Mnemonic, c.UnitSymbol(), c.APICode, c.Comment))
	}
	return out
}

func (w *Writer) appendData(out []string, doc *Document, order []int) []string {
	names := make([]string, len(order))
	for i, p := range order {
		names[i] = doc.curves[p].Mnemonic
	}
	out = append(out, "~ASCII "+strings.Join(names, " "))

	null := fmt.Sprintf("%*s", w.width, formatShortest(doc.header.NullValue))
	digits := make([]int, len(order))
	for i, p := range order {
		digits[i] = w.columnDecimals(doc, doc.data[p])
	}

	var b strings.Builder
	for r := 0; r < doc.samples; r++ {
		b.Reset()
		for i, p := range order {
			if i > 0 {
				b.WriteByte(' ')
			}
			v := doc.data[p][r]
			if doc.IsNull(v) || math.IsInf(v, 0) {
				b.WriteString(null)
				continue
			}
			fmt.Fprintf(&b, "%*s", w.width, strconv.FormatFloat(v, 'f', digits[i], 64))
		}
		out = append(out, b.String())
	}
	return out
}

// columnDecimals is the decimal count shared by one data column: at least
// the configured precision and enough for every written value to read back
// exactly. Shortest mode returns -1.
func (w *Writer) columnDecimals(doc *Document, col []float64) int {
	if w.precision < 0 {
		return -1
	}
	d := w.precision
	for _, v := range col {
		if doc.IsNull(v) || math.IsInf(v, 0) {
			continue
		}
		d = max(d, exactDecimals(v))
	}
	return d
}

func (w *Writer) number(v float64) string {
	if w.precision < 0 {
		return formatShortest(v)
	}
	return strconv.FormatFloat(v, 'f', max(w.precision, exactDecimals(v)), 64)
}

// exactDecimals is the number of decimals in the shortest form of v that
// parses back to v.
func exactDecimals(v float64) int {
	s := formatShortest(v)
	if i := strings.IndexByte(s, '.'); i >= 0 {
		return len(s) - i - 1
	}
	return 0
}

func (w *Writer) optionalNumber(v *float64) string {
	if v == nil {
		return ""
	}
	return w.number(*v)
}

func appendOptionalFloat(out []string, mnem, unit string, v *float64, desc string) []string {
	if v == nil {
		return out
	}
	return append(out, recordLine(mnem, unit, formatShortest(*v), desc))
}

func formatShortest(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// recordLine formats a header record so that SplitHeaderRecord recovers the
// same fields. A colon in value cannot survive: readers end the value at the
// first colon.
func recordLine(mnem, unit, value, desc string) string {
	if i := strings.IndexByte(value, ':'); i >= 0 {
		opsf("%s: value %q contains ':' and will read back as %q", mnem, value, strings.TrimSpace(value[:i]))
	}
	return fmt.Sprintf(" %-4s.%-8s %16s : %s", mnem, unit, value, desc)
}
