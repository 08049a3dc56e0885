package las

import (
	"strconv"
	"strings"
)

// DecodeSpec describes how to split the ~A block into records.
type DecodeSpec struct {
	CurveCount int
	Wrapped    bool
	Delimiter  Delimiter
	NullValue  float64
}

func (s DecodeSpec) nullText() string {
	return strconv.FormatFloat(s.NullValue, 'f', -1, 64)
}

// DecodeData splits the lines following the ~A marker into records of
// exactly CurveCount tokens.
//
// Unwrapped data is one record per line; short rows are padded with the
// null value and long rows truncated. Wrapped data starts each record on a
// fresh line and keeps appending lines until CurveCount tokens are held.
func DecodeData(lines []string, spec DecodeSpec) ([][]string, error) {
	return decodeData(lines, spec, 0)
}

// decodeData reports line numbers relative to offset, the position of
// lines[0] in the whole file.
func decodeData(lines []string, spec DecodeSpec, offset int) ([][]string, error) {
	if spec.CurveCount <= 0 {
		return nil, &DecodeError{Err: ErrNoCurves}
	}
	if spec.Wrapped {
		return decodeWrapped(lines, spec, offset)
	}
	return decodeUnwrapped(lines, spec, offset), nil
}

func decodeUnwrapped(lines []string, spec DecodeSpec, offset int) [][]string {
	null := spec.nullText()
	var rows [][]string
	for i, line := range lines {
		if isSkippableData(line) {
			continue
		}
		fields := splitFields(line, spec.Delimiter, null)
		if len(fields) != spec.CurveCount {
			diagf("line %d: %d values for %d curves, fitting row", offset+i+1, len(fields), spec.CurveCount)
		}
		rows = append(rows, fitRow(fields, spec.CurveCount, null))
	}
	return rows
}

func decodeWrapped(lines []string, spec DecodeSpec, offset int) ([][]string, error) {
	if spec.Delimiter == DelimiterInvalid {
		return nil, &DecodeError{Err: ErrWrappedDelimiter}
	}

	null := spec.nullText()
	var (
		rows    [][]string
		pending []string
		start   int
	)
	for i, line := range lines {
		if isSkippableData(line) {
			continue
		}
		if len(pending) == 0 {
			start = offset + i + 1
		}
		pending = append(pending, splitFields(line, spec.Delimiter, null)...)
		if len(pending) < spec.CurveCount {
			continue
		}
		if len(pending) > spec.CurveCount {
			diagf("line %d: record has %d values for %d curves, dropping the excess",
				start, len(pending), spec.CurveCount)
		}
		rows = append(rows, pending[:spec.CurveCount:spec.CurveCount])
		tracef("line %d: wrapped record complete", start)
		pending = nil
	}

	if len(pending) > 0 {
		if len(rows) == 0 {
			return nil, &DecodeError{Line: start, Err: ErrIncompleteRecord}
		}
		opsf("line %d: dropping incomplete wrapped record (%d of %d values)",
			start, len(pending), spec.CurveCount)
	}
	return rows, nil
}

func isSkippableData(line string) bool {
	t := strings.TrimSpace(line)
	return t == "" || t[0] == '#'
}

// splitFields tokenises one data line. Space data splits on whitespace runs;
// comma and tab data split positionally and empty segments become null.
func splitFields(line string, d Delimiter, null string) []string {
	sep, positional := d.separator()
	if !positional {
		return strings.Fields(line)
	}
	parts := strings.Split(strings.TrimRight(line, "\r\n"), sep)
	for i, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" {
			p = null
		}
		parts[i] = p
	}
	return parts
}

func fitRow(fields []string, n int, null string) []string {
	if len(fields) >= n {
		return fields[:n:n]
	}
	row := make([]string, n)
	copy(row, fields)
	for i := len(fields); i < n; i++ {
		row[i] = null
	}
	return row
}

// assemble converts token rows into a column-major matrix. A cell that does
// not parse is left at zero.
func assemble(rows [][]string, curveCount int) [][]float64 {
	data := make([][]float64, curveCount)
	for c := range data {
		data[c] = make([]float64, len(rows))
	}
	bad := 0
	for r, row := range rows {
		for c := 0; c < curveCount && c < len(row); c++ {
			v, err := strconv.ParseFloat(row[c], 64)
			if err != nil {
				bad++
				continue
			}
			data[c][r] = v
		}
	}
	if bad > 0 {
		diagf("%d data cells did not parse and were set to 0", bad)
	}
	return data
}
