package las

import (
	"math"
	"strings"

	"github.com/banshee-data/welllog/internal/units"
)

type section int

const (
	sectionNone section = iota
	sectionVersion
	sectionWell
	sectionCurve
	sectionSkip
	sectionData
)

func (s section) String() string {
	switch s {
	case sectionVersion:
		return "version"
	case sectionWell:
		return "well"
	case sectionCurve:
		return "curve"
	case sectionSkip:
		return "skip"
	case sectionData:
		return "data"
	default:
		return "none"
	}
}

// sectionFor classifies a '~' line by the letter that follows the tilde.
func sectionFor(marker string) section {
	if len(marker) < 2 {
		return sectionSkip
	}
	switch marker[1] {
	case 'V', 'v':
		return sectionVersion
	case 'W', 'w':
		return sectionWell
	case 'C', 'c':
		return sectionCurve
	case 'A', 'a':
		return sectionData
	default:
		// ~P, ~O and anything unrecognised.
		return sectionSkip
	}
}

// Parse reads a LAS file given as lines without terminators. Units are
// resolved through lookup, which may be nil.
func Parse(lines []string, lookup units.Lookup) (*Document, error) {
	if len(lines) == 0 {
		return nil, &ParseError{Err: ErrEmptyInput}
	}

	p := newHeaderParser(lines, lookup)
	if err := p.run(); err != nil {
		return nil, err
	}

	spec := DecodeSpec{
		CurveCount: len(p.curves),
		Wrapped:    p.header.Wrapped,
		Delimiter:  p.header.Delimiter,
		NullValue:  p.header.NullValue,
	}
	rows, err := decodeData(lines[p.cursor:], spec, p.cursor)
	if err != nil {
		return nil, err
	}

	data := assemble(rows, len(p.curves))
	tracef("parsed %d curves, %d samples", len(p.curves), len(rows))
	return newDocument(p.header, p.curves, data), nil
}

// headerParser walks the header sections with a cursor. After run returns
// nil, cursor is the index of the first line after the ~A marker.
type headerParser struct {
	lines   []string
	cursor  int
	section section
	lookup  units.Lookup

	header   Header
	curves   []CurveDefinition
	names    *mnemonicSet
	nullSeen bool
	dlmSeen  bool
}

func newHeaderParser(lines []string, lookup units.Lookup) *headerParser {
	return &headerParser{lines: lines, lookup: lookup}
}

func (p *headerParser) run() error {
	for p.cursor < len(p.lines) {
		lineNo := p.cursor + 1
		line := strings.TrimSpace(p.lines[p.cursor])
		p.cursor++

		if line == "" || line[0] == '#' {
			continue
		}
		if line[0] == '~' {
			p.enter(sectionFor(line), lineNo)
			if p.section == sectionData {
				return p.finish(lineNo)
			}
			continue
		}

		switch p.section {
		case sectionVersion:
			p.versionRecord(SplitHeaderRecord(line), lineNo)
		case sectionWell:
			rec := SplitHeaderRecord(line)
			if rec.IsZero() {
				continue
			}
			if err := applyWellRecord(&p.header, rec, p.legacy(), lineNo); err != nil {
				return err
			}
			if strings.EqualFold(rec.Mnemonic, "NULL") {
				p.nullSeen = true
			}
		case sectionCurve:
			p.curveRecord(SplitHeaderRecord(line), lineNo)
		case sectionNone, sectionSkip:
			// Content outside a known section is not modelled.
		}
	}
	return &ParseError{Err: ErrNoDataSection}
}

func (p *headerParser) enter(s section, lineNo int) {
	tracef("line %d: entering %s section", lineNo, s)
	if s == sectionCurve && p.names == nil {
		p.names = newMnemonicSet(p.literalMnemonics())
	}
	p.section = s
}

// literalMnemonics collects every mnemonic declared in the curve section
// that starts at the cursor.
func (p *headerParser) literalMnemonics() []string {
	var names []string
	for _, raw := range p.lines[p.cursor:] {
		line := strings.TrimSpace(raw)
		if line == "" || line[0] == '#' {
			continue
		}
		if line[0] == '~' {
			break
		}
		if rec := SplitHeaderRecord(line); rec.Mnemonic != "" {
			names = append(names, rec.Mnemonic)
		}
	}
	return names
}

// legacy reports whether the file declared a LAS 1.x version.
func (p *headerParser) legacy() bool {
	return strings.HasPrefix(p.header.Version, "1.")
}

func (p *headerParser) versionRecord(rec HeaderRecord, lineNo int) {
	switch strings.ToUpper(rec.Mnemonic) {
	case "VERS":
		p.header.Version = rec.Value
	case "WRAP":
		p.header.Wrapped = strings.EqualFold(rec.Value, "YES")
	case "DLM":
		p.dlmSeen = true
		p.header.DelimiterToken = rec.Value
	case "":
	default:
		tracef("line %d: ignoring version record %s", lineNo, rec.Mnemonic)
	}
}

func (p *headerParser) curveRecord(rec HeaderRecord, lineNo int) {
	if rec.Mnemonic == "" {
		diagf("line %d: curve record without a mnemonic, skipping", lineNo)
		return
	}
	name := p.names.add(rec.Mnemonic)
	if name != rec.Mnemonic {
		diagf("line %d: duplicate curve %s renamed to %s", lineNo, rec.Mnemonic, name)
	}
	p.curves = append(p.curves, CurveDefinition{
		Mnemonic: name,
		FileUnit: rec.Unit,
		Unit:     units.Resolve(p.lookup, rec.Unit),
		APICode:  rec.Value,
		Comment:  rec.Description,
	})
}

// finish validates the header once the ~A marker is reached.
func (p *headerParser) finish(lineNo int) error {
	if len(p.curves) == 0 {
		return &ParseError{Line: lineNo, Err: ErrNoCurves}
	}
	if !p.nullSeen {
		diagf("no NULL record, using %g", DefaultNullValue)
		p.header.NullValue = DefaultNullValue
	}
	if math.IsNaN(p.header.NullValue) || math.IsInf(p.header.NullValue, 0) {
		return &ParseError{Err: ErrInvalidNullValue}
	}

	p.header.Delimiter = ResolveDelimiter(p.header.DelimiterToken, p.dlmSeen)
	if p.header.Delimiter == DelimiterInvalid {
		diagf("unrecognised DLM %q, decoding as SPACE", p.header.DelimiterToken)
	}
	p.header.Well.Country = InferCountry(p.header.Well)
	return nil
}
