package las

import "strings"

// HeaderRecord is one "MNEM.UNIT VALUE : DESCRIPTION" header line.
type HeaderRecord struct {
	Mnemonic    string
	Unit        string
	Value       string
	Description string
}

// IsZero reports whether the record is empty, which is what
// SplitHeaderRecord returns for lines it cannot split.
func (r HeaderRecord) IsZero() bool {
	return r == HeaderRecord{}
}

// SplitHeaderRecord splits a header line positionally. The mnemonic runs to
// the first '.', the unit from there to the first space, and the rest is
// divided at the first ':' into value and description.
//
// A line with neither '.' nor ':' yields the zero record. A line with a ':'
// but no '.' has a mnemonic and description only.
func SplitHeaderRecord(line string) HeaderRecord {
	dot := strings.IndexByte(line, '.')
	if dot < 0 {
		colon := strings.IndexByte(line, ':')
		if colon < 0 {
			return HeaderRecord{}
		}
		return HeaderRecord{
			Mnemonic:    strings.TrimSpace(line[:colon]),
			Description: strings.TrimSpace(line[colon+1:]),
		}
	}

	rec := HeaderRecord{Mnemonic: strings.TrimSpace(line[:dot])}
	rest := line[dot+1:]
	if sp := strings.IndexByte(rest, ' '); sp >= 0 {
		rec.Unit = rest[:sp]
		rest = rest[sp+1:]
	} else {
		rec.Unit = rest
		rest = ""
	}

	rest = strings.TrimSpace(rest)
	if colon := strings.IndexByte(rest, ':'); colon >= 0 {
		rec.Value = strings.TrimSpace(rest[:colon])
		rec.Description = strings.TrimSpace(rest[colon+1:])
	} else {
		rec.Value = rest
	}
	return rec
}
