package las

import (
	"math"
	"strconv"
	"strings"
	"time"
)

// serviceDateLayouts are tried in order when parsing the DATE record.
var serviceDateLayouts = []string{
	"2006-01-02",
	"2006/01/02",
	"02-Jan-2006",
	"02-Jan-06",
	"01/02/2006",
	"02 Jan 2006",
	"Jan 2, 2006",
	"2-Jan-2006",
}

// applyWellRecord applies one ~W record to h. legacy selects the LAS 1.x rule
// that free-text values live in the description. Only a malformed NULL is
// an error.
func applyWellRecord(h *Header, rec HeaderRecord, legacy bool, line int) error {
	text := rec.Value
	if legacy && rec.Description != "" {
		text = rec.Description
	}
	w := &h.Well

	switch strings.ToUpper(rec.Mnemonic) {
	case "STRT":
		h.Range.Start = parseHeaderFloat(rec, line)
		h.Range.Unit = rec.Unit
	case "STOP":
		h.Range.Stop = parseHeaderFloat(rec, line)
	case "STEP":
		h.Range.Step = parseHeaderFloat(rec, line)
	case "NULL":
		v, err := strconv.ParseFloat(strings.TrimSpace(rec.Value), 64)
		if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
			return &ParseError{Line: line, Err: ErrInvalidNullValue}
		}
		h.NullValue = v
	case "WELL":
		w.Name = text
	case "COMP":
		w.Company = text
	case "FLD":
		w.Field = text
	case "LOC":
		w.Location = text
	case "SRVC":
		w.ServiceCompany = text
	case "CTRY":
		w.CountryCode = text
	case "DATE":
		w.ServiceDate = parseServiceDate(text, line)
	case "GDAT":
		w.GeodeticDatum = text
	case "HZCS":
		w.HorizontalCRS = text
	case "LAT", "LATI":
		w.Latitude = parseHeaderFloat(rec, line)
	case "LONG", "LON":
		w.Longitude = parseHeaderFloat(rec, line)
	case "X":
		w.X = parseHeaderFloat(rec, line)
	case "Y":
		w.Y = parseHeaderFloat(rec, line)
	case "STAT":
		w.US.State = text
	case "CNTY":
		w.US.County = text
	case "API":
		w.US.API = text
	case "PROV":
		w.Canada.Province = text
	case "UWI":
		w.Canada.UWI = text
	case "LIC":
		w.Canada.License = text
	default:
		tracef("line %d: ignoring well record %s", line, rec.Mnemonic)
	}
	return nil
}

// parseHeaderFloat parses a numeric header value. Empty, malformed or
// non-finite values leave the field unset.
func parseHeaderFloat(rec HeaderRecord, line int) *float64 {
	s := strings.TrimSpace(rec.Value)
	if s == "" {
		return nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		diagf("line %d: %s value %q is not numeric, leaving unset", line, rec.Mnemonic, s)
		return nil
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		diagf("line %d: %s value %q is not finite, leaving unset", line, rec.Mnemonic, s)
		return nil
	}
	return &v
}

func parseServiceDate(s string, line int) *time.Time {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	for _, layout := range serviceDateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return &t
		}
	}
	diagf("line %d: unrecognised DATE %q, leaving unset", line, s)
	return nil
}

// InferCountry decides the jurisdiction of a well. US identifiers win over
// Canadian ones; an explicit CTRY code is only consulted when neither group
// has any field set.
func InferCountry(w WellMetadata) Country {
	if !w.US.isZero() {
		return CountryUS
	}
	if !w.Canada.isZero() {
		return CountryCanada
	}
	switch strings.ToLower(strings.TrimSpace(w.CountryCode)) {
	case "us", "usa":
		return CountryUS
	case "ca", "can", "canada":
		return CountryCanada
	}
	return CountryUnknown
}
