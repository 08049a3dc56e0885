package las

import "strings"

// Delimiter is the field separator declared by the DLM header record.
type Delimiter int

const (
	// DelimiterUnspecified means no usable DLM record was found.
	DelimiterUnspecified Delimiter = iota
	DelimiterSpace
	DelimiterComma
	DelimiterTab
	// DelimiterInvalid means DLM named something other than SPACE, COMMA or
	// TAB. Data is still decoded as space separated.
	DelimiterInvalid
)

func (d Delimiter) String() string {
	switch d {
	case DelimiterSpace:
		return "SPACE"
	case DelimiterComma:
		return "COMMA"
	case DelimiterTab:
		return "TAB"
	case DelimiterInvalid:
		return "INVALID"
	default:
		return "UNSPECIFIED"
	}
}

// MarshalText renders the delimiter by name.
func (d Delimiter) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// separator returns the positional separator for comma and tab data, and
// false for whitespace-run splitting.
func (d Delimiter) separator() (string, bool) {
	switch d {
	case DelimiterComma:
		return ",", true
	case DelimiterTab:
		return "\t", true
	default:
		return "", false
	}
}

// ResolveDelimiter maps the value of a DLM record to a Delimiter. present
// is false when the header had no DLM record at all.
func ResolveDelimiter(token string, present bool) Delimiter {
	if !present {
		return DelimiterUnspecified
	}
	switch strings.ToUpper(strings.TrimSpace(token)) {
	case "":
		return DelimiterUnspecified
	case "SPACE":
		return DelimiterSpace
	case "COMMA":
		return DelimiterComma
	case "TAB":
		return DelimiterTab
	default:
		return DelimiterInvalid
	}
}
