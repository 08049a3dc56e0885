// Package units resolves the unit tokens found in well-log headers against a
// catalogue of canonical units.
package units

import "strings"

// Unit is a canonical unit of measure.
type Unit struct {
	Name     string `json:"name"`
	Symbol   string `json:"symbol"`
	Quantity string `json:"quantity"`
}

// Undefined is returned when a raw unit token cannot be resolved.
var Undefined = Unit{Name: "undefined"}

// Depth units produced by DepthUnit.
var (
	Foot  = Unit{Name: "foot", Symbol: "ft", Quantity: "length"}
	Metre = Unit{Name: "metre", Symbol: "m", Quantity: "length"}
)

// IsDefined reports whether u is a resolved unit.
func (u Unit) IsDefined() bool {
	return u.Name != "" && u != Undefined
}

// Lookup finds canonical units by name or by symbol.
type Lookup interface {
	LookupByName(name string) (Unit, bool)
	LookupBySymbol(symbol string) (Unit, bool)
}

// Resolve maps a raw unit token to a canonical unit. The token is tried as a
// name first and then as a symbol; Undefined is returned when neither
// matches or when lookup is nil.
func Resolve(lookup Lookup, raw string) Unit {
	raw = strings.TrimSpace(raw)
	if lookup == nil || raw == "" {
		return Undefined
	}
	if u, ok := lookup.LookupByName(raw); ok {
		return u
	}
	if u, ok := lookup.LookupBySymbol(raw); ok {
		return u
	}
	return Undefined
}

// DepthUnit guesses the depth unit of an index curve from its raw unit
// token: anything containing an "f" is feet, everything else is metres.
// This is a heuristic and misclassifies tokens such as "FATHOM".
func DepthUnit(raw string) Unit {
	if strings.ContainsAny(raw, "fF") {
		return Foot
	}
	return Metre
}
