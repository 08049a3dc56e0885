package units

import (
	"embed"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
)

//go:embed catalogue/units.csv
var embeddedCatalogue embed.FS

// Catalogue is an in-memory unit table that implements Lookup.
type Catalogue struct {
	units    []Unit
	byName   map[string]int
	bySymbol map[string]int
	byFolded map[string]int
}

var (
	defaultOnce      sync.Once
	defaultCatalogue *Catalogue
	defaultErr       error
)

// DefaultCatalogue returns the catalogue compiled into the binary. It is
// loaded once and shared; Catalogue is read-only after construction.
func DefaultCatalogue() (*Catalogue, error) {
	defaultOnce.Do(func() {
		defaultCatalogue, defaultErr = LoadEmbeddedCatalogue()
	})
	return defaultCatalogue, defaultErr
}

// LoadEmbeddedCatalogue parses the embedded units.csv.
func LoadEmbeddedCatalogue() (*Catalogue, error) {
	file, err := embeddedCatalogue.Open("catalogue/units.csv")
	if err != nil {
		return nil, fmt.Errorf("failed to open embedded unit catalogue: %w", err)
	}
	defer file.Close()
	return LoadCatalogue(file)
}

// LoadCatalogueFile parses a unit catalogue CSV from disk.
func LoadCatalogueFile(path string) (*Catalogue, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open unit catalogue %s: %w", path, err)
	}
	defer file.Close()
	return LoadCatalogue(file)
}

// LoadCatalogue parses a unit catalogue with the header
// name,symbol,quantity,aliases. Aliases are alternative symbols separated by
// semicolons.
func LoadCatalogue(r io.Reader) (*Catalogue, error) {
	reader := csv.NewReader(r)
	reader.Comment = '#'
	reader.FieldsPerRecord = -1
	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read unit catalogue: %w", err)
	}
	return parseCatalogue(records)
}

func parseCatalogue(records [][]string) (*Catalogue, error) {
	if len(records) < 2 {
		return nil, fmt.Errorf("insufficient data in unit catalogue")
	}

	header := records[0]
	if len(header) < 3 ||
		strings.ToLower(strings.TrimSpace(header[0])) != "name" ||
		strings.ToLower(strings.TrimSpace(header[1])) != "symbol" ||
		strings.ToLower(strings.TrimSpace(header[2])) != "quantity" {
		return nil, fmt.Errorf("invalid header in unit catalogue, expected: name,symbol,quantity,aliases")
	}

	c := &Catalogue{
		byName:   make(map[string]int),
		bySymbol: make(map[string]int),
		byFolded: make(map[string]int),
	}
	for i, record := range records[1:] {
		if len(record) < 3 {
			return nil, fmt.Errorf("invalid record at line %d: expected at least 3 fields", i+2)
		}
		u := Unit{
			Name:     strings.TrimSpace(record[0]),
			Symbol:   strings.TrimSpace(record[1]),
			Quantity: strings.TrimSpace(record[2]),
		}
		if u.Name == "" || u.Symbol == "" {
			return nil, fmt.Errorf("invalid record at line %d: name and symbol are required", i+2)
		}
		if _, dup := c.byName[strings.ToLower(u.Name)]; dup {
			return nil, fmt.Errorf("duplicate unit name %q at line %d", u.Name, i+2)
		}

		idx := len(c.units)
		c.units = append(c.units, u)
		c.byName[strings.ToLower(u.Name)] = idx

		symbols := []string{u.Symbol}
		if len(record) > 3 {
			for _, alias := range strings.Split(record[3], ";") {
				if alias = strings.TrimSpace(alias); alias != "" {
					symbols = append(symbols, alias)
				}
			}
		}
		for _, s := range symbols {
			// First registration wins for both indexes.
			if _, taken := c.bySymbol[s]; !taken {
				c.bySymbol[s] = idx
			}
			if _, taken := c.byFolded[strings.ToUpper(s)]; !taken {
				c.byFolded[strings.ToUpper(s)] = idx
			}
		}
	}
	return c, nil
}

// LookupByName matches a canonical unit name, ignoring case.
func (c *Catalogue) LookupByName(name string) (Unit, bool) {
	idx, ok := c.byName[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return Undefined, false
	}
	return c.units[idx], true
}

// LookupBySymbol matches a symbol or alias exactly, then case-insensitively.
func (c *Catalogue) LookupBySymbol(symbol string) (Unit, bool) {
	symbol = strings.TrimSpace(symbol)
	if idx, ok := c.bySymbol[symbol]; ok {
		return c.units[idx], true
	}
	if idx, ok := c.byFolded[strings.ToUpper(symbol)]; ok {
		return c.units[idx], true
	}
	return Undefined, false
}

// Units returns the catalogue entries in file order.
func (c *Catalogue) Units() []Unit {
	out := make([]Unit, len(c.units))
	copy(out, c.units)
	return out
}

// Len returns the number of catalogue entries.
func (c *Catalogue) Len() int { return len(c.units) }
