package db

import (
	"bytes"
	"compress/gzip"
	"database/sql"
	"encoding/gob"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/banshee-data/welllog/internal/las"
	"github.com/banshee-data/welllog/internal/timeutil"
	"github.com/banshee-data/welllog/internal/units"
)

// ErrNotFound is returned when no well has the requested ID.
var ErrNotFound = errors.New("well not found")

// WellRecord is the stored summary of one imported document. Curves is
// populated by Get and left nil by List.
type WellRecord struct {
	ID         string                `json:"id"`
	SourcePath string                `json:"source_path,omitempty"`
	Version    string                `json:"version"`
	Well       las.WellMetadata      `json:"well"`
	Range      las.DataRange         `json:"range"`
	NumCurves  int                   `json:"num_curves"`
	NumSamples int                   `json:"num_samples"`
	CreatedAt  time.Time             `json:"created_at"`
	Curves     []las.CurveDefinition `json:"curves,omitempty"`
}

// WellStore reads and writes documents in the wells and curves tables.
type WellStore struct {
	db    *DB
	clock timeutil.Clock
}

func NewWellStore(db *DB) *WellStore {
	return NewWellStoreWithClock(db, timeutil.RealClock{})
}

// NewWellStoreWithClock stamps created_at from clock.
func NewWellStoreWithClock(db *DB, clock timeutil.Clock) *WellStore {
	return &WellStore{db: db, clock: clock}
}

// Insert stores doc and returns the new well ID. Each curve's samples are
// stored as a gzip-compressed gob blob.
func (s *WellStore) Insert(doc *las.Document, sourcePath string) (string, error) {
	if doc == nil {
		return "", fmt.Errorf("insert well: nil document")
	}

	id := uuid.NewString()
	h := doc.Header()
	w := h.Well

	tx, err := s.db.Begin()
	if err != nil {
		return "", fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.Exec(`
		INSERT INTO wells (
			well_id, source_path, las_version, wrapped, delimiter, delimiter_token, null_value,
			name, company, field, location, service_company, country_code, service_date,
			geodetic_datum, horizontal_crs, latitude, longitude, x, y,
			country, state, county, api, province, uwi, license,
			range_start, range_stop, range_step, range_unit,
			num_curves, num_samples, created_at_ns
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		id, sourcePath, h.Version, h.Wrapped, int(h.Delimiter), h.DelimiterToken, h.NullValue,
		w.Name, w.Company, w.Field, w.Location, w.ServiceCompany, w.CountryCode, formatDate(w.ServiceDate),
		w.GeodeticDatum, w.HorizontalCRS, nullFloat(w.Latitude), nullFloat(w.Longitude), nullFloat(w.X), nullFloat(w.Y),
		w.Country.String(), w.US.State, w.US.County, w.US.API, w.Canada.Province, w.Canada.UWI, w.Canada.License,
		nullFloat(h.Range.Start), nullFloat(h.Range.Stop), nullFloat(h.Range.Step), h.Range.Unit,
		doc.NumCurves(), doc.NumSamples(), s.clock.Now().UnixNano(),
	)
	if err != nil {
		return "", fmt.Errorf("failed to insert well: %w", err)
	}

	stmt, err := tx.Prepare(`
		INSERT INTO curves (
			well_id, position, mnemonic, file_unit, unit_name, unit_symbol, unit_quantity,
			api_code, comment, samples
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return "", fmt.Errorf("failed to prepare curve insert: %w", err)
	}
	defer stmt.Close()

	data := doc.Data()
	for i, c := range doc.Curves() {
		blob, err := encodeSamples(data[i])
		if err != nil {
			return "", fmt.Errorf("failed to encode curve %s: %w", c.Mnemonic, err)
		}
		if _, err := stmt.Exec(id, i, c.Mnemonic, c.FileUnit, c.Unit.Name, c.Unit.Symbol, c.Unit.Quantity,
			c.APICode, c.Comment, blob); err != nil {
			return "", fmt.Errorf("failed to insert curve %s: %w", c.Mnemonic, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return "", fmt.Errorf("failed to commit well: %w", err)
	}
	return id, nil
}

const wellColumns = `
	well_id, source_path, las_version, wrapped, delimiter, delimiter_token, null_value,
	name, company, field, location, service_company, country_code, service_date,
	geodetic_datum, horizontal_crs, latitude, longitude, x, y,
	country, state, county, api, province, uwi, license,
	range_start, range_stop, range_step, range_unit,
	num_curves, num_samples, created_at_ns`

type rowScanner interface {
	Scan(dest ...any) error
}

// wellRow is one row of the wells table.
type wellRow struct {
	record WellRecord
	header las.Header
}

func scanWell(sc rowScanner) (*wellRow, error) {
	var (
		r                          wellRow
		delimiter                  int
		country                    string
		serviceDate                sql.NullString
		lat, lon, x, y             sql.NullFloat64
		rangeStart, rangeStop, stp sql.NullFloat64
		createdAt                  int64
	)
	h := &r.header
	w := &h.Well
	err := sc.Scan(
		&r.record.ID, &r.record.SourcePath, &h.Version, &h.Wrapped, &delimiter, &h.DelimiterToken, &h.NullValue,
		&w.Name, &w.Company, &w.Field, &w.Location, &w.ServiceCompany, &w.CountryCode, &serviceDate,
		&w.GeodeticDatum, &w.HorizontalCRS, &lat, &lon, &x, &y,
		&country, &w.US.State, &w.US.County, &w.US.API, &w.Canada.Province, &w.Canada.UWI, &w.Canada.License,
		&rangeStart, &rangeStop, &stp, &h.Range.Unit,
		&r.record.NumCurves, &r.record.NumSamples, &createdAt,
	)
	if err != nil {
		return nil, err
	}

	h.Delimiter = las.Delimiter(delimiter)
	w.Country = parseCountry(country)
	w.Latitude = floatPtr(lat)
	w.Longitude = floatPtr(lon)
	w.X = floatPtr(x)
	w.Y = floatPtr(y)
	h.Range.Start = floatPtr(rangeStart)
	h.Range.Stop = floatPtr(rangeStop)
	h.Range.Step = floatPtr(stp)
	if serviceDate.Valid {
		t, err := time.Parse(time.RFC3339, serviceDate.String)
		if err != nil {
			return nil, fmt.Errorf("invalid service_date %q: %w", serviceDate.String, err)
		}
		w.ServiceDate = &t
	}

	r.record.Version = h.Version
	r.record.Well = h.Well
	r.record.Range = h.Range
	r.record.CreatedAt = time.Unix(0, createdAt).UTC()
	return &r, nil
}

// List returns every stored well, newest first.
func (s *WellStore) List() ([]WellRecord, error) {
	rows, err := s.db.Query(`SELECT ` + wellColumns + ` FROM wells ORDER BY created_at_ns DESC, rowid DESC`)
	if err != nil {
		return nil, fmt.Errorf("failed to query wells: %w", err)
	}
	defer rows.Close()

	var wells []WellRecord
	for rows.Next() {
		r, err := scanWell(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan well: %w", err)
		}
		wells = append(wells, r.record)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return wells, nil
}

func (s *WellStore) getRow(id string) (*wellRow, error) {
	r, err := scanWell(s.db.QueryRow(`SELECT `+wellColumns+` FROM wells WHERE well_id = ?`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get well %s: %w", id, err)
	}
	return r, nil
}

type curveRow struct {
	def     las.CurveDefinition
	samples []byte
}

func (s *WellStore) curveRows(id string, withSamples bool) ([]curveRow, error) {
	samplesCol := "NULL"
	if withSamples {
		samplesCol = "samples"
	}
	rows, err := s.db.Query(`
		SELECT mnemonic, file_unit, unit_name, unit_symbol, unit_quantity, api_code, comment, `+samplesCol+`
		FROM curves WHERE well_id = ? ORDER BY position`, id)
	if err != nil {
		return nil, fmt.Errorf("failed to query curves: %w", err)
	}
	defer rows.Close()

	var out []curveRow
	for rows.Next() {
		var (
			c    curveRow
			unit units.Unit
		)
		if err := rows.Scan(&c.def.Mnemonic, &c.def.FileUnit, &unit.Name, &unit.Symbol, &unit.Quantity,
			&c.def.APICode, &c.def.Comment, &c.samples); err != nil {
			return nil, fmt.Errorf("failed to scan curve: %w", err)
		}
		c.def.Unit = unit
		if unit.Name == "" {
			c.def.Unit = units.Undefined
		}
		out = append(out, c)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// Get returns the stored summary and curve definitions of one well.
func (s *WellStore) Get(id string) (*WellRecord, error) {
	r, err := s.getRow(id)
	if err != nil {
		return nil, err
	}
	curves, err := s.curveRows(id, false)
	if err != nil {
		return nil, err
	}
	r.record.Curves = make([]las.CurveDefinition, len(curves))
	for i, c := range curves {
		r.record.Curves[i] = c.def
	}
	return &r.record, nil
}

// LoadDocument rebuilds the stored document with its full data matrix.
func (s *WellStore) LoadDocument(id string) (*las.Document, error) {
	r, err := s.getRow(id)
	if err != nil {
		return nil, err
	}
	curves, err := s.curveRows(id, true)
	if err != nil {
		return nil, err
	}

	defs := make([]las.CurveDefinition, len(curves))
	data := make([][]float64, len(curves))
	for i, c := range curves {
		defs[i] = c.def
		if data[i], err = decodeSamples(c.samples); err != nil {
			return nil, fmt.Errorf("failed to decode curve %s: %w", c.def.Mnemonic, err)
		}
	}

	doc, err := las.NewDocument(r.header, defs, data)
	if err != nil {
		return nil, fmt.Errorf("failed to rebuild well %s: %w", id, err)
	}
	return doc, nil
}

// Delete removes a well and its curves.
func (s *WellStore) Delete(id string) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`DELETE FROM curves WHERE well_id = ?`, id); err != nil {
		return fmt.Errorf("failed to delete curves: %w", err)
	}
	res, err := tx.Exec(`DELETE FROM wells WHERE well_id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete well: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return tx.Commit()
}

// sampleBlob wraps a column so empty and nil slices encode alike.
type sampleBlob struct {
	Values []float64
}

func encodeSamples(values []float64) ([]byte, error) {
	var buf bytes.Buffer
	zw := gzip.NewWriter(&buf)
	if err := gob.NewEncoder(zw).Encode(sampleBlob{Values: values}); err != nil {
		return nil, err
	}
	if err := zw.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func decodeSamples(blob []byte) ([]float64, error) {
	zr, err := gzip.NewReader(bytes.NewReader(blob))
	if err != nil {
		return nil, err
	}
	defer zr.Close()

	var b sampleBlob
	if err := gob.NewDecoder(zr).Decode(&b); err != nil {
		return nil, err
	}
	if b.Values == nil {
		b.Values = []float64{}
	}
	return b.Values, nil
}

func nullFloat(v *float64) sql.NullFloat64 {
	if v == nil {
		return sql.NullFloat64{}
	}
	return sql.NullFloat64{Float64: *v, Valid: true}
}

func floatPtr(v sql.NullFloat64) *float64 {
	if !v.Valid {
		return nil
	}
	f := v.Float64
	return &f
}

func formatDate(t *time.Time) sql.NullString {
	if t == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: t.Format(time.RFC3339), Valid: true}
}

func parseCountry(s string) las.Country {
	switch s {
	case las.CountryUS.String():
		return las.CountryUS
	case las.CountryCanada.String():
		return las.CountryCanada
	default:
		return las.CountryUnknown
	}
}
