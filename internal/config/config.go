package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/banshee-data/welllog/internal/fsutil"
)

// DefaultConfigPath is the path to the canonical defaults file.
const DefaultConfigPath = "config/welllog.defaults.json"

// Defaults used when a field is absent from the loaded file.
const (
	DefaultColumnWidth     = 12
	DefaultPrecision       = -1
	DefaultInputEncoding   = fsutil.EncodingAuto
	DefaultDBPath          = "welllog.db"
	DefaultListen          = ":8090"
	DefaultWorkers         = 4
	DefaultPlotWidthIn     = 6.0
	DefaultPlotHeightIn    = 10.0
	DefaultShutdownTimeout = 10 * time.Second
)

// ToolConfig holds settings shared by the welllog subcommands. Every field
// is optional; the Get methods fall back to the defaults above.
type ToolConfig struct {
	// Writer layout
	ColumnWidth *int `json:"column_width,omitempty"`
	Precision   *int `json:"precision,omitempty"` // minimum decimals; zero or negative writes the shortest exact form

	// Reader
	InputEncoding *string `json:"input_encoding,omitempty"` // auto, utf-8, latin1, windows-1252
	UnitCatalogue *string `json:"unit_catalogue,omitempty"` // CSV path; empty uses the built-in table

	// Persistence and serving
	DBPath          *string `json:"db_path,omitempty"`
	Listen          *string `json:"listen,omitempty"`
	ShutdownTimeout *string `json:"shutdown_timeout,omitempty"` // duration string like "10s"

	// Batch ingest
	Workers *int `json:"workers,omitempty"`

	// Plot size in inches
	PlotWidthIn  *float64 `json:"plot_width_in,omitempty"`
	PlotHeightIn *float64 `json:"plot_height_in,omitempty"`
}

func ptrFloat64(v float64) *float64 { return &v }
func ptrString(v string) *string    { return &v }
func ptrInt(v int) *int             { return &v }

// EmptyConfig returns a ToolConfig with all fields nil.
func EmptyConfig() *ToolConfig {
	return &ToolConfig{}
}

// DefaultConfig returns a ToolConfig with every field set to its default.
func DefaultConfig() *ToolConfig {
	return &ToolConfig{
		ColumnWidth:     ptrInt(DefaultColumnWidth),
		Precision:       ptrInt(DefaultPrecision),
		InputEncoding:   ptrString(DefaultInputEncoding),
		UnitCatalogue:   ptrString(""),
		DBPath:          ptrString(DefaultDBPath),
		Listen:          ptrString(DefaultListen),
		ShutdownTimeout: ptrString(DefaultShutdownTimeout.String()),
		Workers:         ptrInt(DefaultWorkers),
		PlotWidthIn:     ptrFloat64(DefaultPlotWidthIn),
		PlotHeightIn:    ptrFloat64(DefaultPlotHeightIn),
	}
}

// LoadConfig loads a ToolConfig from a JSON file. The file must have a
// .json extension and be under 1MB. Omitted fields keep their defaults.
func LoadConfig(path string) (*ToolConfig, error) {
	cleanPath := filepath.Clean(path)
	if ext := filepath.Ext(cleanPath); ext != ".json" {
		return nil, fmt.Errorf("config file must have .json extension, got %q", ext)
	}

	fileInfo, err := os.Stat(cleanPath)
	if err != nil {
		return nil, fmt.Errorf("failed to stat config file: %w", err)
	}
	const maxFileSize = 1 * 1024 * 1024 // 1MB
	if fileInfo.Size() > maxFileSize {
		return nil, fmt.Errorf("config file too large: %d bytes (max %d)", fileInfo.Size(), maxFileSize)
	}

	data, err := os.ReadFile(cleanPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := EmptyConfig()
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// MustLoadDefaultConfig loads DefaultConfigPath, searching upwards from the
// working directory. Panics if the file cannot be loaded; meant for tests.
func MustLoadDefaultConfig() *ToolConfig {
	candidates := []string{
		DefaultConfigPath,
		"../" + DefaultConfigPath,
		"../../" + DefaultConfigPath, // from internal/config/
		"../../../" + DefaultConfigPath,
	}
	for _, path := range candidates {
		if cfg, err := LoadConfig(path); err == nil {
			return cfg
		}
	}
	panic("cannot find " + DefaultConfigPath + " - run tests from repository root")
}

// Validate checks that set values are in range.
func (c *ToolConfig) Validate() error {
	if c.ColumnWidth != nil && (*c.ColumnWidth < 1 || *c.ColumnWidth > 64) {
		return fmt.Errorf("column_width must be between 1 and 64, got %d", *c.ColumnWidth)
	}
	if c.Precision != nil && *c.Precision > 15 {
		return fmt.Errorf("precision must be at most 15, got %d", *c.Precision)
	}
	if c.InputEncoding != nil && !fsutil.ValidEncoding(*c.InputEncoding) {
		return fmt.Errorf("unsupported input_encoding %q", *c.InputEncoding)
	}
	if c.Workers != nil && *c.Workers < 1 {
		return fmt.Errorf("workers must be positive, got %d", *c.Workers)
	}
	if c.PlotWidthIn != nil && *c.PlotWidthIn <= 0 {
		return fmt.Errorf("plot_width_in must be positive, got %f", *c.PlotWidthIn)
	}
	if c.PlotHeightIn != nil && *c.PlotHeightIn <= 0 {
		return fmt.Errorf("plot_height_in must be positive, got %f", *c.PlotHeightIn)
	}
	if c.ShutdownTimeout != nil && *c.ShutdownTimeout != "" {
		if _, err := time.ParseDuration(*c.ShutdownTimeout); err != nil {
			return fmt.Errorf("invalid shutdown_timeout '%s': %w", *c.ShutdownTimeout, err)
		}
	}
	return nil
}

// GetColumnWidth returns column_width or the default.
func (c *ToolConfig) GetColumnWidth() int {
	if c.ColumnWidth == nil {
		return DefaultColumnWidth
	}
	return *c.ColumnWidth
}

// GetPrecision returns precision or the default.
func (c *ToolConfig) GetPrecision() int {
	if c.Precision == nil {
		return DefaultPrecision
	}
	return *c.Precision
}

// GetInputEncoding returns input_encoding or the default.
func (c *ToolConfig) GetInputEncoding() string {
	if c.InputEncoding == nil || *c.InputEncoding == "" {
		return DefaultInputEncoding
	}
	return *c.InputEncoding
}

// GetUnitCatalogue returns the custom catalogue path, or "" for the
// built-in table.
func (c *ToolConfig) GetUnitCatalogue() string {
	if c.UnitCatalogue == nil {
		return ""
	}
	return *c.UnitCatalogue
}

func (c *ToolConfig) GetDBPath() string {
	if c.DBPath == nil || *c.DBPath == "" {
		return DefaultDBPath
	}
	return *c.DBPath
}

func (c *ToolConfig) GetListen() string {
	if c.Listen == nil || *c.Listen == "" {
		return DefaultListen
	}
	return *c.Listen
}

// GetShutdownTimeout parses shutdown_timeout, falling back to the default.
func (c *ToolConfig) GetShutdownTimeout() time.Duration {
	if c.ShutdownTimeout == nil || *c.ShutdownTimeout == "" {
		return DefaultShutdownTimeout
	}
	d, err := time.ParseDuration(*c.ShutdownTimeout)
	if err != nil {
		return DefaultShutdownTimeout
	}
	return d
}

func (c *ToolConfig) GetWorkers() int {
	if c.Workers == nil {
		return DefaultWorkers
	}
	return *c.Workers
}

func (c *ToolConfig) GetPlotWidthIn() float64 {
	if c.PlotWidthIn == nil {
		return DefaultPlotWidthIn
	}
	return *c.PlotWidthIn
}

func (c *ToolConfig) GetPlotHeightIn() float64 {
	if c.PlotHeightIn == nil {
		return DefaultPlotHeightIn
	}
	return *c.PlotHeightIn
}
