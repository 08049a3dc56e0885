package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEmptyConfigDefaults(t *testing.T) {
	t.Parallel()

	cfg := EmptyConfig()
	assert.Equal(t, DefaultColumnWidth, cfg.GetColumnWidth())
	assert.Equal(t, -1, cfg.GetPrecision())
	assert.Equal(t, "auto", cfg.GetInputEncoding())
	assert.Equal(t, "", cfg.GetUnitCatalogue())
	assert.Equal(t, DefaultDBPath, cfg.GetDBPath())
	assert.Equal(t, DefaultListen, cfg.GetListen())
	assert.Equal(t, DefaultWorkers, cfg.GetWorkers())
	assert.Equal(t, DefaultPlotWidthIn, cfg.GetPlotWidthIn())
	assert.Equal(t, DefaultPlotHeightIn, cfg.GetPlotHeightIn())
	assert.Equal(t, 10*time.Second, cfg.GetShutdownTimeout())
	assert.NoError(t, cfg.Validate())
}

func TestDefaultConfigMatchesDefaultsFile(t *testing.T) {
	t.Parallel()

	fromFile := MustLoadDefaultConfig()
	assert.Equal(t, DefaultConfig(), fromFile)
}

func TestLoadConfig(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "welllog.json")
	testJSON := `{
  "column_width": 10,
  "precision": 3,
  "input_encoding": "latin1",
  "db_path": "/var/lib/welllog/wells.db",
  "workers": 8,
  "shutdown_timeout": "3s"
}`
	require.NoError(t, os.WriteFile(path, []byte(testJSON), 0o644))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, 10, cfg.GetColumnWidth())
	assert.Equal(t, 3, cfg.GetPrecision())
	assert.Equal(t, "latin1", cfg.GetInputEncoding())
	assert.Equal(t, "/var/lib/welllog/wells.db", cfg.GetDBPath())
	assert.Equal(t, 8, cfg.GetWorkers())
	assert.Equal(t, 3*time.Second, cfg.GetShutdownTimeout())
	// Omitted fields keep their defaults.
	assert.Equal(t, DefaultListen, cfg.GetListen())
	assert.Nil(t, cfg.PlotWidthIn)
}

func TestLoadConfigErrors(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	write := func(name, body string) string {
		p := filepath.Join(dir, name)
		require.NoError(t, os.WriteFile(p, []byte(body), 0o644))
		return p
	}

	tests := []struct {
		name string
		path string
		want string
	}{
		{"extension", write("cfg.yaml", "{}"), ".json extension"},
		{"missing", filepath.Join(dir, "missing.json"), "failed to stat"},
		{"bad json", write("bad.json", "{"), "failed to parse"},
		{"too large", write("big.json", `{"listen":"`+strings.Repeat("x", 1024*1024)+`"}`), "too large"},
		{"column width", write("w.json", `{"column_width": 0}`), "column_width"},
		{"precision", write("p.json", `{"precision": 40}`), "precision"},
		{"encoding", write("e.json", `{"input_encoding": "utf-16"}`), "input_encoding"},
		{"workers", write("k.json", `{"workers": 0}`), "workers"},
		{"plot width", write("pw.json", `{"plot_width_in": -2}`), "plot_width_in"},
		{"plot height", write("ph.json", `{"plot_height_in": 0}`), "plot_height_in"},
		{"timeout", write("t.json", `{"shutdown_timeout": "soon"}`), "shutdown_timeout"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadConfig(tt.path)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestGetShutdownTimeoutBadValue(t *testing.T) {
	t.Parallel()

	cfg := &ToolConfig{ShutdownTimeout: ptrString("later")}
	assert.Equal(t, DefaultShutdownTimeout, cfg.GetShutdownTimeout())
}
