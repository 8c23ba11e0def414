package main

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/iwvelando/yard-economics/internal/config"
	"github.com/iwvelando/yard-economics/internal/projection"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	root := newRootCmd()
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(append(args, "--log-level", "error"))
	err := root.Execute()
	return out.String(), err
}

func TestInitializeLogger(t *testing.T) {
	tests := []struct {
		name     string
		logging  config.LoggingConfig
		override string
		wantErr  bool
	}{
		{name: "defaults", logging: config.LoggingConfig{}},
		{name: "console debug", logging: config.LoggingConfig{Level: "debug", Format: "console"}},
		{name: "override wins", logging: config.LoggingConfig{Level: "verbose"}, override: "warn"},
		{name: "invalid level", logging: config.LoggingConfig{Level: "verbose"}, wantErr: true},
		{name: "invalid format", logging: config.LoggingConfig{Format: "xml"}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			logger, err := initializeLogger(tt.logging, tt.override)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.NotNil(t, logger)
		})
	}
}

func TestInitializeLoggerOutputFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "yard.log")
	logger, err := initializeLogger(config.LoggingConfig{Level: "info", OutputFile: path}, "")
	require.NoError(t, err)

	logger.Info("hello")
	_ = logger.Sync()

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "hello")
}

func TestMultiplierCommand(t *testing.T) {
	out, err := execute(t, "multiplier", "1", "10", "260")
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 4)
	assert.Contains(t, lines[0], "Multiplier")
	assert.True(t, strings.HasPrefix(lines[1], "1 "), lines[1])

	_, err = execute(t, "multiplier", "zero")
	assert.Error(t, err)
}

func TestPresetCommand(t *testing.T) {
	out, err := execute(t, "preset")
	require.NoError(t, err)
	for _, want := range []string{"Scenarios:", "regional_10", "Modes:", "expected", "Industries:"} {
		assert.Contains(t, out, want)
	}

	out, err = execute(t, "preset", "regional_10", "upside", "--output-format", "json")
	require.NoError(t, err)
	var results []projection.Projection
	require.NoError(t, json.Unmarshal([]byte(out), &results))
	require.Len(t, results, 1)
	assert.Equal(t, "regional_10 / upside", results[0].Name)
	assert.Equal(t, 10, results[0].Result.TotalFacilities)

	out, err = execute(t, "preset", "enterprise_50")
	require.NoError(t, err)
	assert.Contains(t, out, "--- Results for scenario enterprise_50 ---")
	assert.Contains(t, out, "Annual savings range:")

	_, err = execute(t, "preset", "nowhere")
	assert.Error(t, err)
	_, err = execute(t, "preset", "pilot_1", "--output-format", "xml")
	assert.Error(t, err)
}

func TestBreakEvenCommand(t *testing.T) {
	out, err := execute(t, "breakeven", "regional_10", "--target-multiplier", "1.1")
	require.NoError(t, err)
	assert.Contains(t, out, "break_even_ramp")
	assert.Contains(t, out, "min_facilities")
	assert.Contains(t, out, "converged")
}

func TestProjectCommand(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	contents := `
scenarios:
  - name: Pilot
    active: true
    preset:
      scenario: pilot_1
  - name: Enterprise
    active: true
    preset:
      scenario: enterprise_50
      mode: conservative
`
	require.NoError(t, os.WriteFile(path, []byte(contents), 0600))

	out, err := execute(t, "project", "--config", path, "--output-format", "csv")
	require.NoError(t, err)
	records, err := csv.NewReader(strings.NewReader(out)).ReadAll()
	require.NoError(t, err)
	assert.Equal(t, []string{"metric", "Pilot", "Enterprise"}, records[0])

	// The root command runs a projection by default.
	out, err = execute(t, "--config", path)
	require.NoError(t, err)
	assert.Contains(t, out, "--- Results for scenario Enterprise ---")

	_, err = execute(t, "project", "--config", filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}
