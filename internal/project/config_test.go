package project

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/seisflow/seisflow/internal/seiserr"
)

// Test Plan for configuration:
// - DefaultConfig fills every section with usable values
// - WriteDefaultConfig writes once and refuses to overwrite
// - LoadConfig round-trips the default file
// - LoadConfig maps a missing file to MissingConfigError
// - LoadConfig rejects unparseable TOML
// - Validate rejects a missing project name, bad solver parameters and
//   inverted processing periods

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig("")

	assert.Equal(t, DefaultProjectName, cfg.Project.ProjectName)
	assert.Equal(t, 300.0, cfg.Project.DownloadSettings.SecondsBeforeEvent)
	assert.Equal(t, 2000, cfg.SolverSettings.SimulationParameters.NumberOfTimeSteps)
	assert.True(t, cfg.DataProcessing.ScaleDataToSynthetics)
	assert.NoError(t, cfg.Validate())
}

func TestWriteAndLoadConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), ConfigFileName)

	require.NoError(t, WriteDefaultConfig(path, "MyProject"))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "MyProject", cfg.Project.ProjectName)
	assert.Equal(t, 50.0, cfg.DataProcessing.LowpassPeriod)
	assert.Equal(t, "delta", cfg.SolverSettings.ComputationalSetup.SourceTimeFunctionType)
	assert.Equal(t, []string{"", "00", "10", "20", "01", "02"},
		cfg.Project.DownloadSettings.LocationPriorities)

	// Never overwrite an existing config.
	assert.Error(t, WriteDefaultConfig(path, "Other"))
}

func TestLoadConfig_Missing(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), ConfigFileName))

	var missing *seiserr.MissingConfigError
	assert.ErrorAs(t, err, &missing)
}

func TestLoadConfig_Unparseable(t *testing.T) {
	path := filepath.Join(t.TempDir(), ConfigFileName)
	require.NoError(t, os.WriteFile(path, []byte("[[[[not toml"), 0o644))

	_, err := LoadConfig(path)
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"missing project name", func(c *Config) { c.Project.ProjectName = "" }},
		{"zero time steps", func(c *Config) { c.SolverSettings.SimulationParameters.NumberOfTimeSteps = 0 }},
		{"negative time increment", func(c *Config) { c.SolverSettings.SimulationParameters.TimeIncrement = -1 }},
		{"inverted periods", func(c *Config) { c.DataProcessing.HighpassPeriod = 60 }},
		{"zero lowpass", func(c *Config) { c.DataProcessing.LowpassPeriod = 0 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig("x")
			tt.mutate(cfg)

			err := cfg.Validate()

			var dv *seiserr.DomainValidationError
			assert.ErrorAs(t, err, &dv)
		})
	}
}
