package project

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// ConfigFileName is the project configuration file at the root.
const ConfigFileName = "seisflow_config.toml"

// Paths is the canonical folder layout of a project. Every entry whose
// logical name contains "file" denotes a file and is excluded from
// directory auto-creation.
type Paths struct {
	Root string

	DataEarthquakes  string
	DataCorrelations string

	SyntheticsEarthquakes  string
	SyntheticsCorrelations string

	ProcessedEarthquakes  string
	ProcessedCorrelations string

	Sets    string
	Windows string
	Weights string

	AdjointSources string
	Output         string
	Logs           string
	SolverInput    string
	Functions      string

	ConfigFile string
}

// NewPaths computes the layout under root. Nothing is touched on disk.
func NewPaths(root string) *Paths {
	return &Paths{
		Root: root,

		DataEarthquakes:  filepath.Join(root, "DATA", "EARTHQUAKES"),
		DataCorrelations: filepath.Join(root, "DATA", "CORRELATIONS"),

		SyntheticsEarthquakes:  filepath.Join(root, "SYNTHETICS", "EARTHQUAKES"),
		SyntheticsCorrelations: filepath.Join(root, "SYNTHETICS", "CORRELATIONS"),

		ProcessedEarthquakes:  filepath.Join(root, "PROCESSED_DATA", "EARTHQUAKES"),
		ProcessedCorrelations: filepath.Join(root, "PROCESSED_DATA", "CORRELATIONS"),

		Sets:    filepath.Join(root, "SETS"),
		Windows: filepath.Join(root, "SETS", "WINDOWS"),
		Weights: filepath.Join(root, "SETS", "WEIGHTS"),

		AdjointSources: filepath.Join(root, "ADJOINT_SOURCES"),
		Output:         filepath.Join(root, "OUTPUT"),
		Logs:           filepath.Join(root, "OUTPUT", "LOGS"),
		SolverInput:    filepath.Join(root, "SOLVER_INPUT_FILES"),
		Functions:      filepath.Join(root, "FUNCTIONS"),

		ConfigFile: filepath.Join(root, ConfigFileName),
	}
}

// entries pairs each path with its logical name for the file-marker rule.
func (p *Paths) entries() []struct{ name, path string } {
	return []struct{ name, path string }{
		{"root", p.Root},
		{"data_earthquakes", p.DataEarthquakes},
		{"data_correlations", p.DataCorrelations},
		{"synthetics_earthquakes", p.SyntheticsEarthquakes},
		{"synthetics_correlations", p.SyntheticsCorrelations},
		{"processed_earthquakes", p.ProcessedEarthquakes},
		{"processed_correlations", p.ProcessedCorrelations},
		{"sets", p.Sets},
		{"windows", p.Windows},
		{"weights", p.Weights},
		{"adjoint_sources", p.AdjointSources},
		{"output", p.Output},
		{"logs", p.Logs},
		{"solver_input", p.SolverInput},
		{"functions", p.Functions},
		{"config_file", p.ConfigFile},
	}
}

// EnsureLayout creates every missing directory of the layout. Existing
// content is never touched, so it is safe to run on every load.
func (p *Paths) EnsureLayout() error {
	for _, entry := range p.entries() {
		if strings.Contains(entry.name, "file") {
			continue
		}
		if err := os.MkdirAll(entry.path, 0o755); err != nil {
			return fmt.Errorf("creating %s folder: %w", entry.name, err)
		}
	}
	return nil
}
