package project

import (
	"fmt"
	"os"

	"github.com/pelletier/go-toml/v2"
	"github.com/spf13/viper"

	"github.com/seisflow/seisflow/internal/seiserr"
)

// Config is the parsed project configuration.
type Config struct {
	Project        ProjectSettings `toml:"seisflow_project" mapstructure:"seisflow_project"`
	DataProcessing DataProcessing  `toml:"data_processing" mapstructure:"data_processing"`
	SolverSettings SolverSettings  `toml:"solver_settings" mapstructure:"solver_settings"`
}

// ProjectSettings identifies the project and its mesh.
type ProjectSettings struct {
	ProjectName      string           `toml:"project_name" mapstructure:"project_name"`
	Description      string           `toml:"description" mapstructure:"description"`
	MeshFile         string           `toml:"mesh_file" mapstructure:"mesh_file"`
	DownloadSettings DownloadSettings `toml:"download_settings" mapstructure:"download_settings"`
}

// DownloadSettings are the defaults applied when downloading data.
type DownloadSettings struct {
	ProviderURL                  string   `toml:"provider_url" mapstructure:"provider_url"`
	SecondsBeforeEvent           float64  `toml:"seconds_before_event" mapstructure:"seconds_before_event"`
	SecondsAfterEvent            float64  `toml:"seconds_after_event" mapstructure:"seconds_after_event"`
	InterstationDistanceInMeters float64  `toml:"interstation_distance_in_meters" mapstructure:"interstation_distance_in_meters"`
	ChannelPriorities            []string `toml:"channel_priorities" mapstructure:"channel_priorities"`
	LocationPriorities           []string `toml:"location_priorities" mapstructure:"location_priorities"`
}

// DataProcessing holds the processing thresholds. Periods are in seconds.
type DataProcessing struct {
	HighpassPeriod        float64 `toml:"highpass_period" mapstructure:"highpass_period"`
	LowpassPeriod         float64 `toml:"lowpass_period" mapstructure:"lowpass_period"`
	ScaleDataToSynthetics bool    `toml:"scale_data_to_synthetics" mapstructure:"scale_data_to_synthetics"`
}

// SolverSettings configure the forward solver.
type SolverSettings struct {
	SimulationParameters SimulationParameters `toml:"simulation_parameters" mapstructure:"simulation_parameters"`
	ComputationalSetup   ComputationalSetup   `toml:"computational_setup" mapstructure:"computational_setup"`
}

// SimulationParameters describe one forward run.
type SimulationParameters struct {
	NumberOfTimeSteps int     `toml:"number_of_time_steps" mapstructure:"number_of_time_steps"`
	TimeIncrement     float64 `toml:"time_increment" mapstructure:"time_increment"`
	StartTime         float64 `toml:"start_time" mapstructure:"start_time"`
	EndTime           float64 `toml:"end_time" mapstructure:"end_time"`
	Dimensions        int     `toml:"dimensions" mapstructure:"dimensions"`
	PolynomialOrder   int     `toml:"polynomial_order" mapstructure:"polynomial_order"`
}

// ComputationalSetup describes how the solver binary is invoked.
type ComputationalSetup struct {
	SolverBin                string  `toml:"solver_bin" mapstructure:"solver_bin"`
	NumberOfProcessors       int     `toml:"number_of_processors" mapstructure:"number_of_processors"`
	SolverCall               string  `toml:"solver_call" mapstructure:"solver_call"`
	WithAnisotropy           bool    `toml:"with_anisotropy" mapstructure:"with_anisotropy"`
	SourceTimeFunctionType   string  `toml:"source_time_function_type" mapstructure:"source_time_function_type"`
	SourceCenterFrequency    float64 `toml:"source_center_frequency" mapstructure:"source_center_frequency"`
}

// DefaultProjectName is used when Initialize is not given a name.
const DefaultProjectName = "SeisflowProject"

// DefaultConfig returns the configuration written into new projects.
func DefaultConfig(name string) *Config {
	if name == "" {
		name = DefaultProjectName
	}
	return &Config{
		Project: ProjectSettings{
			ProjectName: name,
			Description: "",
			MeshFile:    "",
			DownloadSettings: DownloadSettings{
				ProviderURL:                  "",
				SecondsBeforeEvent:           300.0,
				SecondsAfterEvent:            3600.0,
				InterstationDistanceInMeters: 1000.0,
				ChannelPriorities:            []string{"BH[Z,N,E]", "LH[Z,N,E]", "HH[Z,N,E]", "EH[Z,N,E]", "MH[Z,N,E]"},
				LocationPriorities:           []string{"", "00", "10", "20", "01", "02"},
			},
		},
		DataProcessing: DataProcessing{
			HighpassPeriod:        30.0,
			LowpassPeriod:         50.0,
			ScaleDataToSynthetics: true,
		},
		SolverSettings: SolverSettings{
			SimulationParameters: SimulationParameters{
				NumberOfTimeSteps: 2000,
				TimeIncrement:     0.1,
				StartTime:         -10.0,
				EndTime:           2700.0,
				Dimensions:        3,
				PolynomialOrder:   4,
			},
			ComputationalSetup: ComputationalSetup{
				SolverBin:              "solver/build/solver",
				NumberOfProcessors:     4,
				SolverCall:             "mpirun -n 4",
				WithAnisotropy:         true,
				SourceTimeFunctionType: "delta",
				SourceCenterFrequency:  0.025,
			},
		},
	}
}

const configHeader = "# Please fill in this config file before proceeding to use the project.\n\n"

// WriteDefaultConfig writes the default configuration to path. Existing
// files are never overwritten.
func WriteDefaultConfig(path, name string) error {
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("config file %s already exists", path)
	} else if !os.IsNotExist(err) {
		return err
	}
	body, err := toml.Marshal(DefaultConfig(name))
	if err != nil {
		return fmt.Errorf("encoding default config: %w", err)
	}
	if err := os.WriteFile(path, append([]byte(configHeader), body...), 0o644); err != nil {
		return fmt.Errorf("writing default config: %w", err)
	}
	return nil
}

// LoadConfig reads and validates the config file at path. A missing file
// is a MissingConfigError so callers can distinguish "uninitialized" from
// "broken".
func LoadConfig(path string) (*Config, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil, &seiserr.MissingConfigError{Path: path}
	}

	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("toml")
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the sections a usable project cannot do without.
func (c *Config) Validate() error {
	if c.Project.ProjectName == "" {
		return &seiserr.DomainValidationError{
			Subject: "project config",
			Reason:  "seisflow_project.project_name is missing",
		}
	}
	sim := c.SolverSettings.SimulationParameters
	if sim.NumberOfTimeSteps <= 0 || sim.TimeIncrement <= 0 {
		return &seiserr.DomainValidationError{
			Subject: "project config",
			Reason:  "solver_settings.simulation_parameters must set positive number_of_time_steps and time_increment",
		}
	}
	dp := c.DataProcessing
	if dp.HighpassPeriod <= 0 || dp.LowpassPeriod <= 0 || dp.HighpassPeriod >= dp.LowpassPeriod {
		return &seiserr.DomainValidationError{
			Subject: "project config",
			Reason:  "data_processing periods must be positive with highpass_period < lowpass_period",
		}
	}
	return nil
}
