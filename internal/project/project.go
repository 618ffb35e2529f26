// Package project is the orchestrator: it owns the communicator, the
// canonical folder layout and the configuration, and it constructs and
// binds every component. After construction, components are reached only
// through the communicator by name.
package project

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/seisflow/seisflow/internal/comms"
	"github.com/seisflow/seisflow/internal/downloads"
	"github.com/seisflow/seisflow/internal/events"
	"github.com/seisflow/seisflow/internal/functions"
	"github.com/seisflow/seisflow/internal/iterations"
	"github.com/seisflow/seisflow/internal/query"
	"github.com/seisflow/seisflow/internal/seiserr"
	"github.com/seisflow/seisflow/internal/validator"
	"github.com/seisflow/seisflow/internal/waveforms"
	"github.com/seisflow/seisflow/internal/weights"
	"github.com/seisflow/seisflow/internal/windows"
)

// ResolvedFunction is one extension function loaded through a project's
// FUNCTIONS descriptor, with the descriptor's parameters attached.
type ResolvedFunction struct {
	Kind           functions.Kind
	Implementation string
	Impl           any
	Params         functions.Params
}

// Project manages one seisflow project folder.
type Project struct {
	comms.Base
	comm   *comms.Communicator
	Paths  *Paths
	Config *Config

	fnMu    sync.Mutex
	fnCache map[functions.Kind]*ResolvedFunction

	windowsComp *windows.Component
}

// Initialize creates a project at root: the root folder itself if absent
// and a default config file (named name, or a default) if none exists,
// then performs a normal load.
func Initialize(root, name string) (*Project, error) {
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, fmt.Errorf("creating project root: %w", err)
	}
	configPath := filepath.Join(root, ConfigFileName)
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		if err := WriteDefaultConfig(configPath, name); err != nil {
			return nil, err
		}
	}
	return load(root, true)
}

// Load opens an existing project. A root without a config file yields a
// MissingConfigError.
func Load(root string) (*Project, error) {
	return load(root, false)
}

func load(root string, initializing bool) (*Project, error) {
	paths := NewPaths(root)

	cfg, err := LoadConfig(paths.ConfigFile)
	if err != nil {
		return nil, err
	}

	if err := paths.EnsureLayout(); err != nil {
		return nil, err
	}

	p := &Project{
		comm:    comms.New(),
		Paths:   paths,
		Config:  cfg,
		fnCache: make(map[functions.Kind]*ResolvedFunction),
	}
	if err := p.Bind(p.comm, "project", p); err != nil {
		return nil, err
	}
	if err := p.setupComponents(); err != nil {
		return nil, err
	}

	// Descriptor templates appearing outside an explicit Initialize means
	// the project predates a kind; make that visible.
	err = functions.EnsureTemplates(paths.Functions, func(kind functions.Kind) {
		if !initializing {
			log.Printf("warning: function descriptor %q did not exist, wrote the built-in template", kind)
		}
	})
	if err != nil {
		return nil, err
	}
	return p, nil
}

// setupComponents constructs every component and binds it by name. The
// components are deliberately decoupled: all crosstalk goes through the
// communicator.
func (p *Project) setupComponents() error {
	paths := p.Paths

	// Earthquakes.
	if _, err := events.New(p.comm, "events", paths.DataEarthquakes); err != nil {
		return err
	}
	if _, err := waveforms.New(p.comm, "waveforms",
		paths.DataEarthquakes, paths.ProcessedEarthquakes, paths.SyntheticsEarthquakes); err != nil {
		return err
	}

	// Correlations.
	if _, err := events.New(p.comm, "reference_stations", paths.DataCorrelations); err != nil {
		return err
	}
	if _, err := waveforms.New(p.comm, "correlations",
		paths.DataCorrelations, paths.ProcessedCorrelations, paths.SyntheticsCorrelations); err != nil {
		return err
	}

	if _, err := weights.New(p.comm, "weights", paths.Weights); err != nil {
		return err
	}
	if _, err := iterations.New(p.comm, "iterations"); err != nil {
		return err
	}

	win, err := windows.New(p.comm, "windows", paths.AdjointSources)
	if err != nil {
		return err
	}
	p.windowsComp = win

	if _, err := query.New(p.comm, "query"); err != nil {
		return err
	}
	if _, err := validator.New(p.comm, "validator"); err != nil {
		return err
	}

	_, err = downloads.New(p.comm, "downloads", downloads.Options{
		BaseURL:     p.Config.Project.DownloadSettings.ProviderURL,
		EventFolder: paths.DataEarthquakes,
		LogFile: func(description string) (string, error) {
			return p.LogFile("DOWNLOADS", description)
		},
	})
	return err
}

// Communicator returns the project's communicator.
func (p *Project) Communicator() *comms.Communicator {
	return p.comm
}

// Close releases component resources (the windows database).
func (p *Project) Close() error {
	if p.windowsComp != nil {
		return p.windowsComp.Close()
	}
	return nil
}

// Events returns the events component.
func (p *Project) Events() (*events.Component, error) {
	return resolveAs[*events.Component](p.comm, "events")
}

// ReferenceStations returns the reference-stations component.
func (p *Project) ReferenceStations() (*events.Component, error) {
	return resolveAs[*events.Component](p.comm, "reference_stations")
}

// Waveforms returns the earthquake waveforms component.
func (p *Project) Waveforms() (*waveforms.Component, error) {
	return resolveAs[*waveforms.Component](p.comm, "waveforms")
}

// Weights returns the weights component.
func (p *Project) Weights() (*weights.Component, error) {
	return resolveAs[*weights.Component](p.comm, "weights")
}

// Iterations returns the iterations component.
func (p *Project) Iterations() (*iterations.Component, error) {
	return resolveAs[*iterations.Component](p.comm, "iterations")
}

// Windows returns the windows component.
func (p *Project) Windows() (*windows.Component, error) {
	return resolveAs[*windows.Component](p.comm, "windows")
}

// Query returns the query component.
func (p *Project) Query() (*query.Component, error) {
	return resolveAs[*query.Component](p.comm, "query")
}

// Validator returns the validator component.
func (p *Project) Validator() (*validator.Component, error) {
	return resolveAs[*validator.Component](p.comm, "validator")
}

// Downloads returns the downloads component.
func (p *Project) Downloads() (*downloads.Component, error) {
	return resolveAs[*downloads.Component](p.comm, "downloads")
}

func resolveAs[T comms.Component](comm *comms.Communicator, name string) (T, error) {
	var zero T
	c, err := comm.Resolve(name)
	if err != nil {
		return zero, err
	}
	t, ok := c.(T)
	if !ok {
		return zero, &seiserr.DomainValidationError{
			Subject: fmt.Sprintf("component %q", name),
			Reason:  fmt.Sprintf("unexpected type %T", c),
		}
	}
	return t, nil
}

// ResolveFunction loads the extension function of the given kind as
// selected by the project's FUNCTIONS descriptor, caching the result for
// the session.
func (p *Project) ResolveFunction(kind functions.Kind) (*ResolvedFunction, error) {
	if !functions.KnownKind(kind) {
		return nil, &seiserr.NotFoundError{Kind: "function kind", Name: string(kind)}
	}

	p.fnMu.Lock()
	defer p.fnMu.Unlock()
	if fn, ok := p.fnCache[kind]; ok {
		return fn, nil
	}

	desc, err := functions.LoadDescriptor(p.Paths.Functions, kind)
	if err != nil {
		return nil, err
	}
	impl, err := functions.Lookup(kind, desc.Implementation)
	if err != nil {
		return nil, err
	}
	if err := functions.Verify(kind, impl); err != nil {
		return nil, err
	}

	fn := &ResolvedFunction{
		Kind:           kind,
		Implementation: desc.Implementation,
		Impl:           impl,
		Params:         desc.Parameters,
	}
	p.fnCache[kind] = fn
	return fn, nil
}

const timestampLayout = "2006-01-02T15-04-05"

// OutputFolder creates and returns OUTPUT/<kind>/<timestamp>__<tag>.
func (p *Project) OutputFolder(kind, tag string) (string, error) {
	dir := filepath.Join(p.Paths.Output, strings.ToLower(kind),
		fmt.Sprintf("%s__%s", time.Now().UTC().Format(timestampLayout), tag))
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("creating output folder: %w", err)
	}
	return dir, nil
}

// LogFile returns the path for a new log file under OUTPUT/LOGS/<type>,
// creating the directories but not the file.
func (p *Project) LogFile(logType, description string) (string, error) {
	dir := filepath.Join(p.Paths.Logs, logType)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("creating log folder: %w", err)
	}
	name := fmt.Sprintf("%s___%s.log", time.Now().UTC().Format(timestampLayout), description)
	return filepath.Join(dir, name), nil
}

// String is the project summary shown by the info command.
func (p *Project) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "Seisflow project %q\n", p.Config.Project.ProjectName)
	fmt.Fprintf(&b, "\tDescription: %s\n", p.Config.Project.Description)
	fmt.Fprintf(&b, "\tProject root: %s\n", p.Paths.Root)
	fmt.Fprintf(&b, "\tContent:\n")
	if ev, err := p.Events(); err == nil {
		fmt.Fprintf(&b, "\t\t%d events\n", ev.Count())
	}
	if rs, err := p.ReferenceStations(); err == nil {
		fmt.Fprintf(&b, "\t\t%d reference stations\n", rs.Count())
	}
	if ws, err := p.Weights(); err == nil {
		fmt.Fprintf(&b, "\t\t%d weight sets\n", ws.Count())
	}
	return b.String()
}
