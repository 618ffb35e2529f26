// Package waveforms tracks the waveform folders belonging to each event:
// raw recordings, processed data, and per-iteration synthetics. It is pure
// directory bookkeeping; nothing here is parsed or cached.
package waveforms

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/seisflow/seisflow/internal/comms"
	"github.com/seisflow/seisflow/internal/seiserr"
)

// iterationPrefix names per-iteration synthetics folders, e.g.
// ITERATION_001/ under an event's synthetics folder.
const iterationPrefix = "ITERATION_"

// Component manages the raw/processed/synthetics folder triplet for one
// data stream (earthquakes or correlations).
type Component struct {
	comms.Base
	dataFolder      string
	processedFolder string
	syntheticFolder string
}

// New binds a waveform component to comm under name.
func New(comm *comms.Communicator, name, dataFolder, processedFolder, syntheticFolder string) (*Component, error) {
	c := &Component{
		dataFolder:      dataFolder,
		processedFolder: processedFolder,
		syntheticFolder: syntheticFolder,
	}
	if err := c.Bind(comm, name, c); err != nil {
		return nil, err
	}
	return c, nil
}

// RawFolder returns the raw-data folder for event.
func (c *Component) RawFolder(event string) string {
	return filepath.Join(c.dataFolder, event)
}

// ProcessedFolder returns the folder holding data processed with the given
// tag, e.g. "preprocessed_30s_50s".
func (c *Component) ProcessedFolder(event, tag string) string {
	return filepath.Join(c.processedFolder, event, tag)
}

// SyntheticsFolder returns the synthetics folder for event and iteration.
func (c *Component) SyntheticsFolder(event, iteration string) string {
	return filepath.Join(c.syntheticFolder, event, iterationPrefix+iteration)
}

// EnsureEvent creates the raw and synthetics folders for a new event.
func (c *Component) EnsureEvent(event string) error {
	for _, dir := range []string{c.RawFolder(event), filepath.Join(c.syntheticFolder, event)} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("creating waveform folder: %w", err)
		}
	}
	return nil
}

// ListRaw returns the raw waveform files recorded for event, sorted.
func (c *Component) ListRaw(event string) ([]string, error) {
	return listFiles(c.RawFolder(event), "event", event)
}

// ListProcessed returns the processed files for event under tag, sorted.
func (c *Component) ListProcessed(event, tag string) ([]string, error) {
	return listFiles(c.ProcessedFolder(event, tag), "processing tag", tag)
}

// ListSynthetics returns the synthetic files for event and iteration,
// sorted.
func (c *Component) ListSynthetics(event, iteration string) ([]string, error) {
	return listFiles(c.SyntheticsFolder(event, iteration), "iteration", iteration)
}

// Iterations returns the iteration names that have synthetics folders for
// event, sorted. Events without synthetics yield an empty list.
func (c *Component) Iterations(event string) ([]string, error) {
	entries, err := os.ReadDir(filepath.Join(c.syntheticFolder, event))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("listing synthetics for %q: %w", event, err)
	}
	var names []string
	for _, entry := range entries {
		if entry.IsDir() && strings.HasPrefix(entry.Name(), iterationPrefix) {
			names = append(names, strings.TrimPrefix(entry.Name(), iterationPrefix))
		}
	}
	sort.Strings(names)
	return names, nil
}

func listFiles(dir, kind, name string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, &seiserr.NotFoundError{Kind: kind, Name: name}
		}
		return nil, fmt.Errorf("listing %s: %w", dir, err)
	}
	var files []string
	for _, entry := range entries {
		if !entry.IsDir() && !strings.HasPrefix(entry.Name(), ".") {
			files = append(files, entry.Name())
		}
	}
	sort.Strings(files)
	return files, nil
}
