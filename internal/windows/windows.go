package windows

import (
	"os"
	"path/filepath"

	"github.com/seisflow/seisflow/internal/comms"
)

// DatabaseName is the windows database filename inside the adjoint-sources
// folder.
const DatabaseName = "windows.sqlite"

// Component exposes the windows store to the rest of the project.
type Component struct {
	comms.Base
	store *Store
}

// New opens the windows database under folder and binds the component to
// comm under name.
func New(comm *comms.Communicator, name, folder string) (*Component, error) {
	if err := os.MkdirAll(folder, 0o755); err != nil {
		return nil, err
	}
	store, err := Open(filepath.Join(folder, DatabaseName))
	if err != nil {
		return nil, err
	}
	c := &Component{store: store}
	if err := c.Bind(comm, name, c); err != nil {
		store.Close()
		return nil, err
	}
	return c, nil
}

// Add stores picked windows for one event/channel pair.
func (c *Component) Add(event, channel string, wins []Window) ([]Window, error) {
	return c.store.Add(event, channel, wins)
}

// Get returns the windows for event/channel ordered by start time.
func (c *Component) Get(event, channel string) ([]Window, error) {
	return c.store.Get(event, channel)
}

// ListChannels returns the channels with windows for event.
func (c *Component) ListChannels(event string) ([]string, error) {
	return c.store.ListChannels(event)
}

// Drop removes all windows of an event, returning the count removed.
func (c *Component) Drop(event string) (int64, error) {
	return c.store.Drop(event)
}

// Close releases the database handle.
func (c *Component) Close() error {
	return c.store.Close()
}
