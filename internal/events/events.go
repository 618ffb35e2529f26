// Package events manages a folder of seismic event files.
//
// Each file must adhere to the scheme <event_name>.toml, one event per file.
// Parsed event metadata is cached for the session; see the catalog package
// for the caching contract. The same component also serves reference
// stations, which live in an identically keyed folder.
package events

import (
	"github.com/seisflow/seisflow/internal/catalog"
	"github.com/seisflow/seisflow/internal/comms"
)

// Index is the ordered field list every event record exposes.
var Index = []string{
	"filename",
	"event_name",
	"latitude",
	"longitude",
	"depth_in_km",
	"magnitude",
	"region",
}

// Component presents one folder of event files as a keyed record collection.
type Component struct {
	comms.Base
	store *catalog.Store
}

// New creates the component over folder and binds it to comm under name.
// The folder is scanned immediately so Count and Has work without a prior
// List call.
func New(comm *comms.Communicator, name, folder string, opts ...catalog.Option) (*Component, error) {
	c := &Component{
		store: catalog.NewStore(folder, "toml", "event", Index, Extract, opts...),
	}
	if err := c.Bind(comm, name, c); err != nil {
		return nil, err
	}
	if err := c.store.Scan(); err != nil {
		return nil, err
	}
	return c, nil
}

// Rescan refreshes the key→file map from disk. Cached records are kept.
func (c *Component) Rescan() error {
	return c.store.Scan()
}

// Count returns the number of events currently known on disk.
func (c *Component) Count() int {
	return c.store.Count()
}

// Has reports whether ref names a known event. Both a key and a previously
// returned record are accepted.
func (c *Component) Has(ref catalog.Ref) bool {
	return c.store.Has(ref)
}

// Get returns the metadata record for one event. Cheap to call repeatedly.
func (c *Component) Get(ref catalog.Ref) (*catalog.Record, error) {
	return c.store.Get(ref)
}

// Keys returns the known event names without parsing any files.
func (c *Component) Keys() []string {
	return c.store.Keys()
}

// List returns all event names in ascending order, parsing any not yet
// cached.
func (c *Component) List() ([]string, error) {
	return c.store.ListAll()
}

// GetAll returns an independent snapshot of every event record.
func (c *Component) GetAll() (map[string]*catalog.Record, error) {
	return c.store.GetAll()
}

// Folder returns the source directory.
func (c *Component) Folder() string {
	return c.store.Folder()
}
