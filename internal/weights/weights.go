// Package weights manages the weight-set files under SETS/WEIGHTS. It is a
// second instantiation of the keyed metadata catalog; each <set>.toml file
// describes one weight set.
package weights

import (
	"fmt"
	"os"

	"github.com/pelletier/go-toml/v2"

	"github.com/seisflow/seisflow/internal/catalog"
	"github.com/seisflow/seisflow/internal/comms"
	"github.com/seisflow/seisflow/internal/seiserr"
)

// Index is the ordered field list of a weight-set record.
var Index = []string{
	"filename",
	"set_name",
	"comment",
	"event_count",
	"normalized",
}

type weightFile struct {
	WeightSet *struct {
		Name       string  `toml:"name"`
		Comment    *string `toml:"comment"`
		EventCount int64   `toml:"event_count"`
		Normalized bool    `toml:"normalized"`
	} `toml:"weight_set"`
}

// Extract parses one weight-set file. A missing [weight_set] table is
// malformed; a missing comment is defaulted with a warning.
func Extract(path string) ([]any, []string, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, fmt.Errorf("reading weight set: %w", err)
	}
	var wf weightFile
	if err := toml.Unmarshal(raw, &wf); err != nil {
		return nil, nil, &seiserr.MalformedSourceError{Path: path, Reason: err.Error()}
	}
	if wf.WeightSet == nil || wf.WeightSet.Name == "" {
		return nil, nil, &seiserr.MalformedSourceError{Path: path, Reason: "no [weight_set] table with a name"}
	}

	var warnings []string
	comment := ""
	if wf.WeightSet.Comment != nil {
		comment = *wf.WeightSet.Comment
	} else {
		warnings = append(warnings, "no comment, assuming empty")
	}

	return []any{
		path,
		wf.WeightSet.Name,
		comment,
		wf.WeightSet.EventCount,
		wf.WeightSet.Normalized,
	}, warnings, nil
}

// Component presents the weights folder as a keyed record collection.
type Component struct {
	comms.Base
	store *catalog.Store
}

// New creates the component over folder and binds it under name.
func New(comm *comms.Communicator, name, folder string, opts ...catalog.Option) (*Component, error) {
	c := &Component{
		store: catalog.NewStore(folder, "toml", "weight set", Index, Extract, opts...),
	}
	if err := c.Bind(comm, name, c); err != nil {
		return nil, err
	}
	if err := c.store.Scan(); err != nil {
		return nil, err
	}
	return c, nil
}

// Rescan refreshes the key→file map from disk.
func (c *Component) Rescan() error { return c.store.Scan() }

// Count returns the number of weight sets on disk.
func (c *Component) Count() int { return c.store.Count() }

// Has reports whether ref names a known weight set.
func (c *Component) Has(ref catalog.Ref) bool { return c.store.Has(ref) }

// Get returns one weight-set record.
func (c *Component) Get(ref catalog.Ref) (*catalog.Record, error) { return c.store.Get(ref) }

// List returns all weight-set names, sorted.
func (c *Component) List() ([]string, error) { return c.store.ListAll() }

// GetAll returns an independent snapshot of every weight-set record.
func (c *Component) GetAll() (map[string]*catalog.Record, error) { return c.store.GetAll() }
