// Package comms wires independently developed components together by name.
//
// Every subsystem registers itself once under a unique name and thereafter
// reaches its siblings only through the communicator. No component holds a
// direct reference to another, so components can be constructed in any
// order and swapped or mocked independently.
package comms

import (
	"sync"

	"github.com/seisflow/seisflow/internal/seiserr"
)

// Component is anything that can be registered with a Communicator.
type Component interface {
	Name() string
}

// Communicator is the process-scoped name→component table. It is populated
// once during project construction and treated as read-only afterwards;
// Register is still guarded so a late duplicate fails loudly instead of
// racing.
type Communicator struct {
	mu         sync.Mutex
	components map[string]Component
}

// New returns an empty communicator.
func New() *Communicator {
	return &Communicator{components: make(map[string]Component)}
}

// Register binds c under name. Rebinding a name is a programming error and
// returns a DuplicateNameError.
func (cm *Communicator) Register(name string, c Component) error {
	cm.mu.Lock()
	defer cm.mu.Unlock()
	if _, ok := cm.components[name]; ok {
		return &seiserr.DuplicateNameError{Name: name}
	}
	cm.components[name] = c
	return nil
}

// Resolve returns the component bound under name, or an
// UnknownComponentError if nothing is.
func (cm *Communicator) Resolve(name string) (Component, error) {
	cm.mu.Lock()
	defer cm.mu.Unlock()
	c, ok := cm.components[name]
	if !ok {
		return nil, &seiserr.UnknownComponentError{Name: name}
	}
	return c, nil
}

// Names returns the registered names in no particular order. Mostly
// useful for diagnostics and tests.
func (cm *Communicator) Names() []string {
	cm.mu.Lock()
	defer cm.mu.Unlock()
	names := make([]string, 0, len(cm.components))
	for name := range cm.components {
		names = append(names, name)
	}
	return names
}
