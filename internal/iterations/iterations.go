// Package iterations manages the named iteration sets of an inversion run.
//
// An iteration exists as ITERATION_<name> folders under each event's
// synthetics folder. The component reaches the events and waveforms
// components through the communicator, never directly.
package iterations

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/seisflow/seisflow/internal/comms"
	"github.com/seisflow/seisflow/internal/seiserr"
)

// eventLister is the slice of the events component this package needs.
type eventLister interface {
	List() ([]string, error)
}

// synthFolders is the slice of the waveforms component this package needs.
type synthFolders interface {
	SyntheticsFolder(event, iteration string) string
	Iterations(event string) ([]string, error)
}

// Component creates and lists iteration sets.
type Component struct {
	comms.Base
}

// New binds the component to comm under name.
func New(comm *comms.Communicator, name string) (*Component, error) {
	c := &Component{}
	if err := c.Bind(comm, name, c); err != nil {
		return nil, err
	}
	return c, nil
}

func (c *Component) events() (eventLister, error) {
	sib, err := c.Sibling("events")
	if err != nil {
		return nil, err
	}
	ev, ok := sib.(eventLister)
	if !ok {
		return nil, &seiserr.DomainValidationError{Subject: "events component", Reason: "does not list events"}
	}
	return ev, nil
}

func (c *Component) waveforms() (synthFolders, error) {
	sib, err := c.Sibling("waveforms")
	if err != nil {
		return nil, err
	}
	wf, ok := sib.(synthFolders)
	if !ok {
		return nil, &seiserr.DomainValidationError{Subject: "waveforms component", Reason: "does not expose synthetics folders"}
	}
	return wf, nil
}

// Create registers a new iteration by creating its synthetics folder for
// every known event. Creating an existing iteration is a no-op per event.
func (c *Component) Create(name string) error {
	if err := validateName(name); err != nil {
		return err
	}
	ev, err := c.events()
	if err != nil {
		return err
	}
	wf, err := c.waveforms()
	if err != nil {
		return err
	}
	eventNames, err := ev.List()
	if err != nil {
		return err
	}
	for _, event := range eventNames {
		if err := os.MkdirAll(wf.SyntheticsFolder(event, name), 0o755); err != nil {
			return fmt.Errorf("creating iteration %q for event %q: %w", name, event, err)
		}
	}
	return nil
}

// List returns the union of iteration names across all events, sorted.
func (c *Component) List() ([]string, error) {
	ev, err := c.events()
	if err != nil {
		return nil, err
	}
	wf, err := c.waveforms()
	if err != nil {
		return nil, err
	}
	eventNames, err := ev.List()
	if err != nil {
		return nil, err
	}
	seen := make(map[string]bool)
	for _, event := range eventNames {
		iters, err := wf.Iterations(event)
		if err != nil {
			return nil, err
		}
		for _, it := range iters {
			seen[it] = true
		}
	}
	names := make([]string, 0, len(seen))
	for name := range seen {
		names = append(names, name)
	}
	sort.Strings(names)
	return names, nil
}

// Has reports whether any event carries the iteration.
func (c *Component) Has(name string) (bool, error) {
	names, err := c.List()
	if err != nil {
		return false, err
	}
	for _, n := range names {
		if n == name {
			return true, nil
		}
	}
	return false, nil
}

func validateName(name string) error {
	if name == "" || strings.ContainsAny(name, `/\`) || strings.Contains(name, "..") {
		return &seiserr.DomainValidationError{
			Subject: "iteration name",
			Reason:  fmt.Sprintf("%q must be non-empty and free of path separators", name),
		}
	}
	return nil
}
