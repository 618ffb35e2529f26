// Package query answers cross-component questions, joining event metadata
// with waveform coverage. It holds no state of its own; everything is
// resolved through the communicator at call time.
package query

import (
	"errors"

	"github.com/seisflow/seisflow/internal/catalog"
	"github.com/seisflow/seisflow/internal/comms"
	"github.com/seisflow/seisflow/internal/seiserr"
)

type eventGetter interface {
	Get(ref catalog.Ref) (*catalog.Record, error)
}

type waveformLister interface {
	ListRaw(event string) ([]string, error)
	Iterations(event string) ([]string, error)
}

// EventDetails joins one event's metadata record with its waveform
// coverage.
type EventDetails struct {
	Record       *catalog.Record
	RawFileCount int
	Iterations   []string
}

// Component implements the project's read-side queries.
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

// EventDetails returns the metadata record plus waveform coverage for ref.
// Events without any raw data report a zero file count rather than an
// error.
func (c *Component) EventDetails(ref catalog.Ref) (*EventDetails, error) {
	ev, err := c.eventGetter()
	if err != nil {
		return nil, err
	}
	rec, err := ev.Get(ref)
	if err != nil {
		return nil, err
	}

	wf, err := c.waveforms()
	if err != nil {
		return nil, err
	}
	details := &EventDetails{Record: rec}

	files, err := wf.ListRaw(rec.Key())
	if err == nil {
		details.RawFileCount = len(files)
	} else if !isNotFound(err) {
		return nil, err
	}

	iters, err := wf.Iterations(rec.Key())
	if err != nil {
		return nil, err
	}
	details.Iterations = iters
	return details, nil
}

// ListIterations returns the iteration names with synthetics for event.
func (c *Component) ListIterations(event string) ([]string, error) {
	wf, err := c.waveforms()
	if err != nil {
		return nil, err
	}
	return wf.Iterations(event)
}

func (c *Component) eventGetter() (eventGetter, error) {
	sib, err := c.Sibling("events")
	if err != nil {
		return nil, err
	}
	ev, ok := sib.(eventGetter)
	if !ok {
		return nil, &seiserr.DomainValidationError{Subject: "events component", Reason: "does not serve records"}
	}
	return ev, nil
}

func (c *Component) waveforms() (waveformLister, error) {
	sib, err := c.Sibling("waveforms")
	if err != nil {
		return nil, err
	}
	wf, ok := sib.(waveformLister)
	if !ok {
		return nil, &seiserr.DomainValidationError{Subject: "waveforms component", Reason: "does not list waveforms"}
	}
	return wf, nil
}

func isNotFound(err error) bool {
	var nf *seiserr.NotFoundError
	return errors.As(err, &nf)
}
