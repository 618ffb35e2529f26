// Package validator checks the project's on-disk data for consistency.
// Validation collects problems instead of aborting on the first one, so a
// single run reports everything that needs fixing.
package validator

import (
	"fmt"

	"github.com/seisflow/seisflow/internal/catalog"
	"github.com/seisflow/seisflow/internal/comms"
	"github.com/seisflow/seisflow/internal/seiserr"
)

type eventSource interface {
	Rescan() error
	Keys() []string
	Get(ref catalog.Ref) (*catalog.Record, error)
}

type waveformSource interface {
	ListRaw(event string) ([]string, error)
}

// Issue is one problem found during validation.
type Issue struct {
	Event   string
	Problem string
}

func (i Issue) String() string {
	return fmt.Sprintf("%s: %s", i.Event, i.Problem)
}

// Report is the outcome of one validation run.
type Report struct {
	EventsChecked int
	Issues        []Issue
}

// OK reports whether validation found no problems.
func (r *Report) OK() bool {
	return len(r.Issues) == 0
}

// Component validates project data through its sibling components.
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

// ValidateData checks every event: the file must parse, the embedded name
// must match the key, and raw waveform data should exist. Parse failures
// become issues, not errors.
func (c *Component) ValidateData() (*Report, error) {
	ev, err := c.events()
	if err != nil {
		return nil, err
	}
	if err := ev.Rescan(); err != nil {
		return nil, err
	}

	// List would abort on the first malformed file; walk keys so every
	// broken file becomes its own issue.
	report := &Report{}
	keys := ev.Keys()

	wf, wfErr := c.waveforms()

	for _, key := range keys {
		report.EventsChecked++
		rec, err := ev.Get(catalog.Key(key))
		if err != nil {
			report.Issues = append(report.Issues, Issue{Event: key, Problem: err.Error()})
			continue
		}
		if name := rec.String("event_name"); name != key {
			report.Issues = append(report.Issues, Issue{
				Event:   key,
				Problem: fmt.Sprintf("embedded event name %q does not match filename key", name),
			})
		}
		if wfErr == nil {
			if files, err := wf.ListRaw(key); err == nil && len(files) == 0 {
				report.Issues = append(report.Issues, Issue{Event: key, Problem: "raw waveform folder is empty"})
			}
		}
	}
	return report, nil
}

func (c *Component) events() (eventSource, error) {
	sib, err := c.Sibling("events")
	if err != nil {
		return nil, err
	}
	ev, ok := sib.(eventSource)
	if !ok {
		return nil, &seiserr.DomainValidationError{Subject: "events component", Reason: "does not serve records"}
	}
	return ev, nil
}

func (c *Component) waveforms() (waveformSource, error) {
	sib, err := c.Sibling("waveforms")
	if err != nil {
		return nil, err
	}
	wf, ok := sib.(waveformSource)
	if !ok {
		return nil, &seiserr.DomainValidationError{Subject: "waveforms component", Reason: "does not list waveforms"}
	}
	return wf, nil
}
