// Package downloads fetches event files from a remote data provider into
// the project's data folders.
package downloads

import (
	"context"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/schollz/progressbar/v3"

	"github.com/seisflow/seisflow/internal/comms"
	"github.com/seisflow/seisflow/internal/seiserr"
)

// rescanner lets the component nudge the events component after a download
// without referencing its concrete type.
type rescanner interface {
	Rescan() error
}

// Options configure a downloads component.
type Options struct {
	// BaseURL of the data provider; events are fetched from
	// <BaseURL>/events/<name>.toml.
	BaseURL string
	// EventFolder receives downloaded event files.
	EventFolder string
	// LogFile, when set, returns the path for a download session log.
	LogFile func(description string) (string, error)
	// Client defaults to an http.Client with a 60s timeout.
	Client *http.Client
	// Quiet suppresses the progress bar.
	Quiet bool
}

// Component downloads event data.
type Component struct {
	comms.Base
	opts Options
}

// New binds a downloads component to comm under name.
func New(comm *comms.Communicator, name string, opts Options) (*Component, error) {
	if opts.Client == nil {
		opts.Client = &http.Client{Timeout: 60 * time.Second}
	}
	c := &Component{opts: opts}
	if err := c.Bind(comm, name, c); err != nil {
		return nil, err
	}
	return c, nil
}

// DownloadEvent fetches one event file into the event folder and rescans
// the events component. The file is written via a temp name so a failed
// transfer never leaves a half-written event behind.
func (c *Component) DownloadEvent(ctx context.Context, event string) (err error) {
	session := uuid.NewString()
	logw, closeLog := c.openLog(fmt.Sprintf("download_%s", event))
	defer func() { closeLog(err) }()
	fmt.Fprintf(logw, "session %s: downloading event %q\n", session, event)

	url := fmt.Sprintf("%s/events/%s.toml", c.opts.BaseURL, event)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("building download request: %w", err)
	}
	resp, err := c.opts.Client.Do(req)
	if err != nil {
		return fmt.Errorf("fetching %s: %w", url, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return &seiserr.NotFoundError{Kind: "remote event", Name: event}
	case resp.StatusCode != http.StatusOK:
		return fmt.Errorf("fetching %s: unexpected status %s", url, resp.Status)
	}

	if err := os.MkdirAll(c.opts.EventFolder, 0o755); err != nil {
		return fmt.Errorf("creating event folder: %w", err)
	}
	tmp, err := os.CreateTemp(c.opts.EventFolder, ".download-*")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	var dst io.Writer = tmp
	if !c.opts.Quiet {
		bar := progressbar.DefaultBytes(resp.ContentLength, "downloading "+event)
		dst = io.MultiWriter(tmp, bar)
	}
	written, err := io.Copy(dst, resp.Body)
	if cerr := tmp.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		return fmt.Errorf("writing event file: %w", err)
	}

	final := filepath.Join(c.opts.EventFolder, event+".toml")
	if err := os.Rename(tmp.Name(), final); err != nil {
		return fmt.Errorf("moving event file into place: %w", err)
	}
	fmt.Fprintf(logw, "session %s: wrote %d bytes to %s\n", session, written, final)

	return c.rescanEvents()
}

func (c *Component) rescanEvents() error {
	sib, err := c.Sibling("events")
	if err != nil {
		return err
	}
	ev, ok := sib.(rescanner)
	if !ok {
		return &seiserr.DomainValidationError{Subject: "events component", Reason: "cannot rescan"}
	}
	return ev.Rescan()
}

// openLog returns a writer for the session log and a close func that
// records the outcome. Logging failures are advisory only.
func (c *Component) openLog(description string) (io.Writer, func(error)) {
	if c.opts.LogFile == nil {
		return io.Discard, func(error) {}
	}
	path, err := c.opts.LogFile(description)
	if err != nil {
		log.Printf("warning: no download log: %v", err)
		return io.Discard, func(error) {}
	}
	f, err := os.Create(path)
	if err != nil {
		log.Printf("warning: no download log: %v", err)
		return io.Discard, func(error) {}
	}
	return f, func(result error) {
		if result != nil {
			fmt.Fprintf(f, "failed: %v\n", result)
		} else {
			fmt.Fprintln(f, "ok")
		}
		f.Close()
	}
}
