// Package seiserr defines the error types shared by all seisflow components.
//
// Errors are plain typed structs matched with errors.As. Components wrap them
// with fmt.Errorf("...: %w", err) when adding context; nothing in this package
// retries or recovers.
package seiserr

import "fmt"

// NotFoundError reports a requested key, function or path that does not exist.
type NotFoundError struct {
	Kind string // what was looked up, e.g. "event", "function kind"
	Name string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %q not found", e.Kind, e.Name)
}

// DuplicateNameError reports a second registration under an already-bound
// communicator name.
type DuplicateNameError struct {
	Name string
}

func (e *DuplicateNameError) Error() string {
	return fmt.Sprintf("component name %q is already registered", e.Name)
}

// UnknownComponentError reports a sibling lookup for a name that was never
// registered.
type UnknownComponentError struct {
	Name string
}

func (e *UnknownComponentError) Error() string {
	return fmt.Sprintf("no component registered under %q", e.Name)
}

// MissingConfigError reports a project load with no config file present.
type MissingConfigError struct {
	Path string
}

func (e *MissingConfigError) Error() string {
	return fmt.Sprintf("no project config file at %s (wrong project path or uninitialized project?)", e.Path)
}

// MalformedSourceError reports a source file the extraction function could
// not parse. A failed extraction is never cached.
type MalformedSourceError struct {
	Path   string
	Reason string
}

func (e *MalformedSourceError) Error() string {
	return fmt.Sprintf("malformed source file %s: %s", e.Path, e.Reason)
}

// DomainValidationError reports a structurally present but invalid value:
// a config file missing required sections, or a registered extension
// implementation that does not match its kind's signature.
type DomainValidationError struct {
	Subject string
	Reason  string
}

func (e *DomainValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Subject, e.Reason)
}
