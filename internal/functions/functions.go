// Package functions is the project-local extension point.
//
// Each function kind has a fixed Go signature and a registry of named
// implementations. A project selects an implementation per kind through a
// descriptor file in its FUNCTIONS folder; the built-in implementations are
// registered here at init time. Signatures are verified when an
// implementation is registered, not when it is first called.
package functions

import (
	"fmt"
	"sort"
	"sync"

	"github.com/seisflow/seisflow/internal/seiserr"
)

// Kind enumerates the extension-function kinds a project can override.
type Kind string

const (
	WindowPicking      Kind = "window_picking"
	Processing         Kind = "processing"
	ProcessSynthetics  Kind = "process_synthetics"
	Preprocessing      Kind = "preprocessing"
	SourceTimeFunction Kind = "source_time_function"
)

// Kinds returns all known kinds in stable order.
func Kinds() []Kind {
	return []Kind{
		WindowPicking,
		Processing,
		ProcessSynthetics,
		Preprocessing,
		SourceTimeFunction,
	}
}

// KnownKind reports whether k is one of the declared kinds.
func KnownKind(k Kind) bool {
	for _, known := range Kinds() {
		if k == known {
			return true
		}
	}
	return false
}

// Params carries the descriptor's free-form parameter table into an
// implementation.
type Params map[string]any

// Float returns a numeric parameter, falling back to def when absent or
// non-numeric.
func (p Params) Float(key string, def float64) float64 {
	switch v := p[key].(type) {
	case float64:
		return v
	case int64:
		return float64(v)
	case int:
		return float64(v)
	}
	return def
}

// SourceTimeFunc generates a source time function of npts samples spaced dt
// seconds apart.
type SourceTimeFunc func(npts int, dt float64, p Params) []float64

// ProcessFunc transforms a sample series and returns the result. Used for
// the processing, process_synthetics and preprocessing kinds.
type ProcessFunc func(samples []float64, dt float64, p Params) []float64

// PickedWindow is one [start, end] window in seconds relative to the trace
// start.
type PickedWindow struct {
	StartS float64
	EndS   float64
}

// WindowPickFunc selects measurement windows by comparing data against
// synthetics.
type WindowPickFunc func(data, synthetic []float64, dt float64, p Params) []PickedWindow

var (
	regMu    sync.Mutex
	registry = make(map[Kind]map[string]any)
)

// Register adds an implementation under (kind, name). The implementation
// must match the kind's signature; a mismatch or a duplicate name fails
// loudly.
func Register(kind Kind, name string, impl any) error {
	if !KnownKind(kind) {
		return &seiserr.NotFoundError{Kind: "function kind", Name: string(kind)}
	}
	if err := Verify(kind, impl); err != nil {
		return err
	}
	regMu.Lock()
	defer regMu.Unlock()
	impls, ok := registry[kind]
	if !ok {
		impls = make(map[string]any)
		registry[kind] = impls
	}
	if _, exists := impls[name]; exists {
		return &seiserr.DuplicateNameError{Name: fmt.Sprintf("%s/%s", kind, name)}
	}
	impls[name] = impl
	return nil
}

// mustRegister is for the built-ins registered at init time.
func mustRegister(kind Kind, name string, impl any) {
	if err := Register(kind, name, impl); err != nil {
		panic(err)
	}
}

// Lookup returns the implementation registered under (kind, name).
func Lookup(kind Kind, name string) (any, error) {
	if !KnownKind(kind) {
		return nil, &seiserr.NotFoundError{Kind: "function kind", Name: string(kind)}
	}
	regMu.Lock()
	defer regMu.Unlock()
	impl, ok := registry[kind][name]
	if !ok {
		return nil, &seiserr.NotFoundError{
			Kind: fmt.Sprintf("%s implementation", kind),
			Name: name,
		}
	}
	return impl, nil
}

// Implementations lists the registered implementation names for kind,
// sorted.
func Implementations(kind Kind) []string {
	regMu.Lock()
	defer regMu.Unlock()
	names := make([]string, 0, len(registry[kind]))
	for name := range registry[kind] {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Verify checks that impl satisfies kind's signature and returns a
// DomainValidationError when it does not.
func Verify(kind Kind, impl any) error {
	var ok bool
	switch kind {
	case SourceTimeFunction:
		_, ok = impl.(SourceTimeFunc)
	case Processing, ProcessSynthetics, Preprocessing:
		_, ok = impl.(ProcessFunc)
	case WindowPicking:
		_, ok = impl.(WindowPickFunc)
	default:
		return &seiserr.NotFoundError{Kind: "function kind", Name: string(kind)}
	}
	if !ok {
		return &seiserr.DomainValidationError{
			Subject: fmt.Sprintf("%s implementation", kind),
			Reason:  fmt.Sprintf("%T does not match the %s signature", impl, kind),
		}
	}
	return nil
}
