package functions

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"

	"github.com/seisflow/seisflow/internal/seiserr"
)

// Descriptor is the on-disk selection of an implementation for one kind,
// stored as FUNCTIONS/<kind>.toml inside a project.
type Descriptor struct {
	Implementation string `toml:"implementation"`
	Parameters     Params `toml:"parameters"`
}

// DescriptorPath returns the descriptor file path for kind under dir.
func DescriptorPath(dir string, kind Kind) string {
	return filepath.Join(dir, string(kind)+".toml")
}

// LoadDescriptor reads and validates the descriptor for kind under dir.
func LoadDescriptor(dir string, kind Kind) (*Descriptor, error) {
	path := DescriptorPath(dir, kind)
	raw, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, &seiserr.NotFoundError{Kind: "function descriptor", Name: path}
		}
		return nil, fmt.Errorf("reading function descriptor: %w", err)
	}
	var d Descriptor
	if err := toml.Unmarshal(raw, &d); err != nil {
		return nil, &seiserr.MalformedSourceError{Path: path, Reason: err.Error()}
	}
	if d.Implementation == "" {
		return nil, &seiserr.DomainValidationError{
			Subject: fmt.Sprintf("%s descriptor", kind),
			Reason:  "no implementation selected",
		}
	}
	return &d, nil
}

// defaultImplementation is the template selection per kind.
func defaultImplementation(kind Kind) string {
	if kind == WindowPicking {
		return "energy_ratio"
	}
	if kind == SourceTimeFunction {
		return "delta"
	}
	return "identity"
}

// WriteTemplate writes the built-in descriptor template for kind under dir
// if no descriptor exists yet. It reports whether a file was created.
func WriteTemplate(dir string, kind Kind) (bool, error) {
	path := DescriptorPath(dir, kind)
	if _, err := os.Stat(path); err == nil {
		return false, nil
	} else if !os.IsNotExist(err) {
		return false, err
	}

	body := fmt.Sprintf(
		"# Selects the %s implementation for this project.\n"+
			"# Registered implementations: %v\n"+
			"implementation = %q\n\n"+
			"[parameters]\n",
		kind, Implementations(kind), defaultImplementation(kind))
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		return false, fmt.Errorf("writing %s template: %w", kind, err)
	}
	return true, nil
}

// EnsureTemplates writes any missing descriptor templates under dir,
// invoking onCreate for each file it had to create.
func EnsureTemplates(dir string, onCreate func(kind Kind)) error {
	for _, kind := range Kinds() {
		created, err := WriteTemplate(dir, kind)
		if err != nil {
			return err
		}
		if created && onCreate != nil {
			onCreate(kind)
		}
	}
	return nil
}
