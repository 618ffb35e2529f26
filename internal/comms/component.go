package comms

// Base carries the communicator handle and registered name every component
// needs. Embed it and call Bind during construction.
type Base struct {
	comm *Communicator
	name string
}

// Bind registers c under name and stores the communicator handle on the
// base. It must be called exactly once per component instance.
func (b *Base) Bind(comm *Communicator, name string, c Component) error {
	if err := comm.Register(name, c); err != nil {
		return err
	}
	b.comm = comm
	b.name = name
	return nil
}

// Name returns the name this component was registered under.
func (b *Base) Name() string {
	return b.name
}

// Sibling resolves another component by name at call time. Call-time
// resolution is what keeps components free of static cross-references.
func (b *Base) Sibling(name string) (Component, error) {
	return b.comm.Resolve(name)
}

// Communicator exposes the underlying communicator, for components that
// construct helpers needing their own handle.
func (b *Base) Communicator() *Communicator {
	return b.comm
}
