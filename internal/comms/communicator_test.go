package comms

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/seisflow/seisflow/internal/seiserr"
)

// Test Plan for the communicator:
// - Register then Resolve round-trips a component
// - Registering twice under one name fails with DuplicateNameError
// - Resolving an unregistered name fails with UnknownComponentError
// - Bind registers the component and enables sibling lookup
// - Components bound in either order can reach each other

type stubComponent struct {
	Base
	id string
}

func TestCommunicator_RegisterAndResolve(t *testing.T) {
	comm := New()
	c := &stubComponent{id: "one"}

	require.NoError(t, comm.Register("events", c))

	got, err := comm.Resolve("events")
	require.NoError(t, err)
	assert.Same(t, c, got)
	assert.ElementsMatch(t, []string{"events"}, comm.Names())
}

func TestCommunicator_DuplicateName(t *testing.T) {
	comm := New()
	require.NoError(t, comm.Register("events", &stubComponent{}))

	err := comm.Register("events", &stubComponent{})

	var dup *seiserr.DuplicateNameError
	require.ErrorAs(t, err, &dup)
	assert.Equal(t, "events", dup.Name)
}

func TestCommunicator_UnknownComponent(t *testing.T) {
	comm := New()

	_, err := comm.Resolve("downloads")

	var unknown *seiserr.UnknownComponentError
	require.ErrorAs(t, err, &unknown)
	assert.Equal(t, "downloads", unknown.Name)
}

func TestBase_BindAndSibling(t *testing.T) {
	comm := New()

	a := &stubComponent{id: "a"}
	b := &stubComponent{id: "b"}
	require.NoError(t, a.Bind(comm, "alpha", a))
	require.NoError(t, b.Bind(comm, "beta", b))

	assert.Equal(t, "alpha", a.Name())

	// Construction order does not matter: lookup happens at call time.
	got, err := a.Sibling("beta")
	require.NoError(t, err)
	assert.Same(t, b, got)

	got, err = b.Sibling("alpha")
	require.NoError(t, err)
	assert.Same(t, a, got)

	_, err = a.Sibling("gamma")
	var unknown *seiserr.UnknownComponentError
	assert.ErrorAs(t, err, &unknown)
}

func TestBase_BindDuplicateLeavesBaseUnbound(t *testing.T) {
	comm := New()
	first := &stubComponent{}
	require.NoError(t, first.Bind(comm, "events", first))

	second := &stubComponent{}
	err := second.Bind(comm, "events", second)

	var dup *seiserr.DuplicateNameError
	require.ErrorAs(t, err, &dup)
	assert.Equal(t, "", second.Name())
}
