package windows

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/seisflow/seisflow/internal/comms"
)

// Test Plan for the windows store:
// - Open creates the schema and is idempotent
// - Add assigns ids, defaults zero weights, round-trips through Get
// - Get orders windows by start time
// - ListChannels returns distinct sorted channels
// - Drop removes an event's windows and reports the count
// - the component wires the store under the adjoint-sources folder

func openStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), DatabaseName))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func TestOpen_Idempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), DatabaseName)

	s1, err := Open(path)
	require.NoError(t, err)
	require.NoError(t, s1.Close())

	s2, err := Open(path)
	require.NoError(t, err)
	require.NoError(t, s2.Close())
}

func TestAddAndGet(t *testing.T) {
	s := openStore(t)

	added, err := s.Add("ev_A", "BW.ALTM..EHZ", []Window{
		{StartS: 120.5, EndS: 180.0, Weight: 0.7},
		{StartS: 40.0, EndS: 90.0}, // zero weight defaults to 1.0
	})
	require.NoError(t, err)
	require.Len(t, added, 2)
	assert.NotEmpty(t, added[0].ID)
	assert.NotEqual(t, added[0].ID, added[1].ID)

	got, err := s.Get("ev_A", "BW.ALTM..EHZ")
	require.NoError(t, err)
	require.Len(t, got, 2)
	// Ordered by start time, not insertion order.
	assert.Equal(t, 40.0, got[0].StartS)
	assert.Equal(t, 1.0, got[0].Weight)
	assert.Equal(t, 120.5, got[1].StartS)
	assert.Equal(t, 0.7, got[1].Weight)

	got, err = s.Get("ev_A", "no.such.channel")
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestListChannelsAndDrop(t *testing.T) {
	s := openStore(t)
	_, err := s.Add("ev_A", "NET.B..EHZ", []Window{{StartS: 1, EndS: 2}})
	require.NoError(t, err)
	_, err = s.Add("ev_A", "NET.A..EHZ", []Window{{StartS: 1, EndS: 2}, {StartS: 3, EndS: 4}})
	require.NoError(t, err)
	_, err = s.Add("ev_B", "NET.A..EHZ", []Window{{StartS: 1, EndS: 2}})
	require.NoError(t, err)

	channels, err := s.ListChannels("ev_A")
	require.NoError(t, err)
	assert.Equal(t, []string{"NET.A..EHZ", "NET.B..EHZ"}, channels)

	n, err := s.Drop("ev_A")
	require.NoError(t, err)
	assert.Equal(t, int64(3), n)

	channels, err = s.ListChannels("ev_A")
	require.NoError(t, err)
	assert.Empty(t, channels)

	// ev_B untouched.
	remaining, err := s.Get("ev_B", "NET.A..EHZ")
	require.NoError(t, err)
	assert.Len(t, remaining, 1)
}

func TestComponent(t *testing.T) {
	folder := filepath.Join(t.TempDir(), "ADJOINT_SOURCES")
	comm := comms.New()

	c, err := New(comm, "windows", folder)
	require.NoError(t, err)
	defer c.Close()

	assert.FileExists(t, filepath.Join(folder, DatabaseName))

	_, err = c.Add("ev_A", "NET.A..EHZ", []Window{{StartS: 10, EndS: 20}})
	require.NoError(t, err)
	got, err := c.Get("ev_A", "NET.A..EHZ")
	require.NoError(t, err)
	assert.Len(t, got, 1)

	sib, err := comm.Resolve("windows")
	require.NoError(t, err)
	assert.Same(t, c, sib)
}
