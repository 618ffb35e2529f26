package weights

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/seisflow/seisflow/internal/catalog"
	"github.com/seisflow/seisflow/internal/comms"
	"github.com/seisflow/seisflow/internal/seiserr"
)

// Test Plan for the weights component:
// - Extract parses a full weight-set file
// - a missing comment defaults with a warning through the store callback
// - a file without [weight_set] is malformed
// - the component round-trips records through the catalog

const fullSet = `[weight_set]
name = "sw_1"
comment = "station weights, first pass"
event_count = 12
normalized = true
`

const noComment = `[weight_set]
name = "sw_2"
event_count = 3
normalized = false
`

func writeSet(t *testing.T, dir, name, body string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name+".toml"), []byte(body), 0o644))
}

func TestExtract_Full(t *testing.T) {
	dir := t.TempDir()
	writeSet(t, dir, "sw_1", fullSet)

	values, warnings, err := Extract(filepath.Join(dir, "sw_1.toml"))
	require.NoError(t, err)
	require.Len(t, values, len(Index))
	assert.Empty(t, warnings)
	assert.Equal(t, "sw_1", values[1])
	assert.Equal(t, "station weights, first pass", values[2])
	assert.Equal(t, int64(12), values[3])
	assert.Equal(t, true, values[4])
}

func TestExtract_MissingTable(t *testing.T) {
	dir := t.TempDir()
	writeSet(t, dir, "junk", "just = \"values\"\n")

	_, _, err := Extract(filepath.Join(dir, "junk.toml"))

	var malformed *seiserr.MalformedSourceError
	assert.ErrorAs(t, err, &malformed)
}

func TestComponent_DefaultedCommentWarns(t *testing.T) {
	dir := t.TempDir()
	writeSet(t, dir, "sw_2", noComment)

	var warned []string
	c, err := New(comms.New(), "weights", dir,
		catalog.WithWarnFunc(func(key, msg string) { warned = append(warned, key+": "+msg) }))
	require.NoError(t, err)

	rec, err := c.Get(catalog.Key("sw_2"))
	require.NoError(t, err)
	assert.Equal(t, "", rec.String("comment"))
	require.Len(t, warned, 1)
	assert.Contains(t, warned[0], "sw_2")
}

func TestComponent_ListAndGetAll(t *testing.T) {
	dir := t.TempDir()
	writeSet(t, dir, "sw_b", fullSet)
	writeSet(t, dir, "sw_a", fullSet)

	c, err := New(comms.New(), "weights", dir)
	require.NoError(t, err)
	assert.Equal(t, 2, c.Count())

	names, err := c.List()
	require.NoError(t, err)
	assert.Equal(t, []string{"sw_a", "sw_b"}, names)

	all, err := c.GetAll()
	require.NoError(t, err)
	assert.Len(t, all, 2)
	assert.True(t, c.Has(all["sw_a"]))
}
