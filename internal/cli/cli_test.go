package cli

// Test Plan for the command tree:
// - init creates a project and reports its name and root
// - init on an existing project keeps the original config
// - commands against an uninitialized root fail with the config hint
// - events list / count / info read back a written event file
// - events info on an unknown event fails
// - validate reports a clean project and fails on a malformed event
// - watch shuts down cleanly when its context is cancelled

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/seisflow/seisflow/internal/project"
)

const testEvent = `[event.origin]
latitude = 38.82
longitude = 40.14
depth_in_km = 10.0

[event.magnitude]
magnitude = 5.9
`

// runCommand executes the command tree with args and captures its output.
func runCommand(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var buf bytes.Buffer
	rootCmd.SetOut(&buf)
	rootCmd.SetErr(&buf)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return buf.String(), err
}

// initTestProject runs init against a fresh temp root and returns it.
func initTestProject(t *testing.T) string {
	t.Helper()
	root := filepath.Join(t.TempDir(), "proj")
	out, err := runCommand(t, "init", "--root", root, "--name", "CLITest")
	require.NoError(t, err)
	require.Contains(t, out, "CLITest")
	return root
}

func writeTestEvent(t *testing.T, root, name, body string) {
	t.Helper()
	path := filepath.Join(root, "DATA", "EARTHQUAKES", name+".toml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
}

func TestInit_CreatesProject(t *testing.T) {
	root := initTestProject(t)

	assert.FileExists(t, filepath.Join(root, project.ConfigFileName))
	assert.DirExists(t, filepath.Join(root, "DATA", "EARTHQUAKES"))
	assert.DirExists(t, filepath.Join(root, "SETS", "WEIGHTS"))
}

func TestInit_ExistingProjectKeepsConfig(t *testing.T) {
	root := initTestProject(t)

	out, err := runCommand(t, "init", "--root", root, "--name", "OtherName")
	require.NoError(t, err)
	assert.Contains(t, out, "CLITest")
	assert.NotContains(t, out, "OtherName")
}

func TestCommands_UninitializedRoot(t *testing.T) {
	_, err := runCommand(t, "info", "--root", t.TempDir())

	require.Error(t, err)
	assert.Contains(t, err.Error(), "no project config file")
}

func TestEvents_ListCountInfo(t *testing.T) {
	root := initTestProject(t)
	writeTestEvent(t, root, "GCMT_event_TURKEY", testEvent)

	out, err := runCommand(t, "events", "list", "--root", root)
	require.NoError(t, err)
	assert.Contains(t, out, "1 events in project:")
	assert.Contains(t, out, "GCMT_event_TURKEY")

	out, err = runCommand(t, "events", "count", "--root", root)
	require.NoError(t, err)
	assert.Equal(t, "1\n", out)

	out, err = runCommand(t, "events", "info", "GCMT_event_TURKEY", "--root", root)
	require.NoError(t, err)
	assert.Contains(t, out, "Latitude: 38.820")
	assert.Contains(t, out, "Magnitude: 5.90")
	assert.Contains(t, out, "Raw waveform files: 0")
}

func TestEvents_InfoUnknownEvent(t *testing.T) {
	root := initTestProject(t)

	_, err := runCommand(t, "events", "info", "no_such_event", "--root", root)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "no_such_event")
}

func TestValidate_CleanAndMalformed(t *testing.T) {
	root := initTestProject(t)

	out, err := runCommand(t, "validate", "--root", root)
	require.NoError(t, err)
	assert.Contains(t, out, "Checked 0 events.")
	assert.Contains(t, out, "No problems found.")

	writeTestEvent(t, root, "ev_bad", "[event]\n# no origin\n")

	out, err = runCommand(t, "validate", "--root", root)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "1 problems")
	assert.Contains(t, out, "ev_bad")
}

func TestWatch_StopsOnContextCancel(t *testing.T) {
	root := initTestProject(t)

	ctx, cancel := context.WithCancel(context.Background())
	var buf bytes.Buffer
	rootCmd.SetOut(&buf)
	rootCmd.SetErr(&buf)
	rootCmd.SetArgs([]string{"watch", "--root", root})

	done := make(chan error, 1)
	go func() { done <- rootCmd.ExecuteContext(ctx) }()

	time.Sleep(200 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		require.NoError(t, err)
		assert.Contains(t, buf.String(), "Watching project folders")
	case <-time.After(5 * time.Second):
		t.Fatal("watch did not stop after context cancellation")
	}
}
