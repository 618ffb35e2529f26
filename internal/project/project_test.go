package project

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/seisflow/seisflow/internal/catalog"
	"github.com/seisflow/seisflow/internal/functions"
	"github.com/seisflow/seisflow/internal/seiserr"
)

// Test Plan for the orchestrator:
// - Initialize creates root, default config, full layout and descriptors
// - Initialize on an existing project keeps the config file
// - Load without a config file fails with MissingConfigError
// - EnsureLayout is idempotent and leaves existing content alone
// - every component is registered and reachable by name
// - components cooperate through the communicator (event → query)
// - ResolveFunction caches per kind and validates kind names
// - OutputFolder and LogFile create their directory trees
// - String summarizes the project

func initProject(t *testing.T) *Project {
	t.Helper()
	root := filepath.Join(t.TempDir(), "proj")
	p, err := Initialize(root, "TestProject")
	require.NoError(t, err)
	t.Cleanup(func() { p.Close() })
	return p
}

func TestInitialize_CreatesLayoutAndConfig(t *testing.T) {
	p := initProject(t)

	assert.FileExists(t, p.Paths.ConfigFile)
	for _, dir := range []string{
		p.Paths.DataEarthquakes,
		p.Paths.DataCorrelations,
		p.Paths.SyntheticsEarthquakes,
		p.Paths.ProcessedCorrelations,
		p.Paths.Windows,
		p.Paths.Weights,
		p.Paths.AdjointSources,
		p.Paths.Logs,
		p.Paths.SolverInput,
		p.Paths.Functions,
	} {
		assert.DirExists(t, dir)
	}

	assert.Equal(t, "TestProject", p.Config.Project.ProjectName)

	// Every kind got its descriptor template.
	for _, kind := range functions.Kinds() {
		assert.FileExists(t, functions.DescriptorPath(p.Paths.Functions, kind))
	}
}

func TestInitialize_ExistingConfigKept(t *testing.T) {
	p := initProject(t)
	root := p.Paths.Root
	p.Close()

	raw, err := os.ReadFile(p.Paths.ConfigFile)
	require.NoError(t, err)

	again, err := Initialize(root, "IgnoredName")
	require.NoError(t, err)
	defer again.Close()

	rawAfter, err := os.ReadFile(again.Paths.ConfigFile)
	require.NoError(t, err)
	assert.Equal(t, raw, rawAfter)
	assert.Equal(t, "TestProject", again.Config.Project.ProjectName)
}

func TestLoad_MissingConfig(t *testing.T) {
	_, err := Load(t.TempDir())

	var missing *seiserr.MissingConfigError
	assert.ErrorAs(t, err, &missing)
}

func TestEnsureLayout_Idempotent(t *testing.T) {
	p := initProject(t)

	// Drop a file into an existing folder, then re-run.
	marker := filepath.Join(p.Paths.DataEarthquakes, "keep.toml")
	require.NoError(t, os.WriteFile(marker, []byte("[event.origin]\nlatitude=1.0\nlongitude=2.0\n"), 0o644))

	require.NoError(t, p.Paths.EnsureLayout())
	require.NoError(t, p.Paths.EnsureLayout())

	assert.FileExists(t, marker)
}

func TestComponents_AllRegistered(t *testing.T) {
	p := initProject(t)

	for _, name := range []string{
		"project", "events", "waveforms", "reference_stations", "correlations",
		"weights", "iterations", "windows", "query", "validator", "downloads",
	} {
		_, err := p.Communicator().Resolve(name)
		assert.NoError(t, err, "component %q", name)
	}

	_, err := p.Communicator().Resolve("visualizations")
	var unknown *seiserr.UnknownComponentError
	assert.ErrorAs(t, err, &unknown)
}

func TestComponents_CooperateThroughCommunicator(t *testing.T) {
	p := initProject(t)

	body := "[event.origin]\nlatitude = 10.0\nlongitude = 20.0\ndepth_in_km = 3.0\n[event.magnitude]\nmagnitude = 5.5\n"
	require.NoError(t, os.WriteFile(filepath.Join(p.Paths.DataEarthquakes, "ev_A.toml"), []byte(body), 0o644))

	ev, err := p.Events()
	require.NoError(t, err)
	require.NoError(t, ev.Rescan())

	// Iterations reach events + waveforms through the communicator.
	iters, err := p.Iterations()
	require.NoError(t, err)
	require.NoError(t, iters.Create("001"))
	assert.DirExists(t, filepath.Join(p.Paths.SyntheticsEarthquakes, "ev_A", "ITERATION_001"))

	// Query joins the record with the synthetics it just got.
	q, err := p.Query()
	require.NoError(t, err)
	details, err := q.EventDetails(catalog.Key("ev_A"))
	require.NoError(t, err)
	assert.Equal(t, []string{"001"}, details.Iterations)
	assert.Equal(t, 5.5, details.Record.Float("magnitude"))
}

func TestResolveFunction(t *testing.T) {
	p := initProject(t)

	fn, err := p.ResolveFunction(functions.SourceTimeFunction)
	require.NoError(t, err)
	assert.Equal(t, "delta", fn.Implementation)

	stf, ok := fn.Impl.(functions.SourceTimeFunc)
	require.True(t, ok)
	assert.Equal(t, []float64{1, 0, 0}, stf(3, 0.1, fn.Params))

	// Cached per kind for the session.
	again, err := p.ResolveFunction(functions.SourceTimeFunction)
	require.NoError(t, err)
	assert.Same(t, fn, again)
}

func TestResolveFunction_UnknownKind(t *testing.T) {
	p := initProject(t)

	_, err := p.ResolveFunction(functions.Kind("plotting"))

	var nf *seiserr.NotFoundError
	assert.ErrorAs(t, err, &nf)
}

func TestResolveFunction_UnknownImplementation(t *testing.T) {
	p := initProject(t)

	path := functions.DescriptorPath(p.Paths.Functions, functions.Processing)
	require.NoError(t, os.WriteFile(path, []byte("implementation = \"no_such\"\n"), 0o644))

	_, err := p.ResolveFunction(functions.Processing)

	var nf *seiserr.NotFoundError
	require.ErrorAs(t, err, &nf)
	assert.Equal(t, "no_such", nf.Name)
}

func TestOutputFolderAndLogFile(t *testing.T) {
	p := initProject(t)

	dir, err := p.OutputFolder("ADJOINT_SOURCES", "iter_001")
	require.NoError(t, err)
	assert.DirExists(t, dir)
	assert.Contains(t, dir, filepath.Join(p.Paths.Output, "adjoint_sources"))

	logPath, err := p.LogFile("DOWNLOADS", "ev_A")
	require.NoError(t, err)
	assert.DirExists(t, filepath.Dir(logPath))
	assert.NoFileExists(t, logPath)
	assert.Contains(t, filepath.Base(logPath), "ev_A")
}

func TestString_Summary(t *testing.T) {
	p := initProject(t)

	s := p.String()
	assert.Contains(t, s, "TestProject")
	assert.Contains(t, s, "0 events")
	assert.Contains(t, s, "0 reference stations")
}
