package runner

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gridsim-labs/gridsim/internal/state"
)

func writeFile(t *testing.T, path string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o750))
	require.NoError(t, os.WriteFile(path, []byte("<config/>"), 0o644))
}

func TestCommand(t *testing.T) {
	dir := t.TempDir()
	cfg := filepath.Join(dir, "agents_500", "config_trial_1.xml")
	writeFile(t, cfg)

	r := &Runner{
		Java:     "java",
		Jar:      filepath.Join(dir, "matsim-12.0.jar"),
		JavaOpts: []string{"-Xmx4g"},
	}

	cmd, err := r.Command(context.Background(), cfg)
	require.NoError(t, err)

	absCfg, err := filepath.Abs(cfg)
	require.NoError(t, err)
	absJar, err := filepath.Abs(r.Jar)
	require.NoError(t, err)

	assert.Equal(t, filepath.Dir(absCfg), cmd.Dir)
	assert.Equal(t, []string{
		"java", "-Xmx4g", "-cp", absJar,
		"org.matsim.run.Controler", absCfg,
	}, cmd.Args)
}

func TestDiscoverConfigs(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "agents_500", "config_trial_1.xml"))
	writeFile(t, filepath.Join(root, "agents_500", "config_trial_2.xml"))
	writeFile(t, filepath.Join(root, "agents_500", "network_trial_1.xml"))
	writeFile(t, filepath.Join(root, "agents_500", "output_trial_1", "config.xml"))
	writeFile(t, filepath.Join(root, "base", "config.xml"))

	configs, err := DiscoverConfigs(root)
	require.NoError(t, err)

	var rels []string
	for _, c := range configs {
		rel, err := filepath.Rel(root, c)
		require.NoError(t, err)
		rels = append(rels, filepath.ToSlash(rel))
	}
	assert.Equal(t, []string{
		"agents_500/config_trial_1.xml",
		"agents_500/config_trial_2.xml",
		"base/config.xml",
	}, rels)
}

func TestDiscoverConfigsMissingRoot(t *testing.T) {
	_, err := DiscoverConfigs(filepath.Join(t.TempDir(), "nope"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "scenarios directory")
}

func TestFilterConfigs(t *testing.T) {
	root := t.TempDir()
	a := filepath.Join(root, "agents_500", "config_trial_1.xml")
	b := filepath.Join(root, "capacity_300", "config_trial_1.xml")
	writeFile(t, a)
	writeFile(t, b)
	configs := []string{a, b}

	got, err := FilterConfigs(root, configs, "agents*/*")
	require.NoError(t, err)
	assert.Equal(t, []string{a}, got)

	got, err = FilterConfigs(root, configs, "config_trial_1.xml")
	require.NoError(t, err)
	assert.Equal(t, configs, got)

	got, err = FilterConfigs(root, configs, "")
	require.NoError(t, err)
	assert.Equal(t, configs, got)

	_, err = FilterConfigs(root, configs, "[")
	assert.Error(t, err)
}

func TestIsConfigFile(t *testing.T) {
	assert.True(t, IsConfigFile("config.xml"))
	assert.True(t, IsConfigFile("config_trial_3.xml"))
	assert.False(t, IsConfigFile("network.xml"))
	assert.False(t, IsConfigFile("config.yaml"))
}

func writeScript(t *testing.T, path, body string) {
	t.Helper()
	require.NoError(t, os.WriteFile(path, []byte(body), 0o755))
}

func TestRunAllContinuesPastFailure(t *testing.T) {
	dir := t.TempDir()
	bad := filepath.Join(dir, "broken", "config.xml")
	good1 := filepath.Join(dir, "a", "config.xml")
	good2 := filepath.Join(dir, "b", "config.xml")
	for _, c := range []string{bad, good1, good2} {
		writeFile(t, c)
	}

	// Fake engine: fails for the broken scenario, succeeds after a
	// short delay otherwise. The delay keeps the healthy runs in
	// flight while the failure lands, so they would be cancelled if
	// one failure stopped the batch.
	java := filepath.Join(dir, "java.sh")
	writeScript(t, java, "#!/bin/sh\ncase \"$4\" in */broken/*) exit 3 ;; esac\nsleep 1\nexit 0\n")

	r := &Runner{Java: java, Jar: filepath.Join(dir, "matsim.jar")}
	results, err := r.RunAll(context.Background(), []string{bad, good1, good2}, 3)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "broken")

	require.Len(t, results, 3)
	assert.Error(t, results[0].Err)
	assert.Equal(t, 3, results[0].ExitCode)
	require.NoError(t, results[1].Err)
	assert.Equal(t, 0, results[1].ExitCode)
	require.NoError(t, results[2].Err)
	assert.Equal(t, 0, results[2].ExitCode)
}

func TestRunOneRecordsAbsoluteConfigPath(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	cfg := filepath.Join("scenarios", "density", "config.xml")
	writeFile(t, cfg)

	store := state.NewSQLiteStore(nil)
	require.NoError(t, store.Open(":memory:"))
	require.NoError(t, store.Migrate())
	t.Cleanup(func() { _ = store.Close() })

	r := &Runner{Java: "true", Jar: filepath.Join(dir, "matsim.jar"), Store: store}
	res := r.RunOne(context.Background(), cfg)
	require.NoError(t, res.Err)

	abs, err := filepath.Abs(cfg)
	require.NoError(t, err)

	// History lookups use discovered paths, which are absolute; the
	// recorded path must match even when the run was started with a
	// relative one.
	run, err := store.LatestRunForConfig(abs)
	require.NoError(t, err)
	require.NotNil(t, run)
	assert.Equal(t, abs, run.ConfigPath)
	assert.Equal(t, "density", run.Scenario)
}

func TestEnvironmentCheckMissingJar(t *testing.T) {
	r := &Runner{Java: "true", Jar: filepath.Join(t.TempDir(), "missing.jar")}
	err := r.EnvironmentCheck()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "matsim jar")
}
