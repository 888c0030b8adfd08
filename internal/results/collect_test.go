package results

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeScoreStats(t *testing.T, dir string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(dir, 0755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "scorestats.txt"), []byte(sampleScoreStats), 0644))
}

func TestCollect(t *testing.T) {
	root := t.TempDir()
	writeScoreStats(t, filepath.Join(root, "agents_500", "output_trial_2"))
	writeScoreStats(t, filepath.Join(root, "agents_500", "output_trial_1"))
	writeScoreStats(t, filepath.Join(root, "capacity_300", "output_trial_1"))

	// scorestats outside an output dir are ignored
	writeScoreStats(t, filepath.Join(root, "agents_500", "notes"))

	entries, err := Collect(root)
	require.NoError(t, err)
	require.Len(t, entries, 3)

	// Sorted by group, then variant.
	assert.Equal(t, "agents_500", entries[0].Group)
	assert.Equal(t, "output_trial_1", entries[0].Variant)
	assert.Equal(t, "output_trial_2", entries[1].Variant)
	assert.Equal(t, "capacity_300", entries[2].Group)

	assert.Equal(t, 3, entries[0].Iterations)
	assert.Equal(t, 104.25, entries[0].Final.Executed)
}

func TestCollectEmptyTree(t *testing.T) {
	entries, err := Collect(t.TempDir())
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestCollectMissingRoot(t *testing.T) {
	_, err := Collect(filepath.Join(t.TempDir(), "nope"))
	assert.Error(t, err)
}

func TestCollectMalformedStats(t *testing.T) {
	root := t.TempDir()
	dir := filepath.Join(root, "scenario1", "output_mixed")
	require.NoError(t, os.MkdirAll(dir, 0755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "scorestats.txt"), []byte("garbage\n"), 0644))

	_, err := Collect(root)
	assert.Error(t, err)
}
