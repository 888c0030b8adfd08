package commands

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunInit(t *testing.T) {
	dir := t.TempDir()
	cmd := NewInitCommand()
	var buf bytes.Buffer
	cmd.SetOut(&buf)
	cmd.SetErr(&buf)

	require.NoError(t, runInit(cmd, dir, false))

	data, err := os.ReadFile(filepath.Join(dir, "gridsim.yaml"))
	require.NoError(t, err)
	assert.Contains(t, string(data), "scenarios_dir: scenarios")
	assert.Contains(t, string(data), "kind: grid")

	fi, err := os.Stat(filepath.Join(dir, "scenarios"))
	require.NoError(t, err)
	assert.True(t, fi.IsDir())

	// Existing config is not overwritten without --force.
	err = runInit(cmd, dir, false)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already exists")

	assert.NoError(t, runInit(cmd, dir, true))
}
