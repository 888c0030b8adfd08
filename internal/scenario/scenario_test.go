package scenario

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/gridsim-labs/gridsim/internal/matsim"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testGridVariant() GridVariant {
	return GridVariant{
		Seed:      4759245,
		Grid:      testGridSpec(),
		Agents:    25,
		Mixed:     false,
		WorkRatio: 0.5,
		Suffix:    "_segregated_250",
	}
}

func TestGenerateGrid(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, GenerateGrid(dir, testGridVariant()))

	for _, name := range []string{
		"config_segregated_250.xml",
		"network_segregated_250.xml",
		"facilities_segregated_250.xml",
		"plans_segregated_250.xml",
	} {
		info, err := os.Stat(filepath.Join(dir, name))
		require.NoError(t, err, name)
		assert.Positive(t, info.Size(), name)
	}

	cfg, err := os.ReadFile(filepath.Join(dir, "config_segregated_250.xml"))
	require.NoError(t, err)
	assert.Contains(t, string(cfg), `value="network_segregated_250.xml"`)
	assert.Contains(t, string(cfg), `value="./output_segregated_250"`)
}

func TestGenerateGridDeterministic(t *testing.T) {
	a := t.TempDir()
	b := t.TempDir()
	require.NoError(t, GenerateGrid(a, testGridVariant()))
	require.NoError(t, GenerateGrid(b, testGridVariant()))

	for _, name := range []string{
		"config_segregated_250.xml",
		"network_segregated_250.xml",
		"facilities_segregated_250.xml",
		"plans_segregated_250.xml",
	} {
		wantBytes, err := os.ReadFile(filepath.Join(a, name))
		require.NoError(t, err)
		gotBytes, err := os.ReadFile(filepath.Join(b, name))
		require.NoError(t, err)
		assert.Equal(t, string(wantBytes), string(gotBytes), name)
	}
}

func TestGenerateGridDifferentSeeds(t *testing.T) {
	a := t.TempDir()
	b := t.TempDir()

	v := testGridVariant()
	require.NoError(t, GenerateGrid(a, v))
	v.Seed = 999
	require.NoError(t, GenerateGrid(b, v))

	aPlans, err := os.ReadFile(filepath.Join(a, "plans_segregated_250.xml"))
	require.NoError(t, err)
	bPlans, err := os.ReadFile(filepath.Join(b, "plans_segregated_250.xml"))
	require.NoError(t, err)
	assert.NotEqual(t, string(aPlans), string(bPlans))
}

func TestGenerateGridInvalid(t *testing.T) {
	v := testGridVariant()
	v.Agents = 0
	assert.Error(t, GenerateGrid(t.TempDir(), v))

	v = testGridVariant()
	v.WorkRatio = 1.5
	assert.Error(t, GenerateGrid(t.TempDir(), v))
}

func TestGenerateFromNetwork(t *testing.T) {
	dir := t.TempDir()

	// A generated grid doubles as the "pre-built" network.
	network := testGridSpec().BuildNetwork()
	require.NoError(t, matsim.WriteNetworkFile(filepath.Join(dir, "network.xml"), network))

	v := NetworkVariant{
		Seed:        847464097,
		NetworkFile: "network.xml",
		Agents:      40,
		Suffix:      "_mixed",
		Mixes: []Mix{
			{Activities: NewActivitySet(ActivityHome), Ratio: 0.4},
			{Activities: NewActivitySet(ActivityWork, ActivityShopping), Ratio: 0.6},
		},
	}
	require.NoError(t, GenerateFromNetwork(dir, v))

	for _, name := range []string{"config_mixed.xml", "facilities_mixed.xml", "plans_mixed.xml"} {
		_, err := os.Stat(filepath.Join(dir, name))
		require.NoError(t, err, name)
	}

	// The config references the existing network file, not a generated one.
	cfg, err := os.ReadFile(filepath.Join(dir, "config_mixed.xml"))
	require.NoError(t, err)
	assert.Contains(t, string(cfg), `value="network.xml"`)
}

func TestGenerateFromNetworkMissingFile(t *testing.T) {
	v := NetworkVariant{
		Seed: 1, NetworkFile: "missing.xml", Agents: 10,
		Mixes: []Mix{{Activities: NewActivitySet(ActivityHome), Ratio: 1}},
	}
	assert.Error(t, GenerateFromNetwork(t.TempDir(), v))
}
