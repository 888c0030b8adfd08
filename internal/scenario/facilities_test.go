package scenario

import (
	"math/rand"
	"testing"

	"github.com/gridsim-labs/gridsim/internal/matsim"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGridFacilitiesMixed(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	spec := testGridSpec()
	facilities := GridFacilities(rng, spec, true, 0)

	// One facility per block, including the surrounding ring.
	require.Len(t, facilities, 11*11)

	var homes, inner int
	for _, f := range facilities {
		if f.Activities.Has(ActivityHome) {
			homes++
			assert.Len(t, f.Activities, 1, "homes offer nothing else")
		} else {
			inner++
			assert.True(t, f.Activities.Has(ActivityWork))
			assert.True(t, f.Activities.Has(ActivityShopping))
		}
	}
	assert.Equal(t, 11*11-9*9, homes)
	assert.Equal(t, 9*9, inner)
}

func TestGridFacilitiesSegregated(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	spec := testGridSpec()
	facilities := GridFacilities(rng, spec, false, 0.5)

	var work, shop int
	for _, f := range facilities {
		switch {
		case f.Activities.Has(ActivityWork):
			work++
			assert.False(t, f.Activities.Has(ActivityShopping))
		case f.Activities.Has(ActivityShopping):
			shop++
		}
	}
	// 81 inner facilities split by the work ratio.
	assert.Equal(t, 41, work) // round(81 * 0.5)
	assert.Equal(t, 40, shop)
}

func TestGridFacilitiesOuterRingIsHomes(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	spec := GridSpec{Rows: 3, Cols: 3, BlockSize: 100, SpeedLimit: 10, LinkCapacity: 100}
	facilities := GridFacilities(rng, spec, true, 0)

	require.Len(t, facilities, 16)
	for _, f := range facilities {
		onRing := f.X < 0 || f.Y < 0 || f.X > 2*100 || f.Y > 2*100
		assert.Equal(t, onRing, f.Activities.Has(ActivityHome), "facility at (%v, %v)", f.X, f.Y)
	}
}

func TestGridFacilitiesCenteredOnBlocks(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	spec := GridSpec{Rows: 2, Cols: 2, BlockSize: 250, SpeedLimit: 10, LinkCapacity: 100}
	facilities := GridFacilities(rng, spec, true, 0)

	require.Len(t, facilities, 9)
	assert.Equal(t, -125.0, facilities[0].X)
	assert.Equal(t, -125.0, facilities[0].Y)
	assert.Equal(t, 125.0, facilities[4].X)
	assert.Equal(t, 125.0, facilities[4].Y)
}

func testNodes(n int) []matsim.Node {
	nodes := make([]matsim.Node, n)
	for i := range nodes {
		nodes[i] = matsim.Node{ID: string(rune('a' + i%26)), X: float64(i), Y: float64(i)}
	}
	return nodes
}

func TestNodeFacilities(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	mixes := []Mix{
		{Activities: NewActivitySet(ActivityHome), Ratio: 0.4},
		{Activities: NewActivitySet(ActivityWork, ActivityShopping), Ratio: 0.6},
	}

	facilities, err := NodeFacilities(rng, testNodes(100), mixes)
	require.NoError(t, err)
	require.Len(t, facilities, 100)

	var homes, mixed int
	for _, f := range facilities {
		if f.Activities.Has(ActivityHome) {
			homes++
		} else {
			mixed++
		}
	}
	assert.Equal(t, 40, homes)
	assert.Equal(t, 60, mixed)
}

func TestNodeFacilitiesPartialCoverage(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	mixes := []Mix{{Activities: NewActivitySet(ActivityHome), Ratio: 0.5}}

	facilities, err := NodeFacilities(rng, testNodes(10), mixes)
	require.NoError(t, err)
	// Remaining nodes get no facility at all.
	assert.Len(t, facilities, 5)
}

func TestValidateMixes(t *testing.T) {
	home := NewActivitySet(ActivityHome)

	assert.NoError(t, ValidateMixes([]Mix{{Activities: home, Ratio: 1}}))

	err := ValidateMixes([]Mix{{Activities: home, Ratio: 0.6}, {Activities: home, Ratio: 0.5}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "must not exceed 1.0")

	assert.Error(t, ValidateMixes([]Mix{{Activities: home, Ratio: -0.1}}))
	assert.Error(t, ValidateMixes([]Mix{{Ratio: 0.5}}))
}

func TestActivitySet(t *testing.T) {
	set := NewActivitySet(ActivityShopping, ActivityWork, ActivityShopping)
	assert.Equal(t, "work+shopping", set.String())
	assert.True(t, set.Has(ActivityWork))
	assert.False(t, set.Has(ActivityHome))
}

func TestParseActivityType(t *testing.T) {
	got, err := ParseActivityType(" Work ")
	require.NoError(t, err)
	assert.Equal(t, ActivityWork, got)

	_, err = ParseActivityType("leisure")
	assert.Error(t, err)
}
