package scenario

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testPlanSpec(agents int) PlanSpec {
	return PlanSpec{
		Agents:     agents,
		HomeWindow: GridHomeWindow,
		WorkWindow: GridWorkWindow,
		ShopWindow: GridShopWindow,
		Step:       GridTimeStep,
	}
}

func TestBuildPlans(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	facilities := GridFacilities(rng, testGridSpec(), false, 0.5)

	pop, err := BuildPlans(rng, facilities, testPlanSpec(50))
	require.NoError(t, err)
	require.Len(t, pop.Persons, 50)

	byID := map[int]Facility{}
	for _, f := range facilities {
		byID[f.ID] = f
	}

	for _, p := range pop.Persons {
		acts := p.Plan.Activities
		require.Len(t, acts, 4)
		assert.True(t, p.Plan.Selected)

		assert.Equal(t, "home", acts[0].Type)
		assert.Equal(t, "work", acts[1].Type)
		assert.Equal(t, "shopping", acts[2].Type)
		assert.Equal(t, "home", acts[3].Type)

		// The chain returns to the same home, with no end time there.
		assert.Equal(t, acts[0].X, acts[3].X)
		assert.Equal(t, acts[0].Y, acts[3].Y)
		assert.Empty(t, acts[3].EndTime)

		// Home, workplace, and shop are pairwise distinct locations.
		locations := map[[2]float64]bool{}
		for _, a := range acts[:3] {
			locations[[2]float64{a.X, a.Y}] = true
			assert.NotEmpty(t, a.EndTime)
		}
		assert.Len(t, locations, 3)
	}
}

func TestBuildPlansDepartureWindows(t *testing.T) {
	rng := rand.New(rand.NewSource(9))
	facilities := GridFacilities(rng, testGridSpec(), true, 0)

	pop, err := BuildPlans(rng, facilities, testPlanSpec(200))
	require.NoError(t, err)

	for _, p := range pop.Persons {
		acts := p.Plan.Activities
		assert.GreaterOrEqual(t, acts[0].EndTime, "07:00:00")
		assert.LessOrEqual(t, acts[0].EndTime, "08:00:00")
		assert.GreaterOrEqual(t, acts[1].EndTime, "17:00:00")
		assert.LessOrEqual(t, acts[1].EndTime, "18:00:00")
		assert.GreaterOrEqual(t, acts[2].EndTime, "19:00:00")
		assert.LessOrEqual(t, acts[2].EndTime, "21:00:00")
	}
}

func TestBuildPlansMissingActivities(t *testing.T) {
	rng := rand.New(rand.NewSource(1))

	onlyHomes := []Facility{
		{ID: 1, Activities: NewActivitySet(ActivityHome)},
		{ID: 2, Activities: NewActivitySet(ActivityHome)},
	}
	_, err := BuildPlans(rng, onlyHomes, testPlanSpec(1))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no work facilities")
}

func TestBuildPlansNoDistinctWorkplace(t *testing.T) {
	rng := rand.New(rand.NewSource(1))

	// The only workplace shares its facility with the only home.
	facilities := []Facility{
		{ID: 1, Activities: NewActivitySet(ActivityHome, ActivityWork)},
		{ID: 2, Activities: NewActivitySet(ActivityShopping)},
	}
	_, err := BuildPlans(rng, facilities, testPlanSpec(1))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "distinct from home")
}

func TestPlanSpecValidate(t *testing.T) {
	spec := testPlanSpec(0)
	assert.Error(t, spec.Validate())

	spec = testPlanSpec(10)
	spec.WorkWindow = TimeWindow{Begin: Clock(18, 0, 0), End: Clock(17, 0, 0)}
	assert.Error(t, spec.Validate())
}
