package scenario

// plans.go - Agent plan generation. Every agent gets the same daily
// chain: home -> work -> shopping -> home, with the three locations
// pairwise distinct and the departure times drawn from the scenario's
// time windows.

import (
	"fmt"
	"math/rand"
	"strconv"
	"time"

	"github.com/gridsim-labs/gridsim/internal/matsim"
)

// PlanSpec parameterizes plan generation.
type PlanSpec struct {
	Agents     int
	HomeWindow TimeWindow // departure home -> workplace
	WorkWindow TimeWindow // departure workplace -> shop
	ShopWindow TimeWindow // departure shop -> home
	Step       time.Duration
}

// Validate checks the agent count and time windows.
func (s PlanSpec) Validate() error {
	if s.Agents <= 0 {
		return fmt.Errorf("agent count must be positive, got %d", s.Agents)
	}
	for _, w := range []TimeWindow{s.HomeWindow, s.WorkWindow, s.ShopWindow} {
		if err := w.Validate(); err != nil {
			return err
		}
	}
	return nil
}

// BuildPlans generates the population. For each agent a home, a
// workplace distinct from the home, and a shop distinct from both are
// picked uniformly from the matching facilities.
func BuildPlans(rng *rand.Rand, facilities []Facility, spec PlanSpec) (*matsim.Population, error) {
	if err := spec.Validate(); err != nil {
		return nil, err
	}

	homes := filterFacilities(facilities, ActivityHome)
	workplaces := filterFacilities(facilities, ActivityWork)
	shops := filterFacilities(facilities, ActivityShopping)
	if len(homes) == 0 {
		return nil, fmt.Errorf("no home facilities available")
	}
	if len(workplaces) == 0 {
		return nil, fmt.Errorf("no work facilities available")
	}
	if len(shops) == 0 {
		return nil, fmt.Errorf("no shopping facilities available")
	}

	pop := &matsim.Population{}
	for i := 0; i < spec.Agents; i++ {
		home := homes[rng.Intn(len(homes))]

		workPool := excludeFacilities(workplaces, home.ID)
		if len(workPool) == 0 {
			return nil, fmt.Errorf("no work facility distinct from home %d", home.ID)
		}
		workplace := workPool[rng.Intn(len(workPool))]

		shopPool := excludeFacilities(shops, home.ID, workplace.ID)
		if len(shopPool) == 0 {
			return nil, fmt.Errorf("no shopping facility distinct from home %d and workplace %d", home.ID, workplace.ID)
		}
		shop := shopPool[rng.Intn(len(shopPool))]

		pop.Persons = append(pop.Persons, matsim.Person{
			ID: strconv.Itoa(i + 1),
			Plan: matsim.Plan{
				Selected: true,
				Mode:     "car",
				Activities: []matsim.Activity{
					{Type: string(ActivityHome), X: home.X, Y: home.Y,
						EndTime: spec.HomeWindow.Random(rng, spec.Step).String()},
					{Type: string(ActivityWork), X: workplace.X, Y: workplace.Y,
						EndTime: spec.WorkWindow.Random(rng, spec.Step).String()},
					{Type: string(ActivityShopping), X: shop.X, Y: shop.Y,
						EndTime: spec.ShopWindow.Random(rng, spec.Step).String()},
					{Type: string(ActivityHome), X: home.X, Y: home.Y},
				},
			},
		})
	}
	return pop, nil
}

func excludeFacilities(facilities []Facility, ids ...int) []Facility {
	var out []Facility
	for _, f := range facilities {
		excluded := false
		for _, id := range ids {
			if f.ID == id {
				excluded = true
				break
			}
		}
		if !excluded {
			out = append(out, f)
		}
	}
	return out
}
