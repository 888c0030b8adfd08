package scenario

// facilities.go - Facility placement. Grid scenarios place one facility
// per block center with homes on the outer ring and workplaces/shops
// inside; network scenarios convert a ratio of existing nodes into
// facilities drawn from a shuffled activity-set pool.

import (
	"fmt"
	"math"
	"math/rand"

	"github.com/gridsim-labs/gridsim/internal/matsim"
)

// GridFacilities places one facility at the center of every block,
// including the ring of blocks surrounding the grid. Outer-ring blocks
// become homes. When mixed is true every inner block offers both work
// and shopping; otherwise workRatio of the inner blocks become
// workplaces and the rest shops, assigned by a shuffled pool.
func GridFacilities(rng *rand.Rand, spec GridSpec, mixed bool, workRatio float64) []Facility {
	var pool []ActivityType
	if !mixed {
		innerCount := max(0, spec.Rows-1) * max(0, spec.Cols-1)
		workCount := int(math.Round(float64(innerCount) * workRatio))
		for i := 0; i < workCount; i++ {
			pool = append(pool, ActivityWork)
		}
		for i := workCount; i < innerCount; i++ {
			pool = append(pool, ActivityShopping)
		}
		rng.Shuffle(len(pool), func(i, j int) {
			pool[i], pool[j] = pool[j], pool[i]
		})
	}

	var facilities []Facility
	nextID := 1
	for row := -1; row < spec.Rows; row++ {
		for col := -1; col < spec.Cols; col++ {
			x := (float64(col) + 0.5) * spec.BlockSize
			y := (float64(row) + 0.5) * spec.BlockSize

			var activities ActivitySet
			outer := col == -1 || col == spec.Cols-1 || row == -1 || row == spec.Rows-1
			switch {
			case outer:
				activities = NewActivitySet(ActivityHome)
			case mixed:
				activities = NewActivitySet(ActivityWork, ActivityShopping)
			default:
				activities = NewActivitySet(pool[len(pool)-1])
				pool = pool[:len(pool)-1]
			}

			facilities = append(facilities, Facility{
				ID: nextID, X: x, Y: y, Activities: activities,
			})
			nextID++
		}
	}
	return facilities
}

// Mix maps an activity set to the ratio of network nodes converted into
// facilities offering it.
type Mix struct {
	Activities ActivitySet
	Ratio      float64
}

// ValidateMixes checks individual ratios and their sum.
func ValidateMixes(mixes []Mix) error {
	var sum float64
	for _, m := range mixes {
		if len(m.Activities) == 0 {
			return fmt.Errorf("facility mix with empty activity set")
		}
		if m.Ratio < 0 || m.Ratio > 1 {
			return fmt.Errorf("facility ratio for %s must be within [0, 1], got %v", m.Activities, m.Ratio)
		}
		sum += m.Ratio
	}
	if sum > 1 {
		return fmt.Errorf("sum of facility ratios must not exceed 1.0, got %v", sum)
	}
	return nil
}

// NodeFacilities converts network nodes into facilities. An activity-set
// pool is built from the mix ratios (counts rounded against the node
// total), shuffled, and zipped with the nodes in order; nodes beyond the
// pool stay facility-free.
func NodeFacilities(rng *rand.Rand, nodes []matsim.Node, mixes []Mix) ([]Facility, error) {
	if err := ValidateMixes(mixes); err != nil {
		return nil, err
	}

	total := len(nodes)
	var pool []ActivitySet
	for _, m := range mixes {
		count := int(math.Round(float64(total) * m.Ratio))
		count = max(0, min(total, count))
		for i := 0; i < count; i++ {
			pool = append(pool, m.Activities)
		}
	}
	if len(pool) > total {
		return nil, fmt.Errorf("facility pool (%d) exceeds node count (%d)", len(pool), total)
	}
	rng.Shuffle(len(pool), func(i, j int) {
		pool[i], pool[j] = pool[j], pool[i]
	})

	facilities := make([]Facility, 0, len(pool))
	for i, activities := range pool {
		facilities = append(facilities, Facility{
			ID: i + 1, X: nodes[i].X, Y: nodes[i].Y, Activities: activities,
		})
	}
	return facilities, nil
}

// FacilitiesDoc converts facilities to the wire representation.
func FacilitiesDoc(facilities []Facility) *matsim.Facilities {
	doc := &matsim.Facilities{}
	for _, f := range facilities {
		doc.Facilities = append(doc.Facilities, matsim.Facility{
			ID:         fmt.Sprintf("%d", f.ID),
			X:          f.X,
			Y:          f.Y,
			Activities: f.Activities.Strings(),
		})
	}
	return doc
}
