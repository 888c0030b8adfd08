// Package scenario generates deterministic MATSim simulation scenarios:
// chessboard road networks, facility placements, and randomized agent
// plans. All randomness comes from an explicitly seeded source so the
// same seed always produces the same file set.
package scenario

import (
	"fmt"
	"sort"
	"strings"
)

// ActivityType is a kind of daily activity an agent performs.
type ActivityType string

// Activity types known to the study scenarios.
const (
	ActivityHome     ActivityType = "home"
	ActivityWork     ActivityType = "work"
	ActivityShopping ActivityType = "shopping"
)

// activityRank fixes the order activity types appear in generated files.
var activityRank = map[ActivityType]int{
	ActivityHome:     0,
	ActivityWork:     1,
	ActivityShopping: 2,
}

// ParseActivityType validates an activity type name.
func ParseActivityType(s string) (ActivityType, error) {
	t := ActivityType(strings.ToLower(strings.TrimSpace(s)))
	if _, ok := activityRank[t]; !ok {
		return "", fmt.Errorf("unknown activity type %q (want home, work, or shopping)", s)
	}
	return t, nil
}

// ActivitySet is a normalized set of activity types.
type ActivitySet []ActivityType

// NewActivitySet builds a deduplicated, canonically ordered set.
func NewActivitySet(types ...ActivityType) ActivitySet {
	seen := make(map[ActivityType]bool, len(types))
	var set ActivitySet
	for _, t := range types {
		if !seen[t] {
			seen[t] = true
			set = append(set, t)
		}
	}
	sort.Slice(set, func(i, j int) bool {
		return activityRank[set[i]] < activityRank[set[j]]
	})
	return set
}

// Has reports whether the set contains the given type.
func (s ActivitySet) Has(t ActivityType) bool {
	for _, a := range s {
		if a == t {
			return true
		}
	}
	return false
}

// Strings returns the set as plain strings, in canonical order.
func (s ActivitySet) Strings() []string {
	out := make([]string, len(s))
	for i, t := range s {
		out[i] = string(t)
	}
	return out
}

// String renders the set as "work+shopping".
func (s ActivitySet) String() string {
	return strings.Join(s.Strings(), "+")
}

// Facility is a location agents can live, work, or shop at.
type Facility struct {
	ID         int
	X          float64
	Y          float64
	Activities ActivitySet
}

// filterFacilities returns the facilities offering the given activity.
func filterFacilities(facilities []Facility, t ActivityType) []Facility {
	var out []Facility
	for _, f := range facilities {
		if f.Activities.Has(t) {
			out = append(out, f)
		}
	}
	return out
}
