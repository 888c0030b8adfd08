package scenario

// sweep.go - Parameter sweeps. A sweep varies one grid parameter over a
// list of values, generating several trials per value. Each trial gets
// its own seed from the sweep's seed list so results are comparable
// across values while still averaging over randomness.

import (
	"fmt"
	"strconv"
)

// SweepParam identifies the grid parameter a sweep varies.
type SweepParam string

// Sweepable parameters.
const (
	SweepAgents   SweepParam = "agents"
	SweepCapacity SweepParam = "capacity"
	SweepMaxSpeed SweepParam = "maxspeed"
)

// ParseSweepParam validates a sweep parameter name.
func ParseSweepParam(s string) (SweepParam, error) {
	switch SweepParam(s) {
	case SweepAgents, SweepCapacity, SweepMaxSpeed:
		return SweepParam(s), nil
	}
	return "", fmt.Errorf("unknown sweep parameter %q (want agents, capacity, or maxspeed)", s)
}

// Sweep describes a full parameter sweep over a base grid scenario.
// MaxSpeed values are km/h; the conversion to m/s happens per variant.
type Sweep struct {
	Param  SweepParam
	Values []float64
	Trials int
	Seeds  []int64

	Base GridVariant // swept parameter overridden per value
}

// Validate checks the sweep definition.
func (s Sweep) Validate() error {
	if _, err := ParseSweepParam(string(s.Param)); err != nil {
		return err
	}
	if len(s.Values) == 0 {
		return fmt.Errorf("sweep has no values")
	}
	if s.Trials <= 0 {
		return fmt.Errorf("sweep trials must be positive, got %d", s.Trials)
	}
	if len(s.Seeds) == 0 {
		return fmt.Errorf("sweep has no seeds")
	}
	return s.Base.Validate()
}

// SweepVariant is one expanded trial of a sweep.
type SweepVariant struct {
	Dir     string // value directory, e.g. "agents_500"
	Variant GridVariant
}

// Variants expands the sweep. Trial i of every value uses seed
// Seeds[i mod len(Seeds)] and suffix "_trial_<i+1>".
func (s Sweep) Variants() ([]SweepVariant, error) {
	if err := s.Validate(); err != nil {
		return nil, err
	}

	var out []SweepVariant
	for _, value := range s.Values {
		dir := fmt.Sprintf("%s_%s", s.Param, formatSweepValue(value))
		for trial := 0; trial < s.Trials; trial++ {
			v := s.Base
			v.Seed = s.Seeds[trial%len(s.Seeds)]
			v.Suffix = fmt.Sprintf("_trial_%d", trial+1)

			switch s.Param {
			case SweepAgents:
				v.Agents = int(value)
			case SweepCapacity:
				v.Grid.LinkCapacity = value
			case SweepMaxSpeed:
				v.Grid.SpeedLimit = KMHToMS(value)
			}

			out = append(out, SweepVariant{Dir: dir, Variant: v})
		}
	}
	return out, nil
}

// formatSweepValue keeps directory names free of trailing zeros:
// 500 -> "500", 2.5 -> "2.5".
func formatSweepValue(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
