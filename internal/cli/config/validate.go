package config

import (
	"fmt"
	"os"
)

// validPlacements are the facility placement strategies grid scenarios
// accept. "mixed" puts work+shopping on every inner facility;
// "segregated" divides inner facilities into dedicated work and
// shopping ones.
var validPlacements = map[string]bool{
	"mixed":      true,
	"segregated": true,
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if c.ScenariosDir == "" {
		return fmt.Errorf("scenarios_dir is required")
	}

	for name, sc := range c.Scenarios {
		if err := sc.Validate(); err != nil {
			return fmt.Errorf("scenario %q: %w", name, err)
		}
	}
	for name, sw := range c.Sweeps {
		if err := sw.Validate(); err != nil {
			return fmt.Errorf("sweep %q: %w", name, err)
		}
	}
	return nil
}

// Validate checks a single scenario definition.
func (s *ScenarioConfig) Validate() error {
	switch s.Kind {
	case "grid":
		if s.Rows < 2 || s.Cols < 2 {
			return fmt.Errorf("grid requires at least 2 rows and 2 cols, got %dx%d", s.Rows, s.Cols)
		}
		if len(s.BlockSizes) == 0 {
			return fmt.Errorf("grid requires at least one block size")
		}
		for _, p := range s.Placements {
			if !validPlacements[p] {
				return fmt.Errorf("unknown placement %q (valid: mixed, segregated)", p)
			}
		}
		if r := s.WorkFacilityRatio; r != nil && (*r < 0 || *r > 1) {
			return fmt.Errorf("work_facility_ratio must be in [0, 1], got %g", *r)
		}
	case "network":
		if s.NetworkFile == "" {
			return fmt.Errorf("network scenario requires network_file")
		}
		if len(s.Mixes) == 0 {
			return fmt.Errorf("network scenario requires at least one mix")
		}
		for name, mix := range s.Mixes {
			if len(mix.Activities) == 0 {
				return fmt.Errorf("mix %q has no activities", name)
			}
			if mix.Ratio < 0 || mix.Ratio > 1 {
				return fmt.Errorf("mix %q ratio must be in [0, 1], got %g", name, mix.Ratio)
			}
		}
	case "":
		return fmt.Errorf("kind is required (grid or network)")
	default:
		return fmt.Errorf("unknown kind %q (valid: grid, network)", s.Kind)
	}

	if len(s.Agents) == 0 {
		return fmt.Errorf("at least one agent count is required")
	}
	for _, n := range s.Agents {
		if n <= 0 {
			return fmt.Errorf("agent counts must be positive, got %d", n)
		}
	}
	return nil
}

// Validate checks a single sweep definition.
func (s *SweepConfig) Validate() error {
	switch s.Parameter {
	case "agents", "capacity", "maxspeed":
	case "":
		return fmt.Errorf("parameter is required (agents, capacity or maxspeed)")
	default:
		return fmt.Errorf("unknown parameter %q (valid: agents, capacity, maxspeed)", s.Parameter)
	}
	if len(s.Values) == 0 {
		return fmt.Errorf("at least one value is required")
	}
	if s.Trials <= 0 {
		return fmt.Errorf("trials must be positive, got %d", s.Trials)
	}
	if len(s.Seeds) == 0 {
		return fmt.Errorf("at least one seed is required")
	}
	if s.Rows < 2 || s.Cols < 2 {
		return fmt.Errorf("base grid requires at least 2 rows and 2 cols, got %dx%d", s.Rows, s.Cols)
	}
	if s.BlockSize <= 0 {
		return fmt.Errorf("block_size must be positive, got %g", s.BlockSize)
	}
	if r := s.WorkFacilityRatio; r != nil && (*r < 0 || *r > 1) {
		return fmt.Errorf("work_facility_ratio must be in [0, 1], got %g", *r)
	}
	return nil
}

// ValidateDirectories checks if required directories exist.
func (c *Config) ValidateDirectories() error {
	if _, err := os.Stat(c.ScenariosDir); os.IsNotExist(err) {
		return fmt.Errorf("scenarios directory does not exist: %s\nHint: Run 'gridsim init' or use --scenarios-dir to specify a different path", c.ScenariosDir)
	}
	return nil
}
