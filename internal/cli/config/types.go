// Package config provides configuration management for the gridsim CLI.
//
// Configuration is loaded from gridsim.yaml with environment variable
// and flag overrides. Scenario and sweep definitions live in the config
// file so a study is fully described by one document.
package config

// MatsimConfig holds everything needed to invoke the external MATSim
// engine.
type MatsimConfig struct {
	Jar        string   `koanf:"jar"`
	Java       string   `koanf:"java"`
	JavaOpts   []string `koanf:"java_opts"`
	Iterations int      `koanf:"iterations"`
}

// MixConfig assigns a share of facilities to a set of activity types,
// e.g. activities [work] with ratio 0.4.
type MixConfig struct {
	Activities []string `koanf:"activities"`
	Ratio      float64  `koanf:"ratio"`
}

// ScenarioConfig describes one named scenario. Kind selects the
// generator: "grid" builds a chessboard network from scratch,
// "network" places facilities on an existing network file.
type ScenarioConfig struct {
	Kind string `koanf:"kind"`
	Seed int64  `koanf:"seed"`

	// Grid scenarios.
	Rows              int       `koanf:"rows"`
	Cols              int       `koanf:"cols"`
	BlockSizes        []float64 `koanf:"block_sizes"`
	SpeedLimitKMH float64  `koanf:"speed_limit_kmh"`
	LinkCapacity  float64  `koanf:"link_capacity"`
	Placements    []string `koanf:"placements"`
	// WorkFacilityRatio is a pointer so that an explicit 0 (no work
	// facilities) is distinguishable from the key being absent.
	WorkFacilityRatio *float64 `koanf:"work_facility_ratio"`

	// Network scenarios.
	NetworkFile string               `koanf:"network_file"`
	Mixes       map[string]MixConfig `koanf:"mixes"`

	Agents []int `koanf:"agents"`
}

// SweepConfig describes a parameter sweep over a base grid scenario.
type SweepConfig struct {
	Parameter string    `koanf:"parameter"`
	Values    []float64 `koanf:"values"`
	Trials    int       `koanf:"trials"`
	Seeds     []int64   `koanf:"seeds"`

	// Base grid scenario swept over.
	Seed              int64   `koanf:"seed"`
	Rows              int     `koanf:"rows"`
	Cols              int     `koanf:"cols"`
	BlockSize         float64 `koanf:"block_size"`
	SpeedLimitKMH     float64  `koanf:"speed_limit_kmh"`
	LinkCapacity      float64  `koanf:"link_capacity"`
	Agents            int      `koanf:"agents"`
	Mixed             bool     `koanf:"mixed"`
	WorkFacilityRatio *float64 `koanf:"work_facility_ratio"`
}

// WorkRatio resolves the work facility ratio, falling back to
// DefaultWorkFacilityRatio when the config leaves it unset.
func (s ScenarioConfig) WorkRatio() float64 {
	if s.WorkFacilityRatio != nil {
		return *s.WorkFacilityRatio
	}
	return DefaultWorkFacilityRatio
}

// WorkRatio resolves the work facility ratio, falling back to
// DefaultWorkFacilityRatio when the config leaves it unset.
func (s SweepConfig) WorkRatio() float64 {
	if s.WorkFacilityRatio != nil {
		return *s.WorkFacilityRatio
	}
	return DefaultWorkFacilityRatio
}

// Config holds all CLI configuration options.
type Config struct {
	ProjectRoot  string                    `koanf:"-"`
	ScenariosDir string                    `koanf:"scenarios_dir"`
	StatePath    string                    `koanf:"state_path"`
	Verbose      bool                      `koanf:"verbose"`
	OutputFormat string                    `koanf:"output"`
	Matsim       MatsimConfig              `koanf:"matsim"`
	Scenarios    map[string]ScenarioConfig `koanf:"scenarios"`
	Sweeps       map[string]SweepConfig    `koanf:"sweeps"`
}

// Default configuration values.
const (
	DefaultScenariosDir = "scenarios"
	DefaultStateFile    = ".gridsim/state.db"
	DefaultJava         = "java"
	DefaultJar          = "matsim-12.0.jar"
	DefaultIterations   = 10
	DefaultOutput       = "auto" // Auto-detect: TTY=text, non-TTY=markdown

	// DefaultWorkFacilityRatio splits inner-block facilities evenly
	// between work and shop when a scenario does not set a ratio.
	DefaultWorkFacilityRatio = 0.5
)
