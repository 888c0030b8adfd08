package matsim

// config.go - Master config assembly. The generated config wires the
// three input files together, seeds the engine, and carries the scoring
// and replanning setup the study scenarios share.

import "strconv"

// ConfigSpec holds the per-variant values of a generated master config.
type ConfigSpec struct {
	NetworkFile    string
	FacilitiesFile string
	PlansFile      string
	OutputDir      string
	RandomSeed     int64
	LastIteration  int
}

// DefaultLastIteration is used when ConfigSpec.LastIteration is zero.
const DefaultLastIteration = 10

// BuildConfig assembles the master config for one scenario variant.
func BuildConfig(spec ConfigSpec) *Config {
	lastIteration := spec.LastIteration
	if lastIteration <= 0 {
		lastIteration = DefaultLastIteration
	}

	return &Config{Modules: []Module{
		{
			Name: "global",
			Params: []Param{
				{Name: "randomSeed", Value: strconv.FormatInt(spec.RandomSeed, 10)},
				{Name: "coordinateSystem", Value: "Atlantis"},
			},
		},
		{
			Name:   "network",
			Params: []Param{{Name: "inputNetworkFile", Value: spec.NetworkFile}},
		},
		{
			Name:   "facilities",
			Params: []Param{{Name: "inputFacilitiesFile", Value: spec.FacilitiesFile}},
		},
		{
			Name:   "plans",
			Params: []Param{{Name: "inputPlansFile", Value: spec.PlansFile}},
		},
		{
			Name: "controler",
			Params: []Param{
				{Name: "outputDirectory", Value: spec.OutputDir},
				{Name: "firstIteration", Value: "0"},
				{Name: "lastIteration", Value: strconv.Itoa(lastIteration)},
				{Name: "overwriteFiles", Value: "deleteDirectoryIfExists"},
			},
		},
		{
			Name: "qsim",
			Params: []Param{
				{Name: "startTime", Value: "00:00:00"},
				{Name: "endTime", Value: "30:00:00"},
			},
		},
		{
			Name: "planCalcScore",
			Sets: []ParamSet{{
				Type: "scoringParameters",
				Sets: []ParamSet{
					activityParams("home", "12:00:00", "", ""),
					activityParams("work", "09:00:00", "07:00:00", "18:00:00"),
					activityParams("shopping", "01:00:00", "08:00:00", "22:00:00"),
				},
			}},
		},
		{
			Name: "strategy",
			Params: []Param{
				{Name: "maxAgentPlanMemorySize", Value: "5"},
			},
			Sets: []ParamSet{
				strategySettings("BestScore", "0.9"),
				strategySettings("ReRoute", "0.1"),
			},
		},
	}}
}

func activityParams(activity, typicalDuration, opening, closing string) ParamSet {
	params := []Param{
		{Name: "activityType", Value: activity},
		{Name: "typicalDuration", Value: typicalDuration},
	}
	if opening != "" {
		params = append(params, Param{Name: "openingTime", Value: opening})
	}
	if closing != "" {
		params = append(params, Param{Name: "closingTime", Value: closing})
	}
	return ParamSet{Type: "activityParams", Params: params}
}

func strategySettings(name, weight string) ParamSet {
	return ParamSet{Type: "strategysettings", Params: []Param{
		{Name: "strategyName", Value: name},
		{Name: "weight", Value: weight},
	}}
}
