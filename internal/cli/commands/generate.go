package commands

import (
	"fmt"
	"path/filepath"
	"sort"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/gridsim-labs/gridsim/internal/cli/config"
	"github.com/gridsim-labs/gridsim/internal/scenario"
)

// GenerateOptions holds options for the generate command.
type GenerateOptions struct {
	Sweep string
}

// NewGenerateCommand creates the generate command.
func NewGenerateCommand() *cobra.Command {
	opts := &GenerateOptions{}

	cmd := &cobra.Command{
		Use:   "generate [scenario...]",
		Short: "Generate scenario input files",
		Long: `Generate MATSim input files (config, network, facilities, plans) for
the scenarios defined in gridsim.yaml.

By default all configured scenarios are generated. Name specific
scenarios to generate only those, or use --sweep to expand a parameter
sweep into its variant directories.`,
		Example: `  # Generate all configured scenarios
  gridsim generate

  # Generate a single scenario
  gridsim generate base

  # Expand a parameter sweep
  gridsim generate --sweep density`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGenerate(cmd, opts, args)
		},
	}

	cmd.Flags().StringVar(&opts.Sweep, "sweep", "", "Generate a named sweep instead of scenarios")

	return cmd
}

func runGenerate(cmd *cobra.Command, opts *GenerateOptions, args []string) error {
	cmdCtx := NewCommandContext(cmd)
	cfg := cmdCtx.Cfg
	r := cmdCtx.Renderer

	if opts.Sweep != "" {
		if len(args) > 0 {
			return fmt.Errorf("cannot combine --sweep with scenario names")
		}
		return generateSweep(cmdCtx, opts.Sweep)
	}

	names := args
	if len(names) == 0 {
		for name := range cfg.Scenarios {
			names = append(names, name)
		}
		sort.Strings(names)
	}
	if len(names) == 0 {
		r.Warning("No scenarios configured")
		return nil
	}

	for _, name := range names {
		sc, ok := cfg.Scenarios[name]
		if !ok {
			return fmt.Errorf("unknown scenario %q", name)
		}
		if err := generateScenario(cmdCtx, name, sc); err != nil {
			return fmt.Errorf("scenario %q: %w", name, err)
		}
	}

	return nil
}

// generateScenario writes every variant of one configured scenario into
// <scenarios-dir>/<name>/.
func generateScenario(cmdCtx *CommandContext, name string, sc config.ScenarioConfig) error {
	cfg := cmdCtx.Cfg
	r := cmdCtx.Renderer
	dir := filepath.Join(cfg.ScenariosDir, name)

	r.Banner("Generating scenario " + name)

	switch sc.Kind {
	case "grid":
		return generateGridScenario(cmdCtx, dir, sc)
	case "network":
		return generateNetworkScenario(cmdCtx, dir, sc)
	default:
		return fmt.Errorf("unknown kind %q", sc.Kind)
	}
}

func generateGridScenario(cmdCtx *CommandContext, dir string, sc config.ScenarioConfig) error {
	cfg := cmdCtx.Cfg
	r := cmdCtx.Renderer

	placements := sc.Placements
	if len(placements) == 0 {
		placements = []string{"mixed"}
	}
	workRatio := sc.WorkRatio()

	for _, placement := range placements {
		for _, block := range sc.BlockSizes {
			for _, agents := range sc.Agents {
				v := scenario.GridVariant{
					Seed: sc.Seed,
					Grid: scenario.GridSpec{
						Rows:         sc.Rows,
						Cols:         sc.Cols,
						BlockSize:    block,
						SpeedLimit:   scenario.KMHToMS(sc.SpeedLimitKMH),
						LinkCapacity: sc.LinkCapacity,
					},
					Agents:        agents,
					Mixed:         placement == "mixed",
					WorkRatio:     workRatio,
					Suffix:        gridSuffix(placement, block, agents),
					LastIteration: cfg.Matsim.Iterations,
				}
				if err := scenario.GenerateGrid(dir, v); err != nil {
					return err
				}
				r.StatusLine(filepath.Join(dir, "config"+v.Suffix+".xml"), "success", "")
			}
		}
	}
	return nil
}

// gridSuffix names a grid variant by its distinguishing parameters:
// "_mixed_50_500" is the mixed placement, 50 m blocks, 500 agents.
func gridSuffix(placement string, block float64, agents int) string {
	return "_" + placement +
		"_" + strconv.FormatFloat(block, 'f', -1, 64) +
		"_" + strconv.Itoa(agents)
}

func generateNetworkScenario(cmdCtx *CommandContext, dir string, sc config.ScenarioConfig) error {
	cfg := cmdCtx.Cfg
	r := cmdCtx.Renderer

	mixes, err := buildMixes(sc.Mixes)
	if err != nil {
		return err
	}

	for _, agents := range sc.Agents {
		v := scenario.NetworkVariant{
			Seed:          sc.Seed,
			NetworkFile:   sc.NetworkFile,
			Agents:        agents,
			Mixes:         mixes,
			Suffix:        "_agents_" + strconv.Itoa(agents),
			LastIteration: cfg.Matsim.Iterations,
		}
		if err := scenario.GenerateFromNetwork(dir, v); err != nil {
			return err
		}
		r.StatusLine(filepath.Join(dir, "config"+v.Suffix+".xml"), "success", "")
	}
	return nil
}

// buildMixes converts configured mixes into scenario mixes, sorted by
// name so generation is deterministic.
func buildMixes(configured map[string]config.MixConfig) ([]scenario.Mix, error) {
	names := make([]string, 0, len(configured))
	for name := range configured {
		names = append(names, name)
	}
	sort.Strings(names)

	mixes := make([]scenario.Mix, 0, len(names))
	for _, name := range names {
		mc := configured[name]
		types := make([]scenario.ActivityType, 0, len(mc.Activities))
		for _, a := range mc.Activities {
			t, err := scenario.ParseActivityType(a)
			if err != nil {
				return nil, fmt.Errorf("mix %q: %w", name, err)
			}
			types = append(types, t)
		}
		mixes = append(mixes, scenario.Mix{
			Activities: scenario.NewActivitySet(types...),
			Ratio:      mc.Ratio,
		})
	}
	if err := scenario.ValidateMixes(mixes); err != nil {
		return nil, err
	}
	return mixes, nil
}

func generateSweep(cmdCtx *CommandContext, name string) error {
	cfg := cmdCtx.Cfg
	r := cmdCtx.Renderer

	sw, ok := cfg.Sweeps[name]
	if !ok {
		return fmt.Errorf("unknown sweep %q", name)
	}

	param, err := scenario.ParseSweepParam(sw.Parameter)
	if err != nil {
		return err
	}

	workRatio := sw.WorkRatio()

	sweep := scenario.Sweep{
		Param:  param,
		Values: sw.Values,
		Trials: sw.Trials,
		Seeds:  sw.Seeds,
		Base: scenario.GridVariant{
			Seed: sw.Seed,
			Grid: scenario.GridSpec{
				Rows:         sw.Rows,
				Cols:         sw.Cols,
				BlockSize:    sw.BlockSize,
				SpeedLimit:   scenario.KMHToMS(sw.SpeedLimitKMH),
				LinkCapacity: sw.LinkCapacity,
			},
			Agents:        sw.Agents,
			Mixed:         sw.Mixed,
			WorkRatio:     workRatio,
			LastIteration: cfg.Matsim.Iterations,
		},
	}

	variants, err := sweep.Variants()
	if err != nil {
		return fmt.Errorf("sweep %q: %w", name, err)
	}

	r.Banner("Generating sweep " + name)
	for _, sv := range variants {
		dir := filepath.Join(cfg.ScenariosDir, name, sv.Dir)
		if err := scenario.GenerateGrid(dir, sv.Variant); err != nil {
			return fmt.Errorf("sweep %q variant %s%s: %w", name, sv.Dir, sv.Variant.Suffix, err)
		}
		r.StatusLine(filepath.Join(dir, "config"+sv.Variant.Suffix+".xml"), "success", "")
	}

	r.Println("")
	r.Success(fmt.Sprintf("Generated %d variants", len(variants)))
	return nil
}
