package commands

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
)

// defaultConfigYAML is the scaffolded configuration, pre-filled with
// the chessboard study so a new project runs out of the box.
const defaultConfigYAML = `# gridsim study configuration
scenarios_dir: scenarios
state_path: .gridsim/state.db

matsim:
  java: java
  jar: matsim-12.0.jar
  java_opts: []
  iterations: 10

scenarios:
  chessboard:
    kind: grid
    seed: 42
    rows: 10
    cols: 10
    block_sizes: [50]
    speed_limit_kmh: 50
    link_capacity: 300
    placements: [mixed]
    work_facility_ratio: 0.5
    agents: [1000]

  # city:
  #   kind: network
  #   seed: 42
  #   network_file: network.xml
  #   agents: [1000]
  #   mixes:
  #     homes:      { activities: [home], ratio: 0.4 }
  #     workplaces: { activities: [work], ratio: 0.3 }
  #     shops:      { activities: [shopping], ratio: 0.3 }

sweeps:
  agents:
    parameter: agents
    values: [500, 1000, 2500, 5000, 10000]
    trials: 5
    seeds: [101, 102, 103, 104, 105]
    seed: 42
    rows: 10
    cols: 10
    block_size: 50
    speed_limit_kmh: 50
    link_capacity: 300
    agents: 1000
    mixed: true
`

// NewInitCommand creates the init command.
func NewInitCommand() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "init [directory]",
		Short: "Initialize a new gridsim study",
		Long: `Initialize a new simulation study with a default configuration and
scenarios directory.

This creates:
  - gridsim.yaml configuration with an example grid scenario and sweep
  - scenarios/ directory for generated MATSim input files

The MATSim release jar is not downloaded; place it next to gridsim.yaml
or point matsim.jar at it.`,
		Example: `  # Initialize in current directory
  gridsim init

  # Initialize in a new directory
  gridsim init my-study

  # Force overwrite existing config
  gridsim init --force`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := "."
			if len(args) > 0 {
				dir = args[0]
			}
			return runInit(cmd, dir, force)
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "Overwrite existing configuration")

	return cmd
}

func runInit(cmd *cobra.Command, dir string, force bool) error {
	cmdCtx := NewCommandContext(cmd)
	r := cmdCtx.Renderer

	if dir != "." {
		if err := os.MkdirAll(dir, 0750); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}

	configPath := filepath.Join(dir, "gridsim.yaml")
	if _, err := os.Stat(configPath); err == nil && !force {
		return fmt.Errorf("gridsim.yaml already exists. Use --force to overwrite")
	}

	if err := os.WriteFile(configPath, []byte(defaultConfigYAML), 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", configPath, err)
	}
	r.StatusLine(configPath, "success", "")

	scenariosDir := filepath.Join(dir, "scenarios")
	if err := os.MkdirAll(scenariosDir, 0750); err != nil {
		return fmt.Errorf("failed to create scenarios directory: %w", err)
	}
	r.StatusLine(scenariosDir+string(os.PathSeparator), "success", "")

	r.Println("")
	r.Success("Study initialized!")
	r.Println("")
	r.Println("Next steps:")
	r.Println("  1. Drop the MATSim release jar next to gridsim.yaml")
	r.Println("  2. Run 'gridsim generate' to build scenario inputs")
	r.Println("  3. Run 'gridsim run' to execute the simulations")
	r.Println("  4. Run 'gridsim results' to collect score statistics")

	return nil
}
