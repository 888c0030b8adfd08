package commands

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/gridsim-labs/gridsim/internal/runner"
)

// RunOptions holds options for the run command.
type RunOptions struct {
	Jobs   int
	DryRun bool
	Filter string
	Watch  bool
}

// NewRunCommand creates the run command.
func NewRunCommand() *cobra.Command {
	opts := &RunOptions{}

	cmd := &cobra.Command{
		Use:   "run [dir]",
		Short: "Run MATSim over generated scenario configs",
		Long: `Discover config*.xml files under the scenarios directory (skipping
output directories) and run the MATSim engine for each one. Every
execution is recorded in the run history.

Use --jobs to run several simulations concurrently, --filter to select
a subset of configs, --dry-run to preview without running, and --watch
to keep running configs as they are generated.`,
		Example: `  # Run every generated config
  gridsim run

  # Run a single sweep directory, four at a time
  gridsim run scenarios/density --jobs 4

  # Preview what would run
  gridsim run --dry-run

  # Only the first trials
  gridsim run --filter '*/config_trial_1.xml'

  # Run configs as they are generated
  gridsim run --watch`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRun(cmd, opts, args)
		},
	}

	cmd.Flags().IntVarP(&opts.Jobs, "jobs", "j", 1, "Number of simulations to run concurrently")
	cmd.Flags().BoolVar(&opts.DryRun, "dry-run", false, "List configs without running them")
	cmd.Flags().StringVar(&opts.Filter, "filter", "", "Glob filter on config paths relative to the scenarios dir")
	cmd.Flags().BoolVar(&opts.Watch, "watch", false, "Watch the scenarios dir and run new configs")

	return cmd
}

func runRun(cmd *cobra.Command, opts *RunOptions, args []string) error {
	cmdCtx := NewCommandContext(cmd)
	cfg := cmdCtx.Cfg
	r := cmdCtx.Renderer

	root := cfg.ScenariosDir
	if len(args) > 0 {
		root = args[0]
	}

	configs, err := runner.DiscoverConfigs(root)
	if err != nil {
		return err
	}
	configs, err = runner.FilterConfigs(root, configs, opts.Filter)
	if err != nil {
		return err
	}

	if opts.DryRun {
		if len(configs) == 0 {
			r.Warning("No configs found")
			return nil
		}
		r.Printf("Would run %d configs:\n", len(configs))
		for _, c := range configs {
			r.StatusLine(relTo(root, c), "pending", "")
		}
		return nil
	}

	store, err := openStore(cfg, cmdCtx.Logger)
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	run := &runner.Runner{
		Java:     cfg.Matsim.Java,
		Jar:      cfg.Matsim.Jar,
		JavaOpts: cfg.Matsim.JavaOpts,
		Store:    store,
		Logger:   cmdCtx.Logger,
		Stdout:   cmd.OutOrStdout(),
		Stderr:   cmd.ErrOrStderr(),
	}
	if err := run.EnvironmentCheck(); err != nil {
		return err
	}

	ctx := cmd.Context()

	if opts.Watch {
		return runWatch(ctx, cmdCtx, run, root, configs)
	}

	if len(configs) == 0 {
		r.Warning("No configs found")
		return nil
	}

	startTime := time.Now()
	failed := 0
	var runErr error
	if opts.Jobs <= 1 {
		// Sequential: banner before each run, like watching the study
		// scripts churn through their variants.
		for i, c := range configs {
			if ctx.Err() != nil {
				runErr = ctx.Err()
				break
			}
			r.Banner(fmt.Sprintf("[%d/%d] %s", i+1, len(configs), relTo(root, c)))
			res := run.RunOne(ctx, c)
			if res.Err != nil {
				failed++
				if runErr == nil {
					runErr = res.Err
				}
				r.StatusLine(relTo(root, c), "failed", res.Err.Error())
				continue
			}
			r.StatusLine(relTo(root, c), "success", res.Duration.Round(time.Second).String())
		}
	} else {
		r.Banner(fmt.Sprintf("Running %d configs with %d jobs", len(configs), opts.Jobs))
		var results []runner.Result
		results, runErr = run.RunAll(ctx, configs, opts.Jobs)
		for _, res := range results {
			name := relTo(root, res.ConfigPath)
			if res.Err != nil {
				failed++
				r.StatusLine(name, "failed", res.Err.Error())
				continue
			}
			r.StatusLine(name, "success", res.Duration.Round(time.Second).String())
		}
	}

	r.Println("")
	if failed > 0 {
		r.Error(fmt.Sprintf("%d of %d runs failed", failed, len(configs)))
		return runErr
	}
	if runErr != nil {
		return runErr
	}
	r.Success(fmt.Sprintf("Completed %d runs in %s", len(configs),
		time.Since(startTime).Round(time.Second)))
	return nil
}

// runWatch runs the initial config set, then keeps running configs as
// the watcher reports them, until the context is cancelled.
func runWatch(ctx context.Context, cmdCtx *CommandContext, run *runner.Runner, root string, initial []string) error {
	r := cmdCtx.Renderer
	log := cmdCtx.Logger

	w, err := runner.NewWatcher(root)
	if err != nil {
		return fmt.Errorf("failed to watch %s: %w", root, err)
	}
	defer func() { _ = w.Close() }()

	go func() {
		if err := w.Run(ctx); err != nil && ctx.Err() == nil {
			log.Warn("watcher stopped", "error", err)
		}
	}()

	runOne := func(c string) {
		r.Banner("Running " + relTo(root, c))
		res := run.RunOne(ctx, c)
		name := relTo(root, res.ConfigPath)
		if res.Err != nil {
			r.StatusLine(name, "failed", res.Err.Error())
			return
		}
		r.StatusLine(name, "success", res.Duration.Round(time.Second).String())
	}

	for _, c := range initial {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		runOne(c)
	}

	r.Dim("Watching " + root + " for new configs...")
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case c := <-w.Configs():
			runOne(c)
		}
	}
}

func relTo(root, path string) string {
	rel, err := filepath.Rel(root, path)
	if err != nil {
		return path
	}
	return filepath.ToSlash(rel)
}
