package commands

import (
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/gridsim-labs/gridsim/internal/runner"
	"github.com/gridsim-labs/gridsim/internal/state"
)

// listEntry is the JSON output for one discovered config.
type listEntry struct {
	Config     string `json:"config"`
	LastStatus string `json:"last_status,omitempty"`
	LastRunAt  string `json:"last_run_at,omitempty"`
	DurationMS int64  `json:"duration_ms,omitempty"`
}

// NewListCommand creates the list command.
func NewListCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List generated scenario configs and their latest runs",
		Long: `List every config*.xml discovered under the scenarios directory
together with the most recent recorded run, if any.`,
		RunE: runList,
	}
}

func runList(cmd *cobra.Command, _ []string) error {
	cmdCtx := NewCommandContext(cmd)
	cfg := cmdCtx.Cfg
	r := cmdCtx.Renderer

	configs, err := runner.DiscoverConfigs(cfg.ScenariosDir)
	if err != nil {
		return err
	}
	if len(configs) == 0 {
		r.Warning("No configs found. Run 'gridsim generate' first.")
		return nil
	}

	// The state database may not exist yet; list still works without
	// run history.
	var store state.Store
	if _, err := os.Stat(cfg.StatePath); err == nil {
		store, err = openStore(cfg, cmdCtx.Logger)
		if err != nil {
			return err
		}
		defer func() { _ = store.Close() }()
	}

	entries := make([]listEntry, 0, len(configs))
	for _, c := range configs {
		e := listEntry{Config: relTo(cfg.ScenariosDir, c)}
		if store != nil {
			run, err := store.LatestRunForConfig(c)
			if err != nil {
				return err
			}
			if run != nil {
				e.LastStatus = string(run.Status)
				e.LastRunAt = run.StartedAt.Local().Format(time.RFC3339)
				e.DurationMS = run.DurationMS
			}
		}
		entries = append(entries, e)
	}

	if r.IsJSON() {
		return r.JSON(entries)
	}

	rows := make([][]string, 0, len(entries))
	for _, e := range entries {
		status := e.LastStatus
		if status == "" {
			status = "-"
		}
		runAt := e.LastRunAt
		if runAt == "" {
			runAt = "-"
		}
		duration := "-"
		if e.DurationMS > 0 {
			duration = (time.Duration(e.DurationMS) * time.Millisecond).Round(time.Second).String()
		}
		rows = append(rows, []string{e.Config, status, runAt, duration})
	}
	r.Table([]string{"Config", "Last status", "Last run", "Duration"}, rows)
	return nil
}
