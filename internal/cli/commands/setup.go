// Package commands implements the gridsim subcommands.
package commands

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/gridsim-labs/gridsim/internal/cli/config"
	"github.com/gridsim-labs/gridsim/internal/cli/output"
	"github.com/gridsim-labs/gridsim/internal/state"
)

// CommandContext holds common dependencies for CLI commands.
type CommandContext struct {
	Cfg      *config.Config
	Logger   *slog.Logger
	Renderer *output.Renderer
}

// NewCommandContext creates a CommandContext from the command's loaded
// configuration.
func NewCommandContext(cmd *cobra.Command) *CommandContext {
	cfg := getConfig()
	logger := config.GetLogger(cmd.Context())
	mode := output.Mode(cfg.OutputFormat)
	r := output.NewRenderer(cmd.OutOrStdout(), cmd.ErrOrStderr(), mode)

	return &CommandContext{
		Cfg:      cfg,
		Logger:   logger,
		Renderer: r,
	}
}

// getConfig returns the current configuration.
// It uses config.GetCurrentConfig() if available, otherwise falls back to
// environment variables.
func getConfig() *config.Config {
	if cfg := config.GetCurrentConfig(); cfg != nil {
		return cfg
	}

	// Fallback: read from environment with defaults
	scenariosDir := getEnvOrDefault("GRIDSIM_SCENARIOS_DIR", config.DefaultScenariosDir)
	statePath := getEnvOrDefault("GRIDSIM_STATE_PATH", config.DefaultStateFile)
	verbose := os.Getenv("GRIDSIM_VERBOSE") == "true"
	outputFormat := os.Getenv("GRIDSIM_OUTPUT")

	return &config.Config{
		ScenariosDir: scenariosDir,
		StatePath:    statePath,
		Verbose:      verbose,
		OutputFormat: outputFormat,
		Matsim: config.MatsimConfig{
			Java:       config.DefaultJava,
			Jar:        config.DefaultJar,
			Iterations: config.DefaultIterations,
		},
	}
}

func getEnvOrDefault(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}

// openStore opens (and migrates) the run-history store at the
// configured path, creating the parent directory if needed.
func openStore(cfg *config.Config, logger *slog.Logger) (state.Store, error) {
	stateDir := filepath.Dir(cfg.StatePath)
	if stateDir != "." && stateDir != "" {
		if err := os.MkdirAll(stateDir, 0750); err != nil {
			return nil, fmt.Errorf("failed to create state directory: %w", err)
		}
	}

	store := state.NewSQLiteStore(logger)
	if err := store.Open(cfg.StatePath); err != nil {
		return nil, err
	}
	if err := store.Migrate(); err != nil {
		_ = store.Close()
		return nil, err
	}
	return store, nil
}
