package commands

import (
	"fmt"
	"os"
	"os/exec"

	"github.com/spf13/cobra"

	"github.com/gridsim-labs/gridsim/internal/cli/config"
	"github.com/gridsim-labs/gridsim/internal/cli/output"
	"github.com/gridsim-labs/gridsim/internal/runner"
)

// doctorCheck is one health check result.
type doctorCheck struct {
	Name   string `json:"name"`
	Status string `json:"status"` // "pass", "warn", "fail"
	Detail string `json:"detail,omitempty"`
}

// doctorOutput is the JSON output for the doctor command.
type doctorOutput struct {
	Checks  []doctorCheck `json:"checks"`
	Healthy bool          `json:"healthy"`
}

// NewDoctorCommand creates the doctor command.
func NewDoctorCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "doctor",
		Short: "Check the study environment",
		Long: `Verify everything a simulation run needs: the java executable, the
MATSim jar, the scenarios directory, the configuration file and the
state database. Exits non-zero when a required piece is missing.`,
		Example: `  # Check the environment
  gridsim doctor

  # Machine-readable report
  gridsim doctor -o json`,
		RunE: runDoctor,
	}
}

func runDoctor(cmd *cobra.Command, _ []string) error {
	cmdCtx := NewCommandContext(cmd)
	cfg := cmdCtx.Cfg
	r := cmdCtx.Renderer

	out := doctorOutput{Healthy: true}
	add := func(name, status, detail string) {
		out.Checks = append(out.Checks, doctorCheck{Name: name, Status: status, Detail: detail})
		if status == "fail" {
			out.Healthy = false
		}
	}

	// Java executable
	if path, err := exec.LookPath(cfg.Matsim.Java); err == nil {
		add("java executable", "pass", path)
	} else {
		add("java executable", "fail", fmt.Sprintf("%q not found in PATH", cfg.Matsim.Java))
	}

	// MATSim jar
	if fi, err := os.Stat(cfg.Matsim.Jar); err == nil && !fi.IsDir() {
		add("matsim jar", "pass", cfg.Matsim.Jar)
	} else {
		add("matsim jar", "fail", fmt.Sprintf("%s not found", cfg.Matsim.Jar))
	}

	// Config file
	if file := config.GetConfigFileUsed(); file != "" {
		add("config file", "pass", file)
	} else {
		add("config file", "warn", "no gridsim.yaml found, using defaults")
	}

	// Scenarios directory
	if configs, err := runner.DiscoverConfigs(cfg.ScenariosDir); err != nil {
		add("scenarios dir", "fail", err.Error())
	} else if len(configs) == 0 {
		add("scenarios dir", "warn", "no configs generated yet")
	} else {
		add("scenarios dir", "pass", fmt.Sprintf("%d configs", len(configs)))
	}

	// State database
	if store, err := openStore(cfg, cmdCtx.Logger); err != nil {
		add("state database", "fail", err.Error())
	} else {
		_ = store.Close()
		add("state database", "pass", cfg.StatePath)
	}

	if r.IsJSON() {
		if err := r.JSON(out); err != nil {
			return err
		}
	} else {
		renderDoctor(r, out)
	}

	if !out.Healthy {
		return fmt.Errorf("environment is not ready")
	}
	return nil
}

func renderDoctor(r *output.Renderer, out doctorOutput) {
	r.Banner("Environment check")
	for _, check := range out.Checks {
		status := "success"
		switch check.Status {
		case "warn":
			status = "warning"
		case "fail":
			status = "failed"
		}
		r.StatusLine(check.Name, status, check.Detail)
	}
	r.Println("")
	if out.Healthy {
		r.Success("Ready to run simulations")
	} else {
		r.Error("Environment is not ready")
	}
}
