package runner

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/gridsim-labs/gridsim/internal/state"
)

// controlerClass is the MATSim entry point invoked for every scenario.
const controlerClass = "org.matsim.run.Controler"

// Result describes the outcome of a single simulation run.
type Result struct {
	ConfigPath string
	RunID      string
	ExitCode   int
	Duration   time.Duration
	Err        error
}

// Runner invokes the MATSim controler for scenario configs. The zero
// value is not usable; populate Java and Jar at minimum.
type Runner struct {
	// Java is the java executable, resolved via PATH when relative.
	Java string
	// Jar is the path to the MATSim release jar.
	Jar string
	// JavaOpts are extra JVM arguments inserted before -cp.
	JavaOpts []string
	// Store records run outcomes when non-nil.
	Store state.Store
	// Logger defaults to a discard logger when nil.
	Logger *slog.Logger
	// Stdout and Stderr receive the engine's output when non-nil.
	Stdout io.Writer
	Stderr io.Writer
}

func (r *Runner) logger() *slog.Logger {
	if r.Logger != nil {
		return r.Logger
	}
	return slog.New(slog.DiscardHandler)
}

// Command builds the exec.Cmd for a config without starting it. The
// working directory is the config's directory so that relative input
// and output paths inside the config resolve the way MATSim expects.
func (r *Runner) Command(ctx context.Context, configPath string) (*exec.Cmd, error) {
	abs, err := filepath.Abs(configPath)
	if err != nil {
		return nil, fmt.Errorf("resolve config path: %w", err)
	}
	jar, err := filepath.Abs(r.Jar)
	if err != nil {
		return nil, fmt.Errorf("resolve jar path: %w", err)
	}

	args := make([]string, 0, len(r.JavaOpts)+4)
	args = append(args, r.JavaOpts...)
	args = append(args, "-cp", jar, controlerClass, abs)

	cmd := exec.CommandContext(ctx, r.Java, args...)
	cmd.Dir = filepath.Dir(abs)
	cmd.Stdout = r.Stdout
	cmd.Stderr = r.Stderr
	return cmd, nil
}

// RunOne executes a single config and records the run in the store.
// The store always sees the absolute config path, whatever form the
// caller passed in, so later lookups by discovered path find it.
func (r *Runner) RunOne(ctx context.Context, configPath string) Result {
	log := r.logger().With("config", configPath)
	res := Result{ConfigPath: configPath, ExitCode: -1}

	abs, err := filepath.Abs(configPath)
	if err != nil {
		res.Err = fmt.Errorf("resolve config path: %w", err)
		return res
	}

	cmd, err := r.Command(ctx, configPath)
	if err != nil {
		res.Err = err
		return res
	}

	scenario := filepath.Base(filepath.Dir(abs))
	var runID string
	if r.Store != nil {
		run, err := r.Store.CreateRun(abs, scenario)
		if err != nil {
			res.Err = fmt.Errorf("record run: %w", err)
			return res
		}
		runID = run.ID
		res.RunID = runID
	}

	log.Info("starting simulation", "dir", cmd.Dir)
	start := time.Now()
	err = cmd.Run()
	res.Duration = time.Since(start)

	status := state.RunStatusCompleted
	var errMsg string
	switch {
	case ctx.Err() != nil:
		status = state.RunStatusCancelled
		errMsg = ctx.Err().Error()
		res.Err = ctx.Err()
	case err != nil:
		status = state.RunStatusFailed
		errMsg = err.Error()
		res.Err = fmt.Errorf("matsim: %w", err)
	default:
		res.ExitCode = 0
	}
	if exitErr, ok := err.(*exec.ExitError); ok {
		res.ExitCode = exitErr.ExitCode()
	}

	if r.Store != nil {
		if serr := r.Store.CompleteRun(runID, status, res.ExitCode, errMsg); serr != nil {
			log.Warn("failed to record run outcome", "error", serr)
		}
	}

	log.Info("simulation finished", "status", status, "duration", res.Duration)
	return res
}

// RunAll executes configs with at most jobs running concurrently. A
// failed simulation does not stop the others; every config gets its
// run, and the error joins all failures after the fact. Results come
// back in the order of configs.
func (r *Runner) RunAll(ctx context.Context, configs []string, jobs int) ([]Result, error) {
	if jobs < 1 {
		jobs = 1
	}

	results := make([]Result, len(configs))

	var g errgroup.Group
	g.SetLimit(jobs)
	for i, cfg := range configs {
		g.Go(func() error {
			results[i] = r.RunOne(ctx, cfg)
			return nil
		})
	}
	_ = g.Wait()

	var errs []error
	for _, res := range results {
		if res.Err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", res.ConfigPath, res.Err))
		}
	}
	return results, errors.Join(errs...)
}

// EnvironmentCheck verifies that the java executable and the MATSim jar
// are reachable.
func (r *Runner) EnvironmentCheck() error {
	if _, err := exec.LookPath(r.Java); err != nil {
		return fmt.Errorf("java executable: %w", err)
	}
	if _, err := os.Stat(r.Jar); err != nil {
		return fmt.Errorf("matsim jar: %w", err)
	}
	return nil
}
