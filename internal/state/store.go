// Package state tracks simulation run history in SQLite: which configs
// were executed, when, and how they ended.
package state

import "time"

// RunStatus is the lifecycle state of a simulation run.
type RunStatus string

// Run status constants.
const (
	RunStatusRunning   RunStatus = "running"
	RunStatusCompleted RunStatus = "completed"
	RunStatusFailed    RunStatus = "failed"
	RunStatusCancelled RunStatus = "cancelled"
)

// Run is one execution of the MATSim engine over a config file.
type Run struct {
	ID          string
	ConfigPath  string // absolute path of the executed config file
	Scenario    string // scenario label, e.g. "agents_500/config_trial_1.xml"
	Status      RunStatus
	StartedAt   time.Time
	CompletedAt *time.Time
	ExitCode    int
	DurationMS  int64
	Error       string
}

// Store defines the run-history operations.
type Store interface {
	Open(path string) error
	Close() error
	Migrate() error

	CreateRun(configPath, scenario string) (*Run, error)
	CompleteRun(id string, status RunStatus, exitCode int, errMsg string) error
	GetRun(id string) (*Run, error)
	ListRuns(limit int) ([]*Run, error)
	LatestRunForConfig(configPath string) (*Run, error)
}
