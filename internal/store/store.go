// Package store persists the collection run log: one row per collector run
// with its outcome and row count, so scheduling and the status command can
// see what happened without re-reading data files.
package store

import (
	"context"
	"time"

	"github.com/rotisserie/eris"

	"github.com/sells-group/reviewsync/internal/config"
)

// RunStatus is the lifecycle state of a collector run.
type RunStatus string

const (
	RunRunning  RunStatus = "running"
	RunComplete RunStatus = "complete"
	RunFailed   RunStatus = "failed"
)

// Run is one collector execution recorded in the run log.
type Run struct {
	ID          string     `json:"id"`
	Collector   string     `json:"collector"`
	Status      RunStatus  `json:"status"`
	RowsWritten int64      `json:"rows_written"`
	Error       string     `json:"error,omitempty"`
	StartedAt   time.Time  `json:"started_at"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`
}

// RunLog defines the persistence interface for collector runs.
type RunLog interface {
	// StartRun records the beginning of a run and returns its ID.
	StartRun(ctx context.Context, collector string) (string, error)
	// CompleteRun marks a run successful with the number of rows the
	// collector produced.
	CompleteRun(ctx context.Context, runID string, rows int64) error
	// FailRun marks a run failed with an error message.
	FailRun(ctx context.Context, runID string, errMsg string) error
	// LastSuccess returns the start time of the most recent successful run
	// for a collector, or nil if it never succeeded.
	LastSuccess(ctx context.Context, collector string) (*time.Time, error)
	// RecentRuns returns up to limit runs, most recent first.
	RecentRuns(ctx context.Context, limit int) ([]Run, error)

	Migrate(ctx context.Context) error
	Close() error
}

// Open creates a RunLog from configuration. SQLite is the default driver;
// Postgres is available for shared deployments.
func Open(ctx context.Context, cfg config.StoreConfig) (RunLog, error) {
	switch cfg.Driver {
	case "", "sqlite":
		return NewSQLite(cfg.DatabaseURL)
	case "postgres":
		return NewPostgres(ctx, cfg.DatabaseURL)
	default:
		return nil, eris.Errorf("store: unknown driver %q (valid: sqlite, postgres)", cfg.Driver)
	}
}
