package store

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rotisserie/eris"
)

// Pool is the subset of pgxpool.Pool the run log uses. pgxmock satisfies it
// in tests.
type Pool interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// PostgresRunLog implements RunLog using pgxpool.
type PostgresRunLog struct {
	pool    Pool
	closeFn func()
}

// NewPostgres creates a PostgresRunLog with a connection pool.
func NewPostgres(ctx context.Context, connString string) (*PostgresRunLog, error) {
	cfg, err := pgxpool.ParseConfig(connString)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: parse config")
	}
	cfg.MaxConns = 4
	cfg.MaxConnLifetime = 30 * time.Minute

	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: connect")
	}
	return &PostgresRunLog{pool: pool, closeFn: pool.Close}, nil
}

// NewPostgresWithPool wraps an existing pool; used by tests.
func NewPostgresWithPool(pool Pool) *PostgresRunLog {
	return &PostgresRunLog{pool: pool}
}

const postgresMigration = `
CREATE TABLE IF NOT EXISTS collector_runs (
	id           TEXT PRIMARY KEY,
	collector    TEXT NOT NULL,
	status       TEXT NOT NULL DEFAULT 'running',
	rows_written BIGINT NOT NULL DEFAULT 0,
	error        TEXT,
	started_at   TIMESTAMPTZ NOT NULL,
	completed_at TIMESTAMPTZ
);

CREATE INDEX IF NOT EXISTS idx_collector_runs_collector ON collector_runs(collector);
CREATE INDEX IF NOT EXISTS idx_collector_runs_started_at ON collector_runs(started_at);
`

func (s *PostgresRunLog) Migrate(ctx context.Context) error {
	_, err := s.pool.Exec(ctx, postgresMigration)
	return eris.Wrap(err, "postgres: migrate")
}

func (s *PostgresRunLog) Close() error {
	if s.closeFn != nil {
		s.closeFn()
	}
	return nil
}

func (s *PostgresRunLog) StartRun(ctx context.Context, collector string) (string, error) {
	id := uuid.New().String()
	_, err := s.pool.Exec(ctx,
		`INSERT INTO collector_runs (id, collector, status, started_at) VALUES ($1, $2, $3, $4)`,
		id, collector, string(RunRunning), time.Now().UTC(),
	)
	if err != nil {
		return "", eris.Wrapf(err, "postgres: start run for %s", collector)
	}
	return id, nil
}

func (s *PostgresRunLog) CompleteRun(ctx context.Context, runID string, rows int64) error {
	tag, err := s.pool.Exec(ctx,
		`UPDATE collector_runs SET status = $1, rows_written = $2, completed_at = $3 WHERE id = $4`,
		string(RunComplete), rows, time.Now().UTC(), runID,
	)
	if err != nil {
		return eris.Wrapf(err, "postgres: complete run %s", runID)
	}
	if tag.RowsAffected() == 0 {
		return eris.Errorf("postgres: run %s not found", runID)
	}
	return nil
}

func (s *PostgresRunLog) FailRun(ctx context.Context, runID string, errMsg string) error {
	tag, err := s.pool.Exec(ctx,
		`UPDATE collector_runs SET status = $1, error = $2, completed_at = $3 WHERE id = $4`,
		string(RunFailed), errMsg, time.Now().UTC(), runID,
	)
	if err != nil {
		return eris.Wrapf(err, "postgres: fail run %s", runID)
	}
	if tag.RowsAffected() == 0 {
		return eris.Errorf("postgres: run %s not found", runID)
	}
	return nil
}

func (s *PostgresRunLog) LastSuccess(ctx context.Context, collector string) (*time.Time, error) {
	var t time.Time
	err := s.pool.QueryRow(ctx,
		`SELECT started_at FROM collector_runs
		 WHERE collector = $1 AND status = 'complete'
		 ORDER BY started_at DESC LIMIT 1`,
		collector,
	).Scan(&t)
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, eris.Wrapf(err, "postgres: last success for %s", collector)
	}
	return &t, nil
}

func (s *PostgresRunLog) RecentRuns(ctx context.Context, limit int) ([]Run, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := s.pool.Query(ctx,
		`SELECT id, collector, status, rows_written, COALESCE(error, ''), started_at, completed_at
		 FROM collector_runs ORDER BY started_at DESC LIMIT $1`,
		limit,
	)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: recent runs")
	}
	defer rows.Close()

	var out []Run
	for rows.Next() {
		var r Run
		var status string
		var completed *time.Time
		if err := rows.Scan(&r.ID, &r.Collector, &status, &r.RowsWritten, &r.Error, &r.StartedAt, &completed); err != nil {
			return nil, eris.Wrap(err, "postgres: scan run")
		}
		r.Status = RunStatus(status)
		r.CompletedAt = completed
		out = append(out, r)
	}
	return out, eris.Wrap(rows.Err(), "postgres: iterate runs")
}
