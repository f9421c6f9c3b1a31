package store

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
	"github.com/rotisserie/eris"
	_ "modernc.org/sqlite"
)

// SQLiteRunLog implements RunLog using modernc.org/sqlite.
type SQLiteRunLog struct {
	db *sql.DB
}

// NewSQLite opens a SQLite database at the given path and configures WAL mode.
func NewSQLite(dsn string) (*SQLiteRunLog, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: open")
	}
	for _, pragma := range []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout=5000",
		"PRAGMA synchronous=NORMAL",
	} {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, eris.Wrapf(err, "sqlite: exec %s", pragma)
		}
	}
	return &SQLiteRunLog{db: db}, nil
}

const sqliteMigration = `
CREATE TABLE IF NOT EXISTS collector_runs (
	id           TEXT PRIMARY KEY,
	collector    TEXT NOT NULL,
	status       TEXT NOT NULL DEFAULT 'running',
	rows_written INTEGER NOT NULL DEFAULT 0,
	error        TEXT,
	started_at   DATETIME NOT NULL,
	completed_at DATETIME
);

CREATE INDEX IF NOT EXISTS idx_collector_runs_collector ON collector_runs(collector);
CREATE INDEX IF NOT EXISTS idx_collector_runs_started_at ON collector_runs(started_at);
`

func (s *SQLiteRunLog) Migrate(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, sqliteMigration)
	return eris.Wrap(err, "sqlite: migrate")
}

func (s *SQLiteRunLog) Close() error {
	return s.db.Close()
}

func (s *SQLiteRunLog) StartRun(ctx context.Context, collector string) (string, error) {
	id := uuid.New().String()
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO collector_runs (id, collector, status, started_at) VALUES (?, ?, ?, ?)`,
		id, collector, string(RunRunning), time.Now().UTC(),
	)
	if err != nil {
		return "", eris.Wrapf(err, "sqlite: start run for %s", collector)
	}
	return id, nil
}

func (s *SQLiteRunLog) CompleteRun(ctx context.Context, runID string, rows int64) error {
	res, err := s.db.ExecContext(ctx,
		`UPDATE collector_runs SET status = ?, rows_written = ?, completed_at = ? WHERE id = ?`,
		string(RunComplete), rows, time.Now().UTC(), runID,
	)
	if err != nil {
		return eris.Wrapf(err, "sqlite: complete run %s", runID)
	}
	return checkAffected(res, runID)
}

func (s *SQLiteRunLog) FailRun(ctx context.Context, runID string, errMsg string) error {
	res, err := s.db.ExecContext(ctx,
		`UPDATE collector_runs SET status = ?, error = ?, completed_at = ? WHERE id = ?`,
		string(RunFailed), errMsg, time.Now().UTC(), runID,
	)
	if err != nil {
		return eris.Wrapf(err, "sqlite: fail run %s", runID)
	}
	return checkAffected(res, runID)
}

func (s *SQLiteRunLog) LastSuccess(ctx context.Context, collector string) (*time.Time, error) {
	var t time.Time
	err := s.db.QueryRowContext(ctx,
		`SELECT started_at FROM collector_runs
		 WHERE collector = ? AND status = ?
		 ORDER BY started_at DESC LIMIT 1`,
		collector, string(RunComplete),
	).Scan(&t)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, eris.Wrapf(err, "sqlite: last success for %s", collector)
	}
	return &t, nil
}

func (s *SQLiteRunLog) RecentRuns(ctx context.Context, limit int) ([]Run, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, collector, status, rows_written, COALESCE(error, ''), started_at, completed_at
		 FROM collector_runs ORDER BY started_at DESC LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: recent runs")
	}
	defer rows.Close()

	var out []Run
	for rows.Next() {
		var r Run
		var status string
		var completed sql.NullTime
		if err := rows.Scan(&r.ID, &r.Collector, &status, &r.RowsWritten, &r.Error, &r.StartedAt, &completed); err != nil {
			return nil, eris.Wrap(err, "sqlite: scan run")
		}
		r.Status = RunStatus(status)
		if completed.Valid {
			t := completed.Time
			r.CompletedAt = &t
		}
		out = append(out, r)
	}
	return out, eris.Wrap(rows.Err(), "sqlite: iterate runs")
}

func checkAffected(res sql.Result, runID string) error {
	n, err := res.RowsAffected()
	if err != nil {
		return eris.Wrap(err, "sqlite: rows affected")
	}
	if n == 0 {
		return eris.Errorf("sqlite: run %s not found", runID)
	}
	return nil
}
