package collector

import (
	"bufio"
	"io"
	"os/exec"

	"context"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/sells-group/reviewsync/internal/config"
	"github.com/sells-group/reviewsync/internal/csvio"
)

// ExecCollector runs an external scraper executable. The scraper owns the
// browser automation and the stop-at-threshold decision; it reads the base
// review file itself to resolve thresholds and writes its delta and summary
// CSVs to the configured paths.
type ExecCollector struct {
	cfg     config.CollectorConfig
	mode    Mode
	workDir string
	env     []string
}

// NewExec creates an ExecCollector from configuration. An invalid mode
// string falls back to incremental, the common case.
func NewExec(cfg config.CollectorConfig, workDir string, env []string) *ExecCollector {
	mode, err := ParseMode(cfg.Mode)
	if err != nil {
		mode = Incremental
	}
	return &ExecCollector{cfg: cfg, mode: mode, workDir: workDir, env: env}
}

func (c *ExecCollector) Name() string     { return c.cfg.Name }
func (c *ExecCollector) Platform() string { return c.cfg.Platform }
func (c *ExecCollector) Mode() Mode       { return c.mode }

// Collect launches the scraper process, forwards its output to the log, and
// counts the rows it produced. The scraper's exit code decides success; a
// produced-but-empty delta file is a valid "nothing new" outcome.
func (c *ExecCollector) Collect(ctx context.Context) (*Result, error) {
	log := zap.L().With(
		zap.String("component", "collector.exec"),
		zap.String("collector", c.cfg.Name),
	)

	cmd := exec.CommandContext(ctx, c.cfg.Command, c.cfg.Args...)
	cmd.Dir = c.workDir
	if len(c.env) > 0 {
		cmd.Env = c.env
	}

	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return nil, eris.Wrapf(err, "collector: stdout pipe for %s", c.cfg.Name)
	}
	stderr, err := cmd.StderrPipe()
	if err != nil {
		return nil, eris.Wrapf(err, "collector: stderr pipe for %s", c.cfg.Name)
	}

	if err := cmd.Start(); err != nil {
		return nil, eris.Wrapf(err, "collector: start %s", c.cfg.Name)
	}

	go forwardOutput(stdout, log, "stdout")
	go forwardOutput(stderr, log, "stderr")

	if err := cmd.Wait(); err != nil {
		if ctx.Err() != nil {
			return nil, eris.Wrapf(ctx.Err(), "collector: %s cancelled", c.cfg.Name)
		}
		return nil, eris.Wrapf(err, "collector: %s exited", c.cfg.Name)
	}

	rows, err := countRows(c.cfg.DeltaFile)
	if err != nil {
		return nil, err
	}

	return &Result{
		RowsCollected: rows,
		DeltaPath:     c.cfg.DeltaFile,
		SummaryPath:   c.cfg.SummaryFile,
	}, nil
}

// forwardOutput relays a scraper output stream into the structured log.
func forwardOutput(r io.Reader, log *zap.Logger, stream string) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		log.Info("scraper output", zap.String("stream", stream), zap.String("line", scanner.Text()))
	}
}

// countRows counts data rows in a produced delta file. A missing file counts
// as zero: the scraper may legitimately have found nothing to write.
func countRows(path string) (int64, error) {
	if path == "" {
		return 0, nil
	}
	t, err := csvio.ReadTable(path)
	if err != nil {
		return 0, eris.Wrapf(err, "collector: count rows in %s", path)
	}
	return int64(t.Len()), nil
}
