package collector

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"

	"github.com/sells-group/reviewsync/internal/config"
	"github.com/sells-group/reviewsync/internal/store"
)

// Engine runs collectors in parallel and records each run in the run log.
// Collectors write to distinct delta files, so parallel runs never contend
// on the data layer; merging happens afterwards as a separate step.
type Engine struct {
	reg     *Registry
	runLog  store.RunLog
	limiter *rate.Limiter
	timeout time.Duration
	maxPar  int
}

// RunOpts configures which collectors to run.
type RunOpts struct {
	Mode  *Mode    // restrict to a specific mode
	Names []string // restrict to specific collector names
}

// NewEngine creates a collector engine. The launch interval staggers process
// starts so three browsers don't spike the machine at once.
func NewEngine(reg *Registry, runLog store.RunLog, cfg config.EngineConfig) *Engine {
	interval := time.Duration(cfg.LaunchIntervalSec * float64(time.Second))
	if interval <= 0 {
		interval = time.Second
	}
	maxPar := cfg.MaxConcurrent
	if maxPar <= 0 {
		maxPar = 3
	}
	timeout := time.Duration(cfg.TimeoutMins) * time.Minute
	if timeout <= 0 {
		timeout = 60 * time.Minute
	}
	return &Engine{
		reg:     reg,
		runLog:  runLog,
		limiter: rate.NewLimiter(rate.Every(interval), 1),
		timeout: timeout,
		maxPar:  maxPar,
	}
}

// Run executes the selected collectors. Individual collector failures are
// recorded and counted but do not abort the siblings; the error returned is
// only for selection or group-level problems.
func (e *Engine) Run(ctx context.Context, opts RunOpts) error {
	log := zap.L().With(zap.String("component", "collector.engine"))

	collectors, err := e.reg.Select(opts.Mode, opts.Names)
	if err != nil {
		return err
	}
	if len(collectors) == 0 {
		log.Info("no collectors selected")
		return nil
	}
	log.Info("selected collectors", zap.Int("count", len(collectors)))

	var completed, failed atomic.Int64

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(e.maxPar)

	for _, c := range collectors {
		c := c
		g.Go(func() error {
			if err := e.limiter.Wait(gctx); err != nil {
				return eris.Wrap(err, "engine: wait for launch slot")
			}

			cLog := log.With(
				zap.String("collector", c.Name()),
				zap.String("platform", c.Platform()),
				zap.String("mode", c.Mode().String()),
			)
			cLog.Info("starting collection")

			runID, err := e.runLog.StartRun(gctx, c.Name())
			if err != nil {
				return eris.Wrapf(err, "engine: start run log for %s", c.Name())
			}

			start := time.Now()
			collectCtx, cancel := context.WithTimeout(gctx, e.timeout)
			result, err := c.Collect(collectCtx)
			cancel()
			elapsed := time.Since(start)

			if err != nil {
				cLog.Error("collection failed", zap.Error(err), zap.Duration("elapsed", elapsed))
				if logErr := e.runLog.FailRun(gctx, runID, err.Error()); logErr != nil {
					cLog.Error("failed to record run failure", zap.Error(logErr))
				}
				failed.Add(1)
				return nil // don't abort other collectors on individual failure
			}

			if err := e.runLog.CompleteRun(gctx, runID, result.RowsCollected); err != nil {
				cLog.Error("failed to record run completion", zap.Error(err))
			}

			cLog.Info("collection complete",
				zap.Int64("rows", result.RowsCollected),
				zap.String("delta", result.DeltaPath),
				zap.Duration("elapsed", elapsed),
			)
			completed.Add(1)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return err
	}

	log.Info("engine run complete",
		zap.Int64("completed", completed.Load()),
		zap.Int64("failed", failed.Load()),
	)
	if failed.Load() > 0 && completed.Load() == 0 {
		return eris.Errorf("engine: all %d collectors failed", failed.Load())
	}
	return nil
}
