package main

import (
	"os"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sells-group/reviewsync/internal/collector"
	"github.com/sells-group/reviewsync/internal/store"
)

var (
	collectMode  string
	collectOnly  []string
	collectMerge bool
)

var collectCmd = &cobra.Command{
	Use:   "collect",
	Short: "Run the platform collectors in parallel",
	Long: `Launches the configured external scrapers, each writing its own delta CSV
and summary snapshot. Collectors run in parallel with staggered starts; every
run is recorded in the run log.

Examples:
  # All configured collectors
  reviewsync collect

  # Only Yandex Maps, then merge the results
  reviewsync collect --only yamaps --merge`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx := cmd.Context()

		runLog, err := store.Open(ctx, cfg.Store)
		if err != nil {
			return eris.Wrap(err, "collect: open run log")
		}
		defer runLog.Close()
		if err := runLog.Migrate(ctx); err != nil {
			return eris.Wrap(err, "collect: migrate run log")
		}

		reg := collector.NewRegistry()
		workDir, _ := os.Getwd()
		// Scrapers resolve their per-organization thresholds from the base
		// review file; tell them where it lives.
		env := append(os.Environ(), "REVIEWSYNC_REVIEWS_BASE="+cfg.Paths.ReviewsBase)
		for _, cc := range cfg.Collectors {
			reg.Register(collector.NewExec(cc, workDir, env))
		}

		opts := collector.RunOpts{Names: collectOnly}
		if collectMode != "" {
			m, err := collector.ParseMode(collectMode)
			if err != nil {
				return err
			}
			opts.Mode = &m
		}

		engine := collector.NewEngine(reg, runLog, cfg.Engine)
		if err := engine.Run(ctx, opts); err != nil {
			return eris.Wrap(err, "collect: engine run")
		}

		if collectMerge {
			zap.L().Info("collection finished, running merge")
			if err := runMerge(cmd); err != nil {
				return err
			}
		}
		return nil
	},
}

func init() {
	collectCmd.Flags().StringVar(&collectMode, "mode", "", "restrict to collectors in this mode (full|incremental)")
	collectCmd.Flags().StringSliceVar(&collectOnly, "only", nil, "restrict to specific collector names")
	collectCmd.Flags().BoolVar(&collectMerge, "merge", false, "run the merge pipeline after all collectors finish")
	rootCmd.AddCommand(collectCmd)
}
