package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sells-group/reviewsync/internal/config"
)

var cfg *config.Config

var rootCmd = &cobra.Command{
	Use:   "reviewsync",
	Short: "Multi-platform review collection and merge pipeline",
	Long:  "Launches the per-platform review scrapers, merges their delta batches into the historical review set without duplicates, reconciles summary counts, and labels sentiment.",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		c, err := config.Load()
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		cfg = c

		if err := config.InitLogger(cfg.Log); err != nil {
			return fmt.Errorf("init logger: %w", err)
		}

		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = zap.L().Sync()
	},
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
