package main

import (
	"fmt"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"

	"github.com/sells-group/reviewsync/internal/csvio"
	"github.com/sells-group/reviewsync/internal/merge"
)

var thresholdCmd = &cobra.Command{
	Use:   "threshold <platform> <organization>",
	Short: "Show the incremental-collection cutoff date for a pair",
	Long: `Prints the most recent review date already stored for the given platform and
organization. An incremental scraper stops scrolling once it reaches a review
at or before this date. With no prior reviews the far-past sentinel is
printed, which makes the next collection effectively a full one.`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		base, err := csvio.ReadTable(cfg.Paths.ReviewsBase)
		if err != nil {
			return eris.Wrap(err, "threshold: read base reviews")
		}
		cutoff := merge.LatestKnownDate(base, args[0], args[1])
		fmt.Fprintln(cmd.OutOrStdout(), cutoff.Format("2006-01-02"))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(thresholdCmd)
}
