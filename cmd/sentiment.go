package main

import (
	"fmt"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sells-group/reviewsync/internal/csvio"
	"github.com/sells-group/reviewsync/internal/sentiment"
)

var sentimentCmd = &cobra.Command{
	Use:   "sentiment",
	Short: "Label every review in the merged dataset",
	Long: `Adds (or refreshes) the derived sentiment column on the base review file.
All other columns, including the user-editable need_answer flag, pass
through untouched.`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		reviews, err := csvio.ReadTable(cfg.Paths.ReviewsBase)
		if err != nil {
			return eris.Wrap(err, "sentiment: read reviews")
		}

		labeler := sentiment.NewRatingLabeler(cfg.Sentiment.PositiveMin, cfg.Sentiment.NegativeMax)
		labeled := sentiment.Apply(reviews, labeler)

		if err := csvio.WriteTable(cfg.Paths.ReviewsBase, reviews); err != nil {
			return err
		}

		zap.L().Info("sentiment applied", zap.Int("rows", labeled))
		fmt.Fprintf(cmd.OutOrStdout(), "labeled %d reviews\n", labeled)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(sentimentCmd)
}
