package main

import (
	"fmt"
	"math"
	"strconv"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sells-group/reviewsync/internal/csvio"
	"github.com/sells-group/reviewsync/internal/merge"
	"github.com/sells-group/reviewsync/internal/model"
)

var summaryAudit bool

var summaryCmd = &cobra.Command{
	Use:   "summary",
	Short: "Aggregate the per-platform full summary files",
	Long: `Merges the per-platform summary files into one table. Rows colliding on
(organization, platform) resolve last-write-wins in source order. Output is
sorted by organization, then platform priority (Yandex Maps, Google Maps,
2GIS, others last).

With --audit, the average rating is recomputed from the merged review file
and drift against the scraped summary is logged.`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		log := zap.L().With(zap.String("component", "summary"))

		var sources []*csvio.Table
		for _, path := range cfg.Paths.SummaryInputs {
			t, err := csvio.ReadTable(path)
			if err != nil {
				return eris.Wrapf(err, "summary: read %s", path)
			}
			sources = append(sources, t)
		}

		rows := merge.AggregateSummaries(sources)
		if err := csvio.WriteTable(cfg.Paths.SummaryBase, merge.SummariesTable(rows)); err != nil {
			return err
		}

		log.Info("summary aggregated", zap.Int("rows", len(rows)))
		fmt.Fprintf(cmd.OutOrStdout(), "wrote %d summary rows to %s\n", len(rows), cfg.Paths.SummaryBase)

		if summaryAudit {
			return auditSummaries(cmd, rows)
		}
		return nil
	},
}

// auditSummaries compares scraped averages against ones recomputed from the
// review rows themselves and reports pairs drifting by more than 0.1 stars.
func auditSummaries(cmd *cobra.Command, rows []model.Summary) error {
	reviews, err := csvio.ReadTable(cfg.Paths.ReviewsBase)
	if err != nil {
		return eris.Wrap(err, "summary: read reviews for audit")
	}
	stats := merge.AuditAverages(reviews)

	log := zap.L().With(zap.String("component", "summary.audit"))
	drifted := 0
	for _, s := range rows {
		st, ok := stats[s.Key()]
		if !ok || st.Count == 0 {
			continue
		}
		scraped, err := strconv.ParseFloat(s.RatingAvg, 64)
		if err != nil || scraped == 0 {
			continue
		}
		if diff := math.Abs(scraped - st.Average); diff > 0.1 {
			drifted++
			log.Warn("average rating drift",
				zap.String("organization", s.Organization),
				zap.String("platform", s.Platform),
				zap.Float64("scraped", scraped),
				zap.Float64("computed", st.Average),
				zap.Int("reviews_with_rating", st.Count),
			)
		}
	}
	fmt.Fprintf(cmd.OutOrStdout(), "audit: %d of %d pairs drift by more than 0.1\n", drifted, len(rows))
	return nil
}

func init() {
	summaryCmd.Flags().BoolVar(&summaryAudit, "audit", false, "recompute averages from review rows and report drift")
	rootCmd.AddCommand(summaryCmd)
}
