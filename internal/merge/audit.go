package merge

import (
	"strconv"
	"strings"

	"github.com/sells-group/reviewsync/internal/csvio"
	"github.com/sells-group/reviewsync/internal/model"
	"github.com/sells-group/reviewsync/internal/normalize"
)

// RatingStats is the recomputed rating aggregate for one organization/
// platform pair, derived from the merged review set rather than scraped off
// the page.
type RatingStats struct {
	Average float64
	Count   int
}

// AuditAverages recomputes the average rating per (platform, organization)
// from individual review rows. Rows with empty or unparseable ratings are
// excluded from the average. Used to sanity-check the scraped summary
// figures against the data actually collected.
func AuditAverages(reviews *csvio.Table) map[model.SummaryKey]RatingStats {
	type acc struct {
		sum float64
		n   int
	}
	sums := make(map[model.SummaryKey]*acc)
	if reviews == nil {
		return map[model.SummaryKey]RatingStats{}
	}
	for _, row := range reviews.Rows {
		raw := strings.ReplaceAll(strings.TrimSpace(row["rating"]), ",", ".")
		if raw == "" {
			continue
		}
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			continue
		}
		k := model.SummaryKey{
			Platform:     normalize.Fold(row["platform"]),
			Organization: normalize.Fold(row["organization"]),
		}
		a := sums[k]
		if a == nil {
			a = &acc{}
			sums[k] = a
		}
		a.sum += v
		a.n++
	}

	out := make(map[model.SummaryKey]RatingStats, len(sums))
	for k, a := range sums {
		out[k] = RatingStats{Average: a.sum / float64(a.n), Count: a.n}
	}
	return out
}
