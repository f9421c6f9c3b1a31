package merge

import (
	"sort"

	"github.com/sells-group/reviewsync/internal/csvio"
	"github.com/sells-group/reviewsync/internal/model"
	"github.com/sells-group/reviewsync/internal/normalize"
)

// AggregateSummaries merges per-platform full summary tables into one.
//
// Rows colliding on (platform, organization) resolve last-write-wins: the
// later source in iteration order overwrites the earlier one. Note this is
// the opposite of the delta merger's first-wins rule; the two policies are
// deliberate per component and must not be unified. Output is sorted by
// organization (case-folded), then platform priority (Yandex Maps, Google
// Maps, 2GIS, others last), then platform name.
func AggregateSummaries(sources []*csvio.Table) []model.Summary {
	dedup := make(map[model.SummaryKey]model.Summary)
	for _, src := range sources {
		if src == nil {
			continue
		}
		for _, row := range src.Rows {
			s := model.Summary{
				Organization: row["organization"],
				Platform:     row["platform"],
				RatingAvg:    row["rating_avg"],
				RatingsCount: row["ratings_count"],
				ReviewsCount: row["reviews_count"],
			}.Normalized()
			dedup[s.Key()] = s
		}
	}

	out := make([]model.Summary, 0, len(dedup))
	for _, s := range dedup {
		out = append(out, s)
	}
	sortSummaries(out)
	return out
}

// sortSummaries orders rows by (organization folded, platform priority,
// platform folded).
func sortSummaries(out []model.Summary) {
	sort.Slice(out, func(i, j int) bool {
		oi, oj := normalize.Fold(out[i].Organization), normalize.Fold(out[j].Organization)
		if oi != oj {
			return oi < oj
		}
		pi, pj := model.PlatformPriority(out[i].Platform), model.PlatformPriority(out[j].Platform)
		if pi != pj {
			return pi < pj
		}
		return normalize.Fold(out[i].Platform) < normalize.Fold(out[j].Platform)
	})
}

// SummariesTable renders summary rows as a writable table in the fixed
// summary column order.
func SummariesTable(rows []model.Summary) *csvio.Table {
	t := csvio.NewTable(model.SummaryColumns...)
	for _, s := range rows {
		t.Append(csvio.Row{
			"organization":  s.Organization,
			"platform":      s.Platform,
			"rating_avg":    s.RatingAvg,
			"ratings_count": s.RatingsCount,
			"reviews_count": s.ReviewsCount,
		})
	}
	return t
}
