package merge

import (
	"strconv"

	"github.com/sells-group/reviewsync/internal/csvio"
	"github.com/sells-group/reviewsync/internal/model"
	"github.com/sells-group/reviewsync/internal/normalize"
)

// ReconcileSummary computes the post-incremental summary row for an
// organization/platform pair.
//
// The reviews count is the prior known total plus the genuinely-added delta
// count, never the total the live page shows: an incremental collector stops
// scrolling at the threshold date and cannot observe the true total, so only
// the delta is trustworthy. Rating average and ratings count are point-in-
// time aggregates read straight off the page and pass through normalized.
func ReconcileSummary(organization, platform string, priorReviews, added int, observedAvg, observedRatings string) model.Summary {
	if priorReviews < 0 {
		priorReviews = 0
	}
	if added < 0 {
		added = 0
	}
	s := model.Summary{
		Organization: organization,
		Platform:     platform,
		RatingAvg:    observedAvg,
		RatingsCount: observedRatings,
		ReviewsCount: strconv.Itoa(priorReviews + added),
	}
	return s.Normalized()
}

// ReconcileSummaries applies ReconcileSummary across a whole run: prior is
// the existing merged summary table, observed the freshly-collected summary
// tables (one per platform), and added the per-key counts actually appended
// by the base merge. Observed rows colliding on key resolve last-write-wins
// like the full aggregator. Prior rows with no fresh observation carry over
// unchanged (their count can't have grown without an observation). The
// result is sorted with the aggregator's ordering.
func ReconcileSummaries(prior *csvio.Table, observed []*csvio.Table, added map[model.SummaryKey]int) []model.Summary {
	priorByKey := make(map[model.SummaryKey]model.Summary)
	if prior != nil {
		for _, row := range prior.Rows {
			s := model.Summary{
				Organization: row["organization"],
				Platform:     row["platform"],
				RatingAvg:    row["rating_avg"],
				RatingsCount: row["ratings_count"],
				ReviewsCount: row["reviews_count"],
			}.Normalized()
			priorByKey[s.Key()] = s
		}
	}

	result := make(map[model.SummaryKey]model.Summary, len(priorByKey))
	for k, s := range priorByKey {
		result[k] = s
	}
	for _, obs := range AggregateSummaries(observed) {
		k := obs.Key()
		priorCount := 0
		if p, ok := priorByKey[k]; ok {
			priorCount = normalize.IntValue(p.ReviewsCount)
		}
		result[k] = ReconcileSummary(obs.Organization, obs.Platform,
			priorCount, added[k], obs.RatingAvg, obs.RatingsCount)
	}

	out := make([]model.Summary, 0, len(result))
	for _, s := range result {
		out = append(out, s)
	}
	sortSummaries(out)
	return out
}
