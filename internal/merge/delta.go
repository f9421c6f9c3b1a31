// Package merge implements the incremental deduplication and merge pipeline:
// unioning per-platform delta batches, folding deltas into the historical
// base set, resolving incremental-collection thresholds, and reconciling
// summary counts.
package merge

import (
	"github.com/sells-group/reviewsync/internal/csvio"
	"github.com/sells-group/reviewsync/internal/model"
	"github.com/sells-group/reviewsync/internal/normalize"
)

// keyOfRow derives the review identity key from a CSV row.
func keyOfRow(r csvio.Row) model.ReviewKey {
	return model.KeyOf(r["platform"], r["organization"], r["author"], r["date_iso"], r["text"])
}

// normalizeBaseFields canonicalizes the base review columns of a row in
// place. Columns outside the base set are left as scraped.
func normalizeBaseFields(r csvio.Row) {
	for _, col := range model.ReviewColumns {
		if v, ok := r[col]; ok {
			r[col] = normalize.Text(v)
		}
	}
}

// Deltas unions several delta sources into one deduplicated batch.
//
// Sources are iterated in the given order. Each row's base fields are
// normalized, its identity key computed, and the row dropped if the key was
// already seen earlier in the same source or in any prior source: the first
// occurrence wins, later duplicates are dropped silently rather than
// reconciled field by field. The returned table's columns are the union of
// all source columns in first-seen order, with the base review columns
// always present. The second return value is the total raw row count across
// sources before dedup, reported for auditing.
//
// Merging the same sources twice, or re-merging an already-merged result,
// yields the same record set.
func Deltas(sources []*csvio.Table) (*csvio.Table, int) {
	out := csvio.NewTable(model.ReviewColumns...)
	seen := make(map[model.ReviewKey]struct{})
	totalInSources := 0

	for _, src := range sources {
		if src == nil {
			continue
		}
		totalInSources += src.Len()
		out.AddColumns(src.Columns)

		localSeen := make(map[model.ReviewKey]struct{})
		for _, row := range src.Rows {
			normalizeBaseFields(row)
			key := keyOfRow(row)
			if _, dup := localSeen[key]; dup {
				continue
			}
			localSeen[key] = struct{}{}
			if _, dup := seen[key]; dup {
				continue
			}
			seen[key] = struct{}{}
			out.Append(row)
		}
	}
	return out, totalInSources
}
