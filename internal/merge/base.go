package merge

import (
	"github.com/sells-group/reviewsync/internal/csvio"
	"github.com/sells-group/reviewsync/internal/model"
)

// IntoBase folds a delta batch into the historical base set.
//
// The base column set is extended, never replaced, with any new columns from
// the delta, and the base review columns are guaranteed present. Incoming
// rows whose identity key already exists in the base are skipped; the delta
// is normally pre-deduplicated by Deltas, but this guard is independent, so
// feeding the same delta twice is a no-op the second time. The returned
// count is how many rows were genuinely appended — this, not the delta's
// size, is authoritative for "how many new reviews arrived".
func IntoBase(base, delta *csvio.Table) (*csvio.Table, int) {
	out, added, _ := IntoBaseByKey(base, delta)
	return out, added
}

// IntoBaseByKey is IntoBase with a per-(platform, organization) breakdown of
// the appended rows, which the summary reconciler needs to bump each pair's
// cumulative review count.
func IntoBaseByKey(base, delta *csvio.Table) (*csvio.Table, int, map[model.SummaryKey]int) {
	out := base.Clone()
	if delta != nil {
		out.AddColumns(delta.Columns)
	}
	out.AddColumns(model.ReviewColumns)

	existing := make(map[model.ReviewKey]struct{}, out.Len())
	for _, row := range out.Rows {
		existing[keyOfRow(row)] = struct{}{}
	}

	added := 0
	perKey := make(map[model.SummaryKey]int)
	if delta != nil {
		for _, row := range delta.Rows {
			key := keyOfRow(row)
			if _, dup := existing[key]; dup {
				continue
			}
			existing[key] = struct{}{}
			out.Append(row)
			added++
			perKey[model.SummaryKey{Platform: key.Platform, Organization: key.Organization}]++
		}
	}
	return out, added, perKey
}
