package merge

import (
	"time"

	"github.com/sells-group/reviewsync/internal/csvio"
	"github.com/sells-group/reviewsync/internal/normalize"
)

// dateColumns is the priority order of date column names across scraper
// revisions.
var dateColumns = []string{"date_iso", "dateISO", "date"}

// LatestKnownDate returns the most recent review date already known for a
// platform/organization pair. Incremental collectors use it as the cutoff:
// they stop scrolling once they reach a review at or before it.
//
// Platform matches exactly against the stored label; organization matches
// case-insensitively after normalization. Rows whose date cannot be parsed
// are skipped, not treated as errors. With no matching rows the far-past
// sentinel is returned so collection always has a usable lower bound.
func LatestKnownDate(base *csvio.Table, platform, organization string) time.Time {
	latest := normalize.Sentinel
	if base == nil {
		return latest
	}
	org := normalize.Fold(organization)

	for _, row := range base.Rows {
		if normalize.Text(row["platform"]) != platform {
			continue
		}
		if normalize.Fold(row["organization"]) != org {
			continue
		}
		var raw string
		for _, col := range dateColumns {
			if v := row[col]; v != "" {
				raw = v
				break
			}
		}
		d, ok := normalize.Date(raw)
		if !ok {
			continue
		}
		if d.After(latest) {
			latest = d
		}
	}
	return latest
}
