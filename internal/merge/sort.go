package merge

import (
	"sort"
	"time"

	"github.com/sells-group/reviewsync/internal/csvio"
	"github.com/sells-group/reviewsync/internal/normalize"
)

// SortByDate orders review rows newest first. Rows with unparseable dates
// sort last, keeping their relative order. The sort is stable so repeated
// runs over the same data produce identical files.
func SortByDate(t *csvio.Table) {
	if t == nil {
		return
	}
	type dated struct {
		row  csvio.Row
		when time.Time
		ok   bool
	}
	rows := make([]dated, len(t.Rows))
	for i, row := range t.Rows {
		d, ok := normalize.Date(row["date_iso"])
		rows[i] = dated{row: row, when: d, ok: ok}
	}
	sort.SliceStable(rows, func(i, j int) bool {
		a, b := rows[i], rows[j]
		if a.ok != b.ok {
			return a.ok
		}
		if !a.ok {
			return false
		}
		return a.when.After(b.when)
	})
	for i, r := range rows {
		t.Rows[i] = r.row
	}
}
