package merge

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/sells-group/reviewsync/internal/normalize"
)

func TestLatestKnownDate_MaxOfMatching(t *testing.T) {
	base := deltaTable(
		reviewRow("Yandex Maps", "acme", "A", "2024-01-05", "x"),
		reviewRow("Yandex Maps", "acme", "B", "2024-03-10", "y"),
		reviewRow("Yandex Maps", "acme", "C", "2024-02-01", "z"),
	)

	got := LatestKnownDate(base, "Yandex Maps", "acme")
	assert.Equal(t, time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC), got)
}

func TestLatestKnownDate_PlatformExactMatch(t *testing.T) {
	base := deltaTable(
		reviewRow("Google Maps", "acme", "A", "2024-05-01", "x"),
	)

	// Platform label matches exactly, not case-folded.
	got := LatestKnownDate(base, "google maps", "acme")
	assert.Equal(t, normalize.Sentinel, got)
}

func TestLatestKnownDate_OrganizationFolded(t *testing.T) {
	base := deltaTable(
		reviewRow("2GIS", "Acme Cafe", "A", "2024-04-01", "x"),
	)

	got := LatestKnownDate(base, "2GIS", "ACME  CAFE")
	assert.Equal(t, time.Date(2024, 4, 1, 0, 0, 0, 0, time.UTC), got)
}

func TestLatestKnownDate_SkipsUnparseableDates(t *testing.T) {
	base := deltaTable(
		reviewRow("2GIS", "acme", "A", "yesterday", "x"),
		reviewRow("2GIS", "acme", "B", "2024-01-15", "y"),
		reviewRow("2GIS", "acme", "C", "", "z"),
	)

	got := LatestKnownDate(base, "2GIS", "acme")
	assert.Equal(t, time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC), got)
}

func TestLatestKnownDate_DottedFallbackFormat(t *testing.T) {
	base := deltaTable(
		reviewRow("2GIS", "acme", "A", "15.06.24", "x"),
	)

	got := LatestKnownDate(base, "2GIS", "acme")
	assert.Equal(t, time.Date(2024, 6, 15, 0, 0, 0, 0, time.UTC), got)
}

func TestLatestKnownDate_NoMatchesReturnsSentinel(t *testing.T) {
	base := deltaTable(
		reviewRow("2GIS", "other org", "A", "2024-01-01", "x"),
	)

	assert.Equal(t, normalize.Sentinel, LatestKnownDate(base, "2GIS", "acme"))
	assert.Equal(t, normalize.Sentinel, LatestKnownDate(nil, "2GIS", "acme"))
	assert.Equal(t, normalize.Sentinel, LatestKnownDate(deltaTable(), "2GIS", "acme"))
}

func TestLatestKnownDate_LegacyDateColumnNames(t *testing.T) {
	base := deltaTable()
	base.AddColumn("date")
	base.Append(map[string]string{
		"platform": "2GIS", "organization": "acme", "author": "A",
		"date": "2023-12-31", "text": "legacy row",
	})

	got := LatestKnownDate(base, "2GIS", "acme")
	assert.Equal(t, time.Date(2023, 12, 31, 0, 0, 0, 0, time.UTC), got)
}
