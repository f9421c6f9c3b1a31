package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKeyOf_FormattingNoise(t *testing.T) {
	a := KeyOf("Yandex Maps", "Acme", "Ivan", "2024-01-05", "Great service")
	b := KeyOf(" yandex  maps ", "ACME", "Ivan", "2024-01-05", "Great   service")
	assert.Equal(t, a, b)
}

func TestKeyOf_CasePreservedForAuthorAndText(t *testing.T) {
	a := KeyOf("2GIS", "Acme", "Ivan", "2024-01-05", "Great")
	b := KeyOf("2GIS", "Acme", "ivan", "2024-01-05", "Great")
	assert.NotEqual(t, a, b)

	c := KeyOf("2GIS", "Acme", "Ivan", "2024-01-05", "great")
	assert.NotEqual(t, a, c)
}

func TestKeyOf_MissingFields(t *testing.T) {
	// Total over any input: empty fields normalize to empty components.
	k := KeyOf("", "", "", "", "")
	assert.Equal(t, ReviewKey{}, k)
}

func TestKeyOf_Idempotent(t *testing.T) {
	r := Review{
		Rating:       "5",
		Author:       "  Anna  K. ",
		DateISO:      "2024-02-02",
		Text:         "nice\r\nplace",
		Platform:     "Google Maps",
		Organization: "Acme  Cafe",
	}
	k1 := r.Key()
	normalized := Review{
		Rating:       r.Rating,
		Author:       k1.Author,
		DateISO:      k1.DateISO,
		Text:         k1.Text,
		Platform:     k1.Platform,
		Organization: k1.Organization,
	}
	assert.Equal(t, k1, normalized.Key())
}

func TestSummaryKey(t *testing.T) {
	a := Summary{Organization: " Acme ", Platform: "2GIS"}
	b := Summary{Organization: "acme", Platform: "2gis"}
	assert.Equal(t, a.Key(), b.Key())
}

func TestSummaryNormalized(t *testing.T) {
	s := Summary{
		Organization: "  Acme  Cafe ",
		Platform:     "Yandex Maps",
		RatingAvg:    "4,50",
		RatingsCount: "1 024",
		ReviewsCount: "",
	}.Normalized()
	assert.Equal(t, "Acme Cafe", s.Organization)
	assert.Equal(t, "4.5", s.RatingAvg)
	assert.Equal(t, "1024", s.RatingsCount)
	assert.Equal(t, "0", s.ReviewsCount)
}

func TestPlatformPriority(t *testing.T) {
	assert.Equal(t, 0, PlatformPriority(PlatformYandexMaps))
	assert.Equal(t, 1, PlatformPriority(PlatformGoogleMaps))
	assert.Equal(t, 2, PlatformPriority(Platform2GIS))
	assert.Equal(t, 99, PlatformPriority("TripAdvisor"))
}
