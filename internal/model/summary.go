package model

import "github.com/sells-group/reviewsync/internal/normalize"

// SummaryColumns is the fixed column order of produced summary files.
var SummaryColumns = []string{"organization", "platform", "rating_avg", "ratings_count", "reviews_count"}

// Summary is one per-platform aggregate row for an organization.
type Summary struct {
	Organization string `json:"organization"`
	Platform     string `json:"platform"`
	RatingAvg    string `json:"rating_avg"`
	RatingsCount string `json:"ratings_count"`
	ReviewsCount string `json:"reviews_count"`
}

// SummaryKey identifies a summary row: at most one row per key exists in a
// merged summary table.
type SummaryKey struct {
	Platform     string
	Organization string
}

// Key returns the summary's identity key.
func (s Summary) Key() SummaryKey {
	return SummaryKey{
		Platform:     normalize.Fold(s.Platform),
		Organization: normalize.Fold(s.Organization),
	}
}

// Normalized returns a copy with every field passed through the record
// normalizer, so equivalent rows compare equal and numeric cells render
// compactly ("0", "4.5", never "0.0").
func (s Summary) Normalized() Summary {
	return Summary{
		Organization: normalize.Text(s.Organization),
		Platform:     normalize.Text(s.Platform),
		RatingAvg:    normalize.Rating(s.RatingAvg),
		RatingsCount: normalize.Int(s.RatingsCount),
		ReviewsCount: normalize.Int(s.ReviewsCount),
	}
}

// platformPriority fixes the display order of the known platforms.
// Unknown platforms sort after the known ones, alphabetically.
var platformPriority = map[string]int{
	PlatformYandexMaps: 0,
	PlatformGoogleMaps: 1,
	Platform2GIS:       2,
}

// PlatformPriority returns the sort rank of a platform for summary output.
func PlatformPriority(platform string) int {
	if p, ok := platformPriority[platform]; ok {
		return p
	}
	return 99
}
