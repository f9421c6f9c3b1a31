// Package model defines the review and summary record shapes shared by the
// collectors, the merge core, and the CLI.
package model

import "github.com/sells-group/reviewsync/internal/normalize"

// Platform names as they appear in collected CSV files.
const (
	PlatformYandexMaps = "Yandex Maps"
	PlatformGoogleMaps = "Google Maps"
	Platform2GIS       = "2GIS"
)

// ReviewColumns is the fixed column order of produced review files.
// Consumed files are read by header name and may carry extra columns.
var ReviewColumns = []string{"rating", "author", "date_iso", "text", "platform", "organization"}

// Review is a single customer review as stored in the review CSV.
// All fields are the raw string cells; numeric coercion happens in normalize.
type Review struct {
	Rating       string `json:"rating"`
	Author       string `json:"author"`
	DateISO      string `json:"date_iso"`
	Text         string `json:"text"`
	Platform     string `json:"platform"`
	Organization string `json:"organization"`

	// Sentiment is a derived label ("positive", "negative", "neutral").
	// It is not part of review identity.
	Sentiment string `json:"sentiment,omitempty"`
}

// ReviewKey is the identity of a review. Two records with equal keys are the
// same real-world review regardless of scraping-run formatting noise.
type ReviewKey struct {
	Platform     string
	Organization string
	Author       string
	DateISO      string
	Text         string
}

// KeyOf derives the identity key from raw field values. It is total: nil-ish
// (empty) inputs normalize to empty components, and it never fails. Platform
// and organization are case-folded; author, date and text keep their case.
func KeyOf(platform, organization, author, dateISO, text string) ReviewKey {
	return ReviewKey{
		Platform:     normalize.Fold(platform),
		Organization: normalize.Fold(organization),
		Author:       normalize.Text(author),
		DateISO:      normalize.Text(dateISO),
		Text:         normalize.Text(text),
	}
}

// Key returns the review's identity key.
func (r Review) Key() ReviewKey {
	return KeyOf(r.Platform, r.Organization, r.Author, r.DateISO, r.Text)
}
