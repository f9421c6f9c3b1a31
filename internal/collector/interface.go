// Package collector orchestrates the external per-platform review scrapers.
// The browser-automation mechanics live in the scraper executables; this
// package only launches them, bounds their lifetime, and consumes their file
// output.
package collector

import (
	"context"

	"github.com/rotisserie/eris"
)

// Mode distinguishes full from incremental collection.
type Mode int

const (
	// Full re-collects every review the platform will show.
	Full Mode = iota + 1
	// Incremental collects only reviews newer than the known threshold date
	// per organization.
	Incremental
)

// String returns the human-readable mode name.
func (m Mode) String() string {
	switch m {
	case Full:
		return "full"
	case Incremental:
		return "incremental"
	default:
		return "unknown"
	}
}

// ParseMode converts a string into a Mode.
func ParseMode(s string) (Mode, error) {
	switch s {
	case "full":
		return Full, nil
	case "incremental":
		return Incremental, nil
	default:
		return 0, eris.Errorf("unknown mode: %q (valid: full, incremental)", s)
	}
}

// Result holds the outcome of one collector run.
type Result struct {
	// RowsCollected is the number of review rows in the produced delta file.
	RowsCollected int64
	// DeltaPath is the review batch the collector wrote.
	DeltaPath string
	// SummaryPath is the observed summary snapshot the collector wrote.
	SummaryPath string
}

// Collector defines the interface each platform source must implement.
type Collector interface {
	// Name returns the unique identifier (e.g., "yamaps", "gmaps", "2gis").
	Name() string

	// Platform returns the platform label written into collected records
	// (e.g., "Yandex Maps").
	Platform() string

	// Mode returns whether the collector runs full or incremental.
	Mode() Mode

	// Collect runs the collection and reports where the output landed.
	Collect(ctx context.Context) (*Result, error)
}
