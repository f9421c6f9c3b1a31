// Package normalize canonicalizes raw scraped field values so records that
// differ only in formatting noise compare equal. All functions are total:
// malformed input degrades to a zero value, never an error, so one bad cell
// cannot abort a merge.
package normalize

import (
	"strconv"
	"strings"
	"time"
)

// Sentinel is the far-past threshold date used when no prior reviews exist
// for a platform/organization pair. An incremental collector given this
// threshold effectively performs a full collection.
var Sentinel = time.Date(1900, time.January, 1, 0, 0, 0, 0, time.UTC)

// Text canonicalizes a free-text field: CR/LF become single spaces, runs of
// whitespace collapse to one space, leading and trailing whitespace is
// stripped.
func Text(s string) string {
	s = strings.ReplaceAll(s, "\r", " ")
	s = strings.ReplaceAll(s, "\n", " ")
	return strings.Join(strings.Fields(s), " ")
}

// Fold canonicalizes a field used as a case-insensitive key component
// (platform, organization).
func Fold(s string) string {
	return strings.ToLower(Text(s))
}

// stripSeparators removes thousands separators: ordinary space, no-break
// space and narrow no-break space.
func stripSeparators(s string) string {
	for _, sep := range []string{" ", " ", " "} {
		s = strings.ReplaceAll(s, sep, "")
	}
	return s
}

// Rating parses a rating-like value and renders it compactly: "0.0" → "0",
// "4.50" → "4.5", "4,5" → "4.5". Empty or unparseable input yields "0".
func Rating(s string) string {
	s = stripSeparators(strings.TrimSpace(s))
	s = strings.ReplaceAll(s, ",", ".")
	if s == "" {
		return "0"
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return "0"
	}
	if v == 0 {
		return "0"
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// Int parses a count-like value, stripping thousands separators, and renders
// it as a plain integer string. Empty or unparseable input yields "0".
func Int(s string) string {
	s = stripSeparators(strings.TrimSpace(s))
	if s == "" {
		return "0"
	}
	if v, err := strconv.ParseInt(s, 10, 64); err == nil {
		return strconv.FormatInt(v, 10)
	}
	// Legacy files sometimes carry trailing units ("4096 оценок"); take the
	// leading digit run.
	var digits strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			digits.WriteRune(r)
			continue
		}
		if digits.Len() > 0 {
			break
		}
	}
	if digits.Len() == 0 {
		return "0"
	}
	v, err := strconv.ParseInt(digits.String(), 10, 64)
	if err != nil {
		return "0"
	}
	return strconv.FormatInt(v, 10)
}

// IntValue parses a count-like value into an int, defaulting to 0.
func IntValue(s string) int {
	v, err := strconv.Atoi(Int(s))
	if err != nil {
		return 0
	}
	return v
}

// Date parses a calendar date permissively: ISO YYYY-MM-DD first (extra
// time suffixes are ignored), then DD.MM.YYYY with 2- or 4-digit years
// (2-digit years map to 2000+). Returns ok=false for anything else.
func Date(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if len(s) > 10 {
		s = s[:10]
	}
	if s == "" {
		return time.Time{}, false
	}
	if t, err := time.Parse("2006-01-02", s); err == nil {
		return t, true
	}
	parts := strings.Split(s, ".")
	if len(parts) != 3 {
		return time.Time{}, false
	}
	day, err1 := strconv.Atoi(parts[0])
	month, err2 := strconv.Atoi(parts[1])
	year, err3 := strconv.Atoi(parts[2])
	if err1 != nil || err2 != nil || err3 != nil {
		return time.Time{}, false
	}
	if year < 100 {
		year += 2000
	}
	if month < 1 || month > 12 || day < 1 || day > 31 {
		return time.Time{}, false
	}
	t := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
	// time.Date normalizes overflow (Feb 30 → Mar 2); reject those.
	if t.Day() != day || t.Month() != time.Month(month) {
		return time.Time{}, false
	}
	return t, true
}
