// Package sentiment derives a per-review sentiment label. The classifier is
// a black box behind the Labeler interface: the pipeline only cares that one
// derived column gets added to the merged dataset.
package sentiment

import (
	"strconv"
	"strings"

	"github.com/sells-group/reviewsync/internal/csvio"
)

// Labels written into the sentiment column.
const (
	Positive = "positive"
	Negative = "negative"
	Neutral  = "neutral"
)

// Column is the derived column name. It is not part of review identity.
const Column = "sentiment"

// Labeler classifies a single review.
type Labeler interface {
	Label(text, rating string) string
}

// RatingLabeler labels by star rating, falling back to a small lexicon scan
// when the rating cell is empty or unparseable.
type RatingLabeler struct {
	// PositiveMin is the lowest rating labeled positive (default 4).
	PositiveMin float64
	// NegativeMax is the highest rating labeled negative (default 2).
	NegativeMax float64
}

// NewRatingLabeler creates a labeler with the given thresholds; zero values
// take the defaults.
func NewRatingLabeler(positiveMin, negativeMax float64) *RatingLabeler {
	if positiveMin == 0 {
		positiveMin = 4
	}
	if negativeMax == 0 {
		negativeMax = 2
	}
	return &RatingLabeler{PositiveMin: positiveMin, NegativeMax: negativeMax}
}

func (l *RatingLabeler) Label(text, rating string) string {
	raw := strings.ReplaceAll(strings.TrimSpace(rating), ",", ".")
	if v, err := strconv.ParseFloat(raw, 64); err == nil && v > 0 {
		switch {
		case v >= l.PositiveMin:
			return Positive
		case v <= l.NegativeMax:
			return Negative
		default:
			return Neutral
		}
	}
	return lexiconLabel(text)
}

// Minimal cue lists for rating-less reviews. The full linguistic model lives
// outside this repository; these only break ties when no rating exists.
var (
	positiveCues = []string{
		"спасибо", "отлично", "супер", "рекомендую", "великолеп", "прекрасн",
		"понравил", "вежлив", "быстро", "excellent", "great", "perfect", "thank",
	}
	negativeCues = []string{
		"ужас", "плохо", "отвратительн", "обман", "хамств", "грубо", "кошмар",
		"разочарован", "не рекомендую", "terrible", "awful", "worst", "scam",
	}
)

func lexiconLabel(text string) string {
	t := strings.ToLower(text)
	score := 0
	for _, cue := range positiveCues {
		if strings.Contains(t, cue) {
			score++
		}
	}
	for _, cue := range negativeCues {
		if strings.Contains(t, cue) {
			score--
		}
	}
	switch {
	case score > 0:
		return Positive
	case score < 0:
		return Negative
	default:
		return Neutral
	}
}

// Apply adds or overwrites the sentiment column on every row. Other columns,
// including the user-editable need_answer flag, pass through untouched.
// Returns the number of rows labeled.
func Apply(t *csvio.Table, labeler Labeler) int {
	if t == nil {
		return 0
	}
	t.AddColumn(Column)
	for _, row := range t.Rows {
		row[Column] = labeler.Label(row["text"], row["rating"])
	}
	return t.Len()
}
