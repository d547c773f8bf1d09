package mood

import "strings"

// Entry is one point in the mood history timeline.
type Entry struct {
	Timestamp int64   `json:"timestamp"` // ms since epoch
	Mood      string  `json:"mood"`
	Intensity float64 `json:"intensity"`
}

// JournalEntry is a free-text note with an optional mood attached.
type JournalEntry struct {
	ID            string   `json:"id"`
	Timestamp     int64    `json:"timestamp"` // ms since epoch
	Mood          *string  `json:"mood"`
	Intensity     *float64 `json:"intensity"`
	Note          string   `json:"note"`
	SuggestedMood string   `json:"suggestedMood,omitempty"`
}

// Labels lists the moods the client offers for self-reporting.
var Labels = []string{"Happy", "Sad", "Angry", "Excited", "Calm", "Anxious"}

// Canonical returns the matching entry of Labels when label names one of
// them in any case, and label unchanged otherwise.
func Canonical(label string) string {
	for _, known := range Labels {
		if strings.EqualFold(known, label) {
			return known
		}
	}
	return label
}

const (
	MinIntensity = 1
	MaxIntensity = 10
)
