package chat

// MoodSignal is the caller's self-reported mood, passed to the model as weak
// prior context. Either field may be absent.
type MoodSignal struct {
	Mood      *string  `json:"mood,omitempty"`
	Intensity *float64 `json:"intensity,omitempty"`
}

// Reply is the interpreted model output for a single request.
type Reply struct {
	Text      string   `json:"reply"`
	Mood      *string  `json:"inferredMood"`
	Intensity *float64 `json:"inferredIntensity"`
}

// HasMood reports whether the model emitted a usable mood label.
func (r Reply) HasMood() bool {
	return r.Mood != nil && *r.Mood != ""
}
