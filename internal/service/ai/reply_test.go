package ai

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/flaminghawk1207/mindmirror/backend/internal/model/chat"
)

func TestParseReply(t *testing.T) {
	tests := []struct {
		name          string
		raw           string
		wantText      string
		wantMood      *string
		wantIntensity *float64
	}{
		{
			name:     "empty",
			raw:      "",
			wantText: "",
		},
		{
			name:          "header and body",
			raw:           "{\"mood\":\"Sad\",\"intensity\":7}\nHello, tell me more.",
			wantText:      "Hello, tell me more.",
			wantMood:      strPtr("Sad"),
			wantIntensity: floatPtr(7),
		},
		{
			name:          "header and body are trimmed",
			raw:           "  {\"mood\":\"Calm\",\"intensity\":2.5}  \r\n\n  Take a breath.  \n",
			wantText:      "Take a breath.",
			wantMood:      strPtr("Calm"),
			wantIntensity: floatPtr(2.5),
		},
		{
			name:     "plain text keeps header line",
			raw:      "I understand.\nYou should rest.",
			wantText: "I understand.\nYou should rest.",
		},
		{
			name:     "fenced header is not json",
			raw:      "```json\n{\"mood\":\"Sad\",\"intensity\":7}\n```\nHello",
			wantText: "```json\n{\"mood\":\"Sad\",\"intensity\":7}\n```\nHello",
		},
		{
			name:     "empty header line",
			raw:      "\nHello",
			wantText: "\nHello",
		},
		{
			name:          "single line header only",
			raw:           "{\"mood\":\"Happy\",\"intensity\":9}",
			wantText:      "",
			wantMood:      strPtr("Happy"),
			wantIntensity: floatPtr(9),
		},
		{
			name:     "single line plain text",
			raw:      "Glad to hear it!",
			wantText: "Glad to hear it!",
		},
		{
			name:     "wrong field types are ignored",
			raw:      "{\"mood\":5,\"intensity\":\"high\"}\nBody",
			wantText: "Body",
		},
		{
			name:          "missing mood keeps intensity",
			raw:           "{\"intensity\":3}\nBody",
			wantText:      "Body",
			wantIntensity: floatPtr(3),
		},
		{
			name:     "non-object json header still strips it",
			raw:      "42\nBody",
			wantText: "Body",
		},
		{
			name:     "json array without newline",
			raw:      "[1,2]",
			wantText: "",
		},
		{
			name:          "out of range intensity passes through",
			raw:           "{\"mood\":\"Angry\",\"intensity\":42}\nBody",
			wantText:      "Body",
			wantMood:      strPtr("Angry"),
			wantIntensity: floatPtr(42),
		},
		{
			name:     "header with body empty",
			raw:      "{\"mood\":\"Sad\"}\n   ",
			wantText: "",
			wantMood: strPtr("Sad"),
		},
		{
			name:     "overflowing intensity keeps the header parsed",
			raw:      "{\"mood\":\"Sad\",\"intensity\":1e400}\nStay with me.",
			wantText: "Stay with me.",
			wantMood: strPtr("Sad"),
		},
		{
			name:          "underflowing intensity is zero",
			raw:           "{\"mood\":\"Calm\",\"intensity\":1e-400}\nRest.",
			wantText:      "Rest.",
			wantMood:      strPtr("Calm"),
			wantIntensity: floatPtr(0),
		},
		{
			name:          "exponent intensity",
			raw:           "{\"mood\":\"Calm\",\"intensity\":3e0}\nRest.",
			wantText:      "Rest.",
			wantMood:      strPtr("Calm"),
			wantIntensity: floatPtr(3),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ParseReply(tt.raw)

			assert.Equal(t, chat.Reply{Text: tt.wantText, Mood: tt.wantMood, Intensity: tt.wantIntensity}, got)
		})
	}
}

func TestParseReplyNeverPanics(t *testing.T) {
	inputs := []string{"\n", "\n\n", "{", "}\n{", "null", "null\nbody", "\"str\"\n", "{\"mood\":null}\nx"}
	for _, raw := range inputs {
		assert.NotPanics(t, func() { ParseReply(raw) }, raw)
	}
}
