package suggestion

// DefaultMood keys the prompt set used when the caller's mood is unknown.
const DefaultMood = "default"

// Set groups the quick prompts offered to a user in a given mood.
type Set struct {
	Mood    string   `json:"mood" yaml:"mood"`
	Prompts []string `json:"prompts" yaml:"prompts"`
}

// Seed provides the built-in prompt sets shown next to the chat input.
func Seed() []Set {
	return []Set{
		{
			Mood:    "Sad",
			Prompts: []string{"Suggest a 2-minute mood lift", "Help me reframe a negative thought", "Give me 3 tiny steps for today"},
		},
		{
			Mood:    "Angry",
			Prompts: []string{"Quick calm-down (under 2 minutes)", "Help me de-escalate", "How can I respond constructively?"},
		},
		{
			Mood:    "Anxious",
			Prompts: []string{"A 2-minute grounding exercise", "Plan the next tiny step", "Reframe a worry"},
		},
		{
			Mood:    "Happy",
			Prompts: []string{"Build on this feeling", "Gratitude prompt", "Share it forward idea"},
		},
		{
			Mood:    "Excited",
			Prompts: []string{"Channel this energy", "Quick plan in 3 steps", "Avoid burnout tips"},
		},
		{
			Mood:    "Calm",
			Prompts: []string{"Maintain this calm", "Light reflection", "Gentle productivity tip"},
		},
		{
			Mood:    DefaultMood,
			Prompts: []string{"Suggest a 2-minute reset", "Give me 3 small actions", "Help me reframe my thoughts"},
		},
	}
}
