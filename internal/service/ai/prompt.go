package ai

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/cloudwego/eino/schema"

	"github.com/flaminghawk1207/mindmirror/backend/internal/model/chat"
)

// InstructionVersion changes whenever coachingInstruction is edited so that
// logged prompts can be traced back to the wording that produced them.
const InstructionVersion = "coach-v2"

const notAvailable = "N/A"

// coachingInstruction is prepended to every conversation. The two %s verbs
// receive the prior mood and intensity.
const coachingInstruction = `You are MindMirror, a supportive mental wellbeing coach.

Prior self-reported context (weak evidence, may be outdated): mood=%s, intensity=%s.

Step 1. Infer the user's current mood as a single word label and its intensity on a 1-10 scale.
Base the inference on the LATEST user message first; use the prior context only when the latest message gives no signal.

Step 2. Write a coaching reply that:
- opens with one short empathy statement reflecting what the user said;
- asks exactly one open-ended question;
- offers up to three low-effort suggested actions, at least one of which takes under two minutes;
- stays under 120 words in total.
If the user mentions self-harm, suicide or harming others, skip the suggestions, say clearly that you are not a substitute for professional help, and encourage them to contact local emergency services or a crisis line right away.

Step 3. Output format (strict):
Line 1: a single-line JSON object with exactly the keys "mood" (string) and "intensity" (number), for example {"mood":"Anxious","intensity":6}.
Do not wrap it in code fences or add any text on that line.
From line 2 on: the coaching reply as plain text.`

// BuildInstruction renders the coaching instruction for the given prior mood.
func BuildInstruction(prior chat.MoodSignal) string {
	mood := notAvailable
	if prior.Mood != nil && strings.TrimSpace(*prior.Mood) != "" {
		mood = *prior.Mood
	}

	intensity := notAvailable
	if prior.Intensity != nil {
		intensity = strconv.FormatFloat(*prior.Intensity, 'f', -1, 64)
	}

	return fmt.Sprintf(coachingInstruction, mood, intensity)
}

// Assemble builds the ordered conversation submitted to the model. The
// instruction always comes first as a user turn. With a non-empty history
// the turns are forwarded as-is and message is not appended again: callers
// send the current message as the last history element.
func Assemble(message string, history []chat.Turn, prior chat.MoodSignal) []*schema.Message {
	contents := make([]*schema.Message, 0, len(history)+2)
	contents = append(contents, schema.UserMessage(BuildInstruction(prior)))

	if len(history) == 0 {
		return append(contents, schema.UserMessage(message))
	}

	for _, turn := range history {
		if turn.IsUser() {
			contents = append(contents, schema.UserMessage(turn.Text))
		} else {
			contents = append(contents, schema.AssistantMessage(turn.Text, nil))
		}
	}
	return contents
}

// endsWithMessage reports whether the last history turn carries message.
func endsWithMessage(history []chat.Turn, message string) bool {
	if len(history) == 0 {
		return true
	}
	last := history[len(history)-1]
	return last.IsUser() && last.Text == message
}
