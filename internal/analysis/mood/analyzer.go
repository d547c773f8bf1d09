package mood

import (
	"slices"
	"strings"
	"unicode"
)

// Label is one of the moods the client offers for self-reporting.
type Label string

const (
	Unknown Label = ""
	Happy   Label = "Happy"
	Sad     Label = "Sad"
	Angry   Label = "Angry"
	Excited Label = "Excited"
	Calm    Label = "Calm"
	Anxious Label = "Anxious"
)

// Decision is the best matching label and its raw keyword score.
type Decision struct {
	Mood  Label
	Score int
}

var keywordBuckets = map[Label][]string{
	Happy: {
		"happy", "glad", "grateful", "thankful", "joy", "good day", "smiled", "smiling", "proud",
		"content", "love", "loved", "great", "awesome", "wonderful", "pleased", "lucky",
	},
	Sad: {
		"sad", "feel down", "feeling down", "felt down", "lonely", "alone", "cry", "cried", "crying",
		"upset", "hurt", "miss", "missed", "missing", "heartbroken", "depressed", "empty", "hopeless",
		"grief", "lost", "disappointed",
	},
	Angry: {
		"angry", "mad", "furious", "annoyed", "irritated", "frustrated", "rage", "hate", "hated",
		"pissed", "fed up", "resent", "unfair", "yelled",
	},
	Excited: {
		"excited", "can't wait", "cant wait", "thrilled", "pumped", "hyped", "amazing", "wow",
		"finally", "buzzing", "stoked",
	},
	Calm: {
		"calm", "relaxed", "peaceful", "rested", "quiet", "serene", "at ease",
		"meditated", "breathe", "slow morning",
	},
	Anxious: {
		"anxious", "worried", "worry", "worrying", "nervous", "stressed", "stress", "stressful", "panic",
		"overwhelmed", "afraid", "scared", "tense", "restless", "deadline", "can't sleep", "cant sleep",
	},
}

// phrases holds every keyword split into words, built once from keywordBuckets.
var phrases = buildPhrases()

func buildPhrases() map[Label][][]string {
	out := make(map[Label][][]string, len(keywordBuckets))
	for label, keywords := range keywordBuckets {
		for _, keyword := range keywords {
			out[label] = append(out[label], tokenize(keyword))
		}
	}
	return out
}

// tokenize lowercases text and splits it into words. Apostrophes stay inside
// words so "can't" is one token.
func tokenize(text string) []string {
	text = strings.ReplaceAll(strings.ToLower(text), "’", "'")
	return strings.FieldsFunc(text, func(r rune) bool {
		return r != '\'' && !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
}

// containsPhrase reports whether phrase occurs as consecutive whole words.
func containsPhrase(words, phrase []string) bool {
	if len(phrase) == 0 {
		return false
	}
	for i := 0; i+len(phrase) <= len(words); i++ {
		if slices.Equal(words[i:i+len(phrase)], phrase) {
			return true
		}
	}
	return false
}

// order breaks ties deterministically.
var order = []Label{Anxious, Sad, Angry, Excited, Happy, Calm}

const exclamationBoost = 2

// Analyze scores free text against the keyword buckets. Text with no signal
// returns Unknown with a zero score.
func Analyze(text string) Decision {
	words := tokenize(text)
	if len(words) == 0 {
		return Decision{Mood: Unknown}
	}

	scores := make(map[Label]int)
	for label, keywords := range phrases {
		for _, phrase := range keywords {
			if containsPhrase(words, phrase) {
				scores[label] += 3
			}
		}
	}

	// Exclamations only amplify an existing positive signal.
	if exclamations := strings.Count(text, "!"); exclamations > 0 {
		if scores[Excited] > 0 {
			scores[Excited] += exclamations * exclamationBoost
		}
		if scores[Happy] > 0 {
			scores[Happy] += exclamationBoost
		}
	}

	best := Unknown
	bestScore := 0
	for _, label := range order {
		if s := scores[label]; s > bestScore {
			best = label
			bestScore = s
		}
	}

	return Decision{Mood: best, Score: bestScore}
}
