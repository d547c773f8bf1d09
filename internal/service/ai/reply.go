package ai

import (
	"encoding/json"
	"errors"
	"math"
	"strconv"
	"strings"

	"github.com/flaminghawk1207/mindmirror/backend/internal/model/chat"
)

// ParseReply splits raw model output into the JSON header line and the
// coaching text. It never fails: when the header is not valid JSON the whole
// output is returned as text and no mood is inferred.
func ParseReply(raw string) chat.Reply {
	if raw == "" {
		return chat.Reply{}
	}

	idx := strings.IndexByte(raw, '\n')
	if idx < 0 {
		mood, intensity, ok := parseHeader(raw)
		if !ok {
			return chat.Reply{Text: raw}
		}
		return chat.Reply{Text: "", Mood: mood, Intensity: intensity}
	}

	header := strings.TrimSpace(raw[:idx])
	body := strings.TrimSpace(raw[idx+1:])

	mood, intensity, ok := parseHeader(header)
	if !ok {
		return chat.Reply{Text: raw}
	}
	return chat.Reply{Text: body, Mood: mood, Intensity: intensity}
}

// parseHeader decodes any JSON value. ok is true whenever the input is valid
// JSON; fields are only taken from an object with correctly typed values.
// Numbers beyond float64 range are still valid JSON: they overflow to an
// infinite intensity, which is reported as absent since it has no JSON form.
func parseHeader(header string) (mood *string, intensity *float64, ok bool) {
	if !json.Valid([]byte(header)) {
		return nil, nil, false
	}

	dec := json.NewDecoder(strings.NewReader(header))
	dec.UseNumber()
	var decoded any
	if err := dec.Decode(&decoded); err != nil {
		return nil, nil, false
	}

	fields, isObject := decoded.(map[string]any)
	if !isObject {
		return nil, nil, true
	}
	if v, isString := fields["mood"].(string); isString {
		mood = &v
	}
	if n, isNumber := fields["intensity"].(json.Number); isNumber {
		v, err := strconv.ParseFloat(n.String(), 64)
		if (err == nil || errors.Is(err, strconv.ErrRange)) && !math.IsInf(v, 0) {
			intensity = &v
		}
	}
	return mood, intensity, true
}
