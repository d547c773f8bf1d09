package suggestion

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Store exposes suggestion lookup for HTTP handlers.
type Store interface {
	List() []Set
	ForMood(mood string) Set
}

// MemoryStore implements Store over an in-memory slice.
type MemoryStore struct {
	items []Set
}

// NewMemoryStore returns a MemoryStore preloaded with the supplied sets.
func NewMemoryStore(items []Set) *MemoryStore {
	return &MemoryStore{items: append([]Set(nil), items...)}
}

// List returns every configured prompt set.
func (s *MemoryStore) List() []Set {
	return append([]Set(nil), s.items...)
}

// ForMood matches the mood case-insensitively and falls back to the default
// set. The returned Mood is the caller's label, or DefaultMood on fallback.
func (s *MemoryStore) ForMood(mood string) Set {
	mood = strings.TrimSpace(mood)
	if mood != "" {
		for _, item := range s.items {
			if strings.EqualFold(item.Mood, mood) {
				return Set{Mood: item.Mood, Prompts: append([]string(nil), item.Prompts...)}
			}
		}
	}
	for _, item := range s.items {
		if item.Mood == DefaultMood {
			return Set{Mood: DefaultMood, Prompts: append([]string(nil), item.Prompts...)}
		}
	}
	return Set{Mood: DefaultMood}
}

type catalogFile struct {
	Suggestions []Set `yaml:"suggestions"`
}

// LoadFile reads a YAML catalogue of the form
//
//	suggestions:
//	  - mood: Sad
//	    prompts: ["..."]
//
// A missing default set is filled from Seed.
func LoadFile(path string) ([]Set, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read suggestions file: %w", err)
	}

	var file catalogFile
	if err := yaml.Unmarshal(raw, &file); err != nil {
		return nil, fmt.Errorf("parse suggestions file %s: %w", path, err)
	}
	if len(file.Suggestions) == 0 {
		return nil, fmt.Errorf("suggestions file %s has no entries", path)
	}

	hasDefault := false
	for i, set := range file.Suggestions {
		if strings.TrimSpace(set.Mood) == "" {
			return nil, fmt.Errorf("suggestions file %s: entry %d has no mood", path, i)
		}
		if set.Mood == DefaultMood {
			hasDefault = true
		}
	}
	if !hasDefault {
		for _, set := range Seed() {
			if set.Mood == DefaultMood {
				file.Suggestions = append(file.Suggestions, set)
			}
		}
	}
	return file.Suggestions, nil
}
