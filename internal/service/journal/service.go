package journal

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	analysis "github.com/flaminghawk1207/mindmirror/backend/internal/analysis/mood"
	"github.com/flaminghawk1207/mindmirror/backend/internal/model/mood"
	"github.com/flaminghawk1207/mindmirror/backend/internal/store"
)

var (
	ErrNoteRequired        = errors.New("note is required")
	ErrIntensityOutOfRange = errors.New("intensity must be between 1 and 10")
	ErrEntryNotFound       = store.ErrNotFound
)

// Service manages free-text journal entries.
type Service struct {
	repo  store.Repository
	now   func() time.Time
	newID func() string
}

// NewService wraps repo.
func NewService(repo store.Repository) *Service {
	return &Service{repo: repo, now: time.Now, newID: uuid.NewString}
}

// Add validates and stores a new entry, assigning its id and, when missing,
// its timestamp.
func (s *Service) Add(ctx context.Context, entry mood.JournalEntry) (mood.JournalEntry, error) {
	if strings.TrimSpace(entry.Note) == "" {
		return mood.JournalEntry{}, ErrNoteRequired
	}
	if entry.Intensity != nil && (*entry.Intensity < mood.MinIntensity || *entry.Intensity > mood.MaxIntensity) {
		return mood.JournalEntry{}, ErrIntensityOutOfRange
	}
	if entry.Mood != nil && strings.TrimSpace(*entry.Mood) == "" {
		entry.Mood = nil
	}

	entry.ID = s.newID()
	entry.SuggestedMood = ""
	if entry.Timestamp == 0 {
		entry.Timestamp = s.now().UnixMilli()
	}

	if err := s.repo.AddJournal(ctx, entry); err != nil {
		return mood.JournalEntry{}, err
	}
	return withSuggestion(entry), nil
}

// List returns entries newest first. Entries without a mood carry a keyword
// based suggestion when the note has a clear signal.
func (s *Service) List(ctx context.Context) ([]mood.JournalEntry, error) {
	entries, err := s.repo.ListJournal(ctx)
	if err != nil {
		return nil, err
	}
	for i := range entries {
		entries[i] = withSuggestion(entries[i])
	}
	return entries, nil
}

// Delete removes one entry; unknown ids return ErrEntryNotFound.
func (s *Service) Delete(ctx context.Context, id string) error {
	return s.repo.DeleteJournal(ctx, id)
}

// Clear removes every entry.
func (s *Service) Clear(ctx context.Context) error {
	return s.repo.ClearJournal(ctx)
}

func withSuggestion(entry mood.JournalEntry) mood.JournalEntry {
	if entry.Mood != nil {
		return entry
	}
	entry.SuggestedMood = string(analysis.Analyze(entry.Note).Mood)
	return entry
}
