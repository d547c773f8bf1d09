// Package store persists journal entries and mood history.
package store

import (
	"context"
	"errors"

	"github.com/flaminghawk1207/mindmirror/backend/internal/model/mood"
)

// ErrNotFound is returned when deleting an unknown journal entry.
var ErrNotFound = errors.New("entry not found")

// Repository is implemented by MemoryStore and SQLiteStore.
type Repository interface {
	// AppendMood records a mood entry.
	AppendMood(ctx context.Context, entry mood.Entry) error

	// ListMoods returns the history ordered by timestamp, oldest first.
	ListMoods(ctx context.Context) ([]mood.Entry, error)

	// ClearMoods removes the whole mood history.
	ClearMoods(ctx context.Context) error

	// AddJournal stores a journal entry. The ID must be set by the caller.
	AddJournal(ctx context.Context, entry mood.JournalEntry) error

	// ListJournal returns journal entries newest first.
	ListJournal(ctx context.Context) ([]mood.JournalEntry, error)

	// DeleteJournal removes one entry or returns ErrNotFound.
	DeleteJournal(ctx context.Context, id string) error

	// ClearJournal removes every journal entry.
	ClearJournal(ctx context.Context) error

	// Close releases underlying resources.
	Close() error
}
