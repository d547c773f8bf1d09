package store

import (
	"context"
	"sort"
	"sync"

	"github.com/flaminghawk1207/mindmirror/backend/internal/model/mood"
)

// MemoryStore keeps everything in process memory. Data is lost on restart.
type MemoryStore struct {
	mu      sync.RWMutex
	moods   []mood.Entry
	journal []mood.JournalEntry
}

// NewMemory returns an empty in-memory repository.
func NewMemory() *MemoryStore {
	return &MemoryStore{
		moods:   make([]mood.Entry, 0, 16),
		journal: make([]mood.JournalEntry, 0, 16),
	}
}

func (s *MemoryStore) AppendMood(_ context.Context, entry mood.Entry) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.moods = append(s.moods, entry)
	sort.SliceStable(s.moods, func(i, j int) bool {
		return s.moods[i].Timestamp < s.moods[j].Timestamp
	})
	return nil
}

func (s *MemoryStore) ListMoods(_ context.Context) ([]mood.Entry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	copied := make([]mood.Entry, len(s.moods))
	copy(copied, s.moods)
	return copied, nil
}

func (s *MemoryStore) ClearMoods(_ context.Context) error {
	s.mu.Lock()
	s.moods = s.moods[:0]
	s.mu.Unlock()
	return nil
}

func (s *MemoryStore) AddJournal(_ context.Context, entry mood.JournalEntry) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.journal = append(s.journal, entry)
	sort.SliceStable(s.journal, func(i, j int) bool {
		return s.journal[i].Timestamp > s.journal[j].Timestamp
	})
	return nil
}

func (s *MemoryStore) ListJournal(_ context.Context) ([]mood.JournalEntry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	copied := make([]mood.JournalEntry, len(s.journal))
	copy(copied, s.journal)
	return copied, nil
}

func (s *MemoryStore) DeleteJournal(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, entry := range s.journal {
		if entry.ID == id {
			s.journal = append(s.journal[:i], s.journal[i+1:]...)
			return nil
		}
	}
	return ErrNotFound
}

func (s *MemoryStore) ClearJournal(_ context.Context) error {
	s.mu.Lock()
	s.journal = s.journal[:0]
	s.mu.Unlock()
	return nil
}

func (s *MemoryStore) Close() error {
	return nil
}
