package mood

import (
	"context"
	"errors"
	"math"
	"strings"
	"time"

	"github.com/flaminghawk1207/mindmirror/backend/internal/model/chat"
	"github.com/flaminghawk1207/mindmirror/backend/internal/model/mood"
	"github.com/flaminghawk1207/mindmirror/backend/internal/store"
)

var (
	ErrMoodRequired        = errors.New("mood is required")
	ErrIntensityOutOfRange = errors.New("intensity must be between 1 and 10")
)

const (
	DefaultSummaryDays = 7
	MaxSummaryDays     = 90

	fallbackIntensity = 5
	dayLayout         = "2006-01-02"
)

// Service manages the mood history timeline and its trend summary.
type Service struct {
	repo store.Repository
	now  func() time.Time
}

// NewService wraps repo.
func NewService(repo store.Repository) *Service {
	return &Service{repo: repo, now: time.Now}
}

// Record validates and stores an entry. Known labels are stored in their
// canonical case. A zero timestamp means now.
func (s *Service) Record(ctx context.Context, entry mood.Entry) (mood.Entry, error) {
	entry.Mood = mood.Canonical(strings.TrimSpace(entry.Mood))
	if entry.Mood == "" {
		return mood.Entry{}, ErrMoodRequired
	}
	if entry.Intensity < mood.MinIntensity || entry.Intensity > mood.MaxIntensity {
		return mood.Entry{}, ErrIntensityOutOfRange
	}
	if entry.Timestamp == 0 {
		entry.Timestamp = s.now().UnixMilli()
	}

	if err := s.repo.AppendMood(ctx, entry); err != nil {
		return mood.Entry{}, err
	}
	return entry, nil
}

// RecordReply stores the mood inferred by the coach. Replies without a mood
// are skipped. Intensity falls back to the caller's prior value, then to the
// middle of the scale, and is clamped into range.
func (s *Service) RecordReply(ctx context.Context, reply chat.Reply, prior chat.MoodSignal) (bool, error) {
	if !reply.HasMood() {
		return false, nil
	}

	intensity := float64(fallbackIntensity)
	switch {
	case reply.Intensity != nil:
		intensity = *reply.Intensity
	case prior.Intensity != nil:
		intensity = *prior.Intensity
	}
	intensity = math.Max(mood.MinIntensity, math.Min(mood.MaxIntensity, intensity))

	if _, err := s.Record(ctx, mood.Entry{Mood: *reply.Mood, Intensity: intensity}); err != nil {
		return false, err
	}
	return true, nil
}

// History returns every entry oldest first.
func (s *Service) History(ctx context.Context) ([]mood.Entry, error) {
	return s.repo.ListMoods(ctx)
}

// Clear removes the whole history.
func (s *Service) Clear(ctx context.Context) error {
	return s.repo.ClearMoods(ctx)
}

// Summary aggregates the history. Days covers the last n UTC calendar days,
// oldest first; n outside 1..MaxSummaryDays falls back to DefaultSummaryDays.
func (s *Service) Summary(ctx context.Context, n int) (mood.Summary, error) {
	if n < 1 || n > MaxSummaryDays {
		n = DefaultSummaryDays
	}

	entries, err := s.repo.ListMoods(ctx)
	if err != nil {
		return mood.Summary{}, err
	}

	summary := mood.Summary{Count: len(entries), Days: make([]mood.DaySummary, 0, n)}

	perDay := make(map[string][]float64)
	var total float64
	for _, e := range entries {
		total += e.Intensity
		key := time.UnixMilli(e.Timestamp).UTC().Format(dayLayout)
		perDay[key] = append(perDay[key], e.Intensity)
	}
	if len(entries) > 0 {
		summary.AverageIntensity = total / float64(len(entries))
		latest := entries[len(entries)-1]
		summary.Latest = &latest
	}

	today := s.now().UTC()
	for i := n - 1; i >= 0; i-- {
		key := today.AddDate(0, 0, -i).Format(dayLayout)
		day := mood.DaySummary{Date: key, Count: len(perDay[key])}
		if day.Count > 0 {
			var sum float64
			for _, v := range perDay[key] {
				sum += v
			}
			day.AverageIntensity = math.Round(sum / float64(day.Count))
		}
		summary.Days = append(summary.Days, day)
	}

	return summary, nil
}
