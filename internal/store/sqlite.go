package store

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"

	"github.com/flaminghawk1207/mindmirror/backend/internal/model/mood"
)

// SQLiteStore implements Repository on a SQLite file.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLite opens (creating if needed) the database at dbPath.
func NewSQLite(dbPath string) (*SQLiteStore, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, fmt.Errorf("create database directory: %w", err)
	}

	dsn := dbPath + "?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)&_pragma=synchronous(NORMAL)"
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	db.SetMaxOpenConns(1)
	db.SetConnMaxLifetime(5 * time.Minute)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	s := &SQLiteStore{db: db}
	if err := s.initSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("initialize schema: %w", err)
	}
	return s, nil
}

func (s *SQLiteStore) initSchema() error {
	query := `
	CREATE TABLE IF NOT EXISTS mood_entries (
		seq INTEGER PRIMARY KEY AUTOINCREMENT,
		timestamp INTEGER NOT NULL,
		mood TEXT NOT NULL,
		intensity REAL NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_mood_entries_ts ON mood_entries(timestamp);

	CREATE TABLE IF NOT EXISTS journal_entries (
		seq INTEGER PRIMARY KEY AUTOINCREMENT,
		id TEXT NOT NULL UNIQUE,
		timestamp INTEGER NOT NULL,
		mood TEXT,
		intensity REAL,
		note TEXT NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_journal_entries_ts ON journal_entries(timestamp);
	`
	if _, err := s.db.Exec(query); err != nil {
		return fmt.Errorf("create schema: %w", err)
	}
	return nil
}

func (s *SQLiteStore) AppendMood(ctx context.Context, entry mood.Entry) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO mood_entries (timestamp, mood, intensity) VALUES (?, ?, ?)`,
		entry.Timestamp, entry.Mood, entry.Intensity)
	if err != nil {
		return fmt.Errorf("insert mood entry: %w", err)
	}
	return nil
}

func (s *SQLiteStore) ListMoods(ctx context.Context) ([]mood.Entry, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT timestamp, mood, intensity FROM mood_entries ORDER BY timestamp ASC, seq ASC`)
	if err != nil {
		return nil, fmt.Errorf("query mood entries: %w", err)
	}
	defer rows.Close()

	entries := make([]mood.Entry, 0)
	for rows.Next() {
		var e mood.Entry
		if err := rows.Scan(&e.Timestamp, &e.Mood, &e.Intensity); err != nil {
			return nil, fmt.Errorf("scan mood entry: %w", err)
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

func (s *SQLiteStore) ClearMoods(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM mood_entries`); err != nil {
		return fmt.Errorf("clear mood entries: %w", err)
	}
	return nil
}

func (s *SQLiteStore) AddJournal(ctx context.Context, entry mood.JournalEntry) error {
	var moodVal sql.NullString
	if entry.Mood != nil {
		moodVal = sql.NullString{String: *entry.Mood, Valid: true}
	}
	var intensity sql.NullFloat64
	if entry.Intensity != nil {
		intensity = sql.NullFloat64{Float64: *entry.Intensity, Valid: true}
	}

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO journal_entries (id, timestamp, mood, intensity, note) VALUES (?, ?, ?, ?, ?)`,
		entry.ID, entry.Timestamp, moodVal, intensity, entry.Note)
	if err != nil {
		return fmt.Errorf("insert journal entry: %w", err)
	}
	return nil
}

func (s *SQLiteStore) ListJournal(ctx context.Context) ([]mood.JournalEntry, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, timestamp, mood, intensity, note FROM journal_entries ORDER BY timestamp DESC, seq ASC`)
	if err != nil {
		return nil, fmt.Errorf("query journal entries: %w", err)
	}
	defer rows.Close()

	entries := make([]mood.JournalEntry, 0)
	for rows.Next() {
		var (
			e         mood.JournalEntry
			moodVal   sql.NullString
			intensity sql.NullFloat64
		)
		if err := rows.Scan(&e.ID, &e.Timestamp, &moodVal, &intensity, &e.Note); err != nil {
			return nil, fmt.Errorf("scan journal entry: %w", err)
		}
		if moodVal.Valid {
			m := moodVal.String
			e.Mood = &m
		}
		if intensity.Valid {
			v := intensity.Float64
			e.Intensity = &v
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

func (s *SQLiteStore) DeleteJournal(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM journal_entries WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete journal entry: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete journal entry: %w", err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *SQLiteStore) ClearJournal(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM journal_entries`); err != nil {
		return fmt.Errorf("clear journal entries: %w", err)
	}
	return nil
}

// Close closes the database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
