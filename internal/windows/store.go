// Package windows stores picked measurement windows and their adjoint-source
// bookkeeping in a sqlite database under ADJOINT_SOURCES.
package windows

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"
)

// Window is one picked time window on a single channel.
type Window struct {
	ID      string
	Event   string
	Channel string
	StartS  float64
	EndS    float64
	Weight  float64
}

const createWindowsTable = `
CREATE TABLE IF NOT EXISTS windows (
	window_id  TEXT PRIMARY KEY,
	event      TEXT NOT NULL,
	channel    TEXT NOT NULL,
	start_s    REAL NOT NULL,
	end_s      REAL NOT NULL,
	weight     REAL NOT NULL DEFAULT 1.0,
	created_at INTEGER NOT NULL
)`

const createWindowsIndex = `
CREATE INDEX IF NOT EXISTS idx_windows_event_channel ON windows(event, channel)`

// Store wraps the windows database.
type Store struct {
	db *sql.DB
}

// Open opens (creating if needed) the windows database at path.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("opening windows database: %w", err)
	}
	for _, ddl := range []string{createWindowsTable, createWindowsIndex} {
		if _, err := db.Exec(ddl); err != nil {
			db.Close()
			return nil, fmt.Errorf("creating windows schema: %w", err)
		}
	}
	return &Store{db: db}, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

// Add inserts windows for one event/channel pair in a single transaction.
// Ids are assigned here; the input weights default to 1.0 when zero.
func (s *Store) Add(event, channel string, wins []Window) ([]Window, error) {
	tx, err := s.db.Begin()
	if err != nil {
		return nil, fmt.Errorf("begin window insert: %w", err)
	}
	defer tx.Rollback() // safe after commit

	now := time.Now().Unix()
	out := make([]Window, 0, len(wins))
	for _, w := range wins {
		w.ID = uuid.NewString()
		w.Event = event
		w.Channel = channel
		if w.Weight == 0 {
			w.Weight = 1.0
		}
		q := squirrel.Insert("windows").
			Columns("window_id", "event", "channel", "start_s", "end_s", "weight", "created_at").
			Values(w.ID, w.Event, w.Channel, w.StartS, w.EndS, w.Weight, now)
		if _, err := q.RunWith(tx).Exec(); err != nil {
			return nil, fmt.Errorf("insert window: %w", err)
		}
		out = append(out, w)
	}
	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit window insert: %w", err)
	}
	return out, nil
}

// Get returns the windows stored for event/channel, ordered by start time.
func (s *Store) Get(event, channel string) ([]Window, error) {
	q := squirrel.Select("window_id", "event", "channel", "start_s", "end_s", "weight").
		From("windows").
		Where(squirrel.Eq{"event": event, "channel": channel}).
		OrderBy("start_s")
	rows, err := q.RunWith(s.db).Query()
	if err != nil {
		return nil, fmt.Errorf("query windows: %w", err)
	}
	defer rows.Close()
	return scanWindows(rows)
}

// ListChannels returns the distinct channels holding windows for event.
func (s *Store) ListChannels(event string) ([]string, error) {
	q := squirrel.Select("DISTINCT channel").
		From("windows").
		Where(squirrel.Eq{"event": event}).
		OrderBy("channel")
	rows, err := q.RunWith(s.db).Query()
	if err != nil {
		return nil, fmt.Errorf("query window channels: %w", err)
	}
	defer rows.Close()
	var channels []string
	for rows.Next() {
		var ch string
		if err := rows.Scan(&ch); err != nil {
			return nil, fmt.Errorf("scan channel: %w", err)
		}
		channels = append(channels, ch)
	}
	return channels, rows.Err()
}

// Drop deletes every window for event and returns how many were removed.
func (s *Store) Drop(event string) (int64, error) {
	res, err := squirrel.Delete("windows").
		Where(squirrel.Eq{"event": event}).
		RunWith(s.db).Exec()
	if err != nil {
		return 0, fmt.Errorf("delete windows: %w", err)
	}
	return res.RowsAffected()
}

func scanWindows(rows *sql.Rows) ([]Window, error) {
	var out []Window
	for rows.Next() {
		var w Window
		if err := rows.Scan(&w.ID, &w.Event, &w.Channel, &w.StartS, &w.EndS, &w.Weight); err != nil {
			return nil, fmt.Errorf("scan window: %w", err)
		}
		out = append(out, w)
	}
	return out, rows.Err()
}
