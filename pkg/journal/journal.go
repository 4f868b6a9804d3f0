package journal

import (
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/rcbridge/rcbridge-go/pkg/event"
	"github.com/rcbridge/rcbridge-go/pkg/registry"
)

// ErrClosed is returned after Close.
var ErrClosed = errors.New("journal closed")

// DefaultLimit bounds List when the filter sets no limit.
const DefaultLimit = 100

// Record is one subscription row.
type Record struct {
	SessionID   string
	Kind        registry.Kind
	Handle      int
	StartedAt   time.Time
	StoppedAt   *time.Time
	StopReason  registry.RemoveReason
	Deliveries  int64
	LastOutcome string
}

// Active reports whether the subscription was still live when last recorded.
func (r Record) Active() bool {
	return r.StoppedAt == nil
}

// Filter selects records for List. Zero fields match everything.
type Filter struct {
	SessionID  string
	Kind       registry.Kind
	ActiveOnly bool
	Since      time.Time

	// Limit caps the result; zero selects DefaultLimit and a negative value
	// removes the cap.
	Limit  int
	Offset int
}

// Journal is a SQLite subscription journal.
type Journal struct {
	db *sql.DB

	mu     sync.RWMutex
	closed bool
}

// Open opens or creates the journal at path. Use ":memory:" for an in-memory
// journal.
func Open(path string) (*Journal, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open journal: %w", err)
	}
	// Every pooled connection to ":memory:" would see its own database.
	if path == ":memory:" {
		db.SetMaxOpenConns(1)
	}

	if _, err := db.Exec(`PRAGMA journal_mode = WAL;`); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to configure journal: %w", err)
	}

	j := &Journal{db: db}
	if err := j.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate journal: %w", err)
	}
	return j, nil
}

func (j *Journal) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS subscriptions (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		session_id TEXT NOT NULL,
		kind TEXT NOT NULL,
		handle INTEGER NOT NULL,
		started_at DATETIME NOT NULL,
		stopped_at DATETIME,
		stop_reason TEXT,
		deliveries INTEGER NOT NULL DEFAULT 0,
		last_outcome TEXT,
		UNIQUE (session_id, kind, handle)
	);

	CREATE INDEX IF NOT EXISTS idx_subscriptions_session ON subscriptions(session_id);
	CREATE INDEX IF NOT EXISTS idx_subscriptions_started_at ON subscriptions(started_at);
	`
	_, err := j.db.Exec(schema)
	return err
}

// Close closes the database.
func (j *Journal) Close() error {
	j.mu.Lock()
	defer j.mu.Unlock()
	if j.closed {
		return nil
	}
	j.closed = true
	return j.db.Close()
}

// Started records a new live subscription.
func (j *Journal) Started(sessionID string, sub registry.Subscription) error {
	return j.exec(`
		INSERT INTO subscriptions (session_id, kind, handle, started_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT (session_id, kind, handle) DO UPDATE SET
			started_at = excluded.started_at,
			stopped_at = NULL,
			stop_reason = NULL,
			deliveries = 0,
			last_outcome = NULL
	`, sessionID, sub.Kind.String(), sub.Handle, sub.CreatedAt.UTC())
}

// Stopped closes the subscription's row.
func (j *Journal) Stopped(sessionID string, kind registry.Kind, handle int, reason registry.RemoveReason, at time.Time) error {
	return j.exec(`
		UPDATE subscriptions SET stopped_at = ?, stop_reason = ?
		WHERE session_id = ? AND kind = ? AND handle = ? AND stopped_at IS NULL
	`, at.UTC(), string(reason), sessionID, kind.String(), handle)
}

// Delivered counts ev against its live subscription. Events of unknown kinds
// and events arriving after the stop are ignored.
func (j *Journal) Delivered(sessionID string, ev event.Event) error {
	kind, err := registry.ParseKind(ev.Kind)
	if err != nil {
		return nil
	}
	return j.exec(`
		UPDATE subscriptions SET deliveries = deliveries + 1, last_outcome = ?
		WHERE session_id = ? AND kind = ? AND handle = ? AND stopped_at IS NULL
	`, ev.Outcome, sessionID, kind.String(), ev.Handle)
}

// Get returns one record.
func (j *Journal) Get(sessionID string, kind registry.Kind, handle int) (*Record, error) {
	recs, err := j.query(`
		SELECT session_id, kind, handle, started_at, stopped_at, stop_reason, deliveries, last_outcome
		FROM subscriptions WHERE session_id = ? AND kind = ? AND handle = ?
	`, sessionID, kind.String(), handle)
	if err != nil {
		return nil, err
	}
	if len(recs) == 0 {
		return nil, nil
	}
	return &recs[0], nil
}

// List returns records matching f, most recent first.
func (j *Journal) List(f Filter) ([]Record, error) {
	var where []string
	var args []any
	if f.SessionID != "" {
		where = append(where, "session_id = ?")
		args = append(args, f.SessionID)
	}
	if f.Kind != 0 {
		where = append(where, "kind = ?")
		args = append(args, f.Kind.String())
	}
	if f.ActiveOnly {
		where = append(where, "stopped_at IS NULL")
	}
	if !f.Since.IsZero() {
		where = append(where, "started_at >= ?")
		args = append(args, f.Since.UTC())
	}

	q := `SELECT session_id, kind, handle, started_at, stopped_at, stop_reason, deliveries, last_outcome
		FROM subscriptions`
	if len(where) > 0 {
		q += " WHERE " + strings.Join(where, " AND ")
	}
	limit := f.Limit
	if limit == 0 {
		limit = DefaultLimit
	}
	q += " ORDER BY started_at DESC, id DESC LIMIT ? OFFSET ?"
	args = append(args, limit, f.Offset)

	return j.query(q, args...)
}

// Active returns the live subscriptions of a session.
func (j *Journal) Active(sessionID string) ([]Record, error) {
	return j.List(Filter{SessionID: sessionID, ActiveOnly: true, Limit: -1})
}

// Hooks returns registry hooks that journal the subscriptions of sessionID.
// Write failures are logged and never reach the registry.
func (j *Journal) Hooks(sessionID string, logger *slog.Logger) registry.Hooks {
	if logger == nil {
		logger = slog.Default()
	}
	warn := func(op string, err error) {
		if err != nil {
			logger.Warn("journal write failed", "op", op, "session", sessionID, "error", err)
		}
	}
	return registry.Hooks{
		OnRegister: func(sub registry.Subscription) {
			warn("start", j.Started(sessionID, sub))
		},
		OnRemove: func(sub registry.Subscription, reason registry.RemoveReason) {
			warn("stop", j.Stopped(sessionID, sub.Kind, sub.Handle, reason, time.Now()))
		},
		OnDeliver: func(ev event.Event) {
			warn("deliver", j.Delivered(sessionID, ev))
		},
	}
}

func (j *Journal) exec(q string, args ...any) error {
	j.mu.RLock()
	defer j.mu.RUnlock()
	if j.closed {
		return ErrClosed
	}
	_, err := j.db.Exec(q, args...)
	return err
}

func (j *Journal) query(q string, args ...any) ([]Record, error) {
	j.mu.RLock()
	defer j.mu.RUnlock()
	if j.closed {
		return nil, ErrClosed
	}

	rows, err := j.db.Query(q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Record
	for rows.Next() {
		var rec Record
		var kind string
		var stoppedAt sql.NullTime
		var reason, outcome sql.NullString

		if err := rows.Scan(
			&rec.SessionID, &kind, &rec.Handle, &rec.StartedAt,
			&stoppedAt, &reason, &rec.Deliveries, &outcome,
		); err != nil {
			return nil, err
		}

		if rec.Kind, err = registry.ParseKind(kind); err != nil {
			return nil, err
		}
		if stoppedAt.Valid {
			t := stoppedAt.Time
			rec.StoppedAt = &t
		}
		if reason.Valid {
			rec.StopReason = registry.RemoveReason(reason.String)
		}
		if outcome.Valid {
			rec.LastOutcome = outcome.String
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}
