// Package audit persists analysis events. The engine only emits events;
// this package owns their storage.
package audit

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/greencart/backend/internal/domain"
)

const schema = `
CREATE TABLE IF NOT EXISTS audit_events (
	event_id   TEXT PRIMARY KEY,
	event_type TEXT NOT NULL,
	created_at TEXT NOT NULL,
	basket_id  TEXT NOT NULL,
	payload    TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_audit_events_basket ON audit_events (basket_id);
`

// SQLiteLogger stores audit events in a local SQLite database
type SQLiteLogger struct {
	db *sql.DB
}

// NewSQLiteLogger opens (creating if needed) the audit database at path
func NewSQLiteLogger(path string) (*SQLiteLogger, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("opening audit database: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("initializing audit schema: %w", err)
	}
	return &SQLiteLogger{db: db}, nil
}

// Log persists one audit event. The full event is stored as a JSON
// payload alongside the indexed columns.
func (l *SQLiteLogger) Log(ctx context.Context, event domain.AuditEvent) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("encoding audit event: %w", err)
	}

	_, err = l.db.ExecContext(ctx,
		`INSERT INTO audit_events (event_id, event_type, created_at, basket_id, payload) VALUES (?, ?, ?, ?, ?)`,
		event.ID,
		event.EventType,
		event.Timestamp.UTC().Format(time.RFC3339Nano),
		event.BasketID,
		string(payload),
	)
	if err != nil {
		return fmt.Errorf("inserting audit event: %w", err)
	}
	return nil
}

// ByBasket returns all events recorded for a basket, oldest first
func (l *SQLiteLogger) ByBasket(ctx context.Context, basketID string) ([]domain.AuditEvent, error) {
	rows, err := l.db.QueryContext(ctx,
		`SELECT payload FROM audit_events WHERE basket_id = ? ORDER BY created_at`,
		basketID,
	)
	if err != nil {
		return nil, fmt.Errorf("querying audit events: %w", err)
	}
	defer rows.Close()

	var events []domain.AuditEvent
	for rows.Next() {
		var payload string
		if err := rows.Scan(&payload); err != nil {
			return nil, fmt.Errorf("scanning audit event: %w", err)
		}
		var event domain.AuditEvent
		if err := json.Unmarshal([]byte(payload), &event); err != nil {
			return nil, fmt.Errorf("decoding audit event: %w", err)
		}
		events = append(events, event)
	}
	return events, rows.Err()
}

// Close releases the underlying database handle
func (l *SQLiteLogger) Close() error {
	return l.db.Close()
}

// NopLogger discards every event. Used when auditing is disabled.
type NopLogger struct{}

// Log implements domain.AuditLogger
func (NopLogger) Log(ctx context.Context, event domain.AuditEvent) error {
	return nil
}
