package store

import (
	"context"
	"database/sql"
	"fmt"
	"math"

	_ "modernc.org/sqlite"
)

// Compile-time interface check.
var _ Store = (*SQLiteStore)(nil)

// SQLiteStore is a persistent Store backed by SQLite. Each slot is a row of
// the mess_counters table.
type SQLiteStore struct {
	db     *sql.DB
	layout Layout
}

// NewSQLiteStore opens (or creates) a SQLite database at the given path.
// The schema is created by Initialize. Use ":memory:" for an in-memory
// SQLite database.
func NewSQLiteStore(dsn string, layout ...Layout) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("%w: open sqlite: %v", ErrStorageUnavailable, err)
	}
	// A single connection keeps ":memory:" databases coherent and avoids
	// SQLITE_BUSY between pooled writers.
	db.SetMaxOpenConns(1)

	var l Layout
	if len(layout) > 0 {
		l = layout[0]
	}
	return &SQLiteStore{db: db, layout: l.orDefault()}, nil
}

// Initialize creates the schema and inserts a zero row for every missing slot.
func (s *SQLiteStore) Initialize(ctx context.Context) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("%w: begin: %v", ErrStorageUnavailable, err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS mess_counters (
			slot  INTEGER PRIMARY KEY,
			name  TEXT NOT NULL,
			count INTEGER NOT NULL DEFAULT 0
		)
	`); err != nil {
		return fmt.Errorf("%w: create table: %v", ErrStorageUnavailable, err)
	}

	for i, name := range s.layout.Names {
		if _, err := tx.ExecContext(ctx,
			`INSERT OR IGNORE INTO mess_counters (slot, name, count) VALUES (?, ?, 0)`, i, name,
		); err != nil {
			return fmt.Errorf("%w: seed slot %d: %v", ErrStorageUnavailable, i, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("%w: commit: %v", ErrStorageUnavailable, err)
	}
	return nil
}

// Increment atomically adds one to the slot at index.
func (s *SQLiteStore) Increment(ctx context.Context, index int) error {
	if _, err := s.layout.Offset(index); err != nil {
		return err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("%w: begin: %v", ErrStorageUnavailable, err)
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx,
		`UPDATE mess_counters SET count = count + 1 WHERE slot = ? AND count < ?`,
		index, int64(math.MaxUint32),
	)
	if err != nil {
		return fmt.Errorf("%w: update slot %d: %v", ErrStorageUnavailable, index, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: update slot %d: %v", ErrStorageUnavailable, index, err)
	}

	if n == 0 {
		// Either the slot row is missing or it is saturated.
		var count int64
		err = tx.QueryRowContext(ctx, `SELECT count FROM mess_counters WHERE slot = ?`, index).Scan(&count)
		if err == sql.ErrNoRows {
			return fmt.Errorf("%w: slot %d not initialized", ErrStorageUnavailable, index)
		}
		if err != nil {
			return fmt.Errorf("%w: read slot %d: %v", ErrStorageUnavailable, index, err)
		}
		return fmt.Errorf("%w: slot %q", ErrCounterOverflow, s.layout.Names[index])
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("%w: commit: %v", ErrStorageUnavailable, err)
	}
	return nil
}

// ReadAll returns every slot in order.
func (s *SQLiteStore) ReadAll(ctx context.Context) (Counts, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT slot, count FROM mess_counters ORDER BY slot`)
	if err != nil {
		return nil, fmt.Errorf("%w: query: %v", ErrStorageUnreadable, err)
	}
	defer rows.Close()

	counts := make(Counts, s.layout.Slots())
	seen := 0
	for rows.Next() {
		var slot int
		var count int64
		if err := rows.Scan(&slot, &count); err != nil {
			return nil, fmt.Errorf("%w: scan: %v", ErrStorageUnreadable, err)
		}
		if slot < 0 || slot >= len(counts) {
			continue
		}
		counts[slot] = uint32(count)
		seen++
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: query: %v", ErrStorageUnreadable, err)
	}
	if seen != len(counts) {
		return nil, fmt.Errorf("%w: %d of %d slots present", ErrStorageUnreadable, seen, len(counts))
	}
	return counts, nil
}

// Close closes the underlying SQLite database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
