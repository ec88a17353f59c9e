package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/alexanderramin/punchclock/internal/db"
)

// Entry is one raw row held by a Backend.
type Entry struct {
	Key       string
	Payload   string
	UpdatedAt time.Time
}

// Backend is durable key to text storage. Keys reaching a Backend are
// already namespaced.
type Backend interface {
	Read(ctx context.Context, key string) (string, bool, error)
	Write(ctx context.Context, key, payload string, now time.Time) error
	Delete(ctx context.Context, key string) error
	List(ctx context.Context, prefix string) ([]Entry, error)
}

// Revisioner is implemented by backends that can tell when any connection,
// including one in another process, has changed the data.
type Revisioner interface {
	// Revision returns a counter that grows with every committed change.
	Revision(ctx context.Context) (int64, error)
}

// SQLiteBackend stores entries in the kv_entries table. A positive quota
// caps the summed payload size of all rows.
type SQLiteBackend struct {
	conn       db.DBTX
	uow        db.UnitOfWork
	quotaBytes int64
}

// NewSQLiteBackend creates a backend over database. quotaBytes <= 0 disables
// the capacity check.
func NewSQLiteBackend(database *sql.DB, quotaBytes int64) *SQLiteBackend {
	return &SQLiteBackend{
		conn:       database,
		uow:        db.NewSQLiteUnitOfWork(database),
		quotaBytes: quotaBytes,
	}
}

func (b *SQLiteBackend) Read(ctx context.Context, key string) (string, bool, error) {
	var payload string
	err := b.conn.QueryRowContext(ctx, `SELECT payload FROM kv_entries WHERE key = ?`, key).Scan(&payload)
	if err != nil {
		if err == sql.ErrNoRows {
			return "", false, nil
		}
		return "", false, fmt.Errorf("reading entry %q: %w", key, err)
	}
	return payload, true, nil
}

func (b *SQLiteBackend) Write(ctx context.Context, key, payload string, now time.Time) error {
	return b.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		if b.quotaBytes > 0 {
			var used int64
			err := tx.QueryRowContext(ctx,
				`SELECT COALESCE(SUM(size), 0) FROM kv_entries WHERE key != ?`, key).Scan(&used)
			if err != nil {
				return fmt.Errorf("measuring usage: %w", err)
			}
			if used+int64(len(payload)) > b.quotaBytes {
				return fmt.Errorf("writing entry %q (%d bytes, %d in use): %w",
					key, len(payload), used, ErrCapacityExhausted)
			}
		}

		_, err := tx.ExecContext(ctx, `INSERT INTO kv_entries (key, payload, size, updated_at)
			VALUES (?, ?, ?, ?)
			ON CONFLICT(key) DO UPDATE SET
				payload = excluded.payload,
				size = excluded.size,
				updated_at = excluded.updated_at`,
			key, payload, len(payload), now.UTC().Format(time.RFC3339Nano))
		if err != nil {
			return fmt.Errorf("writing entry %q: %w", key, err)
		}
		return nil
	})
}

func (b *SQLiteBackend) Delete(ctx context.Context, key string) error {
	if _, err := b.conn.ExecContext(ctx, `DELETE FROM kv_entries WHERE key = ?`, key); err != nil {
		return fmt.Errorf("deleting entry %q: %w", key, err)
	}
	return nil
}

func (b *SQLiteBackend) List(ctx context.Context, prefix string) ([]Entry, error) {
	rows, err := b.conn.QueryContext(ctx,
		`SELECT key, payload, updated_at FROM kv_entries
		WHERE substr(key, 1, ?) = ?
		ORDER BY key`, len(prefix), prefix)
	if err != nil {
		return nil, fmt.Errorf("listing entries: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var e Entry
		var updatedAt string
		if err := rows.Scan(&e.Key, &e.Payload, &updatedAt); err != nil {
			return nil, fmt.Errorf("scanning entry row: %w", err)
		}
		e.UpdatedAt, err = time.Parse(time.RFC3339Nano, updatedAt)
		if err != nil {
			return nil, fmt.Errorf("parsing updated_at for %q: %w", e.Key, err)
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating entries: %w", err)
	}
	return entries, nil
}

func (b *SQLiteBackend) Revision(ctx context.Context) (int64, error) {
	var rev int64
	if err := b.conn.QueryRowContext(ctx, `SELECT rev FROM kv_revision WHERE id = 1`).Scan(&rev); err != nil {
		return 0, fmt.Errorf("reading revision: %w", err)
	}
	return rev, nil
}
