package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"modernc.org/sqlite"
)

const (
	// maxBusyRetries bounds how often a transaction that lost the write lock
	// to another process is run again.
	maxBusyRetries = 4
	busyBackoff    = 25 * time.Millisecond

	// sqliteBusy is the primary SQLITE_BUSY result code.
	sqliteBusy = 5
)

// UnitOfWork manages transactional boundaries. The callback receives a DBTX
// backed by a *sql.Tx and may run more than once.
type UnitOfWork interface {
	WithinTx(ctx context.Context, fn func(ctx context.Context, tx DBTX) error) error
}

// SQLiteUnitOfWork implements UnitOfWork using database/sql transactions.
// A read-then-write transaction that hits SQLITE_BUSY is not covered by the
// busy timeout, so it is rolled back and retried with backoff.
type SQLiteUnitOfWork struct {
	db *sql.DB
}

// NewSQLiteUnitOfWork creates a UnitOfWork backed by the given *sql.DB.
func NewSQLiteUnitOfWork(db *sql.DB) *SQLiteUnitOfWork {
	return &SQLiteUnitOfWork{db: db}
}

func (u *SQLiteUnitOfWork) WithinTx(ctx context.Context, fn func(ctx context.Context, tx DBTX) error) error {
	for attempt := 0; ; attempt++ {
		err := u.once(ctx, fn)
		if err == nil || !IsBusy(err) || attempt == maxBusyRetries {
			return err
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(busyBackoff << attempt):
		}
	}
}

func (u *SQLiteUnitOfWork) once(ctx context.Context, fn func(ctx context.Context, tx DBTX) error) error {
	tx, err := u.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}

	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback()
			panic(p)
		}
	}()

	if err := fn(ctx, tx); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			return fmt.Errorf("rollback failed: %v (original error: %w)", rbErr, err)
		}
		return err
	}

	if err := tx.Commit(); err != nil {
		_ = tx.Rollback()
		return fmt.Errorf("committing transaction: %w", err)
	}
	return nil
}

// IsBusy reports whether err means another connection holds the database
// lock.
func IsBusy(err error) bool {
	if err == nil {
		return false
	}
	var se *sqlite.Error
	if errors.As(err, &se) {
		return se.Code()&0xff == sqliteBusy
	}
	return strings.Contains(err.Error(), "database is locked")
}
