package store

import "errors"

var (
	// ErrQuotaExceeded is returned by Set when the backend stays full after
	// cleanup and a minimal retry.
	ErrQuotaExceeded = errors.New("storage quota exceeded")

	// ErrCapacityExhausted is returned by a Backend whose write would exceed
	// its capacity. Store reacts to it with cleanup and a single retry.
	ErrCapacityExhausted = errors.New("backend capacity exhausted")
)
