// Package store is the durable key to envelope layer. Every value is wrapped
// in a versioned Envelope, optionally compressed and given an expiry, and
// written under a namespaced key. Writes are announced to other stores that
// share the same Hub; stores in other processes notice them through Revision.
package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
)

const (
	// DefaultNamespace prefixes every physical key.
	DefaultNamespace = "punchclock_"

	// cleanupAge is how old an entry must be before quota cleanup removes it.
	cleanupAge = 30 * 24 * time.Hour
)

// Options configures a Store.
type Options struct {
	Namespace string
	Hub       *Hub
	Now       func() time.Time
	Logger    *slog.Logger

	// Retain lists logical keys that quota cleanup must never delete.
	Retain []string
}

// Store persists JSON values in envelopes on top of a Backend.
type Store struct {
	id        string
	backend   Backend
	namespace string
	hub       *Hub
	now       func() time.Time
	logger    *slog.Logger
	retain    map[string]bool
}

// New creates a Store. A nil Hub gives the store a private hub, so it only
// notifies stores created from it.
func New(backend Backend, opts Options) *Store {
	s := &Store{
		id:        uuid.New().String(),
		backend:   backend,
		namespace: opts.Namespace,
		hub:       opts.Hub,
		now:       opts.Now,
		logger:    opts.Logger,
		retain:    make(map[string]bool, len(opts.Retain)),
	}
	if s.namespace == "" {
		s.namespace = DefaultNamespace
	}
	if s.hub == nil {
		s.hub = NewHub()
	}
	if s.now == nil {
		s.now = time.Now
	}
	if s.logger == nil {
		s.logger = slog.Default()
	}
	for _, k := range opts.Retain {
		s.retain[k] = true
	}
	return s
}

// ID identifies this store as the origin of the events it publishes.
func (s *Store) ID() string { return s.id }

type setConfig struct {
	noCompress bool
	expiresIn  time.Duration
}

// SetOption tunes a single Set call.
type SetOption func(*setConfig)

// WithoutCompression stores the value uncompressed regardless of size.
func WithoutCompression() SetOption {
	return func(c *setConfig) { c.noCompress = true }
}

// ExpiresIn makes the value unreadable once d has elapsed.
func ExpiresIn(d time.Duration) SetOption {
	return func(c *setConfig) { c.expiresIn = d }
}

// Set stores value under key. When the backend is full it removes entries
// older than 30 days and retries once with a minimal envelope; if that also
// fails it returns ErrQuotaExceeded.
func (s *Store) Set(ctx context.Context, key string, value any, opts ...SetOption) error {
	var cfg setConfig
	for _, opt := range opts {
		opt(&cfg)
	}

	raw, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("encoding value for %q: %w", key, err)
	}

	now := s.now()
	env := Envelope{Value: raw, Timestamp: now.UnixMilli(), Version: CurrentVersion}
	if cfg.expiresIn > 0 {
		at := now.Add(cfg.expiresIn).UnixMilli()
		env.ExpiresAt = &at
	}

	payload, err := json.Marshal(env)
	if err != nil {
		return fmt.Errorf("encoding envelope for %q: %w", key, err)
	}
	if !cfg.noCompress && len(payload) > compressThreshold {
		payload, err = compressEnvelope(env, raw)
		if err != nil {
			return fmt.Errorf("compressing %q: %w", key, err)
		}
	}

	err = s.backend.Write(ctx, s.physical(key), string(payload), now)
	if errors.Is(err, ErrCapacityExhausted) {
		err = s.retryAfterCleanup(ctx, key, raw, now)
	}
	if err != nil {
		return err
	}

	s.hub.publish(Event{Key: key, Value: raw, Origin: s.id})
	return nil
}

func compressEnvelope(env Envelope, raw []byte) ([]byte, error) {
	packed, err := Compress(raw)
	if err != nil {
		return nil, err
	}
	env.Value, err = json.Marshal(packed)
	if err != nil {
		return nil, err
	}
	env.Compressed = true
	return json.Marshal(env)
}

func (s *Store) retryAfterCleanup(ctx context.Context, key string, raw json.RawMessage, now time.Time) error {
	log := s.logger.With("key", key)
	removed, err := s.cleanup(ctx, now.Add(-cleanupAge))
	if err != nil {
		log.Warn("quota cleanup failed", "error", err)
	} else {
		log.Warn("storage full, removed stale entries", "removed", removed)
	}

	minimal, err := json.Marshal(Envelope{Value: raw, Timestamp: now.UnixMilli(), Version: CurrentVersion})
	if err != nil {
		return fmt.Errorf("encoding envelope for %q: %w", key, err)
	}
	if err := s.backend.Write(ctx, s.physical(key), string(minimal), now); err != nil {
		log.Error("retry after cleanup failed", "error", err)
		if errors.Is(err, ErrCapacityExhausted) {
			return fmt.Errorf("storing %q: %w", key, ErrQuotaExceeded)
		}
		return err
	}
	return nil
}

// cleanup deletes namespaced entries last written before cutoff, skipping
// retained keys.
func (s *Store) cleanup(ctx context.Context, cutoff time.Time) (int, error) {
	entries, err := s.backend.List(ctx, s.namespace)
	if err != nil {
		return 0, err
	}
	removed := 0
	for _, e := range entries {
		if s.retain[s.logical(e.Key)] || !e.UpdatedAt.Before(cutoff) {
			continue
		}
		if err := s.backend.Delete(ctx, e.Key); err != nil {
			return removed, err
		}
		removed++
	}
	return removed, nil
}

// Lookup returns the JSON value stored under key. found is false when the
// key is absent, expired or unreadable; unreadable payloads are logged.
func (s *Store) Lookup(ctx context.Context, key string) (json.RawMessage, bool, error) {
	payload, ok, err := s.backend.Read(ctx, s.physical(key))
	if err != nil || !ok {
		return nil, false, err
	}

	decoded, err := decodePayload(payload)
	if err != nil {
		s.logger.Warn("ignoring malformed entry", "key", key, "error", err)
		return nil, false, nil
	}

	switch v := decoded.(type) {
	case legacyValue:
		return v.raw, true, nil
	case versionedValue:
		if v.env.expired(s.now().UnixMilli()) {
			if err := s.Remove(ctx, key); err != nil {
				s.logger.Warn("removing expired entry failed", "key", key, "error", err)
			}
			return nil, false, nil
		}
		raw, err := v.env.unwrap()
		if err != nil {
			s.logger.Warn("decompression failed", "key", key, "error", err)
			return nil, false, nil
		}
		return raw, true, nil
	}
	return nil, false, nil
}

// Get decodes the value stored under key into a T, returning def when the key
// is absent, expired or cannot be decoded.
func Get[T any](ctx context.Context, s *Store, key string, def T) (T, error) {
	raw, ok, err := s.Lookup(ctx, key)
	if err != nil || !ok {
		return def, err
	}
	var out T
	if err := json.Unmarshal(raw, &out); err != nil {
		s.logger.Warn("value does not match expected shape", "key", key, "error", err)
		return def, nil
	}
	return out, nil
}

// Remove deletes key and notifies other stores.
func (s *Store) Remove(ctx context.Context, key string) error {
	if err := s.backend.Delete(ctx, s.physical(key)); err != nil {
		return err
	}
	s.hub.publish(Event{Key: key, Removed: true, Origin: s.id})
	return nil
}

// Clear removes every namespaced key. Keys outside the namespace are kept.
func (s *Store) Clear(ctx context.Context) error {
	keys, err := s.Keys(ctx)
	if err != nil {
		return err
	}
	for _, k := range keys {
		if err := s.Remove(ctx, k); err != nil {
			return err
		}
	}
	return nil
}

// Keys lists logical keys, with the namespace stripped.
func (s *Store) Keys(ctx context.Context) ([]string, error) {
	entries, err := s.backend.List(ctx, s.namespace)
	if err != nil {
		return nil, err
	}
	keys := make([]string, 0, len(entries))
	for _, e := range entries {
		keys = append(keys, s.logical(e.Key))
	}
	return keys, nil
}

// Sweep removes expired envelopes and returns how many were deleted.
// Overlapping sweeps are harmless.
func (s *Store) Sweep(ctx context.Context) (int, error) {
	entries, err := s.backend.List(ctx, s.namespace)
	if err != nil {
		return 0, err
	}
	nowMs := s.now().UnixMilli()
	removed := 0
	for _, e := range entries {
		decoded, err := decodePayload(e.Payload)
		if err != nil {
			continue
		}
		v, ok := decoded.(versionedValue)
		if !ok || !v.env.expired(nowMs) {
			continue
		}
		if err := s.Remove(ctx, s.logical(e.Key)); err != nil {
			return removed, err
		}
		removed++
	}
	return removed, nil
}

// Revision reports the backend's change counter, which moves whenever any
// writer commits, in this process or another. ok is false when the backend
// cannot track changes.
func (s *Store) Revision(ctx context.Context) (rev int64, ok bool, err error) {
	r, ok := s.backend.(Revisioner)
	if !ok {
		return 0, false, nil
	}
	rev, err = r.Revision(ctx)
	if err != nil {
		return 0, false, err
	}
	return rev, true, nil
}

// Subscribe returns a subscription for changes that other stores make to
// keys. No keys means every key.
func (s *Store) Subscribe(keys ...string) *Subscription {
	return s.hub.subscribe(s.id, keys)
}

func (s *Store) physical(key string) string { return s.namespace + key }

func (s *Store) logical(physical string) string {
	return strings.TrimPrefix(physical, s.namespace)
}
