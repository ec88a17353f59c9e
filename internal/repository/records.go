// Package repository exposes attendance and activity records as typed,
// filterable collections over the persistent store, with query results held
// in a short-lived cache.
package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/alexanderramin/punchclock/internal/cache"
	"github.com/alexanderramin/punchclock/internal/domain"
	"github.com/alexanderramin/punchclock/internal/store"
	"github.com/google/uuid"
)

// Options configures Records.
type Options struct {
	Cache  *cache.Query
	Now    func() time.Time
	Logger *slog.Logger
}

// Records implements RecordRepo. Each domain is one JSON list under its
// logical key; saves rewrite the whole list.
type Records struct {
	store  *store.Store
	cache  *cache.Query
	now    func() time.Time
	logger *slog.Logger

	// mu serializes read-modify-write cycles on the collections.
	mu  sync.Mutex
	sub *store.Subscription

	// cacheMu orders cache fills against invalidations. A query caches its
	// result only if its domain's generation is unchanged since it began.
	cacheMu sync.Mutex
	gen     map[domain.Domain]uint64
	rev     int64
	revSeen bool
}

// NewRecords creates a repository over st and subscribes to changes other
// stores make to the record collections. Call Close to release the
// subscription.
func NewRecords(st *store.Store, opts Options) *Records {
	r := &Records{
		store:  st,
		cache:  opts.Cache,
		now:    opts.Now,
		logger: opts.Logger,
		gen:    make(map[domain.Domain]uint64, 2),
	}
	if r.now == nil {
		r.now = time.Now
	}
	if r.cache == nil {
		r.cache = cache.New(cache.DefaultTTL, 0, r.now)
	}
	if r.logger == nil {
		r.logger = slog.Default()
	}
	r.sub = st.Subscribe(domain.KeyAttendanceRecords, domain.KeyActivities)
	return r
}

// Close stops listening for external changes.
func (r *Records) Close() {
	r.sub.Unsubscribe()
}

func signature(d domain.Domain, f domain.Filter) string {
	b, _ := json.Marshal(f)
	return prefix(d) + string(b)
}

func prefix(d domain.Domain) string { return string(d) + ":" }

// syncExternal applies pending change events from other stores to the
// cache, then purges it if the backend shows commits this process has not
// seen yet, such as writes from another punchclock process.
func (r *Records) syncExternal(ctx context.Context) {
	for {
		select {
		case ev, ok := <-r.sub.C:
			if !ok {
				r.checkRevision(ctx)
				return
			}
			switch ev.Key {
			case domain.KeyAttendanceRecords:
				r.invalidate(domain.DomainAttendance)
			case domain.KeyActivities:
				r.invalidate(domain.DomainActivities)
			}
		default:
			if r.sub.Overflowed() {
				r.logger.Debug("change events dropped, purging query cache")
				r.purge()
			}
			r.checkRevision(ctx)
			return
		}
	}
}

func (r *Records) checkRevision(ctx context.Context) {
	rev, ok, err := r.store.Revision(ctx)
	if err != nil {
		r.logger.Debug("reading store revision failed", "error", err)
		return
	}
	if !ok {
		return
	}

	r.cacheMu.Lock()
	defer r.cacheMu.Unlock()
	if r.revSeen && rev != r.rev {
		r.purgeLocked()
	}
	r.rev, r.revSeen = rev, true
}

func (r *Records) invalidate(d domain.Domain) {
	r.cacheMu.Lock()
	r.gen[d]++
	n := r.cache.Invalidate(prefix(d))
	r.cacheMu.Unlock()
	r.logger.Debug("query cache invalidated", "domain", d, "entries", n)
}

func (r *Records) purge() {
	r.cacheMu.Lock()
	defer r.cacheMu.Unlock()
	r.purgeLocked()
}

func (r *Records) purgeLocked() {
	r.gen[domain.DomainAttendance]++
	r.gen[domain.DomainActivities]++
	r.cache.Purge()
}

func (r *Records) generation(d domain.Domain) uint64 {
	r.cacheMu.Lock()
	defer r.cacheMu.Unlock()
	return r.gen[d]
}

// fill caches data under sig unless d was invalidated after since was read.
func (r *Records) fill(d domain.Domain, since uint64, sig string, data any) bool {
	r.cacheMu.Lock()
	defer r.cacheMu.Unlock()
	if r.gen[d] != since {
		return false
	}
	r.cache.Put(sig, data)
	return true
}

func loadAll[T any](ctx context.Context, st *store.Store, key string) ([]T, error) {
	list, err := store.Get[[]T](ctx, st, key, nil)
	if err != nil {
		return nil, fmt.Errorf("loading %s: %w", key, err)
	}
	return list, nil
}

// QueryAttendance returns attendance records matching f, newest date first.
func (r *Records) QueryAttendance(ctx context.Context, f domain.Filter) ([]domain.AttendanceRecord, error) {
	return query(ctx, r, domain.DomainAttendance, f, filterAttendance)
}

// QueryActivities returns activities matching f, newest first.
func (r *Records) QueryActivities(ctx context.Context, f domain.Filter) ([]domain.ActivityRecord, error) {
	return query(ctx, r, domain.DomainActivities, f, filterActivities)
}

func query[T record[T]](ctx context.Context, r *Records, d domain.Domain, f domain.Filter, keep func([]T, domain.Filter) []T) ([]T, error) {
	f, err := f.Normalize()
	if err != nil {
		return nil, err
	}
	r.syncExternal(ctx)

	sig := signature(d, f)
	if data, ok := r.cache.Get(sig); ok {
		return cloneAll(data.([]T)), nil
	}

	since := r.generation(d)
	all, err := loadAll[T](ctx, r.store, d.StoreKey())
	if err != nil {
		return nil, err
	}
	out := keep(all, f)
	if !r.fill(d, since, sig, cloneAll(out)) {
		r.logger.Debug("query raced a write, result not cached", "domain", d)
	}
	return out, nil
}

// GetActivity returns the activity with id.
func (r *Records) GetActivity(ctx context.Context, id string) (domain.ActivityRecord, error) {
	all, err := loadAll[domain.ActivityRecord](ctx, r.store, domain.KeyActivities)
	if err != nil {
		return domain.ActivityRecord{}, err
	}
	for _, a := range all {
		if a.ID == id {
			return a, nil
		}
	}
	return domain.ActivityRecord{}, fmt.Errorf("activity %s: %w", id, ErrNotFound)
}

// SaveAttendance fills defaults into rec and stores it, replacing any record
// with the same ID.
func (r *Records) SaveAttendance(ctx context.Context, rec domain.AttendanceRecord) (domain.AttendanceRecord, error) {
	now := r.now().UTC()
	if rec.ID == "" {
		rec.ID = uuid.New().String()
	}
	if rec.Status == "" {
		rec.Status = domain.AttendanceCompleted
	}
	if rec.Timestamp.IsZero() {
		rec.Timestamp = now
	}
	if rec.Date == "" {
		rec.Date = domain.DateOf(rec.TimeIn)
		if rec.TimeIn.IsZero() {
			rec.Date = domain.DateOf(rec.Timestamp)
		}
	}
	if rec.TotalHours < 0 {
		return domain.AttendanceRecord{}, &ValidationError{Fields: []string{"totalHours must not be negative"}}
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	all, err := loadAll[domain.AttendanceRecord](ctx, r.store, domain.KeyAttendanceRecords)
	if err != nil {
		return domain.AttendanceRecord{}, err
	}
	all = upsert(all, rec.Clone())
	if err := r.store.Set(ctx, domain.KeyAttendanceRecords, all); err != nil {
		return domain.AttendanceRecord{}, fmt.Errorf("saving attendance %s: %w", rec.ID, err)
	}
	r.invalidate(domain.DomainAttendance)
	return rec, nil
}

// SaveActivity fills defaults into a, validates it and stores it, replacing
// any activity with the same ID.
func (r *Records) SaveActivity(ctx context.Context, a domain.ActivityRecord) (domain.ActivityRecord, error) {
	a, err := r.prepareActivity(a)
	if err != nil {
		return domain.ActivityRecord{}, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	all, err := loadAll[domain.ActivityRecord](ctx, r.store, domain.KeyActivities)
	if err != nil {
		return domain.ActivityRecord{}, err
	}
	if err := r.storeActivities(ctx, upsert(all, a.Clone()), a.ID); err != nil {
		return domain.ActivityRecord{}, err
	}
	return a, nil
}

// UpdateActivity applies edit to the stored activity with id and saves the
// result. Updates are applied one at a time, so concurrent edits of
// different fields all land.
func (r *Records) UpdateActivity(ctx context.Context, id string, edit func(*domain.ActivityRecord)) (domain.ActivityRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	all, err := loadAll[domain.ActivityRecord](ctx, r.store, domain.KeyActivities)
	if err != nil {
		return domain.ActivityRecord{}, err
	}
	idx := -1
	for i := range all {
		if all[i].ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return domain.ActivityRecord{}, fmt.Errorf("activity %s: %w", id, ErrNotFound)
	}

	a := all[idx].Clone()
	edit(&a)
	a.ID = id
	if a, err = r.prepareActivity(a); err != nil {
		return domain.ActivityRecord{}, err
	}
	all[idx] = a.Clone()
	if err := r.storeActivities(ctx, all, id); err != nil {
		return domain.ActivityRecord{}, err
	}
	return a, nil
}

// prepareActivity trims, defaults and validates a.
func (r *Records) prepareActivity(a domain.ActivityRecord) (domain.ActivityRecord, error) {
	a.Title = strings.TrimSpace(a.Title)
	a.Description = strings.TrimSpace(a.Description)
	if err := validateActivity(a); err != nil {
		return domain.ActivityRecord{}, err
	}

	now := r.now().UTC()
	if a.ID == "" {
		a.ID = uuid.New().String()
	}
	if a.Status == "" {
		a.Status = domain.ActivityInProgress
	}
	if a.Timestamp.IsZero() {
		a.Timestamp = now
	}
	if a.Date == "" {
		a.Date = domain.DateOf(a.Timestamp)
	}
	a.Tags = domain.NormalizeTags(a.Tags)
	return a, nil
}

// storeActivities writes all and invalidates cached activity queries.
// Callers hold r.mu.
func (r *Records) storeActivities(ctx context.Context, all []domain.ActivityRecord, id string) error {
	if err := r.store.Set(ctx, domain.KeyActivities, all); err != nil {
		return fmt.Errorf("saving activity %s: %w", id, err)
	}
	r.invalidate(domain.DomainActivities)
	return nil
}

func validateActivity(a domain.ActivityRecord) error {
	var fields []string
	if a.Title == "" {
		fields = append(fields, "title is required")
	}
	if a.Description == "" {
		fields = append(fields, "description is required")
	}
	if a.Status != "" && !domain.ValidActivityStatuses[string(a.Status)] {
		fields = append(fields, fmt.Sprintf("status %q is not one of in-progress, completed", a.Status))
	}
	if len(fields) > 0 {
		return &ValidationError{Fields: fields}
	}
	return nil
}

// Delete removes the record with id from domain d. It reports false, and
// writes nothing, when no such record exists.
func (r *Records) Delete(ctx context.Context, d domain.Domain, id string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var removed bool
	var err error
	switch d {
	case domain.DomainAttendance:
		removed, err = deleteFrom[domain.AttendanceRecord](ctx, r.store, d.StoreKey(), id)
	case domain.DomainActivities:
		removed, err = deleteFrom[domain.ActivityRecord](ctx, r.store, d.StoreKey(), id)
	default:
		return false, fmt.Errorf("deleting from %q: %w", d, ErrUnknownDomain)
	}
	if err != nil || !removed {
		return false, err
	}
	r.invalidate(d)
	return true, nil
}

func deleteFrom[T record[T]](ctx context.Context, st *store.Store, key, id string) (bool, error) {
	all, err := loadAll[T](ctx, st, key)
	if err != nil {
		return false, err
	}
	rest, removed := removeID(all, id)
	if !removed {
		return false, nil
	}
	if err := st.Set(ctx, key, rest); err != nil {
		return false, fmt.Errorf("deleting %s from %s: %w", id, key, err)
	}
	return true, nil
}

// PutAttendance writes recs as a batch, either replacing the collection or
// merging into it by ID with recs winning.
func (r *Records) PutAttendance(ctx context.Context, recs []domain.AttendanceRecord, replace bool) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := putAll(ctx, r.store, domain.KeyAttendanceRecords, cloneAll(recs), replace); err != nil {
		return err
	}
	r.invalidate(domain.DomainAttendance)
	return nil
}

// PutActivities is PutAttendance for activities.
func (r *Records) PutActivities(ctx context.Context, recs []domain.ActivityRecord, replace bool) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := putAll(ctx, r.store, domain.KeyActivities, cloneAll(recs), replace); err != nil {
		return err
	}
	r.invalidate(domain.DomainActivities)
	return nil
}

func putAll[T record[T]](ctx context.Context, st *store.Store, key string, recs []T, replace bool) error {
	if !replace {
		base, err := loadAll[T](ctx, st, key)
		if err != nil {
			return err
		}
		recs = mergeByID(base, recs)
	}
	if recs == nil {
		recs = []T{}
	}
	if err := st.Set(ctx, key, recs); err != nil {
		return fmt.Errorf("writing %s: %w", key, err)
	}
	return nil
}
