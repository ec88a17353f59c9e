package repository

import (
	"context"
	"database/sql"
	"fmt"
	"path/filepath"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/alexanderramin/punchclock/internal/cache"
	"github.com/alexanderramin/punchclock/internal/db"
	"github.com/alexanderramin/punchclock/internal/domain"
	"github.com/alexanderramin/punchclock/internal/store"
	"github.com/alexanderramin/punchclock/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testStart = time.Date(2024, 3, 4, 12, 0, 0, 0, time.UTC)

func newTestStoreOn(database *sql.DB, hub *store.Hub, clock *testutil.Clock) *store.Store {
	return store.New(store.NewSQLiteBackend(database, 0), store.Options{
		Hub:    hub,
		Now:    clock.Now,
		Logger: testutil.DiscardLogger(),
	})
}

func newTestRecords(t *testing.T, st *store.Store, clock *testutil.Clock) *Records {
	t.Helper()
	r := NewRecords(st, Options{
		Cache:  cache.New(cache.DefaultTTL, 0, clock.Now),
		Now:    clock.Now,
		Logger: testutil.DiscardLogger(),
	})
	t.Cleanup(r.Close)
	return r
}

// opaqueBackend exposes only the Backend methods, hiding Revision.
type opaqueBackend struct{ store.Backend }

// stallingBackend completes the first read of key, then holds its result
// until release is closed, returning what it read.
type stallingBackend struct {
	store.Backend
	key     string
	stalled atomic.Bool
	reached chan struct{}
	release chan struct{}
}

func (b *stallingBackend) Read(ctx context.Context, key string) (string, bool, error) {
	payload, ok, err := b.Backend.Read(ctx, key)
	if key == b.key && b.stalled.CompareAndSwap(false, true) {
		close(b.reached)
		<-b.release
	}
	return payload, ok, err
}

func setupRecords(t *testing.T) (*Records, *store.Store, *testutil.Clock) {
	t.Helper()
	clock := testutil.NewClock(testStart)
	st := newTestStoreOn(testutil.NewTestDB(t), nil, clock)
	return newTestRecords(t, st, clock), st, clock
}

func TestQueryAttendance_DateRangeInclusive(t *testing.T) {
	repo, _, _ := setupRecords(t)
	ctx := context.Background()

	for _, d := range []string{"2024-01-01", "2024-01-02", "2024-01-03"} {
		_, err := repo.SaveAttendance(ctx, testutil.NewTestAttendance(d))
		require.NoError(t, err)
	}

	got, err := repo.QueryAttendance(ctx, domain.Filter{StartDate: "2024-01-02", EndDate: "2024-01-03"})
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "2024-01-03", got[0].Date, "newest date first")
	assert.Equal(t, "2024-01-02", got[1].Date)
}

func TestQueryAttendance_FiltersByUser(t *testing.T) {
	repo, _, _ := setupRecords(t)
	ctx := context.Background()

	_, err := repo.SaveAttendance(ctx, testutil.NewTestAttendance("2024-01-01"))
	require.NoError(t, err)
	_, err = repo.SaveAttendance(ctx, testutil.NewTestAttendance("2024-01-01", testutil.WithAttendanceUser("user-2", "Other")))
	require.NoError(t, err)

	got, err := repo.QueryAttendance(ctx, domain.Filter{UserID: "user-2"})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "Other", got[0].UserName)
}

func TestSaveAttendance_Defaults(t *testing.T) {
	repo, _, _ := setupRecords(t)
	in := time.Date(2024, 2, 1, 8, 0, 0, 0, time.UTC)

	saved, err := repo.SaveAttendance(context.Background(), domain.AttendanceRecord{TimeIn: in, TotalHours: 1})
	require.NoError(t, err)
	assert.NotEmpty(t, saved.ID)
	assert.Equal(t, domain.AttendanceCompleted, saved.Status)
	assert.Equal(t, "2024-02-01", saved.Date)
	assert.Equal(t, testStart, saved.Timestamp)
}

func TestSaveActivity_DefaultsAndPrepend(t *testing.T) {
	repo, st, _ := setupRecords(t)
	ctx := context.Background()

	first, err := repo.SaveActivity(ctx, domain.ActivityRecord{Title: "One", Description: "first"})
	require.NoError(t, err)
	assert.Equal(t, domain.ActivityInProgress, first.Status)
	assert.Equal(t, "2024-03-04", first.Date)

	second, err := repo.SaveActivity(ctx, domain.ActivityRecord{Title: "Two", Description: "second"})
	require.NoError(t, err)

	stored, err := store.Get[[]domain.ActivityRecord](ctx, st, domain.KeyActivities, nil)
	require.NoError(t, err)
	require.Len(t, stored, 2)
	assert.Equal(t, second.ID, stored[0].ID, "new records are prepended")
}

func TestSaveActivity_ReplacesInPlace(t *testing.T) {
	repo, st, _ := setupRecords(t)
	ctx := context.Background()

	a, err := repo.SaveActivity(ctx, testutil.NewTestActivity("Draft", "2024-03-01"))
	require.NoError(t, err)
	_, err = repo.SaveActivity(ctx, testutil.NewTestActivity("Other", "2024-03-02"))
	require.NoError(t, err)

	a.Status = domain.ActivityCompleted
	_, err = repo.SaveActivity(ctx, a)
	require.NoError(t, err)

	stored, err := store.Get[[]domain.ActivityRecord](ctx, st, domain.KeyActivities, nil)
	require.NoError(t, err)
	require.Len(t, stored, 2)
	assert.Equal(t, a.ID, stored[1].ID, "position is kept")
	assert.Equal(t, domain.ActivityCompleted, stored[1].Status)
}

func TestSaveActivity_Validation(t *testing.T) {
	repo, _, _ := setupRecords(t)

	_, err := repo.SaveActivity(context.Background(), domain.ActivityRecord{Title: "  ", Status: "blocked"})
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Len(t, verr.Fields, 3)
}

func TestQueryActivities_FilterChain(t *testing.T) {
	repo, _, _ := setupRecords(t)
	ctx := context.Background()

	seed := []domain.ActivityRecord{
		testutil.NewTestActivity("Quarterly report", "2024-03-01", testutil.WithTags("finance")),
		testutil.NewTestActivity("Deploy", "2024-03-02", testutil.WithTags("ops"), testutil.WithActivityStatus(domain.ActivityCompleted)),
		testutil.NewTestActivity("Report review", "2024-03-03", testutil.WithTags("finance", "ops")),
	}
	for _, a := range seed {
		_, err := repo.SaveActivity(ctx, a)
		require.NoError(t, err)
	}

	got, err := repo.QueryActivities(ctx, domain.Filter{Tags: []string{"finance"}, Search: "REPORT"})
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "Report review", got[0].Title, "newest timestamp first")

	got, err = repo.QueryActivities(ctx, domain.Filter{Status: string(domain.ActivityCompleted)})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "Deploy", got[0].Title)

	got, err = repo.QueryActivities(ctx, domain.Filter{StartDate: "2024-03-02", EndDate: "2024-03-02"})
	require.NoError(t, err)
	require.Len(t, got, 1)
}

func TestQuery_InvalidFilter(t *testing.T) {
	repo, _, _ := setupRecords(t)
	_, err := repo.QueryActivities(context.Background(), domain.Filter{EndDate: "soon"})
	require.Error(t, err)
}

func TestDelete_MissingIDReturnsFalseWithoutWriting(t *testing.T) {
	repo, st, _ := setupRecords(t)
	ctx := context.Background()

	removed, err := repo.Delete(ctx, domain.DomainActivities, "missing-id")
	require.NoError(t, err)
	assert.False(t, removed)

	keys, err := st.Keys(ctx)
	require.NoError(t, err)
	assert.Empty(t, keys)
}

func TestDelete_RemovesAndInvalidates(t *testing.T) {
	repo, _, _ := setupRecords(t)
	ctx := context.Background()

	rec, err := repo.SaveAttendance(ctx, testutil.NewTestAttendance("2024-01-01"))
	require.NoError(t, err)
	got, err := repo.QueryAttendance(ctx, domain.Filter{})
	require.NoError(t, err)
	require.Len(t, got, 1)

	removed, err := repo.Delete(ctx, domain.DomainAttendance, rec.ID)
	require.NoError(t, err)
	assert.True(t, removed)

	got, err = repo.QueryAttendance(ctx, domain.Filter{})
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestDelete_UnknownDomain(t *testing.T) {
	repo, _, _ := setupRecords(t)
	_, err := repo.Delete(context.Background(), domain.Domain("projects"), "x")
	assert.ErrorIs(t, err, ErrUnknownDomain)
}

func TestQuery_CacheCoherentAfterSave(t *testing.T) {
	repo, _, _ := setupRecords(t)
	ctx := context.Background()

	got, err := repo.QueryActivities(ctx, domain.Filter{})
	require.NoError(t, err)
	assert.Empty(t, got)

	_, err = repo.SaveActivity(ctx, testutil.NewTestActivity("New", "2024-03-04"))
	require.NoError(t, err)

	got, err = repo.QueryActivities(ctx, domain.Filter{})
	require.NoError(t, err)
	assert.Len(t, got, 1)
}

func TestQuery_ReturnsIsolatedCopies(t *testing.T) {
	repo, _, _ := setupRecords(t)
	ctx := context.Background()

	_, err := repo.SaveActivity(ctx, testutil.NewTestActivity("Tagged", "2024-03-04", testutil.WithTags("a")))
	require.NoError(t, err)

	first, err := repo.QueryActivities(ctx, domain.Filter{})
	require.NoError(t, err)
	first[0].Tags[0] = "mutated"
	first[0].Title = "mutated"

	second, err := repo.QueryActivities(ctx, domain.Filter{})
	require.NoError(t, err)
	assert.Equal(t, "a", second[0].Tags[0])
	assert.Equal(t, "Tagged", second[0].Title)
}

func TestQuery_CacheExpiresAfterTTL(t *testing.T) {
	clock := testutil.NewClock(testStart)
	database := testutil.NewTestDB(t)
	// Without revisions and on its own hub, repo only learns of silent's
	// writes when its cache expires.
	repo := newTestRecords(t, store.New(opaqueBackend{store.NewSQLiteBackend(database, 0)}, store.Options{
		Now:    clock.Now,
		Logger: testutil.DiscardLogger(),
	}), clock)
	silent := newTestStoreOn(database, nil, clock)
	ctx := context.Background()

	got, err := repo.QueryAttendance(ctx, domain.Filter{})
	require.NoError(t, err)
	require.Empty(t, got)

	require.NoError(t, silent.Set(ctx, domain.KeyAttendanceRecords, []domain.AttendanceRecord{testutil.NewTestAttendance("2024-01-01")}))

	got, err = repo.QueryAttendance(ctx, domain.Filter{})
	require.NoError(t, err)
	assert.Empty(t, got, "still served from cache")

	clock.Advance(cache.DefaultTTL)
	got, err = repo.QueryAttendance(ctx, domain.Filter{})
	require.NoError(t, err)
	assert.Len(t, got, 1)
}

func TestQuery_InvalidatedByOtherStore(t *testing.T) {
	clock := testutil.NewClock(testStart)
	database := testutil.NewTestDB(t)
	hub := store.NewHub()
	repoA := newTestRecords(t, newTestStoreOn(database, hub, clock), clock)
	repoB := newTestRecords(t, newTestStoreOn(database, hub, clock), clock)
	ctx := context.Background()

	got, err := repoA.QueryActivities(ctx, domain.Filter{})
	require.NoError(t, err)
	require.Empty(t, got)

	_, err = repoB.SaveActivity(ctx, testutil.NewTestActivity("From B", "2024-03-04"))
	require.NoError(t, err)

	got, err = repoA.QueryActivities(ctx, domain.Filter{})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "From B", got[0].Title)
}

func TestGetActivity_NotFound(t *testing.T) {
	repo, _, _ := setupRecords(t)
	_, err := repo.GetActivity(context.Background(), "nope")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestPutActivities_MergeAndReplace(t *testing.T) {
	repo, _, _ := setupRecords(t)
	ctx := context.Background()

	kept, err := repo.SaveActivity(ctx, testutil.NewTestActivity("Kept", "2024-03-01"))
	require.NoError(t, err)
	shared, err := repo.SaveActivity(ctx, testutil.NewTestActivity("Old title", "2024-03-02"))
	require.NoError(t, err)

	shared.Title = "Imported title"
	extra := testutil.NewTestActivity("Extra", "2024-03-03")
	require.NoError(t, repo.PutActivities(ctx, []domain.ActivityRecord{shared, extra}, false))

	got, err := repo.QueryActivities(ctx, domain.Filter{})
	require.NoError(t, err)
	require.Len(t, got, 3)
	updated, err := repo.GetActivity(ctx, shared.ID)
	require.NoError(t, err)
	assert.Equal(t, "Imported title", updated.Title)
	_, err = repo.GetActivity(ctx, kept.ID)
	require.NoError(t, err)

	require.NoError(t, repo.PutActivities(ctx, []domain.ActivityRecord{extra}, true))
	got, err = repo.QueryActivities(ctx, domain.Filter{})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, extra.ID, got[0].ID)
}

func TestQuery_SeesCommitsFromAnotherProcess(t *testing.T) {
	clock := testutil.NewClock(testStart)
	path := filepath.Join(t.TempDir(), "punchclock.db")
	openRecords := func() *Records {
		database, err := db.OpenDB(path)
		require.NoError(t, err)
		t.Cleanup(func() { database.Close() })
		return newTestRecords(t, newTestStoreOn(database, nil, clock), clock)
	}
	repoA, repoB := openRecords(), openRecords()
	ctx := context.Background()

	got, err := repoB.QueryAttendance(ctx, domain.Filter{})
	require.NoError(t, err)
	require.Empty(t, got)

	saved, err := repoA.SaveAttendance(ctx, testutil.NewTestAttendance("2024-03-04"))
	require.NoError(t, err)

	got, err = repoB.QueryAttendance(ctx, domain.Filter{})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, saved.ID, got[0].ID)

	_, err = repoA.Delete(ctx, domain.DomainAttendance, saved.ID)
	require.NoError(t, err)
	got, err = repoB.QueryAttendance(ctx, domain.Filter{})
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestQuery_DoesNotCacheResultReadBeforeConcurrentSave(t *testing.T) {
	clock := testutil.NewClock(testStart)
	backend := &stallingBackend{
		Backend: opaqueBackend{store.NewSQLiteBackend(testutil.NewTestDB(t), 0)},
		key:     store.DefaultNamespace + domain.KeyActivities,
		reached: make(chan struct{}),
		release: make(chan struct{}),
	}
	repo := newTestRecords(t, store.New(backend, store.Options{Now: clock.Now, Logger: testutil.DiscardLogger()}), clock)
	ctx := context.Background()

	type result struct {
		acts []domain.ActivityRecord
		err  error
	}
	done := make(chan result, 1)
	go func() {
		acts, err := repo.QueryActivities(ctx, domain.Filter{})
		done <- result{acts, err}
	}()

	<-backend.reached
	_, err := repo.SaveActivity(ctx, testutil.NewTestActivity("Saved meanwhile", "2024-03-04"))
	require.NoError(t, err)
	close(backend.release)

	stale := <-done
	require.NoError(t, stale.err)
	assert.Empty(t, stale.acts, "the racing query returns what it read")

	got, err := repo.QueryActivities(ctx, domain.Filter{})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "Saved meanwhile", got[0].Title)
}

func TestUpdateActivity_ConcurrentEditsAllApply(t *testing.T) {
	repo, _, _ := setupRecords(t)
	ctx := context.Background()

	a, err := repo.SaveActivity(ctx, testutil.NewTestActivity("Shared", "2024-03-04", testutil.WithTags()))
	require.NoError(t, err)

	const editors = 8
	var wg sync.WaitGroup
	for i := 0; i < editors; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, err := repo.UpdateActivity(ctx, a.ID, func(r *domain.ActivityRecord) {
				r.Tags = append(r.Tags, fmt.Sprintf("tag-%d", i))
			})
			assert.NoError(t, err)
		}(i)
	}
	wg.Wait()

	got, err := repo.GetActivity(ctx, a.ID)
	require.NoError(t, err)
	assert.Len(t, got.Tags, editors)
}

func TestUpdateActivity_NotFoundAndValidation(t *testing.T) {
	repo, _, _ := setupRecords(t)
	ctx := context.Background()

	_, err := repo.UpdateActivity(ctx, "missing", func(*domain.ActivityRecord) {})
	assert.ErrorIs(t, err, ErrNotFound)

	a, err := repo.SaveActivity(ctx, testutil.NewTestActivity("Keep me", "2024-03-04"))
	require.NoError(t, err)
	_, err = repo.UpdateActivity(ctx, a.ID, func(r *domain.ActivityRecord) { r.Title = "  " })
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)

	got, err := repo.GetActivity(ctx, a.ID)
	require.NoError(t, err)
	assert.Equal(t, "Keep me", got.Title, "a rejected edit writes nothing")
}
