package service

import (
	"context"
	"testing"
	"time"

	"github.com/alexanderramin/punchclock/internal/cache"
	"github.com/alexanderramin/punchclock/internal/domain"
	"github.com/alexanderramin/punchclock/internal/repository"
	"github.com/alexanderramin/punchclock/internal/store"
	"github.com/alexanderramin/punchclock/internal/testutil"
)

type testEnv struct {
	clock    *testutil.Clock
	store    *store.Store
	records  *repository.Records
	profiles ProfileService
}

// Monday 2024-01-15 08:00 UTC.
var envStart = time.Date(2024, 1, 15, 8, 0, 0, 0, time.UTC)

func setupEnv(t *testing.T) *testEnv {
	t.Helper()
	return setupEnvOn(t, store.NewSQLiteBackend(testutil.NewTestDB(t), 0))
}

// setupEnvOn builds the services over backend.
func setupEnvOn(t *testing.T, backend store.Backend) *testEnv {
	t.Helper()
	clock := testutil.NewClock(envStart)
	st := store.New(backend, store.Options{
		Now:    clock.Now,
		Logger: testutil.DiscardLogger(),
		Retain: domain.DurableKeys,
	})
	records := repository.NewRecords(st, repository.Options{
		Cache:  cache.New(cache.DefaultTTL, 0, clock.Now),
		Now:    clock.Now,
		Logger: testutil.DiscardLogger(),
	})
	t.Cleanup(records.Close)
	profiles := NewProfileService(repository.NewProfileStore(st), domain.UserProfile{
		ID:                "user-1",
		Name:              "Test User",
		WeeklyTargetHours: 40,
	})
	return &testEnv{clock: clock, store: st, records: records, profiles: profiles}
}

type recordingObserver struct {
	events []UseCaseEvent
}

func (o *recordingObserver) ObserveUseCase(_ context.Context, e UseCaseEvent) {
	o.events = append(o.events, e)
}
