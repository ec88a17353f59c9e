package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/alexanderramin/punchclock/internal/domain"
	"github.com/alexanderramin/punchclock/internal/repository"
	"github.com/alexanderramin/punchclock/internal/stats"
	"github.com/alexanderramin/punchclock/internal/store"
	"github.com/google/uuid"
)

type timeTrackingService struct {
	store    *store.Store
	records  repository.AttendanceRepo
	profiles ProfileService
	now      func() time.Time
	observer UseCaseObserver

	// mu serializes transitions within the process.
	mu sync.Mutex
}

// NewTimeTrackingService creates the READY/WORKING state machine. The session
// lives in the store, so every call sees the state left by earlier runs.
func NewTimeTrackingService(
	st *store.Store,
	records repository.AttendanceRepo,
	profiles ProfileService,
	now func() time.Time,
	observers ...UseCaseObserver,
) TimeTrackingService {
	if now == nil {
		now = time.Now
	}
	return &timeTrackingService{
		store:    st,
		records:  records,
		profiles: profiles,
		now:      now,
		observer: useCaseObserverOrNoop(observers),
	}
}

func (s *timeTrackingService) State(ctx context.Context) (domain.UserSession, error) {
	timedIn, err := store.Get(ctx, s.store, domain.KeyIsTimedIn, false)
	if err != nil {
		return domain.UserSession{}, fmt.Errorf("reading session flag: %w", err)
	}
	since, err := store.Get[*time.Time](ctx, s.store, domain.KeyCurrentTimeIn, nil)
	if err != nil {
		return domain.UserSession{}, fmt.Errorf("reading session start: %w", err)
	}
	// The start timestamp is authoritative; a stray flag without one is READY.
	return domain.UserSession{IsTimedIn: timedIn && since != nil, CurrentTimeIn: since}, nil
}

func (s *timeTrackingService) TimeIn(ctx context.Context) (res Transition, err error) {
	fields := map[string]any{}
	defer observe(ctx, s.observer, "time-in", fields, &err)()

	s.mu.Lock()
	defer s.mu.Unlock()

	session, err := s.State(ctx)
	if err != nil {
		return Transition{}, err
	}
	if session.State() == domain.StateWorking {
		fields["warning"] = string(WarnAlreadyTimedIn)
		return Transition{State: domain.StateWorking, Warning: WarnAlreadyTimedIn, Since: session.CurrentTimeIn}, nil
	}

	now := s.now().UTC()
	if err = s.store.Set(ctx, domain.KeyCurrentTimeIn, now); err != nil {
		return Transition{}, fmt.Errorf("saving session start: %w", err)
	}
	if err = s.store.Set(ctx, domain.KeyIsTimedIn, true); err != nil {
		return Transition{}, fmt.Errorf("saving session flag: %w", err)
	}
	return Transition{State: domain.StateWorking, Since: &now}, nil
}

func (s *timeTrackingService) TimeOut(ctx context.Context) (res Transition, err error) {
	fields := map[string]any{}
	defer observe(ctx, s.observer, "time-out", fields, &err)()

	s.mu.Lock()
	defer s.mu.Unlock()

	session, err := s.State(ctx)
	if err != nil {
		return Transition{}, err
	}
	if session.State() == domain.StateReady {
		fields["warning"] = string(WarnNotTimedIn)
		return Transition{State: domain.StateReady, Warning: WarnNotTimedIn}, nil
	}

	profile, err := s.profiles.Current(ctx)
	if err != nil {
		return Transition{}, err
	}

	in := session.CurrentTimeIn.UTC()
	out := s.now().UTC()
	d := stats.CalculateDuration(in, out)
	rec, err := s.records.SaveAttendance(ctx, domain.AttendanceRecord{
		ID:         sessionRecordID(profile.ID, in),
		Date:       domain.DateOf(in),
		TimeIn:     in,
		TimeOut:    &out,
		TotalHours: d.TotalHours,
		UserID:     profile.ID,
		UserName:   profile.Name,
		Status:     domain.AttendanceCompleted,
		Timestamp:  out,
	})
	if err != nil {
		return Transition{}, err
	}
	fields["total_hours"] = rec.TotalHours

	if err = s.store.Set(ctx, domain.KeyIsTimedIn, false); err != nil {
		return Transition{}, fmt.Errorf("saving session flag: %w", err)
	}
	if err = s.store.Remove(ctx, domain.KeyCurrentTimeIn); err != nil {
		return Transition{}, fmt.Errorf("clearing session start: %w", err)
	}
	return Transition{State: domain.StateReady, Record: &rec}, nil
}

// sessionRecordID derives the attendance ID from the session start, so a
// time-out retried after clearing the session failed replaces its own
// record instead of adding a second one.
func sessionRecordID(userID string, in time.Time) string {
	return uuid.NewSHA1(uuid.NameSpaceOID, []byte(userID+"@"+in.Format(time.RFC3339Nano))).String()
}

// Elapsed returns how long the open session has run. ok is false when READY.
func (s *timeTrackingService) Elapsed(ctx context.Context) (time.Duration, bool, error) {
	session, err := s.State(ctx)
	if err != nil || session.State() != domain.StateWorking {
		return 0, false, err
	}
	d := s.now().Sub(*session.CurrentTimeIn)
	if d < 0 {
		d = 0
	}
	return d, true, nil
}
