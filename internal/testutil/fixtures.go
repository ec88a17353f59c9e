package testutil

import (
	"time"

	"github.com/alexanderramin/punchclock/internal/domain"
	"github.com/google/uuid"
)

// Attendance options
type AttendanceOption func(*domain.AttendanceRecord)

func WithAttendanceUser(id, name string) AttendanceOption {
	return func(r *domain.AttendanceRecord) {
		r.UserID = id
		r.UserName = name
	}
}

// WithHours sets a closed session of the given length starting at the
// record's TimeIn.
func WithHours(h float64) AttendanceOption {
	return func(r *domain.AttendanceRecord) {
		out := r.TimeIn.Add(time.Duration(h * float64(time.Hour)))
		r.TimeOut = &out
		r.TotalHours = h
	}
}

func WithTimeIn(t time.Time) AttendanceOption {
	return func(r *domain.AttendanceRecord) {
		r.TimeIn = t
		r.Date = domain.DateOf(t)
		r.Timestamp = t
	}
}

// NewTestAttendance builds an eight hour record on date starting at 09:00 UTC.
func NewTestAttendance(date string, opts ...AttendanceOption) domain.AttendanceRecord {
	day, err := time.Parse(domain.DateLayout, date)
	if err != nil {
		panic(err)
	}
	in := day.Add(9 * time.Hour)
	out := in.Add(8 * time.Hour)
	r := domain.AttendanceRecord{
		ID:         uuid.New().String(),
		Date:       date,
		TimeIn:     in,
		TimeOut:    &out,
		TotalHours: 8,
		UserID:     "user-1",
		UserName:   "Test User",
		Status:     domain.AttendanceCompleted,
		Timestamp:  out,
	}
	for _, opt := range opts {
		opt(&r)
	}
	return r
}

// Activity options
type ActivityOption func(*domain.ActivityRecord)

func WithActivityID(id string) ActivityOption {
	return func(a *domain.ActivityRecord) {
		a.ID = id
	}
}

func WithActivityStatus(s domain.ActivityStatus) ActivityOption {
	return func(a *domain.ActivityRecord) {
		a.Status = s
	}
}

func WithTags(tags ...string) ActivityOption {
	return func(a *domain.ActivityRecord) {
		a.Tags = tags
	}
}

func WithActivityUser(id, name string) ActivityOption {
	return func(a *domain.ActivityRecord) {
		a.UserID = id
		a.UserName = name
	}
}

func WithDescription(d string) ActivityOption {
	return func(a *domain.ActivityRecord) {
		a.Description = d
	}
}

func WithTimestamp(t time.Time) ActivityOption {
	return func(a *domain.ActivityRecord) {
		a.Timestamp = t
		a.Date = domain.DateOf(t)
	}
}

// NewTestActivity builds an in-progress activity dated date.
func NewTestActivity(title, date string, opts ...ActivityOption) domain.ActivityRecord {
	day, err := time.Parse(domain.DateLayout, date)
	if err != nil {
		panic(err)
	}
	a := domain.ActivityRecord{
		ID:          uuid.New().String(),
		Title:       title,
		Description: title + " details",
		Date:        date,
		Status:      domain.ActivityInProgress,
		UserID:      "user-1",
		UserName:    "Test User",
		Timestamp:   day.Add(10 * time.Hour),
	}
	for _, opt := range opts {
		opt(&a)
	}
	return a
}
