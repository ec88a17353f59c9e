package repository

import (
	"context"

	"github.com/alexanderramin/punchclock/internal/domain"
)

type AttendanceRepo interface {
	QueryAttendance(ctx context.Context, f domain.Filter) ([]domain.AttendanceRecord, error)
	SaveAttendance(ctx context.Context, r domain.AttendanceRecord) (domain.AttendanceRecord, error)
	PutAttendance(ctx context.Context, recs []domain.AttendanceRecord, replace bool) error
}

type ActivityRepo interface {
	QueryActivities(ctx context.Context, f domain.Filter) ([]domain.ActivityRecord, error)
	GetActivity(ctx context.Context, id string) (domain.ActivityRecord, error)
	SaveActivity(ctx context.Context, a domain.ActivityRecord) (domain.ActivityRecord, error)
	UpdateActivity(ctx context.Context, id string, edit func(*domain.ActivityRecord)) (domain.ActivityRecord, error)
	PutActivities(ctx context.Context, recs []domain.ActivityRecord, replace bool) error
}

// RecordRepo is the full record surface over both domains.
type RecordRepo interface {
	AttendanceRepo
	ActivityRepo
	Delete(ctx context.Context, d domain.Domain, id string) (bool, error)
}

type UserProfileRepo interface {
	Get(ctx context.Context) (domain.UserProfile, error)
	Upsert(ctx context.Context, p domain.UserProfile) error
}
