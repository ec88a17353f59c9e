package service

import (
	"context"
	"io"
	"time"

	"github.com/alexanderramin/punchclock/internal/domain"
	"github.com/alexanderramin/punchclock/internal/importer"
	"github.com/alexanderramin/punchclock/internal/stats"
)

// Warning is a non-error signal that a call was misused and changed nothing.
type Warning string

const (
	WarnAlreadyTimedIn Warning = "already timed in"
	WarnNotTimedIn     Warning = "not timed in"
)

// Transition is the outcome of TimeIn or TimeOut.
type Transition struct {
	State   domain.TrackingState
	Warning Warning
	// Since is the open session's start, when WORKING.
	Since *time.Time
	// Record is the attendance record written by a successful TimeOut.
	Record *domain.AttendanceRecord
}

// Changed reports whether the call moved the state machine.
func (t Transition) Changed() bool { return t.Warning == "" }

type TimeTrackingService interface {
	TimeIn(ctx context.Context) (Transition, error)
	TimeOut(ctx context.Context) (Transition, error)
	State(ctx context.Context) (domain.UserSession, error)
	Elapsed(ctx context.Context) (time.Duration, bool, error)
}

// PeriodRequest selects the range of a statistics report.
type PeriodRequest struct {
	Period stats.Period
	Start  string
	End    string
}

type AttendanceStats struct {
	TotalHours   float64 `json:"totalHours"`
	DaysWorked   int     `json:"daysWorked"`
	AverageHours float64 `json:"averageHours"`
	RecordCount  int     `json:"recordCount"`
}

type ActivityStats struct {
	Total          int     `json:"total"`
	Completed      int     `json:"completed"`
	InProgress     int     `json:"inProgress"`
	CompletionRate float64 `json:"completionRate"`
}

type ProductivityStats struct {
	HoursPerDay      float64 `json:"hoursPerDay"`
	ActivitiesPerDay float64 `json:"activitiesPerDay"`
	Efficiency       int     `json:"efficiency"`
}

// UserStats is a statistics report for one user over one period.
type UserStats struct {
	UserID       string            `json:"userId"`
	Period       stats.Period      `json:"period"`
	Range        stats.DateRange   `json:"range"`
	Attendance   AttendanceStats   `json:"attendance"`
	Activities   ActivityStats     `json:"activities"`
	Productivity ProductivityStats `json:"productivity"`
}

// Dashboard summarizes today and the current week.
type Dashboard struct {
	Date            string               `json:"date"`
	TodayHours      float64              `json:"todayHours"`
	WeekHours       float64              `json:"weekHours"`
	WeeklyTarget    float64              `json:"weeklyTarget"`
	WeeklyProgress  float64              `json:"weeklyProgress"`
	TodayActivities stats.ActivityCounts `json:"todayActivities"`
}

type StatsService interface {
	GetUserStats(ctx context.Context, userID string, req PeriodRequest) (*UserStats, error)
	Dashboard(ctx context.Context, userID string) (*Dashboard, error)
}

// ImportMode selects how imported data combines with stored data.
type ImportMode string

const (
	ImportMerge     ImportMode = "merge"
	ImportOverwrite ImportMode = "overwrite"
)

// ImportResult holds the outcome of a data import.
type ImportResult struct {
	Mode       ImportMode
	Attendance int
	Activities int
	Keys       []string
}

type DataService interface {
	Export(ctx context.Context) (*importer.Bundle, error)
	WriteExport(ctx context.Context, w io.Writer) error
	Import(ctx context.Context, b *importer.Bundle, mode ImportMode) (*ImportResult, error)
	ImportFile(ctx context.Context, path string, mode ImportMode) (*ImportResult, error)
}

type ProfileService interface {
	Current(ctx context.Context) (domain.UserProfile, error)
	Update(ctx context.Context, p domain.UserProfile) (domain.UserProfile, error)
}

type MaintenanceService interface {
	Keys(ctx context.Context) ([]string, error)
	Sweep(ctx context.Context) (int, error)
	Clear(ctx context.Context) error
}

// ActivityService is the record surface the CLI uses for activities.
type ActivityService interface {
	Add(ctx context.Context, a domain.ActivityRecord) (domain.ActivityRecord, error)
	Edit(ctx context.Context, id string, edit func(*domain.ActivityRecord)) (domain.ActivityRecord, error)
	Complete(ctx context.Context, id string) (domain.ActivityRecord, error)
	List(ctx context.Context, f domain.Filter) ([]domain.ActivityRecord, error)
	Remove(ctx context.Context, id string) (bool, error)
}
