package service

import (
	"context"
	"fmt"
	"time"

	"github.com/alexanderramin/punchclock/internal/domain"
	"github.com/alexanderramin/punchclock/internal/repository"
	"github.com/alexanderramin/punchclock/internal/stats"
)

type statsService struct {
	records  repository.RecordRepo
	profiles ProfileService
	now      func() time.Time
	observer UseCaseObserver
}

func NewStatsService(
	records repository.RecordRepo,
	profiles ProfileService,
	now func() time.Time,
	observers ...UseCaseObserver,
) StatsService {
	if now == nil {
		now = time.Now
	}
	return &statsService{
		records:  records,
		profiles: profiles,
		now:      now,
		observer: useCaseObserverOrNoop(observers),
	}
}

func (s *statsService) GetUserStats(ctx context.Context, userID string, req PeriodRequest) (out *UserStats, err error) {
	fields := map[string]any{"period": string(req.Period)}
	defer observe(ctx, s.observer, "user-stats", fields, &err)()

	period := req.Period
	if period == "" {
		period = stats.PeriodWeek
	}
	rng, err := stats.ResolvePeriod(period, s.now(), req.Start, req.End)
	if err != nil {
		return nil, err
	}

	f := domain.Filter{UserID: userID, StartDate: rng.Start, EndDate: rng.End}
	attendance, err := s.records.QueryAttendance(ctx, f)
	if err != nil {
		return nil, fmt.Errorf("loading attendance: %w", err)
	}
	activities, err := s.records.QueryActivities(ctx, f)
	if err != nil {
		return nil, fmt.Errorf("loading activities: %w", err)
	}

	total := stats.TotalHours(attendance)
	daysWorked := stats.DaysWorked(attendance)
	counts := stats.CountActivities(activities)
	days := rng.Days()

	out = &UserStats{
		UserID: userID,
		Period: period,
		Range:  rng,
		Attendance: AttendanceStats{
			TotalHours:  total,
			DaysWorked:  daysWorked,
			RecordCount: len(attendance),
		},
		Activities: ActivityStats{
			Total:          counts.Total,
			Completed:      counts.Completed,
			InProgress:     counts.InProgress,
			CompletionRate: counts.CompletionRate(),
		},
		Productivity: ProductivityStats{
			Efficiency: stats.Efficiency(total, counts.Completed),
		},
	}
	if daysWorked > 0 {
		out.Attendance.AverageHours = stats.Round2(total / float64(daysWorked))
	}
	if days > 0 {
		out.Productivity.HoursPerDay = stats.Round2(total / float64(days))
		out.Productivity.ActivitiesPerDay = stats.Round2(float64(counts.Total) / float64(days))
	}
	fields["records"] = len(attendance)
	fields["activities"] = len(activities)
	return out, nil
}

func (s *statsService) Dashboard(ctx context.Context, userID string) (out *Dashboard, err error) {
	defer observe(ctx, s.observer, "dashboard", map[string]any{}, &err)()

	now := s.now()
	today := domain.DateOf(now)
	week, err := stats.ResolvePeriod(stats.PeriodWeek, now, "", "")
	if err != nil {
		return nil, err
	}

	profile, err := s.profiles.Current(ctx)
	if err != nil {
		return nil, err
	}

	attendance, err := s.records.QueryAttendance(ctx, domain.Filter{UserID: userID, StartDate: week.Start, EndDate: week.End})
	if err != nil {
		return nil, fmt.Errorf("loading attendance: %w", err)
	}
	activities, err := s.records.QueryActivities(ctx, domain.Filter{UserID: userID, StartDate: today, EndDate: today})
	if err != nil {
		return nil, fmt.Errorf("loading activities: %w", err)
	}

	weekHours := stats.RangeTotal(attendance, week.Start, week.End)
	target := profile.WeeklyTarget()
	return &Dashboard{
		Date:            today,
		TodayHours:      stats.DailyTotal(attendance, today),
		WeekHours:       weekHours,
		WeeklyTarget:    target,
		WeeklyProgress:  stats.Round2(stats.WeeklyProgress(weekHours, target)),
		TodayActivities: stats.CountActivities(activities),
	}, nil
}
