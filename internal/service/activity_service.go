package service

import (
	"context"

	"github.com/alexanderramin/punchclock/internal/domain"
	"github.com/alexanderramin/punchclock/internal/repository"
)

type activityService struct {
	records  repository.RecordRepo
	profiles ProfileService
	observer UseCaseObserver
}

func NewActivityService(records repository.RecordRepo, profiles ProfileService, observers ...UseCaseObserver) ActivityService {
	return &activityService{records: records, profiles: profiles, observer: useCaseObserverOrNoop(observers)}
}

// Add saves a new activity owned by the current user unless a is already
// attributed.
func (s *activityService) Add(ctx context.Context, a domain.ActivityRecord) (out domain.ActivityRecord, err error) {
	defer observe(ctx, s.observer, "add-activity", map[string]any{"title": a.Title}, &err)()

	if a.UserID == "" {
		p, err := s.profiles.Current(ctx)
		if err != nil {
			return domain.ActivityRecord{}, err
		}
		a.UserID, a.UserName = p.ID, domain.CoalesceStr(a.UserName, p.Name)
	}
	a.ID = ""
	return s.records.SaveActivity(ctx, a)
}

func (s *activityService) Edit(ctx context.Context, id string, edit func(*domain.ActivityRecord)) (out domain.ActivityRecord, err error) {
	defer observe(ctx, s.observer, "edit-activity", map[string]any{"id": id}, &err)()

	return s.records.UpdateActivity(ctx, id, edit)
}

func (s *activityService) Complete(ctx context.Context, id string) (domain.ActivityRecord, error) {
	return s.Edit(ctx, id, func(a *domain.ActivityRecord) {
		a.Status = domain.ActivityCompleted
	})
}

func (s *activityService) List(ctx context.Context, f domain.Filter) ([]domain.ActivityRecord, error) {
	return s.records.QueryActivities(ctx, f)
}

func (s *activityService) Remove(ctx context.Context, id string) (removed bool, err error) {
	defer observe(ctx, s.observer, "remove-activity", map[string]any{"id": id}, &err)()
	return s.records.Delete(ctx, domain.DomainActivities, id)
}
