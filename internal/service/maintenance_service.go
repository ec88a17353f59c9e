package service

import (
	"context"

	"github.com/alexanderramin/punchclock/internal/store"
)

type maintenanceService struct {
	store    *store.Store
	observer UseCaseObserver
}

func NewMaintenanceService(st *store.Store, observers ...UseCaseObserver) MaintenanceService {
	return &maintenanceService{store: st, observer: useCaseObserverOrNoop(observers)}
}

func (s *maintenanceService) Keys(ctx context.Context) ([]string, error) {
	return s.store.Keys(ctx)
}

func (s *maintenanceService) Sweep(ctx context.Context) (n int, err error) {
	fields := map[string]any{}
	defer observe(ctx, s.observer, "sweep", fields, &err)()
	n, err = s.store.Sweep(ctx)
	fields["removed"] = n
	return n, err
}

func (s *maintenanceService) Clear(ctx context.Context) (err error) {
	defer observe(ctx, s.observer, "clear", map[string]any{}, &err)()
	return s.store.Clear(ctx)
}
