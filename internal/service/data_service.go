package service

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"time"

	"github.com/alexanderramin/punchclock/internal/domain"
	"github.com/alexanderramin/punchclock/internal/importer"
	"github.com/alexanderramin/punchclock/internal/repository"
	"github.com/alexanderramin/punchclock/internal/store"
)

type dataService struct {
	store    *store.Store
	records  repository.RecordRepo
	now      func() time.Time
	observer UseCaseObserver
}

// NewDataService exports and imports the stored data as a bundle.
// Collections go through records so its caches stay coherent.
func NewDataService(
	st *store.Store,
	records repository.RecordRepo,
	now func() time.Time,
	observers ...UseCaseObserver,
) DataService {
	if now == nil {
		now = time.Now
	}
	return &dataService{
		store:    st,
		records:  records,
		now:      now,
		observer: useCaseObserverOrNoop(observers),
	}
}

func (s *dataService) Export(ctx context.Context) (b *importer.Bundle, err error) {
	defer observe(ctx, s.observer, "export", map[string]any{}, &err)()

	b = &importer.Bundle{
		Data:       make(map[string]json.RawMessage, len(domain.ExportKeys)),
		ExportDate: s.now().UTC(),
		Version:    importer.BundleVersion,
	}
	for _, key := range domain.ExportKeys {
		raw, ok, err := s.store.Lookup(ctx, key)
		if err != nil {
			return nil, fmt.Errorf("exporting %s: %w", key, err)
		}
		if ok {
			b.Data[key] = raw
		}
	}
	return b, nil
}

func (s *dataService) WriteExport(ctx context.Context, w io.Writer) error {
	b, err := s.Export(ctx)
	if err != nil {
		return err
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(b)
}

func (s *dataService) ImportFile(ctx context.Context, path string, mode ImportMode) (*ImportResult, error) {
	b, err := importer.LoadBundle(path)
	if err != nil {
		return nil, fmt.Errorf("loading import file: %w", err)
	}
	return s.Import(ctx, b, mode)
}

// Import applies b. Merge unions collections by ID with imported records
// winning and overwrites scalars. Overwrite replaces every exported key,
// removing those the bundle lacks.
func (s *dataService) Import(ctx context.Context, b *importer.Bundle, mode ImportMode) (res *ImportResult, err error) {
	fields := map[string]any{"mode": string(mode)}
	defer observe(ctx, s.observer, "import", fields, &err)()

	if mode == "" {
		mode = ImportMerge
	}
	if mode != ImportMerge && mode != ImportOverwrite {
		return nil, &repository.ValidationError{Fields: []string{fmt.Sprintf("mode %q is not one of merge, overwrite", mode)}}
	}
	if errs := importer.ValidateBundle(b); len(errs) > 0 {
		return nil, importer.ValidationErrors(errs)
	}

	contents, err := importer.Convert(b)
	if err != nil {
		return nil, fmt.Errorf("converting export bundle: %w", err)
	}

	replace := mode == ImportOverwrite
	res = &ImportResult{Mode: mode}

	if contents.HasAttendance() || replace {
		if err = s.records.PutAttendance(ctx, contents.Attendance, replace); err != nil {
			return nil, err
		}
		res.Attendance = len(contents.Attendance)
		res.Keys = append(res.Keys, domain.KeyAttendanceRecords)
	}
	if contents.HasActivities() || replace {
		if err = s.records.PutActivities(ctx, contents.Activities, replace); err != nil {
			return nil, err
		}
		res.Activities = len(contents.Activities)
		res.Keys = append(res.Keys, domain.KeyActivities)
	}

	for _, key := range domain.ExportKeys {
		if key == domain.KeyAttendanceRecords || key == domain.KeyActivities {
			continue
		}
		raw, ok := contents.Scalars[key]
		switch {
		case ok:
			if err = s.store.Set(ctx, key, raw); err != nil {
				return nil, fmt.Errorf("importing %s: %w", key, err)
			}
			res.Keys = append(res.Keys, key)
		case replace:
			if err = s.store.Remove(ctx, key); err != nil {
				return nil, fmt.Errorf("clearing %s: %w", key, err)
			}
		}
	}
	sort.Strings(res.Keys)
	fields["attendance"] = res.Attendance
	fields["activities"] = res.Activities
	return res, nil
}
