package repository

import (
	"sort"

	"github.com/alexanderramin/punchclock/internal/domain"
)

type record[T any] interface {
	RecordID() string
	Clone() T
}

func cloneAll[T record[T]](in []T) []T {
	if in == nil {
		return nil
	}
	out := make([]T, len(in))
	for i, r := range in {
		out[i] = r.Clone()
	}
	return out
}

// upsert replaces the record with r's ID in place, or prepends r.
func upsert[T record[T]](list []T, r T) []T {
	for i := range list {
		if list[i].RecordID() == r.RecordID() {
			list[i] = r
			return list
		}
	}
	return append([]T{r}, list...)
}

// removeID drops the record with id and reports whether it was present.
func removeID[T record[T]](list []T, id string) ([]T, bool) {
	for i := range list {
		if list[i].RecordID() == id {
			return append(list[:i:i], list[i+1:]...), true
		}
	}
	return list, false
}

// mergeByID unions base and incoming by ID. Incoming records win and keep
// their position at the front.
func mergeByID[T record[T]](base, incoming []T) []T {
	seen := make(map[string]bool, len(incoming))
	out := make([]T, 0, len(base)+len(incoming))
	for _, r := range incoming {
		if seen[r.RecordID()] {
			continue
		}
		seen[r.RecordID()] = true
		out = append(out, r)
	}
	for _, r := range base {
		if !seen[r.RecordID()] {
			out = append(out, r)
		}
	}
	return out
}

func filterAttendance(list []domain.AttendanceRecord, f domain.Filter) []domain.AttendanceRecord {
	out := make([]domain.AttendanceRecord, 0, len(list))
	for _, r := range list {
		if f.UserID != "" && r.UserID != f.UserID {
			continue
		}
		if !domain.InRange(r.Date, f.StartDate, f.EndDate) {
			continue
		}
		if f.Status != "" && string(r.Status) != f.Status {
			continue
		}
		out = append(out, r)
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Date > out[j].Date })
	return out
}

func filterActivities(list []domain.ActivityRecord, f domain.Filter) []domain.ActivityRecord {
	out := make([]domain.ActivityRecord, 0, len(list))
	for _, a := range list {
		if f.UserID != "" && a.UserID != f.UserID {
			continue
		}
		if !domain.InRange(a.Date, f.StartDate, f.EndDate) {
			continue
		}
		if f.Status != "" && string(a.Status) != f.Status {
			continue
		}
		if len(f.Tags) > 0 && !a.HasAnyTag(f.Tags) {
			continue
		}
		if f.Search != "" && !a.Matches(f.Search) {
			continue
		}
		out = append(out, a)
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Timestamp.After(out[j].Timestamp) })
	return out
}
