package importer

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/punchclock/internal/domain"
)

var knownKeys = func() map[string]bool {
	m := make(map[string]bool, len(domain.ExportKeys))
	for _, k := range domain.ExportKeys {
		m[k] = true
	}
	return m
}()

// ValidationErrors is every problem found in a bundle.
type ValidationErrors []error

func (v ValidationErrors) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "import validation failed (%d errors):", len(v))
	for _, e := range v {
		b.WriteString("\n  - ")
		b.WriteString(e.Error())
	}
	return b.String()
}

// ValidateBundle checks the bundle for errors before conversion.
// Returns a slice of all validation errors found.
func ValidateBundle(b *Bundle) []error {
	var errs []error

	if b.Version == "" {
		errs = append(errs, fmt.Errorf("version is required"))
	} else if major, _, _ := strings.Cut(b.Version, "."); major != "1" {
		errs = append(errs, fmt.Errorf("version %q is not supported", b.Version))
	}
	if b.Data == nil {
		errs = append(errs, fmt.Errorf("data is required"))
		return errs
	}

	for key, raw := range b.Data {
		if !knownKeys[key] {
			errs = append(errs, fmt.Errorf("data.%s: unknown key", key))
			continue
		}
		errs = append(errs, validateValue(key, raw)...)
	}
	return errs
}

func validateValue(key string, raw json.RawMessage) []error {
	switch key {
	case domain.KeyAttendanceRecords:
		return validateAttendance(raw)
	case domain.KeyActivities:
		return validateActivities(raw)
	case domain.KeyIsTimedIn:
		var v bool
		if err := json.Unmarshal(raw, &v); err != nil {
			return []error{fmt.Errorf("data.%s: must be a boolean", key)}
		}
	case domain.KeyCurrentTimeIn:
		var v *string
		if err := json.Unmarshal(raw, &v); err != nil {
			return []error{fmt.Errorf("data.%s: must be a timestamp or null", key)}
		}
		if v != nil {
			if _, err := time.Parse(time.RFC3339, *v); err != nil {
				return []error{fmt.Errorf("data.%s: invalid timestamp %q", key, *v)}
			}
		}
	case domain.KeyUserData:
		var v map[string]any
		if err := json.Unmarshal(raw, &v); err != nil || v == nil {
			return []error{fmt.Errorf("data.%s: must be an object", key)}
		}
	case domain.KeyCurrentView:
		var v string
		if err := json.Unmarshal(raw, &v); err != nil {
			return []error{fmt.Errorf("data.%s: must be a string", key)}
		}
	}
	return nil
}

func validateAttendance(raw json.RawMessage) []error {
	var recs []attendanceImport
	if err := json.Unmarshal(raw, &recs); err != nil {
		return []error{fmt.Errorf("data.%s: must be an array of records", domain.KeyAttendanceRecords)}
	}

	var errs []error
	seen := make(map[string]bool, len(recs))
	for i, r := range recs {
		prefix := fmt.Sprintf("data.%s[%d]", domain.KeyAttendanceRecords, i)
		if r.ID == "" {
			errs = append(errs, fmt.Errorf("%s.id is required", prefix))
		} else if seen[r.ID] {
			errs = append(errs, fmt.Errorf("%s.id: duplicate id %q", prefix, r.ID))
		}
		seen[r.ID] = true
		if _, err := time.Parse(domain.DateLayout, r.Date); err != nil {
			errs = append(errs, fmt.Errorf("%s.date: invalid date format %q (expected YYYY-MM-DD)", prefix, r.Date))
		}
		if _, err := time.Parse(time.RFC3339, r.TimeIn); err != nil {
			errs = append(errs, fmt.Errorf("%s.timeIn: invalid timestamp %q", prefix, r.TimeIn))
		}
		if r.TotalHours != nil && *r.TotalHours < 0 {
			errs = append(errs, fmt.Errorf("%s.totalHours must not be negative", prefix))
		}
	}
	return errs
}

func validateActivities(raw json.RawMessage) []error {
	var recs []activityImport
	if err := json.Unmarshal(raw, &recs); err != nil {
		return []error{fmt.Errorf("data.%s: must be an array of records", domain.KeyActivities)}
	}

	var errs []error
	seen := make(map[string]bool, len(recs))
	for i, a := range recs {
		prefix := fmt.Sprintf("data.%s[%d]", domain.KeyActivities, i)
		if a.ID == "" {
			errs = append(errs, fmt.Errorf("%s.id is required", prefix))
		} else if seen[a.ID] {
			errs = append(errs, fmt.Errorf("%s.id: duplicate id %q", prefix, a.ID))
		}
		seen[a.ID] = true
		if strings.TrimSpace(a.Title) == "" {
			errs = append(errs, fmt.Errorf("%s.title is required", prefix))
		}
		if strings.TrimSpace(a.Description) == "" {
			errs = append(errs, fmt.Errorf("%s.description is required", prefix))
		}
		if a.Date != "" {
			if _, err := time.Parse(domain.DateLayout, a.Date); err != nil {
				errs = append(errs, fmt.Errorf("%s.date: invalid date format %q (expected YYYY-MM-DD)", prefix, a.Date))
			}
		}
		if a.Status != "" && !domain.ValidActivityStatuses[a.Status] {
			errs = append(errs, fmt.Errorf("%s.status: invalid value %q", prefix, a.Status))
		}
	}
	return errs
}
