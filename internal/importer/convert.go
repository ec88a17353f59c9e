package importer

import (
	"encoding/json"
	"fmt"

	"github.com/alexanderramin/punchclock/internal/domain"
)

// Contents is a bundle decoded into domain values. Collections are nil when
// the bundle does not carry them; Scalars holds the remaining keys verbatim.
type Contents struct {
	Attendance []domain.AttendanceRecord
	Activities []domain.ActivityRecord
	Scalars    map[string]json.RawMessage
}

// HasAttendance reports whether the bundle carried attendance records.
func (c *Contents) HasAttendance() bool { return c.Attendance != nil }

// HasActivities reports whether the bundle carried activities.
func (c *Contents) HasActivities() bool { return c.Activities != nil }

// Convert decodes a validated bundle. Call ValidateBundle first; Convert
// assumes the bundle is valid.
func Convert(b *Bundle) (*Contents, error) {
	c := &Contents{Scalars: make(map[string]json.RawMessage)}
	for key, raw := range b.Data {
		switch key {
		case domain.KeyAttendanceRecords:
			recs := []domain.AttendanceRecord{}
			if err := json.Unmarshal(raw, &recs); err != nil {
				return nil, fmt.Errorf("decoding %s: %w", key, err)
			}
			c.Attendance = recs
		case domain.KeyActivities:
			recs := []domain.ActivityRecord{}
			if err := json.Unmarshal(raw, &recs); err != nil {
				return nil, fmt.Errorf("decoding %s: %w", key, err)
			}
			for i := range recs {
				recs[i].Tags = domain.NormalizeTags(recs[i].Tags)
				if recs[i].Status == "" {
					recs[i].Status = domain.ActivityInProgress
				}
				if recs[i].Date == "" && !recs[i].Timestamp.IsZero() {
					recs[i].Date = domain.DateOf(recs[i].Timestamp)
				}
			}
			c.Activities = recs
		default:
			c.Scalars[key] = raw
		}
	}
	return c, nil
}
