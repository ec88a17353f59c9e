package domain

import "time"

// AttendanceRecord is one completed clock-in to clock-out session.
// Records are created at clock-out and never edited.
type AttendanceRecord struct {
	ID         string           `json:"id"`
	Date       string           `json:"date"`
	TimeIn     time.Time        `json:"timeIn"`
	TimeOut    *time.Time       `json:"timeOut,omitempty"`
	TotalHours float64          `json:"totalHours"`
	UserID     string           `json:"userId"`
	UserName   string           `json:"userName"`
	Status     AttendanceStatus `json:"status"`
	Timestamp  time.Time        `json:"timestamp"`
}

func (r AttendanceRecord) RecordID() string { return r.ID }

// Clone returns a deep copy.
func (r AttendanceRecord) Clone() AttendanceRecord {
	if r.TimeOut != nil {
		out := *r.TimeOut
		r.TimeOut = &out
	}
	return r
}

// Open reports whether the session has not been closed.
func (r AttendanceRecord) Open() bool { return r.TimeOut == nil }
