package domain

// Domain names one of the record collections. It is also the cache
// invalidation scope.
type Domain string

const (
	DomainAttendance Domain = "attendance"
	DomainActivities Domain = "activities"
)

// Logical store keys.
const (
	KeyAttendanceRecords = "attendanceRecords"
	KeyActivities        = "activitiesData"
	KeyIsTimedIn         = "isTimedIn"
	KeyCurrentTimeIn     = "currentTimeIn"
	KeyUserData          = "userData"
	KeyCurrentView       = "currentView"
)

// ExportKeys lists every logical key carried by an export bundle.
var ExportKeys = []string{
	KeyAttendanceRecords,
	KeyActivities,
	KeyIsTimedIn,
	KeyCurrentTimeIn,
	KeyUserData,
	KeyCurrentView,
}

// DurableKeys lists the logical keys quota cleanup must never remove.
var DurableKeys = []string{
	KeyAttendanceRecords,
	KeyActivities,
	KeyIsTimedIn,
	KeyCurrentTimeIn,
	KeyUserData,
}

// StoreKey returns the logical key holding the domain's records.
func (d Domain) StoreKey() string {
	switch d {
	case DomainAttendance:
		return KeyAttendanceRecords
	case DomainActivities:
		return KeyActivities
	}
	return ""
}

// Valid reports whether d is a known domain.
func (d Domain) Valid() bool {
	return d == DomainAttendance || d == DomainActivities
}

type AttendanceStatus string

const (
	AttendanceCompleted AttendanceStatus = "completed"
)

type ActivityStatus string

const (
	ActivityInProgress ActivityStatus = "in-progress"
	ActivityCompleted  ActivityStatus = "completed"
)

// ValidActivityStatuses is the canonical set of accepted activity statuses.
var ValidActivityStatuses = map[string]bool{
	string(ActivityInProgress): true,
	string(ActivityCompleted):  true,
}

type TrackingState string

const (
	StateReady   TrackingState = "READY"
	StateWorking TrackingState = "WORKING"
)
