package domain

// DefaultWeeklyTargetHours is the weekly hours goal when none is set.
const DefaultWeeklyTargetHours = 40

// UserProfile identifies the local user. Stored under the userData key.
type UserProfile struct {
	ID                string  `json:"id"`
	Name              string  `json:"name"`
	WeeklyTargetHours float64 `json:"weeklyTargetHours,omitempty"`
}

// WeeklyTarget returns the configured target, or the default.
func (p UserProfile) WeeklyTarget() float64 {
	if p.WeeklyTargetHours > 0 {
		return p.WeeklyTargetHours
	}
	return DefaultWeeklyTargetHours
}
