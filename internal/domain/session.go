package domain

import "time"

// UserSession is the open clock-in state, kept outside the attendance list
// until it is closed.
type UserSession struct {
	IsTimedIn     bool
	CurrentTimeIn *time.Time
}

// State maps the session onto the tracking state machine. A timestamp is
// authoritative: a session is WORKING exactly when CurrentTimeIn is set.
func (s UserSession) State() TrackingState {
	if s.CurrentTimeIn != nil {
		return StateWorking
	}
	return StateReady
}
