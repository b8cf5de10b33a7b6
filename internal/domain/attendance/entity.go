package attendance

import (
	"time"
)

// Session statuses.
const (
	StatusPresent = "present"
	StatusLate    = "late"
)

// Verification methods recorded on a session.
const (
	MethodOfficeWifi = "office_wifi"
	MethodGPS        = "gps"
)

// Directions a decision pass can run in.
const (
	DirectionCheckIn  = "check_in"
	DirectionCheckOut = "check_out"
)

// Session is one clock-in/out pair for a user on a day. A session with
// CheckInTime set and CheckOutTime nil is "open"; at most one open session
// may exist per user at any time.
type Session struct {
	ID              string
	UserID          string
	Date            time.Time
	ShiftID         *string
	CheckInTime     *time.Time
	CheckOutTime    *time.Time
	Status          string
	LateMinutes     int
	Method          string
	Note            *string
	OvertimeMinutes *int
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// Open reports whether the session has been checked in but not out.
func (s Session) Open() bool {
	return s.CheckInTime != nil && s.CheckOutTime == nil
}
