package schedule

import (
	"time"
)

// Shift is one scheduled work interval for a user on a calendar day.
// Multiple shifts may exist per user per day; the attendance engine
// evaluates each independently and never mutates them.
type Shift struct {
	ID        string
	UserID    string
	Date      time.Time
	StartTime string // "HH:MM" local civil time
	EndTime   string // "HH:MM" local civil time
	Title     string
	CreatedAt time.Time
	UpdatedAt time.Time
}
