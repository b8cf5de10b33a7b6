package profile

import "time"

// Clock-out reminder modes.
const (
	RemindBefore = "before"
	RemindAfter  = "after"
)

// Reminder defaults applied when a profile carries no override.
const (
	DefaultClockInRemindMinutes  = 5
	DefaultClockOutRemindMinutes = 5
)

// Profile holds the per-user attendance automation flags and reminder
// configuration. Reminder minutes govern how wide the actionable window
// around a shift boundary is.
type Profile struct {
	UserID                string
	FullName              string
	AutoCheckinEnabled    bool
	AutoCheckoutEnabled   bool
	ClockInRemindMinutes  int
	ClockOutRemindMode    string // "before" | "after"
	ClockOutRemindMinutes int
	CreatedAt             time.Time
	UpdatedAt             time.Time
}

// ApplyDefaults fills unset reminder fields with the system defaults.
func (p *Profile) ApplyDefaults() {
	if p.ClockInRemindMinutes <= 0 {
		p.ClockInRemindMinutes = DefaultClockInRemindMinutes
	}
	if p.ClockOutRemindMinutes <= 0 {
		p.ClockOutRemindMinutes = DefaultClockOutRemindMinutes
	}
	if p.ClockOutRemindMode != RemindBefore && p.ClockOutRemindMode != RemindAfter {
		p.ClockOutRemindMode = RemindBefore
	}
}
