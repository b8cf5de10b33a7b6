package schedule

import (
	"context"
	"time"
)

// ShiftRepository defines read access to scheduled shifts. Shifts are
// created by schedule management, which is outside this service; the
// attendance engine only reads them.
type ShiftRepository interface {
	// ListByUserAndDate returns all shifts for a user on a calendar date,
	// ordered by start time ascending. The order matters: the window
	// resolver takes the first actionable shift.
	ListByUserAndDate(ctx context.Context, userID string, date time.Time) ([]Shift, error)

	// FirstShiftOfDay returns the earliest shift of the day, or nil when
	// the day has none. Used to bound the overtime ceiling.
	FirstShiftOfDay(ctx context.Context, userID string, date time.Time) (*Shift, error)
}
