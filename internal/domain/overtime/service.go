package overtime

import (
	"context"
	"time"
)

// OvertimeService validates and files overtime requests against the
// ceiling bounded by the next day's schedule.
type OvertimeService interface {
	// Submit files an overtime request; requests above the ceiling are
	// rejected with ErrExceedsCeiling, never clamped.
	Submit(ctx context.Context, req SubmitRequest) (RequestResponse, error)

	// CeilingForDate returns the maximum permissible overtime hours for
	// the user on a date.
	CeilingForDate(ctx context.Context, userID string, date time.Time) (float64, error)
}
