package schedule

import (
	"context"
)

// ScheduleService exposes read-only shift lookups for the client.
type ScheduleService interface {
	// TodaySchedule returns the authenticated user's shifts for today.
	TodaySchedule(ctx context.Context) (DayScheduleResponse, error)

	// NextWorkingDaySchedule returns the shifts for the next working day
	// after today, skipping configured off-days.
	NextWorkingDaySchedule(ctx context.Context) (DayScheduleResponse, error)
}
