package attendance

import (
	"github.com/worklife-vn/attendance-backend-go/internal/domain/attendance"
	"github.com/worklife-vn/attendance-backend-go/internal/domain/worksettings"
	"github.com/worklife-vn/attendance-backend-go/internal/pkg/timeutil"
)

// computeLateness grades a check-in against the shift's target start.
// Arrivals within the grace period (when enabled) are demoted back to
// present with zero minutes; anything later keeps the full late span
// counted from the scheduled start.
func computeLateness(nowMin, startMin int, graceEnabled bool, graceMinutes int) (status string, lateMinutes int) {
	if nowMin <= startMin {
		return attendance.StatusPresent, 0
	}
	lateMinutes = nowMin - startMin
	if graceEnabled && lateMinutes <= graceMinutes {
		return attendance.StatusPresent, 0
	}
	return attendance.StatusLate, lateMinutes
}

// OvertimeCeilingHours bounds how much overtime a day can carry: the span
// from the day's shift end to the first shift start of the next calendar
// day, floored to 0.5h granularity with a 0.5h minimum. A non-positive raw
// span means the next shift starts past midnight, so a day wraps. Days with
// no following shift fall back to the 16h default.
func OvertimeCeilingHours(endClock string, nextDayStartClock *string) float64 {
	if nextDayStartClock == nil {
		return worksettings.DefaultOvertimeCeilingHours
	}

	minutes := timeutil.MinutesSinceMidnight(*nextDayStartClock) - timeutil.MinutesSinceMidnight(endClock)
	if minutes <= 0 {
		minutes += 24 * 60
	}

	hours := float64(minutes/30) * 0.5
	if hours < 0.5 {
		hours = 0.5
	}
	return hours
}
