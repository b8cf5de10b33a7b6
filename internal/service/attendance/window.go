package attendance

import (
	"github.com/worklife-vn/attendance-backend-go/internal/domain/profile"
	"github.com/worklife-vn/attendance-backend-go/internal/domain/schedule"
	"github.com/worklife-vn/attendance-backend-go/internal/pkg/timeutil"
)

// Fixed policy constants. The late ceiling keeps auto check-in trying for
// very late arrivals instead of silently giving up.
const (
	checkInLateCeilingMinutes = 600 // 10h after shift start
	checkOutCeilingMinutes    = 480 // 8h after shift end
)

// inCheckInWindow reports whether nowMin falls inside the actionable
// check-in window for a shift starting at startMin. The window opens
// remindMin minutes before the start and closes 600 minutes (exclusive)
// after it.
func inCheckInWindow(startMin, remindMin, nowMin int) bool {
	diff := startMin - nowMin
	return diff <= remindMin && diff > -checkInLateCeilingMinutes
}

// inCheckOutWindow reports whether nowMin falls inside the actionable
// check-out window for a shift ending at endMin. Mode "before" opens the
// window remindMin minutes before the end; mode "after" opens it at the
// end. Either way it stays open up to 480 minutes past the end.
func inCheckOutWindow(endMin, remindMin int, mode string, nowMin int) bool {
	diff := nowMin - endMin
	if mode == profile.RemindAfter {
		return diff >= 0 && diff <= max(remindMin, checkOutCeilingMinutes)
	}
	return diff >= -remindMin && diff <= checkOutCeilingMinutes
}

// resolveCheckInShift returns the first shift, in the supplied order, whose
// check-in window contains nowMin, or nil.
func resolveCheckInShift(shifts []schedule.Shift, remindMin, nowMin int) *schedule.Shift {
	for i := range shifts {
		startMin := timeutil.MinutesSinceMidnight(shifts[i].StartTime)
		if inCheckInWindow(startMin, remindMin, nowMin) {
			return &shifts[i]
		}
	}
	return nil
}

// resolveCheckOutShift returns the first shift, in the supplied order, whose
// check-out window contains nowMin, or nil. Scanning stops at the first
// match: with overlapping eligible shifts only the first is ever evaluated
// per invocation.
func resolveCheckOutShift(shifts []schedule.Shift, remindMin int, mode string, nowMin int) *schedule.Shift {
	for i := range shifts {
		endMin := timeutil.MinutesSinceMidnight(shifts[i].EndTime)
		if inCheckOutWindow(endMin, remindMin, mode, nowMin) {
			return &shifts[i]
		}
	}
	return nil
}
