package timeutil

import (
	"strconv"
	"strings"
	"time"
)

// Zone is the fixed civil timezone all window math runs in. The whole
// deployment is single-region (Vietnam, UTC+7); do not swap this for
// per-branch IANA lookups.
var Zone = time.FixedZone("Asia/Ho_Chi_Minh", 7*60*60)

// Sunday=0 .. Saturday=6, matching time.Weekday.
var DefaultOffDays = map[int]bool{0: true, 6: true}

// MinutesSinceMidnight parses "HH:MM" to minutes 0-1439. Input must be a
// well-formed zero-padded clock string; callers validate at the edges.
func MinutesSinceMidnight(clock string) int {
	h, m, _ := strings.Cut(clock, ":")
	hours, _ := strconv.Atoi(h)
	mins, _ := strconv.Atoi(m)
	return hours*60 + mins
}

// MinutesOfDay returns t's local clock as minutes since midnight.
func MinutesOfDay(t time.Time) int {
	t = t.In(Zone)
	return t.Hour()*60 + t.Minute()
}

// Today returns the current calendar date at midnight local time.
func Today() time.Time {
	now := time.Now().In(Zone)
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, Zone)
}

// IsOffDay reports whether t falls on a configured off-day.
func IsOffDay(t time.Time, offDays map[int]bool) bool {
	return offDays[int(t.In(Zone).Weekday())]
}

// NextWorkingDay advances from the given date one day at a time, skipping
// off-days. Bounded to 7 advances so a config that marks every day off
// yields the 7th candidate instead of looping.
func NextWorkingDay(from time.Time, offDays map[int]bool) time.Time {
	day := from.In(Zone)
	for i := 0; i < 7; i++ {
		day = day.AddDate(0, 0, 1)
		if !offDays[int(day.Weekday())] {
			break
		}
	}
	return day
}
