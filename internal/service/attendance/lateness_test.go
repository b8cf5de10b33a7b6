package attendance

import (
	"testing"

	"github.com/worklife-vn/attendance-backend-go/internal/domain/attendance"
)

func TestComputeLateness(t *testing.T) {
	const start = 540 // 09:00

	cases := []struct {
		name         string
		now          int
		graceEnabled bool
		graceMinutes int
		wantStatus   string
		wantLate     int
	}{
		{"early arrival", start - 10, true, 5, attendance.StatusPresent, 0},
		{"exactly on time", start, true, 5, attendance.StatusPresent, 0},
		{"inside grace demotes to present", start + 5, true, 5, attendance.StatusPresent, 0},
		{"one past grace keeps full span", start + 6, true, 5, attendance.StatusLate, 6},
		{"grace disabled counts from minute one", start + 1, false, 5, attendance.StatusLate, 1},
		{"grace disabled, inside would-be grace", start + 5, false, 5, attendance.StatusLate, 5},
		{"well past grace", start + 47, true, 5, attendance.StatusLate, 47},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			status, late := computeLateness(c.now, start, c.graceEnabled, c.graceMinutes)
			if status != c.wantStatus || late != c.wantLate {
				t.Errorf("computeLateness(%d, %d, %v, %d) = (%s, %d), want (%s, %d)",
					c.now, start, c.graceEnabled, c.graceMinutes, status, late, c.wantStatus, c.wantLate)
			}
		})
	}
}

func TestOvertimeCeilingHours(t *testing.T) {
	ptr := func(s string) *string { return &s }

	cases := []struct {
		name      string
		end       string
		nextStart *string
		want      float64
	}{
		{"no next-day shift falls back to 16h", "18:00", nil, 16.0},
		{"18:00 to 08:00 next day", "18:00", ptr("08:00"), 14.0},
		{"22:00 to 06:00 wraps midnight", "22:00", ptr("06:00"), 8.0},
		{"next start equals end wraps a full day", "09:00", ptr("09:00"), 24.0},
		{"granularity floors to half hours", "18:00", ptr("08:20"), 14.0},
		{"tiny gap clamps to half hour minimum", "23:50", ptr("00:05"), 0.5},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got := OvertimeCeilingHours(c.end, c.nextStart)
			if got != c.want {
				t.Errorf("OvertimeCeilingHours(%q, %v) = %v, want %v", c.end, c.nextStart, got, c.want)
			}
		})
	}
}
