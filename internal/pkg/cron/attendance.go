package cron

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/worklife-vn/attendance-backend-go/internal/domain/attendance"
	"github.com/worklife-vn/attendance-backend-go/internal/domain/schedule"
	"github.com/worklife-vn/attendance-backend-go/internal/pkg/timeutil"
)

// AttendanceJobs closes sessions that were never checked out, e.g. a user
// whose client stopped polling after they left the office.
type AttendanceJobs struct {
	sessionRepo attendance.SessionRepository
	shiftRepo   schedule.ShiftRepository
}

func NewAttendanceJobs(
	sessionRepo attendance.SessionRepository,
	shiftRepo schedule.ShiftRepository,
) *AttendanceJobs {
	return &AttendanceJobs{
		sessionRepo: sessionRepo,
		shiftRepo:   shiftRepo,
	}
}

func (j *AttendanceJobs) RegisterJobs(scheduler *Scheduler) {
	scheduler.AddJob("auto_close_stale_sessions", 1*time.Hour, j.AutoCloseStaleSessions)
}

// AutoCloseStaleSessions closes open sessions older than two days at their
// scheduled shift end, or at check-in plus eight hours when the shift is
// unknown.
func (j *AttendanceJobs) AutoCloseStaleSessions(ctx context.Context) error {
	staleSessions, err := j.sessionRepo.ListStaleOpenSessions(ctx, 2)
	if err != nil {
		return fmt.Errorf("failed to list stale open sessions: %w", err)
	}

	if len(staleSessions) == 0 {
		return nil
	}

	closedCount := 0
	for _, session := range staleSessions {
		closeAt := j.resolveCloseTime(ctx, session)

		if err := j.sessionRepo.CloseSession(ctx, session.ID, closeAt, "auto_close"); err != nil {
			if errors.Is(err, attendance.ErrSessionNotFound) {
				continue // closed by someone else in the meantime
			}
			slog.Error("Cron: failed to auto-close session", "session_id", session.ID, "error", err)
			continue
		}
		closedCount++
	}

	slog.Info("Cron: auto-closed stale sessions", "count", closedCount, "stale", len(staleSessions))
	return nil
}

func (j *AttendanceJobs) resolveCloseTime(ctx context.Context, session attendance.Session) time.Time {
	shifts, err := j.shiftRepo.ListByUserAndDate(ctx, session.UserID, session.Date)
	if err == nil && len(shifts) > 0 {
		last := shifts[len(shifts)-1]
		endMin := timeutil.MinutesSinceMidnight(last.EndTime)
		d := session.Date.In(timeutil.Zone)
		return time.Date(d.Year(), d.Month(), d.Day(), endMin/60, endMin%60, 0, 0, timeutil.Zone)
	}
	if session.CheckInTime != nil {
		return session.CheckInTime.Add(8 * time.Hour)
	}
	return session.Date.Add(24 * time.Hour)
}
