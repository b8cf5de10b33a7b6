package attendance

import (
	"context"
	"time"
)

// SessionRepository defines data access for attendance sessions.
type SessionRepository interface {
	// Create inserts a new session (check-in), transactionally verifying
	// that the user has no session on the date yet. A same-day session or
	// a conflicting concurrent insert (guarded by a partial unique index
	// on open sessions) returns ErrDuplicateSession.
	Create(ctx context.Context, session Session) (Session, error)

	// GetOpenSession returns the user's open session, or ErrNotCheckedIn
	// when none exists.
	GetOpenSession(ctx context.Context, userID string) (Session, error)

	// HasCheckedInToday reports whether any session exists for the user on
	// the given local date.
	HasCheckedInToday(ctx context.Context, userID string, date time.Time) (bool, error)

	// CloseSession stamps the check-out time and method on an open session.
	// Returns ErrSessionNotFound when the session was already closed by a
	// concurrent caller.
	CloseSession(ctx context.Context, sessionID string, checkOut time.Time, method string) error

	// UpdateOvertimeMinutes stores the recalculated overtime span for a
	// closed session.
	UpdateOvertimeMinutes(ctx context.Context, sessionID string, minutes int) error

	// ListByUser pages the user's session history, newest first.
	ListByUser(ctx context.Context, userID string, filter MySessionsFilter) ([]Session, int64, error)

	// ListStaleOpenSessions returns open sessions older than the given
	// number of days, for the auto-close job.
	ListStaleOpenSessions(ctx context.Context, olderThanDays int) ([]Session, error)
}
