package attendance

import "errors"

// Attendance domain errors
var (
	ErrNotCheckedIn     = errors.New("no open session to check out")
	ErrSessionNotFound  = errors.New("attendance session not found")
	ErrDuplicateSession = errors.New("an open session already exists")
)
