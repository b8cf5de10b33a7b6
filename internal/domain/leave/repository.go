package leave

import (
	"context"
	"time"
)

type LeaveRequestRepository interface {
	// HasApprovedLeave reports whether an approved leave request covers the
	// given date for the user.
	HasApprovedLeave(ctx context.Context, userID string, date time.Time) (bool, error)
}
