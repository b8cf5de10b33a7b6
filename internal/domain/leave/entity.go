package leave

import "time"

// Request statuses.
const (
	StatusPending  = "pending"
	StatusApproved = "approved"
	StatusRejected = "rejected"
)

// LeaveRequest is read-only here: an approved request for today suppresses
// attendance automation entirely.
type LeaveRequest struct {
	ID        string
	UserID    string
	StartDate time.Time
	EndDate   time.Time
	Status    string
	Reason    *string
	CreatedAt time.Time
	UpdatedAt time.Time
}
