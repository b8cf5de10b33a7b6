package overtime

import "time"

const (
	StatusPending  = "pending"
	StatusApproved = "approved"
	StatusRejected = "rejected"
)

// Request is an overtime request for one calendar day. Hours may never
// exceed the ceiling bounded by the next day's first shift.
type Request struct {
	ID        string
	UserID    string
	Date      time.Time
	Hours     float64
	Reason    string
	Status    string
	CreatedAt time.Time
	UpdatedAt time.Time
}
