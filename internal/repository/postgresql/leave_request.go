package postgresql

import (
	"context"
	"fmt"
	"time"

	"github.com/worklife-vn/attendance-backend-go/internal/domain/leave"
	"github.com/worklife-vn/attendance-backend-go/internal/pkg/database"
)

type leaveRequestRepository struct {
	db *database.DB
}

func NewLeaveRequestRepository(db *database.DB) leave.LeaveRequestRepository {
	return &leaveRequestRepository{db: db}
}

// HasApprovedLeave implements leave.LeaveRequestRepository.
func (r *leaveRequestRepository) HasApprovedLeave(ctx context.Context, userID string, date time.Time) (bool, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT EXISTS (
			SELECT 1 FROM leave_requests
			WHERE user_id = $1
			  AND status = $2
			  AND start_date <= $3
			  AND end_date >= $3
		)
	`

	var exists bool
	if err := q.QueryRow(ctx, query, userID, leave.StatusApproved, date).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check approved leave: %w", err)
	}

	return exists, nil
}
