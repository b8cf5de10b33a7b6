package postgresql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/worklife-vn/attendance-backend-go/internal/domain/schedule"
	"github.com/worklife-vn/attendance-backend-go/internal/pkg/database"
)

type shiftRepository struct {
	db *database.DB
}

func NewShiftRepository(db *database.DB) schedule.ShiftRepository {
	return &shiftRepository{db: db}
}

// ListByUserAndDate implements schedule.ShiftRepository. The start_time
// ordering is load-bearing: the window resolver takes the first actionable
// shift in this order.
func (r *shiftRepository) ListByUserAndDate(ctx context.Context, userID string, date time.Time) ([]schedule.Shift, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, user_id, date, start_time, end_time, title, created_at, updated_at
		FROM shifts
		WHERE user_id = $1
		  AND date = $2
		ORDER BY start_time ASC
	`

	rows, err := q.Query(ctx, query, userID, date)
	if err != nil {
		return nil, fmt.Errorf("failed to list shifts: %w", err)
	}
	defer rows.Close()

	var shifts []schedule.Shift
	for rows.Next() {
		var s schedule.Shift
		if err := rows.Scan(&s.ID, &s.UserID, &s.Date, &s.StartTime, &s.EndTime, &s.Title, &s.CreatedAt, &s.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan shift: %w", err)
		}
		shifts = append(shifts, s)
	}

	return shifts, rows.Err()
}

// FirstShiftOfDay implements schedule.ShiftRepository.
func (r *shiftRepository) FirstShiftOfDay(ctx context.Context, userID string, date time.Time) (*schedule.Shift, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, user_id, date, start_time, end_time, title, created_at, updated_at
		FROM shifts
		WHERE user_id = $1
		  AND date = $2
		ORDER BY start_time ASC
		LIMIT 1
	`

	var s schedule.Shift
	err := q.QueryRow(ctx, query, userID, date).Scan(
		&s.ID, &s.UserID, &s.Date, &s.StartTime, &s.EndTime, &s.Title, &s.CreatedAt, &s.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil // day has no shifts
		}
		return nil, fmt.Errorf("failed to get first shift of day: %w", err)
	}

	return &s, nil
}
