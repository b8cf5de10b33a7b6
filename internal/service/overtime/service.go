package overtime

import (
	"context"
	"fmt"
	"time"

	"github.com/go-chi/jwtauth/v5"
	"github.com/worklife-vn/attendance-backend-go/internal/domain/overtime"
	"github.com/worklife-vn/attendance-backend-go/internal/domain/schedule"
	attendanceService "github.com/worklife-vn/attendance-backend-go/internal/service/attendance"
)

type OvertimeServiceImpl struct {
	overtimeRepo overtime.OvertimeRepository
	shiftRepo    schedule.ShiftRepository
}

func NewOvertimeService(
	overtimeRepo overtime.OvertimeRepository,
	shiftRepo schedule.ShiftRepository,
) overtime.OvertimeService {
	return &OvertimeServiceImpl{
		overtimeRepo: overtimeRepo,
		shiftRepo:    shiftRepo,
	}
}

// Submit implements overtime.OvertimeService. Requests above the ceiling
// are rejected outright, never clamped down.
func (s *OvertimeServiceImpl) Submit(ctx context.Context, req overtime.SubmitRequest) (overtime.RequestResponse, error) {
	if err := req.Validate(); err != nil {
		return overtime.RequestResponse{}, err
	}

	_, claims, err := jwtauth.FromContext(ctx)
	if err != nil {
		return overtime.RequestResponse{}, fmt.Errorf("failed to extract claims from context: %w", err)
	}
	userID, ok := claims["user_id"].(string)
	if !ok || userID == "" {
		return overtime.RequestResponse{}, fmt.Errorf("user_id claim is missing or invalid")
	}

	date, _ := time.Parse("2006-01-02", req.Date)

	ceiling, err := s.CeilingForDate(ctx, userID, date)
	if err != nil {
		return overtime.RequestResponse{}, err
	}
	if req.Hours > ceiling {
		return overtime.RequestResponse{}, overtime.ErrExceedsCeiling
	}

	created, err := s.overtimeRepo.Create(ctx, overtime.Request{
		UserID: userID,
		Date:   date,
		Hours:  req.Hours,
		Reason: req.Reason,
		Status: overtime.StatusPending,
	})
	if err != nil {
		return overtime.RequestResponse{}, err
	}

	return overtime.RequestResponse{
		ID:           created.ID,
		Date:         created.Date.Format("2006-01-02"),
		Hours:        created.Hours,
		CeilingHours: ceiling,
		Reason:       created.Reason,
		Status:       created.Status,
	}, nil
}

// CeilingForDate implements overtime.OvertimeService: the span between the
// date's last shift end and the next calendar day's first shift start.
func (s *OvertimeServiceImpl) CeilingForDate(ctx context.Context, userID string, date time.Time) (float64, error) {
	shifts, err := s.shiftRepo.ListByUserAndDate(ctx, userID, date)
	if err != nil {
		return 0, fmt.Errorf("failed to list shifts: %w", err)
	}
	if len(shifts) == 0 {
		return 0, overtime.ErrNoShiftForDate
	}
	lastShift := shifts[len(shifts)-1]

	nextShift, err := s.shiftRepo.FirstShiftOfDay(ctx, userID, date.AddDate(0, 0, 1))
	if err != nil {
		return 0, fmt.Errorf("failed to get next-day shift: %w", err)
	}

	var nextStart *string
	if nextShift != nil {
		nextStart = &nextShift.StartTime
	}

	return attendanceService.OvertimeCeilingHours(lastShift.EndTime, nextStart), nil
}
