package attendance

import (
	"context"
	"fmt"
	"time"

	"github.com/worklife-vn/attendance-backend-go/internal/domain/attendance"
)

type SessionServiceImpl struct {
	sessionRepo attendance.SessionRepository
}

func NewSessionService(sessionRepo attendance.SessionRepository) attendance.SessionService {
	return &SessionServiceImpl{sessionRepo: sessionRepo}
}

// MySessions implements attendance.SessionService.
func (s *SessionServiceImpl) MySessions(ctx context.Context, filter attendance.MySessionsFilter) (attendance.ListSessionsResponse, error) {
	userID, ok := userIDFromClaims(ctx)
	if !ok {
		return attendance.ListSessionsResponse{}, fmt.Errorf("user_id claim is missing or invalid")
	}

	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 || filter.Limit > 100 {
		filter.Limit = 20
	}

	sessions, total, err := s.sessionRepo.ListByUser(ctx, userID, filter)
	if err != nil {
		return attendance.ListSessionsResponse{}, fmt.Errorf("failed to list sessions: %w", err)
	}

	responses := make([]attendance.SessionResponse, 0, len(sessions))
	for _, session := range sessions {
		responses = append(responses, mapSessionToResponse(session))
	}

	return attendance.ListSessionsResponse{
		TotalCount: total,
		Page:       filter.Page,
		Limit:      filter.Limit,
		Sessions:   responses,
	}, nil
}

func mapSessionToResponse(session attendance.Session) attendance.SessionResponse {
	format := func(tPtr *time.Time) *string {
		if tPtr == nil {
			return nil
		}
		s := tPtr.Format("2006-01-02 15:04:05")
		return &s
	}

	var workingHours *float64
	if session.CheckInTime != nil && session.CheckOutTime != nil {
		hours := session.CheckOutTime.Sub(*session.CheckInTime).Hours()
		workingHours = &hours
	}

	return attendance.SessionResponse{
		ID:              session.ID,
		Date:            session.Date.Format("2006-01-02"),
		CheckInTime:     format(session.CheckInTime),
		CheckOutTime:    format(session.CheckOutTime),
		Status:          session.Status,
		LateMinutes:     session.LateMinutes,
		Method:          session.Method,
		OvertimeMinutes: session.OvertimeMinutes,
		WorkingHours:    workingHours,
	}
}
