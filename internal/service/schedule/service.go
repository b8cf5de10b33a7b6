package schedule

import (
	"context"
	"fmt"
	"time"

	"github.com/go-chi/jwtauth/v5"
	"github.com/worklife-vn/attendance-backend-go/internal/domain/schedule"
	"github.com/worklife-vn/attendance-backend-go/internal/domain/worksettings"
	"github.com/worklife-vn/attendance-backend-go/internal/pkg/timeutil"
)

type ScheduleServiceImpl struct {
	shiftRepo    schedule.ShiftRepository
	settingsRepo worksettings.WorkSettingsRepository
}

func NewScheduleService(
	shiftRepo schedule.ShiftRepository,
	settingsRepo worksettings.WorkSettingsRepository,
) schedule.ScheduleService {
	return &ScheduleServiceImpl{
		shiftRepo:    shiftRepo,
		settingsRepo: settingsRepo,
	}
}

// TodaySchedule implements schedule.ScheduleService.
func (s *ScheduleServiceImpl) TodaySchedule(ctx context.Context) (schedule.DayScheduleResponse, error) {
	return s.scheduleFor(ctx, timeutil.Today())
}

// NextWorkingDaySchedule implements schedule.ScheduleService.
func (s *ScheduleServiceImpl) NextWorkingDaySchedule(ctx context.Context) (schedule.DayScheduleResponse, error) {
	settings, err := s.settingsRepo.Get(ctx)
	if err != nil {
		return schedule.DayScheduleResponse{}, fmt.Errorf("failed to get work settings: %w", err)
	}
	return s.scheduleFor(ctx, timeutil.NextWorkingDay(timeutil.Today(), settings.OffDays))
}

func (s *ScheduleServiceImpl) scheduleFor(ctx context.Context, date time.Time) (schedule.DayScheduleResponse, error) {
	_, claims, err := jwtauth.FromContext(ctx)
	if err != nil {
		return schedule.DayScheduleResponse{}, fmt.Errorf("failed to extract claims from context: %w", err)
	}
	userID, ok := claims["user_id"].(string)
	if !ok || userID == "" {
		return schedule.DayScheduleResponse{}, fmt.Errorf("user_id claim is missing or invalid")
	}

	settings, err := s.settingsRepo.Get(ctx)
	if err != nil {
		return schedule.DayScheduleResponse{}, fmt.Errorf("failed to get work settings: %w", err)
	}

	shifts, err := s.shiftRepo.ListByUserAndDate(ctx, userID, date)
	if err != nil {
		return schedule.DayScheduleResponse{}, fmt.Errorf("failed to list shifts: %w", err)
	}

	responses := make([]schedule.ShiftResponse, 0, len(shifts))
	for _, shift := range shifts {
		responses = append(responses, schedule.ShiftResponse{
			ID:        shift.ID,
			Date:      shift.Date.Format("2006-01-02"),
			StartTime: shift.StartTime,
			EndTime:   shift.EndTime,
			Title:     shift.Title,
		})
	}

	return schedule.DayScheduleResponse{
		Date:   date.Format("2006-01-02"),
		OffDay: timeutil.IsOffDay(date, settings.OffDays),
		Shifts: responses,
	}, nil
}
