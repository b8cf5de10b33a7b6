package http

import (
	"net/http"

	"github.com/worklife-vn/attendance-backend-go/internal/domain/schedule"
	"github.com/worklife-vn/attendance-backend-go/internal/handler/http/response"
)

type ScheduleHandler interface {
	Today(w http.ResponseWriter, r *http.Request)
	NextWorkingDay(w http.ResponseWriter, r *http.Request)
}

type scheduleHandlerImpl struct {
	scheduleService schedule.ScheduleService
}

func NewScheduleHandler(scheduleService schedule.ScheduleService) ScheduleHandler {
	return &scheduleHandlerImpl{scheduleService: scheduleService}
}

// Today implements ScheduleHandler.
func (h *scheduleHandlerImpl) Today(w http.ResponseWriter, r *http.Request) {
	result, err := h.scheduleService.TodaySchedule(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, result)
}

// NextWorkingDay implements ScheduleHandler.
func (h *scheduleHandlerImpl) NextWorkingDay(w http.ResponseWriter, r *http.Request) {
	result, err := h.scheduleService.NextWorkingDaySchedule(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, result)
}
