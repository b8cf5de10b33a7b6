package http

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/worklife-vn/attendance-backend-go/internal/domain/attendance"
	"github.com/worklife-vn/attendance-backend-go/internal/handler/http/response"
	attendanceService "github.com/worklife-vn/attendance-backend-go/internal/service/attendance"
)

type AttendanceHandler interface {
	AutoCheck(w http.ResponseWriter, r *http.Request)
	GPSCheck(w http.ResponseWriter, r *http.Request)
	ClockIn(w http.ResponseWriter, r *http.Request)
	ClockOut(w http.ResponseWriter, r *http.Request)
	MySessions(w http.ResponseWriter, r *http.Request)
}

type attendanceHandlerImpl struct {
	decisionService attendance.DecisionService
	sessionService  attendance.SessionService
}

func NewAttendanceHandler(decisionService attendance.DecisionService, sessionService attendance.SessionService) AttendanceHandler {
	return &attendanceHandlerImpl{
		decisionService: decisionService,
		sessionService:  sessionService,
	}
}

// decodeAutoCheck tolerates an empty body: the SSR-triggered path posts
// without one.
func decodeAutoCheck(r *http.Request) attendance.AutoCheckRequest {
	var req attendance.AutoCheckRequest
	if r.Body != nil {
		_ = json.NewDecoder(r.Body).Decode(&req)
	}
	return req
}

func clientIP(r *http.Request) string {
	return attendanceService.ClientIP(r.Header.Get("X-Forwarded-For"), r.Header.Get("X-Real-Ip"))
}

// AutoCheck implements AttendanceHandler. Decisions are always 200: a
// negative outcome is data for the caller, not an HTTP error.
func (h *attendanceHandlerImpl) AutoCheck(w http.ResponseWriter, r *http.Request) {
	decision := h.decisionService.Decide(r.Context(), clientIP(r), decodeAutoCheck(r))
	response.Success(w, decision)
}

// GPSCheck implements AttendanceHandler.
func (h *attendanceHandlerImpl) GPSCheck(w http.ResponseWriter, r *http.Request) {
	var req attendance.GPSCheckRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	decision := h.decisionService.DecideWithGPS(r.Context(), clientIP(r), req)
	response.Success(w, decision)
}

// ClockIn implements AttendanceHandler.
func (h *attendanceHandlerImpl) ClockIn(w http.ResponseWriter, r *http.Request) {
	decision := h.decisionService.ClockIn(r.Context(), clientIP(r), decodeAutoCheck(r))
	response.Success(w, decision)
}

// ClockOut implements AttendanceHandler.
func (h *attendanceHandlerImpl) ClockOut(w http.ResponseWriter, r *http.Request) {
	decision := h.decisionService.ClockOut(r.Context(), clientIP(r), decodeAutoCheck(r))
	response.Success(w, decision)
}

// MySessions implements AttendanceHandler.
func (h *attendanceHandlerImpl) MySessions(w http.ResponseWriter, r *http.Request) {
	page, _ := strconv.Atoi(r.URL.Query().Get("page"))
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))

	result, err := h.sessionService.MySessions(r.Context(), attendance.MySessionsFilter{
		Page:  page,
		Limit: limit,
	})
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMeta(w, result.Sessions, &response.Meta{
		Page:       result.Page,
		Limit:      result.Limit,
		TotalItems: result.TotalCount,
	})
}
