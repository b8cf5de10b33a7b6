package attendance

import (
	"fmt"

	"github.com/worklife-vn/attendance-backend-go/internal/pkg/validator"
)

// Decision actions.
const (
	ActionNone            = "none"
	ActionCheckedIn       = "checked_in"
	ActionCheckedOut      = "checked_out"
	ActionNeedGPSCheckin  = "need_gps_checkin"
	ActionNeedGPSCheckout = "need_gps_checkout"
)

// Decision is the outcome of one orchestration pass. Reason is a free-form
// diagnostic code ("ip_failed:<ip>", "too_far|<meters>", "off_day", ...);
// Method is set only when verification succeeded.
type Decision struct {
	Action string `json:"action"`
	Reason string `json:"reason,omitempty"`
	Method string `json:"method,omitempty"`
}

// NoneDecision builds a terminal no-op decision with a reason code.
func NoneDecision(reason string) Decision {
	return Decision{Action: ActionNone, Reason: reason}
}

// ErrorDecision converts a store failure into the silent no-op the caller
// renders; automation failures never crash a page load.
func ErrorDecision(err error) Decision {
	return Decision{Action: ActionNone, Reason: fmt.Sprintf("error:%s", err.Error())}
}

// AutoCheckRequest is the body of the main decision entry point. The GPS
// coordinate is optional; when absent an IP failure yields a need_gps_*
// decision so the client can retry with one.
type AutoCheckRequest struct {
	Latitude  *float64 `json:"latitude,omitempty"`
	Longitude *float64 `json:"longitude,omitempty"`
}

func (r AutoCheckRequest) Validate() error {
	var errs validator.ValidationErrors
	if (r.Latitude == nil) != (r.Longitude == nil) {
		errs = append(errs, validator.ValidationError{Field: "latitude", Message: "latitude and longitude must be supplied together"})
	}
	if r.Latitude != nil && !validator.IsValidLatitude(*r.Latitude) {
		errs = append(errs, validator.ValidationError{Field: "latitude", Message: "must be between -90 and 90"})
	}
	if r.Longitude != nil && !validator.IsValidLongitude(*r.Longitude) {
		errs = append(errs, validator.ValidationError{Field: "longitude", Message: "must be between -180 and 180"})
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}

// GPSCheckRequest is the GPS fallback retry entry point: the client acquired
// a coordinate after a need_gps_* decision and resubmits with an explicit
// direction.
type GPSCheckRequest struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	Direction string  `json:"direction"`
}

func (r GPSCheckRequest) Validate() error {
	var errs validator.ValidationErrors
	if !validator.IsValidLatitude(r.Latitude) {
		errs = append(errs, validator.ValidationError{Field: "latitude", Message: "must be between -90 and 90"})
	}
	if !validator.IsValidLongitude(r.Longitude) {
		errs = append(errs, validator.ValidationError{Field: "longitude", Message: "must be between -180 and 180"})
	}
	if r.Direction != DirectionCheckIn && r.Direction != DirectionCheckOut {
		errs = append(errs, validator.ValidationError{Field: "direction", Message: "must be check_in or check_out"})
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}

// SessionResponse is the wire form of an attendance session.
type SessionResponse struct {
	ID              string   `json:"id"`
	Date            string   `json:"date"`
	CheckInTime     *string  `json:"check_in_time"`
	CheckOutTime    *string  `json:"check_out_time"`
	Status          string   `json:"status"`
	LateMinutes     int      `json:"late_minutes"`
	Method          string   `json:"method,omitempty"`
	OvertimeMinutes *int     `json:"overtime_minutes,omitempty"`
	WorkingHours    *float64 `json:"working_hours,omitempty"`
}

// MySessionsFilter pages the authenticated user's session history.
type MySessionsFilter struct {
	Page  int
	Limit int
}

type ListSessionsResponse struct {
	TotalCount int64             `json:"total_count"`
	Page       int               `json:"page"`
	Limit      int               `json:"limit"`
	Sessions   []SessionResponse `json:"sessions"`
}
