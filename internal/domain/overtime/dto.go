package overtime

import (
	"github.com/worklife-vn/attendance-backend-go/internal/pkg/validator"
)

type SubmitRequest struct {
	Date   string  `json:"date"` // "YYYY-MM-DD"
	Hours  float64 `json:"hours"`
	Reason string  `json:"reason"`
}

func (r SubmitRequest) Validate() error {
	var errs validator.ValidationErrors
	if _, ok := validator.IsValidDate(r.Date); !ok {
		errs = append(errs, validator.ValidationError{Field: "date", Message: "must be a valid date (YYYY-MM-DD)"})
	}
	if r.Hours <= 0 {
		errs = append(errs, validator.ValidationError{Field: "hours", Message: "must be greater than zero"})
	}
	if validator.IsEmpty(r.Reason) {
		errs = append(errs, validator.ValidationError{Field: "reason", Message: "is required"})
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}

type RequestResponse struct {
	ID           string  `json:"id"`
	Date         string  `json:"date"`
	Hours        float64 `json:"hours"`
	CeilingHours float64 `json:"ceiling_hours"`
	Reason       string  `json:"reason"`
	Status       string  `json:"status"`
}
