package schedule

// ShiftResponse is the wire form of a scheduled shift.
type ShiftResponse struct {
	ID        string `json:"id"`
	Date      string `json:"date"`
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
	Title     string `json:"title"`
}

// DayScheduleResponse groups the shifts of one calendar day.
type DayScheduleResponse struct {
	Date   string          `json:"date"`
	OffDay bool            `json:"off_day"`
	Shifts []ShiftResponse `json:"shifts"`
}
