package overtime

import "errors"

var (
	ErrExceedsCeiling   = errors.New("requested hours exceed the overtime ceiling for this date")
	ErrNoShiftForDate   = errors.New("no shift scheduled on the requested date")
	ErrAlreadyRequested = errors.New("an overtime request already exists for this date")
)
