package overtime

import "context"

type OvertimeRepository interface {
	// Create inserts a pending overtime request. Returns
	// ErrAlreadyRequested when the user already filed one for the date.
	Create(ctx context.Context, request Request) (Request, error)
}
