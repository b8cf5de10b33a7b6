package profile

import "context"

type ProfileRepository interface {
	// GetByUserID returns the user's profile with reminder defaults applied.
	GetByUserID(ctx context.Context, userID string) (Profile, error)
}
