package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/worklife-vn/attendance-backend-go/internal/domain/profile"
	"github.com/worklife-vn/attendance-backend-go/internal/pkg/database"
)

type profileRepository struct {
	db *database.DB
}

func NewProfileRepository(db *database.DB) profile.ProfileRepository {
	return &profileRepository{db: db}
}

// GetByUserID implements profile.ProfileRepository.
func (r *profileRepository) GetByUserID(ctx context.Context, userID string) (profile.Profile, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT user_id, full_name, auto_checkin_enabled, auto_checkout_enabled,
			   COALESCE(clock_in_remind_minutes, 0),
			   COALESCE(clock_out_remind_mode, ''),
			   COALESCE(clock_out_remind_minutes, 0),
			   created_at, updated_at
		FROM profiles
		WHERE user_id = $1
	`

	var p profile.Profile
	err := q.QueryRow(ctx, query, userID).Scan(
		&p.UserID, &p.FullName, &p.AutoCheckinEnabled, &p.AutoCheckoutEnabled,
		&p.ClockInRemindMinutes, &p.ClockOutRemindMode, &p.ClockOutRemindMinutes,
		&p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return profile.Profile{}, profile.ErrProfileNotFound
		}
		return profile.Profile{}, fmt.Errorf("failed to get profile: %w", err)
	}

	p.ApplyDefaults()
	return p, nil
}
