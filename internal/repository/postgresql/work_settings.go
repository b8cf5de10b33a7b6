package postgresql

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/worklife-vn/attendance-backend-go/internal/domain/worksettings"
	"github.com/worklife-vn/attendance-backend-go/internal/pkg/database"
)

type workSettingsRepository struct {
	db *database.DB
}

func NewWorkSettingsRepository(db *database.DB) worksettings.WorkSettingsRepository {
	return &workSettingsRepository{db: db}
}

// Get implements worksettings.WorkSettingsRepository. The table holds a
// single row maintained by the admin panel (a different service); a missing
// row means defaults.
func (r *workSettingsRepository) Get(ctx context.Context) (worksettings.WorkSettings, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT off_days, ip_allowlist, office_latitude, office_longitude,
			   max_radius_meters, require_gps_and_wifi,
			   grace_period_enabled, grace_period_minutes
		FROM work_settings
		ORDER BY updated_at DESC
		LIMIT 1
	`

	var (
		offDaysCSV   string
		allowlistCSV string
		settings     = worksettings.Defaults()
	)
	err := q.QueryRow(ctx, query).Scan(
		&offDaysCSV, &allowlistCSV,
		&settings.OfficeLatitude, &settings.OfficeLongitude,
		&settings.MaxRadiusMeters, &settings.RequireGPSAndWifi,
		&settings.GracePeriodEnabled, &settings.GracePeriodMinutes,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return worksettings.Defaults(), nil
		}
		return worksettings.WorkSettings{}, fmt.Errorf("failed to get work settings: %w", err)
	}

	settings.OffDays = parseOffDays(offDaysCSV)
	settings.IPAllowlist = parseAllowlist(allowlistCSV)
	return settings, nil
}

func parseOffDays(csv string) map[int]bool {
	offDays := make(map[int]bool)
	for _, part := range strings.Split(csv, ",") {
		day, err := strconv.Atoi(strings.TrimSpace(part))
		if err != nil || day < 0 || day > 6 {
			continue
		}
		offDays[day] = true
	}
	if len(offDays) == 0 {
		return worksettings.Defaults().OffDays
	}
	return offDays
}

func parseAllowlist(csv string) []string {
	var ips []string
	for _, part := range strings.Split(csv, ",") {
		ip := strings.TrimSpace(part)
		if ip != "" {
			ips = append(ips, ip)
		}
	}
	return ips
}
