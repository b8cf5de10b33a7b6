package attendance

import (
	"fmt"
	"strings"

	"github.com/worklife-vn/attendance-backend-go/internal/domain/attendance"
	"github.com/worklife-vn/attendance-backend-go/internal/domain/worksettings"
	"github.com/worklife-vn/attendance-backend-go/internal/pkg/geo"
)

// ClientIP extracts the client address from the forwarding header chain:
// first entry of a comma-separated X-Forwarded-For list, else X-Real-Ip,
// else "unknown".
func ClientIP(forwardedFor, realIP string) string {
	if forwardedFor != "" {
		first, _, _ := strings.Cut(forwardedFor, ",")
		if ip := strings.TrimSpace(first); ip != "" {
			return ip
		}
	}
	if realIP != "" {
		return realIP
	}
	return "unknown"
}

// ipAllowed checks the client address against the office allowlist by exact
// string equality. "unknown" never matches, whatever the allowlist holds.
func ipAllowed(clientIP string, allowlist []string) bool {
	if clientIP == "unknown" {
		return false
	}
	for _, ip := range allowlist {
		if ip == clientIP {
			return true
		}
	}
	return false
}

// gpsWithinRadius measures the haversine distance to the office anchor and
// passes when it is at most the configured radius (boundary inclusive).
func gpsWithinRadius(lat, lon float64, settings worksettings.WorkSettings) (bool, float64) {
	distance := geo.HaversineDistance(lat, lon, settings.OfficeLatitude, settings.OfficeLongitude)
	return distance <= settings.MaxRadiusMeters, distance
}

// verifyPresence composes the two strategies: IP first (zero client
// latency), then the supplied GPS coordinate if any. It returns the
// verification method on success, or the terminal decision on failure.
// A need_gps_* decision tells the client to retry with a coordinate.
// RequireGPSAndWifi makes an IP miss terminal: no GPS fallback, whether or
// not a coordinate came with the request.
func verifyPresence(clientIP string, lat, lon *float64, settings worksettings.WorkSettings, direction string) (string, *attendance.Decision) {
	if ipAllowed(clientIP, settings.EffectiveAllowlist()) {
		return attendance.MethodOfficeWifi, nil
	}

	if settings.RequireGPSAndWifi {
		d := attendance.NoneDecision(fmt.Sprintf("ip_failed:%s", clientIP))
		return "", &d
	}

	if lat != nil && lon != nil {
		ok, distance := gpsWithinRadius(*lat, *lon, settings)
		if ok {
			return attendance.MethodGPS, nil
		}
		d := attendance.NoneDecision(fmt.Sprintf("too_far|%d", int(distance)))
		return "", &d
	}

	reason := fmt.Sprintf("ip_failed:%s", clientIP)
	action := attendance.ActionNeedGPSCheckin
	if direction == attendance.DirectionCheckOut {
		action = attendance.ActionNeedGPSCheckout
	}
	d := attendance.Decision{Action: action, Reason: reason}
	return "", &d
}
