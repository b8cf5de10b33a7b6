package attendance

import (
	"context"
)

// DecisionService is the automation entry point. None of its methods return
// an error: store failures are folded into a "none" decision with an
// "error:" reason so the calling page never crashes on automation failure.
type DecisionService interface {
	// Decide runs one full orchestration pass. The direction is chosen by
	// session state: no open session means the check-in path, an open
	// session means the check-out path.
	Decide(ctx context.Context, clientIP string, req AutoCheckRequest) Decision

	// DecideWithGPS is the client-side fallback retry: an explicit
	// coordinate and direction after a need_gps_* decision.
	DecideWithGPS(ctx context.Context, clientIP string, req GPSCheckRequest) Decision

	// ClockIn and ClockOut are the explicit button-press paths. They run
	// the same guards and verification as Decide but with the direction
	// forced.
	ClockIn(ctx context.Context, clientIP string, req AutoCheckRequest) Decision
	ClockOut(ctx context.Context, clientIP string, req AutoCheckRequest) Decision
}

// SessionService covers the non-automated session surface.
type SessionService interface {
	// MySessions pages the authenticated user's attendance history.
	MySessions(ctx context.Context, filter MySessionsFilter) (ListSessionsResponse, error)
}
