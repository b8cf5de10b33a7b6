package attendance

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/go-chi/jwtauth/v5"
	"github.com/worklife-vn/attendance-backend-go/internal/domain/attendance"
	"github.com/worklife-vn/attendance-backend-go/internal/domain/leave"
	"github.com/worklife-vn/attendance-backend-go/internal/domain/profile"
	"github.com/worklife-vn/attendance-backend-go/internal/domain/schedule"
	"github.com/worklife-vn/attendance-backend-go/internal/domain/worksettings"
	"github.com/worklife-vn/attendance-backend-go/internal/pkg/lock"
	"github.com/worklife-vn/attendance-backend-go/internal/pkg/timeutil"
)

const lockTTL = 30 * time.Second

// DecisionEngine composes the window resolver and the verification
// strategies into one decision pass. It is idempotent per (user, day,
// direction): "already in the target state" is a success-equivalent no-op,
// never an error. None of its entry points return errors; store failures
// fold into a silent "none" decision (the caller is a page render).
type DecisionEngine struct {
	sessionRepo  attendance.SessionRepository
	shiftRepo    schedule.ShiftRepository
	profileRepo  profile.ProfileRepository
	leaveRepo    leave.LeaveRequestRepository
	settingsRepo worksettings.WorkSettingsRepository
	locker       lock.Locker // nil disables single-flight locking

	// injectable clock
	now func() time.Time
}

func NewDecisionEngine(
	sessionRepo attendance.SessionRepository,
	shiftRepo schedule.ShiftRepository,
	profileRepo profile.ProfileRepository,
	leaveRepo leave.LeaveRequestRepository,
	settingsRepo worksettings.WorkSettingsRepository,
	locker lock.Locker,
) *DecisionEngine {
	return &DecisionEngine{
		sessionRepo:  sessionRepo,
		shiftRepo:    shiftRepo,
		profileRepo:  profileRepo,
		leaveRepo:    leaveRepo,
		settingsRepo: settingsRepo,
		locker:       locker,
		now:          time.Now,
	}
}

// decisionEnv is the guard-checked state one pass runs against. The work
// settings snapshot is fetched once and passed through the whole chain.
type decisionEnv struct {
	userID   string
	profile  profile.Profile
	settings worksettings.WorkSettings
	shifts   []schedule.Shift
	today    time.Time
	nowMin   int
}

// Decide implements attendance.DecisionService.
func (e *DecisionEngine) Decide(ctx context.Context, clientIP string, req attendance.AutoCheckRequest) attendance.Decision {
	if err := req.Validate(); err != nil {
		return attendance.NoneDecision("invalid_request")
	}

	env, dec := e.prepare(ctx)
	if dec != nil {
		return *dec
	}

	// Direction follows session state: open session means check-out.
	open, err := e.sessionRepo.GetOpenSession(ctx, env.userID)
	switch {
	case err == nil:
		return e.run(ctx, env, attendance.DirectionCheckOut, &open, clientIP, req.Latitude, req.Longitude)
	case errors.Is(err, attendance.ErrNotCheckedIn):
		return e.run(ctx, env, attendance.DirectionCheckIn, nil, clientIP, req.Latitude, req.Longitude)
	default:
		return attendance.ErrorDecision(err)
	}
}

// DecideWithGPS implements attendance.DecisionService.
func (e *DecisionEngine) DecideWithGPS(ctx context.Context, clientIP string, req attendance.GPSCheckRequest) attendance.Decision {
	if err := req.Validate(); err != nil {
		return attendance.NoneDecision("invalid_request")
	}

	env, dec := e.prepare(ctx)
	if dec != nil {
		return *dec
	}

	var open *attendance.Session
	if req.Direction == attendance.DirectionCheckOut {
		session, err := e.sessionRepo.GetOpenSession(ctx, env.userID)
		if err != nil {
			if errors.Is(err, attendance.ErrNotCheckedIn) {
				return attendance.NoneDecision("not_checked_in")
			}
			return attendance.ErrorDecision(err)
		}
		open = &session
	}

	return e.run(ctx, env, req.Direction, open, clientIP, &req.Latitude, &req.Longitude)
}

// ClockIn implements attendance.DecisionService.
func (e *DecisionEngine) ClockIn(ctx context.Context, clientIP string, req attendance.AutoCheckRequest) attendance.Decision {
	return e.forced(ctx, attendance.DirectionCheckIn, clientIP, req)
}

// ClockOut implements attendance.DecisionService.
func (e *DecisionEngine) ClockOut(ctx context.Context, clientIP string, req attendance.AutoCheckRequest) attendance.Decision {
	return e.forced(ctx, attendance.DirectionCheckOut, clientIP, req)
}

func (e *DecisionEngine) forced(ctx context.Context, direction, clientIP string, req attendance.AutoCheckRequest) attendance.Decision {
	if err := req.Validate(); err != nil {
		return attendance.NoneDecision("invalid_request")
	}

	env, dec := e.prepare(ctx)
	if dec != nil {
		return *dec
	}

	var open *attendance.Session
	session, err := e.sessionRepo.GetOpenSession(ctx, env.userID)
	switch {
	case err == nil:
		open = &session
	case errors.Is(err, attendance.ErrNotCheckedIn):
	default:
		return attendance.ErrorDecision(err)
	}

	return e.run(ctx, env, direction, open, clientIP, req.Latitude, req.Longitude)
}

// prepare evaluates the short-circuit guard chain common to every entry
// point: authentication, profile and schedule existence, approved leave,
// off-day. First failing guard wins.
func (e *DecisionEngine) prepare(ctx context.Context) (decisionEnv, *attendance.Decision) {
	none := func(reason string) (decisionEnv, *attendance.Decision) {
		d := attendance.NoneDecision(reason)
		return decisionEnv{}, &d
	}
	fail := func(err error) (decisionEnv, *attendance.Decision) {
		slog.Error("attendance decision aborted", "error", err)
		d := attendance.ErrorDecision(err)
		return decisionEnv{}, &d
	}

	userID, ok := userIDFromClaims(ctx)
	if !ok {
		return none("not_authenticated")
	}

	settings, err := e.settingsRepo.Get(ctx)
	if err != nil {
		return fail(err)
	}

	prof, err := e.profileRepo.GetByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, profile.ErrProfileNotFound) {
			return none("no_profile")
		}
		return fail(err)
	}

	now := e.now().In(timeutil.Zone)
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, timeutil.Zone)

	shifts, err := e.shiftRepo.ListByUserAndDate(ctx, userID, today)
	if err != nil {
		return fail(err)
	}
	if len(shifts) == 0 {
		return none("no_schedule")
	}

	onLeave, err := e.leaveRepo.HasApprovedLeave(ctx, userID, today)
	if err != nil {
		return fail(err)
	}
	if onLeave {
		return none("on_leave")
	}

	if timeutil.IsOffDay(today, settings.OffDays) {
		return none("off_day")
	}

	return decisionEnv{
		userID:   userID,
		profile:  prof,
		settings: settings,
		shifts:   shifts,
		today:    today,
		nowMin:   timeutil.MinutesOfDay(now),
	}, nil
}

// run performs the direction-specific half of a pass: automation flag,
// window resolution, verification, commit.
func (e *DecisionEngine) run(ctx context.Context, env decisionEnv, direction string, open *attendance.Session, clientIP string, lat, lon *float64) attendance.Decision {
	switch direction {
	case attendance.DirectionCheckIn:
		if open != nil {
			return attendance.NoneDecision("already_checked_in")
		}
		if !env.profile.AutoCheckinEnabled {
			return attendance.NoneDecision("auto_checkin_disabled")
		}
		shift := resolveCheckInShift(env.shifts, env.profile.ClockInRemindMinutes, env.nowMin)
		if shift == nil {
			return attendance.NoneDecision("no_window")
		}
		method, dec := verifyPresence(clientIP, lat, lon, env.settings, direction)
		if dec != nil {
			return *dec
		}
		return e.commitCheckIn(ctx, env, shift, method)

	case attendance.DirectionCheckOut:
		if open == nil {
			return attendance.NoneDecision("not_checked_in")
		}
		if !env.profile.AutoCheckoutEnabled {
			return attendance.NoneDecision("auto_checkout_disabled")
		}
		shift := resolveCheckOutShift(env.shifts, env.profile.ClockOutRemindMinutes, env.profile.ClockOutRemindMode, env.nowMin)
		if shift == nil {
			return attendance.NoneDecision("no_window")
		}
		method, dec := verifyPresence(clientIP, lat, lon, env.settings, direction)
		if dec != nil {
			return *dec
		}
		return e.commitCheckOut(ctx, env, shift, open, method)

	default:
		return attendance.NoneDecision("invalid_direction")
	}
}

func (e *DecisionEngine) commitCheckIn(ctx context.Context, env decisionEnv, shift *schedule.Shift, method string) attendance.Decision {
	release, acquired := e.acquire(ctx, env.userID, attendance.DirectionCheckIn)
	if !acquired {
		return attendance.NoneDecision("in_progress")
	}
	defer release()

	// Read-before-write: an open session anywhere is a hard block, and a
	// same-day closed session means today is already done.
	if _, err := e.sessionRepo.GetOpenSession(ctx, env.userID); err == nil {
		return attendance.NoneDecision("already_checked_in")
	} else if !errors.Is(err, attendance.ErrNotCheckedIn) {
		return attendance.ErrorDecision(err)
	}
	done, err := e.sessionRepo.HasCheckedInToday(ctx, env.userID, env.today)
	if err != nil {
		return attendance.ErrorDecision(err)
	}
	if done {
		return attendance.NoneDecision("already_checked_in")
	}

	startMin := timeutil.MinutesSinceMidnight(shift.StartTime)
	status, lateMinutes := computeLateness(env.nowMin, startMin, env.settings.GracePeriodEnabled, env.settings.GracePeriodMinutes)

	now := e.now().In(timeutil.Zone)
	session := attendance.Session{
		UserID:      env.userID,
		Date:        env.today,
		ShiftID:     &shift.ID,
		CheckInTime: &now,
		Status:      status,
		LateMinutes: lateMinutes,
		Method:      method,
	}

	if _, err := e.sessionRepo.Create(ctx, session); err != nil {
		if errors.Is(err, attendance.ErrDuplicateSession) {
			// Lost the insert race; the user is checked in either way.
			return attendance.NoneDecision("already_checked_in")
		}
		return attendance.ErrorDecision(err)
	}

	slog.Info("auto check-in committed",
		"user_id", env.userID, "shift_id", shift.ID, "status", status,
		"late_minutes", lateMinutes, "method", method)

	return attendance.Decision{Action: attendance.ActionCheckedIn, Method: method}
}

func (e *DecisionEngine) commitCheckOut(ctx context.Context, env decisionEnv, shift *schedule.Shift, open *attendance.Session, method string) attendance.Decision {
	release, acquired := e.acquire(ctx, env.userID, attendance.DirectionCheckOut)
	if !acquired {
		return attendance.NoneDecision("in_progress")
	}
	defer release()

	now := e.now().In(timeutil.Zone)
	if err := e.sessionRepo.CloseSession(ctx, open.ID, now, method); err != nil {
		if errors.Is(err, attendance.ErrSessionNotFound) {
			// A concurrent caller closed it first; same terminal state.
			return attendance.NoneDecision("already_checked_out")
		}
		return attendance.ErrorDecision(err)
	}

	slog.Info("auto check-out committed",
		"user_id", env.userID, "session_id", open.ID, "method", method)

	// Best-effort side effect: its failure must never surface to the
	// check-out that already succeeded.
	go e.recalculateOvertime(open.ID, env.userID, *shift, now)

	return attendance.Decision{Action: attendance.ActionCheckedOut, Method: method}
}

// recalculateOvertime stamps the session's overtime minutes: time worked
// past the shift end, capped by the ceiling the next day's first shift
// imposes. Runs detached from the request.
func (e *DecisionEngine) recalculateOvertime(sessionID, userID string, shift schedule.Shift, checkOut time.Time) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	endMin := timeutil.MinutesSinceMidnight(shift.EndTime)
	worked := timeutil.MinutesOfDay(checkOut) - endMin
	if worked <= 0 {
		return
	}

	var nextStart *string
	nextShift, err := e.shiftRepo.FirstShiftOfDay(ctx, userID, shift.Date.AddDate(0, 0, 1))
	if err != nil {
		slog.Error("overtime recalculation: next-day shift lookup failed", "session_id", sessionID, "error", err)
		return
	}
	if nextShift != nil {
		nextStart = &nextShift.StartTime
	}

	ceilingMinutes := int(OvertimeCeilingHours(shift.EndTime, nextStart) * 60)
	if worked > ceilingMinutes {
		worked = ceilingMinutes
	}

	if err := e.sessionRepo.UpdateOvertimeMinutes(ctx, sessionID, worked); err != nil {
		slog.Error("overtime recalculation failed", "session_id", sessionID, "error", err)
	}
}

// acquire takes the per (user, day, direction) single-flight lock. Lock
// backend errors degrade to the bare read-check-write discipline rather
// than blocking attendance.
func (e *DecisionEngine) acquire(ctx context.Context, userID, direction string) (release func(), acquired bool) {
	if e.locker == nil {
		return func() {}, true
	}

	key := fmt.Sprintf("attendance:%s:%s:%s", userID, e.now().In(timeutil.Zone).Format("2006-01-02"), direction)
	token, ok, err := e.locker.Acquire(ctx, key, lockTTL)
	if err != nil {
		slog.Warn("attendance lock unavailable, proceeding unlocked", "key", key, "error", err)
		return func() {}, true
	}
	if !ok {
		return nil, false
	}

	return func() {
		if err := e.locker.Release(ctx, key, token); err != nil {
			slog.Warn("attendance lock release failed", "key", key, "error", err)
		}
	}, true
}

func userIDFromClaims(ctx context.Context) (string, bool) {
	_, claims, err := jwtauth.FromContext(ctx)
	if err != nil {
		return "", false
	}
	userID, ok := claims["user_id"].(string)
	if !ok || userID == "" {
		return "", false
	}
	return userID, true
}
