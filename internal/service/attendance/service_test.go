package attendance

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/go-chi/jwtauth/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/worklife-vn/attendance-backend-go/internal/domain/attendance"
	"github.com/worklife-vn/attendance-backend-go/internal/domain/profile"
	"github.com/worklife-vn/attendance-backend-go/internal/domain/schedule"
	"github.com/worklife-vn/attendance-backend-go/internal/domain/worksettings"
	"github.com/worklife-vn/attendance-backend-go/internal/pkg/timeutil"
)

const testUserID = "user-1"
const officeIP = "203.0.113.7"

// ---- in-memory fakes ----

type fakeSessionRepo struct {
	mu       sync.Mutex
	sessions map[string]*attendance.Session
	seq      int

	// staleDayReads makes HasCheckedInToday report false that many times,
	// emulating a read that raced a concurrent insert. Create still holds
	// the transactional day guard.
	staleDayReads int
}

func newFakeSessionRepo() *fakeSessionRepo {
	return &fakeSessionRepo{sessions: make(map[string]*attendance.Session)}
}

func (r *fakeSessionRepo) Create(_ context.Context, session attendance.Session) (attendance.Session, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, s := range r.sessions {
		if s.UserID == session.UserID && (s.Open() || s.Date.Equal(session.Date)) {
			return attendance.Session{}, attendance.ErrDuplicateSession
		}
	}
	r.seq++
	session.ID = fmt.Sprintf("session-%d", r.seq)
	stored := session
	r.sessions[session.ID] = &stored
	return session, nil
}

func (r *fakeSessionRepo) GetOpenSession(_ context.Context, userID string) (attendance.Session, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, s := range r.sessions {
		if s.UserID == userID && s.Open() {
			return *s, nil
		}
	}
	return attendance.Session{}, attendance.ErrNotCheckedIn
}

func (r *fakeSessionRepo) HasCheckedInToday(_ context.Context, userID string, date time.Time) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.staleDayReads > 0 {
		r.staleDayReads--
		return false, nil
	}
	for _, s := range r.sessions {
		if s.UserID == userID && s.Date.Equal(date) {
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeSessionRepo) CloseSession(_ context.Context, sessionID string, checkOut time.Time, method string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.sessions[sessionID]
	if !ok || !s.Open() {
		return attendance.ErrSessionNotFound
	}
	out := checkOut
	s.CheckOutTime = &out
	s.Method = method
	return nil
}

func (r *fakeSessionRepo) UpdateOvertimeMinutes(_ context.Context, sessionID string, minutes int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.sessions[sessionID]
	if !ok {
		return attendance.ErrSessionNotFound
	}
	m := minutes
	s.OvertimeMinutes = &m
	return nil
}

func (r *fakeSessionRepo) ListByUser(_ context.Context, userID string, _ attendance.MySessionsFilter) ([]attendance.Session, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []attendance.Session
	for _, s := range r.sessions {
		if s.UserID == userID {
			out = append(out, *s)
		}
	}
	return out, int64(len(out)), nil
}

func (r *fakeSessionRepo) ListStaleOpenSessions(context.Context, int) ([]attendance.Session, error) {
	return nil, nil
}

func (r *fakeSessionRepo) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.sessions)
}

func (r *fakeSessionRepo) first() (attendance.Session, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, s := range r.sessions {
		return *s, true
	}
	return attendance.Session{}, false
}

func (r *fakeSessionRepo) single(t *testing.T) attendance.Session {
	t.Helper()
	r.mu.Lock()
	defer r.mu.Unlock()
	require.Len(t, r.sessions, 1)
	for _, s := range r.sessions {
		return *s
	}
	panic("unreachable")
}

type fakeShiftRepo struct {
	shifts map[string][]schedule.Shift // keyed by local date
}

func (r *fakeShiftRepo) ListByUserAndDate(_ context.Context, _ string, date time.Time) ([]schedule.Shift, error) {
	return r.shifts[date.Format("2006-01-02")], nil
}

func (r *fakeShiftRepo) FirstShiftOfDay(_ context.Context, _ string, date time.Time) (*schedule.Shift, error) {
	day := r.shifts[date.Format("2006-01-02")]
	if len(day) == 0 {
		return nil, nil
	}
	return &day[0], nil
}

type fakeProfileRepo struct {
	profile profile.Profile
	err     error
}

func (r *fakeProfileRepo) GetByUserID(context.Context, string) (profile.Profile, error) {
	return r.profile, r.err
}

type fakeLeaveRepo struct{ onLeave bool }

func (r *fakeLeaveRepo) HasApprovedLeave(context.Context, string, time.Time) (bool, error) {
	return r.onLeave, nil
}

type fakeSettingsRepo struct{ settings worksettings.WorkSettings }

func (r *fakeSettingsRepo) Get(context.Context) (worksettings.WorkSettings, error) {
	return r.settings, nil
}

// heldLocker refuses every acquisition, simulating a concurrent holder.
type heldLocker struct{}

func (heldLocker) Acquire(context.Context, string, time.Duration) (string, bool, error) {
	return "", false, nil
}
func (heldLocker) Release(context.Context, string, string) error { return nil }

// ---- fixture ----

type fixture struct {
	sessions *fakeSessionRepo
	shifts   *fakeShiftRepo
	profiles *fakeProfileRepo
	leaves   *fakeLeaveRepo
	settings *fakeSettingsRepo
	engine   *DecisionEngine
}

// newFixture builds an engine around a single 09:00-18:00 shift on Monday
// 2025-06-09 with an IP allowlist of officeIP.
func newFixture() *fixture {
	settings := worksettings.Defaults()
	settings.IPAllowlist = []string{officeIP}

	f := &fixture{
		sessions: newFakeSessionRepo(),
		shifts: &fakeShiftRepo{shifts: map[string][]schedule.Shift{
			"2025-06-09": {{
				ID:        "shift-1",
				UserID:    testUserID,
				Date:      time.Date(2025, 6, 9, 0, 0, 0, 0, timeutil.Zone),
				StartTime: "09:00",
				EndTime:   "18:00",
			}},
		}},
		profiles: &fakeProfileRepo{profile: profile.Profile{
			UserID:                testUserID,
			AutoCheckinEnabled:    true,
			AutoCheckoutEnabled:   true,
			ClockInRemindMinutes:  5,
			ClockOutRemindMode:    profile.RemindBefore,
			ClockOutRemindMinutes: 5,
		}},
		leaves:   &fakeLeaveRepo{},
		settings: &fakeSettingsRepo{settings: settings},
	}
	f.engine = NewDecisionEngine(f.sessions, f.shifts, f.profiles, f.leaves, f.settings, nil)
	return f
}

func (f *fixture) at(hour, minute int) {
	f.engine.now = func() time.Time {
		return time.Date(2025, 6, 9, hour, minute, 0, 0, timeutil.Zone)
	}
}

func authedContext(t *testing.T, userID string) context.Context {
	t.Helper()
	ja := jwtauth.New("HS256", []byte("test-secret"), nil)
	token, _, err := ja.Encode(map[string]interface{}{"user_id": userID})
	require.NoError(t, err)
	return jwtauth.NewContext(context.Background(), token, nil)
}

// ---- tests ----

func TestDecideChecksInFromOfficeWifi(t *testing.T) {
	f := newFixture()
	f.at(8, 57)

	dec := f.engine.Decide(authedContext(t, testUserID), officeIP, attendance.AutoCheckRequest{})

	assert.Equal(t, attendance.ActionCheckedIn, dec.Action)
	assert.Equal(t, attendance.MethodOfficeWifi, dec.Method)

	session := f.sessions.single(t)
	assert.Equal(t, attendance.StatusPresent, session.Status)
	assert.Zero(t, session.LateMinutes)
	assert.True(t, session.Open())
}

func TestDecideLateInsideGraceIsPresent(t *testing.T) {
	f := newFixture()
	f.at(9, 3)

	dec := f.engine.Decide(authedContext(t, testUserID), officeIP, attendance.AutoCheckRequest{})

	assert.Equal(t, attendance.ActionCheckedIn, dec.Action)
	session := f.sessions.single(t)
	assert.Equal(t, attendance.StatusPresent, session.Status)
	assert.Zero(t, session.LateMinutes)
}

func TestDecideIPMissAsksForGPS(t *testing.T) {
	f := newFixture()
	f.at(9, 12)

	dec := f.engine.Decide(authedContext(t, testUserID), "10.0.0.1", attendance.AutoCheckRequest{})

	assert.Equal(t, attendance.ActionNeedGPSCheckin, dec.Action)
	assert.Equal(t, "ip_failed:10.0.0.1", dec.Reason)
	assert.Zero(t, f.sessions.count(), "no session may be written on a failed verification")
}

func TestDecideWithGPSGradesLateness(t *testing.T) {
	f := newFixture()
	f.at(9, 12)
	f.settings.settings.GracePeriodEnabled = false

	dec := f.engine.DecideWithGPS(authedContext(t, testUserID), "10.0.0.1", attendance.GPSCheckRequest{
		Latitude:  10.7769,
		Longitude: 106.7009,
		Direction: attendance.DirectionCheckIn,
	})

	assert.Equal(t, attendance.ActionCheckedIn, dec.Action)
	assert.Equal(t, attendance.MethodGPS, dec.Method)

	session := f.sessions.single(t)
	assert.Equal(t, attendance.StatusLate, session.Status)
	assert.Equal(t, 12, session.LateMinutes)
}

func TestDecideWithGPSTooFarLeavesNoSession(t *testing.T) {
	f := newFixture()
	f.at(8, 57)

	dec := f.engine.DecideWithGPS(authedContext(t, testUserID), "10.0.0.1", attendance.GPSCheckRequest{
		Latitude:  10.8200, // ~4.8km north of the anchor
		Longitude: 106.7009,
		Direction: attendance.DirectionCheckIn,
	})

	assert.Equal(t, attendance.ActionNone, dec.Action)
	assert.Regexp(t, `^too_far\|\d+$`, dec.Reason)
	assert.Zero(t, f.sessions.count())
}

func TestDecideGuardChain(t *testing.T) {
	t.Run("unauthenticated", func(t *testing.T) {
		f := newFixture()
		f.at(8, 57)
		dec := f.engine.Decide(context.Background(), officeIP, attendance.AutoCheckRequest{})
		assert.Equal(t, attendance.ActionNone, dec.Action)
		assert.Equal(t, "not_authenticated", dec.Reason)
	})

	t.Run("no profile", func(t *testing.T) {
		f := newFixture()
		f.at(8, 57)
		f.profiles.err = profile.ErrProfileNotFound
		dec := f.engine.Decide(authedContext(t, testUserID), officeIP, attendance.AutoCheckRequest{})
		assert.Equal(t, "no_profile", dec.Reason)
	})

	t.Run("no schedule", func(t *testing.T) {
		f := newFixture()
		f.at(8, 57)
		f.shifts.shifts = nil
		dec := f.engine.Decide(authedContext(t, testUserID), officeIP, attendance.AutoCheckRequest{})
		assert.Equal(t, "no_schedule", dec.Reason)
	})

	t.Run("on approved leave", func(t *testing.T) {
		f := newFixture()
		f.at(8, 57)
		f.leaves.onLeave = true
		dec := f.engine.Decide(authedContext(t, testUserID), officeIP, attendance.AutoCheckRequest{})
		assert.Equal(t, "on_leave", dec.Reason)
	})

	t.Run("off day", func(t *testing.T) {
		f := newFixture()
		// Sunday 2025-06-08 with a shift scheduled anyway.
		f.shifts.shifts["2025-06-08"] = f.shifts.shifts["2025-06-09"]
		f.engine.now = func() time.Time {
			return time.Date(2025, 6, 8, 8, 57, 0, 0, timeutil.Zone)
		}
		dec := f.engine.Decide(authedContext(t, testUserID), officeIP, attendance.AutoCheckRequest{})
		assert.Equal(t, "off_day", dec.Reason)
	})

	t.Run("automation disabled", func(t *testing.T) {
		f := newFixture()
		f.at(8, 57)
		f.profiles.profile.AutoCheckinEnabled = false
		dec := f.engine.Decide(authedContext(t, testUserID), officeIP, attendance.AutoCheckRequest{})
		assert.Equal(t, "auto_checkin_disabled", dec.Reason)
	})

	t.Run("outside every window", func(t *testing.T) {
		f := newFixture()
		f.at(6, 0)
		dec := f.engine.Decide(authedContext(t, testUserID), officeIP, attendance.AutoCheckRequest{})
		assert.Equal(t, "no_window", dec.Reason)
	})
}

func TestClockInIsIdempotent(t *testing.T) {
	f := newFixture()
	f.at(8, 57)
	ctx := authedContext(t, testUserID)

	first := f.engine.ClockIn(ctx, officeIP, attendance.AutoCheckRequest{})
	second := f.engine.ClockIn(ctx, officeIP, attendance.AutoCheckRequest{})

	assert.Equal(t, attendance.ActionCheckedIn, first.Action)
	assert.Equal(t, attendance.ActionNone, second.Action)
	assert.Equal(t, "already_checked_in", second.Reason)
	assert.Equal(t, 1, f.sessions.count())
}

func TestConcurrentClockInCreatesOneSession(t *testing.T) {
	f := newFixture()
	f.at(8, 57)
	ctx := authedContext(t, testUserID)

	const callers = 8
	decisions := make([]attendance.Decision, callers)
	var wg sync.WaitGroup
	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			decisions[i] = f.engine.ClockIn(ctx, officeIP, attendance.AutoCheckRequest{})
		}(i)
	}
	wg.Wait()

	checkedIn := 0
	for _, dec := range decisions {
		if dec.Action == attendance.ActionCheckedIn {
			checkedIn++
		} else {
			assert.Equal(t, attendance.ActionNone, dec.Action)
		}
	}
	assert.Equal(t, 1, checkedIn, "exactly one caller may win the insert")
	assert.Equal(t, 1, f.sessions.count())
}

func TestDecideChecksOutAndRecalculatesOvertime(t *testing.T) {
	f := newFixture()
	ctx := authedContext(t, testUserID)

	f.at(8, 57)
	require.Equal(t, attendance.ActionCheckedIn, f.engine.ClockIn(ctx, officeIP, attendance.AutoCheckRequest{}).Action)

	// An open session steers the auto pass to check-out.
	f.at(18, 5)
	dec := f.engine.Decide(ctx, officeIP, attendance.AutoCheckRequest{})
	assert.Equal(t, attendance.ActionCheckedOut, dec.Action)
	assert.Equal(t, attendance.MethodOfficeWifi, dec.Method)

	// Overtime lands asynchronously: 5 minutes past shift end, no next-day
	// shift so the 16h default ceiling does not bite.
	require.Eventually(t, func() bool {
		s, ok := f.sessions.first()
		return ok && s.OvertimeMinutes != nil && *s.OvertimeMinutes == 5
	}, time.Second, 10*time.Millisecond)

	session := f.sessions.single(t)
	assert.False(t, session.Open())
}

func TestOvertimeCappedByNextDayShift(t *testing.T) {
	f := newFixture()
	ctx := authedContext(t, testUserID)

	// Tuesday starts at 20:00, so Monday's ceiling is 2h.
	f.shifts.shifts["2025-06-10"] = []schedule.Shift{{
		ID:        "shift-2",
		UserID:    testUserID,
		Date:      time.Date(2025, 6, 10, 0, 0, 0, 0, timeutil.Zone),
		StartTime: "20:00",
		EndTime:   "23:00",
	}}

	f.at(8, 57)
	require.Equal(t, attendance.ActionCheckedIn, f.engine.ClockIn(ctx, officeIP, attendance.AutoCheckRequest{}).Action)

	// 23:30 is 330 minutes past the 18:00 end; the cap brings it to 120.
	f.at(23, 30)
	dec := f.engine.ClockOut(ctx, officeIP, attendance.AutoCheckRequest{})
	require.Equal(t, attendance.ActionCheckedOut, dec.Action)

	require.Eventually(t, func() bool {
		s, ok := f.sessions.first()
		return ok && s.OvertimeMinutes != nil && *s.OvertimeMinutes == 120
	}, time.Second, 10*time.Millisecond)
}

func TestClockOutWithoutOpenSession(t *testing.T) {
	f := newFixture()
	f.at(18, 0)

	dec := f.engine.ClockOut(authedContext(t, testUserID), officeIP, attendance.AutoCheckRequest{})

	assert.Equal(t, attendance.ActionNone, dec.Action)
	assert.Equal(t, "not_checked_in", dec.Reason)
}

func TestRecheckInAfterCheckoutSameDayBlocked(t *testing.T) {
	f := newFixture()
	ctx := authedContext(t, testUserID)

	f.at(8, 57)
	require.Equal(t, attendance.ActionCheckedIn, f.engine.ClockIn(ctx, officeIP, attendance.AutoCheckRequest{}).Action)
	f.at(18, 0)
	require.Equal(t, attendance.ActionCheckedOut, f.engine.ClockOut(ctx, officeIP, attendance.AutoCheckRequest{}).Action)

	// 18:05 is still inside the late check-in ceiling, but the day already
	// carries a session.
	f.at(18, 5)
	dec := f.engine.ClockIn(ctx, officeIP, attendance.AutoCheckRequest{})
	assert.Equal(t, attendance.ActionNone, dec.Action)
	assert.Equal(t, "already_checked_in", dec.Reason)
	assert.Equal(t, 1, f.sessions.count())
}

// The day check belongs to the insert transaction: even when the engine's
// pre-check read misses a session that landed concurrently, the store
// rejects the duplicate and the engine folds it into already_checked_in.
func TestStaleDayReadStillBlocksDuplicateInsert(t *testing.T) {
	f := newFixture()
	ctx := authedContext(t, testUserID)

	f.at(8, 57)
	require.Equal(t, attendance.ActionCheckedIn, f.engine.ClockIn(ctx, officeIP, attendance.AutoCheckRequest{}).Action)
	f.at(18, 0)
	require.Equal(t, attendance.ActionCheckedOut, f.engine.ClockOut(ctx, officeIP, attendance.AutoCheckRequest{}).Action)

	f.sessions.staleDayReads = 1
	f.at(18, 5)
	dec := f.engine.ClockIn(ctx, officeIP, attendance.AutoCheckRequest{})

	assert.Equal(t, attendance.ActionNone, dec.Action)
	assert.Equal(t, "already_checked_in", dec.Reason)
	assert.Equal(t, 1, f.sessions.count())
}

func TestHeldLockYieldsInProgress(t *testing.T) {
	f := newFixture()
	f.engine.locker = heldLocker{}
	f.at(8, 57)

	dec := f.engine.ClockIn(authedContext(t, testUserID), officeIP, attendance.AutoCheckRequest{})

	assert.Equal(t, attendance.ActionNone, dec.Action)
	assert.Equal(t, "in_progress", dec.Reason)
	assert.Zero(t, f.sessions.count())
}

func TestDecideWithGPSCheckoutDirectionWithoutSession(t *testing.T) {
	f := newFixture()
	f.at(18, 0)

	dec := f.engine.DecideWithGPS(authedContext(t, testUserID), "10.0.0.1", attendance.GPSCheckRequest{
		Latitude:  10.7769,
		Longitude: 106.7009,
		Direction: attendance.DirectionCheckOut,
	})

	assert.Equal(t, attendance.ActionNone, dec.Action)
	assert.Equal(t, "not_checked_in", dec.Reason)
}
