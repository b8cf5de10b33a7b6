package postgresql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/worklife-vn/attendance-backend-go/internal/domain/attendance"
	"github.com/worklife-vn/attendance-backend-go/internal/pkg/database"
)

type sessionRepository struct {
	db *database.DB
}

func NewSessionRepository(db *database.DB) attendance.SessionRepository {
	return &sessionRepository{db: db}
}

const sessionColumns = `
	id, user_id, date, shift_id, check_in_time, check_out_time,
	status, late_minutes, method, note, overtime_minutes,
	created_at, updated_at
`

func scanSession(row pgx.Row) (attendance.Session, error) {
	var s attendance.Session
	err := row.Scan(
		&s.ID, &s.UserID, &s.Date, &s.ShiftID, &s.CheckInTime, &s.CheckOutTime,
		&s.Status, &s.LateMinutes, &s.Method, &s.Note, &s.OvertimeMinutes,
		&s.CreatedAt, &s.UpdatedAt,
	)
	return s, err
}

// Create implements attendance.SessionRepository. The day check and the
// insert run in one transaction; concurrent check-ins for the same user are
// additionally fenced by the partial unique index
// attendance_sessions_open_uniq (user_id WHERE check_out_time IS NULL), which
// turns the losing insert into ErrDuplicateSession instead of a second open
// row.
func (r *sessionRepository) Create(ctx context.Context, session attendance.Session) (attendance.Session, error) {
	err := WithTransaction(ctx, r.db, func(tx pgx.Tx) error {
		txCtx := context.WithValue(ctx, "tx", tx)

		exists, err := r.HasCheckedInToday(txCtx, session.UserID, session.Date)
		if err != nil {
			return err
		}
		if exists {
			return attendance.ErrDuplicateSession
		}

		query := `
			INSERT INTO attendance_sessions (
				user_id, date, shift_id, check_in_time, status, late_minutes, method, note
			) VALUES (
				$1, $2, $3, $4, $5, $6, $7, $8
			)
			ON CONFLICT (user_id) WHERE check_out_time IS NULL DO NOTHING
			RETURNING id, created_at, updated_at
		`

		err = tx.QueryRow(txCtx, query,
			session.UserID,
			session.Date,
			session.ShiftID,
			session.CheckInTime,
			session.Status,
			session.LateMinutes,
			session.Method,
			session.Note,
		).Scan(&session.ID, &session.CreatedAt, &session.UpdatedAt)

		if errors.Is(err, pgx.ErrNoRows) {
			// ON CONFLICT DO NOTHING returned no row: another caller won.
			return attendance.ErrDuplicateSession
		}
		return err
	})
	if err != nil {
		if errors.Is(err, attendance.ErrDuplicateSession) {
			return attendance.Session{}, attendance.ErrDuplicateSession
		}
		return attendance.Session{}, fmt.Errorf("failed to create attendance session: %w", err)
	}

	return session, nil
}

// GetOpenSession implements attendance.SessionRepository.
func (r *sessionRepository) GetOpenSession(ctx context.Context, userID string) (attendance.Session, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + sessionColumns + `
		FROM attendance_sessions
		WHERE user_id = $1
		  AND check_out_time IS NULL
		ORDER BY check_in_time DESC
		LIMIT 1
	`

	s, err := scanSession(q.QueryRow(ctx, query, userID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return attendance.Session{}, attendance.ErrNotCheckedIn
		}
		return attendance.Session{}, fmt.Errorf("failed to get open session: %w", err)
	}

	return s, nil
}

// HasCheckedInToday implements attendance.SessionRepository.
func (r *sessionRepository) HasCheckedInToday(ctx context.Context, userID string, date time.Time) (bool, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT EXISTS (
			SELECT 1 FROM attendance_sessions
			WHERE user_id = $1 AND date = $2
		)
	`

	var exists bool
	if err := q.QueryRow(ctx, query, userID, date).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check today's session: %w", err)
	}

	return exists, nil
}

// CloseSession implements attendance.SessionRepository. The WHERE clause
// requires the session to still be open, so a concurrent close loses
// cleanly with ErrSessionNotFound.
func (r *sessionRepository) CloseSession(ctx context.Context, sessionID string, checkOut time.Time, method string) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE attendance_sessions
		SET check_out_time = $2, method = $3, updated_at = NOW()
		WHERE id = $1
		  AND check_out_time IS NULL
	`

	tag, err := q.Exec(ctx, query, sessionID, checkOut, method)
	if err != nil {
		return fmt.Errorf("failed to close session: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return attendance.ErrSessionNotFound
	}

	return nil
}

// UpdateOvertimeMinutes implements attendance.SessionRepository.
func (r *sessionRepository) UpdateOvertimeMinutes(ctx context.Context, sessionID string, minutes int) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE attendance_sessions
		SET overtime_minutes = $2, updated_at = NOW()
		WHERE id = $1
	`

	tag, err := q.Exec(ctx, query, sessionID, minutes)
	if err != nil {
		return fmt.Errorf("failed to update overtime minutes: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return attendance.ErrSessionNotFound
	}

	return nil
}

// ListByUser implements attendance.SessionRepository.
func (r *sessionRepository) ListByUser(ctx context.Context, userID string, filter attendance.MySessionsFilter) ([]attendance.Session, int64, error) {
	q := GetQuerier(ctx, r.db)

	var total int64
	countQuery := `SELECT COUNT(*) FROM attendance_sessions WHERE user_id = $1`
	if err := q.QueryRow(ctx, countQuery, userID).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count sessions: %w", err)
	}

	query := `
		SELECT ` + sessionColumns + `
		FROM attendance_sessions
		WHERE user_id = $1
		ORDER BY date DESC, check_in_time DESC
		LIMIT $2 OFFSET $3
	`

	rows, err := q.Query(ctx, query, userID, filter.Limit, (filter.Page-1)*filter.Limit)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list sessions: %w", err)
	}
	defer rows.Close()

	var sessions []attendance.Session
	for rows.Next() {
		s, err := scanSession(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan session: %w", err)
		}
		sessions = append(sessions, s)
	}

	return sessions, total, rows.Err()
}

// ListStaleOpenSessions implements attendance.SessionRepository.
func (r *sessionRepository) ListStaleOpenSessions(ctx context.Context, olderThanDays int) ([]attendance.Session, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + sessionColumns + `
		FROM attendance_sessions
		WHERE check_out_time IS NULL
		  AND date < CURRENT_DATE - $1 * INTERVAL '1 day'
	`

	rows, err := q.Query(ctx, query, olderThanDays)
	if err != nil {
		return nil, fmt.Errorf("failed to list stale open sessions: %w", err)
	}
	defer rows.Close()

	var sessions []attendance.Session
	for rows.Next() {
		s, err := scanSession(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan stale session: %w", err)
		}
		sessions = append(sessions, s)
	}

	return sessions, rows.Err()
}
