package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/worklife-vn/attendance-backend-go/internal/domain/overtime"
	"github.com/worklife-vn/attendance-backend-go/internal/pkg/database"
)

type overtimeRepository struct {
	db *database.DB
}

func NewOvertimeRepository(db *database.DB) overtime.OvertimeRepository {
	return &overtimeRepository{db: db}
}

// Create implements overtime.OvertimeRepository.
func (r *overtimeRepository) Create(ctx context.Context, request overtime.Request) (overtime.Request, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO overtime_requests (user_id, date, hours, reason, status)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at, updated_at
	`

	err := q.QueryRow(ctx, query,
		request.UserID, request.Date, request.Hours, request.Reason, request.Status,
	).Scan(&request.ID, &request.CreatedAt, &request.UpdatedAt)

	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return overtime.Request{}, overtime.ErrAlreadyRequested
		}
		return overtime.Request{}, fmt.Errorf("failed to create overtime request: %w", err)
	}

	return request, nil
}
