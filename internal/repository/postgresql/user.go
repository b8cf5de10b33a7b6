package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/worklife-vn/attendance-backend-go/internal/domain/user"
	"github.com/worklife-vn/attendance-backend-go/internal/pkg/database"
)

type userRepository struct {
	db *database.DB
}

func NewUserRepository(db *database.DB) user.UserRepository {
	return &userRepository{db: db}
}

const userColumns = `
	id, employee_code, email, full_name, password_hash, is_admin, created_at, updated_at
`

// GetByEmployeeCode implements user.UserRepository.
func (r *userRepository) GetByEmployeeCode(ctx context.Context, employeeCode string) (user.User, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + userColumns + ` FROM users WHERE employee_code = $1`

	var u user.User
	err := q.QueryRow(ctx, query, employeeCode).Scan(
		&u.ID, &u.EmployeeCode, &u.Email, &u.FullName, &u.PasswordHash, &u.IsAdmin,
		&u.CreatedAt, &u.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return user.User{}, user.ErrUserNotFound
		}
		return user.User{}, fmt.Errorf("failed to get user by employee code: %w", err)
	}

	return u, nil
}
