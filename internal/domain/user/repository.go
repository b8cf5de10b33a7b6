package user

import "context"

type UserRepository interface {
	GetByEmployeeCode(ctx context.Context, employeeCode string) (User, error)
}
