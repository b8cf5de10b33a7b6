package user

import "time"

type User struct {
	ID           string
	EmployeeCode string
	Email        string
	FullName     string
	PasswordHash string
	IsAdmin      bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
