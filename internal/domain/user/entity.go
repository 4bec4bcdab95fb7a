package user

import "time"

type Role string

const (
	RoleAdmin   Role = "admin"
	RoleManager Role = "manager"
	RoleStaff   Role = "staff"
)

var RoleValues = []string{
	string(RoleAdmin),
	string(RoleManager),
	string(RoleStaff),
}

type User struct {
	ID           string
	CompanyID    string
	Email        string
	PasswordHash string
	FullName     string
	Role         Role
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
