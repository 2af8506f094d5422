package models

import (
	"time"
)

// UserRole is the free-form role tag carried by an account.
type UserRole string

const (
	RoleVolunteer  UserRole = "volunteer"
	RoleDonorAdmin UserRole = "donor-admin"
)

// DefaultRole is assigned when registration does not name one
const DefaultRole = RoleVolunteer

type User struct {
	UserID       uint      `json:"user_id" gorm:"primaryKey"`
	Email        string    `json:"email" gorm:"uniqueIndex;not null"`
	PasswordHash string    `json:"-" gorm:"column:password;not null"`
	FirstName    string    `json:"first_name"`
	LastName     string    `json:"last_name"`
	Role         UserRole  `json:"user_type" gorm:"column:user_type;not null;default:'volunteer'"`
	CreatedAt    time.Time `json:"created_at"`
}
