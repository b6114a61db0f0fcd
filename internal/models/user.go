package models

import (
	"time"
)

// Role values
const (
	RoleAdmin   = "admin"
	RoleManager = "manager"
	RoleUser    = "user"
)

// Approval status values
const (
	ApprovalPending  = "pending"
	ApprovalApproved = "approved"
	ApprovalRejected = "rejected"
)

type User struct {
	Username       string    `json:"username" db:"username"`
	DisplayName    string    `json:"display_name" db:"display_name"`
	PasswordHash   string    `json:"-" db:"password_hash"` // Never serialize in JSON
	Role           string    `json:"role" db:"role"`
	ApprovalStatus string    `json:"approval_status" db:"approval_status"`
	Email          *string   `json:"email" db:"email"`
	Phone          *string   `json:"phone" db:"phone"`
	CreatedAt      time.Time `json:"created_at" db:"created_at"`
	UpdatedAt      time.Time `json:"updated_at" db:"updated_at"`
}

// IsValidRole reports whether role is one of the known roles
func IsValidRole(role string) bool {
	switch role {
	case RoleAdmin, RoleManager, RoleUser:
		return true
	}
	return false
}
