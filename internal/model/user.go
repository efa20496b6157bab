package model

import (
	"time"

	"github.com/google/uuid"
)

// Role distinguishes administrators from regular test takers.
type Role string

const (
	RoleAdmin Role = "admin"
	RoleUser  Role = "user"
)

// User represents a platform account. Regular users start unapproved and
// must be approved by an admin before they can take tests; admins are
// implicitly treated as approved.
type User struct {
	ID           uuid.UUID `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Role         Role      `json:"role"`
	IsApproved   bool      `json:"is_approved"`
	IsActive     bool      `json:"is_active"`
	CreatedAt    time.Time `json:"created_at"`
}

// CanTakeTests reports whether the account has passed the approval gate.
func (u *User) CanTakeTests() bool {
	return u.Role == RoleAdmin || u.IsApproved
}

// RegisterRequest is the payload for creating a new account.
type RegisterRequest struct {
	Name     string `json:"name" binding:"required,min=2,max=100"`
	Email    string `json:"email" binding:"required,email,max=255"`
	Password string `json:"password" binding:"required,min=6,max=72"`
}

// LoginRequest is the payload for authenticating.
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}
