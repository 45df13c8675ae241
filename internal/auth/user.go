package auth

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

var (
	ErrNotFound           = errors.New("user not found")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrEmailTaken         = errors.New("email already registered")
	ErrResetTokenInvalid  = errors.New("reset token invalid or expired")
)

// User is an operator account bound to a single company.
type User struct {
	ID           uuid.UUID
	CompanyID    uuid.UUID
	Email        string
	PasswordHash string
	Name         string
	Phone        string
	CreatedAt    time.Time
	UpdatedAt    *time.Time
}
