package client

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

var ErrNotFound = errors.New("client not found")

// Client is a customer of the company. Deletion is a hard delete.
type Client struct {
	ID                       uuid.UUID
	CompanyID                uuid.UUID
	FullName                 string
	FormalName               string
	Phone                    string
	Address                  string
	District                 string
	City                     string
	Notes                    string
	SendWelcomeMessage       bool
	SendMaintenanceReminders bool
	CreatedAt                time.Time
	UpdatedAt                *time.Time
}
