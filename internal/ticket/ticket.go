package ticket

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

var (
	ErrNotFound         = errors.New("service ticket not found")
	ErrDateRequired     = errors.New("service date is required")
	ErrTypeRequired     = errors.New("service type is required")
	ErrLineOutOfRange   = errors.New("line index out of range")
	ErrQuantityTooSmall = errors.New("quantity must be at least 1")
	ErrPriceNegative    = errors.New("price must not be negative")
)

// Ticket is a service visit: header fields plus material lines. TotalValue
// is derived from the lines and persisted redundantly on the row.
type Ticket struct {
	ID             uuid.UUID
	CompanyID      uuid.UUID
	ServiceDate    time.Time
	ServiceType    string
	ClientID       *uuid.UUID
	Client         *ClientRef // Loaded via JOIN
	CollaboratorID *uuid.UUID
	Collaborator   *CollaboratorRef // Loaded via JOIN
	Notes          string
	TotalValue     int64
	Lines          []Line // Loaded on detail fetch
	CreatedAt      time.Time
	UpdatedAt      *time.Time
}

type ClientRef struct {
	ID       uuid.UUID
	FullName string
}

type CollaboratorRef struct {
	ID   uuid.UUID
	Name string
}

// Line is one material on a ticket. Price is a snapshot in cents, copied
// from the inventory item at selection time and editable per line, so later
// catalog price changes never touch historical tickets.
type Line struct {
	ID              uuid.UUID
	InventoryItemID uuid.UUID
	Name            string // Loaded via JOIN
	Quantity        int
	Price           int64
}

// Subtotal is quantity times the snapshot price.
func (l Line) Subtotal() int64 {
	return l.Price * int64(l.Quantity)
}
