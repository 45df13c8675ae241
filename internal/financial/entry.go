package financial

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

var (
	ErrNotFound      = errors.New("financial entry not found")
	ErrDateRequired  = errors.New("entry date is required")
	ErrValueNegative = errors.New("value must not be negative")
)

// Entry is a financial movement. Value is in cents. Entries referencing a
// service are derived from ticket submission and carry the service type via
// a join for the category projection.
type Entry struct {
	ID        uuid.UUID
	CompanyID uuid.UUID
	EntryDate time.Time
	Value     int64
	ClientID  *uuid.UUID
	ServiceID *uuid.UUID
	Service   *ServiceRef // Loaded via JOIN
	Notes     string
	CreatedAt time.Time
	UpdatedAt *time.Time
}

// ServiceRef is the slice of the linked service ticket needed for display
// and for the by-category aggregation.
type ServiceRef struct {
	ID          uuid.UUID
	ServiceType string
}
