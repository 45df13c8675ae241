package inventory

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

var (
	ErrNotFound     = errors.New("inventory item not found")
	ErrNameRequired = errors.New("name is required")
)

// Item is a billable material or part. Value is in cents.
type Item struct {
	ID         uuid.UUID
	CompanyID  uuid.UUID
	Name       string
	Value      int64
	CategoryID *uuid.UUID
	CreatedAt  time.Time
	UpdatedAt  *time.Time
}

// Search filters a catalog by case-insensitive substring match on name.
// An empty term yields no results: the picker shows nothing until the
// operator types.
func Search(items []*Item, term string) []*Item {
	if term == "" {
		return nil
	}

	term = strings.ToLower(term)

	var matched []*Item

	for _, item := range items {
		if strings.Contains(strings.ToLower(item.Name), term) {
			matched = append(matched, item)
		}
	}

	return matched
}
