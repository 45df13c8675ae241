package settings

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
)

var ErrIntervalInvalid = errors.New("maintenance interval must be at least 1 month")

// Loyalty holds the per-company maintenance reminder configuration. A
// missing row reads as the defaults below.
type Loyalty struct {
	CompanyID           uuid.UUID
	MaintenanceInterval int    // Months between reminders
	MaintenancePrice    *int64 // Cents; nil when the company does not pre-quote
	UpdatedAt           *time.Time
}

const defaultMaintenanceInterval = 6

type Repository interface {
	GetLoyalty(ctx context.Context, companyID uuid.UUID) (*Loyalty, error)
	UpsertLoyalty(ctx context.Context, l *Loyalty) error
}

// ErrNotFound is returned by stores when no settings row exists yet; the
// service translates it into defaults.
var ErrNotFound = errors.New("loyalty settings not found")

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) Get(ctx context.Context, companyID uuid.UUID) (*Loyalty, error) {
	l, err := s.repo.GetLoyalty(ctx, companyID)
	if errors.Is(err, ErrNotFound) {
		return &Loyalty{CompanyID: companyID, MaintenanceInterval: defaultMaintenanceInterval}, nil
	}

	if err != nil {
		return nil, err
	}

	return l, nil
}

func (s *Service) Save(ctx context.Context, companyID uuid.UUID, interval int, price *int64) (*Loyalty, error) {
	if interval < 1 {
		return nil, ErrIntervalInvalid
	}

	l := &Loyalty{CompanyID: companyID, MaintenanceInterval: interval, MaintenancePrice: price}
	if err := s.repo.UpsertLoyalty(ctx, l); err != nil {
		return nil, err
	}

	return l, nil
}
