package financial

import (
	"context"
	"time"

	"github.com/google/uuid"
)

type Repository interface {
	CreateEntry(ctx context.Context, e *Entry) error
	GetEntry(ctx context.Context, companyID, id uuid.UUID) (*Entry, error)
	ListEntries(ctx context.Context, companyID uuid.UUID, filter ListFilter) ([]*Entry, error)
	UpdateEntry(ctx context.Context, e *Entry) error
	DeleteEntry(ctx context.Context, companyID, id uuid.UUID) error
}

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

type CreateParams struct {
	EntryDate time.Time
	Value     int64
	ClientID  *uuid.UUID
	ServiceID *uuid.UUID
	Notes     string
}

type ListFilter struct {
	StartDate *time.Time
	EndDate   *time.Time
	ClientID  *uuid.UUID
}

func (s *Service) Create(ctx context.Context, companyID uuid.UUID, params CreateParams) (*Entry, error) {
	if params.EntryDate.IsZero() {
		return nil, ErrDateRequired
	}

	if params.Value < 0 {
		return nil, ErrValueNegative
	}

	e := &Entry{
		CompanyID: companyID,
		EntryDate: params.EntryDate,
		Value:     params.Value,
		ClientID:  params.ClientID,
		ServiceID: params.ServiceID,
		Notes:     params.Notes,
	}
	if err := s.repo.CreateEntry(ctx, e); err != nil {
		return nil, err
	}

	return e, nil
}

func (s *Service) Get(ctx context.Context, companyID, id uuid.UUID) (*Entry, error) {
	return s.repo.GetEntry(ctx, companyID, id)
}

func (s *Service) List(ctx context.Context, companyID uuid.UUID, filter ListFilter) ([]*Entry, error) {
	return s.repo.ListEntries(ctx, companyID, filter)
}

func (s *Service) Update(ctx context.Context, e *Entry) error {
	if e.EntryDate.IsZero() {
		return ErrDateRequired
	}

	if e.Value < 0 {
		return ErrValueNegative
	}

	return s.repo.UpdateEntry(ctx, e)
}

func (s *Service) Delete(ctx context.Context, companyID, id uuid.UUID) error {
	return s.repo.DeleteEntry(ctx, companyID, id)
}

// Summary is the dashboard projection over a date-bounded entry set.
type Summary struct {
	Total      int64
	Count      int
	Monthly    []MonthBucket
	Categories []CategoryBucket
}

// Summarize recomputes both chart projections from the stored entries on
// every call; nothing is cached.
func (s *Service) Summarize(ctx context.Context, companyID uuid.UUID, months int, now time.Time) (*Summary, error) {
	start := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC).AddDate(0, -(months - 1), 0)

	entries, err := s.repo.ListEntries(ctx, companyID, ListFilter{StartDate: &start})
	if err != nil {
		return nil, err
	}

	summary := &Summary{
		Count:      len(entries),
		Monthly:    MonthlySeries(entries, months, now),
		Categories: CategorySeries(entries, OtherCategory),
	}

	for _, e := range entries {
		summary.Total += e.Value
	}

	return summary, nil
}
