package inventory

import (
	"context"

	"github.com/google/uuid"
)

type Repository interface {
	CreateItem(ctx context.Context, item *Item) error
	GetItem(ctx context.Context, companyID, id uuid.UUID) (*Item, error)
	ListItems(ctx context.Context, companyID uuid.UUID) ([]*Item, error)
	UpdateItem(ctx context.Context, item *Item) error
	DeleteItem(ctx context.Context, companyID, id uuid.UUID) error
}

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

type Params struct {
	Name       string
	Value      int64
	CategoryID *uuid.UUID
}

func (s *Service) Create(ctx context.Context, companyID uuid.UUID, params Params) (*Item, error) {
	if params.Name == "" {
		return nil, ErrNameRequired
	}

	item := &Item{
		CompanyID:  companyID,
		Name:       params.Name,
		Value:      params.Value,
		CategoryID: params.CategoryID,
	}
	if err := s.repo.CreateItem(ctx, item); err != nil {
		return nil, err
	}

	return item, nil
}

func (s *Service) Get(ctx context.Context, companyID, id uuid.UUID) (*Item, error) {
	return s.repo.GetItem(ctx, companyID, id)
}

func (s *Service) List(ctx context.Context, companyID uuid.UUID) ([]*Item, error) {
	return s.repo.ListItems(ctx, companyID)
}

func (s *Service) Update(ctx context.Context, item *Item) error {
	if item.Name == "" {
		return ErrNameRequired
	}

	return s.repo.UpdateItem(ctx, item)
}

func (s *Service) Delete(ctx context.Context, companyID, id uuid.UUID) error {
	return s.repo.DeleteItem(ctx, companyID, id)
}
