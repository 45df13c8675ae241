package category

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
)

var (
	ErrNotFound     = errors.New("category not found")
	ErrNameRequired = errors.New("name is required")
	ErrInvalidType  = errors.New("type must be product or service")
)

// Type classifies what a category applies to. Immutable after creation.
type Type string

const (
	TypeProduct Type = "product"
	TypeService Type = "service"
)

// Category classifies inventory items (product) or populates the service
// type selector (service).
type Category struct {
	ID        uuid.UUID
	CompanyID uuid.UUID
	Name      string
	Type      Type
	CreatedAt time.Time
	UpdatedAt *time.Time
}

type Repository interface {
	CreateCategory(ctx context.Context, c *Category) error
	ListCategories(ctx context.Context, companyID uuid.UUID, typ *Type) ([]*Category, error)
	UpdateCategoryName(ctx context.Context, companyID, id uuid.UUID, name string) error
	DeleteCategory(ctx context.Context, companyID, id uuid.UUID) error
}

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) Create(ctx context.Context, companyID uuid.UUID, name string, typ Type) (*Category, error) {
	if name == "" {
		return nil, ErrNameRequired
	}

	if typ != TypeProduct && typ != TypeService {
		return nil, ErrInvalidType
	}

	c := &Category{CompanyID: companyID, Name: name, Type: typ}
	if err := s.repo.CreateCategory(ctx, c); err != nil {
		return nil, err
	}

	return c, nil
}

func (s *Service) List(ctx context.Context, companyID uuid.UUID, typ *Type) ([]*Category, error) {
	return s.repo.ListCategories(ctx, companyID, typ)
}

// Rename changes the category name. The type is never updated.
func (s *Service) Rename(ctx context.Context, companyID, id uuid.UUID, name string) error {
	if name == "" {
		return ErrNameRequired
	}

	return s.repo.UpdateCategoryName(ctx, companyID, id, name)
}

func (s *Service) Delete(ctx context.Context, companyID, id uuid.UUID) error {
	return s.repo.DeleteCategory(ctx, companyID, id)
}
