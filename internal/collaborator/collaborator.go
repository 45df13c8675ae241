package collaborator

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
)

var (
	ErrNotFound     = errors.New("collaborator not found")
	ErrNameRequired = errors.New("name is required")
)

// Collaborator performs service tickets. Name-only entity.
type Collaborator struct {
	ID        uuid.UUID
	CompanyID uuid.UUID
	Name      string
	CreatedAt time.Time
	UpdatedAt *time.Time
}

type Repository interface {
	CreateCollaborator(ctx context.Context, c *Collaborator) error
	ListCollaborators(ctx context.Context, companyID uuid.UUID, search string) ([]*Collaborator, error)
	UpdateCollaborator(ctx context.Context, c *Collaborator) error
	DeleteCollaborator(ctx context.Context, companyID, id uuid.UUID) error
}

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) Create(ctx context.Context, companyID uuid.UUID, name string) (*Collaborator, error) {
	if name == "" {
		return nil, ErrNameRequired
	}

	c := &Collaborator{CompanyID: companyID, Name: name}
	if err := s.repo.CreateCollaborator(ctx, c); err != nil {
		return nil, err
	}

	return c, nil
}

func (s *Service) List(ctx context.Context, companyID uuid.UUID, search string) ([]*Collaborator, error) {
	return s.repo.ListCollaborators(ctx, companyID, search)
}

func (s *Service) Update(ctx context.Context, c *Collaborator) error {
	if c.Name == "" {
		return ErrNameRequired
	}

	return s.repo.UpdateCollaborator(ctx, c)
}

func (s *Service) Delete(ctx context.Context, companyID, id uuid.UUID) error {
	return s.repo.DeleteCollaborator(ctx, companyID, id)
}
