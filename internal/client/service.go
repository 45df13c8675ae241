package client

import (
	"context"
	"errors"

	"github.com/google/uuid"
)

var ErrFullNameRequired = errors.New("full name is required")

type Repository interface {
	CreateClient(ctx context.Context, c *Client) error
	GetClient(ctx context.Context, companyID, id uuid.UUID) (*Client, error)
	ListClients(ctx context.Context, companyID uuid.UUID, search string) ([]*Client, error)
	UpdateClient(ctx context.Context, c *Client) error
	DeleteClient(ctx context.Context, companyID, id uuid.UUID) error
	CreateClients(ctx context.Context, clients []*Client) error
	CountClients(ctx context.Context, companyID uuid.UUID) (int, error)
}

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

type Params struct {
	FullName                 string
	FormalName               string
	Phone                    string
	Address                  string
	District                 string
	City                     string
	Notes                    string
	SendWelcomeMessage       bool
	SendMaintenanceReminders bool
}

func (s *Service) Create(ctx context.Context, companyID uuid.UUID, params Params) (*Client, error) {
	if params.FullName == "" {
		return nil, ErrFullNameRequired
	}

	c := &Client{
		CompanyID:                companyID,
		FullName:                 params.FullName,
		FormalName:               params.FormalName,
		Phone:                    params.Phone,
		Address:                  params.Address,
		District:                 params.District,
		City:                     params.City,
		Notes:                    params.Notes,
		SendWelcomeMessage:       params.SendWelcomeMessage,
		SendMaintenanceReminders: params.SendMaintenanceReminders,
	}
	if err := s.repo.CreateClient(ctx, c); err != nil {
		return nil, err
	}

	return c, nil
}

func (s *Service) Get(ctx context.Context, companyID, id uuid.UUID) (*Client, error) {
	return s.repo.GetClient(ctx, companyID, id)
}

// List returns the company's clients, optionally filtered by a
// case-insensitive substring match on full name or phone.
func (s *Service) List(ctx context.Context, companyID uuid.UUID, search string) ([]*Client, error) {
	return s.repo.ListClients(ctx, companyID, search)
}

// Count feeds the dashboard stat cards.
func (s *Service) Count(ctx context.Context, companyID uuid.UUID) (int, error) {
	return s.repo.CountClients(ctx, companyID)
}

func (s *Service) Update(ctx context.Context, c *Client) error {
	if c.FullName == "" {
		return ErrFullNameRequired
	}

	return s.repo.UpdateClient(ctx, c)
}

func (s *Service) Delete(ctx context.Context, companyID, id uuid.UUID) error {
	return s.repo.DeleteClient(ctx, companyID, id)
}

// CreateBatch inserts imported clients in one transaction.
func (s *Service) CreateBatch(ctx context.Context, companyID uuid.UUID, params []Params) ([]*Client, error) {
	if len(params) == 0 {
		return nil, nil
	}

	clients := make([]*Client, 0, len(params))

	for _, p := range params {
		if p.FullName == "" {
			return nil, ErrFullNameRequired
		}

		clients = append(clients, &Client{
			CompanyID:                companyID,
			FullName:                 p.FullName,
			FormalName:               p.FormalName,
			Phone:                    p.Phone,
			Address:                  p.Address,
			District:                 p.District,
			City:                     p.City,
			Notes:                    p.Notes,
			SendWelcomeMessage:       p.SendWelcomeMessage,
			SendMaintenanceReminders: p.SendMaintenanceReminders,
		})
	}

	if err := s.repo.CreateClients(ctx, clients); err != nil {
		return nil, err
	}

	return clients, nil
}
