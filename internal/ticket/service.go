package ticket

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/frostdesk/frostdesk/internal/client"
	"github.com/frostdesk/frostdesk/internal/financial"
)

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=ticket
type Repository interface {
	GetTicket(ctx context.Context, companyID, id uuid.UUID) (*Ticket, error)
	ListTickets(ctx context.Context, companyID uuid.UUID, filter ListFilter) ([]*Ticket, error)
	CountTickets(ctx context.Context, companyID uuid.UUID) (int, error)
	DeleteTicket(ctx context.Context, companyID, id uuid.UUID) error

	BeginSubmit(ctx context.Context) (SubmitTx, error)
}

// SubmitTx is the transaction boundary for the three-table commit: the
// ticket row, its line rows, and the derived financial entry either all
// land or none do.
type SubmitTx interface {
	CreateTicket(ctx context.Context, t *Ticket) error
	UpdateTicket(ctx context.Context, t *Ticket) error
	DeleteLines(ctx context.Context, ticketID uuid.UUID) error
	CreateLines(ctx context.Context, ticketID uuid.UUID, lines []Line) error
	UpsertEntry(ctx context.Context, e *financial.Entry) error
	Commit() error
	Rollback() error
}

// ClientDirectory resolves client references for the derived entry notes.
// Satisfied by client.Service.
type ClientDirectory interface {
	Get(ctx context.Context, companyID, id uuid.UUID) (*client.Client, error)
}

type Service struct {
	repo    Repository
	clients ClientDirectory
}

func NewService(repo Repository, clients ClientDirectory) *Service {
	return &Service{repo: repo, clients: clients}
}

type SubmitParams struct {
	ServiceDate    time.Time
	ServiceType    string
	ClientID       *uuid.UUID
	CollaboratorID *uuid.UUID
	Notes          string
}

type ListFilter struct {
	StartDate *time.Time
	EndDate   *time.Time
	ClientID  *uuid.UUID
	Search    string
}

// Submit validates the header, then persists the ticket, the full
// replacement of its line set, and — when a client is referenced — the
// derived financial entry, inside a single transaction. The entry is keyed
// by ticket id, so re-submitting an edited ticket updates its entry rather
// than stacking duplicates.
func (s *Service) Submit(ctx context.Context, companyID uuid.UUID, params SubmitParams, lines *LineList, existingID *uuid.UUID) (*Ticket, error) {
	if params.ServiceDate.IsZero() {
		return nil, ErrDateRequired
	}

	if params.ServiceType == "" {
		return nil, ErrTypeRequired
	}

	if lines == nil {
		lines = NewLineList()
	}

	// Resolve the client name before opening the transaction; it only
	// feeds the synthesized entry notes.
	var clientName string

	if params.ClientID != nil {
		c, err := s.clients.Get(ctx, companyID, *params.ClientID)
		if err != nil {
			return nil, fmt.Errorf("resolving client: %w", err)
		}

		clientName = c.FullName
	}

	t := &Ticket{
		CompanyID:      companyID,
		ServiceDate:    params.ServiceDate,
		ServiceType:    params.ServiceType,
		ClientID:       params.ClientID,
		CollaboratorID: params.CollaboratorID,
		Notes:          params.Notes,
		TotalValue:     lines.Total(),
	}

	tx, err := s.repo.BeginSubmit(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin submit: %w", err)
	}
	defer tx.Rollback()

	if existingID == nil {
		if err := tx.CreateTicket(ctx, t); err != nil {
			return nil, fmt.Errorf("create ticket: %w", err)
		}
	} else {
		t.ID = *existingID
		if err := tx.UpdateTicket(ctx, t); err != nil {
			return nil, fmt.Errorf("update ticket: %w", err)
		}

		if err := tx.DeleteLines(ctx, t.ID); err != nil {
			return nil, fmt.Errorf("delete prior lines: %w", err)
		}
	}

	if lines.Len() > 0 {
		if err := tx.CreateLines(ctx, t.ID, lines.Lines()); err != nil {
			return nil, fmt.Errorf("create lines: %w", err)
		}
	}

	if params.ClientID != nil {
		entry := &financial.Entry{
			CompanyID: companyID,
			EntryDate: params.ServiceDate,
			Value:     t.TotalValue,
			ClientID:  params.ClientID,
			ServiceID: &t.ID,
			Notes:     fmt.Sprintf("%s - %s", params.ServiceType, clientName),
		}
		if err := tx.UpsertEntry(ctx, entry); err != nil {
			return nil, fmt.Errorf("upsert financial entry: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit submit: %w", err)
	}

	t.Lines = lines.Lines()

	return t, nil
}

func (s *Service) Get(ctx context.Context, companyID, id uuid.UUID) (*Ticket, error) {
	return s.repo.GetTicket(ctx, companyID, id)
}

func (s *Service) List(ctx context.Context, companyID uuid.UUID, filter ListFilter) ([]*Ticket, error) {
	return s.repo.ListTickets(ctx, companyID, filter)
}

// Count feeds the dashboard stat cards.
func (s *Service) Count(ctx context.Context, companyID uuid.UUID) (int, error) {
	return s.repo.CountTickets(ctx, companyID)
}

func (s *Service) Delete(ctx context.Context, companyID, id uuid.UUID) error {
	return s.repo.DeleteTicket(ctx, companyID, id)
}
