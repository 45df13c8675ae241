package messaging

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
)

var ErrBodyRequired = errors.New("template body is required")

// Kinds of loyalty notifications the message pipeline produces. Sending
// happens outside this system; these rows are read models for display.
const (
	KindWelcome     = "welcome"
	KindMaintenance = "maintenance_reminder"
)

type SentMessage struct {
	ID         uuid.UUID
	CompanyID  uuid.UUID
	ClientID   *uuid.UUID
	ClientName string // Loaded via JOIN
	Kind       string
	Body       string
	SentAt     time.Time
}

type ScheduledMessage struct {
	ID           uuid.UUID
	CompanyID    uuid.UUID
	ClientID     *uuid.UUID
	ClientName   string // Loaded via JOIN
	Kind         string
	Body         string
	ScheduledFor time.Time
	CreatedAt    time.Time
}

// Template is the per-company text for one message kind. `{client}` and
// `{company}` placeholders are substituted by the sender.
type Template struct {
	ID        uuid.UUID
	CompanyID uuid.UUID
	Kind      string
	Body      string
	UpdatedAt *time.Time
}

type Repository interface {
	ListSentMessages(ctx context.Context, companyID uuid.UUID, clientID *uuid.UUID) ([]*SentMessage, error)
	ListScheduledMessages(ctx context.Context, companyID uuid.UUID, clientID *uuid.UUID) ([]*ScheduledMessage, error)
	ListTemplates(ctx context.Context, companyID uuid.UUID) ([]*Template, error)
	UpsertTemplate(ctx context.Context, t *Template) error
}

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// ListSent returns sent messages, optionally narrowed to one client for the
// client detail view.
func (s *Service) ListSent(ctx context.Context, companyID uuid.UUID, clientID *uuid.UUID) ([]*SentMessage, error) {
	return s.repo.ListSentMessages(ctx, companyID, clientID)
}

func (s *Service) ListScheduled(ctx context.Context, companyID uuid.UUID, clientID *uuid.UUID) ([]*ScheduledMessage, error) {
	return s.repo.ListScheduledMessages(ctx, companyID, clientID)
}

func (s *Service) Templates(ctx context.Context, companyID uuid.UUID) ([]*Template, error) {
	return s.repo.ListTemplates(ctx, companyID)
}

func (s *Service) SaveTemplate(ctx context.Context, companyID uuid.UUID, kind, body string) (*Template, error) {
	if body == "" {
		return nil, ErrBodyRequired
	}

	t := &Template{CompanyID: companyID, Kind: kind, Body: body}
	if err := s.repo.UpsertTemplate(ctx, t); err != nil {
		return nil, err
	}

	return t, nil
}
