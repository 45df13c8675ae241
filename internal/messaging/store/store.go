package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"github.com/frostdesk/frostdesk/internal/messaging"
)

type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

func (s *Store) ListSentMessages(ctx context.Context, companyID uuid.UUID, clientID *uuid.UUID) ([]*messaging.SentMessage, error) {
	query := `
		SELECT m.id, m.company_id, m.client_id, COALESCE(c.full_name, ''), m.kind, m.body, m.sent_at
		FROM sent_messages m
		LEFT JOIN clients c ON m.client_id = c.id
		WHERE m.company_id = $1`

	args := []any{companyID}

	if clientID != nil {
		query += ` AND m.client_id = $2`
		args = append(args, *clientID)
	}

	query += ` ORDER BY m.sent_at DESC`

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing sent messages: %w", err)
	}
	defer rows.Close()

	var messages []*messaging.SentMessage

	for rows.Next() {
		var m messaging.SentMessage
		if err := rows.Scan(&m.ID, &m.CompanyID, &m.ClientID, &m.ClientName, &m.Kind, &m.Body, &m.SentAt); err != nil {
			return nil, fmt.Errorf("scanning sent message: %w", err)
		}

		messages = append(messages, &m)
	}

	return messages, rows.Err()
}

func (s *Store) ListScheduledMessages(ctx context.Context, companyID uuid.UUID, clientID *uuid.UUID) ([]*messaging.ScheduledMessage, error) {
	query := `
		SELECT m.id, m.company_id, m.client_id, COALESCE(c.full_name, ''), m.kind, m.body, m.scheduled_for, m.created_at
		FROM scheduled_messages m
		LEFT JOIN clients c ON m.client_id = c.id
		WHERE m.company_id = $1`

	args := []any{companyID}

	if clientID != nil {
		query += ` AND m.client_id = $2`
		args = append(args, *clientID)
	}

	query += ` ORDER BY m.scheduled_for ASC`

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing scheduled messages: %w", err)
	}
	defer rows.Close()

	var messages []*messaging.ScheduledMessage

	for rows.Next() {
		var m messaging.ScheduledMessage
		if err := rows.Scan(&m.ID, &m.CompanyID, &m.ClientID, &m.ClientName, &m.Kind, &m.Body, &m.ScheduledFor, &m.CreatedAt); err != nil {
			return nil, fmt.Errorf("scanning scheduled message: %w", err)
		}

		messages = append(messages, &m)
	}

	return messages, rows.Err()
}

func (s *Store) ListTemplates(ctx context.Context, companyID uuid.UUID) ([]*messaging.Template, error) {
	query := `
		SELECT id, company_id, kind, body, updated_at
		FROM message_templates
		WHERE company_id = $1
		ORDER BY kind ASC`

	rows, err := s.db.QueryContext(ctx, query, companyID)
	if err != nil {
		return nil, fmt.Errorf("listing templates: %w", err)
	}
	defer rows.Close()

	var templates []*messaging.Template

	for rows.Next() {
		var t messaging.Template
		if err := rows.Scan(&t.ID, &t.CompanyID, &t.Kind, &t.Body, &t.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scanning template: %w", err)
		}

		templates = append(templates, &t)
	}

	return templates, rows.Err()
}

func (s *Store) UpsertTemplate(ctx context.Context, t *messaging.Template) error {
	query := `
		INSERT INTO message_templates (company_id, kind, body, created_at, updated_at)
		VALUES ($1, $2, $3, NOW(), NOW())
		ON CONFLICT (company_id, kind)
		DO UPDATE SET body = EXCLUDED.body, updated_at = NOW()
		RETURNING id, updated_at
	`

	err := s.db.QueryRowContext(ctx, query, t.CompanyID, t.Kind, t.Body).
		Scan(&t.ID, &t.UpdatedAt)
	if err != nil {
		return fmt.Errorf("upserting template: %w", err)
	}

	return nil
}
