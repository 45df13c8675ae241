package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"github.com/frostdesk/frostdesk/internal/collaborator"
)

type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

func (s *Store) CreateCollaborator(ctx context.Context, c *collaborator.Collaborator) error {
	query := `
		INSERT INTO collaborators (company_id, name, created_at, updated_at)
		VALUES ($1, $2, NOW(), NOW())
		RETURNING id, created_at, updated_at
	`

	err := s.db.QueryRowContext(ctx, query, c.CompanyID, c.Name).
		Scan(&c.ID, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return fmt.Errorf("creating collaborator: %w", err)
	}

	return nil
}

func (s *Store) ListCollaborators(ctx context.Context, companyID uuid.UUID, search string) ([]*collaborator.Collaborator, error) {
	query := `
		SELECT id, company_id, name, created_at, updated_at
		FROM collaborators
		WHERE company_id = $1`

	args := []any{companyID}

	if search != "" {
		query += ` AND name ILIKE '%' || $2 || '%'`
		args = append(args, search)
	}

	query += ` ORDER BY name ASC`

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing collaborators: %w", err)
	}
	defer rows.Close()

	var collaborators []*collaborator.Collaborator

	for rows.Next() {
		var c collaborator.Collaborator
		if err := rows.Scan(&c.ID, &c.CompanyID, &c.Name, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scanning collaborator: %w", err)
		}

		collaborators = append(collaborators, &c)
	}

	return collaborators, rows.Err()
}

func (s *Store) UpdateCollaborator(ctx context.Context, c *collaborator.Collaborator) error {
	query := `
		UPDATE collaborators
		SET name = $1, updated_at = NOW()
		WHERE id = $2 AND company_id = $3
	`

	_, err := s.db.ExecContext(ctx, query, c.Name, c.ID, c.CompanyID)
	if err != nil {
		return fmt.Errorf("updating collaborator: %w", err)
	}

	return nil
}

func (s *Store) DeleteCollaborator(ctx context.Context, companyID, id uuid.UUID) error {
	query := `DELETE FROM collaborators WHERE id = $1 AND company_id = $2`

	_, err := s.db.ExecContext(ctx, query, id, companyID)
	if err != nil {
		return fmt.Errorf("deleting collaborator: %w", err)
	}

	return nil
}
