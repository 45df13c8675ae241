package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"github.com/frostdesk/frostdesk/internal/client"
)

type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

type scanner interface {
	Scan(dest ...any) error
}

// Expected column order: id, company_id, full_name, formal_name, phone, address,
// district, city, notes, send_welcome_message, send_maintenance_reminders,
// created_at, updated_at
func scanClient(s scanner) (*client.Client, error) {
	var c client.Client

	var formalName, phone, address, district, city, notes sql.NullString

	var welcome, reminders sql.NullBool

	if err := s.Scan(
		&c.ID, &c.CompanyID, &c.FullName, &formalName, &phone, &address,
		&district, &city, &notes, &welcome, &reminders,
		&c.CreatedAt, &c.UpdatedAt,
	); err != nil {
		return nil, err
	}

	c.FormalName = formalName.String
	c.Phone = phone.String
	c.Address = address.String
	c.District = district.String
	c.City = city.String
	c.Notes = notes.String
	c.SendWelcomeMessage = welcome.Bool
	c.SendMaintenanceReminders = reminders.Bool

	return &c, nil
}

const selectClientColumns = `
	c.id, c.company_id, c.full_name, c.formal_name, c.phone, c.address,
	c.district, c.city, c.notes, c.send_welcome_message, c.send_maintenance_reminders,
	c.created_at, c.updated_at
`

func (s *Store) CreateClient(ctx context.Context, c *client.Client) error {
	query := `
		INSERT INTO clients (company_id, full_name, formal_name, phone, address, district, city,
			notes, send_welcome_message, send_maintenance_reminders, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, NOW(), NOW())
		RETURNING id, created_at, updated_at
	`

	err := s.db.QueryRowContext(ctx, query,
		c.CompanyID,
		c.FullName,
		c.FormalName,
		c.Phone,
		c.Address,
		c.District,
		c.City,
		c.Notes,
		c.SendWelcomeMessage,
		c.SendMaintenanceReminders,
	).Scan(&c.ID, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return fmt.Errorf("creating client: %w", err)
	}

	return nil
}

func (s *Store) GetClient(ctx context.Context, companyID, id uuid.UUID) (*client.Client, error) {
	query := `SELECT ` + selectClientColumns + `
		FROM clients c
		WHERE c.id = $1 AND c.company_id = $2`

	c, err := scanClient(s.db.QueryRowContext(ctx, query, id, companyID))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, client.ErrNotFound
		}

		return nil, fmt.Errorf("getting client: %w", err)
	}

	return c, nil
}

func (s *Store) ListClients(ctx context.Context, companyID uuid.UUID, search string) ([]*client.Client, error) {
	query := `SELECT ` + selectClientColumns + `
		FROM clients c
		WHERE c.company_id = $1`

	args := []any{companyID}

	if search != "" {
		query += ` AND (c.full_name ILIKE '%' || $2 || '%' OR c.phone ILIKE '%' || $2 || '%')`
		args = append(args, search)
	}

	query += ` ORDER BY c.full_name ASC`

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing clients: %w", err)
	}
	defer rows.Close()

	var clients []*client.Client

	for rows.Next() {
		c, err := scanClient(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning client: %w", err)
		}

		clients = append(clients, c)
	}

	return clients, rows.Err()
}

func (s *Store) CountClients(ctx context.Context, companyID uuid.UUID) (int, error) {
	var count int

	err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM clients WHERE company_id = $1`, companyID,
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("counting clients: %w", err)
	}

	return count, nil
}

func (s *Store) UpdateClient(ctx context.Context, c *client.Client) error {
	query := `
		UPDATE clients
		SET full_name = $1, formal_name = $2, phone = $3, address = $4, district = $5,
			city = $6, notes = $7, send_welcome_message = $8, send_maintenance_reminders = $9,
			updated_at = NOW()
		WHERE id = $10 AND company_id = $11
	`

	_, err := s.db.ExecContext(ctx, query,
		c.FullName,
		c.FormalName,
		c.Phone,
		c.Address,
		c.District,
		c.City,
		c.Notes,
		c.SendWelcomeMessage,
		c.SendMaintenanceReminders,
		c.ID,
		c.CompanyID,
	)
	if err != nil {
		return fmt.Errorf("updating client: %w", err)
	}

	return nil
}

func (s *Store) DeleteClient(ctx context.Context, companyID, id uuid.UUID) error {
	query := `DELETE FROM clients WHERE id = $1 AND company_id = $2`

	_, err := s.db.ExecContext(ctx, query, id, companyID)
	if err != nil {
		return fmt.Errorf("deleting client: %w", err)
	}

	return nil
}

// CreateClients bulk-inserts imported clients in one transaction.
func (s *Store) CreateClients(ctx context.Context, clients []*client.Client) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning import tx: %w", err)
	}
	defer tx.Rollback()

	query := `
		INSERT INTO clients (company_id, full_name, formal_name, phone, address, district, city,
			notes, send_welcome_message, send_maintenance_reminders, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, NOW(), NOW())
		RETURNING id, created_at
	`

	for _, c := range clients {
		err := tx.QueryRowContext(ctx, query,
			c.CompanyID,
			c.FullName,
			c.FormalName,
			c.Phone,
			c.Address,
			c.District,
			c.City,
			c.Notes,
			c.SendWelcomeMessage,
			c.SendMaintenanceReminders,
		).Scan(&c.ID, &c.CreatedAt)
		if err != nil {
			return fmt.Errorf("creating client: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing import: %w", err)
	}

	return nil
}
