package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"github.com/frostdesk/frostdesk/internal/inventory"
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

// Expected column order: id, company_id, name, value, category_id, created_at, updated_at
func scanItem(s scanner) (*inventory.Item, error) {
	var item inventory.Item

	if err := s.Scan(
		&item.ID, &item.CompanyID, &item.Name, &item.Value, &item.CategoryID,
		&item.CreatedAt, &item.UpdatedAt,
	); err != nil {
		return nil, err
	}

	return &item, nil
}

const selectItemColumns = `
	i.id, i.company_id, i.name, i.value, i.category_id, i.created_at, i.updated_at
`

func (s *Store) CreateItem(ctx context.Context, item *inventory.Item) error {
	query := `
		INSERT INTO inventory_items (company_id, name, value, category_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, NOW(), NOW())
		RETURNING id, created_at, updated_at
	`

	err := s.db.QueryRowContext(ctx, query,
		item.CompanyID,
		item.Name,
		item.Value,
		item.CategoryID,
	).Scan(&item.ID, &item.CreatedAt, &item.UpdatedAt)
	if err != nil {
		return fmt.Errorf("creating inventory item: %w", err)
	}

	return nil
}

func (s *Store) GetItem(ctx context.Context, companyID, id uuid.UUID) (*inventory.Item, error) {
	query := `SELECT ` + selectItemColumns + `
		FROM inventory_items i
		WHERE i.id = $1 AND i.company_id = $2`

	item, err := scanItem(s.db.QueryRowContext(ctx, query, id, companyID))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, inventory.ErrNotFound
		}

		return nil, fmt.Errorf("getting inventory item: %w", err)
	}

	return item, nil
}

func (s *Store) ListItems(ctx context.Context, companyID uuid.UUID) ([]*inventory.Item, error) {
	query := `SELECT ` + selectItemColumns + `
		FROM inventory_items i
		WHERE i.company_id = $1
		ORDER BY i.name ASC`

	rows, err := s.db.QueryContext(ctx, query, companyID)
	if err != nil {
		return nil, fmt.Errorf("listing inventory items: %w", err)
	}
	defer rows.Close()

	var items []*inventory.Item

	for rows.Next() {
		item, err := scanItem(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning inventory item: %w", err)
		}

		items = append(items, item)
	}

	return items, rows.Err()
}

func (s *Store) UpdateItem(ctx context.Context, item *inventory.Item) error {
	query := `
		UPDATE inventory_items
		SET name = $1, value = $2, category_id = $3, updated_at = NOW()
		WHERE id = $4 AND company_id = $5
	`

	_, err := s.db.ExecContext(ctx, query,
		item.Name,
		item.Value,
		item.CategoryID,
		item.ID,
		item.CompanyID,
	)
	if err != nil {
		return fmt.Errorf("updating inventory item: %w", err)
	}

	return nil
}

func (s *Store) DeleteItem(ctx context.Context, companyID, id uuid.UUID) error {
	query := `DELETE FROM inventory_items WHERE id = $1 AND company_id = $2`

	_, err := s.db.ExecContext(ctx, query, id, companyID)
	if err != nil {
		return fmt.Errorf("deleting inventory item: %w", err)
	}

	return nil
}
