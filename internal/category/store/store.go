package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"github.com/frostdesk/frostdesk/internal/category"
)

type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

func (s *Store) CreateCategory(ctx context.Context, c *category.Category) error {
	query := `
		INSERT INTO categories (company_id, name, type, created_at, updated_at)
		VALUES ($1, $2, $3, NOW(), NOW())
		RETURNING id, created_at, updated_at
	`

	err := s.db.QueryRowContext(ctx, query, c.CompanyID, c.Name, c.Type).
		Scan(&c.ID, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return fmt.Errorf("creating category: %w", err)
	}

	return nil
}

func (s *Store) ListCategories(ctx context.Context, companyID uuid.UUID, typ *category.Type) ([]*category.Category, error) {
	query := `
		SELECT id, company_id, name, type, created_at, updated_at
		FROM categories
		WHERE company_id = $1`

	args := []any{companyID}

	if typ != nil {
		query += ` AND type = $2`
		args = append(args, *typ)
	}

	query += ` ORDER BY name ASC`

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing categories: %w", err)
	}
	defer rows.Close()

	var categories []*category.Category

	for rows.Next() {
		var c category.Category

		var typeStr string

		if err := rows.Scan(&c.ID, &c.CompanyID, &c.Name, &typeStr, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scanning category: %w", err)
		}

		c.Type = category.Type(typeStr)

		categories = append(categories, &c)
	}

	return categories, rows.Err()
}

// UpdateCategoryName deliberately leaves the type column untouched.
func (s *Store) UpdateCategoryName(ctx context.Context, companyID, id uuid.UUID, name string) error {
	query := `
		UPDATE categories
		SET name = $1, updated_at = NOW()
		WHERE id = $2 AND company_id = $3
	`

	_, err := s.db.ExecContext(ctx, query, name, id, companyID)
	if err != nil {
		return fmt.Errorf("updating category: %w", err)
	}

	return nil
}

func (s *Store) DeleteCategory(ctx context.Context, companyID, id uuid.UUID) error {
	query := `DELETE FROM categories WHERE id = $1 AND company_id = $2`

	_, err := s.db.ExecContext(ctx, query, id, companyID)
	if err != nil {
		return fmt.Errorf("deleting category: %w", err)
	}

	return nil
}
