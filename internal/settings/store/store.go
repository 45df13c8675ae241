package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"github.com/frostdesk/frostdesk/internal/settings"
)

type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

func (s *Store) GetLoyalty(ctx context.Context, companyID uuid.UUID) (*settings.Loyalty, error) {
	query := `
		SELECT company_id, maintenance_interval, maintenance_price, updated_at
		FROM loyalty_settings
		WHERE company_id = $1`

	var l settings.Loyalty

	err := s.db.QueryRowContext(ctx, query, companyID).
		Scan(&l.CompanyID, &l.MaintenanceInterval, &l.MaintenancePrice, &l.UpdatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, settings.ErrNotFound
		}

		return nil, fmt.Errorf("getting loyalty settings: %w", err)
	}

	return &l, nil
}

func (s *Store) UpsertLoyalty(ctx context.Context, l *settings.Loyalty) error {
	query := `
		INSERT INTO loyalty_settings (company_id, maintenance_interval, maintenance_price, created_at, updated_at)
		VALUES ($1, $2, $3, NOW(), NOW())
		ON CONFLICT (company_id)
		DO UPDATE SET maintenance_interval = EXCLUDED.maintenance_interval,
			maintenance_price = EXCLUDED.maintenance_price, updated_at = NOW()
		RETURNING updated_at
	`

	err := s.db.QueryRowContext(ctx, query, l.CompanyID, l.MaintenanceInterval, l.MaintenancePrice).
		Scan(&l.UpdatedAt)
	if err != nil {
		return fmt.Errorf("upserting loyalty settings: %w", err)
	}

	return nil
}
