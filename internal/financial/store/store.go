package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"github.com/frostdesk/frostdesk/internal/financial"
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

// Expected column order: id, company_id, entry_date, value, client_id,
// service_id, service_type, notes, created_at, updated_at
func scanEntry(s scanner) (*financial.Entry, error) {
	var e financial.Entry

	var notes, serviceType sql.NullString

	if err := s.Scan(
		&e.ID, &e.CompanyID, &e.EntryDate, &e.Value, &e.ClientID,
		&e.ServiceID, &serviceType, &notes,
		&e.CreatedAt, &e.UpdatedAt,
	); err != nil {
		return nil, err
	}

	e.Notes = notes.String

	if e.ServiceID != nil && serviceType.Valid {
		e.Service = &financial.ServiceRef{
			ID:          *e.ServiceID,
			ServiceType: serviceType.String,
		}
	}

	return &e, nil
}

const selectEntryColumns = `
	f.id, f.company_id, f.entry_date, f.value, f.client_id,
	f.service_id, s.service_type, f.notes, f.created_at, f.updated_at
`

func (st *Store) CreateEntry(ctx context.Context, e *financial.Entry) error {
	query := `
		INSERT INTO financial_entries (company_id, entry_date, value, client_id, service_id, notes, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, NOW(), NOW())
		RETURNING id, created_at, updated_at
	`

	err := st.db.QueryRowContext(ctx, query,
		e.CompanyID,
		e.EntryDate,
		e.Value,
		e.ClientID,
		e.ServiceID,
		e.Notes,
	).Scan(&e.ID, &e.CreatedAt, &e.UpdatedAt)
	if err != nil {
		return fmt.Errorf("creating financial entry: %w", err)
	}

	return nil
}

func (st *Store) GetEntry(ctx context.Context, companyID, id uuid.UUID) (*financial.Entry, error) {
	query := `SELECT ` + selectEntryColumns + `
		FROM financial_entries f
		LEFT JOIN services s ON f.service_id = s.id
		WHERE f.id = $1 AND f.company_id = $2`

	e, err := scanEntry(st.db.QueryRowContext(ctx, query, id, companyID))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, financial.ErrNotFound
		}

		return nil, fmt.Errorf("getting financial entry: %w", err)
	}

	return e, nil
}

func (st *Store) ListEntries(ctx context.Context, companyID uuid.UUID, filter financial.ListFilter) ([]*financial.Entry, error) {
	query := `SELECT ` + selectEntryColumns + `
		FROM financial_entries f
		LEFT JOIN services s ON f.service_id = s.id
		WHERE f.company_id = $1`

	args := []any{companyID}
	argIdx := 2

	if filter.StartDate != nil {
		query += fmt.Sprintf(" AND f.entry_date >= $%d", argIdx)

		args = append(args, *filter.StartDate)
		argIdx++
	}

	if filter.EndDate != nil {
		query += fmt.Sprintf(" AND f.entry_date <= $%d", argIdx)

		args = append(args, *filter.EndDate)
		argIdx++
	}

	if filter.ClientID != nil {
		query += fmt.Sprintf(" AND f.client_id = $%d", argIdx)

		args = append(args, *filter.ClientID)
		argIdx++
	}

	query += " ORDER BY f.entry_date ASC"

	rows, err := st.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing financial entries: %w", err)
	}
	defer rows.Close()

	var entries []*financial.Entry

	for rows.Next() {
		e, err := scanEntry(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning financial entry: %w", err)
		}

		entries = append(entries, e)
	}

	return entries, rows.Err()
}

func (st *Store) UpdateEntry(ctx context.Context, e *financial.Entry) error {
	query := `
		UPDATE financial_entries
		SET entry_date = $1, value = $2, client_id = $3, service_id = $4, notes = $5, updated_at = NOW()
		WHERE id = $6 AND company_id = $7
	`

	_, err := st.db.ExecContext(ctx, query,
		e.EntryDate,
		e.Value,
		e.ClientID,
		e.ServiceID,
		e.Notes,
		e.ID,
		e.CompanyID,
	)
	if err != nil {
		return fmt.Errorf("updating financial entry: %w", err)
	}

	return nil
}

func (st *Store) DeleteEntry(ctx context.Context, companyID, id uuid.UUID) error {
	query := `DELETE FROM financial_entries WHERE id = $1 AND company_id = $2`

	_, err := st.db.ExecContext(ctx, query, id, companyID)
	if err != nil {
		return fmt.Errorf("deleting financial entry: %w", err)
	}

	return nil
}
