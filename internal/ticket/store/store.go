package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"github.com/frostdesk/frostdesk/internal/financial"
	"github.com/frostdesk/frostdesk/internal/ticket"
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

// Expected column order: id, company_id, service_date, service_type,
// client_id, client_full_name, collaborator_id, collaborator_name, notes,
// total_value, created_at, updated_at
func scanTicket(s scanner) (*ticket.Ticket, error) {
	var t ticket.Ticket

	var clientName, collaboratorName sql.NullString

	var notes sql.NullString

	if err := s.Scan(
		&t.ID, &t.CompanyID, &t.ServiceDate, &t.ServiceType,
		&t.ClientID, &clientName, &t.CollaboratorID, &collaboratorName,
		&notes, &t.TotalValue, &t.CreatedAt, &t.UpdatedAt,
	); err != nil {
		return nil, err
	}

	t.Notes = notes.String

	if t.ClientID != nil && clientName.Valid {
		t.Client = &ticket.ClientRef{ID: *t.ClientID, FullName: clientName.String}
	}

	if t.CollaboratorID != nil && collaboratorName.Valid {
		t.Collaborator = &ticket.CollaboratorRef{ID: *t.CollaboratorID, Name: collaboratorName.String}
	}

	return &t, nil
}

const selectTicketColumns = `
	t.id, t.company_id, t.service_date, t.service_type,
	t.client_id, c.full_name, t.collaborator_id, co.name,
	t.notes, t.total_value, t.created_at, t.updated_at
`

const ticketJoins = `
	FROM services t
	LEFT JOIN clients c ON t.client_id = c.id
	LEFT JOIN collaborators co ON t.collaborator_id = co.id
`

func (s *Store) GetTicket(ctx context.Context, companyID, id uuid.UUID) (*ticket.Ticket, error) {
	query := `SELECT ` + selectTicketColumns + ticketJoins + `
		WHERE t.id = $1 AND t.company_id = $2`

	t, err := scanTicket(s.db.QueryRowContext(ctx, query, id, companyID))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ticket.ErrNotFound
		}

		return nil, fmt.Errorf("getting ticket: %w", err)
	}

	lines, err := s.listLines(ctx, id)
	if err != nil {
		return nil, err
	}

	t.Lines = lines

	return t, nil
}

// listLines loads a ticket's lines with the item names joined in. Stored
// price snapshots are returned as-is, never refreshed from the catalog.
func (s *Store) listLines(ctx context.Context, ticketID uuid.UUID) ([]ticket.Line, error) {
	query := `
		SELECT si.id, si.inventory_item_id, COALESCE(ii.name, ''), si.quantity, si.price
		FROM service_items si
		LEFT JOIN inventory_items ii ON si.inventory_item_id = ii.id
		WHERE si.service_id = $1
		ORDER BY si.created_at ASC, si.id ASC`

	rows, err := s.db.QueryContext(ctx, query, ticketID)
	if err != nil {
		return nil, fmt.Errorf("listing ticket lines: %w", err)
	}
	defer rows.Close()

	var lines []ticket.Line

	for rows.Next() {
		var l ticket.Line
		if err := rows.Scan(&l.ID, &l.InventoryItemID, &l.Name, &l.Quantity, &l.Price); err != nil {
			return nil, fmt.Errorf("scanning ticket line: %w", err)
		}

		lines = append(lines, l)
	}

	return lines, rows.Err()
}

func (s *Store) ListTickets(ctx context.Context, companyID uuid.UUID, filter ticket.ListFilter) ([]*ticket.Ticket, error) {
	query := `SELECT ` + selectTicketColumns + ticketJoins + `
		WHERE t.company_id = $1`

	args := []any{companyID}
	argIdx := 2

	if filter.StartDate != nil {
		query += fmt.Sprintf(" AND t.service_date >= $%d", argIdx)

		args = append(args, *filter.StartDate)
		argIdx++
	}

	if filter.EndDate != nil {
		query += fmt.Sprintf(" AND t.service_date <= $%d", argIdx)

		args = append(args, *filter.EndDate)
		argIdx++
	}

	if filter.ClientID != nil {
		query += fmt.Sprintf(" AND t.client_id = $%d", argIdx)

		args = append(args, *filter.ClientID)
		argIdx++
	}

	if filter.Search != "" {
		query += fmt.Sprintf(" AND (t.service_type ILIKE '%%' || $%d || '%%' OR c.full_name ILIKE '%%' || $%d || '%%')", argIdx, argIdx)

		args = append(args, filter.Search)
		argIdx++
	}

	query += " ORDER BY t.service_date DESC, t.created_at DESC"

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing tickets: %w", err)
	}
	defer rows.Close()

	var tickets []*ticket.Ticket

	for rows.Next() {
		t, err := scanTicket(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning ticket: %w", err)
		}

		tickets = append(tickets, t)
	}

	return tickets, rows.Err()
}

func (s *Store) CountTickets(ctx context.Context, companyID uuid.UUID) (int, error) {
	var count int

	err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM services WHERE company_id = $1`, companyID,
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("counting tickets: %w", err)
	}

	return count, nil
}

func (s *Store) DeleteTicket(ctx context.Context, companyID, id uuid.UUID) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning delete tx: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM service_items WHERE service_id = $1`, id); err != nil {
		return fmt.Errorf("deleting ticket lines: %w", err)
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM services WHERE id = $1 AND company_id = $2`, id, companyID); err != nil {
		return fmt.Errorf("deleting ticket: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing delete: %w", err)
	}

	return nil
}

type submitTx struct {
	tx *sql.Tx
}

func (s *Store) BeginSubmit(ctx context.Context) (ticket.SubmitTx, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("beginning submit tx: %w", err)
	}

	return &submitTx{tx: tx}, nil
}

func (stx *submitTx) Commit() error   { return stx.tx.Commit() }
func (stx *submitTx) Rollback() error { return stx.tx.Rollback() }

func (stx *submitTx) CreateTicket(ctx context.Context, t *ticket.Ticket) error {
	query := `
		INSERT INTO services (company_id, service_date, service_type, client_id, collaborator_id, notes, total_value, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, NOW(), NOW())
		RETURNING id, created_at, updated_at
	`

	err := stx.tx.QueryRowContext(ctx, query,
		t.CompanyID,
		t.ServiceDate,
		t.ServiceType,
		t.ClientID,
		t.CollaboratorID,
		t.Notes,
		t.TotalValue,
	).Scan(&t.ID, &t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		return fmt.Errorf("creating ticket: %w", err)
	}

	return nil
}

func (stx *submitTx) UpdateTicket(ctx context.Context, t *ticket.Ticket) error {
	query := `
		UPDATE services
		SET service_date = $1, service_type = $2, client_id = $3, collaborator_id = $4,
			notes = $5, total_value = $6, updated_at = NOW()
		WHERE id = $7 AND company_id = $8
	`

	res, err := stx.tx.ExecContext(ctx, query,
		t.ServiceDate,
		t.ServiceType,
		t.ClientID,
		t.CollaboratorID,
		t.Notes,
		t.TotalValue,
		t.ID,
		t.CompanyID,
	)
	if err != nil {
		return fmt.Errorf("updating ticket: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("updating ticket: %w", err)
	}

	if affected == 0 {
		return ticket.ErrNotFound
	}

	return nil
}

func (stx *submitTx) DeleteLines(ctx context.Context, ticketID uuid.UUID) error {
	_, err := stx.tx.ExecContext(ctx, `DELETE FROM service_items WHERE service_id = $1`, ticketID)
	if err != nil {
		return fmt.Errorf("deleting lines: %w", err)
	}

	return nil
}

func (stx *submitTx) CreateLines(ctx context.Context, ticketID uuid.UUID, lines []ticket.Line) error {
	query := `
		INSERT INTO service_items (service_id, inventory_item_id, quantity, price, created_at)
		VALUES ($1, $2, $3, $4, NOW())
	`

	for _, l := range lines {
		if _, err := stx.tx.ExecContext(ctx, query, ticketID, l.InventoryItemID, l.Quantity, l.Price); err != nil {
			return fmt.Errorf("creating line: %w", err)
		}
	}

	return nil
}

// UpsertEntry keys the derived financial entry by service id so repeated
// edits of a ticket update the original entry instead of inserting
// duplicates.
func (stx *submitTx) UpsertEntry(ctx context.Context, e *financial.Entry) error {
	query := `
		UPDATE financial_entries
		SET entry_date = $1, value = $2, client_id = $3, notes = $4, updated_at = NOW()
		WHERE service_id = $5 AND company_id = $6
	`

	res, err := stx.tx.ExecContext(ctx, query,
		e.EntryDate,
		e.Value,
		e.ClientID,
		e.Notes,
		e.ServiceID,
		e.CompanyID,
	)
	if err != nil {
		return fmt.Errorf("updating financial entry: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("updating financial entry: %w", err)
	}

	if affected > 0 {
		return nil
	}

	insert := `
		INSERT INTO financial_entries (company_id, entry_date, value, client_id, service_id, notes, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, NOW(), NOW())
		RETURNING id
	`

	err = stx.tx.QueryRowContext(ctx, insert,
		e.CompanyID,
		e.EntryDate,
		e.Value,
		e.ClientID,
		e.ServiceID,
		e.Notes,
	).Scan(&e.ID)
	if err != nil {
		return fmt.Errorf("creating financial entry: %w", err)
	}

	return nil
}
