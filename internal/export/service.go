package export

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"

	"github.com/google/uuid"

	"github.com/frostdesk/frostdesk/internal/client"
	"github.com/frostdesk/frostdesk/internal/financial"
)

// ClientDirectory resolves client names for the exported rows. Satisfied by
// client.Service.
type ClientDirectory interface {
	Get(ctx context.Context, companyID, id uuid.UUID) (*client.Client, error)
}

// Service writes date-ranged financial entries as CSV for download.
type Service struct {
	entries *financial.Service
	clients ClientDirectory
}

func NewService(entries *financial.Service, clients ClientDirectory) *Service {
	return &Service{entries: entries, clients: clients}
}

var header = []string{"entry_date", "value", "client", "service_type", "notes"}

// WriteCSV streams the matching entries to w, newest first as stored. Client
// names are resolved once per distinct client.
func (s *Service) WriteCSV(ctx context.Context, companyID uuid.UUID, filter financial.ListFilter, w io.Writer) error {
	entries, err := s.entries.List(ctx, companyID, filter)
	if err != nil {
		return fmt.Errorf("listing entries: %w", err)
	}

	cw := csv.NewWriter(w)

	if err := cw.Write(header); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}

	names := make(map[uuid.UUID]string)

	for _, e := range entries {
		clientName := ""

		if e.ClientID != nil {
			name, ok := names[*e.ClientID]
			if !ok {
				c, err := s.clients.Get(ctx, companyID, *e.ClientID)
				if err != nil {
					return fmt.Errorf("resolving client %s: %w", e.ClientID, err)
				}

				name = c.FullName
				names[*e.ClientID] = name
			}

			clientName = name
		}

		serviceType := ""
		if e.Service != nil {
			serviceType = e.Service.ServiceType
		}

		row := []string{
			e.EntryDate.Format("2006-01-02"),
			formatCents(e.Value),
			clientName,
			serviceType,
			e.Notes,
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("writing row: %w", err)
		}
	}

	cw.Flush()

	return cw.Error()
}

// formatCents renders an amount in cents as a decimal string, e.g. "12.50".
func formatCents(v int64) string {
	sign := ""
	if v < 0 {
		sign = "-"
		v = -v
	}

	return fmt.Sprintf("%s%d.%02d", sign, v/100, v%100)
}
