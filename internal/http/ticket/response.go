package ticket

import (
	"time"

	"github.com/google/uuid"

	"github.com/frostdesk/frostdesk/internal/ticket"
)

type ticketResponse struct {
	ID             uuid.UUID      `json:"id"`
	ServiceDate    time.Time      `json:"service_date"`
	ServiceType    string         `json:"service_type"`
	ClientID       *uuid.UUID     `json:"client_id,omitempty"`
	Client         *refResponse   `json:"client,omitempty"`
	CollaboratorID *uuid.UUID     `json:"collaborator_id,omitempty"`
	Collaborator   *refResponse   `json:"collaborator,omitempty"`
	Notes          string         `json:"notes,omitempty"`
	TotalValue     int64          `json:"total_value"`
	Items          []lineResponse `json:"items,omitempty"`
	CreatedAt      time.Time      `json:"created_at"`
	UpdatedAt      *time.Time     `json:"updated_at,omitempty"`
}

type refResponse struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
}

type lineResponse struct {
	ID              uuid.UUID `json:"id"`
	InventoryItemID uuid.UUID `json:"inventory_item_id"`
	Name            string    `json:"name"`
	Quantity        int       `json:"quantity"`
	Price           int64     `json:"price"`
	Subtotal        int64     `json:"subtotal"`
}

func toResponse(t *ticket.Ticket) ticketResponse {
	resp := ticketResponse{
		ID:             t.ID,
		ServiceDate:    t.ServiceDate,
		ServiceType:    t.ServiceType,
		ClientID:       t.ClientID,
		CollaboratorID: t.CollaboratorID,
		Notes:          t.Notes,
		TotalValue:     t.TotalValue,
		CreatedAt:      t.CreatedAt,
		UpdatedAt:      t.UpdatedAt,
	}

	if t.Client != nil {
		resp.Client = &refResponse{ID: t.Client.ID, Name: t.Client.FullName}
	}

	if t.Collaborator != nil {
		resp.Collaborator = &refResponse{ID: t.Collaborator.ID, Name: t.Collaborator.Name}
	}

	for _, l := range t.Lines {
		resp.Items = append(resp.Items, lineResponse{
			ID:              l.ID,
			InventoryItemID: l.InventoryItemID,
			Name:            l.Name,
			Quantity:        l.Quantity,
			Price:           l.Price,
			Subtotal:        l.Subtotal(),
		})
	}

	return resp
}

func toResponseList(tickets []*ticket.Ticket) []ticketResponse {
	resp := make([]ticketResponse, len(tickets))
	for i, t := range tickets {
		resp[i] = toResponse(t)
	}

	return resp
}
