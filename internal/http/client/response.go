package client

import (
	"time"

	"github.com/google/uuid"

	"github.com/frostdesk/frostdesk/internal/client"
	"github.com/frostdesk/frostdesk/internal/messaging"
	"github.com/frostdesk/frostdesk/internal/ticket"
)

type clientResponse struct {
	ID                       uuid.UUID  `json:"id"`
	FullName                 string     `json:"full_name"`
	FormalName               string     `json:"formal_name,omitempty"`
	Phone                    string     `json:"phone,omitempty"`
	Address                  string     `json:"address,omitempty"`
	District                 string     `json:"district,omitempty"`
	City                     string     `json:"city,omitempty"`
	Notes                    string     `json:"notes,omitempty"`
	SendWelcomeMessage       bool       `json:"send_welcome_message"`
	SendMaintenanceReminders bool       `json:"send_maintenance_reminders"`
	CreatedAt                time.Time  `json:"created_at"`
	UpdatedAt                *time.Time `json:"updated_at,omitempty"`
}

func toResponse(c *client.Client) clientResponse {
	return clientResponse{
		ID:                       c.ID,
		FullName:                 c.FullName,
		FormalName:               c.FormalName,
		Phone:                    c.Phone,
		Address:                  c.Address,
		District:                 c.District,
		City:                     c.City,
		Notes:                    c.Notes,
		SendWelcomeMessage:       c.SendWelcomeMessage,
		SendMaintenanceReminders: c.SendMaintenanceReminders,
		CreatedAt:                c.CreatedAt,
		UpdatedAt:                c.UpdatedAt,
	}
}

func toResponseList(clients []*client.Client) []clientResponse {
	resp := make([]clientResponse, len(clients))
	for i, c := range clients {
		resp[i] = toResponse(c)
	}

	return resp
}

type ticketSummaryResponse struct {
	ID          uuid.UUID `json:"id"`
	ServiceDate time.Time `json:"service_date"`
	ServiceType string    `json:"service_type"`
	TotalValue  int64     `json:"total_value"`
}

type messageResponse struct {
	ID     uuid.UUID `json:"id"`
	Kind   string    `json:"kind"`
	Body   string    `json:"body"`
	SentAt time.Time `json:"sent_at"`
}

type scheduledMessageResponse struct {
	ID           uuid.UUID `json:"id"`
	Kind         string    `json:"kind"`
	Body         string    `json:"body"`
	ScheduledFor time.Time `json:"scheduled_for"`
}

// detailResponse is the client page payload: the record plus its service
// history and message history.
type detailResponse struct {
	clientResponse
	Services          []ticketSummaryResponse    `json:"services"`
	Messages          []messageResponse          `json:"messages"`
	ScheduledMessages []scheduledMessageResponse `json:"scheduled_messages"`
}

func toDetailResponse(c *client.Client, tickets []*ticket.Ticket, sent []*messaging.SentMessage, scheduled []*messaging.ScheduledMessage) detailResponse {
	resp := detailResponse{
		clientResponse:    toResponse(c),
		Services:          make([]ticketSummaryResponse, len(tickets)),
		Messages:          make([]messageResponse, len(sent)),
		ScheduledMessages: make([]scheduledMessageResponse, len(scheduled)),
	}

	for i, t := range tickets {
		resp.Services[i] = ticketSummaryResponse{
			ID:          t.ID,
			ServiceDate: t.ServiceDate,
			ServiceType: t.ServiceType,
			TotalValue:  t.TotalValue,
		}
	}

	for i, m := range sent {
		resp.Messages[i] = messageResponse{
			ID:     m.ID,
			Kind:   m.Kind,
			Body:   m.Body,
			SentAt: m.SentAt,
		}
	}

	for i, m := range scheduled {
		resp.ScheduledMessages[i] = scheduledMessageResponse{
			ID:           m.ID,
			Kind:         m.Kind,
			Body:         m.Body,
			ScheduledFor: m.ScheduledFor,
		}
	}

	return resp
}
