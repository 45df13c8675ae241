package financial

import (
	"time"

	"github.com/google/uuid"

	"github.com/frostdesk/frostdesk/internal/financial"
)

type entryResponse struct {
	ID        uuid.UUID        `json:"id"`
	EntryDate time.Time        `json:"entry_date"`
	Value     int64            `json:"value"`
	ClientID  *uuid.UUID       `json:"client_id,omitempty"`
	ServiceID *uuid.UUID       `json:"service_id,omitempty"`
	Service   *serviceResponse `json:"service,omitempty"`
	Notes     string           `json:"notes,omitempty"`
	CreatedAt time.Time        `json:"created_at"`
	UpdatedAt *time.Time       `json:"updated_at,omitempty"`
}

type serviceResponse struct {
	ID          uuid.UUID `json:"id"`
	ServiceType string    `json:"service_type"`
}

func toResponse(e *financial.Entry) entryResponse {
	resp := entryResponse{
		ID:        e.ID,
		EntryDate: e.EntryDate,
		Value:     e.Value,
		ClientID:  e.ClientID,
		ServiceID: e.ServiceID,
		Notes:     e.Notes,
		CreatedAt: e.CreatedAt,
		UpdatedAt: e.UpdatedAt,
	}

	if e.Service != nil {
		resp.Service = &serviceResponse{ID: e.Service.ID, ServiceType: e.Service.ServiceType}
	}

	return resp
}

func toResponseList(entries []*financial.Entry) []entryResponse {
	resp := make([]entryResponse, len(entries))
	for i, e := range entries {
		resp[i] = toResponse(e)
	}

	return resp
}

type monthBucketResponse struct {
	Label string `json:"label"`
	Year  int    `json:"year"`
	Month int    `json:"month"`
	Total int64  `json:"total"`
}

type categoryBucketResponse struct {
	Name  string `json:"name"`
	Total int64  `json:"total"`
}

type summaryResponse struct {
	Total      int64                    `json:"total"`
	Count      int                      `json:"count"`
	Clients    int                      `json:"clients"`
	Services   int                      `json:"services"`
	Monthly    []monthBucketResponse    `json:"monthly"`
	Categories []categoryBucketResponse `json:"categories"`
}

func toSummaryResponse(s *financial.Summary, clients, services int) summaryResponse {
	resp := summaryResponse{
		Total:      s.Total,
		Count:      s.Count,
		Clients:    clients,
		Services:   services,
		Monthly:    make([]monthBucketResponse, len(s.Monthly)),
		Categories: make([]categoryBucketResponse, len(s.Categories)),
	}

	for i, b := range s.Monthly {
		resp.Monthly[i] = monthBucketResponse{
			Label: b.Label(),
			Year:  b.Year,
			Month: int(b.Month),
			Total: b.Total,
		}
	}

	for i, b := range s.Categories {
		resp.Categories[i] = categoryBucketResponse{Name: b.Name, Total: b.Total}
	}

	return resp
}
