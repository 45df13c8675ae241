package messaging

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/frostdesk/frostdesk/internal/auth"
	"github.com/frostdesk/frostdesk/internal/messaging"
)

type Handler struct {
	svc *messaging.Service
}

func NewHandler(svc *messaging.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Get("/sent", h.listSent)
	r.Get("/scheduled", h.listScheduled)
	r.Get("/templates", h.listTemplates)
	r.Put("/templates/{kind}", h.saveTemplate)
}

type sentResponse struct {
	ID         uuid.UUID  `json:"id"`
	ClientID   *uuid.UUID `json:"client_id,omitempty"`
	ClientName string     `json:"client_name,omitempty"`
	Kind       string     `json:"kind"`
	Body       string     `json:"body"`
	SentAt     time.Time  `json:"sent_at"`
}

type scheduledResponse struct {
	ID           uuid.UUID  `json:"id"`
	ClientID     *uuid.UUID `json:"client_id,omitempty"`
	ClientName   string     `json:"client_name,omitempty"`
	Kind         string     `json:"kind"`
	Body         string     `json:"body"`
	ScheduledFor time.Time  `json:"scheduled_for"`
	CreatedAt    time.Time  `json:"created_at"`
}

type templateResponse struct {
	ID        uuid.UUID  `json:"id"`
	Kind      string     `json:"kind"`
	Body      string     `json:"body"`
	UpdatedAt *time.Time `json:"updated_at,omitempty"`
}

func clientFilter(r *http.Request) *uuid.UUID {
	if s := r.URL.Query().Get("client_id"); s != "" {
		if id, err := uuid.Parse(s); err == nil {
			return &id
		}
	}

	return nil
}

func (h *Handler) listSent(w http.ResponseWriter, r *http.Request) {
	identity, ok := auth.IdentityFrom(r.Context())
	if !ok {
		http.Error(w, "unauthenticated", http.StatusUnauthorized)
		return
	}

	messages, err := h.svc.ListSent(r.Context(), identity.CompanyID, clientFilter(r))
	if err != nil {
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	resp := make([]sentResponse, len(messages))
	for i, m := range messages {
		resp[i] = sentResponse{
			ID:         m.ID,
			ClientID:   m.ClientID,
			ClientName: m.ClientName,
			Kind:       m.Kind,
			Body:       m.Body,
			SentAt:     m.SentAt,
		}
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(resp); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func (h *Handler) listScheduled(w http.ResponseWriter, r *http.Request) {
	identity, ok := auth.IdentityFrom(r.Context())
	if !ok {
		http.Error(w, "unauthenticated", http.StatusUnauthorized)
		return
	}

	messages, err := h.svc.ListScheduled(r.Context(), identity.CompanyID, clientFilter(r))
	if err != nil {
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	resp := make([]scheduledResponse, len(messages))
	for i, m := range messages {
		resp[i] = scheduledResponse{
			ID:           m.ID,
			ClientID:     m.ClientID,
			ClientName:   m.ClientName,
			Kind:         m.Kind,
			Body:         m.Body,
			ScheduledFor: m.ScheduledFor,
			CreatedAt:    m.CreatedAt,
		}
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(resp); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func (h *Handler) listTemplates(w http.ResponseWriter, r *http.Request) {
	identity, ok := auth.IdentityFrom(r.Context())
	if !ok {
		http.Error(w, "unauthenticated", http.StatusUnauthorized)
		return
	}

	templates, err := h.svc.Templates(r.Context(), identity.CompanyID)
	if err != nil {
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	resp := make([]templateResponse, len(templates))
	for i, t := range templates {
		resp[i] = templateResponse{ID: t.ID, Kind: t.Kind, Body: t.Body, UpdatedAt: t.UpdatedAt}
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(resp); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

type saveTemplateRequest struct {
	Body string `json:"body"`
}

func (h *Handler) saveTemplate(w http.ResponseWriter, r *http.Request) {
	identity, ok := auth.IdentityFrom(r.Context())
	if !ok {
		http.Error(w, "unauthenticated", http.StatusUnauthorized)
		return
	}

	var req saveTemplateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	t, err := h.svc.SaveTemplate(r.Context(), identity.CompanyID, chi.URLParam(r, "kind"), req.Body)
	if err != nil {
		if errors.Is(err, messaging.ErrBodyRequired) {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		http.Error(w, "internal error", http.StatusInternalServerError)

		return
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(templateResponse{ID: t.ID, Kind: t.Kind, Body: t.Body, UpdatedAt: t.UpdatedAt}); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}
