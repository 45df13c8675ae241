package client

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/frostdesk/frostdesk/internal/auth"
	"github.com/frostdesk/frostdesk/internal/client"
	"github.com/frostdesk/frostdesk/internal/messaging"
	"github.com/frostdesk/frostdesk/internal/ticket"
)

type Handler struct {
	svc      *client.Service
	tickets  *ticket.Service
	messages *messaging.Service
}

func NewHandler(svc *client.Service, tickets *ticket.Service, messages *messaging.Service) *Handler {
	return &Handler{svc: svc, tickets: tickets, messages: messages}
}

func (h *Handler) Routes(r chi.Router) {
	r.Post("/", h.create)
	r.Get("/", h.list)
	r.Get("/{id}", h.get)
	r.Patch("/{id}", h.update)
	r.Delete("/{id}", h.delete)
}

type clientRequest struct {
	FullName                 string `json:"full_name"`
	FormalName               string `json:"formal_name"`
	Phone                    string `json:"phone"`
	Address                  string `json:"address"`
	District                 string `json:"district"`
	City                     string `json:"city"`
	Notes                    string `json:"notes"`
	SendWelcomeMessage       bool   `json:"send_welcome_message"`
	SendMaintenanceReminders bool   `json:"send_maintenance_reminders"`
}

func (req clientRequest) params() client.Params {
	return client.Params{
		FullName:                 req.FullName,
		FormalName:               req.FormalName,
		Phone:                    req.Phone,
		Address:                  req.Address,
		District:                 req.District,
		City:                     req.City,
		Notes:                    req.Notes,
		SendWelcomeMessage:       req.SendWelcomeMessage,
		SendMaintenanceReminders: req.SendMaintenanceReminders,
	}
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	id, ok := auth.IdentityFrom(r.Context())
	if !ok {
		http.Error(w, "unauthenticated", http.StatusUnauthorized)
		return
	}

	var req clientRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	c, err := h.svc.Create(r.Context(), id.CompanyID, req.params())
	if err != nil {
		if errors.Is(err, client.ErrFullNameRequired) {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		http.Error(w, "internal error", http.StatusInternalServerError)

		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)

	if err := json.NewEncoder(w).Encode(toResponse(c)); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	id, ok := auth.IdentityFrom(r.Context())
	if !ok {
		http.Error(w, "unauthenticated", http.StatusUnauthorized)
		return
	}

	clients, err := h.svc.List(r.Context(), id.CompanyID, r.URL.Query().Get("search"))
	if err != nil {
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(toResponseList(clients)); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

// get returns the client with its service history and message history, the
// supplementary fetches the client detail page displays.
func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	identity, ok := auth.IdentityFrom(r.Context())
	if !ok {
		http.Error(w, "unauthenticated", http.StatusUnauthorized)
		return
	}

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	c, err := h.svc.Get(r.Context(), identity.CompanyID, id)
	if err != nil {
		if errors.Is(err, client.ErrNotFound) {
			http.Error(w, "client not found", http.StatusNotFound)
			return
		}

		http.Error(w, "internal error", http.StatusInternalServerError)

		return
	}

	tickets, err := h.tickets.List(r.Context(), identity.CompanyID, ticket.ListFilter{ClientID: &id})
	if err != nil {
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	sent, err := h.messages.ListSent(r.Context(), identity.CompanyID, &id)
	if err != nil {
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	scheduled, err := h.messages.ListScheduled(r.Context(), identity.CompanyID, &id)
	if err != nil {
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(toDetailResponse(c, tickets, sent, scheduled)); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func (h *Handler) update(w http.ResponseWriter, r *http.Request) {
	identity, ok := auth.IdentityFrom(r.Context())
	if !ok {
		http.Error(w, "unauthenticated", http.StatusUnauthorized)
		return
	}

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	var req clientRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	c, err := h.svc.Get(r.Context(), identity.CompanyID, id)
	if err != nil {
		if errors.Is(err, client.ErrNotFound) {
			http.Error(w, "client not found", http.StatusNotFound)
			return
		}

		http.Error(w, "internal error", http.StatusInternalServerError)

		return
	}

	p := req.params()
	c.FullName = p.FullName
	c.FormalName = p.FormalName
	c.Phone = p.Phone
	c.Address = p.Address
	c.District = p.District
	c.City = p.City
	c.Notes = p.Notes
	c.SendWelcomeMessage = p.SendWelcomeMessage
	c.SendMaintenanceReminders = p.SendMaintenanceReminders

	if err := h.svc.Update(r.Context(), c); err != nil {
		if errors.Is(err, client.ErrFullNameRequired) {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		http.Error(w, "internal error", http.StatusInternalServerError)

		return
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(toResponse(c)); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func (h *Handler) delete(w http.ResponseWriter, r *http.Request) {
	identity, ok := auth.IdentityFrom(r.Context())
	if !ok {
		http.Error(w, "unauthenticated", http.StatusUnauthorized)
		return
	}

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	if err := h.svc.Delete(r.Context(), identity.CompanyID, id); err != nil {
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
