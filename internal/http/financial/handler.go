package financial

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/frostdesk/frostdesk/internal/auth"
	"github.com/frostdesk/frostdesk/internal/financial"
)

// defaultSummaryMonths is the dashboard chart window.
const defaultSummaryMonths = 6

// Counter reports a company's row count for the dashboard stat cards.
// Satisfied by client.Service and ticket.Service.
type Counter interface {
	Count(ctx context.Context, companyID uuid.UUID) (int, error)
}

type Handler struct {
	svc     *financial.Service
	clients Counter
	tickets Counter
}

func NewHandler(svc *financial.Service, clients, tickets Counter) *Handler {
	return &Handler{svc: svc, clients: clients, tickets: tickets}
}

func (h *Handler) Routes(r chi.Router) {
	r.Post("/", h.create)
	r.Get("/", h.list)
	r.Get("/summary", h.summary)
	r.Get("/{id}", h.get)
	r.Patch("/{id}", h.update)
	r.Delete("/{id}", h.delete)
}

type entryRequest struct {
	EntryDate time.Time  `json:"entry_date"`
	Value     int64      `json:"value"`
	ClientID  *uuid.UUID `json:"client_id"`
	Notes     string     `json:"notes"`
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	identity, ok := auth.IdentityFrom(r.Context())
	if !ok {
		http.Error(w, "unauthenticated", http.StatusUnauthorized)
		return
	}

	var req entryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	e, err := h.svc.Create(r.Context(), identity.CompanyID, financial.CreateParams{
		EntryDate: req.EntryDate,
		Value:     req.Value,
		ClientID:  req.ClientID,
		Notes:     req.Notes,
	})
	if err != nil {
		if errors.Is(err, financial.ErrDateRequired) || errors.Is(err, financial.ErrValueNegative) {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		http.Error(w, "internal error", http.StatusInternalServerError)

		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)

	if err := json.NewEncoder(w).Encode(toResponse(e)); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	identity, ok := auth.IdentityFrom(r.Context())
	if !ok {
		http.Error(w, "unauthenticated", http.StatusUnauthorized)
		return
	}

	filter := financial.ListFilter{}

	if s := r.URL.Query().Get("start_date"); s != "" {
		if t, err := time.Parse(time.DateOnly, s); err == nil {
			filter.StartDate = new(t)
		}
	}

	if s := r.URL.Query().Get("end_date"); s != "" {
		if t, err := time.Parse(time.DateOnly, s); err == nil {
			filter.EndDate = new(t)
		}
	}

	if s := r.URL.Query().Get("client_id"); s != "" {
		if id, err := uuid.Parse(s); err == nil {
			filter.ClientID = new(id)
		}
	}

	entries, err := h.svc.List(r.Context(), identity.CompanyID, filter)
	if err != nil {
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(toResponseList(entries)); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

// summary serves the dashboard projections: total, count, per-month series
// and per-category series over the requested window.
func (h *Handler) summary(w http.ResponseWriter, r *http.Request) {
	identity, ok := auth.IdentityFrom(r.Context())
	if !ok {
		http.Error(w, "unauthenticated", http.StatusUnauthorized)
		return
	}

	months := defaultSummaryMonths
	if s := r.URL.Query().Get("months"); s != "" {
		if n, err := strconv.Atoi(s); err == nil && n > 0 {
			months = n
		}
	}

	summary, err := h.svc.Summarize(r.Context(), identity.CompanyID, months, time.Now())
	if err != nil {
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	clientCount, err := h.clients.Count(r.Context(), identity.CompanyID)
	if err != nil {
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	ticketCount, err := h.tickets.Count(r.Context(), identity.CompanyID)
	if err != nil {
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(toSummaryResponse(summary, clientCount, ticketCount)); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

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

	e, err := h.svc.Get(r.Context(), identity.CompanyID, id)
	if err != nil {
		if errors.Is(err, financial.ErrNotFound) {
			http.Error(w, "entry not found", http.StatusNotFound)
			return
		}

		http.Error(w, "internal error", http.StatusInternalServerError)

		return
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(toResponse(e)); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

type updateEntryRequest struct {
	EntryDate *time.Time `json:"entry_date,omitempty"`
	Value     *int64     `json:"value,omitempty"`
	ClientID  *uuid.UUID `json:"client_id,omitempty"`
	Notes     *string    `json:"notes,omitempty"`
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

	var req updateEntryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	e, err := h.svc.Get(r.Context(), identity.CompanyID, id)
	if err != nil {
		if errors.Is(err, financial.ErrNotFound) {
			http.Error(w, "entry not found", http.StatusNotFound)
			return
		}

		http.Error(w, "internal error", http.StatusInternalServerError)

		return
	}

	if req.EntryDate != nil {
		e.EntryDate = *req.EntryDate
	}

	if req.Value != nil {
		e.Value = *req.Value
	}

	if req.ClientID != nil {
		e.ClientID = req.ClientID
	}

	if req.Notes != nil {
		e.Notes = *req.Notes
	}

	if err := h.svc.Update(r.Context(), e); err != nil {
		if errors.Is(err, financial.ErrDateRequired) || errors.Is(err, financial.ErrValueNegative) {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		http.Error(w, "internal error", http.StatusInternalServerError)

		return
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(toResponse(e)); err != nil {
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
