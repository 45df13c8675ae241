package ticket

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/frostdesk/frostdesk/internal/auth"
	"github.com/frostdesk/frostdesk/internal/ticket"
)

type Handler struct {
	svc *ticket.Service
}

func NewHandler(svc *ticket.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Post("/", h.create)
	r.Get("/", h.list)
	r.Get("/{id}", h.get)
	r.Put("/{id}", h.update)
	r.Delete("/{id}", h.delete)
}

type lineRequest struct {
	InventoryItemID uuid.UUID `json:"inventory_item_id"`
	Quantity        int       `json:"quantity"`
	Price           int64     `json:"price"`
}

type submitRequest struct {
	ServiceDate    time.Time     `json:"service_date"`
	ServiceType    string        `json:"service_type"`
	ClientID       *uuid.UUID    `json:"client_id"`
	CollaboratorID *uuid.UUID    `json:"collaborator_id"`
	Notes          string        `json:"notes"`
	Items          []lineRequest `json:"items"`
}

func (req submitRequest) params() ticket.SubmitParams {
	return ticket.SubmitParams{
		ServiceDate:    req.ServiceDate,
		ServiceType:    req.ServiceType,
		ClientID:       req.ClientID,
		CollaboratorID: req.CollaboratorID,
		Notes:          req.Notes,
	}
}

// lineList rebuilds the accumulator from the submitted rows, rejecting the
// quantities and prices the form-side accumulator would have rejected.
func (req submitRequest) lineList() (*ticket.LineList, error) {
	lines := make([]ticket.Line, len(req.Items))

	for i, item := range req.Items {
		if item.Quantity < 1 {
			return nil, ticket.ErrQuantityTooSmall
		}

		if item.Price < 0 {
			return nil, ticket.ErrPriceNegative
		}

		lines[i] = ticket.Line{
			InventoryItemID: item.InventoryItemID,
			Quantity:        item.Quantity,
			Price:           item.Price,
		}
	}

	return ticket.NewLineList(lines...), nil
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	h.submit(w, r, nil)
}

func (h *Handler) update(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	h.submit(w, r, &id)
}

func (h *Handler) submit(w http.ResponseWriter, r *http.Request, existingID *uuid.UUID) {
	identity, ok := auth.IdentityFrom(r.Context())
	if !ok {
		http.Error(w, "unauthenticated", http.StatusUnauthorized)
		return
	}

	var req submitRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	lines, err := req.lineList()
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	t, err := h.svc.Submit(r.Context(), identity.CompanyID, req.params(), lines, existingID)
	if err != nil {
		switch {
		case errors.Is(err, ticket.ErrDateRequired), errors.Is(err, ticket.ErrTypeRequired):
			http.Error(w, err.Error(), http.StatusBadRequest)
		case errors.Is(err, ticket.ErrNotFound):
			http.Error(w, "service not found", http.StatusNotFound)
		default:
			http.Error(w, "internal error", http.StatusInternalServerError)
		}

		return
	}

	w.Header().Set("Content-Type", "application/json")

	if existingID == nil {
		w.WriteHeader(http.StatusCreated)
	}

	if err := json.NewEncoder(w).Encode(toResponse(t)); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	identity, ok := auth.IdentityFrom(r.Context())
	if !ok {
		http.Error(w, "unauthenticated", http.StatusUnauthorized)
		return
	}

	filter := ticket.ListFilter{Search: r.URL.Query().Get("search")}

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

	tickets, err := h.svc.List(r.Context(), identity.CompanyID, filter)
	if err != nil {
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(toResponseList(tickets)); err != nil {
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

	t, err := h.svc.Get(r.Context(), identity.CompanyID, id)
	if err != nil {
		if errors.Is(err, ticket.ErrNotFound) {
			http.Error(w, "service not found", http.StatusNotFound)
			return
		}

		http.Error(w, "internal error", http.StatusInternalServerError)

		return
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(toResponse(t)); err != nil {
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
