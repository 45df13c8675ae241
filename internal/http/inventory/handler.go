package inventory

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/frostdesk/frostdesk/internal/auth"
	"github.com/frostdesk/frostdesk/internal/inventory"
)

type Handler struct {
	svc *inventory.Service
}

func NewHandler(svc *inventory.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Post("/", h.create)
	r.Get("/", h.list)
	r.Patch("/{id}", h.update)
	r.Delete("/{id}", h.delete)
}

type itemResponse struct {
	ID         uuid.UUID  `json:"id"`
	Name       string     `json:"name"`
	Value      int64      `json:"value"`
	CategoryID *uuid.UUID `json:"category_id,omitempty"`
	CreatedAt  time.Time  `json:"created_at"`
	UpdatedAt  *time.Time `json:"updated_at,omitempty"`
}

func toResponse(item *inventory.Item) itemResponse {
	return itemResponse{
		ID:         item.ID,
		Name:       item.Name,
		Value:      item.Value,
		CategoryID: item.CategoryID,
		CreatedAt:  item.CreatedAt,
		UpdatedAt:  item.UpdatedAt,
	}
}

type itemRequest struct {
	Name       string     `json:"name"`
	Value      int64      `json:"value"`
	CategoryID *uuid.UUID `json:"category_id"`
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	identity, ok := auth.IdentityFrom(r.Context())
	if !ok {
		http.Error(w, "unauthenticated", http.StatusUnauthorized)
		return
	}

	var req itemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	item, err := h.svc.Create(r.Context(), identity.CompanyID, inventory.Params{
		Name:       req.Name,
		Value:      req.Value,
		CategoryID: req.CategoryID,
	})
	if err != nil {
		if errors.Is(err, inventory.ErrNameRequired) {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		http.Error(w, "internal error", http.StatusInternalServerError)

		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)

	if err := json.NewEncoder(w).Encode(toResponse(item)); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

// list returns the full catalog, filtered in memory when a search term is
// present. The catalog is small; the picker search runs over it directly.
func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	identity, ok := auth.IdentityFrom(r.Context())
	if !ok {
		http.Error(w, "unauthenticated", http.StatusUnauthorized)
		return
	}

	items, err := h.svc.List(r.Context(), identity.CompanyID)
	if err != nil {
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	if term := r.URL.Query().Get("search"); term != "" {
		items = inventory.Search(items, term)
	}

	resp := make([]itemResponse, len(items))
	for i, item := range items {
		resp[i] = toResponse(item)
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(resp); err != nil {
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

	var req itemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	item := &inventory.Item{
		ID:         id,
		CompanyID:  identity.CompanyID,
		Name:       req.Name,
		Value:      req.Value,
		CategoryID: req.CategoryID,
	}

	if err := h.svc.Update(r.Context(), item); err != nil {
		switch {
		case errors.Is(err, inventory.ErrNameRequired):
			http.Error(w, err.Error(), http.StatusBadRequest)
		case errors.Is(err, inventory.ErrNotFound):
			http.Error(w, "item not found", http.StatusNotFound)
		default:
			http.Error(w, "internal error", http.StatusInternalServerError)
		}

		return
	}

	w.WriteHeader(http.StatusNoContent)
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
