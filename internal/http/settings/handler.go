package settings

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/frostdesk/frostdesk/internal/auth"
	"github.com/frostdesk/frostdesk/internal/settings"
)

type Handler struct {
	svc *settings.Service
}

func NewHandler(svc *settings.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Get("/loyalty", h.getLoyalty)
	r.Put("/loyalty", h.saveLoyalty)
}

type loyaltyResponse struct {
	MaintenanceInterval int        `json:"maintenance_interval"`
	MaintenancePrice    *int64     `json:"maintenance_price,omitempty"`
	UpdatedAt           *time.Time `json:"updated_at,omitempty"`
}

func toResponse(l *settings.Loyalty) loyaltyResponse {
	return loyaltyResponse{
		MaintenanceInterval: l.MaintenanceInterval,
		MaintenancePrice:    l.MaintenancePrice,
		UpdatedAt:           l.UpdatedAt,
	}
}

func (h *Handler) getLoyalty(w http.ResponseWriter, r *http.Request) {
	identity, ok := auth.IdentityFrom(r.Context())
	if !ok {
		http.Error(w, "unauthenticated", http.StatusUnauthorized)
		return
	}

	l, err := h.svc.Get(r.Context(), identity.CompanyID)
	if err != nil {
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(toResponse(l)); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

type saveLoyaltyRequest struct {
	MaintenanceInterval int    `json:"maintenance_interval"`
	MaintenancePrice    *int64 `json:"maintenance_price"`
}

func (h *Handler) saveLoyalty(w http.ResponseWriter, r *http.Request) {
	identity, ok := auth.IdentityFrom(r.Context())
	if !ok {
		http.Error(w, "unauthenticated", http.StatusUnauthorized)
		return
	}

	var req saveLoyaltyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	l, err := h.svc.Save(r.Context(), identity.CompanyID, req.MaintenanceInterval, req.MaintenancePrice)
	if err != nil {
		if errors.Is(err, settings.ErrIntervalInvalid) {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		http.Error(w, "internal error", http.StatusInternalServerError)

		return
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(toResponse(l)); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}
