package export

import (
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/frostdesk/frostdesk/internal/auth"
	"github.com/frostdesk/frostdesk/internal/export"
	"github.com/frostdesk/frostdesk/internal/financial"
)

type Handler struct {
	svc *export.Service
}

func NewHandler(svc *export.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Get("/financial", h.financialCSV)
}

// financialCSV streams the date-ranged entries as a CSV download.
func (h *Handler) financialCSV(w http.ResponseWriter, r *http.Request) {
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

	filename := fmt.Sprintf("financial_%s.csv", time.Now().Format("20060102"))

	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))

	if err := h.svc.WriteCSV(r.Context(), identity.CompanyID, filter, w); err != nil {
		// Headers are out; all we can do is log.
		slog.Error("failed to write export", "error", err)
	}
}
