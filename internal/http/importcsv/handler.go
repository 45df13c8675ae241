package importcsv

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/frostdesk/frostdesk/internal/auth"
	"github.com/frostdesk/frostdesk/internal/client"
	"github.com/frostdesk/frostdesk/internal/importer"
)

type Handler struct {
	importSvc *importer.Service
	clientSvc *client.Service
}

func NewHandler(importSvc *importer.Service, clientSvc *client.Service) *Handler {
	return &Handler{importSvc: importSvc, clientSvc: clientSvc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Post("/clients", h.importClients)
}

type importSuccessResponse struct {
	Imported int `json:"imported"`
}

func (h *Handler) importClients(w http.ResponseWriter, r *http.Request) {
	identity, ok := auth.IdentityFrom(r.Context())
	if !ok {
		http.Error(w, "unauthenticated", http.StatusUnauthorized)
		return
	}

	if err := r.ParseMultipartForm(10 << 20); err != nil {
		http.Error(w, "failed to parse form: "+err.Error(), http.StatusBadRequest)
		return
	}

	file, _, err := r.FormFile("file")
	if err != nil {
		http.Error(w, "file field is required", http.StatusBadRequest)
		return
	}
	defer file.Close()

	params, err := h.importSvc.Import(importer.FormatClientCSV, file)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	clients, err := h.clientSvc.CreateBatch(r.Context(), identity.CompanyID, params)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)

	if err := json.NewEncoder(w).Encode(importSuccessResponse{Imported: len(clients)}); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}
