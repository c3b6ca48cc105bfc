package stats

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	userhttp "github.com/taller-sys/taller-backend/internal/user/delivery/http"
	"github.com/taller-sys/taller-backend/pkg/logger"
)

// Handler serves the dashboard endpoints
type Handler struct {
	repo *Repository
}

// NewHandler creates a new stats handler
func NewHandler(repo *Repository) *Handler {
	return &Handler{repo: repo}
}

// GetKpis handles GET /stats/kpis
func (h *Handler) GetKpis(w http.ResponseWriter, r *http.Request) {
	kpis, err := h.repo.GetKpis()
	if err != nil {
		logger.Logger.Error().Err(err).Msg("Failed to compute dashboard kpis")
		h.respondError(w, http.StatusInternalServerError, "Failed to compute stats")
		return
	}

	h.respondJSON(w, http.StatusOK, kpis)
}

// GetWeeklySales handles GET /stats/ventas-semana
func (h *Handler) GetWeeklySales(w http.ResponseWriter, r *http.Request) {
	sales, err := h.repo.GetWeeklySales()
	if err != nil {
		logger.Logger.Error().Err(err).Msg("Failed to compute weekly sales")
		h.respondError(w, http.StatusInternalServerError, "Failed to compute stats")
		return
	}

	h.respondJSON(w, http.StatusOK, sales)
}

// respondJSON sends a JSON response
func (h *Handler) respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

// respondError sends an error response
func (h *Handler) respondError(w http.ResponseWriter, status int, message string) {
	h.respondJSON(w, status, map[string]string{"error": message})
}

// RegisterRoutes registers the dashboard routes
func (h *Handler) RegisterRoutes(router *mux.Router) {
	router.HandleFunc("/stats/kpis", userhttp.StaffMiddleware(h.GetKpis)).Methods("GET")
	router.HandleFunc("/stats/ventas-semana", userhttp.StaffMiddleware(h.GetWeeklySales)).Methods("GET")
}
