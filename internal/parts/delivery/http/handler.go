package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/taller-sys/taller-backend/internal/parts/domain"
	"github.com/taller-sys/taller-backend/internal/parts/usecase/command"
	"github.com/taller-sys/taller-backend/internal/parts/usecase/query"
	userhttp "github.com/taller-sys/taller-backend/internal/user/delivery/http"
	"github.com/taller-sys/taller-backend/kafka"
	"github.com/taller-sys/taller-backend/pkg/logger"
)

// PartHandler handles HTTP requests for parts and stock
type PartHandler struct {
	createHandler      *command.CreatePartHandler
	updateHandler      *command.UpdatePartHandler
	deleteHandler      *command.DeletePartHandler
	adjustStockHandler *command.AdjustStockHandler

	getHandler       *query.GetPartHandler
	listHandler      *query.ListPartsHandler
	lowStockHandler  *query.LowStockHandler
	movementsHandler *query.ListMovementsHandler
	statsHandler     *query.GetStatsHandler

	repo      domain.PartRepository
	publisher *kafka.Publisher
}

// NewPartHandler creates a new part handler. publisher may be nil when
// Kafka is not configured; stock events are then skipped.
func NewPartHandler(repo domain.PartRepository, publisher *kafka.Publisher) *PartHandler {
	return &PartHandler{
		createHandler:      command.NewCreatePartHandler(repo),
		updateHandler:      command.NewUpdatePartHandler(repo),
		deleteHandler:      command.NewDeletePartHandler(repo),
		adjustStockHandler: command.NewAdjustStockHandler(repo),
		getHandler:         query.NewGetPartHandler(repo),
		listHandler:        query.NewListPartsHandler(repo),
		lowStockHandler:    query.NewLowStockHandler(repo),
		movementsHandler:   query.NewListMovementsHandler(repo),
		statsHandler:       query.NewGetStatsHandler(repo),
		repo:               repo,
		publisher:          publisher,
	}
}

type Response struct {
	Success bool        `json:"success"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
}

// CreatePart handles POST /repuestos
func (h *PartHandler) CreatePart(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name          string  `json:"name"`
		Description   string  `json:"description"`
		Unit          string  `json:"unit"`
		UnitPrice     float64 `json:"unit_price"`
		StockQuantity int     `json:"stock_quantity"`
		MinStock      int     `json:"min_stock"`
	}

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondJSON(w, http.StatusBadRequest, Response{
			Success: false,
			Error:   "Invalid request body",
		})
		return
	}

	part, err := h.createHandler.Handle(command.CreatePartCommand{
		Name:          req.Name,
		Description:   req.Description,
		Unit:          req.Unit,
		UnitPrice:     req.UnitPrice,
		StockQuantity: req.StockQuantity,
		MinStock:      req.MinStock,
	})
	if err != nil {
		status := http.StatusBadRequest
		if errors.Is(err, domain.ErrDuplicateName) {
			status = http.StatusConflict
		}
		logger.Logger.Error().Err(err).Msg("Failed to create part")
		respondJSON(w, status, Response{Success: false, Error: err.Error()})
		return
	}

	respondJSON(w, http.StatusCreated, Response{
		Success: true,
		Message: "Part created successfully",
		Data:    part,
	})
}

// GetPart handles GET /repuestos/{id}
func (h *PartHandler) GetPart(w http.ResponseWriter, r *http.Request) {
	id, err := parsePartID(r)
	if err != nil {
		respondJSON(w, http.StatusBadRequest, Response{Success: false, Error: "Invalid part ID"})
		return
	}

	part, err := h.getHandler.Handle(query.GetPartQuery{ID: id})
	if err != nil {
		respondJSON(w, http.StatusNotFound, Response{Success: false, Error: "Part not found"})
		return
	}

	respondJSON(w, http.StatusOK, Response{Success: true, Data: part})
}

// ListParts handles GET /repuestos
func (h *PartHandler) ListParts(w http.ResponseWriter, r *http.Request) {
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	offset, _ := strconv.Atoi(r.URL.Query().Get("offset"))
	activeOnly := r.URL.Query().Get("active") == "true"

	parts, err := h.listHandler.Handle(query.ListPartsQuery{
		Limit:      limit,
		Offset:     offset,
		ActiveOnly: activeOnly,
	})
	if err != nil {
		logger.Logger.Error().Err(err).Msg("Failed to list parts")
		respondJSON(w, http.StatusInternalServerError, Response{
			Success: false,
			Error:   "Failed to list parts",
		})
		return
	}

	respondJSON(w, http.StatusOK, Response{Success: true, Data: parts})
}

// UpdatePart handles PUT /repuestos/{id}
func (h *PartHandler) UpdatePart(w http.ResponseWriter, r *http.Request) {
	id, err := parsePartID(r)
	if err != nil {
		respondJSON(w, http.StatusBadRequest, Response{Success: false, Error: "Invalid part ID"})
		return
	}

	var req struct {
		Name        string  `json:"name"`
		Description string  `json:"description"`
		Unit        string  `json:"unit"`
		UnitPrice   float64 `json:"unit_price"`
		MinStock    int     `json:"min_stock"`
		IsActive    *bool   `json:"is_active"`
	}

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondJSON(w, http.StatusBadRequest, Response{Success: false, Error: "Invalid request body"})
		return
	}

	part, err := h.updateHandler.Handle(command.UpdatePartCommand{
		ID:          id,
		Name:        req.Name,
		Description: req.Description,
		Unit:        req.Unit,
		UnitPrice:   req.UnitPrice,
		MinStock:    req.MinStock,
		IsActive:    req.IsActive,
	})
	if err != nil {
		status := http.StatusBadRequest
		switch {
		case errors.Is(err, domain.ErrPartNotFound):
			status = http.StatusNotFound
		case errors.Is(err, domain.ErrDuplicateName):
			status = http.StatusConflict
		}
		respondJSON(w, status, Response{Success: false, Error: err.Error()})
		return
	}

	respondJSON(w, http.StatusOK, Response{
		Success: true,
		Message: "Part updated successfully",
		Data:    part,
	})
}

// DeletePart handles DELETE /repuestos/{id}
func (h *PartHandler) DeletePart(w http.ResponseWriter, r *http.Request) {
	id, err := parsePartID(r)
	if err != nil {
		respondJSON(w, http.StatusBadRequest, Response{Success: false, Error: "Invalid part ID"})
		return
	}

	deactivated, err := h.deleteHandler.Handle(command.DeletePartCommand{ID: id})
	if err != nil {
		if errors.Is(err, domain.ErrPartNotFound) {
			respondJSON(w, http.StatusNotFound, Response{Success: false, Error: "Part not found"})
			return
		}
		logger.Logger.Error().Err(err).Uint("part_id", id).Msg("Failed to delete part")
		respondJSON(w, http.StatusInternalServerError, Response{Success: false, Error: err.Error()})
		return
	}

	message := "Part deleted successfully"
	if deactivated {
		message = "Part is referenced by purchases or work orders; deactivated instead"
	}
	respondJSON(w, http.StatusOK, Response{Success: true, Message: message})
}

// AdjustStock handles POST /repuestos/{id}/ajustar-stock
func (h *PartHandler) AdjustStock(w http.ResponseWriter, r *http.Request) {
	id, err := parsePartID(r)
	if err != nil {
		respondJSON(w, http.StatusBadRequest, Response{Success: false, Error: "Invalid part ID"})
		return
	}

	var req struct {
		Cantidad int    `json:"cantidad"`
		Motivo   string `json:"motivo"`
	}

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondJSON(w, http.StatusBadRequest, Response{Success: false, Error: "Invalid request body"})
		return
	}

	newQuantity, err := h.adjustStockHandler.Handle(command.AdjustStockCommand{
		PartID: id,
		Delta:  req.Cantidad,
		Reason: req.Motivo,
	})
	if err != nil {
		status := http.StatusBadRequest
		switch {
		case errors.Is(err, domain.ErrPartNotFound):
			status = http.StatusNotFound
		case errors.Is(err, domain.ErrInsufficientStock):
			status = http.StatusConflict
		}
		respondJSON(w, status, Response{Success: false, Error: err.Error()})
		return
	}

	h.publishStockEvents(r, id, req.Cantidad, newQuantity, req.Motivo)

	logger.Audit("stock_adjusted").
		Uint("part_id", id).
		Int("delta", req.Cantidad).
		Int("stock_quantity", newQuantity).
		Str("reason", req.Motivo).
		Msg("Stock adjusted")

	respondJSON(w, http.StatusOK, Response{
		Success: true,
		Message: "Stock adjusted successfully",
		Data: map[string]interface{}{
			"part_id":        id,
			"delta":          req.Cantidad,
			"stock_quantity": newQuantity,
		},
	})
}

// LowStock handles GET /repuestos/stock-bajo
func (h *PartHandler) LowStock(w http.ResponseWriter, r *http.Request) {
	parts, err := h.lowStockHandler.Handle(query.LowStockQuery{})
	if err != nil {
		logger.Logger.Error().Err(err).Msg("Failed to query low stock parts")
		respondJSON(w, http.StatusInternalServerError, Response{
			Success: false,
			Error:   "Failed to query low stock parts",
		})
		return
	}

	respondJSON(w, http.StatusOK, Response{Success: true, Data: parts})
}

// ListMovements handles GET /repuestos/{id}/movimientos
func (h *PartHandler) ListMovements(w http.ResponseWriter, r *http.Request) {
	id, err := parsePartID(r)
	if err != nil {
		respondJSON(w, http.StatusBadRequest, Response{Success: false, Error: "Invalid part ID"})
		return
	}

	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	offset, _ := strconv.Atoi(r.URL.Query().Get("offset"))

	movements, err := h.movementsHandler.Handle(query.ListMovementsQuery{
		PartID: id,
		Limit:  limit,
		Offset: offset,
	})
	if err != nil {
		if errors.Is(err, domain.ErrPartNotFound) {
			respondJSON(w, http.StatusNotFound, Response{Success: false, Error: "Part not found"})
			return
		}
		respondJSON(w, http.StatusInternalServerError, Response{Success: false, Error: err.Error()})
		return
	}

	respondJSON(w, http.StatusOK, Response{Success: true, Data: movements})
}

// GetStats handles GET /repuestos/stats
func (h *PartHandler) GetStats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.statsHandler.Handle(query.GetStatsQuery{})
	if err != nil {
		logger.Logger.Error().Err(err).Msg("Failed to compute stock stats")
		respondJSON(w, http.StatusInternalServerError, Response{
			Success: false,
			Error:   "Failed to compute stock stats",
		})
		return
	}

	respondJSON(w, http.StatusOK, Response{Success: true, Data: stats})
}

// publishStockEvents emits the stock adjusted event and, when the part
// fell to or below its minimum, a low stock alert. Failures are logged,
// never surfaced to the API caller.
func (h *PartHandler) publishStockEvents(r *http.Request, partID uint, delta, newQuantity int, reason string) {
	if h.publisher == nil {
		return
	}

	part, err := h.repo.FindByID(partID)
	if err != nil {
		logger.Logger.Error().Err(err).Uint("part_id", partID).Msg("Failed to load part for stock event")
		return
	}

	ctx := r.Context()
	if err := h.publisher.PublishStockAdjusted(ctx, kafka.StockAdjustedEvent{
		PartID:        partID,
		PartName:      part.Name,
		Delta:         delta,
		PriorQuantity: newQuantity - delta,
		NewQuantity:   newQuantity,
		Reason:        reason,
	}); err != nil {
		logger.Logger.Error().Err(err).Uint("part_id", partID).Msg("Failed to publish stock adjusted event")
	}

	if part.BelowMinimum() {
		if err := h.publisher.PublishLowStockAlert(ctx, kafka.LowStockAlertEvent{
			PartID:        partID,
			PartName:      part.Name,
			StockQuantity: part.StockQuantity,
			MinStock:      part.MinStock,
		}); err != nil {
			logger.Logger.Error().Err(err).Uint("part_id", partID).Msg("Failed to publish low stock alert")
		}
	}
}

func parsePartID(r *http.Request) (uint, error) {
	id, err := strconv.ParseUint(mux.Vars(r)["id"], 10, 32)
	return uint(id), err
}

// respondJSON sends a JSON response
func respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(payload)
}

// RegisterRoutes registers all part routes. Reads are open to any
// authenticated staff member, writes to admin and recepcionista.
func (h *PartHandler) RegisterRoutes(router *mux.Router) {
	router.HandleFunc("/repuestos", userhttp.StaffMiddleware(h.ListParts)).Methods("GET")
	router.HandleFunc("/repuestos", userhttp.CounterMiddleware(h.CreatePart)).Methods("POST")
	router.HandleFunc("/repuestos/stock-bajo", userhttp.StaffMiddleware(h.LowStock)).Methods("GET")
	router.HandleFunc("/repuestos/stats", userhttp.StaffMiddleware(h.GetStats)).Methods("GET")
	router.HandleFunc("/repuestos/{id}", userhttp.StaffMiddleware(h.GetPart)).Methods("GET")
	router.HandleFunc("/repuestos/{id}", userhttp.CounterMiddleware(h.UpdatePart)).Methods("PUT")
	router.HandleFunc("/repuestos/{id}", userhttp.CounterMiddleware(h.DeletePart)).Methods("DELETE")
	router.HandleFunc("/repuestos/{id}/ajustar-stock", userhttp.CounterMiddleware(h.AdjustStock)).Methods("POST", "PATCH")
	router.HandleFunc("/repuestos/{id}/movimientos", userhttp.StaffMiddleware(h.ListMovements)).Methods("GET")
}
