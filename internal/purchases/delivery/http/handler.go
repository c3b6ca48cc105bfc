package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	partsdomain "github.com/taller-sys/taller-backend/internal/parts/domain"
	"github.com/taller-sys/taller-backend/internal/purchases/domain"
	"github.com/taller-sys/taller-backend/internal/purchases/usecase/command"
	"github.com/taller-sys/taller-backend/internal/purchases/usecase/query"
	suppliersdomain "github.com/taller-sys/taller-backend/internal/suppliers/domain"
	userhttp "github.com/taller-sys/taller-backend/internal/user/delivery/http"
	"github.com/taller-sys/taller-backend/kafka"
	"github.com/taller-sys/taller-backend/pkg/logger"
)

// PurchaseHandler handles HTTP requests for supplier purchases
type PurchaseHandler struct {
	createHandler       *command.CreatePurchaseHandler
	deleteHandler       *command.DeletePurchaseHandler
	updateStatusHandler *command.UpdateStatusHandler

	getHandler  *query.GetPurchaseHandler
	listHandler *query.ListPurchasesHandler

	publisher *kafka.Publisher
}

// NewPurchaseHandler creates a new purchase handler. publisher may be nil
// when Kafka is not configured.
func NewPurchaseHandler(repo domain.PurchaseRepository, suppliers suppliersdomain.SupplierRepository, publisher *kafka.Publisher) *PurchaseHandler {
	return &PurchaseHandler{
		createHandler:       command.NewCreatePurchaseHandler(repo, suppliers),
		deleteHandler:       command.NewDeletePurchaseHandler(repo),
		updateStatusHandler: command.NewUpdateStatusHandler(repo),
		getHandler:          query.NewGetPurchaseHandler(repo),
		listHandler:         query.NewListPurchasesHandler(repo),
		publisher:           publisher,
	}
}

type Response struct {
	Success bool        `json:"success"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
}

// CreatePurchase handles POST /compras
func (h *PurchaseHandler) CreatePurchase(w http.ResponseWriter, r *http.Request) {
	var req struct {
		SupplierID uint   `json:"supplier_id"`
		Date       string `json:"date"`
		Status     string `json:"status"`
		Notes      string `json:"notes"`
		Items      []struct {
			PartID    uint    `json:"part_id"`
			Quantity  int     `json:"quantity"`
			UnitPrice float64 `json:"unit_price"`
		} `json:"items"`
	}

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondJSON(w, http.StatusBadRequest, Response{Success: false, Error: "Invalid request body"})
		return
	}

	var date time.Time
	if req.Date != "" {
		parsed, err := time.Parse("2006-01-02", req.Date)
		if err != nil {
			respondJSON(w, http.StatusBadRequest, Response{Success: false, Error: "Invalid date, expected YYYY-MM-DD"})
			return
		}
		date = parsed
	}

	lines := make([]command.PurchaseLine, 0, len(req.Items))
	for _, item := range req.Items {
		lines = append(lines, command.PurchaseLine{
			PartID:    item.PartID,
			Quantity:  item.Quantity,
			UnitPrice: item.UnitPrice,
		})
	}

	purchase, err := h.createHandler.Handle(command.CreatePurchaseCommand{
		SupplierID: req.SupplierID,
		Date:       date,
		Status:     req.Status,
		Notes:      req.Notes,
		Lines:      lines,
	})
	if err != nil {
		status := http.StatusBadRequest
		switch {
		case errors.Is(err, suppliersdomain.ErrSupplierNotFound), errors.Is(err, partsdomain.ErrPartNotFound):
			status = http.StatusNotFound
		case errors.Is(err, suppliersdomain.ErrSupplierInactive):
			status = http.StatusConflict
		}
		logger.Logger.Error().Err(err).Msg("Failed to record purchase")
		respondJSON(w, status, Response{Success: false, Error: err.Error()})
		return
	}

	if h.publisher != nil {
		if err := h.publisher.PublishPurchaseRecorded(r.Context(), kafka.PurchaseRecordedEvent{
			PurchaseID: purchase.ID,
			SupplierID: purchase.SupplierID,
			Status:     purchase.Status,
			Total:      purchase.Total,
			LineCount:  len(purchase.Items),
		}); err != nil {
			logger.Logger.Error().Err(err).Uint("purchase_id", purchase.ID).Msg("Failed to publish purchase event")
		}
	}

	respondJSON(w, http.StatusCreated, Response{
		Success: true,
		Message: "Purchase recorded successfully",
		Data:    purchase,
	})
}

// GetPurchase handles GET /compras/{id}
func (h *PurchaseHandler) GetPurchase(w http.ResponseWriter, r *http.Request) {
	id, err := parsePurchaseID(r)
	if err != nil {
		respondJSON(w, http.StatusBadRequest, Response{Success: false, Error: "Invalid purchase ID"})
		return
	}

	purchase, err := h.getHandler.Handle(query.GetPurchaseQuery{ID: id})
	if err != nil {
		respondJSON(w, http.StatusNotFound, Response{Success: false, Error: "Purchase not found"})
		return
	}

	respondJSON(w, http.StatusOK, Response{Success: true, Data: purchase})
}

// ListPurchases handles GET /compras
func (h *PurchaseHandler) ListPurchases(w http.ResponseWriter, r *http.Request) {
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	offset, _ := strconv.Atoi(r.URL.Query().Get("offset"))
	supplierID, _ := strconv.ParseUint(r.URL.Query().Get("supplier_id"), 10, 32)

	purchases, err := h.listHandler.Handle(query.ListPurchasesQuery{
		SupplierID: uint(supplierID),
		Limit:      limit,
		Offset:     offset,
	})
	if err != nil {
		logger.Logger.Error().Err(err).Msg("Failed to list purchases")
		respondJSON(w, http.StatusInternalServerError, Response{
			Success: false,
			Error:   "Failed to list purchases",
		})
		return
	}

	respondJSON(w, http.StatusOK, Response{Success: true, Data: purchases})
}

// ListBySupplier handles GET /proveedores/{id}/compras
func (h *PurchaseHandler) ListBySupplier(w http.ResponseWriter, r *http.Request) {
	id, err := parsePurchaseID(r)
	if err != nil {
		respondJSON(w, http.StatusBadRequest, Response{Success: false, Error: "Invalid supplier ID"})
		return
	}

	purchases, err := h.listHandler.Handle(query.ListPurchasesQuery{SupplierID: id})
	if err != nil {
		logger.Logger.Error().Err(err).Uint("supplier_id", id).Msg("Failed to list supplier purchases")
		respondJSON(w, http.StatusInternalServerError, Response{
			Success: false,
			Error:   "Failed to list purchases",
		})
		return
	}

	respondJSON(w, http.StatusOK, Response{Success: true, Data: purchases})
}

// UpdateStatus handles PUT /compras/{id}/estado
func (h *PurchaseHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	id, err := parsePurchaseID(r)
	if err != nil {
		respondJSON(w, http.StatusBadRequest, Response{Success: false, Error: "Invalid purchase ID"})
		return
	}

	var req struct {
		Estado string `json:"estado"`
	}

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondJSON(w, http.StatusBadRequest, Response{Success: false, Error: "Invalid request body"})
		return
	}

	purchase, err := h.updateStatusHandler.Handle(command.UpdateStatusCommand{
		PurchaseID: id,
		Status:     req.Estado,
	})
	if err != nil {
		status := http.StatusBadRequest
		switch {
		case errors.Is(err, domain.ErrPurchaseNotFound):
			status = http.StatusNotFound
		case errors.Is(err, domain.ErrInvalidTransition):
			status = http.StatusConflict
		}
		respondJSON(w, status, Response{Success: false, Error: err.Error()})
		return
	}

	respondJSON(w, http.StatusOK, Response{
		Success: true,
		Message: "Purchase status updated successfully",
		Data:    purchase,
	})
}

// DeletePurchase handles DELETE /compras/{id}
func (h *PurchaseHandler) DeletePurchase(w http.ResponseWriter, r *http.Request) {
	id, err := parsePurchaseID(r)
	if err != nil {
		respondJSON(w, http.StatusBadRequest, Response{Success: false, Error: "Invalid purchase ID"})
		return
	}

	if err := h.deleteHandler.Handle(command.DeletePurchaseCommand{ID: id}); err != nil {
		switch {
		case errors.Is(err, domain.ErrPurchaseNotFound):
			respondJSON(w, http.StatusNotFound, Response{Success: false, Error: "Purchase not found"})
		case errors.Is(err, domain.ErrConflictingStockState):
			respondJSON(w, http.StatusConflict, Response{Success: false, Error: err.Error()})
		default:
			logger.Logger.Error().Err(err).Uint("purchase_id", id).Msg("Failed to delete purchase")
			respondJSON(w, http.StatusInternalServerError, Response{Success: false, Error: err.Error()})
		}
		return
	}

	respondJSON(w, http.StatusOK, Response{Success: true, Message: "Purchase deleted and stock reversed"})
}

func parsePurchaseID(r *http.Request) (uint, error) {
	id, err := strconv.ParseUint(mux.Vars(r)["id"], 10, 32)
	return uint(id), err
}

// respondJSON sends a JSON response
func respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(payload)
}

// RegisterRoutes registers all purchase routes. Purchases move money and
// stock, so every write is restricted to admin and recepcionista.
func (h *PurchaseHandler) RegisterRoutes(router *mux.Router) {
	router.HandleFunc("/compras", userhttp.StaffMiddleware(h.ListPurchases)).Methods("GET")
	router.HandleFunc("/compras", userhttp.CounterMiddleware(h.CreatePurchase)).Methods("POST")
	router.HandleFunc("/compras/{id}", userhttp.StaffMiddleware(h.GetPurchase)).Methods("GET")
	router.HandleFunc("/compras/{id}", userhttp.CounterMiddleware(h.DeletePurchase)).Methods("DELETE")
	router.HandleFunc("/compras/{id}/estado", userhttp.CounterMiddleware(h.UpdateStatus)).Methods("PUT", "PATCH")
	router.HandleFunc("/proveedores/{id}/compras", userhttp.StaffMiddleware(h.ListBySupplier)).Methods("GET")
}
