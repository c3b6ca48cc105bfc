package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	partsdomain "github.com/taller-sys/taller-backend/internal/parts/domain"
	servicesdomain "github.com/taller-sys/taller-backend/internal/services/domain"
	userhttp "github.com/taller-sys/taller-backend/internal/user/delivery/http"
	"github.com/taller-sys/taller-backend/internal/workorders/domain"
	"github.com/taller-sys/taller-backend/internal/workorders/usecase/command"
	"github.com/taller-sys/taller-backend/internal/workorders/usecase/query"
	"github.com/taller-sys/taller-backend/pkg/logger"
)

// WorkOrderHandler handles HTTP requests for work orders
type WorkOrderHandler struct {
	createHandler       *command.CreateWorkOrderHandler
	updateStatusHandler *command.UpdateStatusHandler

	getHandler  *query.GetWorkOrderHandler
	listHandler *query.ListWorkOrdersHandler
}

// NewWorkOrderHandler creates a new work order handler
func NewWorkOrderHandler(repo domain.WorkOrderRepository, services servicesdomain.ServiceRepository) *WorkOrderHandler {
	return &WorkOrderHandler{
		createHandler:       command.NewCreateWorkOrderHandler(repo, services),
		updateStatusHandler: command.NewUpdateStatusHandler(repo),
		getHandler:          query.NewGetWorkOrderHandler(repo),
		listHandler:         query.NewListWorkOrdersHandler(repo),
	}
}

type Response struct {
	Success bool        `json:"success"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
}

// CreateWorkOrder handles POST /ordenes
func (h *WorkOrderHandler) CreateWorkOrder(w http.ResponseWriter, r *http.Request) {
	var req struct {
		CustomerID   uint    `json:"customer_id"`
		VehicleID    uint    `json:"vehicle_id"`
		TechnicianID uint    `json:"technician_id"`
		Description  string  `json:"description"`
		LaborCost    float64 `json:"labor_cost"`
		Services     []struct {
			ServiceID uint `json:"service_id"`
			Quantity  int  `json:"quantity"`
		} `json:"services"`
		Parts []struct {
			PartID    uint    `json:"part_id"`
			Quantity  int     `json:"quantity"`
			UnitPrice float64 `json:"unit_price"`
		} `json:"parts"`
	}

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondJSON(w, http.StatusBadRequest, Response{Success: false, Error: "Invalid request body"})
		return
	}

	serviceLines := make([]command.OrderServiceLine, 0, len(req.Services))
	for _, s := range req.Services {
		serviceLines = append(serviceLines, command.OrderServiceLine{
			ServiceID: s.ServiceID,
			Quantity:  s.Quantity,
		})
	}

	lines := make([]command.OrderPartLine, 0, len(req.Parts))
	for _, p := range req.Parts {
		lines = append(lines, command.OrderPartLine{
			PartID:    p.PartID,
			Quantity:  p.Quantity,
			UnitPrice: p.UnitPrice,
		})
	}

	order, err := h.createHandler.Handle(command.CreateWorkOrderCommand{
		CustomerID:   req.CustomerID,
		VehicleID:    req.VehicleID,
		TechnicianID: req.TechnicianID,
		Description:  req.Description,
		LaborCost:    req.LaborCost,
		Services:     serviceLines,
		Parts:        lines,
	})
	if err != nil {
		status := http.StatusBadRequest
		switch {
		case errors.Is(err, partsdomain.ErrPartNotFound):
			status = http.StatusNotFound
		case errors.Is(err, servicesdomain.ErrServiceNotFound):
			status = http.StatusNotFound
		case errors.Is(err, partsdomain.ErrInsufficientStock):
			status = http.StatusConflict
		}
		logger.Logger.Error().Err(err).Msg("Failed to create work order")
		respondJSON(w, status, Response{Success: false, Error: err.Error()})
		return
	}

	respondJSON(w, http.StatusCreated, Response{
		Success: true,
		Message: "Work order created successfully",
		Data:    order,
	})
}

// GetWorkOrder handles GET /ordenes/{id}
func (h *WorkOrderHandler) GetWorkOrder(w http.ResponseWriter, r *http.Request) {
	id, err := parseOrderID(r)
	if err != nil {
		respondJSON(w, http.StatusBadRequest, Response{Success: false, Error: "Invalid work order ID"})
		return
	}

	order, err := h.getHandler.Handle(query.GetWorkOrderQuery{ID: id})
	if err != nil {
		respondJSON(w, http.StatusNotFound, Response{Success: false, Error: "Work order not found"})
		return
	}

	respondJSON(w, http.StatusOK, Response{Success: true, Data: order})
}

// ListWorkOrders handles GET /ordenes
func (h *WorkOrderHandler) ListWorkOrders(w http.ResponseWriter, r *http.Request) {
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	offset, _ := strconv.Atoi(r.URL.Query().Get("offset"))
	customerID, _ := strconv.ParseUint(r.URL.Query().Get("customer_id"), 10, 32)

	orders, err := h.listHandler.Handle(query.ListWorkOrdersQuery{
		CustomerID: uint(customerID),
		Limit:      limit,
		Offset:     offset,
	})
	if err != nil {
		logger.Logger.Error().Err(err).Msg("Failed to list work orders")
		respondJSON(w, http.StatusInternalServerError, Response{
			Success: false,
			Error:   "Failed to list work orders",
		})
		return
	}

	respondJSON(w, http.StatusOK, Response{Success: true, Data: orders})
}

// UpdateStatus handles PUT /ordenes/{id}/estado
func (h *WorkOrderHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	id, err := parseOrderID(r)
	if err != nil {
		respondJSON(w, http.StatusBadRequest, Response{Success: false, Error: "Invalid work order ID"})
		return
	}

	var req struct {
		Estado string `json:"estado"`
	}

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondJSON(w, http.StatusBadRequest, Response{Success: false, Error: "Invalid request body"})
		return
	}

	order, err := h.updateStatusHandler.Handle(command.UpdateStatusCommand{
		WorkOrderID: id,
		Status:      req.Estado,
	})
	if err != nil {
		status := http.StatusBadRequest
		switch {
		case errors.Is(err, domain.ErrWorkOrderNotFound):
			status = http.StatusNotFound
		case errors.Is(err, domain.ErrInvalidTransition):
			status = http.StatusConflict
		}
		respondJSON(w, status, Response{Success: false, Error: err.Error()})
		return
	}

	respondJSON(w, http.StatusOK, Response{
		Success: true,
		Message: "Work order status updated successfully",
		Data:    order,
	})
}

func parseOrderID(r *http.Request) (uint, error) {
	id, err := strconv.ParseUint(mux.Vars(r)["id"], 10, 32)
	return uint(id), err
}

// respondJSON sends a JSON response
func respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(payload)
}

// RegisterRoutes registers all work order routes. Tecnicos update order
// status from the floor; opening orders stays at the counter.
func (h *WorkOrderHandler) RegisterRoutes(router *mux.Router) {
	router.HandleFunc("/ordenes", userhttp.StaffMiddleware(h.ListWorkOrders)).Methods("GET")
	router.HandleFunc("/ordenes", userhttp.CounterMiddleware(h.CreateWorkOrder)).Methods("POST")
	router.HandleFunc("/ordenes/{id}", userhttp.StaffMiddleware(h.GetWorkOrder)).Methods("GET")
	router.HandleFunc("/ordenes/{id}/estado", userhttp.StaffMiddleware(h.UpdateStatus)).Methods("PUT", "PATCH")
}
