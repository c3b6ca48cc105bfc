package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/taller-sys/taller-backend/internal/suppliers/domain"
	"github.com/taller-sys/taller-backend/internal/suppliers/usecase/command"
	"github.com/taller-sys/taller-backend/internal/suppliers/usecase/query"
	userhttp "github.com/taller-sys/taller-backend/internal/user/delivery/http"
	"github.com/taller-sys/taller-backend/pkg/logger"
)

// SupplierHandler handles HTTP requests for suppliers
type SupplierHandler struct {
	createHandler *command.CreateSupplierHandler
	updateHandler *command.UpdateSupplierHandler
	toggleHandler *command.ToggleActiveHandler
	deleteHandler *command.DeleteSupplierHandler

	getHandler  *query.GetSupplierHandler
	listHandler *query.ListSuppliersHandler
}

// NewSupplierHandler creates a new supplier handler
func NewSupplierHandler(repo domain.SupplierRepository) *SupplierHandler {
	return &SupplierHandler{
		createHandler: command.NewCreateSupplierHandler(repo),
		updateHandler: command.NewUpdateSupplierHandler(repo),
		toggleHandler: command.NewToggleActiveHandler(repo),
		deleteHandler: command.NewDeleteSupplierHandler(repo),
		getHandler:    query.NewGetSupplierHandler(repo),
		listHandler:   query.NewListSuppliersHandler(repo),
	}
}

type Response struct {
	Success bool        `json:"success"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
}

type supplierRequest struct {
	Name    string `json:"name"`
	Company string `json:"company"`
	Phone   string `json:"phone"`
	Email   string `json:"email"`
	Address string `json:"address"`
}

// CreateSupplier handles POST /proveedores
func (h *SupplierHandler) CreateSupplier(w http.ResponseWriter, r *http.Request) {
	var req supplierRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondJSON(w, http.StatusBadRequest, Response{Success: false, Error: "Invalid request body"})
		return
	}

	supplier, err := h.createHandler.Handle(command.CreateSupplierCommand{
		Name:    req.Name,
		Company: req.Company,
		Phone:   req.Phone,
		Email:   req.Email,
		Address: req.Address,
	})
	if err != nil {
		status := http.StatusBadRequest
		if errors.Is(err, domain.ErrDuplicateEmail) {
			status = http.StatusConflict
		}
		logger.Logger.Error().Err(err).Msg("Failed to create supplier")
		respondJSON(w, status, Response{Success: false, Error: err.Error()})
		return
	}

	respondJSON(w, http.StatusCreated, Response{
		Success: true,
		Message: "Supplier created successfully",
		Data:    supplier,
	})
}

// GetSupplier handles GET /proveedores/{id}
func (h *SupplierHandler) GetSupplier(w http.ResponseWriter, r *http.Request) {
	id, err := parseSupplierID(r)
	if err != nil {
		respondJSON(w, http.StatusBadRequest, Response{Success: false, Error: "Invalid supplier ID"})
		return
	}

	supplier, err := h.getHandler.Handle(query.GetSupplierQuery{ID: id})
	if err != nil {
		respondJSON(w, http.StatusNotFound, Response{Success: false, Error: "Supplier not found"})
		return
	}

	respondJSON(w, http.StatusOK, Response{Success: true, Data: supplier})
}

// ListSuppliers handles GET /proveedores
func (h *SupplierHandler) ListSuppliers(w http.ResponseWriter, r *http.Request) {
	activeOnly := r.URL.Query().Get("active") == "true"

	suppliers, err := h.listHandler.Handle(query.ListSuppliersQuery{ActiveOnly: activeOnly})
	if err != nil {
		logger.Logger.Error().Err(err).Msg("Failed to list suppliers")
		respondJSON(w, http.StatusInternalServerError, Response{
			Success: false,
			Error:   "Failed to list suppliers",
		})
		return
	}

	respondJSON(w, http.StatusOK, Response{Success: true, Data: suppliers})
}

// UpdateSupplier handles PUT /proveedores/{id}
func (h *SupplierHandler) UpdateSupplier(w http.ResponseWriter, r *http.Request) {
	id, err := parseSupplierID(r)
	if err != nil {
		respondJSON(w, http.StatusBadRequest, Response{Success: false, Error: "Invalid supplier ID"})
		return
	}

	var req supplierRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondJSON(w, http.StatusBadRequest, Response{Success: false, Error: "Invalid request body"})
		return
	}

	supplier, err := h.updateHandler.Handle(command.UpdateSupplierCommand{
		ID:      id,
		Name:    req.Name,
		Company: req.Company,
		Phone:   req.Phone,
		Email:   req.Email,
		Address: req.Address,
	})
	if err != nil {
		status := http.StatusBadRequest
		switch {
		case errors.Is(err, domain.ErrSupplierNotFound):
			status = http.StatusNotFound
		case errors.Is(err, domain.ErrDuplicateEmail):
			status = http.StatusConflict
		}
		respondJSON(w, status, Response{Success: false, Error: err.Error()})
		return
	}

	respondJSON(w, http.StatusOK, Response{
		Success: true,
		Message: "Supplier updated successfully",
		Data:    supplier,
	})
}

// ToggleActive handles PUT /proveedores/{id}/active
func (h *SupplierHandler) ToggleActive(w http.ResponseWriter, r *http.Request) {
	id, err := parseSupplierID(r)
	if err != nil {
		respondJSON(w, http.StatusBadRequest, Response{Success: false, Error: "Invalid supplier ID"})
		return
	}

	supplier, err := h.toggleHandler.Handle(command.ToggleActiveCommand{ID: id})
	if err != nil {
		if errors.Is(err, domain.ErrSupplierNotFound) {
			respondJSON(w, http.StatusNotFound, Response{Success: false, Error: "Supplier not found"})
			return
		}
		respondJSON(w, http.StatusBadRequest, Response{Success: false, Error: err.Error()})
		return
	}

	respondJSON(w, http.StatusOK, Response{
		Success: true,
		Message: "Supplier updated successfully",
		Data:    supplier,
	})
}

// DeleteSupplier handles DELETE /proveedores/{id}
func (h *SupplierHandler) DeleteSupplier(w http.ResponseWriter, r *http.Request) {
	id, err := parseSupplierID(r)
	if err != nil {
		respondJSON(w, http.StatusBadRequest, Response{Success: false, Error: "Invalid supplier ID"})
		return
	}

	if err := h.deleteHandler.Handle(command.DeleteSupplierCommand{ID: id}); err != nil {
		switch {
		case errors.Is(err, domain.ErrSupplierNotFound):
			respondJSON(w, http.StatusNotFound, Response{Success: false, Error: "Supplier not found"})
		case errors.Is(err, domain.ErrSupplierHasPurchases):
			respondJSON(w, http.StatusConflict, Response{Success: false, Error: err.Error()})
		default:
			logger.Logger.Error().Err(err).Uint("supplier_id", id).Msg("Failed to delete supplier")
			respondJSON(w, http.StatusInternalServerError, Response{Success: false, Error: err.Error()})
		}
		return
	}

	respondJSON(w, http.StatusOK, Response{Success: true, Message: "Supplier deleted successfully"})
}

func parseSupplierID(r *http.Request) (uint, error) {
	id, err := strconv.ParseUint(mux.Vars(r)["id"], 10, 32)
	return uint(id), err
}

// respondJSON sends a JSON response
func respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(payload)
}

// RegisterRoutes registers all supplier routes. Suppliers are managed
// from the counter, so writes need admin or recepcionista.
func (h *SupplierHandler) RegisterRoutes(router *mux.Router) {
	router.HandleFunc("/proveedores", userhttp.StaffMiddleware(h.ListSuppliers)).Methods("GET")
	router.HandleFunc("/proveedores", userhttp.CounterMiddleware(h.CreateSupplier)).Methods("POST")
	router.HandleFunc("/proveedores/{id}", userhttp.StaffMiddleware(h.GetSupplier)).Methods("GET")
	router.HandleFunc("/proveedores/{id}", userhttp.CounterMiddleware(h.UpdateSupplier)).Methods("PUT")
	router.HandleFunc("/proveedores/{id}", userhttp.CounterMiddleware(h.DeleteSupplier)).Methods("DELETE")
	router.HandleFunc("/proveedores/{id}/active", userhttp.CounterMiddleware(h.ToggleActive)).Methods("PUT")
}
