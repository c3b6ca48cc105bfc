package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/taller-sys/taller-backend/internal/services/domain"
	"github.com/taller-sys/taller-backend/internal/services/usecase/command"
	"github.com/taller-sys/taller-backend/internal/services/usecase/query"
	userhttp "github.com/taller-sys/taller-backend/internal/user/delivery/http"
	"github.com/taller-sys/taller-backend/pkg/logger"
)

// ServiceHandler handles HTTP requests for the labor price list
type ServiceHandler struct {
	createHandler *command.CreateServiceHandler
	updateHandler *command.UpdateServiceHandler
	deleteHandler *command.DeleteServiceHandler
	toggleHandler *command.ToggleActiveHandler

	getHandler  *query.GetServiceHandler
	listHandler *query.ListServicesHandler
}

// NewServiceHandler creates a new service handler
func NewServiceHandler(repo domain.ServiceRepository) *ServiceHandler {
	return &ServiceHandler{
		createHandler: command.NewCreateServiceHandler(repo),
		updateHandler: command.NewUpdateServiceHandler(repo),
		deleteHandler: command.NewDeleteServiceHandler(repo),
		toggleHandler: command.NewToggleActiveHandler(repo),
		getHandler:    query.NewGetServiceHandler(repo),
		listHandler:   query.NewListServicesHandler(repo),
	}
}

type Response struct {
	Success bool        `json:"success"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
}

// CreateService handles POST /servicios
func (h *ServiceHandler) CreateService(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name        string  `json:"name"`
		Description string  `json:"description"`
		Price       float64 `json:"price"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondJSON(w, http.StatusBadRequest, Response{Success: false, Error: "Invalid request body"})
		return
	}

	service, err := h.createHandler.Handle(command.CreateServiceCommand{
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
	})
	if err != nil {
		status := http.StatusBadRequest
		if errors.Is(err, domain.ErrDuplicateName) {
			status = http.StatusConflict
		}
		logger.Logger.Error().Err(err).Msg("Failed to create service")
		respondJSON(w, status, Response{Success: false, Error: err.Error()})
		return
	}

	respondJSON(w, http.StatusCreated, Response{
		Success: true,
		Message: "Service created successfully",
		Data:    service,
	})
}

// GetService handles GET /servicios/{id}
func (h *ServiceHandler) GetService(w http.ResponseWriter, r *http.Request) {
	id, err := parseServiceID(r)
	if err != nil {
		respondJSON(w, http.StatusBadRequest, Response{Success: false, Error: "Invalid service ID"})
		return
	}

	service, err := h.getHandler.Handle(query.GetServiceQuery{ID: id})
	if err != nil {
		respondJSON(w, http.StatusNotFound, Response{Success: false, Error: "Service not found"})
		return
	}

	respondJSON(w, http.StatusOK, Response{Success: true, Data: service})
}

// ListServices handles GET /servicios
func (h *ServiceHandler) ListServices(w http.ResponseWriter, r *http.Request) {
	activeOnly := r.URL.Query().Get("active") == "true"

	services, err := h.listHandler.Handle(query.ListServicesQuery{ActiveOnly: activeOnly})
	if err != nil {
		logger.Logger.Error().Err(err).Msg("Failed to list services")
		respondJSON(w, http.StatusInternalServerError, Response{
			Success: false,
			Error:   "Failed to list services",
		})
		return
	}

	respondJSON(w, http.StatusOK, Response{Success: true, Data: services})
}

// UpdateService handles PUT /servicios/{id}
func (h *ServiceHandler) UpdateService(w http.ResponseWriter, r *http.Request) {
	id, err := parseServiceID(r)
	if err != nil {
		respondJSON(w, http.StatusBadRequest, Response{Success: false, Error: "Invalid service ID"})
		return
	}

	var req struct {
		Name        string   `json:"name"`
		Description string   `json:"description"`
		Price       *float64 `json:"price"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondJSON(w, http.StatusBadRequest, Response{Success: false, Error: "Invalid request body"})
		return
	}

	service, err := h.updateHandler.Handle(command.UpdateServiceCommand{
		ServiceID:   id,
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
	})
	if err != nil {
		status := http.StatusBadRequest
		switch {
		case errors.Is(err, domain.ErrServiceNotFound):
			status = http.StatusNotFound
		case errors.Is(err, domain.ErrDuplicateName):
			status = http.StatusConflict
		}
		respondJSON(w, status, Response{Success: false, Error: err.Error()})
		return
	}

	respondJSON(w, http.StatusOK, Response{
		Success: true,
		Message: "Service updated successfully",
		Data:    service,
	})
}

// ToggleActive handles PUT /servicios/{id}/active
func (h *ServiceHandler) ToggleActive(w http.ResponseWriter, r *http.Request) {
	id, err := parseServiceID(r)
	if err != nil {
		respondJSON(w, http.StatusBadRequest, Response{Success: false, Error: "Invalid service ID"})
		return
	}

	service, err := h.toggleHandler.Handle(command.ToggleActiveCommand{ID: id})
	if err != nil {
		if errors.Is(err, domain.ErrServiceNotFound) {
			respondJSON(w, http.StatusNotFound, Response{Success: false, Error: "Service not found"})
			return
		}
		respondJSON(w, http.StatusBadRequest, Response{Success: false, Error: err.Error()})
		return
	}

	respondJSON(w, http.StatusOK, Response{
		Success: true,
		Message: "Service updated successfully",
		Data:    service,
	})
}

// DeleteService handles DELETE /servicios/{id}
func (h *ServiceHandler) DeleteService(w http.ResponseWriter, r *http.Request) {
	id, err := parseServiceID(r)
	if err != nil {
		respondJSON(w, http.StatusBadRequest, Response{Success: false, Error: "Invalid service ID"})
		return
	}

	deactivated, err := h.deleteHandler.Handle(command.DeleteServiceCommand{ServiceID: id})
	if err != nil {
		if errors.Is(err, domain.ErrServiceNotFound) {
			respondJSON(w, http.StatusNotFound, Response{Success: false, Error: "Service not found"})
			return
		}
		logger.Logger.Error().Err(err).Uint("service_id", id).Msg("Failed to delete service")
		respondJSON(w, http.StatusInternalServerError, Response{Success: false, Error: err.Error()})
		return
	}

	message := "Service deleted successfully"
	if deactivated {
		message = "Service is referenced by work orders and was deactivated instead"
	}
	respondJSON(w, http.StatusOK, Response{Success: true, Message: message})
}

func parseServiceID(r *http.Request) (uint, error) {
	id, err := strconv.ParseUint(mux.Vars(r)["id"], 10, 32)
	return uint(id), err
}

// respondJSON sends a JSON response
func respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(payload)
}

// RegisterRoutes registers all price list routes. The list is managed from
// the counter; tecnicos read it when composing orders.
func (h *ServiceHandler) RegisterRoutes(router *mux.Router) {
	router.HandleFunc("/servicios", userhttp.StaffMiddleware(h.ListServices)).Methods("GET")
	router.HandleFunc("/servicios", userhttp.CounterMiddleware(h.CreateService)).Methods("POST")
	router.HandleFunc("/servicios/{id}", userhttp.StaffMiddleware(h.GetService)).Methods("GET")
	router.HandleFunc("/servicios/{id}", userhttp.CounterMiddleware(h.UpdateService)).Methods("PUT", "PATCH")
	router.HandleFunc("/servicios/{id}", userhttp.CounterMiddleware(h.DeleteService)).Methods("DELETE")
	router.HandleFunc("/servicios/{id}/active", userhttp.CounterMiddleware(h.ToggleActive)).Methods("PUT")
}
