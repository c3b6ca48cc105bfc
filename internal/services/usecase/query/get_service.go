package query

import (
	"github.com/taller-sys/taller-backend/internal/services/domain"
)

// GetServiceQuery represents the query to get a service by ID
type GetServiceQuery struct {
	ID uint
}

// GetServiceHandler handles get service query
type GetServiceHandler struct {
	repo domain.ServiceRepository
}

// NewGetServiceHandler creates a new get service handler
func NewGetServiceHandler(repo domain.ServiceRepository) *GetServiceHandler {
	return &GetServiceHandler{repo: repo}
}

// Handle executes the get service query
func (h *GetServiceHandler) Handle(query GetServiceQuery) (*domain.Service, error) {
	return h.repo.FindByID(query.ID)
}
