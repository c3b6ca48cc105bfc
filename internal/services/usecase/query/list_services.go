package query

import (
	"fmt"

	"github.com/taller-sys/taller-backend/internal/services/domain"
)

// ListServicesQuery represents the query to list the price list
type ListServicesQuery struct {
	ActiveOnly bool
}

// ListServicesHandler handles list services query
type ListServicesHandler struct {
	repo domain.ServiceRepository
}

// NewListServicesHandler creates a new list services handler
func NewListServicesHandler(repo domain.ServiceRepository) *ListServicesHandler {
	return &ListServicesHandler{repo: repo}
}

// Handle executes the list services query, ordered by name
func (h *ListServicesHandler) Handle(query ListServicesQuery) ([]domain.Service, error) {
	services, err := h.repo.FindAll(query.ActiveOnly)
	if err != nil {
		return nil, fmt.Errorf("failed to list services: %w", err)
	}

	return services, nil
}
