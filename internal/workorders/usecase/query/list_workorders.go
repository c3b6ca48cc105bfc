package query

import (
	"fmt"

	"github.com/taller-sys/taller-backend/internal/workorders/domain"
)

// ListWorkOrdersQuery represents the query to list work orders, optionally
// filtered by customer
type ListWorkOrdersQuery struct {
	CustomerID uint
	Limit      int
	Offset     int
}

// ListWorkOrdersHandler handles list work orders query
type ListWorkOrdersHandler struct {
	repo domain.WorkOrderRepository
}

// NewListWorkOrdersHandler creates a new list work orders handler
func NewListWorkOrdersHandler(repo domain.WorkOrderRepository) *ListWorkOrdersHandler {
	return &ListWorkOrdersHandler{repo: repo}
}

// Handle executes the list work orders query, newest first
func (h *ListWorkOrdersHandler) Handle(query ListWorkOrdersQuery) ([]domain.WorkOrder, error) {
	if query.CustomerID != 0 {
		orders, err := h.repo.FindByCustomer(query.CustomerID)
		if err != nil {
			return nil, fmt.Errorf("failed to list work orders: %w", err)
		}
		return orders, nil
	}

	if query.Limit == 0 {
		query.Limit = 50
	}

	orders, err := h.repo.FindAll(query.Limit, query.Offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list work orders: %w", err)
	}

	return orders, nil
}
