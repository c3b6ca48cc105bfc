package query

import (
	"fmt"

	"github.com/taller-sys/taller-backend/internal/workorders/domain"
)

// GetWorkOrderQuery represents the query to get a work order
type GetWorkOrderQuery struct {
	ID uint
}

// GetWorkOrderHandler handles get work order query
type GetWorkOrderHandler struct {
	repo domain.WorkOrderRepository
}

// NewGetWorkOrderHandler creates a new get work order handler
func NewGetWorkOrderHandler(repo domain.WorkOrderRepository) *GetWorkOrderHandler {
	return &GetWorkOrderHandler{repo: repo}
}

// Handle executes the get work order query
func (h *GetWorkOrderHandler) Handle(query GetWorkOrderQuery) (*domain.WorkOrder, error) {
	if query.ID == 0 {
		return nil, fmt.Errorf("id is required")
	}

	return h.repo.FindByID(query.ID)
}
