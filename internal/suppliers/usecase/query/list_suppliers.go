package query

import (
	"fmt"

	"github.com/taller-sys/taller-backend/internal/suppliers/domain"
)

// ListSuppliersQuery represents the query to list suppliers
type ListSuppliersQuery struct {
	ActiveOnly bool
}

// ListSuppliersHandler handles list suppliers query
type ListSuppliersHandler struct {
	repo domain.SupplierRepository
}

// NewListSuppliersHandler creates a new list suppliers handler
func NewListSuppliersHandler(repo domain.SupplierRepository) *ListSuppliersHandler {
	return &ListSuppliersHandler{repo: repo}
}

// Handle executes the list suppliers query, ordered by name
func (h *ListSuppliersHandler) Handle(query ListSuppliersQuery) ([]domain.Supplier, error) {
	suppliers, err := h.repo.FindAll(query.ActiveOnly)
	if err != nil {
		return nil, fmt.Errorf("failed to list suppliers: %w", err)
	}

	return suppliers, nil
}
