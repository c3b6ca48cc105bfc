package query

import (
	"fmt"

	"github.com/taller-sys/taller-backend/internal/suppliers/domain"
)

// GetSupplierQuery represents the query to get a supplier
type GetSupplierQuery struct {
	ID uint
}

// GetSupplierHandler handles get supplier query
type GetSupplierHandler struct {
	repo domain.SupplierRepository
}

// NewGetSupplierHandler creates a new get supplier handler
func NewGetSupplierHandler(repo domain.SupplierRepository) *GetSupplierHandler {
	return &GetSupplierHandler{repo: repo}
}

// Handle executes the get supplier query
func (h *GetSupplierHandler) Handle(query GetSupplierQuery) (*domain.Supplier, error) {
	if query.ID == 0 {
		return nil, fmt.Errorf("id is required")
	}

	return h.repo.FindByID(query.ID)
}
