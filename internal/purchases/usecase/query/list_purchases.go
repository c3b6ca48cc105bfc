package query

import (
	"fmt"

	"github.com/taller-sys/taller-backend/internal/purchases/domain"
)

// ListPurchasesQuery represents the query to list purchases, optionally
// filtered by supplier
type ListPurchasesQuery struct {
	SupplierID uint
	Limit      int
	Offset     int
}

// ListPurchasesHandler handles list purchases query
type ListPurchasesHandler struct {
	repo domain.PurchaseRepository
}

// NewListPurchasesHandler creates a new list purchases handler
func NewListPurchasesHandler(repo domain.PurchaseRepository) *ListPurchasesHandler {
	return &ListPurchasesHandler{repo: repo}
}

// Handle executes the list purchases query, newest first
func (h *ListPurchasesHandler) Handle(query ListPurchasesQuery) ([]domain.Purchase, error) {
	if query.SupplierID != 0 {
		purchases, err := h.repo.FindBySupplier(query.SupplierID)
		if err != nil {
			return nil, fmt.Errorf("failed to list purchases: %w", err)
		}
		return purchases, nil
	}

	if query.Limit == 0 {
		query.Limit = 50
	}

	if query.Limit > 200 {
		query.Limit = 200
	}

	purchases, err := h.repo.FindAll(query.Limit, query.Offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list purchases: %w", err)
	}

	return purchases, nil
}
