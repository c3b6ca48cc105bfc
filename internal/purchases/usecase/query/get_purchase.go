package query

import (
	"fmt"

	"github.com/taller-sys/taller-backend/internal/purchases/domain"
)

// GetPurchaseQuery represents the query to get a purchase
type GetPurchaseQuery struct {
	ID uint
}

// GetPurchaseHandler handles get purchase query
type GetPurchaseHandler struct {
	repo domain.PurchaseRepository
}

// NewGetPurchaseHandler creates a new get purchase handler
func NewGetPurchaseHandler(repo domain.PurchaseRepository) *GetPurchaseHandler {
	return &GetPurchaseHandler{repo: repo}
}

// Handle executes the get purchase query
func (h *GetPurchaseHandler) Handle(query GetPurchaseQuery) (*domain.Purchase, error) {
	if query.ID == 0 {
		return nil, fmt.Errorf("id is required")
	}

	return h.repo.FindByID(query.ID)
}
