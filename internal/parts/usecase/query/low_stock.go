package query

import (
	"fmt"

	"github.com/taller-sys/taller-backend/internal/parts/domain"
)

// LowStockQuery represents the query for parts at or below their threshold
type LowStockQuery struct{}

// LowStockHandler handles the low stock query
type LowStockHandler struct {
	repo domain.PartRepository
}

// NewLowStockHandler creates a new low stock handler
func NewLowStockHandler(repo domain.PartRepository) *LowStockHandler {
	return &LowStockHandler{repo: repo}
}

// Handle executes the low stock query. The threshold comparison is inclusive:
// a part with quantity equal to its minimum is already flagged.
func (h *LowStockHandler) Handle(_ LowStockQuery) ([]domain.Part, error) {
	parts, err := h.repo.FindLowStock()
	if err != nil {
		return nil, fmt.Errorf("failed to query low stock: %w", err)
	}

	return parts, nil
}
