package query

import (
	"fmt"

	"github.com/taller-sys/taller-backend/internal/parts/domain"
)

// ListMovementsQuery represents the query to list a part's stock movements
type ListMovementsQuery struct {
	PartID uint
	Limit  int
	Offset int
}

// ListMovementsHandler handles list movements query
type ListMovementsHandler struct {
	repo domain.PartRepository
}

// NewListMovementsHandler creates a new list movements handler
func NewListMovementsHandler(repo domain.PartRepository) *ListMovementsHandler {
	return &ListMovementsHandler{repo: repo}
}

// Handle executes the list movements query, newest first
func (h *ListMovementsHandler) Handle(query ListMovementsQuery) ([]domain.StockMovement, error) {
	if query.PartID == 0 {
		return nil, fmt.Errorf("part_id is required")
	}

	if query.Limit == 0 {
		query.Limit = 50
	}

	// Validate the part exists so a missing part is a 404, not an empty list
	if _, err := h.repo.FindByID(query.PartID); err != nil {
		return nil, err
	}

	movements, err := h.repo.FindMovements(query.PartID, query.Limit, query.Offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list movements: %w", err)
	}

	return movements, nil
}
