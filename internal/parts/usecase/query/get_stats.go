package query

import (
	"fmt"

	"github.com/taller-sys/taller-backend/internal/parts/domain"
)

// GetStatsQuery represents the query for inventory statistics
type GetStatsQuery struct{}

// GetStatsHandler handles get stats query
type GetStatsHandler struct {
	repo domain.PartRepository
}

// NewGetStatsHandler creates a new get stats handler
func NewGetStatsHandler(repo domain.PartRepository) *GetStatsHandler {
	return &GetStatsHandler{repo: repo}
}

// Handle executes the get stats query
func (h *GetStatsHandler) Handle(_ GetStatsQuery) (*domain.StockStats, error) {
	stats, err := h.repo.Stats()
	if err != nil {
		return nil, fmt.Errorf("failed to compute inventory stats: %w", err)
	}

	return stats, nil
}
