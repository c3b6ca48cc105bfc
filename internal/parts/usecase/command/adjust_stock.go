package command

import (
	"fmt"

	"github.com/taller-sys/taller-backend/internal/parts/domain"
)

// AdjustStockCommand represents the command to adjust a part's stock.
// Positive delta is inbound, negative is outbound.
type AdjustStockCommand struct {
	PartID uint
	Delta  int
	Reason string
}

// AdjustStockHandler handles adjust stock command
type AdjustStockHandler struct {
	repo domain.PartRepository
}

// NewAdjustStockHandler creates a new adjust stock handler
func NewAdjustStockHandler(repo domain.PartRepository) *AdjustStockHandler {
	return &AdjustStockHandler{repo: repo}
}

// Handle executes the adjust stock command and returns the new quantity
func (h *AdjustStockHandler) Handle(cmd AdjustStockCommand) (int, error) {
	if cmd.PartID == 0 {
		return 0, fmt.Errorf("part_id is required")
	}

	// Outbound adjustments must carry an audit reason
	if cmd.Delta < 0 && cmd.Reason == "" {
		return 0, fmt.Errorf("reason is required for outbound adjustments")
	}

	if cmd.Reason == "" {
		cmd.Reason = "manual"
	}

	newQuantity, err := h.repo.AdjustStock(cmd.PartID, cmd.Delta, cmd.Reason)
	if err != nil {
		return 0, err
	}

	return newQuantity, nil
}
