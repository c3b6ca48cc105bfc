package command

import (
	"fmt"

	"github.com/taller-sys/taller-backend/internal/purchases/domain"
)

// DeletePurchaseCommand represents the command to delete a purchase
type DeletePurchaseCommand struct {
	ID uint
}

// DeletePurchaseHandler handles delete purchase command
type DeletePurchaseHandler struct {
	repo domain.PurchaseRepository
}

// NewDeletePurchaseHandler creates a new delete purchase handler
func NewDeletePurchaseHandler(repo domain.PurchaseRepository) *DeletePurchaseHandler {
	return &DeletePurchaseHandler{repo: repo}
}

// Handle executes the delete purchase command. Reversal is all-or-nothing:
// ErrConflictingStockState means nothing changed.
func (h *DeletePurchaseHandler) Handle(cmd DeletePurchaseCommand) error {
	if cmd.ID == 0 {
		return fmt.Errorf("id is required")
	}

	return h.repo.Delete(cmd.ID)
}
