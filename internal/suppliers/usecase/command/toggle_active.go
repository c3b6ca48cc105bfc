package command

import (
	"fmt"

	"github.com/taller-sys/taller-backend/internal/suppliers/domain"
)

// ToggleActiveCommand represents the command to flip a supplier's active flag
type ToggleActiveCommand struct {
	ID uint
}

// ToggleActiveHandler handles toggle active command
type ToggleActiveHandler struct {
	repo domain.SupplierRepository
}

// NewToggleActiveHandler creates a new toggle active handler
func NewToggleActiveHandler(repo domain.SupplierRepository) *ToggleActiveHandler {
	return &ToggleActiveHandler{repo: repo}
}

// Handle executes the toggle active command
func (h *ToggleActiveHandler) Handle(cmd ToggleActiveCommand) (*domain.Supplier, error) {
	if cmd.ID == 0 {
		return nil, fmt.Errorf("id is required")
	}

	return h.repo.ToggleActive(cmd.ID)
}
