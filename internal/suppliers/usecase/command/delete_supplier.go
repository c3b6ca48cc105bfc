package command

import (
	"fmt"

	"github.com/taller-sys/taller-backend/internal/suppliers/domain"
)

// DeleteSupplierCommand represents the command to delete a supplier
type DeleteSupplierCommand struct {
	ID uint
}

// DeleteSupplierHandler handles delete supplier command
type DeleteSupplierHandler struct {
	repo domain.SupplierRepository
}

// NewDeleteSupplierHandler creates a new delete supplier handler
func NewDeleteSupplierHandler(repo domain.SupplierRepository) *DeleteSupplierHandler {
	return &DeleteSupplierHandler{repo: repo}
}

// Handle executes the delete supplier command. Suppliers with purchase
// history are rejected with ErrSupplierHasPurchases; deactivate them instead.
func (h *DeleteSupplierHandler) Handle(cmd DeleteSupplierCommand) error {
	if cmd.ID == 0 {
		return fmt.Errorf("id is required")
	}

	return h.repo.Delete(cmd.ID)
}
