package command

import (
	"fmt"
	"strings"

	"github.com/taller-sys/taller-backend/internal/suppliers/domain"
)

// UpdateSupplierCommand represents the command to update a supplier
type UpdateSupplierCommand struct {
	ID      uint
	Name    string
	Company string
	Phone   string
	Email   string
	Address string
}

// UpdateSupplierHandler handles update supplier command
type UpdateSupplierHandler struct {
	repo domain.SupplierRepository
}

// NewUpdateSupplierHandler creates a new update supplier handler
func NewUpdateSupplierHandler(repo domain.SupplierRepository) *UpdateSupplierHandler {
	return &UpdateSupplierHandler{repo: repo}
}

// Handle executes the update supplier command
func (h *UpdateSupplierHandler) Handle(cmd UpdateSupplierCommand) (*domain.Supplier, error) {
	if cmd.ID == 0 {
		return nil, fmt.Errorf("id is required")
	}

	supplier, err := h.repo.FindByID(cmd.ID)
	if err != nil {
		return nil, err
	}

	if cmd.Name != "" {
		supplier.Name = cmd.Name
	}
	if cmd.Company != "" {
		supplier.Company = cmd.Company
	}
	if cmd.Phone != "" {
		supplier.Phone = cmd.Phone
	}
	if cmd.Email != "" {
		if !strings.Contains(cmd.Email, "@") {
			return nil, fmt.Errorf("valid email is required")
		}
		supplier.Email = strings.ToLower(cmd.Email)
	}
	if cmd.Address != "" {
		supplier.Address = cmd.Address
	}

	if err := h.repo.Update(supplier); err != nil {
		return nil, err
	}

	return supplier, nil
}
