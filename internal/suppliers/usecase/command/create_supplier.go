package command

import (
	"fmt"
	"strings"

	"github.com/taller-sys/taller-backend/internal/suppliers/domain"
)

// CreateSupplierCommand represents the command to create a supplier
type CreateSupplierCommand struct {
	Name    string
	Company string
	Phone   string
	Email   string
	Address string
}

// CreateSupplierHandler handles create supplier command
type CreateSupplierHandler struct {
	repo domain.SupplierRepository
}

// NewCreateSupplierHandler creates a new create supplier handler
func NewCreateSupplierHandler(repo domain.SupplierRepository) *CreateSupplierHandler {
	return &CreateSupplierHandler{repo: repo}
}

// Handle executes the create supplier command
func (h *CreateSupplierHandler) Handle(cmd CreateSupplierCommand) (*domain.Supplier, error) {
	if cmd.Name == "" {
		return nil, fmt.Errorf("name is required")
	}

	if cmd.Email == "" || !strings.Contains(cmd.Email, "@") {
		return nil, fmt.Errorf("valid email is required")
	}

	supplier := &domain.Supplier{
		Name:     cmd.Name,
		Company:  cmd.Company,
		Phone:    cmd.Phone,
		Email:    strings.ToLower(cmd.Email),
		Address:  cmd.Address,
		IsActive: true,
	}

	if err := h.repo.Create(supplier); err != nil {
		return nil, err
	}

	return supplier, nil
}
