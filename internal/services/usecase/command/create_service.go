package command

import (
	"fmt"

	"github.com/taller-sys/taller-backend/internal/services/domain"
)

// CreateServiceCommand represents the command to add a price list entry
type CreateServiceCommand struct {
	Name        string
	Description string
	Price       float64
}

// CreateServiceHandler handles create service command
type CreateServiceHandler struct {
	repo domain.ServiceRepository
}

// NewCreateServiceHandler creates a new create service handler
func NewCreateServiceHandler(repo domain.ServiceRepository) *CreateServiceHandler {
	return &CreateServiceHandler{repo: repo}
}

// Handle executes the create service command
func (h *CreateServiceHandler) Handle(cmd CreateServiceCommand) (*domain.Service, error) {
	if cmd.Name == "" {
		return nil, fmt.Errorf("name is required")
	}

	if cmd.Price < 0 {
		return nil, fmt.Errorf("price cannot be negative")
	}

	service := &domain.Service{
		Name:        cmd.Name,
		Description: cmd.Description,
		Price:       cmd.Price,
		IsActive:    true,
	}

	if err := h.repo.Create(service); err != nil {
		return nil, err
	}

	return service, nil
}
