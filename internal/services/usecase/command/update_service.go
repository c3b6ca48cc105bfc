package command

import (
	"fmt"

	"github.com/taller-sys/taller-backend/internal/services/domain"
)

// UpdateServiceCommand represents the command to update a price list entry.
// Zero values leave the field untouched.
type UpdateServiceCommand struct {
	ServiceID   uint
	Name        string
	Description string
	Price       *float64
}

// UpdateServiceHandler handles update service command
type UpdateServiceHandler struct {
	repo domain.ServiceRepository
}

// NewUpdateServiceHandler creates a new update service handler
func NewUpdateServiceHandler(repo domain.ServiceRepository) *UpdateServiceHandler {
	return &UpdateServiceHandler{repo: repo}
}

// Handle executes the update service command
func (h *UpdateServiceHandler) Handle(cmd UpdateServiceCommand) (*domain.Service, error) {
	service, err := h.repo.FindByID(cmd.ServiceID)
	if err != nil {
		return nil, err
	}

	if cmd.Name != "" {
		service.Name = cmd.Name
	}
	if cmd.Description != "" {
		service.Description = cmd.Description
	}
	if cmd.Price != nil {
		if *cmd.Price < 0 {
			return nil, fmt.Errorf("price cannot be negative")
		}
		service.Price = *cmd.Price
	}

	if err := h.repo.Update(service); err != nil {
		return nil, err
	}

	return service, nil
}
