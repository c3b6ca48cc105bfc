package command

import (
	"fmt"

	"github.com/taller-sys/taller-backend/internal/parts/domain"
)

// UpdatePartCommand represents the command to update a part.
// Stock quantity is deliberately absent: it only changes through adjustments.
type UpdatePartCommand struct {
	ID          uint
	Name        string
	Description string
	Unit        string
	UnitPrice   float64
	MinStock    int
	IsActive    *bool
}

// UpdatePartHandler handles update part command
type UpdatePartHandler struct {
	repo domain.PartRepository
}

// NewUpdatePartHandler creates a new update part handler
func NewUpdatePartHandler(repo domain.PartRepository) *UpdatePartHandler {
	return &UpdatePartHandler{repo: repo}
}

// Handle executes the update part command
func (h *UpdatePartHandler) Handle(cmd UpdatePartCommand) (*domain.Part, error) {
	if cmd.ID == 0 {
		return nil, fmt.Errorf("id is required")
	}

	if cmd.UnitPrice < 0 {
		return nil, fmt.Errorf("unit_price cannot be negative")
	}

	if cmd.MinStock < 0 {
		return nil, fmt.Errorf("min_stock cannot be negative")
	}

	part, err := h.repo.FindByID(cmd.ID)
	if err != nil {
		return nil, err
	}

	if cmd.Name != "" {
		part.Name = cmd.Name
	}
	if cmd.Description != "" {
		part.Description = cmd.Description
	}
	if cmd.Unit != "" {
		part.Unit = cmd.Unit
	}
	part.UnitPrice = cmd.UnitPrice
	part.MinStock = cmd.MinStock
	if cmd.IsActive != nil {
		part.IsActive = *cmd.IsActive
	}

	if err := h.repo.Update(part); err != nil {
		return nil, fmt.Errorf("failed to update part: %w", err)
	}

	return part, nil
}
