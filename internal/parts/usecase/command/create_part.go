package command

import (
	"fmt"

	"github.com/taller-sys/taller-backend/internal/parts/domain"
)

// CreatePartCommand represents the command to create a part
type CreatePartCommand struct {
	Name          string
	Description   string
	Unit          string
	UnitPrice     float64
	StockQuantity int
	MinStock      int
}

// CreatePartHandler handles create part command
type CreatePartHandler struct {
	repo domain.PartRepository
}

// NewCreatePartHandler creates a new create part handler
func NewCreatePartHandler(repo domain.PartRepository) *CreatePartHandler {
	return &CreatePartHandler{repo: repo}
}

// Handle executes the create part command
func (h *CreatePartHandler) Handle(cmd CreatePartCommand) (*domain.Part, error) {
	if cmd.Name == "" {
		return nil, fmt.Errorf("name is required")
	}

	if cmd.UnitPrice < 0 {
		return nil, fmt.Errorf("unit_price cannot be negative")
	}

	if cmd.StockQuantity < 0 {
		return nil, fmt.Errorf("stock_quantity cannot be negative")
	}

	if cmd.MinStock < 0 {
		return nil, fmt.Errorf("min_stock cannot be negative")
	}

	if cmd.Unit == "" {
		cmd.Unit = "unidad"
	}

	part := &domain.Part{
		Name:          cmd.Name,
		Description:   cmd.Description,
		Unit:          cmd.Unit,
		UnitPrice:     cmd.UnitPrice,
		StockQuantity: cmd.StockQuantity,
		MinStock:      cmd.MinStock,
		IsActive:      true,
	}

	if err := h.repo.Create(part); err != nil {
		return nil, fmt.Errorf("failed to create part: %w", err)
	}

	return part, nil
}
