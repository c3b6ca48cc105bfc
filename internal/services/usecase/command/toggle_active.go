package command

import (
	"fmt"

	"github.com/taller-sys/taller-backend/internal/services/domain"
)

// ToggleActiveCommand represents the command to flip a service's active flag
type ToggleActiveCommand struct {
	ID uint
}

// ToggleActiveHandler handles toggle active command
type ToggleActiveHandler struct {
	repo domain.ServiceRepository
}

// NewToggleActiveHandler creates a new toggle active handler
func NewToggleActiveHandler(repo domain.ServiceRepository) *ToggleActiveHandler {
	return &ToggleActiveHandler{repo: repo}
}

// Handle executes the toggle active command
func (h *ToggleActiveHandler) Handle(cmd ToggleActiveCommand) (*domain.Service, error) {
	if cmd.ID == 0 {
		return nil, fmt.Errorf("id is required")
	}

	return h.repo.ToggleActive(cmd.ID)
}
