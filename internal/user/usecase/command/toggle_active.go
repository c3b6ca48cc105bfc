package command

import (
	"fmt"

	"github.com/taller-sys/taller-backend/internal/user/domain"
)

// ToggleActiveCommand represents the command to enable or disable an account
type ToggleActiveCommand struct {
	UserID uint
}

// ToggleActiveHandler handles account activation toggling
type ToggleActiveHandler struct {
	repo domain.UserRepository
}

// NewToggleActiveHandler creates a new toggle active handler
func NewToggleActiveHandler(repo domain.UserRepository) *ToggleActiveHandler {
	return &ToggleActiveHandler{repo: repo}
}

// Handle executes the toggle active command
func (h *ToggleActiveHandler) Handle(cmd ToggleActiveCommand) (*domain.User, error) {
	user, err := h.repo.FindByID(cmd.UserID)
	if err != nil {
		return nil, err
	}

	user.IsActive = !user.IsActive
	if err := h.repo.Update(user); err != nil {
		return nil, fmt.Errorf("failed to toggle user: %w", err)
	}

	return user, nil
}
