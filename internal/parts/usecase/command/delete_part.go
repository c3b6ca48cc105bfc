package command

import (
	"errors"
	"fmt"

	"github.com/taller-sys/taller-backend/internal/parts/domain"
)

// DeletePartCommand represents the command to delete a part
type DeletePartCommand struct {
	ID uint
}

// DeletePartHandler handles delete part command
type DeletePartHandler struct {
	repo domain.PartRepository
}

// NewDeletePartHandler creates a new delete part handler
func NewDeletePartHandler(repo domain.PartRepository) *DeletePartHandler {
	return &DeletePartHandler{repo: repo}
}

// Handle executes the delete part command. Parts still referenced by purchases
// or work orders are deactivated instead of removed; the returned flag reports
// which of the two happened.
func (h *DeletePartHandler) Handle(cmd DeletePartCommand) (deactivated bool, err error) {
	if cmd.ID == 0 {
		return false, fmt.Errorf("id is required")
	}

	err = h.repo.Delete(cmd.ID)
	if errors.Is(err, domain.ErrPartInUse) {
		if err := h.repo.Deactivate(cmd.ID); err != nil {
			return false, fmt.Errorf("failed to deactivate part: %w", err)
		}
		return true, nil
	}
	if err != nil {
		return false, err
	}

	return false, nil
}
