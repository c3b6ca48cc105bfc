package command

import (
	"errors"

	"github.com/taller-sys/taller-backend/internal/services/domain"
)

// DeleteServiceCommand represents the command to remove a price list entry
type DeleteServiceCommand struct {
	ServiceID uint
}

// DeleteServiceHandler handles delete service command
type DeleteServiceHandler struct {
	repo domain.ServiceRepository
}

// NewDeleteServiceHandler creates a new delete service handler
func NewDeleteServiceHandler(repo domain.ServiceRepository) *DeleteServiceHandler {
	return &DeleteServiceHandler{repo: repo}
}

// Handle executes the delete service command. Services referenced by work
// orders cannot be removed; they are deactivated instead so order history
// keeps pointing at a real row.
func (h *DeleteServiceHandler) Handle(cmd DeleteServiceCommand) (deactivated bool, err error) {
	err = h.repo.Delete(cmd.ServiceID)
	if errors.Is(err, domain.ErrServiceInUse) {
		if err := h.repo.Deactivate(cmd.ServiceID); err != nil {
			return false, err
		}
		return true, nil
	}
	return false, err
}
