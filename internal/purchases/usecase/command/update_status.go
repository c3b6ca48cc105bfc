package command

import (
	"fmt"

	"github.com/taller-sys/taller-backend/internal/purchases/domain"
)

// UpdateStatusCommand represents the command to transition a purchase's status
type UpdateStatusCommand struct {
	PurchaseID uint
	Status     string
}

// UpdateStatusHandler handles update status command
type UpdateStatusHandler struct {
	repo domain.PurchaseRepository
}

// NewUpdateStatusHandler creates a new update status handler
func NewUpdateStatusHandler(repo domain.PurchaseRepository) *UpdateStatusHandler {
	return &UpdateStatusHandler{repo: repo}
}

// Handle executes the update status command. Only pending purchases may
// transition, to completed or cancelled; the change has no stock effect.
func (h *UpdateStatusHandler) Handle(cmd UpdateStatusCommand) (*domain.Purchase, error) {
	if cmd.PurchaseID == 0 {
		return nil, fmt.Errorf("purchase_id is required")
	}

	if !domain.ValidStatus(cmd.Status) {
		return nil, fmt.Errorf("invalid status: %s", cmd.Status)
	}

	if !domain.CanTransition(domain.StatusPending, cmd.Status) {
		return nil, domain.ErrInvalidTransition
	}

	return h.repo.UpdateStatus(cmd.PurchaseID, cmd.Status)
}
