package command

import (
	"fmt"

	"github.com/taller-sys/taller-backend/internal/workorders/domain"
)

// UpdateStatusCommand represents the command to transition a work order
type UpdateStatusCommand struct {
	WorkOrderID uint
	Status      string
}

// UpdateStatusHandler handles update status command
type UpdateStatusHandler struct {
	repo domain.WorkOrderRepository
}

// NewUpdateStatusHandler creates a new update status handler
func NewUpdateStatusHandler(repo domain.WorkOrderRepository) *UpdateStatusHandler {
	return &UpdateStatusHandler{repo: repo}
}

// Handle executes the update status command
func (h *UpdateStatusHandler) Handle(cmd UpdateStatusCommand) (*domain.WorkOrder, error) {
	if cmd.WorkOrderID == 0 {
		return nil, fmt.Errorf("work_order_id is required")
	}

	if !domain.ValidStatus(cmd.Status) {
		return nil, fmt.Errorf("invalid status: %s", cmd.Status)
	}

	return h.repo.UpdateStatus(cmd.WorkOrderID, cmd.Status)
}
