package command

import (
	"fmt"

	"github.com/taller-sys/taller-backend/internal/invoices/domain"
)

// BillWorkOrderCommand represents the command to invoice a work order
type BillWorkOrderCommand struct {
	WorkOrderID   uint
	PaymentMethod string
}

// BillWorkOrderHandler handles bill work order command
type BillWorkOrderHandler struct {
	repo domain.InvoiceRepository
}

// NewBillWorkOrderHandler creates a new bill work order handler
func NewBillWorkOrderHandler(repo domain.InvoiceRepository) *BillWorkOrderHandler {
	return &BillWorkOrderHandler{repo: repo}
}

// Handle executes the bill work order command
func (h *BillWorkOrderHandler) Handle(cmd BillWorkOrderCommand) (*domain.Invoice, error) {
	if cmd.WorkOrderID == 0 {
		return nil, fmt.Errorf("work_order_id is required")
	}

	return h.repo.BillWorkOrder(cmd.WorkOrderID, cmd.PaymentMethod)
}
