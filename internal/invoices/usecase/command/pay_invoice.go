package command

import (
	"fmt"

	"github.com/taller-sys/taller-backend/internal/invoices/domain"
)

// PayInvoiceCommand represents the command to settle a pending invoice
type PayInvoiceCommand struct {
	InvoiceID     uint
	PaymentMethod string
}

// PayInvoiceHandler handles pay invoice command
type PayInvoiceHandler struct {
	repo domain.InvoiceRepository
}

// NewPayInvoiceHandler creates a new pay invoice handler
func NewPayInvoiceHandler(repo domain.InvoiceRepository) *PayInvoiceHandler {
	return &PayInvoiceHandler{repo: repo}
}

// Handle executes the pay invoice command
func (h *PayInvoiceHandler) Handle(cmd PayInvoiceCommand) (*domain.Invoice, error) {
	if cmd.PaymentMethod == "" {
		return nil, fmt.Errorf("payment_method is required")
	}

	return h.repo.MarkPaid(cmd.InvoiceID, cmd.PaymentMethod)
}
