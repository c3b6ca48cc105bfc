package command

import (
	"github.com/taller-sys/taller-backend/internal/invoices/domain"
)

// DeleteInvoiceCommand represents the command to void an invoice
type DeleteInvoiceCommand struct {
	InvoiceID uint
}

// DeleteInvoiceHandler handles delete invoice command
type DeleteInvoiceHandler struct {
	repo domain.InvoiceRepository
}

// NewDeleteInvoiceHandler creates a new delete invoice handler
func NewDeleteInvoiceHandler(repo domain.InvoiceRepository) *DeleteInvoiceHandler {
	return &DeleteInvoiceHandler{repo: repo}
}

// Handle executes the delete invoice command. Voiding the invoice frees
// the work order to be billed again.
func (h *DeleteInvoiceHandler) Handle(cmd DeleteInvoiceCommand) error {
	return h.repo.Delete(cmd.InvoiceID)
}
