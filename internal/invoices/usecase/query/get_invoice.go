package query

import (
	"github.com/taller-sys/taller-backend/internal/invoices/domain"
)

// GetInvoiceQuery represents the query to get an invoice by ID
type GetInvoiceQuery struct {
	ID uint
}

// GetInvoiceHandler handles get invoice query
type GetInvoiceHandler struct {
	repo domain.InvoiceRepository
}

// NewGetInvoiceHandler creates a new get invoice handler
func NewGetInvoiceHandler(repo domain.InvoiceRepository) *GetInvoiceHandler {
	return &GetInvoiceHandler{repo: repo}
}

// Handle executes the get invoice query
func (h *GetInvoiceHandler) Handle(q GetInvoiceQuery) (*domain.Invoice, error) {
	return h.repo.FindByID(q.ID)
}

// GetOrderInvoiceQuery represents the query to get the invoice of a work order
type GetOrderInvoiceQuery struct {
	WorkOrderID uint
}

// GetOrderInvoiceHandler handles get order invoice query
type GetOrderInvoiceHandler struct {
	repo domain.InvoiceRepository
}

// NewGetOrderInvoiceHandler creates a new get order invoice handler
func NewGetOrderInvoiceHandler(repo domain.InvoiceRepository) *GetOrderInvoiceHandler {
	return &GetOrderInvoiceHandler{repo: repo}
}

// Handle executes the get order invoice query
func (h *GetOrderInvoiceHandler) Handle(q GetOrderInvoiceQuery) (*domain.Invoice, error) {
	return h.repo.FindByWorkOrder(q.WorkOrderID)
}
