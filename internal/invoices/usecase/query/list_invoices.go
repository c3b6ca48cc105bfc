package query

import (
	"fmt"

	"github.com/taller-sys/taller-backend/internal/invoices/domain"
)

// ListInvoicesQuery represents the query to list invoices
type ListInvoicesQuery struct {
	Limit  int
	Offset int
}

// ListInvoicesHandler handles list invoices query
type ListInvoicesHandler struct {
	repo domain.InvoiceRepository
}

// NewListInvoicesHandler creates a new list invoices handler
func NewListInvoicesHandler(repo domain.InvoiceRepository) *ListInvoicesHandler {
	return &ListInvoicesHandler{repo: repo}
}

// Handle executes the list invoices query, newest first
func (h *ListInvoicesHandler) Handle(q ListInvoicesQuery) ([]domain.Invoice, error) {
	if q.Limit == 0 {
		q.Limit = 50
	}

	if q.Limit > 200 {
		q.Limit = 200
	}

	invoices, err := h.repo.FindAll(q.Limit, q.Offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list invoices: %w", err)
	}

	return invoices, nil
}
