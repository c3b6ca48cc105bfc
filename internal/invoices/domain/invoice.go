package domain

import (
	"errors"
	"time"
)

// Invoice bills a completed work order. One invoice per order, enforced
// by the unique index on work_order_id.
type Invoice struct {
	ID            uint      `json:"id" gorm:"primaryKey"`
	Folio         string    `json:"folio" gorm:"uniqueIndex;size:36;not null"`
	WorkOrderID   uint      `json:"work_order_id" gorm:"uniqueIndex;not null"`
	Amount        float64   `json:"amount" gorm:"not null"`
	PaymentStatus string    `json:"payment_status" gorm:"not null;default:'pendiente'"`
	PaymentMethod string    `json:"payment_method"`
	IssuedAt      time.Time `json:"issued_at" gorm:"not null"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// TableName specifies the table name
func (Invoice) TableName() string {
	return "invoices"
}

// Payment statuses
const (
	PaymentPendiente = "pendiente"
	PaymentPagada    = "pagada"
)

// Domain errors
var (
	ErrInvoiceNotFound  = errors.New("invoice not found")
	ErrOrderNotBillable = errors.New("work order must be completed before billing")
	ErrAlreadyInvoiced  = errors.New("work order already has an invoice")
	ErrAlreadyPaid      = errors.New("invoice is already paid")
)

// InvoiceRepository defines invoice persistence
type InvoiceRepository interface {
	// BillWorkOrder creates the invoice for a completed work order. When
	// paymentMethod is non-empty the invoice is created already paid and
	// the order moves to entregado in the same transaction.
	BillWorkOrder(workOrderID uint, paymentMethod string) (*Invoice, error)
	FindByID(id uint) (*Invoice, error)
	FindByWorkOrder(workOrderID uint) (*Invoice, error)
	FindAll(limit, offset int) ([]Invoice, error)
	MarkPaid(id uint, paymentMethod string) (*Invoice, error)
	Delete(id uint) error
}
