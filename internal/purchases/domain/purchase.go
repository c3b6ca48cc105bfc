package domain

import (
	"errors"
	"time"

	"gorm.io/gorm"

	partsdomain "github.com/taller-sys/taller-backend/internal/parts/domain"
	suppliersdomain "github.com/taller-sys/taller-backend/internal/suppliers/domain"
)

// Purchase represents one supplier transaction. Stock is incremented when the
// purchase is recorded, regardless of status; deleting the purchase is the
// only reversal trigger. Status is a workflow label with no stock effect.
type Purchase struct {
	ID           uint                      `json:"id" gorm:"primaryKey"`
	SupplierID   uint                      `json:"supplier_id" gorm:"not null;index"`
	PurchaseDate time.Time                 `json:"purchase_date" gorm:"not null"`
	Status       string                    `json:"status" gorm:"not null;default:'completed'"`
	Notes        string                    `json:"notes"`
	Total        float64                   `json:"total" gorm:"not null;default:0"`
	Items        []PurchaseItem            `json:"items" gorm:"foreignKey:PurchaseID"`
	Supplier     *suppliersdomain.Supplier `json:"supplier,omitempty" gorm:"foreignKey:SupplierID"`
	CreatedAt    time.Time                 `json:"created_at"`
	UpdatedAt    time.Time                 `json:"updated_at"`
	DeletedAt    gorm.DeletedAt            `json:"-" gorm:"index"`
}

// TableName specifies the table name
func (Purchase) TableName() string {
	return "purchases"
}

// PurchaseItem is one (part, quantity, unit price) line within a purchase.
// The subtotal column is derived and recomputed on every write.
type PurchaseItem struct {
	ID         uint              `json:"id" gorm:"primaryKey"`
	PurchaseID uint              `json:"purchase_id" gorm:"not null;index"`
	PartID     uint              `json:"part_id" gorm:"not null;index"`
	Quantity   int               `json:"quantity" gorm:"not null"`
	UnitPrice  float64           `json:"unit_price" gorm:"not null"`
	Subtotal   float64           `json:"subtotal" gorm:"not null"`
	Part       *partsdomain.Part `json:"part,omitempty" gorm:"foreignKey:PartID"`
	CreatedAt  time.Time         `json:"created_at"`
}

// TableName specifies the table name
func (PurchaseItem) TableName() string {
	return "purchase_items"
}

// Purchase statuses
const (
	StatusPending   = "pending"
	StatusCompleted = "completed"
	StatusCancelled = "cancelled"
)

// ValidStatus reports whether s is a known purchase status
func ValidStatus(s string) bool {
	return s == StatusPending || s == StatusCompleted || s == StatusCancelled
}

// CanTransition reports whether a status change is allowed. Only a pending
// purchase may move, to completed or cancelled.
func CanTransition(from, to string) bool {
	return from == StatusPending && (to == StatusCompleted || to == StatusCancelled)
}

// ComputeTotal sums quantity times unit price over the line items
func ComputeTotal(items []PurchaseItem) float64 {
	var total float64
	for _, item := range items {
		total += float64(item.Quantity) * item.UnitPrice
	}
	return total
}

// Domain errors
var (
	ErrPurchaseNotFound      = errors.New("purchase not found")
	ErrInvalidTransition     = errors.New("invalid status transition")
	ErrConflictingStockState = errors.New("stock reversal would drive a part negative")
)

// PurchaseRepository defines the contract for purchase data access
type PurchaseRepository interface {
	Create(purchase *Purchase) error
	FindByID(id uint) (*Purchase, error)
	FindAll(limit, offset int) ([]Purchase, error)
	FindBySupplier(supplierID uint) ([]Purchase, error)
	UpdateStatus(id uint, status string) (*Purchase, error)
	Delete(id uint) error
}
