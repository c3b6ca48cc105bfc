package domain

import (
	"errors"
	"time"

	"gorm.io/gorm"
)

// Part represents a stocked spare part
type Part struct {
	ID            uint           `json:"id" gorm:"primaryKey"`
	Name          string         `json:"name" gorm:"not null;uniqueIndex"`
	Description   string         `json:"description"`
	Unit          string         `json:"unit" gorm:"not null;default:'unidad'"`
	UnitPrice     float64        `json:"unit_price" gorm:"not null;default:0"`
	StockQuantity int            `json:"stock_quantity" gorm:"not null;default:0"`
	MinStock      int            `json:"min_stock" gorm:"not null;default:0"`
	IsActive      bool           `json:"is_active" gorm:"default:true"`
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
	DeletedAt     gorm.DeletedAt `json:"-" gorm:"index"`
}

// TableName specifies the table name
func (Part) TableName() string {
	return "parts"
}

// BelowMinimum reports whether the part is at or below its alert threshold
func (p *Part) BelowMinimum() bool {
	return p.StockQuantity <= p.MinStock
}

// StockMovement records one stock adjustment applied to a part.
// Quantity on hand only ever changes through the adjustment path, so the
// movement log is a complete audit trail of the stock column.
type StockMovement struct {
	ID            uint      `json:"id" gorm:"primaryKey"`
	PartID        uint      `json:"part_id" gorm:"not null;index"`
	Delta         int       `json:"delta" gorm:"not null"`
	PriorQuantity int       `json:"prior_quantity" gorm:"not null"`
	NewQuantity   int       `json:"new_quantity" gorm:"not null"`
	Reason        string    `json:"reason" gorm:"not null"`
	Reference     string    `json:"reference"`
	CreatedAt     time.Time `json:"created_at"`
}

// TableName specifies the table name
func (StockMovement) TableName() string {
	return "stock_movements"
}

// StockStats summarizes the inventory for the dashboard
type StockStats struct {
	TotalParts  int64   `json:"total_parts"`
	ActiveParts int64   `json:"active_parts"`
	LowStock    int64   `json:"low_stock"`
	TotalValue  float64 `json:"total_value"`
	TotalOnHand int64   `json:"total_on_hand"`
}

// Domain errors
var (
	ErrPartNotFound      = errors.New("part not found")
	ErrInsufficientStock = errors.New("insufficient stock")
	ErrDuplicateName     = errors.New("part name already exists")
	ErrPartInUse         = errors.New("part is referenced by purchases or work orders")
)

// PartRepository defines the contract for part data access.
// AdjustStockInTx is the single choke-point through which quantity on hand
// changes; other services run it inside their own transactions.
type PartRepository interface {
	Create(part *Part) error
	FindByID(id uint) (*Part, error)
	FindAll(limit, offset int, activeOnly bool) ([]Part, error)
	Update(part *Part) error
	Deactivate(id uint) error
	Delete(id uint) error
	FindLowStock() ([]Part, error)
	AdjustStock(partID uint, delta int, reason string) (int, error)
	AdjustStockInTx(tx *gorm.DB, partID uint, delta int, reason string) (int, error)
	FindMovements(partID uint, limit, offset int) ([]StockMovement, error)
	Stats() (*StockStats, error)
}
