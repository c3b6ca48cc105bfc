package domain

import (
	"errors"
	"time"

	"gorm.io/gorm"
)

// Supplier represents a parts vendor
type Supplier struct {
	ID        uint           `json:"id" gorm:"primaryKey"`
	Name      string         `json:"name" gorm:"not null"`
	Company   string         `json:"company"`
	Phone     string         `json:"phone"`
	Email     string         `json:"email" gorm:"uniqueIndex"`
	Address   string         `json:"address"`
	IsActive  bool           `json:"is_active" gorm:"default:true"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `json:"-" gorm:"index"`
}

// TableName specifies the table name
func (Supplier) TableName() string {
	return "suppliers"
}

// Domain errors
var (
	ErrSupplierNotFound     = errors.New("supplier not found")
	ErrSupplierInactive     = errors.New("supplier is inactive")
	ErrDuplicateEmail       = errors.New("supplier email already exists")
	ErrSupplierHasPurchases = errors.New("supplier has associated purchases")
)

// SupplierRepository defines the contract for supplier data access
type SupplierRepository interface {
	Create(supplier *Supplier) error
	FindByID(id uint) (*Supplier, error)
	FindAll(activeOnly bool) ([]Supplier, error)
	Update(supplier *Supplier) error
	Delete(id uint) error
	ToggleActive(id uint) (*Supplier, error)
}
