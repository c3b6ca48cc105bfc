package domain

import (
	"errors"
	"time"

	"gorm.io/gorm"
)

// Service is a labor item from the shop's price list, such as an oil change
// or a brake job. Work orders reference it through priced line items.
type Service struct {
	ID          uint           `json:"id" gorm:"primaryKey"`
	Name        string         `json:"name" gorm:"not null;uniqueIndex"`
	Description string         `json:"description"`
	Price       float64        `json:"price" gorm:"not null;default:0"`
	IsActive    bool           `json:"is_active" gorm:"default:true"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `json:"-" gorm:"index"`
}

// TableName specifies the table name
func (Service) TableName() string {
	return "services"
}

// Domain errors
var (
	ErrServiceNotFound = errors.New("service not found")
	ErrServiceInactive = errors.New("service is inactive")
	ErrDuplicateName   = errors.New("service name already exists")
	ErrServiceInUse    = errors.New("service is referenced by work orders")
)

// ServiceRepository defines the contract for catalog data access
type ServiceRepository interface {
	Create(service *Service) error
	FindByID(id uint) (*Service, error)
	FindAll(activeOnly bool) ([]Service, error)
	Update(service *Service) error
	Deactivate(id uint) error
	Delete(id uint) error
	ToggleActive(id uint) (*Service, error)
}
