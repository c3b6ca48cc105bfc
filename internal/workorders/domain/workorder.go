package domain

import (
	"errors"
	"time"

	"gorm.io/gorm"

	partsdomain "github.com/taller-sys/taller-backend/internal/parts/domain"
	servicesdomain "github.com/taller-sys/taller-backend/internal/services/domain"
)

// WorkOrder represents a repair job on a customer's vehicle. Parts consumed
// by the order go through the same stock adjustment path as purchases, with
// the opposite sign.
type WorkOrder struct {
	ID           uint               `json:"id" gorm:"primaryKey"`
	CustomerID   uint               `json:"customer_id" gorm:"not null;index"`
	VehicleID    uint               `json:"vehicle_id" gorm:"not null;index"`
	TechnicianID uint               `json:"technician_id" gorm:"index"`
	Description  string             `json:"description" gorm:"not null"`
	Status       string             `json:"status" gorm:"not null;default:'pendiente'"`
	LaborCost    float64            `json:"labor_cost" gorm:"not null;default:0"`
	Total        float64            `json:"total" gorm:"not null;default:0"`
	Services     []WorkOrderService `json:"services" gorm:"foreignKey:WorkOrderID"`
	Parts        []WorkOrderPart    `json:"parts" gorm:"foreignKey:WorkOrderID"`
	CreatedAt    time.Time          `json:"created_at"`
	UpdatedAt    time.Time          `json:"updated_at"`
	DeletedAt    gorm.DeletedAt     `json:"-" gorm:"index"`
}

// TableName specifies the table name
func (WorkOrder) TableName() string {
	return "work_orders"
}

// WorkOrderPart is one part consumed by a work order
type WorkOrderPart struct {
	ID          uint              `json:"id" gorm:"primaryKey"`
	WorkOrderID uint              `json:"work_order_id" gorm:"not null;index"`
	PartID      uint              `json:"part_id" gorm:"not null;index"`
	Quantity    int               `json:"quantity" gorm:"not null"`
	UnitPrice   float64           `json:"unit_price" gorm:"not null"`
	Subtotal    float64           `json:"subtotal" gorm:"not null"`
	Part        *partsdomain.Part `json:"part,omitempty" gorm:"foreignKey:PartID"`
	CreatedAt   time.Time         `json:"created_at"`
}

// TableName specifies the table name
func (WorkOrderPart) TableName() string {
	return "work_order_parts"
}

// WorkOrderService is one labor line applied to a work order, priced from
// the service catalog at creation time
type WorkOrderService struct {
	ID          uint                    `json:"id" gorm:"primaryKey"`
	WorkOrderID uint                    `json:"work_order_id" gorm:"not null;index"`
	ServiceID   uint                    `json:"service_id" gorm:"not null;index"`
	Quantity    int                     `json:"quantity" gorm:"not null"`
	UnitPrice   float64                 `json:"unit_price" gorm:"not null"`
	Subtotal    float64                 `json:"subtotal" gorm:"not null"`
	Service     *servicesdomain.Service `json:"service,omitempty" gorm:"foreignKey:ServiceID"`
	CreatedAt   time.Time               `json:"created_at"`
}

// TableName specifies the table name
func (WorkOrderService) TableName() string {
	return "work_order_services"
}

// Work order statuses mirror the shop's workflow
const (
	StatusPendiente  = "pendiente"
	StatusEnProceso  = "en_proceso"
	StatusCompletado = "completado"
	StatusEntregado  = "entregado"
	StatusCancelado  = "cancelado"
)

// ValidStatus reports whether s is a known work order status
func ValidStatus(s string) bool {
	switch s {
	case StatusPendiente, StatusEnProceso, StatusCompletado, StatusEntregado, StatusCancelado:
		return true
	}
	return false
}

// CanTransition enforces the repair workflow: delivery requires completion,
// cancellation is allowed from any non-terminal state, and terminal states
// never move again.
func CanTransition(from, to string) bool {
	if from == StatusEntregado || from == StatusCancelado {
		return false
	}
	switch to {
	case StatusEntregado:
		return from == StatusCompletado
	case StatusCancelado:
		return true
	case StatusEnProceso:
		return from == StatusPendiente
	case StatusCompletado:
		return from == StatusPendiente || from == StatusEnProceso
	}
	return false
}

// Domain errors
var (
	ErrWorkOrderNotFound = errors.New("work order not found")
	ErrInvalidTransition = errors.New("invalid work order status transition")
)

// WorkOrderRepository defines the contract for work order data access
type WorkOrderRepository interface {
	Create(order *WorkOrder) error
	FindByID(id uint) (*WorkOrder, error)
	FindAll(limit, offset int) ([]WorkOrder, error)
	FindByCustomer(customerID uint) ([]WorkOrder, error)
	UpdateStatus(id uint, status string) (*WorkOrder, error)
}
