package repository

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	partsdomain "github.com/taller-sys/taller-backend/internal/parts/domain"
	"github.com/taller-sys/taller-backend/internal/workorders/domain"
)

// GormWorkOrderRepository persists work orders. Part consumption and
// restoration share the stock adjustment choke-point with purchases.
type GormWorkOrderRepository struct {
	db    *gorm.DB
	parts partsdomain.PartRepository
}

func NewGormWorkOrderRepository(db *gorm.DB, parts partsdomain.PartRepository) *GormWorkOrderRepository {
	return &GormWorkOrderRepository{db: db, parts: parts}
}

func (r *GormWorkOrderRepository) AutoMigrate() error {
	return r.db.AutoMigrate(&domain.WorkOrder{}, &domain.WorkOrderPart{}, &domain.WorkOrderService{})
}

// Create persists the order with its part lines and consumes stock for each
// line in order. Insufficient stock on any line rolls back the whole order.
func (r *GormWorkOrderRepository) Create(order *domain.WorkOrder) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(order).Error; err != nil {
			return err
		}

		reason := fmt.Sprintf("workorder:%d", order.ID)
		for i := range order.Parts {
			item := &order.Parts[i]
			if _, err := r.parts.AdjustStockInTx(tx, item.PartID, -item.Quantity, reason); err != nil {
				return err
			}
		}

		return nil
	})
}

func (r *GormWorkOrderRepository) FindByID(id uint) (*domain.WorkOrder, error) {
	var order domain.WorkOrder
	err := r.db.
		Preload("Parts").
		Preload("Parts.Part").
		Preload("Services").
		Preload("Services.Service").
		First(&order, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrWorkOrderNotFound
		}
		return nil, err
	}
	return &order, nil
}

func (r *GormWorkOrderRepository) FindAll(limit, offset int) ([]domain.WorkOrder, error) {
	var orders []domain.WorkOrder
	err := r.db.
		Preload("Parts").
		Preload("Services").
		Order("created_at DESC").
		Limit(limit).Offset(offset).
		Find(&orders).Error
	return orders, err
}

func (r *GormWorkOrderRepository) FindByCustomer(customerID uint) ([]domain.WorkOrder, error) {
	var orders []domain.WorkOrder
	err := r.db.
		Preload("Parts").
		Preload("Services").
		Where("customer_id = ?", customerID).
		Order("created_at DESC").
		Find(&orders).Error
	return orders, err
}

// UpdateStatus transitions the order's workflow state. Cancelling an order
// restores the stock its parts consumed, in the same transaction.
func (r *GormWorkOrderRepository) UpdateStatus(id uint, status string) (*domain.WorkOrder, error) {
	err := r.db.Transaction(func(tx *gorm.DB) error {
		var order domain.WorkOrder
		if err := tx.Preload("Parts").First(&order, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return domain.ErrWorkOrderNotFound
			}
			return err
		}

		if !domain.CanTransition(order.Status, status) {
			return domain.ErrInvalidTransition
		}

		if status == domain.StatusCancelado {
			reason := fmt.Sprintf("workorder-cancel:%d", id)
			for _, item := range order.Parts {
				if _, err := r.parts.AdjustStockInTx(tx, item.PartID, item.Quantity, reason); err != nil {
					return err
				}
			}
		}

		return tx.Model(&domain.WorkOrder{}).Where("id = ?", id).Update("status", status).Error
	})
	if err != nil {
		return nil, err
	}

	return r.FindByID(id)
}
