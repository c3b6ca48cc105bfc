package repository

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/taller-sys/taller-backend/internal/invoices/domain"
	workordersdomain "github.com/taller-sys/taller-backend/internal/workorders/domain"
)

// GormInvoiceRepository persists invoices. Billing reads the work order
// and writes the invoice in one transaction so the completed-order check
// and the one-invoice-per-order guard cannot race.
type GormInvoiceRepository struct {
	db *gorm.DB
}

func NewGormInvoiceRepository(db *gorm.DB) *GormInvoiceRepository {
	return &GormInvoiceRepository{db: db}
}

func (r *GormInvoiceRepository) AutoMigrate() error {
	return r.db.AutoMigrate(&domain.Invoice{})
}

func (r *GormInvoiceRepository) BillWorkOrder(workOrderID uint, paymentMethod string) (*domain.Invoice, error) {
	var invoice *domain.Invoice

	err := r.db.Transaction(func(tx *gorm.DB) error {
		var order workordersdomain.WorkOrder
		if err := tx.First(&order, workOrderID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return workordersdomain.ErrWorkOrderNotFound
			}
			return err
		}

		if order.Status != workordersdomain.StatusCompletado {
			return domain.ErrOrderNotBillable
		}

		var existing int64
		if err := tx.Model(&domain.Invoice{}).
			Where("work_order_id = ?", workOrderID).
			Count(&existing).Error; err != nil {
			return err
		}
		if existing > 0 {
			return domain.ErrAlreadyInvoiced
		}

		invoice = &domain.Invoice{
			Folio:         uuid.New().String(),
			WorkOrderID:   workOrderID,
			Amount:        order.Total,
			PaymentStatus: domain.PaymentPendiente,
			IssuedAt:      time.Now(),
		}

		// Paying at the counter closes the visit: the invoice is born
		// paid and the order is handed over.
		if paymentMethod != "" {
			invoice.PaymentStatus = domain.PaymentPagada
			invoice.PaymentMethod = paymentMethod

			if err := tx.Model(&workordersdomain.WorkOrder{}).
				Where("id = ?", workOrderID).
				Update("status", workordersdomain.StatusEntregado).Error; err != nil {
				return err
			}
		}

		return tx.Create(invoice).Error
	})
	if err != nil {
		return nil, err
	}

	return invoice, nil
}

func (r *GormInvoiceRepository) FindByID(id uint) (*domain.Invoice, error) {
	var invoice domain.Invoice
	if err := r.db.First(&invoice, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrInvoiceNotFound
		}
		return nil, err
	}
	return &invoice, nil
}

func (r *GormInvoiceRepository) FindByWorkOrder(workOrderID uint) (*domain.Invoice, error) {
	var invoice domain.Invoice
	err := r.db.Where("work_order_id = ?", workOrderID).First(&invoice).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrInvoiceNotFound
		}
		return nil, err
	}
	return &invoice, nil
}

func (r *GormInvoiceRepository) FindAll(limit, offset int) ([]domain.Invoice, error) {
	var invoices []domain.Invoice
	err := r.db.
		Order("issued_at DESC").
		Limit(limit).Offset(offset).
		Find(&invoices).Error
	return invoices, err
}

// MarkPaid settles a pending invoice and hands the underlying order over.
func (r *GormInvoiceRepository) MarkPaid(id uint, paymentMethod string) (*domain.Invoice, error) {
	var invoice domain.Invoice

	err := r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&invoice, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return domain.ErrInvoiceNotFound
			}
			return err
		}

		if invoice.PaymentStatus == domain.PaymentPagada {
			return domain.ErrAlreadyPaid
		}

		invoice.PaymentStatus = domain.PaymentPagada
		invoice.PaymentMethod = paymentMethod
		if err := tx.Save(&invoice).Error; err != nil {
			return err
		}

		return tx.Model(&workordersdomain.WorkOrder{}).
			Where("id = ? AND status = ?", invoice.WorkOrderID, workordersdomain.StatusCompletado).
			Update("status", workordersdomain.StatusEntregado).Error
	})
	if err != nil {
		return nil, err
	}

	return &invoice, nil
}

func (r *GormInvoiceRepository) Delete(id uint) error {
	result := r.db.Delete(&domain.Invoice{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domain.ErrInvoiceNotFound
	}
	return nil
}
