package repository

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	partsdomain "github.com/taller-sys/taller-backend/internal/parts/domain"
	"github.com/taller-sys/taller-backend/internal/purchases/domain"
)

// GormPurchaseRepository persists purchases and coordinates stock with the
// parts repository. Every multi-step operation runs in a single transaction
// so a purchase, its items and its stock effects commit or roll back together.
type GormPurchaseRepository struct {
	db    *gorm.DB
	parts partsdomain.PartRepository
}

func NewGormPurchaseRepository(db *gorm.DB, parts partsdomain.PartRepository) *GormPurchaseRepository {
	return &GormPurchaseRepository{db: db, parts: parts}
}

func (r *GormPurchaseRepository) AutoMigrate() error {
	return r.db.AutoMigrate(&domain.Purchase{}, &domain.PurchaseItem{})
}

// Create persists the purchase with its items and applies one inbound stock
// adjustment per line, in line order. Any failure rolls the whole thing back.
func (r *GormPurchaseRepository) Create(purchase *domain.Purchase) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(purchase).Error; err != nil {
			return err
		}

		reason := fmt.Sprintf("purchase:%d", purchase.ID)
		for i := range purchase.Items {
			item := &purchase.Items[i]
			if _, err := r.parts.AdjustStockInTx(tx, item.PartID, item.Quantity, reason); err != nil {
				return err
			}
		}

		return nil
	})
}

func (r *GormPurchaseRepository) FindByID(id uint) (*domain.Purchase, error) {
	var purchase domain.Purchase
	err := r.db.
		Preload("Supplier").
		Preload("Items", func(db *gorm.DB) *gorm.DB { return db.Order("purchase_items.id ASC") }).
		Preload("Items.Part").
		First(&purchase, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrPurchaseNotFound
		}
		return nil, err
	}
	return &purchase, nil
}

func (r *GormPurchaseRepository) FindAll(limit, offset int) ([]domain.Purchase, error) {
	var purchases []domain.Purchase
	err := r.db.
		Preload("Supplier").
		Preload("Items").
		Order("purchase_date DESC").
		Limit(limit).Offset(offset).
		Find(&purchases).Error
	return purchases, err
}

func (r *GormPurchaseRepository) FindBySupplier(supplierID uint) ([]domain.Purchase, error) {
	var purchases []domain.Purchase
	err := r.db.
		Preload("Items").
		Where("supplier_id = ?", supplierID).
		Order("purchase_date DESC").
		Find(&purchases).Error
	return purchases, err
}

// UpdateStatus moves a purchase out of pending with a guarded update, so two
// concurrent transitions cannot both win.
func (r *GormPurchaseRepository) UpdateStatus(id uint, status string) (*domain.Purchase, error) {
	res := r.db.Model(&domain.Purchase{}).
		Where("id = ? AND status = ?", id, domain.StatusPending).
		Update("status", status)
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		var count int64
		if err := r.db.Model(&domain.Purchase{}).Where("id = ?", id).Count(&count).Error; err != nil {
			return nil, err
		}
		if count == 0 {
			return nil, domain.ErrPurchaseNotFound
		}
		return nil, domain.ErrInvalidTransition
	}

	return r.FindByID(id)
}

// Delete reverses every line's stock adjustment and removes the purchase.
// If any reversal would drive a part negative the transaction aborts and the
// purchase, its items and all stock stay untouched.
func (r *GormPurchaseRepository) Delete(id uint) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		var purchase domain.Purchase
		err := tx.Preload("Items", func(db *gorm.DB) *gorm.DB {
			return db.Order("purchase_items.id ASC")
		}).First(&purchase, id).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return domain.ErrPurchaseNotFound
			}
			return err
		}

		reason := fmt.Sprintf("purchase-reversal:%d", id)
		for _, item := range purchase.Items {
			if _, err := r.parts.AdjustStockInTx(tx, item.PartID, -item.Quantity, reason); err != nil {
				if errors.Is(err, partsdomain.ErrInsufficientStock) {
					return domain.ErrConflictingStockState
				}
				return err
			}
		}

		if err := tx.Where("purchase_id = ?", id).Delete(&domain.PurchaseItem{}).Error; err != nil {
			return err
		}

		return tx.Delete(&domain.Purchase{}, id).Error
	})
}
