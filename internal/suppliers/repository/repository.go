package repository

import (
	"errors"
	"strings"

	"gorm.io/gorm"

	"github.com/taller-sys/taller-backend/internal/suppliers/domain"
)

type GormSupplierRepository struct {
	db *gorm.DB
}

func NewGormSupplierRepository(db *gorm.DB) *GormSupplierRepository {
	return &GormSupplierRepository{db: db}
}

func (r *GormSupplierRepository) AutoMigrate() error {
	return r.db.AutoMigrate(&domain.Supplier{})
}

func (r *GormSupplierRepository) Create(supplier *domain.Supplier) error {
	err := r.db.Create(supplier).Error
	if err != nil && isUniqueViolation(err) {
		return domain.ErrDuplicateEmail
	}
	return err
}

func (r *GormSupplierRepository) FindByID(id uint) (*domain.Supplier, error) {
	var supplier domain.Supplier
	err := r.db.First(&supplier, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrSupplierNotFound
		}
		return nil, err
	}
	return &supplier, nil
}

func (r *GormSupplierRepository) FindAll(activeOnly bool) ([]domain.Supplier, error) {
	var suppliers []domain.Supplier
	q := r.db.Order("name ASC")
	if activeOnly {
		q = q.Where("is_active = ?", true)
	}
	err := q.Find(&suppliers).Error
	return suppliers, err
}

func (r *GormSupplierRepository) Update(supplier *domain.Supplier) error {
	err := r.db.Save(supplier).Error
	if err != nil && isUniqueViolation(err) {
		return domain.ErrDuplicateEmail
	}
	return err
}

// Delete removes a supplier unless purchases reference it. Suppliers with
// purchase history must be deactivated instead.
func (r *GormSupplierRepository) Delete(id uint) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		var supplier domain.Supplier
		if err := tx.First(&supplier, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return domain.ErrSupplierNotFound
			}
			return err
		}

		var purchases int64
		if err := tx.Table("purchases").
			Where("supplier_id = ? AND deleted_at IS NULL", id).
			Count(&purchases).Error; err != nil {
			return err
		}
		if purchases > 0 {
			return domain.ErrSupplierHasPurchases
		}

		return tx.Delete(&domain.Supplier{}, id).Error
	})
}

func (r *GormSupplierRepository) ToggleActive(id uint) (*domain.Supplier, error) {
	supplier, err := r.FindByID(id)
	if err != nil {
		return nil, err
	}

	supplier.IsActive = !supplier.IsActive
	if err := r.db.Save(supplier).Error; err != nil {
		return nil, err
	}

	return supplier, nil
}

func isUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "unique") || strings.Contains(msg, "duplicate")
}
