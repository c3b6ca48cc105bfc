package repository

import (
	"errors"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/taller-sys/taller-backend/internal/parts/domain"
)

type GormPartRepository struct {
	db *gorm.DB
}

func NewGormPartRepository(db *gorm.DB) *GormPartRepository {
	return &GormPartRepository{db: db}
}

func (r *GormPartRepository) AutoMigrate() error {
	return r.db.AutoMigrate(&domain.Part{}, &domain.StockMovement{})
}

func (r *GormPartRepository) Create(part *domain.Part) error {
	err := r.db.Create(part).Error
	if err != nil && isUniqueViolation(err) {
		return domain.ErrDuplicateName
	}
	return err
}

func (r *GormPartRepository) FindByID(id uint) (*domain.Part, error) {
	var part domain.Part
	err := r.db.First(&part, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrPartNotFound
		}
		return nil, err
	}
	return &part, nil
}

func (r *GormPartRepository) FindAll(limit, offset int, activeOnly bool) ([]domain.Part, error) {
	var parts []domain.Part
	q := r.db.Order("name ASC").Limit(limit).Offset(offset)
	if activeOnly {
		q = q.Where("is_active = ?", true)
	}
	err := q.Find(&parts).Error
	return parts, err
}

func (r *GormPartRepository) Update(part *domain.Part) error {
	err := r.db.Save(part).Error
	if err != nil && isUniqueViolation(err) {
		return domain.ErrDuplicateName
	}
	return err
}

func (r *GormPartRepository) Deactivate(id uint) error {
	res := r.db.Model(&domain.Part{}).Where("id = ?", id).Update("is_active", false)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domain.ErrPartNotFound
	}
	return nil
}

// Delete removes a part unless purchases or work orders still reference it.
// Referenced parts must be deactivated instead.
func (r *GormPartRepository) Delete(id uint) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		var part domain.Part
		if err := tx.First(&part, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return domain.ErrPartNotFound
			}
			return err
		}

		var refs int64
		if err := tx.Table("purchase_items").Where("part_id = ?", id).Count(&refs).Error; err != nil {
			return err
		}
		if refs == 0 {
			if err := tx.Table("work_order_parts").Where("part_id = ?", id).Count(&refs).Error; err != nil {
				return err
			}
		}
		if refs > 0 {
			return domain.ErrPartInUse
		}

		return tx.Delete(&domain.Part{}, id).Error
	})
}

// FindLowStock returns active parts at or below their alert threshold,
// most depleted first
func (r *GormPartRepository) FindLowStock() ([]domain.Part, error) {
	var parts []domain.Part
	err := r.db.
		Where("is_active = ? AND stock_quantity <= min_stock", true).
		Order("stock_quantity ASC").
		Find(&parts).Error
	return parts, err
}

// AdjustStock applies a signed delta to a part inside its own transaction
func (r *GormPartRepository) AdjustStock(partID uint, delta int, reason string) (int, error) {
	var newQuantity int
	err := r.db.Transaction(func(tx *gorm.DB) error {
		qty, err := r.AdjustStockInTx(tx, partID, delta, reason)
		if err != nil {
			return err
		}
		newQuantity = qty
		return nil
	})
	if err != nil {
		return 0, err
	}
	return newQuantity, nil
}

// AdjustStockInTx applies a signed delta within the caller's transaction.
// The update is a single guarded statement keyed by part id, so concurrent
// adjustments to the same part can never both observe the same prior quantity:
// whichever commits second re-evaluates the guard against the committed value.
func (r *GormPartRepository) AdjustStockInTx(tx *gorm.DB, partID uint, delta int, reason string) (int, error) {
	if delta == 0 {
		// Zero delta still validates existence and reports the current quantity
		var part domain.Part
		if err := tx.First(&part, partID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return 0, domain.ErrPartNotFound
			}
			return 0, err
		}
		return part.StockQuantity, nil
	}

	res := tx.Model(&domain.Part{}).
		Where("id = ? AND stock_quantity + ? >= 0", partID, delta).
		Update("stock_quantity", gorm.Expr("stock_quantity + ?", delta))
	if res.Error != nil {
		return 0, res.Error
	}
	if res.RowsAffected == 0 {
		var count int64
		if err := tx.Model(&domain.Part{}).Where("id = ?", partID).Count(&count).Error; err != nil {
			return 0, err
		}
		if count == 0 {
			return 0, domain.ErrPartNotFound
		}
		return 0, domain.ErrInsufficientStock
	}

	var part domain.Part
	if err := tx.First(&part, partID).Error; err != nil {
		return 0, err
	}

	movement := &domain.StockMovement{
		PartID:        partID,
		Delta:         delta,
		PriorQuantity: part.StockQuantity - delta,
		NewQuantity:   part.StockQuantity,
		Reason:        reason,
		Reference:     uuid.New().String(),
	}
	if err := tx.Create(movement).Error; err != nil {
		return 0, err
	}

	return part.StockQuantity, nil
}

func (r *GormPartRepository) FindMovements(partID uint, limit, offset int) ([]domain.StockMovement, error) {
	var movements []domain.StockMovement
	err := r.db.
		Where("part_id = ?", partID).
		Order("created_at DESC").
		Limit(limit).Offset(offset).
		Find(&movements).Error
	return movements, err
}

func (r *GormPartRepository) Stats() (*domain.StockStats, error) {
	stats := &domain.StockStats{}

	if err := r.db.Model(&domain.Part{}).Count(&stats.TotalParts).Error; err != nil {
		return nil, err
	}
	if err := r.db.Model(&domain.Part{}).Where("is_active = ?", true).Count(&stats.ActiveParts).Error; err != nil {
		return nil, err
	}
	if err := r.db.Model(&domain.Part{}).
		Where("is_active = ? AND stock_quantity <= min_stock", true).
		Count(&stats.LowStock).Error; err != nil {
		return nil, err
	}

	row := r.db.Model(&domain.Part{}).
		Select("COALESCE(SUM(stock_quantity * unit_price), 0), COALESCE(SUM(stock_quantity), 0)").
		Row()
	if err := row.Scan(&stats.TotalValue, &stats.TotalOnHand); err != nil {
		return nil, err
	}

	return stats, nil
}

func isUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "unique") || strings.Contains(msg, "duplicate")
}
