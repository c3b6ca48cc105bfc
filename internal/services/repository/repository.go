package repository

import (
	"errors"
	"strings"

	"gorm.io/gorm"

	"github.com/taller-sys/taller-backend/internal/services/domain"
)

type GormServiceRepository struct {
	db *gorm.DB
}

func NewGormServiceRepository(db *gorm.DB) *GormServiceRepository {
	return &GormServiceRepository{db: db}
}

func (r *GormServiceRepository) AutoMigrate() error {
	return r.db.AutoMigrate(&domain.Service{})
}

func (r *GormServiceRepository) Create(service *domain.Service) error {
	err := r.db.Create(service).Error
	if err != nil && isUniqueViolation(err) {
		return domain.ErrDuplicateName
	}
	return err
}

func (r *GormServiceRepository) FindByID(id uint) (*domain.Service, error) {
	var service domain.Service
	err := r.db.First(&service, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrServiceNotFound
		}
		return nil, err
	}
	return &service, nil
}

func (r *GormServiceRepository) FindAll(activeOnly bool) ([]domain.Service, error) {
	var services []domain.Service
	q := r.db.Order("name ASC")
	if activeOnly {
		q = q.Where("is_active = ?", true)
	}
	err := q.Find(&services).Error
	return services, err
}

func (r *GormServiceRepository) Update(service *domain.Service) error {
	err := r.db.Save(service).Error
	if err != nil && isUniqueViolation(err) {
		return domain.ErrDuplicateName
	}
	return err
}

func (r *GormServiceRepository) Deactivate(id uint) error {
	res := r.db.Model(&domain.Service{}).Where("id = ?", id).Update("is_active", false)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domain.ErrServiceNotFound
	}
	return nil
}

// Delete removes a catalog entry unless work orders still reference it.
// Referenced services must be deactivated instead.
func (r *GormServiceRepository) Delete(id uint) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		var service domain.Service
		if err := tx.First(&service, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return domain.ErrServiceNotFound
			}
			return err
		}

		var refs int64
		if err := tx.Table("work_order_services").Where("service_id = ?", id).Count(&refs).Error; err != nil {
			return err
		}
		if refs > 0 {
			return domain.ErrServiceInUse
		}

		return tx.Delete(&domain.Service{}, id).Error
	})
}

func (r *GormServiceRepository) ToggleActive(id uint) (*domain.Service, error) {
	service, err := r.FindByID(id)
	if err != nil {
		return nil, err
	}

	service.IsActive = !service.IsActive
	if err := r.db.Save(service).Error; err != nil {
		return nil, err
	}

	return service, nil
}

func isUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "unique") || strings.Contains(msg, "duplicate")
}
