package vehicles

import (
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"
)

// ErrVehicleNotFound is returned when a vehicle does not exist
var ErrVehicleNotFound = errors.New("vehicle not found")

// ErrDuplicatePlate is returned when a plate is already registered
var ErrDuplicatePlate = errors.New("plate already registered")

// ErrVehicleHasOrders is returned when deleting a vehicle with work orders
var ErrVehicleHasOrders = errors.New("vehicle has work orders")

// Repository handles vehicle data persistence
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a new vehicle repository
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Create registers a new vehicle
func (r *Repository) Create(req CreateVehicleRequest) (*Vehicle, error) {
	vehicle := &Vehicle{
		CustomerID: req.CustomerID,
		Brand:      req.Brand,
		Model:      req.Model,
		Year:       req.Year,
		Plate:      strings.ToUpper(req.Plate),
		Color:      req.Color,
		Mileage:    req.Mileage,
	}

	if err := r.db.Create(vehicle).Error; err != nil {
		if isUniqueViolation(err) {
			return nil, ErrDuplicatePlate
		}
		return nil, fmt.Errorf("failed to create vehicle: %w", err)
	}

	return vehicle, nil
}

// GetByID retrieves a vehicle by ID
func (r *Repository) GetByID(id uint) (*Vehicle, error) {
	var vehicle Vehicle
	err := r.db.First(&vehicle, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrVehicleNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get vehicle: %w", err)
	}
	return &vehicle, nil
}

// GetByPlate retrieves a vehicle by its plate
func (r *Repository) GetByPlate(plate string) (*Vehicle, error) {
	var vehicle Vehicle
	err := r.db.Where("plate = ?", strings.ToUpper(plate)).First(&vehicle).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrVehicleNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get vehicle: %w", err)
	}
	return &vehicle, nil
}

// GetByCustomer retrieves all vehicles of a customer
func (r *Repository) GetByCustomer(customerID uint) ([]Vehicle, error) {
	var vehicles []Vehicle
	err := r.db.
		Where("customer_id = ?", customerID).
		Order("created_at DESC").
		Find(&vehicles).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get vehicles: %w", err)
	}
	return vehicles, nil
}

// GetAll retrieves vehicles, newest first
func (r *Repository) GetAll(limit, offset int) ([]Vehicle, error) {
	var vehicles []Vehicle
	err := r.db.
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&vehicles).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get vehicles: %w", err)
	}
	return vehicles, nil
}

// Update modifies a vehicle's information
func (r *Repository) Update(id uint, req UpdateVehicleRequest) (*Vehicle, error) {
	vehicle, err := r.GetByID(id)
	if err != nil {
		return nil, err
	}

	if req.Brand != "" {
		vehicle.Brand = req.Brand
	}
	if req.Model != "" {
		vehicle.Model = req.Model
	}
	if req.Year != 0 {
		vehicle.Year = req.Year
	}
	if req.Plate != "" {
		vehicle.Plate = strings.ToUpper(req.Plate)
	}
	if req.Color != "" {
		vehicle.Color = req.Color
	}
	if req.Mileage != 0 {
		vehicle.Mileage = req.Mileage
	}

	if err := r.db.Save(vehicle).Error; err != nil {
		if isUniqueViolation(err) {
			return nil, ErrDuplicatePlate
		}
		return nil, fmt.Errorf("failed to update vehicle: %w", err)
	}

	return vehicle, nil
}

// Delete removes a vehicle. Vehicles referenced by work orders are kept.
func (r *Repository) Delete(id uint) error {
	if _, err := r.GetByID(id); err != nil {
		return err
	}

	var orders int64
	if err := r.db.Table("work_orders").
		Where("vehicle_id = ?", id).
		Count(&orders).Error; err != nil {
		return fmt.Errorf("failed to check work orders: %w", err)
	}
	if orders > 0 {
		return ErrVehicleHasOrders
	}

	return r.db.Delete(&Vehicle{}, id).Error
}

func isUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "unique") || strings.Contains(msg, "duplicate")
}
