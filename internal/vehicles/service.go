package vehicles

import (
	"fmt"
	"time"
)

// Service handles business logic for vehicles
type Service struct {
	repo *Repository
}

// NewService creates a new vehicle service
func NewService(repo *Repository) *Service {
	return &Service{repo: repo}
}

// CreateVehicle registers a new vehicle
func (s *Service) CreateVehicle(req CreateVehicleRequest) (*Vehicle, error) {
	if req.CustomerID == 0 {
		return nil, fmt.Errorf("customer_id is required")
	}
	if req.Brand == "" {
		return nil, fmt.Errorf("brand is required")
	}
	if req.Model == "" {
		return nil, fmt.Errorf("model is required")
	}
	if req.Plate == "" {
		return nil, fmt.Errorf("plate is required")
	}
	if req.Year != 0 && (req.Year < 1900 || req.Year > time.Now().Year()+1) {
		return nil, fmt.Errorf("invalid year")
	}

	return s.repo.Create(req)
}

// GetVehicle retrieves a vehicle by ID
func (s *Service) GetVehicle(id uint) (*Vehicle, error) {
	if id == 0 {
		return nil, fmt.Errorf("invalid vehicle id")
	}
	return s.repo.GetByID(id)
}

// GetVehicleByPlate retrieves a vehicle by its plate
func (s *Service) GetVehicleByPlate(plate string) (*Vehicle, error) {
	if plate == "" {
		return nil, fmt.Errorf("plate is required")
	}
	return s.repo.GetByPlate(plate)
}

// GetCustomerVehicles retrieves all vehicles of a customer
func (s *Service) GetCustomerVehicles(customerID uint) ([]Vehicle, error) {
	if customerID == 0 {
		return nil, fmt.Errorf("invalid customer id")
	}
	return s.repo.GetByCustomer(customerID)
}

// GetAllVehicles retrieves vehicles with pagination
func (s *Service) GetAllVehicles(limit, offset int) ([]Vehicle, error) {
	if limit <= 0 {
		limit = 50
	}
	if limit > 200 {
		limit = 200
	}
	if offset < 0 {
		offset = 0
	}
	return s.repo.GetAll(limit, offset)
}

// UpdateVehicle updates a vehicle's information
func (s *Service) UpdateVehicle(id uint, req UpdateVehicleRequest) (*Vehicle, error) {
	if id == 0 {
		return nil, fmt.Errorf("invalid vehicle id")
	}
	if req.Year != 0 && (req.Year < 1900 || req.Year > time.Now().Year()+1) {
		return nil, fmt.Errorf("invalid year")
	}
	return s.repo.Update(id, req)
}

// DeleteVehicle deletes a vehicle
func (s *Service) DeleteVehicle(id uint) error {
	if id == 0 {
		return fmt.Errorf("invalid vehicle id")
	}
	return s.repo.Delete(id)
}
