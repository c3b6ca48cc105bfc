package customers

import (
	"fmt"
	"strings"
)

// Service handles business logic for customers
type Service struct {
	repo *Repository
}

// NewService creates a new customer service
func NewService(repo *Repository) *Service {
	return &Service{repo: repo}
}

// CreateCustomer creates a new customer
func (s *Service) CreateCustomer(req CreateCustomerRequest) (*Customer, error) {
	if req.FullName == "" {
		return nil, fmt.Errorf("full name is required")
	}
	if req.Email != "" && !strings.Contains(req.Email, "@") {
		return nil, fmt.Errorf("invalid email")
	}

	return s.repo.Create(req)
}

// GetCustomer retrieves a customer by ID
func (s *Service) GetCustomer(id uint) (*Customer, error) {
	if id == 0 {
		return nil, fmt.Errorf("invalid customer id")
	}
	return s.repo.GetByID(id)
}

// GetAllCustomers retrieves customers with pagination
func (s *Service) GetAllCustomers(limit, offset int) ([]Customer, error) {
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

// SearchCustomers finds customers by name, email or phone
func (s *Service) SearchCustomers(term string) ([]Customer, error) {
	term = strings.TrimSpace(term)
	if term == "" {
		return nil, fmt.Errorf("search term is required")
	}
	return s.repo.Search(term, 50)
}

// UpdateCustomer updates a customer's information
func (s *Service) UpdateCustomer(id uint, req UpdateCustomerRequest) (*Customer, error) {
	if id == 0 {
		return nil, fmt.Errorf("invalid customer id")
	}
	if req.Email != "" && !strings.Contains(req.Email, "@") {
		return nil, fmt.Errorf("invalid email")
	}
	return s.repo.Update(id, req)
}

// DeleteCustomer deletes a customer
func (s *Service) DeleteCustomer(id uint) error {
	if id == 0 {
		return fmt.Errorf("invalid customer id")
	}
	return s.repo.Delete(id)
}
