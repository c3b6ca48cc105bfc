package customers

import (
	"errors"
	"fmt"

	"gorm.io/gorm"
)

// ErrCustomerNotFound is returned when a customer does not exist
var ErrCustomerNotFound = errors.New("customer not found")

// ErrCustomerHasOrders is returned when deleting a customer with work orders
var ErrCustomerHasOrders = errors.New("customer has work orders")

// Repository handles customer data persistence
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a new customer repository
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Create inserts a new customer
func (r *Repository) Create(req CreateCustomerRequest) (*Customer, error) {
	customer := &Customer{
		FullName: req.FullName,
		Email:    req.Email,
		Phone:    req.Phone,
		Address:  req.Address,
	}

	if err := r.db.Create(customer).Error; err != nil {
		return nil, fmt.Errorf("failed to create customer: %w", err)
	}

	return customer, nil
}

// GetByID retrieves a customer by ID
func (r *Repository) GetByID(id uint) (*Customer, error) {
	var customer Customer
	err := r.db.First(&customer, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrCustomerNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get customer: %w", err)
	}
	return &customer, nil
}

// GetAll retrieves customers, newest first
func (r *Repository) GetAll(limit, offset int) ([]Customer, error) {
	var customers []Customer
	err := r.db.
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&customers).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get customers: %w", err)
	}
	return customers, nil
}

// Search finds customers whose name, email or phone matches the term
func (r *Repository) Search(term string, limit int) ([]Customer, error) {
	var customers []Customer
	pattern := "%" + term + "%"
	err := r.db.
		Where("full_name LIKE ? OR email LIKE ? OR phone LIKE ?", pattern, pattern, pattern).
		Order("full_name").
		Limit(limit).
		Find(&customers).Error
	if err != nil {
		return nil, fmt.Errorf("failed to search customers: %w", err)
	}
	return customers, nil
}

// Update modifies a customer's information
func (r *Repository) Update(id uint, req UpdateCustomerRequest) (*Customer, error) {
	customer, err := r.GetByID(id)
	if err != nil {
		return nil, err
	}

	if req.FullName != "" {
		customer.FullName = req.FullName
	}
	if req.Email != "" {
		customer.Email = req.Email
	}
	if req.Phone != "" {
		customer.Phone = req.Phone
	}
	if req.Address != "" {
		customer.Address = req.Address
	}

	if err := r.db.Save(customer).Error; err != nil {
		return nil, fmt.Errorf("failed to update customer: %w", err)
	}

	return customer, nil
}

// Delete removes a customer. Customers with work orders are kept so the
// order history stays consistent.
func (r *Repository) Delete(id uint) error {
	if _, err := r.GetByID(id); err != nil {
		return err
	}

	var orders int64
	if err := r.db.Table("work_orders").
		Where("customer_id = ?", id).
		Count(&orders).Error; err != nil {
		return fmt.Errorf("failed to check work orders: %w", err)
	}
	if orders > 0 {
		return ErrCustomerHasOrders
	}

	return r.db.Delete(&Customer{}, id).Error
}

// Count returns the number of customers
func (r *Repository) Count() (int64, error) {
	var count int64
	err := r.db.Model(&Customer{}).Count(&count).Error
	return count, err
}
