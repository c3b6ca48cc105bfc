package vehicles

import (
	"time"

	"gorm.io/gorm"
)

// Vehicle represents a customer's vehicle
type Vehicle struct {
	ID         uint           `json:"id" gorm:"primaryKey"`
	CustomerID uint           `json:"customer_id" gorm:"not null;index"`
	Brand      string         `json:"brand" gorm:"not null"`
	Model      string         `json:"model" gorm:"not null"`
	Year       int            `json:"year"`
	Plate      string         `json:"plate" gorm:"uniqueIndex;not null"`
	Color      string         `json:"color"`
	Mileage    int            `json:"mileage"`
	CreatedAt  time.Time      `json:"created_at"`
	UpdatedAt  time.Time      `json:"updated_at"`
	DeletedAt  gorm.DeletedAt `json:"-" gorm:"index"`
}

// TableName specifies the table name
func (Vehicle) TableName() string {
	return "vehicles"
}

// CreateVehicleRequest represents the request body for registering a vehicle
type CreateVehicleRequest struct {
	CustomerID uint   `json:"customer_id"`
	Brand      string `json:"brand"`
	Model      string `json:"model"`
	Year       int    `json:"year"`
	Plate      string `json:"plate"`
	Color      string `json:"color"`
	Mileage    int    `json:"mileage"`
}

// UpdateVehicleRequest represents the request body for updating a vehicle
type UpdateVehicleRequest struct {
	Brand string `json:"brand"`
	Model string `json:"model"`
	Year    int    `json:"year"`
	Plate   string `json:"plate"`
	Color   string `json:"color"`
	Mileage int    `json:"mileage"`
}
