package domain

import (
	"errors"
	"time"

	"gorm.io/gorm"
)

// Workshop roles. Recepcionista and admin run the counter, tecnicos work the
// floor, clientes only see the customer portal.
const (
	RoleAdmin         = "admin"
	RoleRecepcionista = "recepcionista"
	RoleTecnico       = "tecnico"
	RoleCliente       = "cliente"
)

// ValidRole reports whether r is a known role
func ValidRole(r string) bool {
	switch r {
	case RoleAdmin, RoleRecepcionista, RoleTecnico, RoleCliente:
		return true
	}
	return false
}

// User represents an account in the system: employees and portal customers
type User struct {
	ID        uint           `json:"id" gorm:"primaryKey"`
	Username  string         `json:"username" gorm:"uniqueIndex;not null"`
	Email     string         `json:"email" gorm:"uniqueIndex;not null"`
	Password  string         `json:"-" gorm:"not null"` // Never expose password in JSON
	FullName  string         `json:"full_name" gorm:"not null"`
	Phone     string         `json:"phone"`
	Role      string         `json:"role" gorm:"not null;default:'cliente'"`
	IsActive  bool           `json:"is_active" gorm:"default:true"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `json:"-" gorm:"index"`
}

// TableName specifies the table name
func (User) TableName() string {
	return "users"
}

// IsAdmin checks if user has admin role
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// IsStaff checks if user works at the shop
func (u *User) IsStaff() bool {
	return u.Role == RoleAdmin || u.Role == RoleRecepcionista || u.Role == RoleTecnico
}

// Domain errors
var (
	ErrUserNotFound  = errors.New("user not found")
	ErrDuplicateUser = errors.New("username or email already exists")
)

// UserRepository defines the contract for user data access
type UserRepository interface {
	Create(user *User) error
	FindByID(id uint) (*User, error)
	FindByUsername(username string) (*User, error)
	FindByEmail(email string) (*User, error)
	FindAll(limit, offset int) ([]User, error)
	FindByRole(role string, limit, offset int) ([]User, error)
	Update(user *User) error
	Delete(id uint) error
	Count() (int64, error)
	CountByRole(role string) (int64, error)
	CountActive() (int64, error)
}
