//go:build wireinject
// +build wireinject

package suppliers

import (
	"github.com/google/wire"
	"gorm.io/gorm"

	"github.com/taller-sys/taller-backend/internal/suppliers/delivery/http"
	"github.com/taller-sys/taller-backend/internal/suppliers/domain"
	"github.com/taller-sys/taller-backend/internal/suppliers/repository"
)

// ProvideSupplierRepository provides the supplier repository
func ProvideSupplierRepository(db *gorm.DB) domain.SupplierRepository {
	return repository.NewGormSupplierRepository(db)
}

// Wire sets
var RepositorySet = wire.NewSet(
	ProvideSupplierRepository,
)

// InitializeHTTPHandler initializes HTTP handler with all dependencies
func InitializeHTTPHandler(db *gorm.DB) (*http.SupplierHandler, error) {
	wire.Build(
		RepositorySet,
		http.NewSupplierHandler,
	)
	return nil, nil
}
