//go:build wireinject
// +build wireinject

package services

import (
	"github.com/google/wire"
	"gorm.io/gorm"

	"github.com/taller-sys/taller-backend/internal/services/delivery/http"
	"github.com/taller-sys/taller-backend/internal/services/domain"
	"github.com/taller-sys/taller-backend/internal/services/repository"
)

// ProvideServiceRepository provides the price list repository
func ProvideServiceRepository(db *gorm.DB) domain.ServiceRepository {
	return repository.NewGormServiceRepository(db)
}

// Wire sets
var RepositorySet = wire.NewSet(
	ProvideServiceRepository,
)

// InitializeHTTPHandler initializes HTTP handler with all dependencies
func InitializeHTTPHandler(db *gorm.DB) (*http.ServiceHandler, error) {
	wire.Build(
		RepositorySet,
		http.NewServiceHandler,
	)
	return nil, nil
}
