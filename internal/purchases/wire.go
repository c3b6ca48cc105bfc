//go:build wireinject
// +build wireinject

package purchases

import (
	"github.com/google/wire"
	"gorm.io/gorm"

	partsdomain "github.com/taller-sys/taller-backend/internal/parts/domain"
	"github.com/taller-sys/taller-backend/internal/purchases/delivery/http"
	"github.com/taller-sys/taller-backend/internal/purchases/domain"
	"github.com/taller-sys/taller-backend/internal/purchases/repository"
	suppliersdomain "github.com/taller-sys/taller-backend/internal/suppliers/domain"
	"github.com/taller-sys/taller-backend/kafka"
)

// ProvidePurchaseRepository provides the purchase repository
func ProvidePurchaseRepository(db *gorm.DB, parts partsdomain.PartRepository) domain.PurchaseRepository {
	return repository.NewGormPurchaseRepository(db, parts)
}

// Wire sets
var RepositorySet = wire.NewSet(
	ProvidePurchaseRepository,
)

// InitializeHTTPHandler initializes HTTP handler with all dependencies
func InitializeHTTPHandler(db *gorm.DB, parts partsdomain.PartRepository, suppliers suppliersdomain.SupplierRepository, publisher *kafka.Publisher) (*http.PurchaseHandler, error) {
	wire.Build(
		RepositorySet,
		http.NewPurchaseHandler,
	)
	return nil, nil
}
