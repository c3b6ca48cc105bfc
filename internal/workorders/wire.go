//go:build wireinject
// +build wireinject

package workorders

import (
	"github.com/google/wire"
	"gorm.io/gorm"

	partsdomain "github.com/taller-sys/taller-backend/internal/parts/domain"
	servicesdomain "github.com/taller-sys/taller-backend/internal/services/domain"
	"github.com/taller-sys/taller-backend/internal/workorders/delivery/http"
	"github.com/taller-sys/taller-backend/internal/workorders/domain"
	"github.com/taller-sys/taller-backend/internal/workorders/repository"
)

// ProvideWorkOrderRepository provides the work order repository
func ProvideWorkOrderRepository(db *gorm.DB, parts partsdomain.PartRepository) domain.WorkOrderRepository {
	return repository.NewGormWorkOrderRepository(db, parts)
}

// Wire sets
var RepositorySet = wire.NewSet(
	ProvideWorkOrderRepository,
)

// InitializeHTTPHandler initializes HTTP handler with all dependencies
func InitializeHTTPHandler(db *gorm.DB, parts partsdomain.PartRepository, services servicesdomain.ServiceRepository) (*http.WorkOrderHandler, error) {
	wire.Build(
		RepositorySet,
		http.NewWorkOrderHandler,
	)
	return nil, nil
}
