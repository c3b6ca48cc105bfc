//go:build wireinject
// +build wireinject

package parts

import (
	"github.com/google/wire"
	"gorm.io/gorm"

	"github.com/taller-sys/taller-backend/internal/parts/delivery/http"
	"github.com/taller-sys/taller-backend/internal/parts/domain"
	"github.com/taller-sys/taller-backend/internal/parts/repository"
	"github.com/taller-sys/taller-backend/kafka"
)

// ProvidePartRepository provides the part repository
func ProvidePartRepository(db *gorm.DB) domain.PartRepository {
	return repository.NewGormPartRepository(db)
}

// Wire sets
var RepositorySet = wire.NewSet(
	ProvidePartRepository,
)

// InitializeHTTPHandler initializes HTTP handler with all dependencies
func InitializeHTTPHandler(db *gorm.DB, publisher *kafka.Publisher) (*http.PartHandler, error) {
	wire.Build(
		RepositorySet,
		http.NewPartHandler,
	)
	return nil, nil
}
