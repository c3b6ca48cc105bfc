//go:build wireinject
// +build wireinject

package invoices

import (
	"github.com/google/wire"
	"gorm.io/gorm"

	"github.com/taller-sys/taller-backend/internal/invoices/delivery/http"
	"github.com/taller-sys/taller-backend/internal/invoices/domain"
	"github.com/taller-sys/taller-backend/internal/invoices/repository"
)

// ProvideInvoiceRepository provides the invoice repository
func ProvideInvoiceRepository(db *gorm.DB) domain.InvoiceRepository {
	return repository.NewGormInvoiceRepository(db)
}

// Wire sets
var RepositorySet = wire.NewSet(
	ProvideInvoiceRepository,
)

// InitializeHTTPHandler initializes HTTP handler with all dependencies
func InitializeHTTPHandler(db *gorm.DB) (*http.InvoiceHandler, error) {
	wire.Build(
		RepositorySet,
		http.NewInvoiceHandler,
	)
	return nil, nil
}
