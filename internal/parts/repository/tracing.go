package repository

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"gorm.io/gorm"

	"github.com/taller-sys/taller-backend/internal/parts/domain"
)

var tracer = otel.Tracer("parts-repository")

// GormPartRepositoryWithTracing wraps GormPartRepository with tracing
type GormPartRepositoryWithTracing struct {
	*GormPartRepository
}

// NewGormPartRepositoryWithTracing creates a new repository with tracing
func NewGormPartRepositoryWithTracing(db *gorm.DB) *GormPartRepositoryWithTracing {
	return &GormPartRepositoryWithTracing{
		GormPartRepository: NewGormPartRepository(db),
	}
}

// AdjustStockWithContext traces a stock adjustment
func (r *GormPartRepositoryWithTracing) AdjustStockWithContext(ctx context.Context, partID uint, delta int, reason string) (int, error) {
	_, span := tracer.Start(ctx, "repository.AdjustStock",
		trace.WithAttributes(
			attribute.Int("part.id", int(partID)),
			attribute.Int("stock.delta", delta),
			attribute.String("stock.reason", reason),
		),
	)
	defer span.End()

	newQuantity, err := r.GormPartRepository.AdjustStock(partID, delta, reason)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return 0, err
	}

	span.SetAttributes(attribute.Int("stock.new_quantity", newQuantity))
	return newQuantity, nil
}

// FindByIDWithContext traces a part lookup
func (r *GormPartRepositoryWithTracing) FindByIDWithContext(ctx context.Context, id uint) (*domain.Part, error) {
	_, span := tracer.Start(ctx, "repository.FindByID",
		trace.WithAttributes(
			attribute.Int("part.id", int(id)),
		),
	)
	defer span.End()

	part, err := r.GormPartRepository.FindByID(id)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	span.SetAttributes(
		attribute.String("part.name", part.Name),
		attribute.Int("part.stock_quantity", part.StockQuantity),
	)
	return part, nil
}

// FindLowStockWithContext traces the low-stock projection
func (r *GormPartRepositoryWithTracing) FindLowStockWithContext(ctx context.Context) ([]domain.Part, error) {
	_, span := tracer.Start(ctx, "repository.FindLowStock")
	defer span.End()

	parts, err := r.GormPartRepository.FindLowStock()
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	span.SetAttributes(attribute.Int("lowstock.count", len(parts)))
	return parts, nil
}
