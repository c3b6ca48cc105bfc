package repository

import (
	"errors"
	"testing"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"

	partsdomain "github.com/taller-sys/taller-backend/internal/parts/domain"
	partsrepo "github.com/taller-sys/taller-backend/internal/parts/repository"
	servicesdomain "github.com/taller-sys/taller-backend/internal/services/domain"
	"github.com/taller-sys/taller-backend/internal/workorders/domain"
)

func testRepos(t *testing.T) (*GormWorkOrderRepository, *partsrepo.GormPartRepository) {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("db: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)
	if err := db.AutoMigrate(
		&partsdomain.Part{},
		&partsdomain.StockMovement{},
		&servicesdomain.Service{},
		&domain.WorkOrder{},
		&domain.WorkOrderPart{},
		&domain.WorkOrderService{},
	); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	parts := partsrepo.NewGormPartRepository(db)
	return NewGormWorkOrderRepository(db, parts), parts
}

func seedStockedPart(t *testing.T, parts *partsrepo.GormPartRepository, name string, stock int) *partsdomain.Part {
	t.Helper()
	part := &partsdomain.Part{Name: name, Unit: "unidad", UnitPrice: 20, StockQuantity: stock, IsActive: true}
	if err := parts.Create(part); err != nil {
		t.Fatalf("seed part %q: %v", name, err)
	}
	return part
}

func TestCreate_ConsumesStock(t *testing.T) {
	repo, parts := testRepos(t)
	part := seedStockedPart(t, parts, "Pastilla de freno", 10)

	order := &domain.WorkOrder{
		CustomerID:  1,
		VehicleID:   1,
		Description: "Cambio de frenos",
		Status:      domain.StatusPendiente,
		LaborCost:   50,
		Parts:       []domain.WorkOrderPart{{PartID: part.ID, Quantity: 4, UnitPrice: 20, Subtotal: 80}},
		Total:       130,
	}
	if err := repo.Create(order); err != nil {
		t.Fatalf("Create: %v", err)
	}

	got, err := parts.FindByID(part.ID)
	if err != nil {
		t.Fatalf("FindByID: %v", err)
	}
	if got.StockQuantity != 6 {
		t.Errorf("stock after order = %d, want 6", got.StockQuantity)
	}

	loaded, err := repo.FindByID(order.ID)
	if err != nil {
		t.Fatalf("FindByID order: %v", err)
	}
	if len(loaded.Parts) != 1 || loaded.Parts[0].Part == nil {
		t.Error("order parts not preloaded")
	}
}

func TestCreate_InsufficientStockRollsBack(t *testing.T) {
	repo, parts := testRepos(t)
	part := seedStockedPart(t, parts, "Amortiguador", 2)

	order := &domain.WorkOrder{
		CustomerID:  1,
		VehicleID:   1,
		Description: "Suspension",
		Status:      domain.StatusPendiente,
		Parts:       []domain.WorkOrderPart{{PartID: part.ID, Quantity: 3, UnitPrice: 20, Subtotal: 60}},
	}
	if err := repo.Create(order); !errors.Is(err, partsdomain.ErrInsufficientStock) {
		t.Fatalf("Create: got %v, want ErrInsufficientStock", err)
	}

	orders, err := repo.FindAll(10, 0)
	if err != nil {
		t.Fatalf("FindAll: %v", err)
	}
	if len(orders) != 0 {
		t.Errorf("order persisted despite rollback: got %d orders", len(orders))
	}
	got, _ := parts.FindByID(part.ID)
	if got.StockQuantity != 2 {
		t.Errorf("stock after rollback = %d, want 2", got.StockQuantity)
	}
}

func TestUpdateStatus_CancelRestoresStock(t *testing.T) {
	repo, parts := testRepos(t)
	part := seedStockedPart(t, parts, "Bujia", 8)

	order := &domain.WorkOrder{
		CustomerID:  1,
		VehicleID:   1,
		Description: "Afinacion",
		Status:      domain.StatusPendiente,
		Parts:       []domain.WorkOrderPart{{PartID: part.ID, Quantity: 4, UnitPrice: 5, Subtotal: 20}},
	}
	if err := repo.Create(order); err != nil {
		t.Fatalf("Create: %v", err)
	}

	got, err := repo.UpdateStatus(order.ID, domain.StatusCancelado)
	if err != nil {
		t.Fatalf("UpdateStatus cancelado: %v", err)
	}
	if got.Status != domain.StatusCancelado {
		t.Errorf("status = %q, want cancelado", got.Status)
	}

	p, _ := parts.FindByID(part.ID)
	if p.StockQuantity != 8 {
		t.Errorf("stock after cancel = %d, want 8", p.StockQuantity)
	}
}

func TestUpdateStatus_TransitionRules(t *testing.T) {
	repo, parts := testRepos(t)
	part := seedStockedPart(t, parts, "Filtro", 20)

	newOrder := func() *domain.WorkOrder {
		order := &domain.WorkOrder{
			CustomerID:  1,
			VehicleID:   1,
			Description: "Servicio",
			Status:      domain.StatusPendiente,
			Parts:       []domain.WorkOrderPart{{PartID: part.ID, Quantity: 1, UnitPrice: 5, Subtotal: 5}},
		}
		if err := repo.Create(order); err != nil {
			t.Fatalf("Create: %v", err)
		}
		return order
	}

	// Delivery requires completion first
	order := newOrder()
	if _, err := repo.UpdateStatus(order.ID, domain.StatusEntregado); !errors.Is(err, domain.ErrInvalidTransition) {
		t.Errorf("pendiente->entregado: got %v, want ErrInvalidTransition", err)
	}
	if _, err := repo.UpdateStatus(order.ID, domain.StatusEnProceso); err != nil {
		t.Fatalf("pendiente->en_proceso: %v", err)
	}
	if _, err := repo.UpdateStatus(order.ID, domain.StatusCompletado); err != nil {
		t.Fatalf("en_proceso->completado: %v", err)
	}
	if _, err := repo.UpdateStatus(order.ID, domain.StatusEntregado); err != nil {
		t.Fatalf("completado->entregado: %v", err)
	}

	// Terminal states never move again
	if _, err := repo.UpdateStatus(order.ID, domain.StatusCancelado); !errors.Is(err, domain.ErrInvalidTransition) {
		t.Errorf("entregado->cancelado: got %v, want ErrInvalidTransition", err)
	}

	cancelled := newOrder()
	if _, err := repo.UpdateStatus(cancelled.ID, domain.StatusCancelado); err != nil {
		t.Fatalf("pendiente->cancelado: %v", err)
	}
	if _, err := repo.UpdateStatus(cancelled.ID, domain.StatusEnProceso); !errors.Is(err, domain.ErrInvalidTransition) {
		t.Errorf("cancelado->en_proceso: got %v, want ErrInvalidTransition", err)
	}

	if _, err := repo.UpdateStatus(999, domain.StatusEnProceso); !errors.Is(err, domain.ErrWorkOrderNotFound) {
		t.Errorf("missing order: got %v, want ErrWorkOrderNotFound", err)
	}
}

func TestCreate_PersistsServiceLines(t *testing.T) {
	repo, parts := testRepos(t)
	part := seedStockedPart(t, parts, "Filtro de aceite", 5)

	order := &domain.WorkOrder{
		CustomerID:  1,
		VehicleID:   1,
		Description: "Servicio mayor",
		Status:      domain.StatusPendiente,
		LaborCost:   0,
		Services: []domain.WorkOrderService{
			{ServiceID: 1, Quantity: 1, UnitPrice: 350, Subtotal: 350},
			{ServiceID: 2, Quantity: 2, UnitPrice: 100, Subtotal: 200},
		},
		Parts: []domain.WorkOrderPart{{PartID: part.ID, Quantity: 1, UnitPrice: 80, Subtotal: 80}},
		Total: 630,
	}
	if err := repo.Create(order); err != nil {
		t.Fatalf("Create: %v", err)
	}

	found, err := repo.FindByID(order.ID)
	if err != nil {
		t.Fatalf("FindByID: %v", err)
	}
	if len(found.Services) != 2 {
		t.Fatalf("got %d service lines, want 2", len(found.Services))
	}
	var total float64
	for _, line := range found.Services {
		total += line.Subtotal
	}
	if total != 550 {
		t.Errorf("service lines subtotal = %v, want 550", total)
	}
}
