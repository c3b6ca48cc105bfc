package repository

import (
	"errors"
	"testing"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"

	"github.com/taller-sys/taller-backend/internal/services/domain"
	workordersdomain "github.com/taller-sys/taller-backend/internal/workorders/domain"
)

func testDB(t *testing.T) (*GormServiceRepository, *gorm.DB) {
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
		&domain.Service{},
		&workordersdomain.WorkOrder{},
		&workordersdomain.WorkOrderService{},
	); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return NewGormServiceRepository(db), db
}

func seedService(t *testing.T, repo *GormServiceRepository, name string, price float64, active bool) *domain.Service {
	t.Helper()
	svc := &domain.Service{Name: name, Price: price, IsActive: active}
	if err := repo.Create(svc); err != nil {
		t.Fatalf("seed service %q: %v", name, err)
	}
	return svc
}

func TestCreate_DuplicateName(t *testing.T) {
	repo, _ := testDB(t)
	seedService(t, repo, "Cambio de aceite", 350, true)

	err := repo.Create(&domain.Service{Name: "Cambio de aceite", Price: 400, IsActive: true})
	if !errors.Is(err, domain.ErrDuplicateName) {
		t.Fatalf("got %v, want ErrDuplicateName", err)
	}
}

func TestFindAll_ActiveOnly(t *testing.T) {
	repo, _ := testDB(t)
	seedService(t, repo, "Alineacion", 150, true)
	seedService(t, repo, "Lavado de motor", 120, false)

	all, err := repo.FindAll(false)
	if err != nil {
		t.Fatalf("FindAll: %v", err)
	}
	if len(all) != 2 {
		t.Errorf("got %d services, want 2", len(all))
	}

	active, err := repo.FindAll(true)
	if err != nil {
		t.Fatalf("FindAll active: %v", err)
	}
	if len(active) != 1 || active[0].Name != "Alineacion" {
		t.Errorf("active list = %+v, want only Alineacion", active)
	}
}

func TestDelete_GuardedByWorkOrders(t *testing.T) {
	repo, db := testDB(t)
	free := seedService(t, repo, "Diagnostico", 200, true)
	used := seedService(t, repo, "Cambio de frenos", 600, true)

	order := &workordersdomain.WorkOrder{
		CustomerID:  1,
		VehicleID:   1,
		Description: "Frenos",
		Status:      workordersdomain.StatusPendiente,
		Services: []workordersdomain.WorkOrderService{
			{ServiceID: used.ID, Quantity: 1, UnitPrice: 600, Subtotal: 600},
		},
		Total: 600,
	}
	if err := db.Create(order).Error; err != nil {
		t.Fatalf("seed order: %v", err)
	}

	if err := repo.Delete(free.ID); err != nil {
		t.Fatalf("delete unreferenced: %v", err)
	}
	if _, err := repo.FindByID(free.ID); !errors.Is(err, domain.ErrServiceNotFound) {
		t.Errorf("deleted service still found: %v", err)
	}

	if err := repo.Delete(used.ID); !errors.Is(err, domain.ErrServiceInUse) {
		t.Fatalf("delete referenced: got %v, want ErrServiceInUse", err)
	}
}

func TestDeactivate(t *testing.T) {
	repo, _ := testDB(t)
	svc := seedService(t, repo, "Pulido", 250, true)

	if err := repo.Deactivate(svc.ID); err != nil {
		t.Fatalf("Deactivate: %v", err)
	}

	found, err := repo.FindByID(svc.ID)
	if err != nil {
		t.Fatalf("FindByID: %v", err)
	}
	if found.IsActive {
		t.Error("service still active after Deactivate")
	}

	if err := repo.Deactivate(999); !errors.Is(err, domain.ErrServiceNotFound) {
		t.Errorf("missing service: got %v, want ErrServiceNotFound", err)
	}
}

func TestUpdate_DuplicateName(t *testing.T) {
	repo, _ := testDB(t)
	seedService(t, repo, "Alineacion", 150, true)
	svc := seedService(t, repo, "Balanceo", 100, true)

	svc.Name = "Alineacion"
	if err := repo.Update(svc); !errors.Is(err, domain.ErrDuplicateName) {
		t.Fatalf("got %v, want ErrDuplicateName", err)
	}
}
