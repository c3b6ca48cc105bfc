package repository

import (
	"errors"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"

	purchasesdomain "github.com/taller-sys/taller-backend/internal/purchases/domain"
	"github.com/taller-sys/taller-backend/internal/suppliers/domain"
)

func testDB(t *testing.T) *gorm.DB {
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
	if err := db.AutoMigrate(&domain.Supplier{}, &purchasesdomain.Purchase{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

func seedSupplier(t *testing.T, repo *GormSupplierRepository, name, email string) *domain.Supplier {
	t.Helper()
	supplier := &domain.Supplier{Name: name, Email: email, IsActive: true}
	if err := repo.Create(supplier); err != nil {
		t.Fatalf("seed supplier %q: %v", name, err)
	}
	return supplier
}

func TestCreate_DuplicateEmail(t *testing.T) {
	repo := NewGormSupplierRepository(testDB(t))
	seedSupplier(t, repo, "Repuestos Sur", "ventas@sur.example")

	err := repo.Create(&domain.Supplier{Name: "Otro", Email: "ventas@sur.example"})
	if !errors.Is(err, domain.ErrDuplicateEmail) {
		t.Errorf("Create duplicate email: got %v, want ErrDuplicateEmail", err)
	}
}

func TestFindAll_ActiveOnly(t *testing.T) {
	repo := NewGormSupplierRepository(testDB(t))
	seedSupplier(t, repo, "Activo", "a@example.com")
	inactive := seedSupplier(t, repo, "Inactivo", "b@example.com")
	if _, err := repo.ToggleActive(inactive.ID); err != nil {
		t.Fatalf("ToggleActive: %v", err)
	}

	all, err := repo.FindAll(false)
	if err != nil {
		t.Fatalf("FindAll: %v", err)
	}
	if len(all) != 2 {
		t.Errorf("FindAll(all): got %d, want 2", len(all))
	}

	active, err := repo.FindAll(true)
	if err != nil {
		t.Fatalf("FindAll active: %v", err)
	}
	if len(active) != 1 || active[0].Name != "Activo" {
		t.Errorf("FindAll(activeOnly): got %d suppliers, want just Activo", len(active))
	}
}

func TestToggleActive(t *testing.T) {
	repo := NewGormSupplierRepository(testDB(t))
	supplier := seedSupplier(t, repo, "Proveedor", "p@example.com")

	got, err := repo.ToggleActive(supplier.ID)
	if err != nil {
		t.Fatalf("ToggleActive: %v", err)
	}
	if got.IsActive {
		t.Error("first toggle should deactivate")
	}

	got, err = repo.ToggleActive(supplier.ID)
	if err != nil {
		t.Fatalf("ToggleActive: %v", err)
	}
	if !got.IsActive {
		t.Error("second toggle should reactivate")
	}

	if _, err := repo.ToggleActive(999); !errors.Is(err, domain.ErrSupplierNotFound) {
		t.Errorf("ToggleActive missing: got %v, want ErrSupplierNotFound", err)
	}
}

func TestDelete_GuardedByPurchases(t *testing.T) {
	db := testDB(t)
	repo := NewGormSupplierRepository(db)
	supplier := seedSupplier(t, repo, "Con historial", "hist@example.com")

	purchase := purchasesdomain.Purchase{SupplierID: supplier.ID, PurchaseDate: time.Now(), Status: purchasesdomain.StatusCompleted}
	if err := db.Create(&purchase).Error; err != nil {
		t.Fatalf("seed purchase: %v", err)
	}

	if err := repo.Delete(supplier.ID); !errors.Is(err, domain.ErrSupplierHasPurchases) {
		t.Errorf("Delete with purchases: got %v, want ErrSupplierHasPurchases", err)
	}
	if _, err := repo.FindByID(supplier.ID); err != nil {
		t.Errorf("supplier should survive guarded delete: %v", err)
	}

	// Soft-deleted purchases no longer block removal
	if err := db.Delete(&purchase).Error; err != nil {
		t.Fatalf("delete purchase: %v", err)
	}
	if err := repo.Delete(supplier.ID); err != nil {
		t.Fatalf("Delete after purchase removal: %v", err)
	}
	if _, err := repo.FindByID(supplier.ID); !errors.Is(err, domain.ErrSupplierNotFound) {
		t.Errorf("FindByID after delete: got %v, want ErrSupplierNotFound", err)
	}
}

func TestUpdate(t *testing.T) {
	repo := NewGormSupplierRepository(testDB(t))
	supplier := seedSupplier(t, repo, "Original", "orig@example.com")

	supplier.Name = "Renombrado"
	supplier.Phone = "555-0101"
	if err := repo.Update(supplier); err != nil {
		t.Fatalf("Update: %v", err)
	}

	got, err := repo.FindByID(supplier.ID)
	if err != nil {
		t.Fatalf("FindByID: %v", err)
	}
	if got.Name != "Renombrado" || got.Phone != "555-0101" {
		t.Errorf("Update not persisted: got %+v", got)
	}
}
