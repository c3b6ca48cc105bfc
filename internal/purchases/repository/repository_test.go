package repository

import (
	"errors"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"

	partsdomain "github.com/taller-sys/taller-backend/internal/parts/domain"
	partsrepo "github.com/taller-sys/taller-backend/internal/parts/repository"
	"github.com/taller-sys/taller-backend/internal/purchases/domain"
	suppliersdomain "github.com/taller-sys/taller-backend/internal/suppliers/domain"
)

func testRepos(t *testing.T) (*GormPurchaseRepository, *partsrepo.GormPartRepository, *gorm.DB) {
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
		&suppliersdomain.Supplier{},
		&partsdomain.Part{},
		&partsdomain.StockMovement{},
		&domain.Purchase{},
		&domain.PurchaseItem{},
	); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	parts := partsrepo.NewGormPartRepository(db)
	return NewGormPurchaseRepository(db, parts), parts, db
}

func seedSupplier(t *testing.T, db *gorm.DB) *suppliersdomain.Supplier {
	t.Helper()
	supplier := &suppliersdomain.Supplier{Name: "Repuestos Sur", Email: "ventas@repuestossur.example", IsActive: true}
	if err := db.Create(supplier).Error; err != nil {
		t.Fatalf("seed supplier: %v", err)
	}
	return supplier
}

func seedStockedPart(t *testing.T, parts *partsrepo.GormPartRepository, name string, stock int) *partsdomain.Part {
	t.Helper()
	part := &partsdomain.Part{Name: name, Unit: "unidad", UnitPrice: 10, StockQuantity: stock, IsActive: true}
	if err := parts.Create(part); err != nil {
		t.Fatalf("seed part %q: %v", name, err)
	}
	return part
}

func TestCreate_IncrementsStock(t *testing.T) {
	repo, parts, db := testRepos(t)
	supplier := seedSupplier(t, db)
	partA := seedStockedPart(t, parts, "Filtro", 0)
	partB := seedStockedPart(t, parts, "Bujia", 3)

	items := []domain.PurchaseItem{
		{PartID: partA.ID, Quantity: 5, UnitPrice: 10, Subtotal: 50},
		{PartID: partB.ID, Quantity: 2, UnitPrice: 3, Subtotal: 6},
	}
	purchase := &domain.Purchase{
		SupplierID:   supplier.ID,
		PurchaseDate: time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC),
		Status:       domain.StatusCompleted,
		Items:        items,
		Total:        domain.ComputeTotal(items),
	}
	if err := repo.Create(purchase); err != nil {
		t.Fatalf("Create: %v", err)
	}

	got, err := repo.FindByID(purchase.ID)
	if err != nil {
		t.Fatalf("FindByID: %v", err)
	}
	if got.Total != 56 {
		t.Errorf("Total = %v, want 56", got.Total)
	}
	if len(got.Items) != 2 {
		t.Fatalf("got %d items, want 2", len(got.Items))
	}
	if got.Supplier == nil || got.Supplier.ID != supplier.ID {
		t.Error("supplier not preloaded")
	}

	a, _ := parts.FindByID(partA.ID)
	if a.StockQuantity != 5 {
		t.Errorf("part A stock = %d, want 5", a.StockQuantity)
	}
	b, _ := parts.FindByID(partB.ID)
	if b.StockQuantity != 5 {
		t.Errorf("part B stock = %d, want 5", b.StockQuantity)
	}
}

func TestDelete_ReversesStock(t *testing.T) {
	repo, parts, db := testRepos(t)
	supplier := seedSupplier(t, db)
	part := seedStockedPart(t, parts, "Correa", 1)

	purchase := &domain.Purchase{
		SupplierID:   supplier.ID,
		PurchaseDate: time.Now(),
		Status:       domain.StatusCompleted,
		Items:        []domain.PurchaseItem{{PartID: part.ID, Quantity: 4, UnitPrice: 7, Subtotal: 28}},
		Total:        28,
	}
	if err := repo.Create(purchase); err != nil {
		t.Fatalf("Create: %v", err)
	}

	if err := repo.Delete(purchase.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, err := repo.FindByID(purchase.ID); !errors.Is(err, domain.ErrPurchaseNotFound) {
		t.Errorf("FindByID after delete: got %v, want ErrPurchaseNotFound", err)
	}
	got, _ := parts.FindByID(part.ID)
	if got.StockQuantity != 1 {
		t.Errorf("stock after reversal = %d, want 1", got.StockQuantity)
	}
}

func TestDelete_ConflictingStockLeavesEverythingUntouched(t *testing.T) {
	repo, parts, db := testRepos(t)
	supplier := seedSupplier(t, db)
	part := seedStockedPart(t, parts, "Aceite", 0)

	purchase := &domain.Purchase{
		SupplierID:   supplier.ID,
		PurchaseDate: time.Now(),
		Status:       domain.StatusCompleted,
		Items:        []domain.PurchaseItem{{PartID: part.ID, Quantity: 5, UnitPrice: 10, Subtotal: 50}},
		Total:        50,
	}
	if err := repo.Create(purchase); err != nil {
		t.Fatalf("Create: %v", err)
	}

	// Three units already left the shelf, so reversing five would go negative
	if _, err := parts.AdjustStock(part.ID, -3, "workorder:1"); err != nil {
		t.Fatalf("AdjustStock(-3): %v", err)
	}

	if err := repo.Delete(purchase.ID); !errors.Is(err, domain.ErrConflictingStockState) {
		t.Fatalf("Delete: got %v, want ErrConflictingStockState", err)
	}

	got, err := repo.FindByID(purchase.ID)
	if err != nil {
		t.Fatalf("purchase should survive failed delete: %v", err)
	}
	if len(got.Items) != 1 {
		t.Errorf("items after failed delete = %d, want 1", len(got.Items))
	}
	p, _ := parts.FindByID(part.ID)
	if p.StockQuantity != 2 {
		t.Errorf("stock after failed delete = %d, want 2", p.StockQuantity)
	}
}

func TestUpdateStatus_OnlyFromPending(t *testing.T) {
	repo, parts, db := testRepos(t)
	supplier := seedSupplier(t, db)
	part := seedStockedPart(t, parts, "Pastilla", 0)

	purchase := &domain.Purchase{
		SupplierID:   supplier.ID,
		PurchaseDate: time.Now(),
		Status:       domain.StatusPending,
		Items:        []domain.PurchaseItem{{PartID: part.ID, Quantity: 1, UnitPrice: 5, Subtotal: 5}},
		Total:        5,
	}
	if err := repo.Create(purchase); err != nil {
		t.Fatalf("Create: %v", err)
	}

	got, err := repo.UpdateStatus(purchase.ID, domain.StatusCompleted)
	if err != nil {
		t.Fatalf("UpdateStatus pending->completed: %v", err)
	}
	if got.Status != domain.StatusCompleted {
		t.Errorf("status = %q, want completed", got.Status)
	}

	if _, err := repo.UpdateStatus(purchase.ID, domain.StatusCancelled); !errors.Is(err, domain.ErrInvalidTransition) {
		t.Errorf("UpdateStatus completed->cancelled: got %v, want ErrInvalidTransition", err)
	}
	if _, err := repo.UpdateStatus(999, domain.StatusCompleted); !errors.Is(err, domain.ErrPurchaseNotFound) {
		t.Errorf("UpdateStatus missing: got %v, want ErrPurchaseNotFound", err)
	}
}

func TestFindBySupplier(t *testing.T) {
	repo, parts, db := testRepos(t)
	s1 := seedSupplier(t, db)
	s2 := &suppliersdomain.Supplier{Name: "Otro", Email: "otro@example.com", IsActive: true}
	if err := db.Create(s2).Error; err != nil {
		t.Fatalf("seed supplier: %v", err)
	}
	part := seedStockedPart(t, parts, "Fusible", 0)

	for _, sid := range []uint{s1.ID, s1.ID, s2.ID} {
		p := &domain.Purchase{
			SupplierID:   sid,
			PurchaseDate: time.Now(),
			Status:       domain.StatusCompleted,
			Items:        []domain.PurchaseItem{{PartID: part.ID, Quantity: 1, UnitPrice: 2, Subtotal: 2}},
			Total:        2,
		}
		if err := repo.Create(p); err != nil {
			t.Fatalf("Create: %v", err)
		}
	}

	got, err := repo.FindBySupplier(s1.ID)
	if err != nil {
		t.Fatalf("FindBySupplier: %v", err)
	}
	if len(got) != 2 {
		t.Errorf("FindBySupplier: got %d, want 2", len(got))
	}
}
