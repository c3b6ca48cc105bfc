package customers

import (
	"errors"
	"testing"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"

	workordersdomain "github.com/taller-sys/taller-backend/internal/workorders/domain"
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
	if err := db.AutoMigrate(&Customer{}, &workordersdomain.WorkOrder{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

func TestCreateAndGet(t *testing.T) {
	repo := NewRepository(testDB(t))

	created, err := repo.Create(CreateCustomerRequest{
		FullName: "Ana Torres",
		Email:    "ana@example.com",
		Phone:    "555-0199",
		Address:  "Av. Siempre Viva 742",
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	got, err := repo.GetByID(created.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if got.FullName != "Ana Torres" || got.Email != "ana@example.com" {
		t.Errorf("GetByID = %+v", got)
	}

	if _, err := repo.GetByID(999); !errors.Is(err, ErrCustomerNotFound) {
		t.Errorf("GetByID missing: got %v, want ErrCustomerNotFound", err)
	}
}

func TestSearch(t *testing.T) {
	repo := NewRepository(testDB(t))
	seed := []CreateCustomerRequest{
		{FullName: "Ana Torres", Email: "ana@example.com", Phone: "555-0101"},
		{FullName: "Pedro Gomez", Email: "pgomez@example.com", Phone: "555-0102"},
		{FullName: "Maria Gomez", Email: "mgomez@example.com", Phone: "777-0103"},
	}
	for _, req := range seed {
		if _, err := repo.Create(req); err != nil {
			t.Fatalf("Create: %v", err)
		}
	}

	byName, err := repo.Search("Gomez", 10)
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(byName) != 2 {
		t.Errorf("Search(Gomez): got %d, want 2", len(byName))
	}

	byPhone, err := repo.Search("777", 10)
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(byPhone) != 1 || byPhone[0].FullName != "Maria Gomez" {
		t.Errorf("Search(777): got %d results", len(byPhone))
	}
}

func TestUpdate_EmptyFieldsKept(t *testing.T) {
	repo := NewRepository(testDB(t))
	created, err := repo.Create(CreateCustomerRequest{FullName: "Luis Soto", Email: "luis@example.com", Phone: "555-0100"})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	got, err := repo.Update(created.ID, UpdateCustomerRequest{Phone: "555-0200"})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if got.Phone != "555-0200" {
		t.Errorf("Phone = %q, want 555-0200", got.Phone)
	}
	if got.FullName != "Luis Soto" || got.Email != "luis@example.com" {
		t.Errorf("untouched fields changed: %+v", got)
	}
}

func TestDelete_GuardedByWorkOrders(t *testing.T) {
	db := testDB(t)
	repo := NewRepository(db)
	customer, err := repo.Create(CreateCustomerRequest{FullName: "Con Historial", Email: "hist@example.com"})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	order := workordersdomain.WorkOrder{CustomerID: customer.ID, VehicleID: 1, Description: "Servicio", Status: "pendiente"}
	if err := db.Create(&order).Error; err != nil {
		t.Fatalf("seed work order: %v", err)
	}

	if err := repo.Delete(customer.ID); !errors.Is(err, ErrCustomerHasOrders) {
		t.Errorf("Delete with orders: got %v, want ErrCustomerHasOrders", err)
	}

	libre, err := repo.Create(CreateCustomerRequest{FullName: "Sin Historial", Email: "libre@example.com"})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if err := repo.Delete(libre.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, err := repo.GetByID(libre.ID); !errors.Is(err, ErrCustomerNotFound) {
		t.Errorf("GetByID after delete: got %v, want ErrCustomerNotFound", err)
	}
}
