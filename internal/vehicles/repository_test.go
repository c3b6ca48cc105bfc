package vehicles

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
	if err := db.AutoMigrate(&Vehicle{}, &workordersdomain.WorkOrder{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

func TestCreate_PlateNormalizedAndUnique(t *testing.T) {
	repo := NewRepository(testDB(t))

	created, err := repo.Create(CreateVehicleRequest{
		CustomerID: 1, Brand: "Toyota", Model: "Corolla", Year: 2019, Plate: "abc-123",
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if created.Plate != "ABC-123" {
		t.Errorf("Plate = %q, want ABC-123", created.Plate)
	}

	// Same plate in any case collides
	_, err = repo.Create(CreateVehicleRequest{CustomerID: 2, Brand: "Honda", Model: "Civic", Year: 2020, Plate: "ABC-123"})
	if !errors.Is(err, ErrDuplicatePlate) {
		t.Errorf("duplicate plate: got %v, want ErrDuplicatePlate", err)
	}
}

func TestGetByPlate(t *testing.T) {
	repo := NewRepository(testDB(t))
	created, err := repo.Create(CreateVehicleRequest{CustomerID: 1, Brand: "Ford", Model: "Ranger", Year: 2021, Plate: "XYZ-789"})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	got, err := repo.GetByPlate("xyz-789")
	if err != nil {
		t.Fatalf("GetByPlate: %v", err)
	}
	if got.ID != created.ID {
		t.Errorf("GetByPlate returned vehicle %d, want %d", got.ID, created.ID)
	}

	if _, err := repo.GetByPlate("NO-EXISTE"); !errors.Is(err, ErrVehicleNotFound) {
		t.Errorf("GetByPlate missing: got %v, want ErrVehicleNotFound", err)
	}
}

func TestGetByCustomer(t *testing.T) {
	repo := NewRepository(testDB(t))
	plates := map[uint][]string{1: {"AAA-111", "BBB-222"}, 2: {"CCC-333"}}
	for customerID, ps := range plates {
		for _, plate := range ps {
			if _, err := repo.Create(CreateVehicleRequest{CustomerID: customerID, Brand: "Nissan", Model: "Versa", Year: 2018, Plate: plate}); err != nil {
				t.Fatalf("Create %s: %v", plate, err)
			}
		}
	}

	got, err := repo.GetByCustomer(1)
	if err != nil {
		t.Fatalf("GetByCustomer: %v", err)
	}
	if len(got) != 2 {
		t.Errorf("GetByCustomer(1): got %d, want 2", len(got))
	}
}

func TestDelete_GuardedByWorkOrders(t *testing.T) {
	db := testDB(t)
	repo := NewRepository(db)
	vehicle, err := repo.Create(CreateVehicleRequest{CustomerID: 1, Brand: "Kia", Model: "Rio", Year: 2017, Plate: "KIA-001"})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	order := workordersdomain.WorkOrder{CustomerID: 1, VehicleID: vehicle.ID, Description: "Servicio", Status: "pendiente"}
	if err := db.Create(&order).Error; err != nil {
		t.Fatalf("seed work order: %v", err)
	}

	if err := repo.Delete(vehicle.ID); !errors.Is(err, ErrVehicleHasOrders) {
		t.Errorf("Delete with orders: got %v, want ErrVehicleHasOrders", err)
	}

	libre, err := repo.Create(CreateVehicleRequest{CustomerID: 1, Brand: "Kia", Model: "Rio", Year: 2017, Plate: "KIA-002"})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if err := repo.Delete(libre.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, err := repo.GetByID(libre.ID); !errors.Is(err, ErrVehicleNotFound) {
		t.Errorf("GetByID after delete: got %v, want ErrVehicleNotFound", err)
	}
}
