package command

import (
	"errors"
	"testing"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"

	partsdomain "github.com/taller-sys/taller-backend/internal/parts/domain"
	partsrepo "github.com/taller-sys/taller-backend/internal/parts/repository"
	servicesdomain "github.com/taller-sys/taller-backend/internal/services/domain"
	servicesrepo "github.com/taller-sys/taller-backend/internal/services/repository"
	"github.com/taller-sys/taller-backend/internal/workorders/domain"
	workordersrepo "github.com/taller-sys/taller-backend/internal/workorders/repository"
)

func testHandler(t *testing.T) (*CreateWorkOrderHandler, *servicesrepo.GormServiceRepository) {
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
	services := servicesrepo.NewGormServiceRepository(db)
	orders := workordersrepo.NewGormWorkOrderRepository(db, parts)
	return NewCreateWorkOrderHandler(orders, services), services
}

func seedService(t *testing.T, repo *servicesrepo.GormServiceRepository, name string, price float64) *servicesdomain.Service {
	t.Helper()
	svc := &servicesdomain.Service{Name: name, Price: price, IsActive: true}
	if err := repo.Create(svc); err != nil {
		t.Fatalf("seed service %q: %v", name, err)
	}
	return svc
}

func TestCreateWorkOrder_PricesServicesFromCatalog(t *testing.T) {
	handler, services := testHandler(t)
	oil := seedService(t, services, "Cambio de aceite", 350)
	align := seedService(t, services, "Alineacion y balanceo", 150)

	order, err := handler.Handle(CreateWorkOrderCommand{
		CustomerID:  1,
		VehicleID:   1,
		Description: "Servicio de mantenimiento",
		LaborCost:   100,
		Services: []OrderServiceLine{
			{ServiceID: oil.ID, Quantity: 1},
			{ServiceID: align.ID, Quantity: 2},
		},
	})
	if err != nil {
		t.Fatalf("Handle: %v", err)
	}

	if len(order.Services) != 2 {
		t.Fatalf("got %d service lines, want 2", len(order.Services))
	}
	for _, line := range order.Services {
		switch line.ServiceID {
		case oil.ID:
			if line.UnitPrice != 350 || line.Subtotal != 350 {
				t.Errorf("oil line priced %v/%v, want 350/350", line.UnitPrice, line.Subtotal)
			}
		case align.ID:
			if line.UnitPrice != 150 || line.Subtotal != 300 {
				t.Errorf("align line priced %v/%v, want 150/300", line.UnitPrice, line.Subtotal)
			}
		default:
			t.Errorf("unexpected service line %d", line.ServiceID)
		}
	}

	// labor 100 + oil 350 + align 2x150
	if order.Total != 750 {
		t.Errorf("Total = %v, want 750", order.Total)
	}
}

func TestCreateWorkOrder_UnknownService(t *testing.T) {
	handler, _ := testHandler(t)

	_, err := handler.Handle(CreateWorkOrderCommand{
		CustomerID:  1,
		VehicleID:   1,
		Description: "Revision",
		Services:    []OrderServiceLine{{ServiceID: 42, Quantity: 1}},
	})
	if !errors.Is(err, servicesdomain.ErrServiceNotFound) {
		t.Fatalf("got %v, want ErrServiceNotFound", err)
	}
}

func TestCreateWorkOrder_InactiveService(t *testing.T) {
	handler, services := testHandler(t)
	svc := seedService(t, services, "Lavado de motor", 120)
	if err := services.Deactivate(svc.ID); err != nil {
		t.Fatalf("Deactivate: %v", err)
	}

	_, err := handler.Handle(CreateWorkOrderCommand{
		CustomerID:  1,
		VehicleID:   1,
		Description: "Lavado",
		Services:    []OrderServiceLine{{ServiceID: svc.ID, Quantity: 1}},
	})
	if !errors.Is(err, servicesdomain.ErrServiceInactive) {
		t.Fatalf("got %v, want ErrServiceInactive", err)
	}
}

func TestCreateWorkOrder_RejectsBadServiceLines(t *testing.T) {
	handler, services := testHandler(t)
	svc := seedService(t, services, "Diagnostico", 200)

	cases := []struct {
		name string
		line OrderServiceLine
	}{
		{"missing service id", OrderServiceLine{Quantity: 1}},
		{"zero quantity", OrderServiceLine{ServiceID: svc.ID, Quantity: 0}},
		{"negative quantity", OrderServiceLine{ServiceID: svc.ID, Quantity: -2}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := handler.Handle(CreateWorkOrderCommand{
				CustomerID:  1,
				VehicleID:   1,
				Description: "Revision",
				Services:    []OrderServiceLine{tc.line},
			})
			if err == nil {
				t.Fatal("expected validation error")
			}
		})
	}
}
