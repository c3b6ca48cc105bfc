package stats

import (
	"fmt"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"

	"github.com/taller-sys/taller-backend/internal/customers"
	invoicesdomain "github.com/taller-sys/taller-backend/internal/invoices/domain"
	workordersdomain "github.com/taller-sys/taller-backend/internal/workorders/domain"
)

func testDB(t *testing.T) (*Repository, *gorm.DB) {
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
		&customers.Customer{},
		&workordersdomain.WorkOrder{},
		&invoicesdomain.Invoice{},
	); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return NewRepository(db), db
}

func seedInvoice(t *testing.T, db *gorm.DB, orderID uint, amount float64, status string, issuedAt time.Time) {
	t.Helper()
	inv := &invoicesdomain.Invoice{
		Folio:         fmt.Sprintf("folio-%d", orderID),
		WorkOrderID:   orderID,
		Amount:        amount,
		PaymentStatus: status,
		IssuedAt:      issuedAt,
	}
	if err := db.Create(inv).Error; err != nil {
		t.Fatalf("seed invoice: %v", err)
	}
}

func TestGetKpis(t *testing.T) {
	repo, db := testDB(t)
	now := time.Now()

	for _, c := range []string{"Ana", "Luis", "Marta"} {
		if err := db.Create(&customers.Customer{FullName: c, Email: c + "@example.com"}).Error; err != nil {
			t.Fatalf("seed customer: %v", err)
		}
	}

	for i, status := range []string{
		workordersdomain.StatusEnProceso,
		workordersdomain.StatusEnProceso,
		workordersdomain.StatusCompletado,
		workordersdomain.StatusEntregado,
	} {
		order := &workordersdomain.WorkOrder{
			CustomerID:  uint(i + 1),
			VehicleID:   1,
			Description: "Servicio",
			Status:      status,
		}
		if err := db.Create(order).Error; err != nil {
			t.Fatalf("seed order: %v", err)
		}
	}

	// Two paid today, one paid last week, one still pending
	seedInvoice(t, db, 1, 300, invoicesdomain.PaymentPagada, now)
	seedInvoice(t, db, 2, 200, invoicesdomain.PaymentPagada, now)
	seedInvoice(t, db, 3, 500, invoicesdomain.PaymentPagada, now.AddDate(0, 0, -8))
	seedInvoice(t, db, 4, 150, invoicesdomain.PaymentPendiente, now)

	kpis, err := repo.GetKpis()
	if err != nil {
		t.Fatalf("GetKpis: %v", err)
	}

	if kpis.SalesToday != 500 {
		t.Errorf("SalesToday = %v, want 500", kpis.SalesToday)
	}
	if kpis.PendingInvoices != 1 {
		t.Errorf("PendingInvoices = %d, want 1", kpis.PendingInvoices)
	}
	if kpis.OrdersInProcess != 2 {
		t.Errorf("OrdersInProcess = %d, want 2", kpis.OrdersInProcess)
	}
	if kpis.TotalCustomers != 3 {
		t.Errorf("TotalCustomers = %d, want 3", kpis.TotalCustomers)
	}
	if kpis.TotalOrders != 4 {
		t.Errorf("TotalOrders = %d, want 4", kpis.TotalOrders)
	}
	if kpis.TotalRevenue != 1000 {
		t.Errorf("TotalRevenue = %v, want 1000", kpis.TotalRevenue)
	}
}

func TestGetWeeklySales(t *testing.T) {
	repo, db := testDB(t)
	now := time.Now()

	seedInvoice(t, db, 1, 120, invoicesdomain.PaymentPagada, now)
	seedInvoice(t, db, 2, 80, invoicesdomain.PaymentPagada, now)
	seedInvoice(t, db, 3, 200, invoicesdomain.PaymentPagada, now.AddDate(0, 0, -3))
	// Outside the window and unpaid invoices stay out of the chart
	seedInvoice(t, db, 4, 999, invoicesdomain.PaymentPagada, now.AddDate(0, 0, -10))
	seedInvoice(t, db, 5, 50, invoicesdomain.PaymentPendiente, now)

	sales, err := repo.GetWeeklySales()
	if err != nil {
		t.Fatalf("GetWeeklySales: %v", err)
	}

	if len(sales.Labels) != 7 || len(sales.Data) != 7 {
		t.Fatalf("got %d labels / %d points, want 7/7", len(sales.Labels), len(sales.Data))
	}
	if sales.Labels[6] != now.Format("2006-01-02") {
		t.Errorf("last label = %q, want today", sales.Labels[6])
	}
	if sales.Data[6] != 200 {
		t.Errorf("today's sales = %v, want 200", sales.Data[6])
	}
	if sales.Data[3] != 200 {
		t.Errorf("sales three days ago = %v, want 200", sales.Data[3])
	}

	var total float64
	for _, v := range sales.Data {
		total += v
	}
	if total != 400 {
		t.Errorf("week total = %v, want 400", total)
	}
}
