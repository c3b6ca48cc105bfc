package repository

import (
	"errors"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"

	"github.com/taller-sys/taller-backend/internal/invoices/domain"
	workordersdomain "github.com/taller-sys/taller-backend/internal/workorders/domain"
)

func testDB(t *testing.T) (*GormInvoiceRepository, *gorm.DB) {
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
		&workordersdomain.WorkOrder{},
		&domain.Invoice{},
	); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return NewGormInvoiceRepository(db), db
}

func seedOrder(t *testing.T, db *gorm.DB, status string, total float64) *workordersdomain.WorkOrder {
	t.Helper()
	order := &workordersdomain.WorkOrder{
		CustomerID:  1,
		VehicleID:   1,
		Description: "Servicio de mantenimiento",
		Status:      status,
		Total:       total,
	}
	if err := db.Create(order).Error; err != nil {
		t.Fatalf("seed order: %v", err)
	}
	return order
}

func TestBillWorkOrder_CompletedOrder(t *testing.T) {
	repo, db := testDB(t)
	order := seedOrder(t, db, workordersdomain.StatusCompletado, 850)

	invoice, err := repo.BillWorkOrder(order.ID, "")
	if err != nil {
		t.Fatalf("BillWorkOrder: %v", err)
	}

	if invoice.Amount != 850 {
		t.Errorf("Amount = %v, want order total 850", invoice.Amount)
	}
	if invoice.PaymentStatus != domain.PaymentPendiente {
		t.Errorf("PaymentStatus = %q, want pendiente", invoice.PaymentStatus)
	}
	if invoice.Folio == "" {
		t.Error("invoice has no folio")
	}
	if invoice.IssuedAt.IsZero() {
		t.Error("invoice has no issue date")
	}
}

func TestBillWorkOrder_OnlyCompletedOrders(t *testing.T) {
	repo, db := testDB(t)

	for _, status := range []string{
		workordersdomain.StatusPendiente,
		workordersdomain.StatusEnProceso,
		workordersdomain.StatusEntregado,
		workordersdomain.StatusCancelado,
	} {
		order := seedOrder(t, db, status, 100)
		if _, err := repo.BillWorkOrder(order.ID, ""); !errors.Is(err, domain.ErrOrderNotBillable) {
			t.Errorf("billing %s order: got %v, want ErrOrderNotBillable", status, err)
		}
	}

	if _, err := repo.BillWorkOrder(999, ""); !errors.Is(err, workordersdomain.ErrWorkOrderNotFound) {
		t.Errorf("billing missing order: got %v, want ErrWorkOrderNotFound", err)
	}
}

func TestBillWorkOrder_OneInvoicePerOrder(t *testing.T) {
	repo, db := testDB(t)
	order := seedOrder(t, db, workordersdomain.StatusCompletado, 300)

	if _, err := repo.BillWorkOrder(order.ID, ""); err != nil {
		t.Fatalf("first invoice: %v", err)
	}
	if _, err := repo.BillWorkOrder(order.ID, ""); !errors.Is(err, domain.ErrAlreadyInvoiced) {
		t.Fatalf("second invoice: got %v, want ErrAlreadyInvoiced", err)
	}
}

func TestBillWorkOrder_PaidOnTheSpot(t *testing.T) {
	repo, db := testDB(t)
	order := seedOrder(t, db, workordersdomain.StatusCompletado, 500)

	invoice, err := repo.BillWorkOrder(order.ID, "efectivo")
	if err != nil {
		t.Fatalf("BillWorkOrder: %v", err)
	}

	if invoice.PaymentStatus != domain.PaymentPagada {
		t.Errorf("PaymentStatus = %q, want pagada", invoice.PaymentStatus)
	}
	if invoice.PaymentMethod != "efectivo" {
		t.Errorf("PaymentMethod = %q, want efectivo", invoice.PaymentMethod)
	}

	var updated workordersdomain.WorkOrder
	if err := db.First(&updated, order.ID).Error; err != nil {
		t.Fatalf("reload order: %v", err)
	}
	if updated.Status != workordersdomain.StatusEntregado {
		t.Errorf("order status = %q, want entregado after paid billing", updated.Status)
	}
}

func TestMarkPaid(t *testing.T) {
	repo, db := testDB(t)
	order := seedOrder(t, db, workordersdomain.StatusCompletado, 400)

	invoice, err := repo.BillWorkOrder(order.ID, "")
	if err != nil {
		t.Fatalf("BillWorkOrder: %v", err)
	}

	paid, err := repo.MarkPaid(invoice.ID, "tarjeta")
	if err != nil {
		t.Fatalf("MarkPaid: %v", err)
	}
	if paid.PaymentStatus != domain.PaymentPagada || paid.PaymentMethod != "tarjeta" {
		t.Errorf("invoice after payment = %q/%q, want pagada/tarjeta", paid.PaymentStatus, paid.PaymentMethod)
	}

	var updated workordersdomain.WorkOrder
	if err := db.First(&updated, order.ID).Error; err != nil {
		t.Fatalf("reload order: %v", err)
	}
	if updated.Status != workordersdomain.StatusEntregado {
		t.Errorf("order status = %q, want entregado after payment", updated.Status)
	}

	if _, err := repo.MarkPaid(invoice.ID, "tarjeta"); !errors.Is(err, domain.ErrAlreadyPaid) {
		t.Errorf("double payment: got %v, want ErrAlreadyPaid", err)
	}

	if _, err := repo.MarkPaid(999, "tarjeta"); !errors.Is(err, domain.ErrInvoiceNotFound) {
		t.Errorf("missing invoice: got %v, want ErrInvoiceNotFound", err)
	}
}

func TestDelete_FreesOrderForRebilling(t *testing.T) {
	repo, db := testDB(t)
	order := seedOrder(t, db, workordersdomain.StatusCompletado, 200)

	invoice, err := repo.BillWorkOrder(order.ID, "")
	if err != nil {
		t.Fatalf("BillWorkOrder: %v", err)
	}

	if err := repo.Delete(invoice.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, err := repo.FindByID(invoice.ID); !errors.Is(err, domain.ErrInvoiceNotFound) {
		t.Errorf("deleted invoice still found: %v", err)
	}

	if _, err := repo.BillWorkOrder(order.ID, ""); err != nil {
		t.Errorf("rebilling after delete: %v", err)
	}

	if err := repo.Delete(999); !errors.Is(err, domain.ErrInvoiceNotFound) {
		t.Errorf("deleting missing invoice: got %v, want ErrInvoiceNotFound", err)
	}
}

func TestFindByWorkOrder(t *testing.T) {
	repo, db := testDB(t)
	order := seedOrder(t, db, workordersdomain.StatusCompletado, 150)

	if _, err := repo.FindByWorkOrder(order.ID); !errors.Is(err, domain.ErrInvoiceNotFound) {
		t.Fatalf("before billing: got %v, want ErrInvoiceNotFound", err)
	}

	created, err := repo.BillWorkOrder(order.ID, "")
	if err != nil {
		t.Fatalf("BillWorkOrder: %v", err)
	}

	found, err := repo.FindByWorkOrder(order.ID)
	if err != nil {
		t.Fatalf("FindByWorkOrder: %v", err)
	}
	if found.ID != created.ID {
		t.Errorf("found invoice %d, want %d", found.ID, created.ID)
	}
}

func TestFindAll_NewestFirst(t *testing.T) {
	repo, db := testDB(t)

	older := seedOrder(t, db, workordersdomain.StatusCompletado, 100)
	newer := seedOrder(t, db, workordersdomain.StatusCompletado, 200)

	first, err := repo.BillWorkOrder(older.ID, "")
	if err != nil {
		t.Fatalf("bill older: %v", err)
	}
	// Push the first invoice into the past so ordering is observable
	if err := db.Model(first).Update("issued_at", time.Now().Add(-time.Hour)).Error; err != nil {
		t.Fatalf("backdate: %v", err)
	}
	second, err := repo.BillWorkOrder(newer.ID, "")
	if err != nil {
		t.Fatalf("bill newer: %v", err)
	}

	invoices, err := repo.FindAll(10, 0)
	if err != nil {
		t.Fatalf("FindAll: %v", err)
	}
	if len(invoices) != 2 {
		t.Fatalf("got %d invoices, want 2", len(invoices))
	}
	if invoices[0].ID != second.ID || invoices[1].ID != first.ID {
		t.Errorf("order = [%d, %d], want newest first", invoices[0].ID, invoices[1].ID)
	}
}
