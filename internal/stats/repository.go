package stats

import (
	"time"

	"gorm.io/gorm"

	"github.com/taller-sys/taller-backend/internal/customers"
	invoicesdomain "github.com/taller-sys/taller-backend/internal/invoices/domain"
	workordersdomain "github.com/taller-sys/taller-backend/internal/workorders/domain"
)

// Repository aggregates dashboard figures across the shop's tables
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a new stats repository
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// GetKpis returns the dashboard snapshot. Sales only count paid invoices.
func (r *Repository) GetKpis() (*Kpis, error) {
	kpis := &Kpis{}
	now := time.Now()
	startOfDay := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

	err := r.db.Model(&invoicesdomain.Invoice{}).
		Where("payment_status = ? AND issued_at >= ?", invoicesdomain.PaymentPagada, startOfDay).
		Select("COALESCE(SUM(amount), 0)").
		Scan(&kpis.SalesToday).Error
	if err != nil {
		return nil, err
	}

	err = r.db.Model(&invoicesdomain.Invoice{}).
		Where("payment_status <> ?", invoicesdomain.PaymentPagada).
		Count(&kpis.PendingInvoices).Error
	if err != nil {
		return nil, err
	}

	err = r.db.Model(&workordersdomain.WorkOrder{}).
		Where("status = ?", workordersdomain.StatusEnProceso).
		Count(&kpis.OrdersInProcess).Error
	if err != nil {
		return nil, err
	}

	if err := r.db.Model(&customers.Customer{}).Count(&kpis.TotalCustomers).Error; err != nil {
		return nil, err
	}

	if err := r.db.Model(&workordersdomain.WorkOrder{}).Count(&kpis.TotalOrders).Error; err != nil {
		return nil, err
	}

	err = r.db.Model(&invoicesdomain.Invoice{}).
		Where("payment_status = ?", invoicesdomain.PaymentPagada).
		Select("COALESCE(SUM(amount), 0)").
		Scan(&kpis.TotalRevenue).Error
	if err != nil {
		return nil, err
	}

	return kpis, nil
}

// GetWeeklySales returns paid invoice totals for the last seven days.
// Bucketing happens in Go to keep the query portable across dialects.
func (r *Repository) GetWeeklySales() (*WeeklySales, error) {
	now := time.Now()
	start := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location()).AddDate(0, 0, -6)

	var invoices []invoicesdomain.Invoice
	err := r.db.
		Where("payment_status = ? AND issued_at >= ?", invoicesdomain.PaymentPagada, start).
		Find(&invoices).Error
	if err != nil {
		return nil, err
	}

	sales := &WeeklySales{
		Labels: make([]string, 7),
		Data:   make([]float64, 7),
	}
	index := make(map[string]int, 7)
	for i := 0; i < 7; i++ {
		label := start.AddDate(0, 0, i).Format("2006-01-02")
		sales.Labels[i] = label
		index[label] = i
	}
	for _, inv := range invoices {
		if i, ok := index[inv.IssuedAt.In(now.Location()).Format("2006-01-02")]; ok {
			sales.Data[i] += inv.Amount
		}
	}

	return sales, nil
}
