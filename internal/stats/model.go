package stats

// Kpis is the consolidated dashboard snapshot
type Kpis struct {
	SalesToday      float64 `json:"sales_today"`
	PendingInvoices int64   `json:"pending_invoices"`
	OrdersInProcess int64   `json:"orders_in_process"`
	TotalCustomers  int64   `json:"total_customers"`
	TotalOrders     int64   `json:"total_orders"`
	TotalRevenue    float64 `json:"total_revenue"`
}

// WeeklySales holds one data point per day for the last seven days,
// oldest first
type WeeklySales struct {
	Labels []string  `json:"labels"`
	Data   []float64 `json:"data"`
}
