package kafka

import "time"

// StockAdjustedEvent is emitted every time a part's stock changes,
// whatever the trigger: manual adjustment, purchase, work order.
type StockAdjustedEvent struct {
	EventID       string    `json:"event_id"`
	EventType     string    `json:"event_type"`
	PartID        uint      `json:"part_id"`
	PartName      string    `json:"part_name"`
	Delta         int       `json:"delta"`
	PriorQuantity int       `json:"prior_quantity"`
	NewQuantity   int       `json:"new_quantity"`
	Reason        string    `json:"reason"`
	Timestamp     time.Time `json:"timestamp"`
}

// LowStockAlertEvent is emitted when an adjustment leaves a part at or
// below its minimum stock level.
type LowStockAlertEvent struct {
	EventID       string    `json:"event_id"`
	EventType     string    `json:"event_type"`
	PartID        uint      `json:"part_id"`
	PartName      string    `json:"part_name"`
	StockQuantity int       `json:"stock_quantity"`
	MinStock      int       `json:"min_stock"`
	Timestamp     time.Time `json:"timestamp"`
}

// PurchaseRecordedEvent is emitted when a supplier purchase is recorded
type PurchaseRecordedEvent struct {
	EventID    string    `json:"event_id"`
	EventType  string    `json:"event_type"`
	PurchaseID uint      `json:"purchase_id"`
	SupplierID uint      `json:"supplier_id"`
	Status     string    `json:"status"`
	Total      float64   `json:"total"`
	LineCount  int       `json:"line_count"`
	Timestamp  time.Time `json:"timestamp"`
}

// Event types
const (
	EventTypeStockAdjusted    = "stock.adjusted"
	EventTypeLowStockAlert    = "stock.low"
	EventTypePurchaseRecorded = "purchase.recorded"
)

// Kafka topics
const (
	TopicStockAdjusted    = "stock-adjusted"
	TopicLowStockAlerts   = "low-stock-alerts"
	TopicPurchaseRecorded = "purchase-recorded"
)
