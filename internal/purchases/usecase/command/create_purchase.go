package command

import (
	"fmt"
	"time"

	"github.com/taller-sys/taller-backend/internal/purchases/domain"
	suppliersdomain "github.com/taller-sys/taller-backend/internal/suppliers/domain"
)

// PurchaseLine is one requested line item
type PurchaseLine struct {
	PartID    uint
	Quantity  int
	UnitPrice float64
}

// CreatePurchaseCommand represents the command to record a purchase
type CreatePurchaseCommand struct {
	SupplierID uint
	Date       time.Time
	Status     string
	Notes      string
	Lines      []PurchaseLine
}

// CreatePurchaseHandler handles create purchase command
type CreatePurchaseHandler struct {
	repo      domain.PurchaseRepository
	suppliers suppliersdomain.SupplierRepository
}

// NewCreatePurchaseHandler creates a new create purchase handler
func NewCreatePurchaseHandler(repo domain.PurchaseRepository, suppliers suppliersdomain.SupplierRepository) *CreatePurchaseHandler {
	return &CreatePurchaseHandler{repo: repo, suppliers: suppliers}
}

// Handle executes the create purchase command. The purchase row, its items
// and all stock increments commit or roll back as one unit.
func (h *CreatePurchaseHandler) Handle(cmd CreatePurchaseCommand) (*domain.Purchase, error) {
	if cmd.SupplierID == 0 {
		return nil, fmt.Errorf("supplier_id is required")
	}

	if len(cmd.Lines) == 0 {
		return nil, fmt.Errorf("at least one line item is required")
	}

	for i, line := range cmd.Lines {
		if line.PartID == 0 {
			return nil, fmt.Errorf("line %d: part_id is required", i+1)
		}
		if line.Quantity <= 0 {
			return nil, fmt.Errorf("line %d: quantity must be positive", i+1)
		}
		if line.UnitPrice < 0 {
			return nil, fmt.Errorf("line %d: unit_price cannot be negative", i+1)
		}
	}

	if cmd.Status == "" {
		cmd.Status = domain.StatusCompleted
	}
	if cmd.Status != domain.StatusPending && cmd.Status != domain.StatusCompleted {
		return nil, fmt.Errorf("initial status must be %q or %q", domain.StatusPending, domain.StatusCompleted)
	}

	supplier, err := h.suppliers.FindByID(cmd.SupplierID)
	if err != nil {
		return nil, err
	}
	if !supplier.IsActive {
		return nil, suppliersdomain.ErrSupplierInactive
	}

	if cmd.Date.IsZero() {
		cmd.Date = time.Now()
	}

	items := make([]domain.PurchaseItem, 0, len(cmd.Lines))
	for _, line := range cmd.Lines {
		items = append(items, domain.PurchaseItem{
			PartID:    line.PartID,
			Quantity:  line.Quantity,
			UnitPrice: line.UnitPrice,
			Subtotal:  float64(line.Quantity) * line.UnitPrice,
		})
	}

	purchase := &domain.Purchase{
		SupplierID:   cmd.SupplierID,
		PurchaseDate: cmd.Date,
		Status:       cmd.Status,
		Notes:        cmd.Notes,
		Total:        domain.ComputeTotal(items),
		Items:        items,
	}

	if err := h.repo.Create(purchase); err != nil {
		return nil, err
	}

	return h.repo.FindByID(purchase.ID)
}
