package command

import (
	"fmt"

	servicesdomain "github.com/taller-sys/taller-backend/internal/services/domain"
	"github.com/taller-sys/taller-backend/internal/workorders/domain"
)

// OrderPartLine is one part requested for a work order
type OrderPartLine struct {
	PartID    uint
	Quantity  int
	UnitPrice float64
}

// OrderServiceLine is one catalog service requested for a work order. The
// unit price always comes from the catalog, never from the client.
type OrderServiceLine struct {
	ServiceID uint
	Quantity  int
}

// CreateWorkOrderCommand represents the command to open a work order
type CreateWorkOrderCommand struct {
	CustomerID   uint
	VehicleID    uint
	TechnicianID uint
	Description  string
	LaborCost    float64
	Services     []OrderServiceLine
	Parts        []OrderPartLine
}

// CreateWorkOrderHandler handles create work order command
type CreateWorkOrderHandler struct {
	repo     domain.WorkOrderRepository
	services servicesdomain.ServiceRepository
}

// NewCreateWorkOrderHandler creates a new create work order handler
func NewCreateWorkOrderHandler(repo domain.WorkOrderRepository, services servicesdomain.ServiceRepository) *CreateWorkOrderHandler {
	return &CreateWorkOrderHandler{repo: repo, services: services}
}

// Handle executes the create work order command. Listed parts are consumed
// from stock atomically with the order itself, and service lines are priced
// from the catalog at creation time.
func (h *CreateWorkOrderHandler) Handle(cmd CreateWorkOrderCommand) (*domain.WorkOrder, error) {
	if cmd.CustomerID == 0 {
		return nil, fmt.Errorf("customer_id is required")
	}

	if cmd.VehicleID == 0 {
		return nil, fmt.Errorf("vehicle_id is required")
	}

	if cmd.Description == "" {
		return nil, fmt.Errorf("description is required")
	}

	if cmd.LaborCost < 0 {
		return nil, fmt.Errorf("labor_cost cannot be negative")
	}

	for i, line := range cmd.Services {
		if line.ServiceID == 0 {
			return nil, fmt.Errorf("service line %d: service_id is required", i+1)
		}
		if line.Quantity <= 0 {
			return nil, fmt.Errorf("service line %d: quantity must be positive", i+1)
		}
	}

	for i, line := range cmd.Parts {
		if line.PartID == 0 {
			return nil, fmt.Errorf("part line %d: part_id is required", i+1)
		}
		if line.Quantity <= 0 {
			return nil, fmt.Errorf("part line %d: quantity must be positive", i+1)
		}
		if line.UnitPrice < 0 {
			return nil, fmt.Errorf("part line %d: unit_price cannot be negative", i+1)
		}
	}

	serviceLines := make([]domain.WorkOrderService, 0, len(cmd.Services))
	var servicesTotal float64
	for _, line := range cmd.Services {
		svc, err := h.services.FindByID(line.ServiceID)
		if err != nil {
			return nil, err
		}
		if !svc.IsActive {
			return nil, servicesdomain.ErrServiceInactive
		}
		subtotal := float64(line.Quantity) * svc.Price
		servicesTotal += subtotal
		serviceLines = append(serviceLines, domain.WorkOrderService{
			ServiceID: svc.ID,
			Quantity:  line.Quantity,
			UnitPrice: svc.Price,
			Subtotal:  subtotal,
		})
	}

	items := make([]domain.WorkOrderPart, 0, len(cmd.Parts))
	var partsTotal float64
	for _, line := range cmd.Parts {
		subtotal := float64(line.Quantity) * line.UnitPrice
		partsTotal += subtotal
		items = append(items, domain.WorkOrderPart{
			PartID:    line.PartID,
			Quantity:  line.Quantity,
			UnitPrice: line.UnitPrice,
			Subtotal:  subtotal,
		})
	}

	order := &domain.WorkOrder{
		CustomerID:   cmd.CustomerID,
		VehicleID:    cmd.VehicleID,
		TechnicianID: cmd.TechnicianID,
		Description:  cmd.Description,
		Status:       domain.StatusPendiente,
		LaborCost:    cmd.LaborCost,
		Total:        cmd.LaborCost + servicesTotal + partsTotal,
		Services:     serviceLines,
		Parts:        items,
	}

	if err := h.repo.Create(order); err != nil {
		return nil, err
	}

	return h.repo.FindByID(order.ID)
}
