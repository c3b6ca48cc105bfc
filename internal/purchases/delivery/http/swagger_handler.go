package http

// CreatePurchase godoc
// @Summary Record a supplier purchase
// @Description Record a purchase with its line items; stock is incremented for every line in the same transaction
// @Tags Compras
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body object{supplier_id=int,date=string,status=string,notes=string,items=[]object{part_id=int,quantity=int,unit_price=number}} true "Purchase data"
// @Success 201 {object} Response
// @Failure 400 {object} Response
// @Failure 404 {object} Response
// @Failure 409 {object} Response
// @Router /compras [post]
func (h *PurchaseHandler) CreatePurchaseDoc() {}

// ListPurchases godoc
// @Summary List purchases
// @Tags Compras
// @Security BearerAuth
// @Produce json
// @Param supplier_id query int false "Filter by supplier"
// @Param limit query int false "Page size"
// @Param offset query int false "Page offset"
// @Success 200 {object} Response
// @Router /compras [get]
func (h *PurchaseHandler) ListPurchasesDoc() {}

// UpdateStatus godoc
// @Summary Update purchase status
// @Description Move a pending purchase to completed or cancelled
// @Tags Compras
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path int true "Purchase ID"
// @Param request body object{estado=string} true "New status"
// @Success 200 {object} Response
// @Failure 404 {object} Response
// @Failure 409 {object} Response
// @Router /compras/{id}/estado [put]
func (h *PurchaseHandler) UpdateStatusDoc() {}

// DeletePurchase godoc
// @Summary Delete a purchase
// @Description Soft-delete a purchase and reverse its stock increments. Fails with 409 when the stock has already been consumed.
// @Tags Compras
// @Security BearerAuth
// @Produce json
// @Param id path int true "Purchase ID"
// @Success 200 {object} Response
// @Failure 404 {object} Response
// @Failure 409 {object} Response
// @Router /compras/{id} [delete]
func (h *PurchaseHandler) DeletePurchaseDoc() {}
