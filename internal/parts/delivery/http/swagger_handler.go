package http

// CreatePart godoc
// @Summary Create a part
// @Description Register a new part in the inventory catalog
// @Tags Repuestos
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body object{name=string,description=string,unit=string,unit_price=number,stock_quantity=int,min_stock=int} true "Part data"
// @Success 201 {object} Response
// @Failure 400 {object} Response
// @Failure 409 {object} Response
// @Router /repuestos [post]
func (h *PartHandler) CreatePartDoc() {}

// ListParts godoc
// @Summary List parts
// @Tags Repuestos
// @Security BearerAuth
// @Produce json
// @Param limit query int false "Page size"
// @Param offset query int false "Page offset"
// @Param active query bool false "Only active parts"
// @Success 200 {object} Response
// @Router /repuestos [get]
func (h *PartHandler) ListPartsDoc() {}

// AdjustStock godoc
// @Summary Adjust part stock
// @Description Apply a signed delta to a part's stock. Negative deltas require a reason and never drive the stock below zero.
// @Tags Repuestos
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path int true "Part ID"
// @Param request body object{cantidad=int,motivo=string} true "Adjustment"
// @Success 200 {object} Response
// @Failure 400 {object} Response
// @Failure 404 {object} Response
// @Failure 409 {object} Response
// @Router /repuestos/{id}/ajustar-stock [post]
func (h *PartHandler) AdjustStockDoc() {}

// LowStock godoc
// @Summary List parts at or below minimum stock
// @Tags Repuestos
// @Security BearerAuth
// @Produce json
// @Success 200 {object} Response
// @Router /repuestos/stock-bajo [get]
func (h *PartHandler) LowStockDoc() {}

// ListMovements godoc
// @Summary List a part's stock movements
// @Tags Repuestos
// @Security BearerAuth
// @Produce json
// @Param id path int true "Part ID"
// @Success 200 {object} Response
// @Failure 404 {object} Response
// @Router /repuestos/{id}/movimientos [get]
func (h *PartHandler) ListMovementsDoc() {}

// GetStats godoc
// @Summary Inventory statistics
// @Tags Repuestos
// @Security BearerAuth
// @Produce json
// @Success 200 {object} Response
// @Router /repuestos/stats [get]
func (h *PartHandler) GetStatsDoc() {}
