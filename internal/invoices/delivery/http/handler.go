package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/taller-sys/taller-backend/internal/invoices/domain"
	"github.com/taller-sys/taller-backend/internal/invoices/usecase/command"
	"github.com/taller-sys/taller-backend/internal/invoices/usecase/query"
	userhttp "github.com/taller-sys/taller-backend/internal/user/delivery/http"
	workordersdomain "github.com/taller-sys/taller-backend/internal/workorders/domain"
	"github.com/taller-sys/taller-backend/pkg/logger"
)

// InvoiceHandler handles HTTP requests for invoices
type InvoiceHandler struct {
	billHandler   *command.BillWorkOrderHandler
	payHandler    *command.PayInvoiceHandler
	deleteHandler *command.DeleteInvoiceHandler

	getHandler      *query.GetInvoiceHandler
	getOrderHandler *query.GetOrderInvoiceHandler
	listHandler     *query.ListInvoicesHandler
}

// NewInvoiceHandler creates a new invoice handler
func NewInvoiceHandler(repo domain.InvoiceRepository) *InvoiceHandler {
	return &InvoiceHandler{
		billHandler:     command.NewBillWorkOrderHandler(repo),
		payHandler:      command.NewPayInvoiceHandler(repo),
		deleteHandler:   command.NewDeleteInvoiceHandler(repo),
		getHandler:      query.NewGetInvoiceHandler(repo),
		getOrderHandler: query.NewGetOrderInvoiceHandler(repo),
		listHandler:     query.NewListInvoicesHandler(repo),
	}
}

type Response struct {
	Success bool        `json:"success"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
}

// BillWorkOrder handles POST /facturas/facturar/{id}. An optional payment
// method in the body settles the invoice on the spot.
func (h *InvoiceHandler) BillWorkOrder(w http.ResponseWriter, r *http.Request) {
	id, err := parseInvoiceID(r)
	if err != nil {
		respondJSON(w, http.StatusBadRequest, Response{Success: false, Error: "Invalid work order ID"})
		return
	}

	var req struct {
		PaymentMethod string `json:"payment_method"`
	}
	// Body is optional: billing without payment leaves the invoice pending
	if r.Body != nil {
		_ = json.NewDecoder(r.Body).Decode(&req)
	}

	invoice, err := h.billHandler.Handle(command.BillWorkOrderCommand{
		WorkOrderID:   id,
		PaymentMethod: req.PaymentMethod,
	})
	if err != nil {
		status := http.StatusBadRequest
		switch {
		case errors.Is(err, workordersdomain.ErrWorkOrderNotFound):
			status = http.StatusNotFound
		case errors.Is(err, domain.ErrOrderNotBillable):
			status = http.StatusConflict
		case errors.Is(err, domain.ErrAlreadyInvoiced):
			status = http.StatusConflict
		}
		logger.Logger.Error().Err(err).Uint("work_order_id", id).Msg("Failed to bill work order")
		respondJSON(w, status, Response{Success: false, Error: err.Error()})
		return
	}

	logger.Audit("invoice_issued").
		Uint("invoice_id", invoice.ID).
		Uint("work_order_id", id).
		Float64("amount", invoice.Amount).
		Str("payment_status", invoice.PaymentStatus).
		Msg("Invoice issued")

	respondJSON(w, http.StatusCreated, Response{
		Success: true,
		Message: "Invoice created successfully",
		Data:    invoice,
	})
}

// GetInvoice handles GET /facturas/{id}
func (h *InvoiceHandler) GetInvoice(w http.ResponseWriter, r *http.Request) {
	id, err := parseInvoiceID(r)
	if err != nil {
		respondJSON(w, http.StatusBadRequest, Response{Success: false, Error: "Invalid invoice ID"})
		return
	}

	invoice, err := h.getHandler.Handle(query.GetInvoiceQuery{ID: id})
	if err != nil {
		respondJSON(w, http.StatusNotFound, Response{Success: false, Error: "Invoice not found"})
		return
	}

	respondJSON(w, http.StatusOK, Response{Success: true, Data: invoice})
}

// GetOrderInvoice handles GET /ordenes/{id}/factura
func (h *InvoiceHandler) GetOrderInvoice(w http.ResponseWriter, r *http.Request) {
	id, err := parseInvoiceID(r)
	if err != nil {
		respondJSON(w, http.StatusBadRequest, Response{Success: false, Error: "Invalid work order ID"})
		return
	}

	invoice, err := h.getOrderHandler.Handle(query.GetOrderInvoiceQuery{WorkOrderID: id})
	if err != nil {
		respondJSON(w, http.StatusNotFound, Response{Success: false, Error: "Invoice not found"})
		return
	}

	respondJSON(w, http.StatusOK, Response{Success: true, Data: invoice})
}

// ListInvoices handles GET /facturas
func (h *InvoiceHandler) ListInvoices(w http.ResponseWriter, r *http.Request) {
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	offset, _ := strconv.Atoi(r.URL.Query().Get("offset"))

	invoices, err := h.listHandler.Handle(query.ListInvoicesQuery{Limit: limit, Offset: offset})
	if err != nil {
		logger.Logger.Error().Err(err).Msg("Failed to list invoices")
		respondJSON(w, http.StatusInternalServerError, Response{
			Success: false,
			Error:   "Failed to list invoices",
		})
		return
	}

	respondJSON(w, http.StatusOK, Response{Success: true, Data: invoices})
}

// PayInvoice handles PUT /facturas/{id}/pagar
func (h *InvoiceHandler) PayInvoice(w http.ResponseWriter, r *http.Request) {
	id, err := parseInvoiceID(r)
	if err != nil {
		respondJSON(w, http.StatusBadRequest, Response{Success: false, Error: "Invalid invoice ID"})
		return
	}

	var req struct {
		PaymentMethod string `json:"payment_method"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondJSON(w, http.StatusBadRequest, Response{Success: false, Error: "Invalid request body"})
		return
	}

	invoice, err := h.payHandler.Handle(command.PayInvoiceCommand{
		InvoiceID:     id,
		PaymentMethod: req.PaymentMethod,
	})
	if err != nil {
		status := http.StatusBadRequest
		switch {
		case errors.Is(err, domain.ErrInvoiceNotFound):
			status = http.StatusNotFound
		case errors.Is(err, domain.ErrAlreadyPaid):
			status = http.StatusConflict
		}
		respondJSON(w, status, Response{Success: false, Error: err.Error()})
		return
	}

	logger.Audit("invoice_paid").
		Uint("invoice_id", invoice.ID).
		Str("payment_method", invoice.PaymentMethod).
		Msg("Invoice paid")

	respondJSON(w, http.StatusOK, Response{
		Success: true,
		Message: "Invoice paid successfully",
		Data:    invoice,
	})
}

// DeleteInvoice handles DELETE /facturas/{id}
func (h *InvoiceHandler) DeleteInvoice(w http.ResponseWriter, r *http.Request) {
	id, err := parseInvoiceID(r)
	if err != nil {
		respondJSON(w, http.StatusBadRequest, Response{Success: false, Error: "Invalid invoice ID"})
		return
	}

	if err := h.deleteHandler.Handle(command.DeleteInvoiceCommand{InvoiceID: id}); err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, domain.ErrInvoiceNotFound) {
			status = http.StatusNotFound
		}
		respondJSON(w, status, Response{Success: false, Error: err.Error()})
		return
	}

	respondJSON(w, http.StatusOK, Response{
		Success: true,
		Message: "Invoice deleted successfully",
	})
}

func parseInvoiceID(r *http.Request) (uint, error) {
	id, err := strconv.ParseUint(mux.Vars(r)["id"], 10, 32)
	return uint(id), err
}

// respondJSON sends a JSON response
func respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(payload)
}

// RegisterRoutes registers all invoice routes. Billing and payment stay at
// the counter; any staff member can look invoices up.
func (h *InvoiceHandler) RegisterRoutes(router *mux.Router) {
	router.HandleFunc("/facturas", userhttp.StaffMiddleware(h.ListInvoices)).Methods("GET")
	router.HandleFunc("/facturas/facturar/{id}", userhttp.CounterMiddleware(h.BillWorkOrder)).Methods("POST")
	router.HandleFunc("/facturas/{id}", userhttp.StaffMiddleware(h.GetInvoice)).Methods("GET")
	router.HandleFunc("/facturas/{id}/pagar", userhttp.CounterMiddleware(h.PayInvoice)).Methods("PUT", "PATCH")
	router.HandleFunc("/facturas/{id}", userhttp.CounterMiddleware(h.DeleteInvoice)).Methods("DELETE")
	router.HandleFunc("/ordenes/{id}/factura", userhttp.StaffMiddleware(h.GetOrderInvoice)).Methods("GET")
}
