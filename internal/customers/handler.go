package customers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"

	userhttp "github.com/taller-sys/taller-backend/internal/user/delivery/http"
)

// Handler handles HTTP requests for customers
type Handler struct {
	service        *Service
	requestCounter *prometheus.CounterVec
	requestLatency *prometheus.HistogramVec
}

// NewHandler creates a new customer handler with Prometheus metrics
func NewHandler(service *Service) *Handler {
	requestCounter := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "taller_customer_requests_total",
			Help: "Total number of requests to customer endpoints",
		},
		[]string{"method", "endpoint", "status"},
	)

	requestLatency := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "taller_customer_request_duration_seconds",
			Help:    "Duration of customer endpoint requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "endpoint"},
	)

	prometheus.MustRegister(requestCounter)
	prometheus.MustRegister(requestLatency)

	return &Handler{
		service:        service,
		requestCounter: requestCounter,
		requestLatency: requestLatency,
	}
}

// metricsMiddleware wraps handlers with Prometheus metrics
func (h *Handler) metricsMiddleware(endpoint string, next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		rw := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}
		next.ServeHTTP(rw, r)

		duration := time.Since(start).Seconds()
		h.requestLatency.WithLabelValues(r.Method, endpoint).Observe(duration)
		h.requestCounter.WithLabelValues(r.Method, endpoint, strconv.Itoa(rw.statusCode)).Inc()
	}
}

// responseWriter wraps http.ResponseWriter to capture status code
type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

// CreateCustomer handles POST /clientes
func (h *Handler) CreateCustomer(w http.ResponseWriter, r *http.Request) {
	var req CreateCustomerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	customer, err := h.service.CreateCustomer(req)
	if err != nil {
		h.respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	h.respondJSON(w, http.StatusCreated, customer)
}

// GetCustomer handles GET /clientes/{id}
func (h *Handler) GetCustomer(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		h.respondError(w, http.StatusBadRequest, "Invalid customer ID")
		return
	}

	customer, err := h.service.GetCustomer(id)
	if err != nil {
		h.respondError(w, http.StatusNotFound, err.Error())
		return
	}

	h.respondJSON(w, http.StatusOK, customer)
}

// ListCustomers handles GET /clientes, with optional ?q= search
func (h *Handler) ListCustomers(w http.ResponseWriter, r *http.Request) {
	if term := r.URL.Query().Get("q"); term != "" {
		customers, err := h.service.SearchCustomers(term)
		if err != nil {
			h.respondError(w, http.StatusBadRequest, err.Error())
			return
		}
		h.respondJSON(w, http.StatusOK, customers)
		return
	}

	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	offset, _ := strconv.Atoi(r.URL.Query().Get("offset"))

	customers, err := h.service.GetAllCustomers(limit, offset)
	if err != nil {
		h.respondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	h.respondJSON(w, http.StatusOK, customers)
}

// UpdateCustomer handles PUT /clientes/{id}
func (h *Handler) UpdateCustomer(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		h.respondError(w, http.StatusBadRequest, "Invalid customer ID")
		return
	}

	var req UpdateCustomerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	customer, err := h.service.UpdateCustomer(id, req)
	if err != nil {
		if errors.Is(err, ErrCustomerNotFound) {
			h.respondError(w, http.StatusNotFound, err.Error())
			return
		}
		h.respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	h.respondJSON(w, http.StatusOK, customer)
}

// DeleteCustomer handles DELETE /clientes/{id}
func (h *Handler) DeleteCustomer(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		h.respondError(w, http.StatusBadRequest, "Invalid customer ID")
		return
	}

	if err := h.service.DeleteCustomer(id); err != nil {
		switch {
		case errors.Is(err, ErrCustomerNotFound):
			h.respondError(w, http.StatusNotFound, err.Error())
		case errors.Is(err, ErrCustomerHasOrders):
			h.respondError(w, http.StatusConflict, err.Error())
		default:
			h.respondError(w, http.StatusInternalServerError, err.Error())
		}
		return
	}

	h.respondJSON(w, http.StatusOK, map[string]string{"message": "Customer deleted successfully"})
}

func parseID(r *http.Request) (uint, error) {
	id, err := strconv.ParseUint(mux.Vars(r)["id"], 10, 32)
	return uint(id), err
}

// respondJSON sends a JSON response
func (h *Handler) respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

// respondError sends an error response
func (h *Handler) respondError(w http.ResponseWriter, status int, message string) {
	h.respondJSON(w, status, map[string]string{"error": message})
}

// RegisterRoutes registers all customer routes
func (h *Handler) RegisterRoutes(router *mux.Router) {
	router.HandleFunc("/clientes", h.metricsMiddleware("/clientes", userhttp.StaffMiddleware(h.ListCustomers))).Methods("GET")
	router.HandleFunc("/clientes", h.metricsMiddleware("/clientes", userhttp.CounterMiddleware(h.CreateCustomer))).Methods("POST")
	router.HandleFunc("/clientes/{id}", h.metricsMiddleware("/clientes/{id}", userhttp.StaffMiddleware(h.GetCustomer))).Methods("GET")
	router.HandleFunc("/clientes/{id}", h.metricsMiddleware("/clientes/{id}", userhttp.CounterMiddleware(h.UpdateCustomer))).Methods("PUT")
	router.HandleFunc("/clientes/{id}", h.metricsMiddleware("/clientes/{id}", userhttp.CounterMiddleware(h.DeleteCustomer))).Methods("DELETE")
}
