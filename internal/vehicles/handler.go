package vehicles

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

// Handler handles HTTP requests for vehicles
type Handler struct {
	service        *Service
	requestCounter *prometheus.CounterVec
	requestLatency *prometheus.HistogramVec
}

// NewHandler creates a new vehicle handler with Prometheus metrics
func NewHandler(service *Service) *Handler {
	requestCounter := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "taller_vehicle_requests_total",
			Help: "Total number of requests to vehicle endpoints",
		},
		[]string{"method", "endpoint", "status"},
	)

	requestLatency := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "taller_vehicle_request_duration_seconds",
			Help:    "Duration of vehicle endpoint requests in seconds",
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

// CreateVehicle handles POST /vehiculos
func (h *Handler) CreateVehicle(w http.ResponseWriter, r *http.Request) {
	var req CreateVehicleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	vehicle, err := h.service.CreateVehicle(req)
	if err != nil {
		if errors.Is(err, ErrDuplicatePlate) {
			h.respondError(w, http.StatusConflict, err.Error())
			return
		}
		h.respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	h.respondJSON(w, http.StatusCreated, vehicle)
}

// GetVehicle handles GET /vehiculos/{id}
func (h *Handler) GetVehicle(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		h.respondError(w, http.StatusBadRequest, "Invalid vehicle ID")
		return
	}

	vehicle, err := h.service.GetVehicle(id)
	if err != nil {
		h.respondError(w, http.StatusNotFound, err.Error())
		return
	}

	h.respondJSON(w, http.StatusOK, vehicle)
}

// ListVehicles handles GET /vehiculos, with optional ?plate= lookup
func (h *Handler) ListVehicles(w http.ResponseWriter, r *http.Request) {
	if plate := r.URL.Query().Get("plate"); plate != "" {
		vehicle, err := h.service.GetVehicleByPlate(plate)
		if err != nil {
			h.respondError(w, http.StatusNotFound, err.Error())
			return
		}
		h.respondJSON(w, http.StatusOK, vehicle)
		return
	}

	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	offset, _ := strconv.Atoi(r.URL.Query().Get("offset"))

	vehicles, err := h.service.GetAllVehicles(limit, offset)
	if err != nil {
		h.respondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	h.respondJSON(w, http.StatusOK, vehicles)
}

// ListCustomerVehicles handles GET /clientes/{id}/vehiculos
func (h *Handler) ListCustomerVehicles(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		h.respondError(w, http.StatusBadRequest, "Invalid customer ID")
		return
	}

	vehicles, err := h.service.GetCustomerVehicles(id)
	if err != nil {
		h.respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	h.respondJSON(w, http.StatusOK, vehicles)
}

// UpdateVehicle handles PUT /vehiculos/{id}
func (h *Handler) UpdateVehicle(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		h.respondError(w, http.StatusBadRequest, "Invalid vehicle ID")
		return
	}

	var req UpdateVehicleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	vehicle, err := h.service.UpdateVehicle(id, req)
	if err != nil {
		switch {
		case errors.Is(err, ErrVehicleNotFound):
			h.respondError(w, http.StatusNotFound, err.Error())
		case errors.Is(err, ErrDuplicatePlate):
			h.respondError(w, http.StatusConflict, err.Error())
		default:
			h.respondError(w, http.StatusBadRequest, err.Error())
		}
		return
	}

	h.respondJSON(w, http.StatusOK, vehicle)
}

// DeleteVehicle handles DELETE /vehiculos/{id}
func (h *Handler) DeleteVehicle(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		h.respondError(w, http.StatusBadRequest, "Invalid vehicle ID")
		return
	}

	if err := h.service.DeleteVehicle(id); err != nil {
		switch {
		case errors.Is(err, ErrVehicleNotFound):
			h.respondError(w, http.StatusNotFound, err.Error())
		case errors.Is(err, ErrVehicleHasOrders):
			h.respondError(w, http.StatusConflict, err.Error())
		default:
			h.respondError(w, http.StatusInternalServerError, err.Error())
		}
		return
	}

	h.respondJSON(w, http.StatusOK, map[string]string{"message": "Vehicle deleted successfully"})
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

// RegisterRoutes registers all vehicle routes
func (h *Handler) RegisterRoutes(router *mux.Router) {
	router.HandleFunc("/vehiculos", h.metricsMiddleware("/vehiculos", userhttp.StaffMiddleware(h.ListVehicles))).Methods("GET")
	router.HandleFunc("/vehiculos", h.metricsMiddleware("/vehiculos", userhttp.CounterMiddleware(h.CreateVehicle))).Methods("POST")
	router.HandleFunc("/vehiculos/{id}", h.metricsMiddleware("/vehiculos/{id}", userhttp.StaffMiddleware(h.GetVehicle))).Methods("GET")
	router.HandleFunc("/vehiculos/{id}", h.metricsMiddleware("/vehiculos/{id}", userhttp.CounterMiddleware(h.UpdateVehicle))).Methods("PUT")
	router.HandleFunc("/vehiculos/{id}", h.metricsMiddleware("/vehiculos/{id}", userhttp.CounterMiddleware(h.DeleteVehicle))).Methods("DELETE")
	router.HandleFunc("/clientes/{id}/vehiculos", h.metricsMiddleware("/clientes/{id}/vehiculos", userhttp.StaffMiddleware(h.ListCustomerVehicles))).Methods("GET")
}
