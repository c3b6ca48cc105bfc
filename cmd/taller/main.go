package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	httpSwagger "github.com/swaggo/http-swagger/v2"

	"github.com/taller-sys/taller-backend/internal/customers"
	invoicesHTTP "github.com/taller-sys/taller-backend/internal/invoices/delivery/http"
	invoicesdomain "github.com/taller-sys/taller-backend/internal/invoices/domain"
	invoicesrepo "github.com/taller-sys/taller-backend/internal/invoices/repository"
	partsHTTP "github.com/taller-sys/taller-backend/internal/parts/delivery/http"
	partsdomain "github.com/taller-sys/taller-backend/internal/parts/domain"
	partsrepo "github.com/taller-sys/taller-backend/internal/parts/repository"
	purchasesHTTP "github.com/taller-sys/taller-backend/internal/purchases/delivery/http"
	purchasesdomain "github.com/taller-sys/taller-backend/internal/purchases/domain"
	purchasesrepo "github.com/taller-sys/taller-backend/internal/purchases/repository"
	"github.com/taller-sys/taller-backend/internal/server"
	servicesHTTP "github.com/taller-sys/taller-backend/internal/services/delivery/http"
	servicesdomain "github.com/taller-sys/taller-backend/internal/services/domain"
	servicesrepo "github.com/taller-sys/taller-backend/internal/services/repository"
	"github.com/taller-sys/taller-backend/internal/stats"
	suppliersHTTP "github.com/taller-sys/taller-backend/internal/suppliers/delivery/http"
	suppliersdomain "github.com/taller-sys/taller-backend/internal/suppliers/domain"
	suppliersrepo "github.com/taller-sys/taller-backend/internal/suppliers/repository"
	userHTTP "github.com/taller-sys/taller-backend/internal/user/delivery/http"
	userdomain "github.com/taller-sys/taller-backend/internal/user/domain"
	userrepo "github.com/taller-sys/taller-backend/internal/user/repository"
	"github.com/taller-sys/taller-backend/internal/vehicles"
	workordersHTTP "github.com/taller-sys/taller-backend/internal/workorders/delivery/http"
	workordersdomain "github.com/taller-sys/taller-backend/internal/workorders/domain"
	workordersrepo "github.com/taller-sys/taller-backend/internal/workorders/repository"
	"github.com/taller-sys/taller-backend/kafka"
	"github.com/taller-sys/taller-backend/pkg/database"
	"github.com/taller-sys/taller-backend/pkg/logger"
	"github.com/taller-sys/taller-backend/pkg/tracing"
)

func main() {
	// .env is optional; real deployments set the environment directly
	_ = godotenv.Load()

	serviceName := getEnv("OTEL_SERVICE_NAME", "taller-backend")
	isDevelopment := getEnv("ENVIRONMENT", "development") == "development"
	logger.Init(serviceName, isDevelopment)
	logger.SetLevel(getEnv("LOG_LEVEL", "info"))

	logger.Logger.Info().
		Str("service", serviceName).
		Str("environment", getEnv("ENVIRONMENT", "development")).
		Msg("Starting taller backend")

	// Initialize tracer
	tp, err := tracing.InitTracer(serviceName)
	if err != nil {
		logger.Logger.Fatal().Err(err).Msg("Failed to initialize tracer")
	}
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := tracing.Shutdown(ctx, tp); err != nil {
			logger.Logger.Error().Err(err).Msg("Failed to shut down tracer")
		}
	}()

	// Connect to database
	dbConfig := database.Config{
		Host:     getEnv("DB_HOST", "localhost"),
		Port:     getEnv("DB_PORT", "5432"),
		User:     getEnv("DB_USER", "postgres"),
		Password: getEnv("DB_PASSWORD", "postgres"),
		DBName:   getEnv("DB_NAME", "tallerdb"),
		SSLMode:  getEnv("DB_SSLMODE", "disable"),
	}

	db, err := database.NewGormConnection(dbConfig)
	if err != nil {
		logger.Logger.Fatal().Err(err).Msg("Failed to connect to database")
	}

	sqlDB, err := db.DB()
	if err != nil {
		logger.Logger.Fatal().Err(err).Msg("Failed to get database instance")
	}
	defer sqlDB.Close()

	// Run migrations
	err = db.AutoMigrate(
		&userdomain.User{},
		&suppliersdomain.Supplier{},
		&partsdomain.Part{},
		&partsdomain.StockMovement{},
		&purchasesdomain.Purchase{},
		&purchasesdomain.PurchaseItem{},
		&customers.Customer{},
		&vehicles.Vehicle{},
		&servicesdomain.Service{},
		&workordersdomain.WorkOrder{},
		&workordersdomain.WorkOrderPart{},
		&workordersdomain.WorkOrderService{},
		&invoicesdomain.Invoice{},
	)
	if err != nil {
		logger.Logger.Fatal().Err(err).Msg("Failed to run migrations")
	}

	logger.Logger.Info().Msg("Database initialized successfully")

	// Optional Redis, used to throttle login attempts
	var rateLimiter *userHTTP.LoginRateLimiter
	if redisAddr := os.Getenv("REDIS_ADDR"); redisAddr != "" {
		redisClient := redis.NewClient(&redis.Options{
			Addr:     redisAddr,
			Password: os.Getenv("REDIS_PASSWORD"),
		})
		rateLimiter = userHTTP.NewLoginRateLimiter(redisClient, 10, time.Minute)
		logger.Logger.Info().Str("addr", redisAddr).Msg("Login rate limiter enabled")
	}

	// Optional Kafka, used for stock and purchase events
	var publisher *kafka.Publisher
	if brokers := os.Getenv("KAFKA_BROKERS"); brokers != "" {
		publisher, err = kafka.NewPublisher(strings.Split(brokers, ","))
		if err != nil {
			logger.Logger.Fatal().Err(err).Msg("Failed to initialize Kafka publisher")
		}
		defer publisher.Close()

		consumer, err := kafka.NewConsumer(
			strings.Split(brokers, ","),
			getEnv("KAFKA_GROUP_ID", "taller-backend"),
			[]string{kafka.TopicLowStockAlerts},
		)
		if err != nil {
			logger.Logger.Fatal().Err(err).Msg("Failed to initialize Kafka consumer")
		}
		defer consumer.Close()

		consumer.RegisterLowStockLogger()
		if err := consumer.Start(context.Background()); err != nil {
			logger.Logger.Fatal().Err(err).Msg("Failed to start Kafka consumer")
		}
	}

	// Repositories
	userRepository := userrepo.NewGormUserRepository(db)
	partRepository := partsrepo.NewGormPartRepositoryWithTracing(db)
	supplierRepository := suppliersrepo.NewGormSupplierRepository(db)
	purchaseRepository := purchasesrepo.NewGormPurchaseRepository(db, partRepository)
	serviceRepository := servicesrepo.NewGormServiceRepository(db)
	workOrderRepository := workordersrepo.NewGormWorkOrderRepository(db, partRepository)
	invoiceRepository := invoicesrepo.NewGormInvoiceRepository(db)
	customerRepository := customers.NewRepository(db)
	vehicleRepository := vehicles.NewRepository(db)
	statsRepository := stats.NewRepository(db)

	// HTTP handlers
	userHandler := userHTTP.NewUserHandler(userRepository, rateLimiter)
	partHandler := partsHTTP.NewPartHandler(partRepository, publisher)
	supplierHandler := suppliersHTTP.NewSupplierHandler(supplierRepository)
	purchaseHandler := purchasesHTTP.NewPurchaseHandler(purchaseRepository, supplierRepository, publisher)
	serviceHandler := servicesHTTP.NewServiceHandler(serviceRepository)
	workOrderHandler := workordersHTTP.NewWorkOrderHandler(workOrderRepository, serviceRepository)
	invoiceHandler := invoicesHTTP.NewInvoiceHandler(invoiceRepository)
	customerHandler := customers.NewHandler(customers.NewService(customerRepository))
	vehicleHandler := vehicles.NewHandler(vehicles.NewService(vehicleRepository))
	statsHandler := stats.NewHandler(statsRepository)

	// Router and middlewares
	router := mux.NewRouter()
	middlewareConfig := server.DefaultMiddlewareConfig()
	server.RegisterMiddlewares(router, middlewareConfig)

	userHandler.RegisterRoutes(router)
	partHandler.RegisterRoutes(router)
	supplierHandler.RegisterRoutes(router)
	purchaseHandler.RegisterRoutes(router)
	serviceHandler.RegisterRoutes(router)
	workOrderHandler.RegisterRoutes(router)
	invoiceHandler.RegisterRoutes(router)
	customerHandler.RegisterRoutes(router)
	vehicleHandler.RegisterRoutes(router)
	statsHandler.RegisterRoutes(router)

	userHandler.RegisterHealthCheck(router, db)
	userHTTP.RegisterSwaggerDocs(router, httpSwagger.Handler(
		httpSwagger.URL("/swagger/doc.json"),
	))
	router.Handle("/metrics", promhttp.Handler())

	corsHandler := server.SetupCORS(middlewareConfig)

	httpPort := getEnv("HTTP_PORT", "8080")
	srv := &http.Server{
		Addr:         ":" + httpPort,
		Handler:      corsHandler(router),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Logger.Info().
			Str("port", httpPort).
			Str("metrics_endpoint", "/metrics").
			Str("swagger_endpoint", "/swagger/").
			Msg("HTTP server started")

		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Logger.Fatal().Err(err).Msg("Failed to start HTTP server")
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Logger.Info().Msg("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Logger.Error().Err(err).Msg("Forced shutdown")
	}

	logger.Logger.Info().Msg("Server stopped")
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
