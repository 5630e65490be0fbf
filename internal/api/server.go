package api

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/orderdesk/orderdesk-api/internal/config"
	"github.com/orderdesk/orderdesk-api/internal/database"
	"github.com/orderdesk/orderdesk-api/internal/events"
	"github.com/orderdesk/orderdesk-api/internal/repository"
	"github.com/orderdesk/orderdesk-api/internal/service"
	"github.com/orderdesk/orderdesk-api/internal/uploads"
	"github.com/orderdesk/orderdesk-api/pkg/logger"
)

// Server wires the HTTP boundary to the order, payment, query and employee
// services
type Server struct {
	config     *config.Config
	logger     logger.Logger
	router     *mux.Router
	httpServer *http.Server
	db         *database.Database
	publisher  events.Publisher

	orderService    *service.OrderService
	paymentService  *service.PaymentService
	queryService    *service.QueryService
	employeeService *service.EmployeeService
	blobStore       uploads.BlobStore
	uploadsDir      string
}

// NewServer builds the full dependency graph and registers the routes
func NewServer(cfg *config.Config, logger logger.Logger) (*Server, error) {
	db, err := database.New(cfg, logger)

	if err != nil {
		return nil, err
	}

	if err := db.RunMigrations(); err != nil {
		return nil, err
	}

	var publisher events.Publisher = events.NewNopPublisher()
	if len(cfg.Kafka.Brokers) > 0 {
		kafkaPublisher, err := events.NewKafkaPublisher(cfg.Kafka.Brokers, cfg.Kafka.OrdersTopic, logger)

		if err != nil {
			return nil, err
		}
		publisher = kafkaPublisher
	} else {
		logger.Info("Event publishing disabled, no Kafka brokers configured")
	}

	blobStore, err := uploads.NewFileStore(cfg.Uploads.Dir, cfg.Uploads.BaseURL, logger)

	if err != nil {
		return nil, err
	}

	orderRepo := repository.NewOrderRepository(db, logger)
	historyRepo := repository.NewHistoryRepository(db, logger)
	employeeRepo := repository.NewEmployeeRepository(db, logger)

	s := &Server{
		config:          cfg,
		logger:          logger,
		router:          mux.NewRouter(),
		db:              db,
		publisher:       publisher,
		orderService:    service.NewOrderService(orderRepo, publisher, logger),
		paymentService:  service.NewPaymentService(orderRepo, publisher, logger),
		queryService:    service.NewQueryService(orderRepo, historyRepo, logger),
		employeeService: service.NewEmployeeService(employeeRepo, logger),
		blobStore:       blobStore,
		uploadsDir:      cfg.Uploads.Dir,
	}

	s.registerRoutes()

	s.httpServer = &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      s.router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	return s, nil
}

func (s *Server) registerRoutes() {
	s.router.NotFoundHandler = http.HandlerFunc(s.notFoundHandler)
	s.router.MethodNotAllowedHandler = http.HandlerFunc(s.methodNotAllowedHandler)

	s.router.HandleFunc("/health", s.healthCheckHandler).Methods(http.MethodGet)

	api := s.router.PathPrefix("/api").Subrouter()

	api.HandleFunc("/orders", s.createOrderHandler).Methods(http.MethodPost)
	api.HandleFunc("/orders", s.listOrdersHandler).Methods(http.MethodGet)
	api.HandleFunc("/orders/search", s.searchOrdersHandler).Methods(http.MethodGet)
	api.HandleFunc("/orders/code/{code}", s.getOrderByCodeHandler).Methods(http.MethodGet)
	api.HandleFunc("/orders/{id:[0-9]+}", s.getOrderHandler).Methods(http.MethodGet)
	api.HandleFunc("/orders/{id:[0-9]+}", s.updateOrderHandler).Methods(http.MethodPost)
	api.HandleFunc("/orders/{id:[0-9]+}/payment", s.updatePaymentHandler).Methods(http.MethodPost)
	api.HandleFunc("/orders/{id:[0-9]+}/status", s.updateStatusHandler).Methods(http.MethodPost)
	api.HandleFunc("/orders/{id:[0-9]+}/verification", s.updateVerificationHandler).Methods(http.MethodPost)
	api.HandleFunc("/orders/{id:[0-9]+}/delete", s.deleteOrderHandler).Methods(http.MethodPost)

	api.HandleFunc("/employees", s.listEmployeesHandler).Methods(http.MethodGet)
	api.HandleFunc("/auth/login", s.loginHandler).Methods(http.MethodPost)

	api.HandleFunc("/uploads/image", s.uploadImageHandler).Methods(http.MethodPost)
	api.HandleFunc("/uploads/base64", s.uploadBase64Handler).Methods(http.MethodPost)

	// Stored images are retrievable at the URL the upload response returns.
	s.router.PathPrefix("/uploads/").Handler(
		http.StripPrefix("/uploads/", http.FileServer(http.Dir(s.uploadsDir)))).Methods(http.MethodGet)
}

// Start begins listening for requests
func (s *Server) Start() error {
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully stops the server and closes its resources
func (s *Server) Shutdown(ctx context.Context) error {
	if err := s.publisher.Close(); err != nil {
		s.logger.Error("Failed to close event publisher", "error", err)
	}

	if err := s.db.Close(); err != nil {
		s.logger.Error("Failed to close database", "error", err)
	}

	return s.httpServer.Shutdown(ctx)
}
