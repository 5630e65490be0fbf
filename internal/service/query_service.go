package service

import (
	"context"
	"errors"
	"strings"

	"github.com/orderdesk/orderdesk-api/internal/models"
	"github.com/orderdesk/orderdesk-api/internal/repository"
	apperrors "github.com/orderdesk/orderdesk-api/pkg/errors"
	"github.com/orderdesk/orderdesk-api/pkg/logger"
)

// DefaultListLimit bounds a listing when the caller does not ask for a size
const DefaultListLimit = 10

// QueryService is the read side over orders: lookups, filtered listings and
// search. It never mutates anything.
type QueryService struct {
	orders  repository.OrderRepository
	history repository.HistoryRepository
	logger  logger.Logger
}

// NewQueryService creates a new QueryService
func NewQueryService(orders repository.OrderRepository, history repository.HistoryRepository, logger logger.Logger) *QueryService {
	return &QueryService{
		orders:  orders,
		history: history,
		logger:  logger,
	}
}

// OrderDetails is an order with its full ledger
type OrderDetails struct {
	Order   *models.OrderWithEmployee     `json:"order"`
	History []*models.HistoryWithEmployee `json:"history"`
}

// GetByID returns the order with the given id plus its history
func (s *QueryService) GetByID(ctx context.Context, id int64) (*OrderDetails, error) {
	if id <= 0 {
		return nil, apperrors.NewValidationError("Order ID or order code is required")
	}

	order, err := s.orders.GetByID(ctx, id)

	if err != nil {
		return nil, s.lookupError(err, "orderID", id)
	}

	return s.withHistory(ctx, order)
}

// GetByCode returns the order with the given order code plus its history
func (s *QueryService) GetByCode(ctx context.Context, code string) (*OrderDetails, error) {
	if code == "" {
		return nil, apperrors.NewValidationError("Order ID or order code is required")
	}

	order, err := s.orders.GetByCode(ctx, code)

	if err != nil {
		return nil, s.lookupError(err, "orderCode", code)
	}

	return s.withHistory(ctx, order)
}

func (s *QueryService) withHistory(ctx context.Context, order *models.OrderWithEmployee) (*OrderDetails, error) {
	history, err := s.history.ListForOrder(ctx, order.ID)

	if err != nil {
		s.logger.Error("Failed to load order history", "error", err, "orderID", order.ID)
		return nil, apperrors.NewStorageError("Failed to load order history: " + err.Error())
	}

	return &OrderDetails{Order: order, History: history}, nil
}

func (s *QueryService) lookupError(err error, key string, value interface{}) error {
	if errors.Is(err, repository.ErrNotFound) {
		return apperrors.NewNotFoundError("Order not found")
	}
	s.logger.Error("Failed to load order", "error", err, key, value)
	return apperrors.NewStorageError("Failed to load order: " + err.Error())
}

// List returns orders newest first with optional employee and status
// filters. A limit of zero returns zero rows; there is no upper cap.
func (s *QueryService) List(ctx context.Context, employeeID int64, status string, limit int) ([]*models.OrderWithEmployee, error) {
	if limit < 0 {
		return nil, apperrors.NewValidationError("Limit must not be negative")
	}

	// "all" means no status filter, matching the listing contract.
	if status == "all" {
		status = ""
	}

	orders, err := s.orders.List(ctx, employeeID, status, limit)

	if err != nil {
		s.logger.Error("Failed to list orders", "error", err)
		return nil, apperrors.NewStorageError("Failed to list orders: " + err.Error())
	}

	return orders, nil
}

// Search matches the term case-insensitively against order codes and
// customer names, newest first, capped at 50 results
func (s *QueryService) Search(ctx context.Context, term string) ([]*models.OrderWithEmployee, error) {
	if strings.TrimSpace(term) == "" {
		return nil, apperrors.NewValidationError("Search query is required")
	}

	orders, err := s.orders.Search(ctx, term)

	if err != nil {
		s.logger.Error("Failed to search orders", "error", err, "term", term)
		return nil, apperrors.NewStorageError("Failed to search orders: " + err.Error())
	}

	return orders, nil
}
