package service

import (
	"context"
	"errors"

	"github.com/orderdesk/orderdesk-api/internal/events"
	"github.com/orderdesk/orderdesk-api/internal/models"
	"github.com/orderdesk/orderdesk-api/internal/repository"
	apperrors "github.com/orderdesk/orderdesk-api/pkg/errors"
	"github.com/orderdesk/orderdesk-api/pkg/logger"
)

// OrderService handles order creation, partial updates and deletion
type OrderService struct {
	orders    repository.OrderRepository
	publisher events.Publisher
	logger    logger.Logger
}

// NewOrderService creates a new OrderService
func NewOrderService(orders repository.OrderRepository, publisher events.Publisher, logger logger.Logger) *OrderService {
	return &OrderService{
		orders:    orders,
		publisher: publisher,
		logger:    logger,
	}
}

// CreateOrderResult identifies a newly created order
type CreateOrderResult struct {
	OrderID   int64  `json:"order_id"`
	OrderCode string `json:"order_code"`
}

// AuditInput is the optional audit tuple accompanying a field update. The
// entry is recorded only when the whole tuple is supplied; a partial tuple
// means no audit for that update.
type AuditInput struct {
	ActionType    string
	PreviousValue string
	NewValue      string
	EmployeeID    int64
}

func (a *AuditInput) complete() bool {
	return a != nil && a.ActionType != "" && a.PreviousValue != "" && a.NewValue != "" && a.EmployeeID > 0
}

// CreateOrder validates the input, persists the order as Pending and writes
// the initial ledger entry in the same transaction
func (s *OrderService) CreateOrder(ctx context.Context, in models.NewOrderInput) (*CreateOrderResult, error) {
	if in.CustomerName == "" || in.ContactNumber == "" || in.OrderCode == "" ||
		in.PlanType == "" || !in.TotalPrice.IsPositive() || in.EmployeeID <= 0 {
		return nil, apperrors.NewValidationError("Incomplete order data. Please provide all required fields including order code and contact number.")
	}

	order := models.NewOrder(in)
	initial := models.NewHistoryEntry(0, models.ActionStatusChange, "", models.OrderStatusPending, in.EmployeeID)

	id, err := s.orders.Create(ctx, order, initial)

	if err != nil {
		if errors.Is(err, repository.ErrDuplicateCode) {
			return nil, apperrors.NewDuplicateKeyError("Order code already exists. Please use a different code.")
		}
		s.logger.Error("Failed to create order", "error", err, "orderCode", in.OrderCode)
		return nil, apperrors.NewStorageError("Failed to create order: " + err.Error())
	}

	s.logger.Info("Order created", "orderID", id, "orderCode", order.OrderCode)
	s.publisher.Publish(ctx, models.NewOrderEvent(models.EventOrderCreated, id, order))

	return &CreateOrderResult{OrderID: id, OrderCode: order.OrderCode}, nil
}

// UpdateOrderFields applies a partial update and, when a complete audit
// tuple is supplied, records it in the same transaction. Returns the
// affected row count.
func (s *OrderService) UpdateOrderFields(ctx context.Context, orderID int64, updates []repository.FieldUpdate, audit *AuditInput) (int64, error) {
	if orderID <= 0 {
		return 0, apperrors.NewValidationError("Order ID is required")
	}

	if len(updates) == 0 {
		return 0, apperrors.NewValidationError("No update parameters provided")
	}

	var entry *models.HistoryEntry
	if audit.complete() {
		entry = models.NewHistoryEntry(orderID, audit.ActionType, audit.PreviousValue, audit.NewValue, audit.EmployeeID)
	}

	affected, err := s.orders.UpdateFields(ctx, orderID, updates, entry)

	if err != nil {
		switch {
		case errors.Is(err, repository.ErrNotFound):
			return 0, apperrors.NewNotFoundError("Order not found")
		case errors.Is(err, repository.ErrNoFields):
			return 0, apperrors.NewValidationError("No update parameters provided")
		default:
			s.logger.Error("Failed to update order", "error", err, "orderID", orderID)
			return 0, apperrors.NewStorageError("Failed to update order: " + err.Error())
		}
	}

	s.logger.Info("Order updated", "orderID", orderID, "fields", len(updates), "audited", entry != nil)
	s.publisher.Publish(ctx, models.NewOrderEvent(models.EventOrderUpdated, orderID, nil))

	return affected, nil
}

// DeleteOrder removes the order and its entire ledger atomically
func (s *OrderService) DeleteOrder(ctx context.Context, orderID int64) error {
	if orderID <= 0 {
		return apperrors.NewValidationError("Order ID is required")
	}

	err := s.orders.Delete(ctx, orderID)

	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return apperrors.NewNotFoundError("Order not found")
		}
		s.logger.Error("Failed to delete order", "error", err, "orderID", orderID)
		return apperrors.NewStorageError("Error deleting order: " + err.Error())
	}

	s.logger.Info("Order deleted", "orderID", orderID)
	s.publisher.Publish(ctx, models.NewOrderEvent(models.EventOrderDeleted, orderID, nil))

	return nil
}
