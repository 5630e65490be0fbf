package service

import (
	"context"
	"errors"

	"github.com/shopspring/decimal"

	"github.com/orderdesk/orderdesk-api/internal/events"
	"github.com/orderdesk/orderdesk-api/internal/models"
	"github.com/orderdesk/orderdesk-api/internal/repository"
	apperrors "github.com/orderdesk/orderdesk-api/pkg/errors"
	"github.com/orderdesk/orderdesk-api/pkg/logger"
)

// PaymentService derives pending balances and completion status from
// collected payments, and keeps the ledger in step with every change
type PaymentService struct {
	orders    repository.OrderRepository
	publisher events.Publisher
	logger    logger.Logger
}

// NewPaymentService creates a new PaymentService
func NewPaymentService(orders repository.OrderRepository, publisher events.Publisher, logger logger.Logger) *PaymentService {
	return &PaymentService{
		orders:    orders,
		publisher: publisher,
		logger:    logger,
	}
}

// UpdatePaymentInput carries a payment mutation request
type UpdatePaymentInput struct {
	OrderID          int64
	PaymentCollected decimal.Decimal
	EmployeeID       int64
	ProofImage       *string
}

// PaymentUpdateResult reports the applied payment state
type PaymentUpdateResult struct {
	PreviousPayment decimal.Decimal `json:"previous_payment"`
	NewPayment      decimal.Decimal `json:"new_payment"`
	PaymentPending  decimal.Decimal `json:"payment_pending"`
	StatusChanged   bool            `json:"status_changed"`
}

// StatusUpdateResult reports a status transition
type StatusUpdateResult struct {
	PreviousStatus string `json:"previous_status"`
	NewStatus      string `json:"new_status"`
}

// UpdatePayment applies a new collected amount. The pending balance is
// total minus collected, negative when overpaid. Reaching the total
// completes the order; a completed order stays completed even if a later
// update drops the payment back below the total. Every call records a
// payment entry; the call that crosses the total also records the
// completion transition.
func (s *PaymentService) UpdatePayment(ctx context.Context, in UpdatePaymentInput) (*PaymentUpdateResult, error) {
	if in.OrderID <= 0 || in.EmployeeID <= 0 {
		return nil, apperrors.NewValidationError("Order ID, payment amount, and employee ID are required")
	}

	snap, err := s.orders.GetPaymentSnapshot(ctx, in.OrderID)

	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperrors.NewNotFoundError("Order not found")
		}
		s.logger.Error("Failed to read payment snapshot", "error", err, "orderID", in.OrderID)
		return nil, apperrors.NewStorageError("Failed to update payment: " + err.Error())
	}

	pending := snap.TotalPrice.Sub(in.PaymentCollected)
	crossed := snap.PaymentCollected.LessThan(snap.TotalPrice) &&
		in.PaymentCollected.GreaterThanOrEqual(snap.TotalPrice)

	entries := []*models.HistoryEntry{
		models.NewHistoryEntry(in.OrderID, models.ActionPaymentUpdate,
			"Payment: "+snap.PaymentCollected.String(),
			"Payment: "+in.PaymentCollected.String(),
			in.EmployeeID),
	}

	if crossed {
		entries = append(entries, models.NewHistoryEntry(in.OrderID, models.ActionStatusChange,
			models.OrderStatusPending, models.OrderStatusCompleted, in.EmployeeID))
	}

	err = s.orders.ApplyPaymentUpdate(ctx, repository.PaymentApplication{
		OrderID:          in.OrderID,
		PaymentCollected: in.PaymentCollected,
		PaymentPending:   pending,
		ProofImage:       in.ProofImage,
		Entries:          entries,
	})

	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperrors.NewNotFoundError("Order not found")
		}
		s.logger.Error("Failed to apply payment update", "error", err, "orderID", in.OrderID)
		return nil, apperrors.NewStorageError("Failed to update payment: " + err.Error())
	}

	s.logger.Info("Payment updated",
		"orderID", in.OrderID,
		"previous", snap.PaymentCollected,
		"collected", in.PaymentCollected,
		"pending", pending,
		"completed", crossed)

	s.publisher.Publish(ctx, models.NewOrderEvent(models.EventPaymentUpdated, in.OrderID, map[string]interface{}{
		"previous_payment": snap.PaymentCollected,
		"new_payment":      in.PaymentCollected,
		"payment_pending":  pending,
	}))

	if crossed {
		s.publisher.Publish(ctx, models.NewOrderEvent(models.EventOrderStatusChanged, in.OrderID, map[string]interface{}{
			"previous_status": models.OrderStatusPending,
			"new_status":      models.OrderStatusCompleted,
		}))
	}

	return &PaymentUpdateResult{
		PreviousPayment: snap.PaymentCollected,
		NewPayment:      in.PaymentCollected,
		PaymentPending:  pending,
		StatusChanged:   crossed,
	}, nil
}

// UpdateStatus writes the supplied status and records the transition,
// no-op transitions included
func (s *PaymentService) UpdateStatus(ctx context.Context, orderID int64, status string, employeeID int64) (*StatusUpdateResult, error) {
	if orderID <= 0 || status == "" || employeeID <= 0 {
		return nil, apperrors.NewValidationError("Order ID, status, and employee ID are required")
	}

	previous, err := s.orders.GetStatus(ctx, orderID)

	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperrors.NewNotFoundError("Order not found")
		}
		s.logger.Error("Failed to read order status", "error", err, "orderID", orderID)
		return nil, apperrors.NewStorageError("Failed to update order status: " + err.Error())
	}

	entry := models.NewHistoryEntry(orderID, models.ActionStatusChange, previous, status, employeeID)

	if err = s.orders.ApplyStatusUpdate(ctx, orderID, status, entry); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperrors.NewNotFoundError("Order not found")
		}
		s.logger.Error("Failed to update order status", "error", err, "orderID", orderID)
		return nil, apperrors.NewStorageError("Failed to update order status: " + err.Error())
	}

	s.logger.Info("Order status updated", "orderID", orderID, "previous", previous, "status", status)
	s.publisher.Publish(ctx, models.NewOrderEvent(models.EventOrderStatusChanged, orderID, map[string]interface{}{
		"previous_status": previous,
		"new_status":      status,
	}))

	return &StatusUpdateResult{PreviousStatus: previous, NewStatus: status}, nil
}

// UpdateVerification sets the payment verification status. The ledger entry
// uses a fixed placeholder for the previous value; existence is decided by
// the update's affected rows rather than a pre-read.
func (s *PaymentService) UpdateVerification(ctx context.Context, orderID int64, verification string, employeeID int64) error {
	if orderID <= 0 || verification == "" {
		return apperrors.NewValidationError("Order ID and verification status are required")
	}

	if employeeID <= 0 {
		return apperrors.NewValidationError("Employee ID is required")
	}

	entry := models.NewHistoryEntry(orderID, models.ActionVerificationStatus,
		models.VerificationPreviousPlaceholder, verification, employeeID)

	err := s.orders.ApplyVerificationUpdate(ctx, orderID, verification, entry)

	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return apperrors.NewNotFoundError("Order not found")
		}
		s.logger.Error("Failed to update verification status", "error", err, "orderID", orderID)
		return apperrors.NewStorageError("Failed to update verification status: " + err.Error())
	}

	s.logger.Info("Verification status updated", "orderID", orderID, "verification", verification)
	return nil
}
