package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/orderdesk/orderdesk-api/internal/mocks"
	"github.com/orderdesk/orderdesk-api/internal/models"
	"github.com/orderdesk/orderdesk-api/internal/repository"
	"github.com/orderdesk/orderdesk-api/pkg/logger"
)

func newOrderService(repo *mocks.MockOrderRepository) (*OrderService, *recordingPublisher) {
	pub := &recordingPublisher{}
	return NewOrderService(repo, pub, logger.NewNopLogger()), pub
}

func TestOrderService_CreateOrder(t *testing.T) {
	repo := new(mocks.MockOrderRepository)
	svc, pub := newOrderService(repo)

	var createdOrder *models.Order
	var initialEntry *models.HistoryEntry
	repo.On("Create", mock.Anything, mock.AnythingOfType("*models.Order"), mock.AnythingOfType("*models.HistoryEntry")).
		Return(int64(42), nil).
		Run(func(args mock.Arguments) {
			createdOrder = args.Get(1).(*models.Order)
			initialEntry = args.Get(2).(*models.HistoryEntry)
		})

	result, err := svc.CreateOrder(context.Background(), validOrderInput())

	require.NoError(t, err)
	assert.Equal(t, int64(42), result.OrderID)
	assert.Equal(t, "A1", result.OrderCode)

	require.NotNil(t, createdOrder)
	assert.Equal(t, models.OrderStatusPending, createdOrder.Status)
	assert.True(t, createdOrder.PaymentPending.Equal(dec(100)))

	require.NotNil(t, initialEntry)
	assert.Equal(t, models.ActionStatusChange, initialEntry.ActionType)
	assert.Equal(t, "", initialEntry.PreviousValue)
	assert.Equal(t, models.OrderStatusPending, initialEntry.NewValue)

	assert.Equal(t, []string{models.EventOrderCreated}, pub.typesSeen())
}

func TestOrderService_CreateOrder_PartialPaymentUpFront(t *testing.T) {
	repo := new(mocks.MockOrderRepository)
	svc, _ := newOrderService(repo)

	var createdOrder *models.Order
	repo.On("Create", mock.Anything, mock.Anything, mock.Anything).
		Return(int64(1), nil).
		Run(func(args mock.Arguments) {
			createdOrder = args.Get(1).(*models.Order)
		})

	in := validOrderInput()
	in.PaymentCollected = dec(30)

	_, err := svc.CreateOrder(context.Background(), in)

	require.NoError(t, err)
	assert.True(t, createdOrder.PaymentPending.Equal(dec(70)))
}

func TestOrderService_CreateOrder_Validation(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*models.NewOrderInput)
	}{
		{"missing customer name", func(in *models.NewOrderInput) { in.CustomerName = "" }},
		{"missing contact number", func(in *models.NewOrderInput) { in.ContactNumber = "" }},
		{"missing order code", func(in *models.NewOrderInput) { in.OrderCode = "" }},
		{"missing plan type", func(in *models.NewOrderInput) { in.PlanType = "" }},
		{"zero total price", func(in *models.NewOrderInput) { in.TotalPrice = dec(0) }},
		{"missing employee", func(in *models.NewOrderInput) { in.EmployeeID = 0 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(mocks.MockOrderRepository)
			svc, pub := newOrderService(repo)

			in := validOrderInput()
			tt.mutate(&in)

			_, err := svc.CreateOrder(context.Background(), in)

			require.Error(t, err)
			repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything, mock.Anything)
			assert.Empty(t, pub.events)
		})
	}
}

func TestOrderService_CreateOrder_DuplicateCode(t *testing.T) {
	repo := new(mocks.MockOrderRepository)
	svc, pub := newOrderService(repo)

	repo.On("Create", mock.Anything, mock.Anything, mock.Anything).
		Return(int64(0), repository.ErrDuplicateCode)

	_, err := svc.CreateOrder(context.Background(), validOrderInput())

	require.Error(t, err)
	assert.EqualError(t, err, "Order code already exists. Please use a different code.")
	assert.Empty(t, pub.events)
}

func TestOrderService_UpdateOrderFields(t *testing.T) {
	repo := new(mocks.MockOrderRepository)
	svc, pub := newOrderService(repo)

	updates := []repository.FieldUpdate{repository.SetCustomerName("Janet")}

	repo.On("UpdateFields", mock.Anything, int64(7), updates, (*models.HistoryEntry)(nil)).
		Return(int64(1), nil)

	affected, err := svc.UpdateOrderFields(context.Background(), 7, updates, nil)

	require.NoError(t, err)
	assert.Equal(t, int64(1), affected)
	assert.Equal(t, []string{models.EventOrderUpdated}, pub.typesSeen())
}

func TestOrderService_UpdateOrderFields_AuditGating(t *testing.T) {
	tests := []struct {
		name      string
		audit     *AuditInput
		wantEntry bool
	}{
		{
			name:      "complete tuple records history",
			audit:     &AuditInput{ActionType: "Status Change", PreviousValue: "Pending", NewValue: "On Hold", EmployeeID: 1},
			wantEntry: true,
		},
		{
			name:      "partial tuple records nothing",
			audit:     &AuditInput{ActionType: "Status Change", EmployeeID: 1},
			wantEntry: false,
		},
		{
			name:      "absent tuple records nothing",
			audit:     nil,
			wantEntry: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(mocks.MockOrderRepository)
			svc, _ := newOrderService(repo)

			var gotEntry *models.HistoryEntry
			repo.On("UpdateFields", mock.Anything, int64(7), mock.Anything, mock.Anything).
				Return(int64(1), nil).
				Run(func(args mock.Arguments) {
					if e, ok := args.Get(3).(*models.HistoryEntry); ok {
						gotEntry = e
					}
				})

			_, err := svc.UpdateOrderFields(context.Background(), 7,
				[]repository.FieldUpdate{repository.SetStatus("On Hold")}, tt.audit)

			require.NoError(t, err)

			if tt.wantEntry {
				require.NotNil(t, gotEntry)
				assert.Equal(t, tt.audit.ActionType, gotEntry.ActionType)
			} else {
				assert.Nil(t, gotEntry)
			}
		})
	}
}

func TestOrderService_UpdateOrderFields_Empty(t *testing.T) {
	repo := new(mocks.MockOrderRepository)
	svc, _ := newOrderService(repo)

	_, err := svc.UpdateOrderFields(context.Background(), 7, nil, nil)

	require.Error(t, err)
	assert.EqualError(t, err, "No update parameters provided")
	repo.AssertNotCalled(t, "UpdateFields", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestOrderService_UpdateOrderFields_NotFound(t *testing.T) {
	repo := new(mocks.MockOrderRepository)
	svc, _ := newOrderService(repo)

	repo.On("UpdateFields", mock.Anything, int64(99), mock.Anything, mock.Anything).
		Return(int64(0), repository.ErrNotFound)

	_, err := svc.UpdateOrderFields(context.Background(), 99,
		[]repository.FieldUpdate{repository.SetStatus("On Hold")}, nil)

	assert.EqualError(t, err, "Order not found")
}

func TestOrderService_DeleteOrder(t *testing.T) {
	repo := new(mocks.MockOrderRepository)
	svc, pub := newOrderService(repo)

	repo.On("Delete", mock.Anything, int64(7)).Return(nil)

	err := svc.DeleteOrder(context.Background(), 7)

	require.NoError(t, err)
	assert.Equal(t, []string{models.EventOrderDeleted}, pub.typesSeen())
}

func TestOrderService_DeleteOrder_NotFound(t *testing.T) {
	repo := new(mocks.MockOrderRepository)
	svc, pub := newOrderService(repo)

	repo.On("Delete", mock.Anything, int64(404)).Return(repository.ErrNotFound)

	err := svc.DeleteOrder(context.Background(), 404)

	assert.EqualError(t, err, "Order not found")
	assert.Empty(t, pub.events)
}
