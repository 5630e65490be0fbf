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

func newQueryService(orders *mocks.MockOrderRepository, history *mocks.MockHistoryRepository) *QueryService {
	return NewQueryService(orders, history, logger.NewNopLogger())
}

func TestQueryService_GetByID(t *testing.T) {
	orders := new(mocks.MockOrderRepository)
	history := new(mocks.MockHistoryRepository)
	svc := newQueryService(orders, history)

	order := &models.OrderWithEmployee{
		Order:        models.Order{ID: 7, OrderCode: "A1"},
		EmployeeName: "Jane",
	}
	ledger := []*models.HistoryWithEmployee{
		{HistoryEntry: models.HistoryEntry{ID: 2, OrderID: 7, ActionType: models.ActionPaymentUpdate}},
		{HistoryEntry: models.HistoryEntry{ID: 1, OrderID: 7, ActionType: models.ActionStatusChange}},
	}

	orders.On("GetByID", mock.Anything, int64(7)).Return(order, nil)
	history.On("ListForOrder", mock.Anything, int64(7)).Return(ledger, nil)

	details, err := svc.GetByID(context.Background(), 7)

	require.NoError(t, err)
	assert.Equal(t, order, details.Order)
	assert.Len(t, details.History, 2)
}

func TestQueryService_GetByID_NotFound(t *testing.T) {
	orders := new(mocks.MockOrderRepository)
	svc := newQueryService(orders, new(mocks.MockHistoryRepository))

	orders.On("GetByID", mock.Anything, int64(404)).Return(nil, repository.ErrNotFound)

	_, err := svc.GetByID(context.Background(), 404)

	assert.EqualError(t, err, "Order not found")
}

func TestQueryService_GetByCode(t *testing.T) {
	orders := new(mocks.MockOrderRepository)
	history := new(mocks.MockHistoryRepository)
	svc := newQueryService(orders, history)

	order := &models.OrderWithEmployee{Order: models.Order{ID: 3, OrderCode: "B2"}}

	orders.On("GetByCode", mock.Anything, "B2").Return(order, nil)
	history.On("ListForOrder", mock.Anything, int64(3)).Return([]*models.HistoryWithEmployee{}, nil)

	details, err := svc.GetByCode(context.Background(), "B2")

	require.NoError(t, err)
	assert.Equal(t, "B2", details.Order.OrderCode)
}

func TestQueryService_List(t *testing.T) {
	tests := []struct {
		name       string
		employeeID int64
		status     string
		limit      int
		wantStatus string
	}{
		{"no filters", 0, "", 10, ""},
		{"all means no status filter", 0, "all", 10, ""},
		{"both filters", 4, "Pending", 25, "Pending"},
		{"zero limit passes through", 0, "", 0, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			orders := new(mocks.MockOrderRepository)
			svc := newQueryService(orders, new(mocks.MockHistoryRepository))

			orders.On("List", mock.Anything, tt.employeeID, tt.wantStatus, tt.limit).
				Return([]*models.OrderWithEmployee{}, nil)

			result, err := svc.List(context.Background(), tt.employeeID, tt.status, tt.limit)

			require.NoError(t, err)
			assert.Empty(t, result)
			orders.AssertExpectations(t)
		})
	}
}

func TestQueryService_List_NegativeLimit(t *testing.T) {
	orders := new(mocks.MockOrderRepository)
	svc := newQueryService(orders, new(mocks.MockHistoryRepository))

	_, err := svc.List(context.Background(), 0, "", -1)

	require.Error(t, err)
	orders.AssertNotCalled(t, "List", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestQueryService_Search(t *testing.T) {
	orders := new(mocks.MockOrderRepository)
	svc := newQueryService(orders, new(mocks.MockHistoryRepository))

	found := []*models.OrderWithEmployee{
		{Order: models.Order{ID: 1, CustomerName: "Jane"}},
	}
	orders.On("Search", mock.Anything, "jane").Return(found, nil)

	result, err := svc.Search(context.Background(), "jane")

	require.NoError(t, err)
	assert.Len(t, result, 1)
}

func TestQueryService_Search_EmptyTerm(t *testing.T) {
	tests := []string{"", "   ", "\t"}

	for _, term := range tests {
		orders := new(mocks.MockOrderRepository)
		svc := newQueryService(orders, new(mocks.MockHistoryRepository))

		_, err := svc.Search(context.Background(), term)

		assert.EqualError(t, err, "Search query is required")
		orders.AssertNotCalled(t, "Search", mock.Anything, mock.Anything)
	}
}
