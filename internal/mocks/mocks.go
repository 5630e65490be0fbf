package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/orderdesk/orderdesk-api/internal/models"
	"github.com/orderdesk/orderdesk-api/internal/repository"
)

// MockOrderRepository is a testify mock of repository.OrderRepository
type MockOrderRepository struct {
	mock.Mock
}

func (m *MockOrderRepository) Create(ctx context.Context, order *models.Order, initial *models.HistoryEntry) (int64, error) {
	args := m.Called(ctx, order, initial)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockOrderRepository) GetByID(ctx context.Context, id int64) (*models.OrderWithEmployee, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.OrderWithEmployee), args.Error(1)
}

func (m *MockOrderRepository) GetByCode(ctx context.Context, code string) (*models.OrderWithEmployee, error) {
	args := m.Called(ctx, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.OrderWithEmployee), args.Error(1)
}

func (m *MockOrderRepository) List(ctx context.Context, employeeID int64, status string, limit int) ([]*models.OrderWithEmployee, error) {
	args := m.Called(ctx, employeeID, status, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.OrderWithEmployee), args.Error(1)
}

func (m *MockOrderRepository) Search(ctx context.Context, term string) ([]*models.OrderWithEmployee, error) {
	args := m.Called(ctx, term)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.OrderWithEmployee), args.Error(1)
}

func (m *MockOrderRepository) UpdateFields(ctx context.Context, orderID int64, updates []repository.FieldUpdate, audit *models.HistoryEntry) (int64, error) {
	args := m.Called(ctx, orderID, updates, audit)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockOrderRepository) GetPaymentSnapshot(ctx context.Context, orderID int64) (*repository.PaymentSnapshot, error) {
	args := m.Called(ctx, orderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*repository.PaymentSnapshot), args.Error(1)
}

func (m *MockOrderRepository) ApplyPaymentUpdate(ctx context.Context, app repository.PaymentApplication) error {
	args := m.Called(ctx, app)
	return args.Error(0)
}

func (m *MockOrderRepository) GetStatus(ctx context.Context, orderID int64) (string, error) {
	args := m.Called(ctx, orderID)
	return args.String(0), args.Error(1)
}

func (m *MockOrderRepository) ApplyStatusUpdate(ctx context.Context, orderID int64, status string, entry *models.HistoryEntry) error {
	args := m.Called(ctx, orderID, status, entry)
	return args.Error(0)
}

func (m *MockOrderRepository) ApplyVerificationUpdate(ctx context.Context, orderID int64, verification string, entry *models.HistoryEntry) error {
	args := m.Called(ctx, orderID, verification, entry)
	return args.Error(0)
}

func (m *MockOrderRepository) Delete(ctx context.Context, orderID int64) error {
	args := m.Called(ctx, orderID)
	return args.Error(0)
}

// MockHistoryRepository is a testify mock of repository.HistoryRepository
type MockHistoryRepository struct {
	mock.Mock
}

func (m *MockHistoryRepository) Record(ctx context.Context, entry *models.HistoryEntry) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

func (m *MockHistoryRepository) ListForOrder(ctx context.Context, orderID int64) ([]*models.HistoryWithEmployee, error) {
	args := m.Called(ctx, orderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.HistoryWithEmployee), args.Error(1)
}

// MockEmployeeRepository is a testify mock of repository.EmployeeRepository
type MockEmployeeRepository struct {
	mock.Mock
}

func (m *MockEmployeeRepository) GetByEmail(ctx context.Context, email string) (*models.Employee, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Employee), args.Error(1)
}

func (m *MockEmployeeRepository) GetByID(ctx context.Context, id int64) (*models.Employee, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Employee), args.Error(1)
}

func (m *MockEmployeeRepository) List(ctx context.Context) ([]*models.Employee, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Employee), args.Error(1)
}
