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

func TestEmployeeService_Authenticate(t *testing.T) {
	repo := new(mocks.MockEmployeeRepository)
	svc := NewEmployeeService(repo, logger.NewNopLogger())

	repo.On("GetByEmail", mock.Anything, "jane@example.com").Return(&models.Employee{
		ID:           1,
		Name:         "Jane",
		Email:        "jane@example.com",
		EmployeeCode: "EMP-1001",
	}, nil)

	employee, err := svc.Authenticate(context.Background(), "jane@example.com", "EMP-1001")

	require.NoError(t, err)
	assert.Equal(t, int64(1), employee.ID)
}

func TestEmployeeService_Authenticate_Failures(t *testing.T) {
	tests := []struct {
		name    string
		email   string
		code    string
		setup   func(*mocks.MockEmployeeRepository)
		wantMsg string
	}{
		{
			name:  "unknown email",
			email: "ghost@example.com",
			code:  "EMP-1001",
			setup: func(repo *mocks.MockEmployeeRepository) {
				repo.On("GetByEmail", mock.Anything, "ghost@example.com").Return(nil, repository.ErrNotFound)
			},
			wantMsg: "Email not found",
		},
		{
			name:  "wrong code",
			email: "jane@example.com",
			code:  "wrong",
			setup: func(repo *mocks.MockEmployeeRepository) {
				repo.On("GetByEmail", mock.Anything, "jane@example.com").Return(&models.Employee{
					ID:           1,
					EmployeeCode: "EMP-1001",
				}, nil)
			},
			wantMsg: "Invalid employee code",
		},
		{
			name:    "missing credentials",
			email:   "",
			code:    "",
			setup:   func(*mocks.MockEmployeeRepository) {},
			wantMsg: "Email and employee code are required",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(mocks.MockEmployeeRepository)
			tt.setup(repo)
			svc := NewEmployeeService(repo, logger.NewNopLogger())

			_, err := svc.Authenticate(context.Background(), tt.email, tt.code)

			assert.EqualError(t, err, tt.wantMsg)
		})
	}
}

func TestEmployeeService_ListEmployees(t *testing.T) {
	repo := new(mocks.MockEmployeeRepository)
	svc := NewEmployeeService(repo, logger.NewNopLogger())

	repo.On("List", mock.Anything).Return([]*models.Employee{
		{ID: 2, Name: "Ana"},
		{ID: 1, Name: "Jane"},
	}, nil)

	employees, err := svc.ListEmployees(context.Background())

	require.NoError(t, err)
	assert.Len(t, employees, 2)
}
