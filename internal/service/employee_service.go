package service

import (
	"context"
	"errors"

	"github.com/orderdesk/orderdesk-api/internal/models"
	"github.com/orderdesk/orderdesk-api/internal/repository"
	apperrors "github.com/orderdesk/orderdesk-api/pkg/errors"
	"github.com/orderdesk/orderdesk-api/pkg/logger"
)

// EmployeeService exposes the employee directory and credential matching
type EmployeeService struct {
	employees repository.EmployeeRepository
	logger    logger.Logger
}

// NewEmployeeService creates a new EmployeeService
func NewEmployeeService(employees repository.EmployeeRepository, logger logger.Logger) *EmployeeService {
	return &EmployeeService{
		employees: employees,
		logger:    logger,
	}
}

// Authenticate matches an email and employee code against the directory.
// Unknown emails and wrong codes fail with distinct messages.
func (s *EmployeeService) Authenticate(ctx context.Context, email, employeeCode string) (*models.Employee, error) {
	if email == "" || employeeCode == "" {
		return nil, apperrors.NewValidationError("Email and employee code are required")
	}

	employee, err := s.employees.GetByEmail(ctx, email)

	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperrors.NewUnauthorizedError("Email not found")
		}
		s.logger.Error("Failed to look up employee", "error", err, "email", email)
		return nil, apperrors.NewStorageError("Login failed: " + err.Error())
	}

	if employee.EmployeeCode != employeeCode {
		return nil, apperrors.NewUnauthorizedError("Invalid employee code")
	}

	s.logger.Info("Employee logged in", "employeeID", employee.ID)
	return employee, nil
}

// ListEmployees returns the directory ordered by name
func (s *EmployeeService) ListEmployees(ctx context.Context) ([]*models.Employee, error) {
	employees, err := s.employees.List(ctx)

	if err != nil {
		s.logger.Error("Failed to list employees", "error", err)
		return nil, apperrors.NewStorageError("Failed to list employees: " + err.Error())
	}

	return employees, nil
}
