package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/orderdesk/orderdesk-api/internal/database"
	"github.com/orderdesk/orderdesk-api/internal/models"
	"github.com/orderdesk/orderdesk-api/pkg/logger"
)

// EmployeeRepository reads the employee directory
type EmployeeRepository interface {
	GetByEmail(ctx context.Context, email string) (*models.Employee, error)
	GetByID(ctx context.Context, id int64) (*models.Employee, error)
	List(ctx context.Context) ([]*models.Employee, error)
}

type employeeRepository struct {
	db     *database.Database
	logger logger.Logger
}

// NewEmployeeRepository creates the Postgres-backed employee repository
func NewEmployeeRepository(db *database.Database, logger logger.Logger) EmployeeRepository {
	return &employeeRepository{
		db:     db,
		logger: logger,
	}
}

// GetByEmail retrieves an employee by email, including the employee code
// used for credential matching
func (r *employeeRepository) GetByEmail(ctx context.Context, email string) (*models.Employee, error) {
	query := `
		SELECT id, name, position, employee_code, email, created_at
		FROM employees
		WHERE email = $1
	`

	var employee models.Employee
	err := r.db.DB.GetContext(ctx, &employee, query, email)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		r.logger.Error("Failed to get employee by email", "error", err, "email", email)
		return nil, fmt.Errorf("%w: %v", ErrDatabase, err)
	}

	return &employee, nil
}

// GetByID retrieves an employee by id
func (r *employeeRepository) GetByID(ctx context.Context, id int64) (*models.Employee, error) {
	query := `
		SELECT id, name, position, employee_code, email, created_at
		FROM employees
		WHERE id = $1
	`

	var employee models.Employee
	err := r.db.DB.GetContext(ctx, &employee, query, id)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		r.logger.Error("Failed to get employee by ID", "error", err, "employeeID", id)
		return nil, fmt.Errorf("%w: %v", ErrDatabase, err)
	}

	return &employee, nil
}

// List returns the employee directory ordered by name. Employee codes are
// left out; the directory is not a credential listing.
func (r *employeeRepository) List(ctx context.Context) ([]*models.Employee, error) {
	query := `
		SELECT id, name, position, '' AS employee_code, email, created_at
		FROM employees
		ORDER BY name
	`

	employees := []*models.Employee{}
	err := r.db.DB.SelectContext(ctx, &employees, query)

	if err != nil {
		r.logger.Error("Failed to list employees", "error", err)
		return nil, fmt.Errorf("%w: %v", ErrDatabase, err)
	}

	return employees, nil
}
