package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"
	"github.com/shopspring/decimal"

	"github.com/orderdesk/orderdesk-api/internal/database"
	"github.com/orderdesk/orderdesk-api/internal/models"
	"github.com/orderdesk/orderdesk-api/pkg/logger"
)

var (
	ErrNotFound      = errors.New("record not found")
	ErrDuplicateCode = errors.New("order code already exists")
	ErrNoFields      = errors.New("no fields to update")
	ErrDatabase      = errors.New("database error")
)

// pqUniqueViolation is the Postgres error code for a unique constraint hit
const pqUniqueViolation = "23505"

// PaymentSnapshot is the slice of an order the payment engine reads before
// applying a payment
type PaymentSnapshot struct {
	TotalPrice       decimal.Decimal `db:"total_price"`
	PaymentCollected decimal.Decimal `db:"payment_collected"`
}

// PaymentApplication is a computed payment mutation plus the ledger entries
// that must land in the same transaction
type PaymentApplication struct {
	OrderID          int64
	PaymentCollected decimal.Decimal
	PaymentPending   decimal.Decimal
	ProofImage       *string
	Entries          []*models.HistoryEntry
}

// OrderRepository owns order rows and the transactional pairing of each
// mutation with its history entries
type OrderRepository interface {
	Create(ctx context.Context, order *models.Order, initial *models.HistoryEntry) (int64, error)
	GetByID(ctx context.Context, id int64) (*models.OrderWithEmployee, error)
	GetByCode(ctx context.Context, code string) (*models.OrderWithEmployee, error)
	List(ctx context.Context, employeeID int64, status string, limit int) ([]*models.OrderWithEmployee, error)
	Search(ctx context.Context, term string) ([]*models.OrderWithEmployee, error)
	UpdateFields(ctx context.Context, orderID int64, updates []FieldUpdate, audit *models.HistoryEntry) (int64, error)
	GetPaymentSnapshot(ctx context.Context, orderID int64) (*PaymentSnapshot, error)
	ApplyPaymentUpdate(ctx context.Context, app PaymentApplication) error
	GetStatus(ctx context.Context, orderID int64) (string, error)
	ApplyStatusUpdate(ctx context.Context, orderID int64, status string, entry *models.HistoryEntry) error
	ApplyVerificationUpdate(ctx context.Context, orderID int64, verification string, entry *models.HistoryEntry) error
	Delete(ctx context.Context, orderID int64) error
}

type orderRepository struct {
	db     *database.Database
	logger logger.Logger
}

// NewOrderRepository creates the Postgres-backed order repository
func NewOrderRepository(db *database.Database, logger logger.Logger) OrderRepository {
	return &orderRepository{
		db:     db,
		logger: logger,
	}
}

const orderColumns = `
	o.id, o.order_code, o.customer_name, o.contact_number, o.plan_type,
	o.custom_plan_details, o.total_price, o.payment_collected, o.payment_pending,
	o.status, o.payment_verification_status, o.payment_proof_image,
	o.pending_payment_proof_image, o.employee_id, o.created_at,
	e.name AS employee_name
`

// Create inserts the order and its initial history entry in one
// transaction. A unique violation on order_code is the duplicate signal.
func (r *orderRepository) Create(ctx context.Context, order *models.Order, initial *models.HistoryEntry) (int64, error) {
	tx, err := r.db.DB.BeginTxx(ctx, nil)

	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrDatabase, err)
	}

	defer func() {
		if err != nil {
			if rbErr := tx.Rollback(); rbErr != nil && !errors.Is(rbErr, sql.ErrTxDone) {
				r.logger.Error("Failed to rollback transaction", "error", rbErr)
			}
		}
	}()

	query := `
		INSERT INTO orders (
			order_code, customer_name, contact_number, plan_type, custom_plan_details,
			total_price, payment_collected, payment_pending, status,
			payment_proof_image, pending_payment_proof_image, employee_id, created_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
		RETURNING id
	`

	var id int64
	err = tx.QueryRowxContext(
		ctx,
		query,
		order.OrderCode,
		order.CustomerName,
		order.ContactNumber,
		order.PlanType,
		order.CustomPlanDetails,
		order.TotalPrice,
		order.PaymentCollected,
		order.PaymentPending,
		order.Status,
		order.PaymentProofImage,
		order.PendingPaymentProofImage,
		order.EmployeeID,
		order.CreatedAt,
	).Scan(&id)

	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == pqUniqueViolation {
			err = fmt.Errorf("%w: %s", ErrDuplicateCode, order.OrderCode)
			return 0, err
		}
		r.logger.Error("Failed to create order", "error", err, "orderCode", order.OrderCode)
		err = fmt.Errorf("%w: %v", ErrDatabase, err)
		return 0, err
	}

	initial.OrderID = id

	if err = insertHistoryTx(ctx, tx, initial); err != nil {
		return 0, err
	}

	if err = tx.Commit(); err != nil {
		r.logger.Error("Failed to commit transaction", "error", err)
		err = fmt.Errorf("%w: %v", ErrDatabase, err)
		return 0, err
	}

	order.ID = id
	return id, nil
}

// GetByID retrieves an order joined with its creator's name
func (r *orderRepository) GetByID(ctx context.Context, id int64) (*models.OrderWithEmployee, error) {
	query := `
		SELECT ` + orderColumns + `
		FROM orders o
		JOIN employees e ON o.employee_id = e.id
		WHERE o.id = $1
	`

	var order models.OrderWithEmployee
	err := r.db.DB.GetContext(ctx, &order, query, id)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		r.logger.Error("Failed to get order by ID", "error", err, "orderID", id)
		return nil, fmt.Errorf("%w: %v", ErrDatabase, err)
	}

	return &order, nil
}

// GetByCode retrieves an order by its order code
func (r *orderRepository) GetByCode(ctx context.Context, code string) (*models.OrderWithEmployee, error) {
	query := `
		SELECT ` + orderColumns + `
		FROM orders o
		JOIN employees e ON o.employee_id = e.id
		WHERE o.order_code = $1
	`

	var order models.OrderWithEmployee
	err := r.db.DB.GetContext(ctx, &order, query, code)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		r.logger.Error("Failed to get order by code", "error", err, "orderCode", code)
		return nil, fmt.Errorf("%w: %v", ErrDatabase, err)
	}

	return &order, nil
}

// List returns orders newest first. A zero employeeID and an empty status
// leave the respective filter off; both set means both apply.
func (r *orderRepository) List(ctx context.Context, employeeID int64, status string, limit int) ([]*models.OrderWithEmployee, error) {
	query := `
		SELECT ` + orderColumns + `
		FROM orders o
		JOIN employees e ON o.employee_id = e.id
		WHERE 1=1
	`
	args := make([]interface{}, 0, 3)

	if employeeID > 0 {
		args = append(args, employeeID)
		query += fmt.Sprintf(" AND o.employee_id = $%d", len(args))
	}

	if status != "" {
		args = append(args, status)
		query += fmt.Sprintf(" AND o.status = $%d", len(args))
	}

	args = append(args, limit)
	query += fmt.Sprintf(" ORDER BY o.created_at DESC LIMIT $%d", len(args))

	orders := []*models.OrderWithEmployee{}
	err := r.db.DB.SelectContext(ctx, &orders, query, args...)

	if err != nil {
		r.logger.Error("Failed to list orders", "error", err, "employeeID", employeeID, "status", status)
		return nil, fmt.Errorf("%w: %v", ErrDatabase, err)
	}

	return orders, nil
}

// Search matches the term case-insensitively against order codes and
// customer names, capped at 50 rows
func (r *orderRepository) Search(ctx context.Context, term string) ([]*models.OrderWithEmployee, error) {
	query := `
		SELECT ` + orderColumns + `
		FROM orders o
		JOIN employees e ON o.employee_id = e.id
		WHERE o.order_code ILIKE $1 OR o.customer_name ILIKE $1
		ORDER BY o.created_at DESC
		LIMIT 50
	`

	orders := []*models.OrderWithEmployee{}
	err := r.db.DB.SelectContext(ctx, &orders, query, "%"+term+"%")

	if err != nil {
		r.logger.Error("Failed to search orders", "error", err, "term", term)
		return nil, fmt.Errorf("%w: %v", ErrDatabase, err)
	}

	return orders, nil
}

// UpdateFields applies a partial update compiled from the typed field list.
// When audit is non-nil the history entry lands in the same transaction.
// Returns the affected row count.
func (r *orderRepository) UpdateFields(ctx context.Context, orderID int64, updates []FieldUpdate, audit *models.HistoryEntry) (int64, error) {
	if len(updates) == 0 {
		return 0, ErrNoFields
	}

	setClause, args := compileFieldUpdates(updates)
	args = append(args, orderID)
	query := fmt.Sprintf("UPDATE orders SET %s WHERE id = $%d", setClause, len(args))

	tx, err := r.db.DB.BeginTxx(ctx, nil)

	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrDatabase, err)
	}

	defer func() {
		if err != nil {
			if rbErr := tx.Rollback(); rbErr != nil && !errors.Is(rbErr, sql.ErrTxDone) {
				r.logger.Error("Failed to rollback transaction", "error", rbErr)
			}
		}
	}()

	result, err := tx.ExecContext(ctx, query, args...)

	if err != nil {
		r.logger.Error("Failed to update order fields", "error", err, "orderID", orderID)
		err = fmt.Errorf("%w: %v", ErrDatabase, err)
		return 0, err
	}

	affected, err := result.RowsAffected()

	if err != nil {
		err = fmt.Errorf("%w: %v", ErrDatabase, err)
		return 0, err
	}

	if affected == 0 {
		err = ErrNotFound
		return 0, err
	}

	if audit != nil {
		audit.OrderID = orderID
		if err = insertHistoryTx(ctx, tx, audit); err != nil {
			return 0, err
		}
	}

	if err = tx.Commit(); err != nil {
		r.logger.Error("Failed to commit transaction", "error", err)
		err = fmt.Errorf("%w: %v", ErrDatabase, err)
		return 0, err
	}

	return affected, nil
}

// GetPaymentSnapshot reads the price and collected payment for an order
func (r *orderRepository) GetPaymentSnapshot(ctx context.Context, orderID int64) (*PaymentSnapshot, error) {
	query := `SELECT total_price, payment_collected FROM orders WHERE id = $1`

	var snap PaymentSnapshot
	err := r.db.DB.GetContext(ctx, &snap, query, orderID)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		r.logger.Error("Failed to read payment snapshot", "error", err, "orderID", orderID)
		return nil, fmt.Errorf("%w: %v", ErrDatabase, err)
	}

	return &snap, nil
}

// ApplyPaymentUpdate writes the computed payment amounts and ledger entries
// in one transaction. The proof image is kept when no new one is supplied,
// and a collected amount at or above the total completes the order without
// ever reverting an already completed one.
func (r *orderRepository) ApplyPaymentUpdate(ctx context.Context, app PaymentApplication) error {
	query := `
		UPDATE orders SET
			payment_collected = $1,
			payment_pending = $2,
			payment_proof_image = COALESCE($3, payment_proof_image),
			status = CASE WHEN $1 >= total_price THEN 'Completed' ELSE status END
		WHERE id = $4
	`

	return r.applyInTx(ctx, app.OrderID, app.Entries, query,
		app.PaymentCollected, app.PaymentPending, app.ProofImage, app.OrderID)
}

// GetStatus reads the current status of an order
func (r *orderRepository) GetStatus(ctx context.Context, orderID int64) (string, error) {
	var status string
	err := r.db.DB.GetContext(ctx, &status, `SELECT status FROM orders WHERE id = $1`, orderID)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", ErrNotFound
		}
		r.logger.Error("Failed to read order status", "error", err, "orderID", orderID)
		return "", fmt.Errorf("%w: %v", ErrDatabase, err)
	}

	return status, nil
}

// ApplyStatusUpdate writes the status and its ledger entry in one transaction
func (r *orderRepository) ApplyStatusUpdate(ctx context.Context, orderID int64, status string, entry *models.HistoryEntry) error {
	query := `UPDATE orders SET status = $1 WHERE id = $2`

	return r.applyInTx(ctx, orderID, []*models.HistoryEntry{entry}, query, status, orderID)
}

// ApplyVerificationUpdate writes the verification status and its ledger
// entry in one transaction. Existence is checked through the affected-row
// count, not a pre-read.
func (r *orderRepository) ApplyVerificationUpdate(ctx context.Context, orderID int64, verification string, entry *models.HistoryEntry) error {
	query := `UPDATE orders SET payment_verification_status = $1 WHERE id = $2`

	return r.applyInTx(ctx, orderID, []*models.HistoryEntry{entry}, query, verification, orderID)
}

// applyInTx runs an order update and the accompanying ledger inserts as one
// unit. Zero affected rows rolls everything back as not found.
func (r *orderRepository) applyInTx(ctx context.Context, orderID int64, entries []*models.HistoryEntry, query string, args ...interface{}) error {
	tx, err := r.db.DB.BeginTxx(ctx, nil)

	if err != nil {
		return fmt.Errorf("%w: %v", ErrDatabase, err)
	}

	defer func() {
		if err != nil {
			if rbErr := tx.Rollback(); rbErr != nil && !errors.Is(rbErr, sql.ErrTxDone) {
				r.logger.Error("Failed to rollback transaction", "error", rbErr)
			}
		}
	}()

	result, err := tx.ExecContext(ctx, query, args...)

	if err != nil {
		r.logger.Error("Failed to update order", "error", err, "orderID", orderID)
		err = fmt.Errorf("%w: %v", ErrDatabase, err)
		return err
	}

	affected, err := result.RowsAffected()

	if err != nil {
		err = fmt.Errorf("%w: %v", ErrDatabase, err)
		return err
	}

	if affected == 0 {
		err = ErrNotFound
		return err
	}

	for _, entry := range entries {
		entry.OrderID = orderID
		if err = insertHistoryTx(ctx, tx, entry); err != nil {
			return err
		}
	}

	if err = tx.Commit(); err != nil {
		r.logger.Error("Failed to commit transaction", "error", err)
		err = fmt.Errorf("%w: %v", ErrDatabase, err)
		return err
	}

	return nil
}

// Delete removes the order and all of its history as one unit. A missing
// order rolls the whole thing back, leaving the ledger untouched.
func (r *orderRepository) Delete(ctx context.Context, orderID int64) error {
	tx, err := r.db.DB.BeginTxx(ctx, nil)

	if err != nil {
		return fmt.Errorf("%w: %v", ErrDatabase, err)
	}

	defer func() {
		if err != nil {
			if rbErr := tx.Rollback(); rbErr != nil && !errors.Is(rbErr, sql.ErrTxDone) {
				r.logger.Error("Failed to rollback transaction", "error", rbErr)
			}
		}
	}()

	if _, err = tx.ExecContext(ctx, `DELETE FROM order_history WHERE order_id = $1`, orderID); err != nil {
		r.logger.Error("Failed to delete order history", "error", err, "orderID", orderID)
		err = fmt.Errorf("%w: %v", ErrDatabase, err)
		return err
	}

	result, err := tx.ExecContext(ctx, `DELETE FROM orders WHERE id = $1`, orderID)

	if err != nil {
		r.logger.Error("Failed to delete order", "error", err, "orderID", orderID)
		err = fmt.Errorf("%w: %v", ErrDatabase, err)
		return err
	}

	affected, err := result.RowsAffected()

	if err != nil {
		err = fmt.Errorf("%w: %v", ErrDatabase, err)
		return err
	}

	if affected == 0 {
		err = ErrNotFound
		return err
	}

	if err = tx.Commit(); err != nil {
		r.logger.Error("Failed to commit transaction", "error", err)
		err = fmt.Errorf("%w: %v", ErrDatabase, err)
		return err
	}

	return nil
}
