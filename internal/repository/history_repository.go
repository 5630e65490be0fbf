package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/orderdesk/orderdesk-api/internal/database"
	"github.com/orderdesk/orderdesk-api/internal/models"
	"github.com/orderdesk/orderdesk-api/pkg/logger"
)

// HistoryRepository is the append-only ledger of order mutations. Entries
// are only ever inserted; deletion happens solely through the order delete
// cascade.
type HistoryRepository interface {
	Record(ctx context.Context, entry *models.HistoryEntry) error
	ListForOrder(ctx context.Context, orderID int64) ([]*models.HistoryWithEmployee, error)
}

type historyRepository struct {
	db     *database.Database
	logger logger.Logger
}

// NewHistoryRepository creates the Postgres-backed history ledger
func NewHistoryRepository(db *database.Database, logger logger.Logger) HistoryRepository {
	return &historyRepository{
		db:     db,
		logger: logger,
	}
}

const insertHistoryQuery = `
	INSERT INTO order_history (order_id, action_type, previous_value, new_value, employee_id, created_at)
	VALUES ($1, $2, $3, $4, $5, $6)
	RETURNING id
`

// insertHistoryTx appends a ledger entry inside an open transaction. Used
// by the order repository to pair mutations with their audit records.
func insertHistoryTx(ctx context.Context, tx *sqlx.Tx, entry *models.HistoryEntry) error {
	err := tx.QueryRowxContext(
		ctx,
		insertHistoryQuery,
		entry.OrderID,
		entry.ActionType,
		entry.PreviousValue,
		entry.NewValue,
		entry.EmployeeID,
		entry.CreatedAt,
	).Scan(&entry.ID)

	if err != nil {
		return fmt.Errorf("%w: %v", ErrDatabase, err)
	}

	return nil
}

// Record appends a ledger entry outside of any mutation transaction
func (r *historyRepository) Record(ctx context.Context, entry *models.HistoryEntry) error {
	err := r.db.DB.QueryRowxContext(
		ctx,
		insertHistoryQuery,
		entry.OrderID,
		entry.ActionType,
		entry.PreviousValue,
		entry.NewValue,
		entry.EmployeeID,
		entry.CreatedAt,
	).Scan(&entry.ID)

	if err != nil {
		r.logger.Error("Failed to record history entry", "error", err, "orderID", entry.OrderID)
		return fmt.Errorf("%w: %v", ErrDatabase, err)
	}

	return nil
}

// ListForOrder returns the ledger for an order, newest first, with each
// entry joined to the acting employee's name
func (r *historyRepository) ListForOrder(ctx context.Context, orderID int64) ([]*models.HistoryWithEmployee, error) {
	query := `
		SELECT oh.id, oh.order_id, oh.action_type, oh.previous_value, oh.new_value,
		       oh.employee_id, oh.created_at, e.name AS employee_name
		FROM order_history oh
		JOIN employees e ON oh.employee_id = e.id
		WHERE oh.order_id = $1
		ORDER BY oh.created_at DESC
	`

	entries := []*models.HistoryWithEmployee{}
	err := r.db.DB.SelectContext(ctx, &entries, query, orderID)

	if err != nil {
		r.logger.Error("Failed to list order history", "error", err, "orderID", orderID)
		return nil, fmt.Errorf("%w: %v", ErrDatabase, err)
	}

	return entries, nil
}
