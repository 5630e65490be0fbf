package database

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq" // PostgreSQL driver

	"github.com/orderdesk/orderdesk-api/internal/config"
	"github.com/orderdesk/orderdesk-api/pkg/logger"
)

// Database represents a database connection
type Database struct {
	DB     *sqlx.DB
	logger logger.Logger
}

// New creates a new database connection
func New(cfg *config.Config, logger logger.Logger) (*Database, error) {
	db, err := sqlx.Connect("postgres", cfg.GetDBConnString())

	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// Configure connection pool
	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)

	logger.Info("Connected to database", "host", cfg.DB.Host, "database", cfg.DB.Name)

	return &Database{
		DB:     db,
		logger: logger,
	}, nil
}

// Ping checks the database connection
func (d *Database) Ping(ctx context.Context) error {
	return d.DB.PingContext(ctx)
}

// Close closes the database connection
func (d *Database) Close() error {
	return d.DB.Close()
}

// RunMigrations creates the schema if it does not exist yet.
// The UNIQUE constraint on order_code is the authoritative duplicate check;
// create relies on it instead of a check-then-insert query.
func (d *Database) RunMigrations() error {
	schema := `
	CREATE TABLE IF NOT EXISTS employees (
		id BIGSERIAL PRIMARY KEY,
		name VARCHAR(100) NOT NULL,
		position VARCHAR(100) NOT NULL DEFAULT '',
		employee_code VARCHAR(50) NOT NULL,
		email VARCHAR(255) NOT NULL UNIQUE,
		created_at TIMESTAMP NOT NULL DEFAULT NOW()
	);

	CREATE TABLE IF NOT EXISTS orders (
		id BIGSERIAL PRIMARY KEY,
		order_code VARCHAR(50) NOT NULL UNIQUE,
		customer_name VARCHAR(100) NOT NULL,
		contact_number VARCHAR(30) NOT NULL,
		plan_type VARCHAR(50) NOT NULL,
		custom_plan_details TEXT,
		total_price DECIMAL(10, 2) NOT NULL,
		payment_collected DECIMAL(10, 2) NOT NULL DEFAULT 0,
		payment_pending DECIMAL(10, 2) NOT NULL,
		status VARCHAR(30) NOT NULL DEFAULT 'Pending',
		payment_verification_status VARCHAR(50),
		payment_proof_image TEXT,
		pending_payment_proof_image TEXT,
		employee_id BIGINT NOT NULL REFERENCES employees(id),
		created_at TIMESTAMP NOT NULL DEFAULT NOW()
	);

	CREATE INDEX IF NOT EXISTS idx_orders_employee_id ON orders(employee_id);
	CREATE INDEX IF NOT EXISTS idx_orders_status ON orders(status);
	CREATE INDEX IF NOT EXISTS idx_orders_created_at ON orders(created_at);

	CREATE TABLE IF NOT EXISTS order_history (
		id BIGSERIAL PRIMARY KEY,
		order_id BIGINT NOT NULL,
		action_type VARCHAR(50) NOT NULL,
		previous_value TEXT NOT NULL DEFAULT '',
		new_value TEXT NOT NULL DEFAULT '',
		employee_id BIGINT NOT NULL,
		created_at TIMESTAMP NOT NULL DEFAULT NOW()
	);

	CREATE INDEX IF NOT EXISTS idx_order_history_order_id ON order_history(order_id);
	`

	_, err := d.DB.Exec(schema)

	if err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	d.logger.Info("Database migrations completed successfully")
	return nil
}
