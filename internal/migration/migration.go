package migration

import (
	"context"

	"burntest/internal/errors"

	"github.com/jmoiron/sqlx"
)

// Migrator defines the interface for database migration operations
type Migrator interface {
	Run(ctx context.Context, db *sqlx.DB) error
	Version() string
}

// MigrationRunner handles database schema migrations
type MigrationRunner struct {
	version string
}

// NewRunner creates a new migration runner
func NewRunner() *MigrationRunner {
	return &MigrationRunner{
		version: "1.0.0",
	}
}

// Version returns the migration version
func (r *MigrationRunner) Version() string {
	return r.version
}

// Run executes all database migrations in the correct order
func (r *MigrationRunner) Run(ctx context.Context, db *sqlx.DB) error {
	if err := r.createOrderLinesTable(ctx, db); err != nil {
		return errors.Wrap(err, "failed to create order_lines table")
	}

	if err := r.addOrderLinesColumns(ctx, db); err != nil {
		return errors.Wrap(err, "failed to add order_lines columns")
	}

	if err := r.createIndexes(ctx, db); err != nil {
		return errors.Wrap(err, "failed to create indexes")
	}

	return nil
}

func (r *MigrationRunner) createOrderLinesTable(ctx context.Context, db *sqlx.DB) error {
	_, err := db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS order_lines (
			order_no TEXT NOT NULL,
			product_code TEXT NOT NULL,
			customer TEXT NOT NULL DEFAULT '',
			data JSON NOT NULL,
			seq BIGSERIAL,
			created_at TIMESTAMP WITH TIME ZONE DEFAULT NOW(),
			PRIMARY KEY (order_no, product_code)
		)
	`)
	return err
}

func (r *MigrationRunner) addOrderLinesColumns(ctx context.Context, db *sqlx.DB) error {
	_, err := db.ExecContext(ctx, `
		DO $$
		BEGIN
			IF NOT EXISTS (
				SELECT 1 FROM information_schema.columns
				WHERE table_name = 'order_lines' AND column_name = 'updated_at'
			) THEN
				ALTER TABLE order_lines ADD COLUMN updated_at TIMESTAMP WITH TIME ZONE DEFAULT NOW();
			END IF;
		END $$;
	`)
	return err
}

func (r *MigrationRunner) createIndexes(ctx context.Context, db *sqlx.DB) error {
	indexes := []string{
		`CREATE INDEX IF NOT EXISTS idx_order_lines_customer ON order_lines(customer)`,
		`CREATE INDEX IF NOT EXISTS idx_order_lines_seq ON order_lines(order_no, seq)`,
	}

	for _, idx := range indexes {
		if _, err := db.ExecContext(ctx, idx); err != nil {
			return err
		}
	}
	return nil
}
