package postgres

import (
	"context"
	"encoding/json"
	"fmt"

	"burntest/internal/errors"
	"burntest/models"
	"burntest/ports"

	"github.com/jmoiron/sqlx"
)

// orderRepository implements ports.OrderStore on the order_lines table.
// Each line's columns are kept as a JSON object (json, not jsonb, so key order survives).
type orderRepository struct {
	db *sqlx.DB
}

// NewOrderRepository creates a new order line repository
func NewOrderRepository(db *sqlx.DB) ports.OrderStore {
	return &orderRepository{db: db}
}

const upsertLineQuery = `INSERT INTO order_lines (order_no, product_code, customer, data)
	VALUES ($1, $2, $3, $4)
	ON CONFLICT (order_no, product_code) DO UPDATE SET
		customer = EXCLUDED.customer,
		data = EXCLUDED.data,
		seq = EXCLUDED.seq,
		updated_at = NOW()`

// Upsert writes all lines in one transaction; later lines win over earlier ones
func (r *orderRepository) Upsert(ctx context.Context, lines []models.Row) (int, error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return 0, errors.StorageError("failed to begin transaction", err)
	}
	defer tx.Rollback()

	stmt, err := tx.PreparexContext(ctx, upsertLineQuery)
	if err != nil {
		return 0, errors.StorageError("failed to prepare upsert", err)
	}
	defer stmt.Close()

	for i, line := range lines {
		data, err := json.Marshal(line)
		if err != nil {
			return 0, fmt.Errorf("failed to marshal line %d: %w", i, err)
		}
		if _, err := stmt.ExecContext(ctx,
			line.Value(models.ColOrder),
			line.Value(models.ColProductCode),
			line.Value(models.ColCustomer),
			string(data),
		); err != nil {
			return 0, errors.StorageError(fmt.Sprintf("failed to upsert line %d", i), err)
		}
	}

	var total int
	if err := tx.GetContext(ctx, &total, `SELECT COUNT(*) FROM order_lines`); err != nil {
		return 0, errors.StorageError("failed to count order lines", err)
	}
	if err := tx.Commit(); err != nil {
		return 0, errors.StorageError("failed to commit order lines", err)
	}
	return total, nil
}

// OrderIDs returns distinct non-empty order numbers in byte order
func (r *orderRepository) OrderIDs(ctx context.Context) ([]string, error) {
	ids := []string{}
	query := `SELECT DISTINCT order_no FROM order_lines
		WHERE order_no <> ''
		ORDER BY order_no COLLATE "C"`
	if err := r.db.SelectContext(ctx, &ids, query); err != nil {
		return nil, errors.StorageError("failed to list orders", err)
	}
	return ids, nil
}

// Lines returns an order's lines in import order
func (r *orderRepository) Lines(ctx context.Context, orderID string) ([]models.Row, error) {
	var raw []string
	query := `SELECT data::text FROM order_lines WHERE order_no = $1 ORDER BY seq`
	if err := r.db.SelectContext(ctx, &raw, query, orderID); err != nil {
		return nil, errors.StorageError("failed to load order lines", err)
	}

	lines := make([]models.Row, 0, len(raw))
	for _, data := range raw {
		var row models.Row
		if err := json.Unmarshal([]byte(data), &row); err != nil {
			return nil, errors.StorageError("failed to decode order line", err)
		}
		lines = append(lines, row)
	}
	return lines, nil
}

// DeleteOrder removes an order's lines
func (r *orderRepository) DeleteOrder(ctx context.Context, orderID string) (int, error) {
	result, err := r.db.ExecContext(ctx, `DELETE FROM order_lines WHERE order_no = $1`, orderID)
	if err != nil {
		return 0, errors.StorageError("failed to delete order", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return 0, errors.StorageError("failed to count deleted lines", err)
	}
	return int(affected), nil
}

type customerCountRow struct {
	Customer string `db:"customer"`
	Orders   int    `db:"orders"`
}

// CustomerOrderCounts counts distinct orders per named customer
func (r *orderRepository) CustomerOrderCounts(ctx context.Context) ([]models.CustomerCount, error) {
	var rows []customerCountRow
	query := `SELECT customer, COUNT(DISTINCT order_no) AS orders
		FROM order_lines
		WHERE customer <> '' AND order_no <> ''
		GROUP BY customer`
	if err := r.db.SelectContext(ctx, &rows, query); err != nil {
		return nil, errors.StorageError("failed to count customer orders", err)
	}

	counts := make([]models.CustomerCount, len(rows))
	for i, row := range rows {
		counts[i] = models.CustomerCount{Customer: row.Customer, Orders: row.Orders}
	}
	return counts, nil
}
