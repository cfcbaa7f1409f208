package ports

import (
	"context"

	"burntest/models"
)

// OrderStore holds imported order lines, unique per (order, product code)
type OrderStore interface {
	// Upsert writes lines in order; a line replaces any stored line with the same key.
	// Returns the number of lines in the store afterwards.
	Upsert(ctx context.Context, lines []models.Row) (int, error)
	OrderIDs(ctx context.Context) ([]string, error)
	Lines(ctx context.Context, orderID string) ([]models.Row, error)
	// DeleteOrder removes every line of the order and returns how many were removed
	DeleteOrder(ctx context.Context, orderID string) (int, error)
	// CustomerOrderCounts returns distinct order counts per customer, unsorted
	CustomerOrderCounts(ctx context.Context) ([]models.CustomerCount, error)
}
