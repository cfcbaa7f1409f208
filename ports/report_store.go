package ports

import (
	"context"
	"io"
	"time"

	"burntest/models"
)

// ReportObject is one stored report file
type ReportObject struct {
	Name      string
	Size      int64
	CreatedAt time.Time
}

// ReportStore archives generated report workbooks
type ReportStore interface {
	Save(ctx context.Context, name string, content io.Reader) error
	List(ctx context.Context) ([]ReportObject, error)
	// Open returns a NotFound error for unknown names
	Open(ctx context.Context, name string) (io.ReadCloser, error)
	Delete(ctx context.Context, name string) error
}

// ReportExporter fills the report template for one order
type ReportExporter interface {
	// Export writes the workbook to w and returns the number of product sheets created
	Export(ctx context.Context, req ExportRequest, w io.Writer) (int, error)
}

// ExportRequest carries everything the exporter needs for one order.
// Logo is empty when no logo is configured.
type ExportRequest struct {
	OrderID  string
	Lines    []models.Row
	Template string
	Logo     string
	Today    time.Time
}
