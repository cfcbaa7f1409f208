package ports

import (
	"context"
	"io"

	"burntest/models"
)

// Upload is a file picked by the user, sent as the multipart field "file"
type Upload struct {
	Filename string
	Content  io.Reader
}

// OrderAPI is the backend REST surface as seen by the dashboard.
// A returned error is a transport failure; business failures come back
// inside the result with Success=false.
type OrderAPI interface {
	// Read side
	ListOrders(ctx context.Context) ([]string, error)
	Chart(ctx context.Context) (models.ChartData, error)
	OrderDetail(ctx context.Context, orderID string) ([]models.Row, error)
	ListReports(ctx context.Context) ([]models.Report, error)

	// Mutations
	Import(ctx context.Context, upload Upload) (models.ImportResult, error)
	DeleteOrder(ctx context.Context, orderID string) (models.DeleteOrderResult, error)
	Export(ctx context.Context, orderID string) (models.ExportResult, error)
	DeleteReport(ctx context.Context, filename string) (models.ActionResult, error)
	ClearReports(ctx context.Context) (models.ClearReportsResult, error)
	UploadTemplate(ctx context.Context, upload Upload) (models.ActionResult, error)
	UploadLogo(ctx context.Context, upload Upload) (models.ActionResult, error)
}

// Confirmer asks the user a yes/no question before a destructive action
type Confirmer interface {
	Confirm(ctx context.Context, prompt string) bool
}

// ConfirmFunc adapts a function to Confirmer
type ConfirmFunc func(ctx context.Context, prompt string) bool

func (f ConfirmFunc) Confirm(ctx context.Context, prompt string) bool {
	return f(ctx, prompt)
}
