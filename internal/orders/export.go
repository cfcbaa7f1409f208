package orders

import (
	"bytes"
	"context"
	"fmt"
	"net/url"
	"os"
	"strings"

	"burntest/internal/errors"
	"burntest/models"
	"burntest/ports"

	"go.uber.org/zap"
)

// DownloadPath is the backend route serving archived reports
const DownloadPath = "/api/download/"

// Export fills the report template for one order and archives the workbook
func (s *Service) Export(ctx context.Context, orderID string) models.ExportResult {
	result, err := s.export(ctx, orderID)
	if err != nil {
		s.logger.Error("export failed", zap.String("order_id", orderID), zap.Error(err))
		return models.ExportResult{ActionResult: models.Failure(fmt.Sprintf(msgExportFailed, err.Error()))}
	}
	return result
}

func (s *Service) export(ctx context.Context, orderID string) (models.ExportResult, error) {
	lines, err := s.store.Lines(ctx, orderID)
	if err != nil {
		return models.ExportResult{}, err
	}
	if len(lines) == 0 {
		return models.ExportResult{ActionResult: models.Failure(msgNoOrderData)}, nil
	}

	if _, err := os.Stat(s.templatePath()); err != nil {
		if os.IsNotExist(err) {
			return models.ExportResult{ActionResult: models.Failure(fmt.Sprintf(msgTemplateMissing, TemplateFile))}, nil
		}
		return models.ExportResult{}, errors.StorageError("failed to stat template", err)
	}
	logo := s.logoPath()
	if _, err := os.Stat(logo); err != nil {
		logo = ""
	}

	now := s.now()
	req := ports.ExportRequest{
		OrderID:  orderID,
		Lines:    lines,
		Template: s.templatePath(),
		Logo:     logo,
		Today:    now,
	}

	var buf bytes.Buffer
	sheets, err := s.exporter.Export(ctx, req, &buf)
	if err != nil {
		return models.ExportResult{}, err
	}

	name := ReportFilename(orderID, now.Format(reportTimestamp))
	if err := s.reports.Save(ctx, name, &buf); err != nil {
		return models.ExportResult{}, err
	}

	link := DownloadPath + url.PathEscape(name)
	s.logger.Info("report archived", zap.String("filename", name), zap.Int("sheets", sheets))
	return models.ExportResult{
		ActionResult:  models.Success(fmt.Sprintf(msgExported, sheets)),
		FileURL:       link,
		DownloadURL:   link,
		SheetsCreated: sheets,
	}, nil
}

// ReportFilename names a report after its order; path separators in the order id are
// replaced so the name stays a single path element
func ReportFilename(orderID, timestamp string) string {
	safe := strings.Map(func(r rune) rune {
		switch r {
		case '/', '\\', 0:
			return '_'
		}
		return r
	}, orderID)
	safe = strings.TrimLeft(safe, ".")
	return fmt.Sprintf("%s_BAO_CAO_%s.xlsx", safe, timestamp)
}
