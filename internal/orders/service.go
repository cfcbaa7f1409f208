package orders

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"sort"
	"time"

	"burntest/adapters/excel"
	"burntest/internal/errors"
	"burntest/models"
	"burntest/ports"

	"go.uber.org/zap"
)

// SheetReader parses an uploaded spreadsheet
type SheetReader interface {
	Read(content io.Reader, filename string) (*excel.SheetData, error)
}

// Config holds the directories the service reads and writes
type Config struct {
	// UploadDir stages uploaded spreadsheets while they are parsed
	UploadDir string
	// TemplateDir holds MAU.xlsx and logo.png
	TemplateDir string
}

// Service implements the order backend: import, queries, export and the report archive
type Service struct {
	store    ports.OrderStore
	reports  ports.ReportStore
	exporter ports.ReportExporter
	reader   SheetReader
	cfg      Config
	logger   *zap.Logger
	now      func() time.Time
}

// NewService wires the backend. The upload and template directories are created when missing.
func NewService(store ports.OrderStore, reports ports.ReportStore, exporter ports.ReportExporter,
	reader SheetReader, cfg Config, logger *zap.Logger) (*Service, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	for _, dir := range []string{cfg.UploadDir, cfg.TemplateDir} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, errors.StorageError("failed to create directory "+dir, err)
		}
	}
	return &Service{
		store:    store,
		reports:  reports,
		exporter: exporter,
		reader:   reader,
		cfg:      cfg,
		logger:   logger.Named("orders"),
		now:      time.Now,
	}, nil
}

// Orders returns the sorted distinct order ids
func (s *Service) Orders(ctx context.Context) ([]string, error) {
	ids, err := s.store.OrderIDs(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list orders")
	}
	if ids == nil {
		ids = []string{}
	}
	return ids, nil
}

// Chart returns the customers with the most distinct orders, ties broken by name
func (s *Service) Chart(ctx context.Context) (models.ChartData, error) {
	counts, err := s.store.CustomerOrderCounts(ctx)
	if err != nil {
		return models.ChartData{}, errors.Wrap(err, "failed to count orders per customer")
	}

	sort.Slice(counts, func(i, j int) bool {
		if counts[i].Orders != counts[j].Orders {
			return counts[i].Orders > counts[j].Orders
		}
		return counts[i].Customer < counts[j].Customer
	})
	if len(counts) > chartLimit {
		counts = counts[:chartLimit]
	}

	data := models.ChartData{Customers: []string{}, OrderCounts: []int{}}
	for _, c := range counts {
		data.Customers = append(data.Customers, c.Customer)
		data.OrderCounts = append(data.OrderCounts, c.Orders)
	}
	return data, nil
}

// OrderDetail returns the order's lines, every line carrying the same columns in the same order
func (s *Service) OrderDetail(ctx context.Context, orderID string) ([]models.Row, error) {
	lines, err := s.store.Lines(ctx, orderID)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to load order %s", orderID)
	}
	return alignLines(lines), nil
}

// DeleteOrder removes every line of the order
func (s *Service) DeleteOrder(ctx context.Context, orderID string) (models.DeleteOrderResult, error) {
	removed, err := s.store.DeleteOrder(ctx, orderID)
	if err != nil {
		return models.DeleteOrderResult{}, errors.Wrapf(err, "failed to delete order %s", orderID)
	}
	if removed == 0 {
		return models.DeleteOrderResult{ActionResult: models.Failure(msgOrderNotFound)}, nil
	}
	s.logger.Info("order deleted", zap.String("order_id", orderID), zap.Int("lines", removed))
	return models.DeleteOrderResult{ActionResult: models.Success(msgOrderDeleted), DeletedRows: removed}, nil
}

func (s *Service) templatePath() string { return filepath.Join(s.cfg.TemplateDir, TemplateFile) }
func (s *Service) logoPath() string     { return filepath.Join(s.cfg.TemplateDir, LogoFile) }

// alignLines gives every line the union of all lines' columns, in first-seen order
func alignLines(lines []models.Row) []models.Row {
	var columns []string
	seen := make(map[string]bool)
	for _, line := range lines {
		for _, key := range line.Keys() {
			if !seen[key] {
				seen[key] = true
				columns = append(columns, key)
			}
		}
	}

	aligned := make([]models.Row, len(lines))
	for i, line := range lines {
		for _, col := range columns {
			aligned[i].Set(col, line.Value(col))
		}
	}
	return aligned
}
