package excel

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"

	"burntest/internal/errors"
	"burntest/models"
	"burntest/ports"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"
)

const dataSheet = "Sheet1"

// FileStore keeps every order line in a single xlsx workbook. Each operation reads the
// file, and writers replace it atomically; a mutex serializes access within the process.
type FileStore struct {
	path   string
	logger *zap.Logger
	mu     sync.Mutex
}

var _ ports.OrderStore = (*FileStore)(nil)

// table is the in-memory form of the data workbook
type table struct {
	columns []string
	rows    []models.Row
}

// NewFileStore opens the data workbook, creating it with the canonical header when missing
func NewFileStore(path string, logger *zap.Logger) (*FileStore, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &FileStore{path: path, logger: logger.Named("xlsx_store")}

	if _, err := os.Stat(path); os.IsNotExist(err) {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, errors.StorageError("failed to create data directory", err)
		}
		if err := s.save(&table{columns: append([]string(nil), models.CanonicalColumns...)}); err != nil {
			return nil, err
		}
		s.logger.Info("created data file", zap.String("path", path))
	} else if err != nil {
		return nil, errors.StorageError("failed to stat data file", err)
	}
	return s, nil
}

// Upsert merges lines into the table, the last line per (order, product code) winning
func (s *FileStore) Upsert(ctx context.Context, lines []models.Row) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	t, err := s.load()
	if err != nil {
		return 0, err
	}

	combined := append(t.rows, lines...)
	last := make(map[models.LineKey]int, len(combined))
	for i, row := range combined {
		last[models.KeyOf(row)] = i
	}

	merged := make([]models.Row, 0, len(last))
	for i, row := range combined {
		if last[models.KeyOf(row)] == i {
			merged = append(merged, row)
		}
	}

	t.columns = unionColumns(t.columns, lines)
	t.rows = merged
	if err := s.save(t); err != nil {
		return 0, err
	}
	s.logger.Info("order lines merged",
		zap.Int("imported", len(lines)),
		zap.Int("total", len(merged)),
	)
	return len(merged), nil
}

// OrderIDs returns the distinct non-empty order ids, sorted
func (s *FileStore) OrderIDs(ctx context.Context) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	t, err := s.load()
	if err != nil {
		return nil, err
	}

	seen := make(map[string]struct{})
	ids := []string{}
	for _, row := range t.rows {
		id := row.Value(models.ColOrder)
		if id == "" {
			continue
		}
		if _, ok := seen[id]; !ok {
			seen[id] = struct{}{}
			ids = append(ids, id)
		}
	}
	sort.Strings(ids)
	return ids, nil
}

// Lines returns the order's lines with every table column present, in table order
func (s *FileStore) Lines(ctx context.Context, orderID string) ([]models.Row, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	t, err := s.load()
	if err != nil {
		return nil, err
	}

	lines := []models.Row{}
	for _, row := range t.rows {
		if row.Value(models.ColOrder) == orderID {
			lines = append(lines, alignRow(row, t.columns))
		}
	}
	return lines, nil
}

// DeleteOrder drops every line of the order
func (s *FileStore) DeleteOrder(ctx context.Context, orderID string) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	t, err := s.load()
	if err != nil {
		return 0, err
	}

	kept := t.rows[:0]
	removed := 0
	for _, row := range t.rows {
		if row.Value(models.ColOrder) == orderID {
			removed++
			continue
		}
		kept = append(kept, row)
	}
	if removed == 0 {
		return 0, nil
	}

	t.rows = kept
	if err := s.save(t); err != nil {
		return 0, err
	}
	return removed, nil
}

// CustomerOrderCounts counts distinct orders per named customer
func (s *FileStore) CustomerOrderCounts(ctx context.Context) ([]models.CustomerCount, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	t, err := s.load()
	if err != nil {
		return nil, err
	}

	orders := make(map[string]map[string]struct{})
	for _, row := range t.rows {
		customer := row.Value(models.ColCustomer)
		order := row.Value(models.ColOrder)
		if customer == "" || order == "" {
			continue
		}
		if orders[customer] == nil {
			orders[customer] = make(map[string]struct{})
		}
		orders[customer][order] = struct{}{}
	}

	counts := make([]models.CustomerCount, 0, len(orders))
	for customer, set := range orders {
		counts = append(counts, models.CustomerCount{Customer: customer, Orders: len(set)})
	}
	return counts, nil
}

func (s *FileStore) load() (*table, error) {
	f, err := excelize.OpenFile(s.path)
	if err != nil {
		return nil, errors.StorageError("failed to open data file", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return &table{columns: append([]string(nil), models.CanonicalColumns...)}, nil
	}
	raw, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, errors.StorageError("failed to read data file", err)
	}

	data := processRows(raw)
	t := &table{columns: data.Headers}
	for i := range data.Rows {
		var row models.Row
		for j, col := range data.Headers {
			if col == "" {
				continue
			}
			row.Set(col, data.Cell(i, j))
		}
		t.rows = append(t.rows, row)
	}
	return t, nil
}

// save writes the table to a temporary file and renames it over the data file
func (s *FileStore) save(t *table) error {
	f := excelize.NewFile()
	defer f.Close()

	header := make([]interface{}, len(t.columns))
	for i, col := range t.columns {
		header[i] = col
	}
	if err := f.SetSheetRow(dataSheet, "A1", &header); err != nil {
		return errors.StorageError("failed to write header", err)
	}

	for i, row := range t.rows {
		cells := row.Project(t.columns)
		values := make([]interface{}, len(cells))
		for j, v := range cells {
			values[j] = v
		}
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return errors.StorageError("failed to address row", err)
		}
		if err := f.SetSheetRow(dataSheet, cell, &values); err != nil {
			return errors.StorageError(fmt.Sprintf("failed to write row %d", i+2), err)
		}
	}

	tmp, err := os.CreateTemp(filepath.Dir(s.path), ".data-*.xlsx")
	if err != nil {
		return errors.StorageError("failed to create temporary data file", err)
	}
	defer os.Remove(tmp.Name())

	if err := f.Write(tmp); err != nil {
		tmp.Close()
		return errors.StorageError("failed to save data file", err)
	}
	if err := tmp.Close(); err != nil {
		return errors.StorageError("failed to save data file", err)
	}
	if err := os.Rename(tmp.Name(), s.path); err != nil {
		return errors.StorageError("failed to replace data file", err)
	}
	return nil
}

// unionColumns appends columns first seen in lines to the existing column order
func unionColumns(columns []string, lines []models.Row) []string {
	seen := make(map[string]bool, len(columns))
	for _, c := range columns {
		seen[c] = true
	}
	out := append([]string(nil), columns...)
	for _, line := range lines {
		for _, key := range line.Keys() {
			if !seen[key] {
				seen[key] = true
				out = append(out, key)
			}
		}
	}
	return out
}

// alignRow returns a row carrying exactly the given columns, absent ones blank
func alignRow(row models.Row, columns []string) models.Row {
	var out models.Row
	for _, col := range columns {
		out.Set(col, row.Value(col))
	}
	return out
}
