package excel

import (
	"encoding/csv"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"
)

// SheetReader reads uploaded spreadsheets: the first worksheet of an xlsx file, or a csv file
type SheetReader struct {
	logger *zap.Logger
}

// NewSheetReader creates a reader
func NewSheetReader(logger *zap.Logger) *SheetReader {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SheetReader{logger: logger.Named("sheet_reader")}
}

// Read parses content according to the file name's extension (csv, anything else is xlsx)
func (r *SheetReader) Read(content io.Reader, filename string) (*SheetData, error) {
	if strings.EqualFold(filepath.Ext(filename), ".csv") {
		return r.readCSV(content)
	}
	return r.readExcel(content)
}

// readExcel reads the first worksheet, whatever its name
func (r *SheetReader) readExcel(content io.Reader) (*SheetData, error) {
	start := time.Now()
	f, err := excelize.OpenReader(content)
	if err != nil {
		return nil, fmt.Errorf("failed to open Excel file: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("Excel file has no worksheets")
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %s: %w", sheets[0], err)
	}
	r.logger.Debug("sheet read",
		zap.String("sheet", sheets[0]),
		zap.Int("rows", len(rows)),
		zap.Duration("elapsed", time.Since(start)),
	)

	return processRows(rows), nil
}

func (r *SheetReader) readCSV(content io.Reader) (*SheetData, error) {
	reader := csv.NewReader(content)
	reader.FieldsPerRecord = -1
	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV file: %w", err)
	}
	r.logger.Debug("csv read", zap.Int("rows", len(rows)))

	return processRows(rows), nil
}

// processRows trims cells and drops rows with no content at all
func processRows(rows [][]string) *SheetData {
	data := &SheetData{}
	if len(rows) == 0 {
		return data
	}

	data.Headers = make([]string, len(rows[0]))
	for i, header := range rows[0] {
		data.Headers[i] = strings.TrimSpace(strings.TrimPrefix(header, "\ufeff"))
	}

	for _, row := range rows[1:] {
		cells := make([]string, len(row))
		blank := true
		for j, cell := range row {
			cells[j] = strings.TrimSpace(cell)
			if cells[j] != "" {
				blank = false
			}
		}
		if !blank {
			data.Rows = append(data.Rows, cells)
		}
	}
	return data
}
