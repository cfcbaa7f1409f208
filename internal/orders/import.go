package orders

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"burntest/adapters/excel"
	"burntest/internal/errors"
	"burntest/models"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Import parses an uploaded spreadsheet and merges its lines into the store. Every
// failure is reported in the result.
func (s *Service) Import(ctx context.Context, filename string, content io.Reader) models.ImportResult {
	data, err := s.readUpload(filename, content)
	if err != nil {
		s.logger.Error("import failed", zap.String("filename", filename), zap.Error(err))
		return models.ImportResult{ActionResult: models.Failure(fmt.Sprintf(msgFailed, err.Error()))}
	}

	headers := canonicalHeaders(data.Headers)
	if missing := missingColumns(headers); len(missing) > 0 {
		return models.ImportResult{ActionResult: models.Failure(fmt.Sprintf(msgMissingColumns, strings.Join(missing, ", ")))}
	}

	stamp := s.now().Format(createdLayout)
	lines := buildLines(data, headers, stamp)

	total, err := s.store.Upsert(ctx, lines)
	if err != nil {
		s.logger.Error("failed to save imported lines", zap.Error(err))
		return models.ImportResult{ActionResult: models.Failure(msgSaveFailed)}
	}

	s.logger.Info("import completed",
		zap.String("filename", filename),
		zap.Int("imported", len(lines)),
		zap.Int("skipped", len(data.Rows)-len(lines)),
		zap.Int("total", total),
	)
	return models.ImportResult{
		ActionResult: models.Success(fmt.Sprintf(msgImported, len(lines))),
		TotalRows:    total,
	}
}

// readUpload stages the upload under a unique name and parses it
func (s *Service) readUpload(filename string, content io.Reader) (*excel.SheetData, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	if ext == "" {
		ext = ".xlsx"
	}
	staged := filepath.Join(s.cfg.UploadDir, "temp_"+uuid.NewString()+ext)

	f, err := os.Create(staged)
	if err != nil {
		return nil, errors.StorageError("failed to stage upload", err)
	}
	defer os.Remove(staged)

	if _, err := io.Copy(f, content); err != nil {
		f.Close()
		return nil, errors.StorageError("failed to stage upload", err)
	}
	if _, err := f.Seek(0, io.SeekStart); err != nil {
		f.Close()
		return nil, errors.StorageError("failed to stage upload", err)
	}
	defer f.Close()

	return s.reader.Read(f, filename)
}

// canonicalHeaders renames the first header matching an alias of each canonical column
func canonicalHeaders(headers []string) []string {
	out := append([]string(nil), headers...)
	for _, canonical := range models.CanonicalColumns {
		for _, alias := range models.ColumnAliases[canonical] {
			if i := indexOf(out, alias); i >= 0 {
				out[i] = canonical
				break
			}
		}
	}
	return out
}

func missingColumns(headers []string) []string {
	var missing []string
	for _, col := range models.RequiredColumns {
		if indexOf(headers, col) < 0 {
			missing = append(missing, col)
		}
	}
	return missing
}

// buildLines turns sheet rows into lines holding every canonical column first, then the
// sheet's other columns in sheet order. Rows without an order id are dropped.
func buildLines(data *excel.SheetData, headers []string, stamp string) []models.Row {
	orderCol := indexOf(headers, models.ColOrder)
	lines := make([]models.Row, 0, len(data.Rows))
	for i := range data.Rows {
		if data.Cell(i, orderCol) == "" {
			continue
		}

		var line models.Row
		for _, col := range models.CanonicalColumns {
			if j := indexOf(headers, col); j >= 0 {
				line.Set(col, data.Cell(i, j))
			} else {
				line.Set(col, "")
			}
		}
		for j, col := range headers {
			if col == "" {
				continue
			}
			if _, ok := line.Get(col); !ok {
				line.Set(col, data.Cell(i, j))
			}
		}
		line.Set(models.ColCreatedAt, stamp)
		lines = append(lines, line)
	}
	return lines
}

func indexOf(values []string, target string) int {
	for i, v := range values {
		if v == target {
			return i
		}
	}
	return -1
}
