package excel

import (
	"context"
	"fmt"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"strings"
	"unicode/utf8"

	"burntest/internal/errors"
	"burntest/models"
	"burntest/ports"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"
)

// TemplateExporter builds a report workbook by copying the template's first sheet once
// per product code of the order and filling the mapped cells.
type TemplateExporter struct {
	cfg    ExportConfig
	logger *zap.Logger
}

var _ ports.ReportExporter = (*TemplateExporter)(nil)

// NewTemplateExporter creates an exporter
func NewTemplateExporter(cfg ExportConfig, logger *zap.Logger) *TemplateExporter {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &TemplateExporter{cfg: cfg, logger: logger.Named("exporter")}
}

// Export writes the filled workbook to w and returns how many product sheets it created
func (e *TemplateExporter) Export(ctx context.Context, req ports.ExportRequest, w io.Writer) (int, error) {
	f, err := excelize.OpenFile(req.Template)
	if err != nil {
		return 0, errors.StorageError("failed to open report template", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return 0, errors.ValidationError("report template has no worksheets")
	}
	templateSheet := sheets[0]
	templateIdx, err := f.GetSheetIndex(templateSheet)
	if err != nil {
		return 0, errors.Wrap(err, "failed to locate template sheet")
	}

	created := 0
	for _, group := range groupByProduct(req.Lines) {
		if err := ctx.Err(); err != nil {
			return 0, err
		}

		name := e.uniqueSheetName(f, group.code)
		idx, err := f.NewSheet(name)
		if err != nil {
			e.logger.Error("failed to create product sheet", zap.String("product_code", group.code), zap.Error(err))
			continue
		}
		if err := f.CopySheet(templateIdx, idx); err != nil {
			e.logger.Error("failed to copy template sheet", zap.String("product_code", group.code), zap.Error(err))
			_ = f.DeleteSheet(name)
			continue
		}
		created++

		for cell, value := range e.cellMapping(req, group.first) {
			if err := f.SetCellValue(name, cell, value); err != nil {
				e.logger.Warn("failed to write cell", zap.String("cell", cell), zap.Error(err))
			}
		}
		if req.Logo != "" {
			if err := f.AddPicture(name, e.cfg.LogoCell, req.Logo, nil); err != nil {
				e.logger.Warn("failed to insert logo", zap.Error(err))
			}
		}
		e.logger.Debug("product sheet created", zap.String("sheet", name))
	}

	if created > 0 {
		if err := f.DeleteSheet(templateSheet); err != nil {
			e.logger.Warn("failed to remove template sheet", zap.Error(err))
		}
		f.SetActiveSheet(0)
	}

	if err := f.Write(w); err != nil {
		return 0, errors.StorageError("failed to write report", err)
	}
	e.logger.Info("report exported",
		zap.String("order_id", req.OrderID),
		zap.Int("sheets_created", created),
	)
	return created, nil
}

// cellMapping returns the template cells to fill; blank values are left out
func (e *TemplateExporter) cellMapping(req ports.ExportRequest, line models.Row) map[string]interface{} {
	text := map[string]string{
		"C5": req.OrderID,
		"C6": line.Value(models.ColCustomer),
		"C7": line.Value(models.ColFragrance),
		"C8": line.Value(models.ColColor),
		"C9": line.Value(models.ColWick),
		"N5": line.Value(models.ColProductCode),
		"N8": req.Today.Format(e.cfg.DateLayout),
	}

	mapping := make(map[string]interface{}, len(text)+2)
	for cell, v := range text {
		if v != "" {
			mapping[cell] = v
		}
	}
	if diameter, height, ok := ParseSize(line.Value(models.ColSize)); ok {
		mapping["N6"] = diameter
		mapping["S6"] = height
	}
	return mapping
}

// uniqueSheetName makes a valid worksheet name from a product code, suffixing _1, _2...
// when the name is taken
func (e *TemplateExporter) uniqueSheetName(f *excelize.File, code string) string {
	base := truncateRunes(SanitizeSheetName(code), e.cfg.MaxSheetName)
	taken := make(map[string]bool)
	for _, s := range f.GetSheetList() {
		taken[strings.ToLower(s)] = true
	}

	name := base
	for counter := 1; taken[strings.ToLower(name)]; counter++ {
		suffix := fmt.Sprintf("_%d", counter)
		name = truncateRunes(base, e.cfg.MaxSheetName-len(suffix)) + suffix
	}
	return name
}

// SanitizeSheetName replaces characters worksheet names cannot hold
func SanitizeSheetName(name string) string {
	name = strings.Map(func(r rune) rune {
		switch r {
		case ':', '\\', '/', '?', '*', '[', ']':
			return '_'
		}
		return r
	}, name)
	name = strings.Trim(name, "'")
	if name == "" {
		return "_"
	}
	return name
}

func truncateRunes(s string, n int) string {
	if n <= 0 || utf8.RuneCountInString(s) <= n {
		return s
	}
	return string([]rune(s)[:n])
}

type productGroup struct {
	code  string
	first models.Row
}

// groupByProduct returns the distinct non-blank product codes in first-seen order with
// the first line of each
func groupByProduct(lines []models.Row) []productGroup {
	seen := make(map[string]bool)
	var groups []productGroup
	for _, line := range lines {
		code := strings.TrimSpace(line.Value(models.ColProductCode))
		if code == "" || seen[code] {
			continue
		}
		seen[code] = true
		groups = append(groups, productGroup{code: code, first: line})
	}
	return groups
}
