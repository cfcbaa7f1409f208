package excel

// ExportConfig holds the report exporter settings
type ExportConfig struct {
	// MaxSheetName is the worksheet name limit of the xlsx format
	MaxSheetName int
	LogoCell     string
	DateLayout   string
}

// DefaultExportConfig returns the layout of the MAU.xlsx report template
func DefaultExportConfig() ExportConfig {
	return ExportConfig{
		MaxSheetName: 31,
		LogoCell:     "A1",
		DateLayout:   "2006-01-02",
	}
}
