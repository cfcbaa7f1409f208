package testkit

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"os"

	"github.com/xuri/excelize/v2"
)

// WriteXLSX saves headers and rows to the first sheet of a new workbook
func WriteXLSX(path string, headers []string, rows [][]string) error {
	f, err := buildWorkbook(headers, rows)
	if err != nil {
		return err
	}
	defer f.Close()
	return f.SaveAs(path)
}

// XLSXBytes returns headers and rows as an in-memory workbook
func XLSXBytes(headers []string, rows [][]string) ([]byte, error) {
	f, err := buildWorkbook(headers, rows)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func buildWorkbook(headers []string, rows [][]string) (*excelize.File, error) {
	f := excelize.NewFile()
	sheet := f.GetSheetName(0)

	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		if err := f.SetCellValue(sheet, cell, h); err != nil {
			return nil, err
		}
	}
	for r, row := range rows {
		for c, v := range row {
			cell, _ := excelize.CoordinatesToCellName(c+1, r+2)
			if err := f.SetCellValue(sheet, cell, v); err != nil {
				return nil, err
			}
		}
	}
	return f, nil
}

// TemplateLabels are the captions written next to the filled cells of the report template
var TemplateLabels = map[string]string{
	"B5": "Đơn hàng",
	"B6": "Khách hàng",
	"B7": "Hương liệu",
	"B8": "Màu",
	"B9": "Bấc",
	"M5": "Mã hàng",
	"M6": "Đường kính",
	"R6": "Chiều cao",
	"M8": "Ngày test",
}

// WriteTemplate creates a report template whose first sheet carries the captions
func WriteTemplate(path string) error {
	f := excelize.NewFile()
	defer f.Close()

	sheet := "MAU"
	if err := f.SetSheetName(f.GetSheetName(0), sheet); err != nil {
		return err
	}
	for cell, label := range TemplateLabels {
		if err := f.SetCellValue(sheet, cell, label); err != nil {
			return err
		}
	}
	return f.SaveAs(path)
}

// LogoPNG returns a small solid PNG image
func LogoPNG() []byte {
	img := image.NewRGBA(image.Rect(0, 0, 8, 8))
	for x := 0; x < 8; x++ {
		for y := 0; y < 8; y++ {
			img.Set(x, y, color.RGBA{R: 0x34, G: 0x98, B: 0xdb, A: 0xff})
		}
	}
	var buf bytes.Buffer
	_ = png.Encode(&buf, img)
	return buf.Bytes()
}

// WriteLogo saves LogoPNG to path
func WriteLogo(path string) error {
	return os.WriteFile(path, LogoPNG(), 0o644)
}
