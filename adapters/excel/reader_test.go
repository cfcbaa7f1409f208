package excel

import (
	"bytes"
	"strings"
	"testing"

	"burntest/internal/testkit"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSheetReader_ReadsFirstWorksheet(t *testing.T) {
	content, err := testkit.XLSXBytes(
		[]string{" KHÁCH HÀNG ", "ĐƠN HÀNG", "MÃ HÀNG"},
		[][]string{{"An", "ORD1", "P1"}, {"", "", ""}, {"Bình", "ORD2"}},
	)
	require.NoError(t, err)

	data, err := NewSheetReader(nil).Read(bytes.NewReader(content), "orders.xlsx")
	require.NoError(t, err)

	assert.Equal(t, []string{"KHÁCH HÀNG", "ĐƠN HÀNG", "MÃ HÀNG"}, data.Headers)
	require.Len(t, data.Rows, 2)
	assert.Equal(t, "ORD2", data.Cell(1, 1))
	assert.Equal(t, "", data.Cell(1, 2))
}

func TestSheetReader_CSV(t *testing.T) {
	csv := "\ufeffCUSTOMER,ORDER,PRODUCT_CODE\nAn,ORD1,P1\nBình,ORD2,P2,extra\n"

	data, err := NewSheetReader(nil).Read(strings.NewReader(csv), "orders.CSV")
	require.NoError(t, err)

	assert.Equal(t, []string{"CUSTOMER", "ORDER", "PRODUCT_CODE"}, data.Headers)
	assert.Len(t, data.Rows, 2)
}

func TestSheetReader_RejectsGarbage(t *testing.T) {
	_, err := NewSheetReader(nil).Read(strings.NewReader("not a workbook"), "orders.xlsx")
	assert.Error(t, err)
}
