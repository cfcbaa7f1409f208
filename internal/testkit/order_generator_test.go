package testkit

import (
	"path/filepath"
	"testing"

	"burntest/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestOrderDataGenerator_Deterministic(t *testing.T) {
	a := NewOrderDataGenerator(DefaultOrderConfig()).Rows()
	b := NewOrderDataGenerator(DefaultOrderConfig()).Rows()
	assert.Equal(t, a, b)
}

func TestOrderDataGenerator_UniqueLineKeys(t *testing.T) {
	gen := NewOrderDataGenerator(DefaultOrderConfig())
	headers := gen.Headers()
	rows := gen.Rows()

	require.GreaterOrEqual(t, len(rows), DefaultOrderConfig().OrderCount)
	seen := map[[2]string]bool{}
	for _, row := range rows {
		require.Len(t, row, len(headers))
		key := [2]string{row[1], row[2]}
		assert.False(t, seen[key], "duplicate line %v", key)
		seen[key] = true
	}
}

func TestOrderDataGenerator_HeaderStyles(t *testing.T) {
	cfg := DefaultOrderConfig()
	cfg.HeaderStyle = HeaderEnglish
	assert.Equal(t, "CUSTOMER", NewOrderDataGenerator(cfg).Headers()[0])

	cfg.HeaderStyle = HeaderASCII
	assert.Equal(t, "MA_HANG", NewOrderDataGenerator(cfg).Headers()[2])

	cfg.HeaderStyle = HeaderCanonical
	assert.Equal(t, models.ColOrder, NewOrderDataGenerator(cfg).Headers()[1])
}

func TestWriteTemplate(t *testing.T) {
	path := filepath.Join(t.TempDir(), "MAU.xlsx")
	require.NoError(t, WriteTemplate(path))

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{"MAU"}, f.GetSheetList())
	v, err := f.GetCellValue("MAU", "B5")
	require.NoError(t, err)
	assert.Equal(t, "Đơn hàng", v)
}
