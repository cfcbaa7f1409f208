package excel

import (
	"context"
	"path/filepath"
	"sort"
	"testing"

	"burntest/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *FileStore {
	t.Helper()
	store, err := NewFileStore(filepath.Join(t.TempDir(), "data", "data.xlsx"), nil)
	require.NoError(t, err)
	return store
}

func line(customer, order, code string, extra ...string) models.Row {
	row := models.NewRow(models.ColCustomer, customer, models.ColOrder, order, models.ColProductCode, code)
	for i := 0; i+1 < len(extra); i += 2 {
		row.Set(extra[i], extra[i+1])
	}
	return row
}

func TestFileStore_CreatesEmptyTable(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	ids, err := store.OrderIDs(ctx)
	require.NoError(t, err)
	assert.Empty(t, ids)

	counts, err := store.CustomerOrderCounts(ctx)
	require.NoError(t, err)
	assert.Empty(t, counts)
}

func TestFileStore_UpsertKeepsLastPerKey(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	total, err := store.Upsert(ctx, []models.Row{
		line("An", "ORD2", "P1", models.ColColor, "Đỏ"),
		line("An", "ORD2", "P2"),
		line("Bình", "ORD1", "P1"),
	})
	require.NoError(t, err)
	assert.Equal(t, 3, total)

	total, err = store.Upsert(ctx, []models.Row{
		line("An", "ORD2", "P1", models.ColColor, "Xanh", "GHI CHÚ", "mới"),
	})
	require.NoError(t, err)
	assert.Equal(t, 3, total)

	ids, err := store.OrderIDs(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"ORD1", "ORD2"}, ids)

	lines, err := store.Lines(ctx, "ORD2")
	require.NoError(t, err)
	require.Len(t, lines, 2)
	assert.Equal(t, "P2", lines[0].Value(models.ColProductCode))
	assert.Equal(t, "Xanh", lines[1].Value(models.ColColor))
	assert.Equal(t, "mới", lines[1].Value("GHI CHÚ"))

	keys := lines[0].Keys()
	assert.Equal(t, models.CanonicalColumns, keys[:len(models.CanonicalColumns)])
	assert.Equal(t, "GHI CHÚ", keys[len(keys)-1])
	assert.Equal(t, "", lines[0].Value("GHI CHÚ"))
}

func TestFileStore_DeleteOrder(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	_, err := store.Upsert(ctx, []models.Row{line("An", "ORD1", "P1"), line("An", "ORD1", "P2"), line("An", "ORD2", "P1")})
	require.NoError(t, err)

	removed, err := store.DeleteOrder(ctx, "ORD1")
	require.NoError(t, err)
	assert.Equal(t, 2, removed)

	removed, err = store.DeleteOrder(ctx, "ORD1")
	require.NoError(t, err)
	assert.Zero(t, removed)

	ids, err := store.OrderIDs(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"ORD2"}, ids)
}

func TestFileStore_CustomerOrderCounts(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	_, err := store.Upsert(ctx, []models.Row{
		line("An", "ORD1", "P1"),
		line("An", "ORD1", "P2"),
		line("An", "ORD2", "P1"),
		line("Bình", "ORD3", "P1"),
		line("", "ORD4", "P1"),
	})
	require.NoError(t, err)

	counts, err := store.CustomerOrderCounts(ctx)
	require.NoError(t, err)
	sort.Slice(counts, func(i, j int) bool { return counts[i].Customer < counts[j].Customer })
	assert.Equal(t, []models.CustomerCount{{Customer: "An", Orders: 2}, {Customer: "Bình", Orders: 1}}, counts)
}

func TestFileStore_ReopenKeepsData(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data.xlsx")
	store, err := NewFileStore(path, nil)
	require.NoError(t, err)
	_, err = store.Upsert(context.Background(), []models.Row{line("An", "ORD1", "P1")})
	require.NoError(t, err)

	reopened, err := NewFileStore(path, nil)
	require.NoError(t, err)
	ids, err := reopened.OrderIDs(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"ORD1"}, ids)
}
