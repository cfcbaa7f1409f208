package postgres

import (
	"context"
	"database/sql"
	"regexp"
	"testing"

	"burntest/internal/errors"
	"burntest/models"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupMockDB(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return sqlx.NewDb(db, "postgres"), mock
}

func TestOrderRepository_Upsert(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewOrderRepository(db)

	line := models.NewRow(models.ColCustomer, "An", models.ColOrder, "ORD1", models.ColProductCode, "P1")

	mock.ExpectBegin()
	prep := mock.ExpectPrepare(regexp.QuoteMeta(`INSERT INTO order_lines`))
	prep.ExpectExec().
		WithArgs("ORD1", "P1", "An", `{"KHÁCH HÀNG":"An","ĐƠN HÀNG":"ORD1","MÃ HÀNG":"P1"}`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT COUNT(*) FROM order_lines`)).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(4))
	mock.ExpectCommit()

	total, err := repo.Upsert(context.Background(), []models.Row{line})
	require.NoError(t, err)
	assert.Equal(t, 4, total)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestOrderRepository_UpsertRollsBackOnError(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewOrderRepository(db)

	mock.ExpectBegin()
	prep := mock.ExpectPrepare(regexp.QuoteMeta(`INSERT INTO order_lines`))
	prep.ExpectExec().WillReturnError(sql.ErrConnDone)
	mock.ExpectRollback()

	_, err := repo.Upsert(context.Background(), []models.Row{models.NewRow(models.ColOrder, "ORD1")})
	require.Error(t, err)
	assert.True(t, errors.HasCode(err, errors.CodeStorageError))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestOrderRepository_OrderIDs(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewOrderRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT DISTINCT order_no FROM order_lines`)).
		WillReturnRows(sqlmock.NewRows([]string{"order_no"}).AddRow("ORD1").AddRow("ORD2"))

	ids, err := repo.OrderIDs(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"ORD1", "ORD2"}, ids)
}

func TestOrderRepository_LinesKeepKeyOrder(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewOrderRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT data::text FROM order_lines WHERE order_no = $1 ORDER BY seq`)).
		WithArgs("ORD1").
		WillReturnRows(sqlmock.NewRows([]string{"data"}).
			AddRow(`{"MÃ HÀNG":"P1","ĐƠN HÀNG":"ORD1"}`).
			AddRow(`{"ĐƠN HÀNG":"ORD1","MÃ HÀNG":"P2","MÀU":"Đỏ"}`))

	lines, err := repo.Lines(context.Background(), "ORD1")
	require.NoError(t, err)
	require.Len(t, lines, 2)
	assert.Equal(t, []string{"MÃ HÀNG", "ĐƠN HÀNG"}, lines[0].Keys())
	assert.Equal(t, "Đỏ", lines[1].Value(models.ColColor))
}

func TestOrderRepository_DeleteOrder(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewOrderRepository(db)

	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM order_lines WHERE order_no = $1`)).
		WithArgs("ORD1").
		WillReturnResult(sqlmock.NewResult(0, 3))

	removed, err := repo.DeleteOrder(context.Background(), "ORD1")
	require.NoError(t, err)
	assert.Equal(t, 3, removed)
}

func TestOrderRepository_CustomerOrderCounts(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewOrderRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT customer, COUNT(DISTINCT order_no) AS orders`)).
		WillReturnRows(sqlmock.NewRows([]string{"customer", "orders"}).AddRow("An", 3).AddRow("Bình", 1))

	counts, err := repo.CustomerOrderCounts(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []models.CustomerCount{{Customer: "An", Orders: 3}, {Customer: "Bình", Orders: 1}}, counts)
}

func TestOrderRepository_QueryFailureIsStorageError(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewOrderRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT DISTINCT order_no`)).WillReturnError(sql.ErrConnDone)

	_, err := repo.OrderIDs(context.Background())
	assert.True(t, errors.HasCode(err, errors.CodeStorageError))
}
