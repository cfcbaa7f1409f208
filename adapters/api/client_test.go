package api

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"burntest/internal/dashboard"
	"burntest/internal/errors"
	"burntest/ports"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestServer(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewClient(srv.URL+"/api", 0)
}

func TestClient_ListOrders(t *testing.T) {
	client := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/orders", r.URL.Path)
		_, _ = w.Write([]byte(`{"orders":["ORD1","ORD2"]}`))
	})

	orders, err := client.ListOrders(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"ORD1", "ORD2"}, orders)
}

func TestClient_MissingFieldsAreEmpty(t *testing.T) {
	client := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{}`))
	})

	orders, err := client.ListOrders(context.Background())
	require.NoError(t, err)
	assert.Empty(t, orders)

	chart, err := client.Chart(context.Background())
	require.NoError(t, err)
	assert.Empty(t, chart.Customers)
	assert.Empty(t, chart.OrderCounts)

	rows, err := client.OrderDetail(context.Background(), "ORD1")
	require.NoError(t, err)
	assert.Empty(t, rows)
}

func TestClient_Chart(t *testing.T) {
	client := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"chart_data":{"customers":["A","B"],"order_counts":[3,1]}}`))
	})

	chart, err := client.Chart(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"A", "B"}, chart.Customers)
	assert.Equal(t, []int{3, 1}, chart.OrderCounts)
}

func TestClient_OrderDetailKeepsKeyOrder(t *testing.T) {
	client := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/order/ORD 1", r.URL.Path)
		_, _ = w.Write([]byte(`{"data":[{"MÃ HÀNG":"P1","SL":2,"GHI CHÚ":null},{"SL":"5","MÃ HÀNG":"P2"}],"total_items":2}`))
	})

	rows, err := client.OrderDetail(context.Background(), "ORD 1")
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, []string{"MÃ HÀNG", "SL", "GHI CHÚ"}, rows[0].Keys())
	assert.Equal(t, "2", rows[0].Value("SL"))
	assert.Equal(t, []string{"SL", "MÃ HÀNG"}, rows[1].Keys())
}

func TestClient_NullCellKeepsColumn(t *testing.T) {
	client := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"data":[{"MÃ HÀNG":null,"SL":"1"},{"MÃ HÀNG":"P2","SL":"2"}],"total_items":2}`))
	})

	rows, err := client.OrderDetail(context.Background(), "ORD1")
	require.NoError(t, err)
	require.Len(t, rows, 2)

	value, present := rows[0].Get("MÃ HÀNG")
	assert.True(t, present)
	assert.Empty(t, value)
	assert.Equal(t, []string{"MÃ HÀNG", "SL"}, rows[0].Keys())

	c := dashboard.NewController(client, nil, dashboard.WithAfterFunc(func(time.Duration, func()) {}))
	c.LoadOrderDetail(context.Background(), "ORD1")

	detail := c.Snapshot().Detail
	require.True(t, detail.HasTable())
	assert.Equal(t, []string{"MÃ HÀNG", "SL"}, detail.Header)
	assert.Equal(t, [][]string{{"", "1"}, {"P2", "2"}}, detail.Rows)
}

func TestClient_StatusErrorIsTransportFailure(t *testing.T) {
	client := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	})

	_, err := client.ListOrders(context.Background())
	require.Error(t, err)
	assert.True(t, errors.HasCode(err, errors.CodeExternalService))
}

func TestClient_InvalidJSONIsTransportFailure(t *testing.T) {
	client := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`<html>`))
	})

	_, err := client.Chart(context.Background())
	assert.True(t, errors.HasCode(err, errors.CodeExternalService))
}

func TestClient_ImportSendsMultipartFile(t *testing.T) {
	client := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/import", r.URL.Path)

		file, header, err := r.FormFile("file")
		if !assert.NoError(t, err) {
			return
		}
		defer file.Close()
		content, _ := io.ReadAll(file)
		assert.Equal(t, "orders.xlsx", header.Filename)
		assert.Equal(t, "xlsx-bytes", string(content))

		_, _ = w.Write([]byte(`{"success":true,"message":"Import thành công: 3 dòng","total_rows":7}`))
	})

	result, err := client.Import(context.Background(), ports.Upload{
		Filename: "orders.xlsx",
		Content:  strings.NewReader("xlsx-bytes"),
	})
	require.NoError(t, err)
	assert.True(t, result.Success)
	assert.Equal(t, "Import thành công: 3 dòng", result.Message)
	assert.Equal(t, 7, result.TotalRows)
}

func TestClient_BusinessFailureIsNotAnError(t *testing.T) {
	client := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodDelete, r.Method)
		_, _ = w.Write([]byte(`{"success":false,"message":"Không tìm thấy đơn hàng"}`))
	})

	result, err := client.DeleteOrder(context.Background(), "ORD9")
	require.NoError(t, err)
	assert.False(t, result.Success)
	assert.Equal(t, "Không tìm thấy đơn hàng", result.Message)
}

func TestClient_ExportAndDownload(t *testing.T) {
	client := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/export/ORD1":
			_, _ = w.Write([]byte(`{"success":true,"message":"ok","file_url":"/api/download/ORD1_BAO_CAO.xlsx","sheets_created":2}`))
		case "/api/download/ORD1_BAO_CAO.xlsx":
			_, _ = w.Write([]byte("report"))
		default:
			http.NotFound(w, r)
		}
	})

	result, err := client.Export(context.Background(), "ORD1")
	require.NoError(t, err)
	assert.Equal(t, 2, result.SheetsCreated)

	var buf bytes.Buffer
	n, err := client.Download(context.Background(), result.FileURL, &buf)
	require.NoError(t, err)
	assert.Equal(t, int64(6), n)
	assert.Equal(t, "report", buf.String())
}

func TestClient_ResolveURLRejectsForeignHosts(t *testing.T) {
	client := NewClient("http://localhost:8000/api", 0)

	resolved, err := client.ResolveURL("/api/download/a.xlsx")
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:8000/api/download/a.xlsx", resolved)

	_, err = client.ResolveURL("http://example.com/a.xlsx")
	assert.True(t, errors.HasCode(err, errors.CodeInvalidInput))
}

func TestClient_ListReports(t *testing.T) {
	client := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"reports":[{"filename":"A_BAO_CAO.xlsx","order_no":"A","file_size":1024,"created_time":"2024-01-02 03:04:05"}]}`))
	})

	reports, err := client.ListReports(context.Background())
	require.NoError(t, err)
	require.Len(t, reports, 1)
	assert.Equal(t, "A", reports[0].OrderNo)
	assert.Equal(t, int64(1024), reports[0].FileSize)
}
