package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func scrape(t *testing.T, m *Metrics) string {
	t.Helper()
	w := httptest.NewRecorder()
	m.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, w.Code)
	return w.Body.String()
}

func TestMiddleware_UsesRoutePattern(t *testing.T) {
	gin.SetMode(gin.TestMode)
	m := New()
	r := gin.New()
	r.Use(m.Middleware())
	r.GET("/api/order/:id", func(c *gin.Context) { c.Status(http.StatusOK) })

	for _, id := range []string{"A", "B"} {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/order/"+id, nil))
		require.Equal(t, http.StatusOK, w.Code)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/nope", nil))

	body := scrape(t, m)
	assert.Contains(t, body, `orders_http_requests_total{method="GET",route="/api/order/:id",status="200"} 2`)
	assert.Contains(t, body, `orders_http_requests_total{method="GET",route="unmatched",status="404"} 1`)
	assert.Contains(t, body, "orders_http_request_duration_seconds_bucket")
}

func TestRecordImportAndExport(t *testing.T) {
	m := New()
	m.RecordImport(true, 12)
	m.RecordImport(false, 0)
	m.RecordExport(true, 3)

	body := scrape(t, m)
	assert.Contains(t, body, `orders_imports_total{outcome="success"} 1`)
	assert.Contains(t, body, `orders_imports_total{outcome="failure"} 1`)
	assert.Contains(t, body, "orders_imported_lines_total 12")
	assert.Contains(t, body, `orders_exports_total{outcome="success"} 1`)
	assert.Contains(t, body, "orders_exported_sheets_total 3")
	assert.Contains(t, body, "go_goroutines")
}

func TestNilMetricsIsNoop(t *testing.T) {
	var m *Metrics
	assert.NotPanics(t, func() {
		m.RecordImport(true, 1)
		m.RecordExport(false, 0)
	})
}
