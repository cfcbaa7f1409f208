package api

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"strings"
	"time"

	"burntest/internal/errors"
	"burntest/models"
	"burntest/ports"

	"github.com/tidwall/gjson"
)

const serviceName = "order backend"

// Client talks to the order backend REST API
type Client struct {
	baseURL    string
	httpClient *http.Client
}

var _ ports.OrderAPI = (*Client)(nil)

// NewClient creates a client for the given base URL (for example http://localhost:8000/api).
// A zero timeout waits indefinitely.
func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// BaseURL returns the configured API root
func (c *Client) BaseURL() string {
	return c.baseURL
}

// ListOrders fetches GET /orders
func (c *Client) ListOrders(ctx context.Context) ([]string, error) {
	body, err := c.call(ctx, http.MethodGet, "/orders", nil, "")
	if err != nil {
		return nil, err
	}
	return stringArray(gjson.GetBytes(body, "orders")), nil
}

// Chart fetches GET /chart
func (c *Client) Chart(ctx context.Context) (models.ChartData, error) {
	body, err := c.call(ctx, http.MethodGet, "/chart", nil, "")
	if err != nil {
		return models.ChartData{}, err
	}

	data := gjson.GetBytes(body, "chart_data")
	chart := models.ChartData{
		Customers:   stringArray(data.Get("customers")),
		OrderCounts: []int{},
	}
	for _, v := range data.Get("order_counts").Array() {
		chart.OrderCounts = append(chart.OrderCounts, int(v.Int()))
	}
	return chart, nil
}

// OrderDetail fetches GET /order/{id}; rows keep the key order of the response
func (c *Client) OrderDetail(ctx context.Context, orderID string) ([]models.Row, error) {
	body, err := c.call(ctx, http.MethodGet, "/order/"+url.PathEscape(orderID), nil, "")
	if err != nil {
		return nil, err
	}

	rows := []models.Row{}
	gjson.GetBytes(body, "data").ForEach(func(_, item gjson.Result) bool {
		if item.IsObject() {
			rows = append(rows, rowFromJSON(item))
		}
		return true
	})
	return rows, nil
}

// ListReports fetches GET /reports
func (c *Client) ListReports(ctx context.Context) ([]models.Report, error) {
	body, err := c.call(ctx, http.MethodGet, "/reports", nil, "")
	if err != nil {
		return nil, err
	}

	reports := []models.Report{}
	for _, r := range gjson.GetBytes(body, "reports").Array() {
		reports = append(reports, models.Report{
			Filename:    r.Get("filename").String(),
			OrderNo:     r.Get("order_no").String(),
			FileSize:    r.Get("file_size").Int(),
			CreatedTime: r.Get("created_time").String(),
		})
	}
	return reports, nil
}

// Import posts a spreadsheet to POST /import
func (c *Client) Import(ctx context.Context, upload ports.Upload) (models.ImportResult, error) {
	body, err := c.upload(ctx, "/import", upload)
	if err != nil {
		return models.ImportResult{}, err
	}
	return models.ImportResult{
		ActionResult: actionResult(body),
		TotalRows:    int(gjson.GetBytes(body, "total_rows").Int()),
	}, nil
}

// DeleteOrder calls DELETE /order/{id}
func (c *Client) DeleteOrder(ctx context.Context, orderID string) (models.DeleteOrderResult, error) {
	body, err := c.call(ctx, http.MethodDelete, "/order/"+url.PathEscape(orderID), nil, "")
	if err != nil {
		return models.DeleteOrderResult{}, err
	}
	return models.DeleteOrderResult{
		ActionResult: actionResult(body),
		DeletedRows:  int(gjson.GetBytes(body, "deleted_rows").Int()),
	}, nil
}

// Export calls POST /export/{id}
func (c *Client) Export(ctx context.Context, orderID string) (models.ExportResult, error) {
	body, err := c.call(ctx, http.MethodPost, "/export/"+url.PathEscape(orderID), nil, "")
	if err != nil {
		return models.ExportResult{}, err
	}
	return models.ExportResult{
		ActionResult:  actionResult(body),
		FileURL:       gjson.GetBytes(body, "file_url").String(),
		DownloadURL:   gjson.GetBytes(body, "download_url").String(),
		SheetsCreated: int(gjson.GetBytes(body, "sheets_created").Int()),
	}, nil
}

// DeleteReport calls DELETE /reports/{filename}
func (c *Client) DeleteReport(ctx context.Context, filename string) (models.ActionResult, error) {
	body, err := c.call(ctx, http.MethodDelete, "/reports/"+url.PathEscape(filename), nil, "")
	if err != nil {
		return models.ActionResult{}, err
	}
	return actionResult(body), nil
}

// ClearReports calls DELETE /reports
func (c *Client) ClearReports(ctx context.Context) (models.ClearReportsResult, error) {
	body, err := c.call(ctx, http.MethodDelete, "/reports", nil, "")
	if err != nil {
		return models.ClearReportsResult{}, err
	}
	return models.ClearReportsResult{
		ActionResult: actionResult(body),
		DeletedCount: int(gjson.GetBytes(body, "deleted_count").Int()),
	}, nil
}

// UploadTemplate posts a new report template
func (c *Client) UploadTemplate(ctx context.Context, upload ports.Upload) (models.ActionResult, error) {
	body, err := c.upload(ctx, "/upload-template", upload)
	if err != nil {
		return models.ActionResult{}, err
	}
	return actionResult(body), nil
}

// UploadLogo posts a new report logo
func (c *Client) UploadLogo(ctx context.Context, upload ports.Upload) (models.ActionResult, error) {
	body, err := c.upload(ctx, "/upload-logo", upload)
	if err != nil {
		return models.ActionResult{}, err
	}
	return actionResult(body), nil
}

// ResolveURL turns a file URL returned by the backend into an absolute URL on the
// backend's origin. Absolute URLs pointing elsewhere are rejected.
func (c *Client) ResolveURL(fileURL string) (string, error) {
	base, err := url.Parse(c.baseURL)
	if err != nil {
		return "", errors.Wrap(err, "invalid backend URL")
	}
	ref, err := url.Parse(fileURL)
	if err != nil {
		return "", errors.InvalidInput(fmt.Sprintf("invalid file URL %q", fileURL))
	}
	resolved := base.ResolveReference(ref)
	if resolved.Host != base.Host || resolved.Scheme != base.Scheme {
		return "", errors.InvalidInput(fmt.Sprintf("file URL %q is not served by the backend", fileURL))
	}
	return resolved.String(), nil
}

// Download streams a file URL returned by the backend into w
func (c *Client) Download(ctx context.Context, fileURL string, w io.Writer) (int64, error) {
	target, err := c.ResolveURL(fileURL)
	if err != nil {
		return 0, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return 0, errors.Wrap(err, "failed to build request")
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return 0, errors.ExternalServiceError(serviceName, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusBadRequest {
		return 0, errors.ExternalServiceError(serviceName,
			fmt.Errorf("GET %s returned status %d", target, resp.StatusCode))
	}

	n, err := io.Copy(w, resp.Body)
	if err != nil {
		return n, errors.ExternalServiceError(serviceName, err)
	}
	return n, nil
}

func (c *Client) upload(ctx context.Context, path string, upload ports.Upload) ([]byte, error) {
	if upload.Content == nil {
		return nil, errors.InvalidInput("upload has no content")
	}

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	part, err := mw.CreateFormFile("file", upload.Filename)
	if err != nil {
		return nil, errors.Wrap(err, "failed to build multipart body")
	}
	if _, err := io.Copy(part, upload.Content); err != nil {
		return nil, errors.Wrap(err, "failed to read upload")
	}
	if err := mw.Close(); err != nil {
		return nil, errors.Wrap(err, "failed to build multipart body")
	}

	return c.call(ctx, http.MethodPost, path, &buf, mw.FormDataContentType())
}

// call performs one request and returns the body of a successful JSON response
func (c *Client) call(ctx context.Context, method, path string, body io.Reader, contentType string) ([]byte, error) {
	target := c.baseURL + path
	req, err := http.NewRequestWithContext(ctx, method, target, body)
	if err != nil {
		return nil, errors.Wrap(err, "failed to build request")
	}
	req.Header.Set("Accept", "application/json")
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, errors.ExternalServiceError(serviceName, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, errors.ExternalServiceError(serviceName, fmt.Errorf("failed to read response: %w", err))
	}

	if resp.StatusCode >= http.StatusBadRequest {
		return nil, errors.ExternalServiceError(serviceName,
			fmt.Errorf("%s %s returned status %d: %s", method, path, resp.StatusCode, truncate(data, 200)))
	}
	if !gjson.ValidBytes(data) {
		return nil, errors.ExternalServiceError(serviceName,
			fmt.Errorf("%s %s returned invalid JSON", method, path))
	}
	return data, nil
}

func actionResult(body []byte) models.ActionResult {
	return models.ActionResult{
		Success: gjson.GetBytes(body, "success").Bool(),
		Message: gjson.GetBytes(body, "message").String(),
	}
}

func stringArray(result gjson.Result) []string {
	out := []string{}
	for _, v := range result.Array() {
		out = append(out, v.String())
	}
	return out
}

// rowFromJSON walks the object in document order; a null value keeps its key with a blank cell
func rowFromJSON(obj gjson.Result) models.Row {
	var row models.Row
	obj.ForEach(func(key, value gjson.Result) bool {
		switch value.Type {
		case gjson.Null:
			row.Set(key.String(), "")
		case gjson.String:
			row.Set(key.String(), value.Str)
		default:
			row.Set(key.String(), value.Raw)
		}
		return true
	})
	return row
}

func truncate(b []byte, n int) string {
	if len(b) <= n {
		return string(b)
	}
	return string(b[:n]) + "..."
}
