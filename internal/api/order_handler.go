package api

import (
	"io"
	"mime/multipart"
	"net/http"
	"net/url"

	"burntest/internal/errors"
	"burntest/internal/metrics"
	"burntest/internal/orders"
	"burntest/models"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const (
	xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	msgFileMissing  = "File không tồn tại"
	msgNoUpload     = "Thiếu file tải lên"
)

// OrderHandler serves the order backend over HTTP
type OrderHandler struct {
	svc     *orders.Service
	metrics *metrics.Metrics
	logger  *zap.Logger
}

// NewOrderHandler creates a new order handler
func NewOrderHandler(svc *orders.Service, m *metrics.Metrics, logger *zap.Logger) *OrderHandler {
	return &OrderHandler{svc: svc, metrics: m, logger: logger.Named("api")}
}

// RegisterRoutes mounts the endpoints on g, usually the /api group
func (h *OrderHandler) RegisterRoutes(g *gin.RouterGroup) {
	g.GET("/orders", h.listOrders)
	g.GET("/chart", h.chart)
	g.GET("/order/:id", h.orderDetail)
	g.DELETE("/order/:id", h.deleteOrder)
	g.POST("/import", h.importData)
	g.POST("/export/:id", h.export)
	g.POST("/export-template/:id", h.export)
	g.GET("/reports", h.listReports)
	g.DELETE("/reports", h.clearReports)
	g.DELETE("/reports/:filename", h.deleteReport)
	g.GET("/download/:filename", h.download)
	g.POST("/upload-template", h.uploadTemplate)
	g.POST("/upload-logo", h.uploadLogo)
}

func (h *OrderHandler) listOrders(c *gin.Context) {
	ids, err := h.svc.Orders(c.Request.Context())
	if err != nil {
		h.internalError(c, "list orders", err)
		return
	}
	c.JSON(http.StatusOK, models.OrdersResponse{Orders: ids})
}

func (h *OrderHandler) chart(c *gin.Context) {
	data, err := h.svc.Chart(c.Request.Context())
	if err != nil {
		h.internalError(c, "chart", err)
		return
	}
	c.JSON(http.StatusOK, models.ChartResponse{ChartData: data})
}

func (h *OrderHandler) orderDetail(c *gin.Context) {
	rows, err := h.svc.OrderDetail(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.internalError(c, "order detail", err)
		return
	}
	if rows == nil {
		rows = []models.Row{}
	}
	c.JSON(http.StatusOK, models.OrderDetailResponse{Data: rows, TotalItems: len(rows)})
}

func (h *OrderHandler) deleteOrder(c *gin.Context) {
	result, err := h.svc.DeleteOrder(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.internalError(c, "delete order", err)
		return
	}
	c.JSON(http.StatusOK, result)
}

func (h *OrderHandler) importData(c *gin.Context) {
	file, content, ok := h.formFile(c)
	if !ok {
		return
	}
	defer content.Close()

	result := h.svc.Import(c.Request.Context(), file.Filename, content)
	h.metrics.RecordImport(result.Success, result.TotalRows)
	c.JSON(http.StatusOK, result)
}

func (h *OrderHandler) export(c *gin.Context) {
	result := h.svc.Export(c.Request.Context(), c.Param("id"))
	h.metrics.RecordExport(result.Success, result.SheetsCreated)
	c.JSON(http.StatusOK, result)
}

func (h *OrderHandler) listReports(c *gin.Context) {
	reports, err := h.svc.Reports(c.Request.Context())
	if err != nil {
		h.internalError(c, "list reports", err)
		return
	}
	c.JSON(http.StatusOK, models.ReportsResponse{Reports: reports})
}

func (h *OrderHandler) deleteReport(c *gin.Context) {
	c.JSON(http.StatusOK, h.svc.DeleteReport(c.Request.Context(), c.Param("filename")))
}

func (h *OrderHandler) clearReports(c *gin.Context) {
	c.JSON(http.StatusOK, h.svc.ClearReports(c.Request.Context()))
}

func (h *OrderHandler) download(c *gin.Context) {
	filename := c.Param("filename")
	content, err := h.svc.OpenReport(c.Request.Context(), filename)
	if err != nil {
		if errors.HasCode(err, errors.CodeNotFound) || errors.HasCode(err, errors.CodeInvalidInput) {
			c.JSON(http.StatusNotFound, gin.H{"detail": msgFileMissing})
			return
		}
		h.internalError(c, "download", err)
		return
	}
	defer content.Close()

	c.DataFromReader(http.StatusOK, -1, xlsxContentType, content, map[string]string{
		"Content-Disposition": "attachment; filename*=UTF-8''" + url.PathEscape(filename),
	})
}

func (h *OrderHandler) uploadTemplate(c *gin.Context) {
	file, content, ok := h.formFile(c)
	if !ok {
		return
	}
	defer content.Close()
	c.JSON(http.StatusOK, h.svc.UploadTemplate(c.Request.Context(), file.Filename, content))
}

func (h *OrderHandler) uploadLogo(c *gin.Context) {
	file, content, ok := h.formFile(c)
	if !ok {
		return
	}
	defer content.Close()
	c.JSON(http.StatusOK, h.svc.UploadLogo(c.Request.Context(), file.Filename, content))
}

// formFile opens the multipart "file" field, answering 400 when it is absent
func (h *OrderHandler) formFile(c *gin.Context) (*multipart.FileHeader, io.ReadCloser, bool) {
	file, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, models.Failure(msgNoUpload))
		return nil, nil, false
	}
	content, err := file.Open()
	if err != nil {
		h.logger.Error("failed to open upload", zap.String("filename", file.Filename), zap.Error(err))
		c.JSON(http.StatusBadRequest, models.Failure(msgNoUpload))
		return nil, nil, false
	}
	return file, content, true
}

func (h *OrderHandler) internalError(c *gin.Context, op string, err error) {
	h.logger.Error("request failed", zap.String("operation", op), zap.String("code", errors.GetCode(err)), zap.Error(err))
	c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
}
