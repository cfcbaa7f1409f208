package dashboard

import (
	"context"
	"fmt"
	"sync"
	"time"

	"burntest/models"
	"burntest/ports"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// Controller owns the dashboard state of one page and talks to the backend.
// Backend calls run without holding the state lock; results are applied under it.
type Controller struct {
	api    ports.OrderAPI
	logger *zap.Logger

	mu          sync.Mutex
	state       State
	nextAlertID int64
	containers  map[string]bool

	confirmer ports.Confirmer
	afterFunc AfterFunc
	now       func() time.Time
}

// ControllerOption customises a Controller
type ControllerOption func(*Controller)

// WithAfterFunc replaces the timer used to expire alerts
func WithAfterFunc(f AfterFunc) ControllerOption {
	return func(c *Controller) { c.afterFunc = f }
}

// WithClock replaces the clock used to stamp alert expiry
func WithClock(now func() time.Time) ControllerOption {
	return func(c *Controller) { c.now = now }
}

// WithContainers declares which alert containers exist on the page
func WithContainers(ids ...string) ControllerOption {
	return func(c *Controller) {
		c.containers = make(map[string]bool, len(ids))
		for _, id := range ids {
			c.containers[id] = true
		}
	}
}

// WithConfirmer sets the confirmer used by Dispatch for destructive actions.
// Without one, Dispatch parks the action in State.PendingConfirm until ActionConfirm arrives.
func WithConfirmer(confirmer ports.Confirmer) ControllerOption {
	return func(c *Controller) { c.confirmer = confirmer }
}

// NewController creates a controller showing the dashboard section
func NewController(api ports.OrderAPI, logger *zap.Logger, opts ...ControllerOption) *Controller {
	if logger == nil {
		logger = zap.NewNop()
	}
	c := &Controller{
		api:       api,
		logger:    logger.Named("dashboard"),
		state:     State{Section: SectionDashboard},
		afterFunc: timeAfterFunc,
		now:       time.Now,
	}
	WithContainers(containerOrder...)(c)
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Snapshot returns a copy of the current state for rendering
func (c *Controller) Snapshot() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state.clone()
}

// TakeDownload returns the pending download URL once and clears it
func (c *Controller) TakeDownload() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	url := c.state.PendingDownload
	c.state.PendingDownload = ""
	return url
}

func (c *Controller) update(fn func(s *State)) {
	c.mu.Lock()
	defer c.mu.Unlock()
	fn(&c.state)
}

// fail logs a transport or unexpected error and shows the operation's fixed message
func (c *Controller) fail(operation string, err error, message string) {
	c.logger.Error("dashboard operation failed",
		zap.String("operation", operation),
		zap.Error(err),
	)
	c.ShowAlert(message, AlertDanger)
}

// reportResult shows a backend outcome: the message prefixed with a check mark or a cross
func (c *Controller) reportResult(result models.ActionResult) {
	if result.Success {
		c.ShowAlert(successPrefix+result.Message, AlertSuccess)
		return
	}
	c.ShowAlert(failurePrefix+result.Message, AlertDanger)
}

// Init loads everything the page shows on first display
func (c *Controller) Init(ctx context.Context) {
	c.LoadDashboard(ctx)
	c.LoadOrders(ctx)
	c.LoadExportOrders(ctx)
}

// SwitchSection shows one panel and loads the data it needs
func (c *Controller) SwitchSection(ctx context.Context, name string) {
	section, ok := ParseSection(name)
	if !ok {
		c.logger.Warn("unknown section requested", zap.String("section", name))
		return
	}
	c.update(func(s *State) { s.Section = section })

	switch section {
	case SectionDashboard:
		c.LoadDashboard(ctx)
	case SectionOrders:
		c.LoadOrders(ctx)
	case SectionReports:
		c.LoadExportOrders(ctx)
		c.LoadReports(ctx)
	}
}

// LoadDashboard refreshes the counters and the chart
func (c *Controller) LoadDashboard(ctx context.Context) {
	var (
		orders []string
		chart  models.ChartData
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		orders, err = c.api.ListOrders(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		chart, err = c.api.Chart(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		c.fail("load dashboard", err, MsgLoadDashboardFailed)
		return
	}

	c.update(func(s *State) {
		s.Stats.TotalOrders = len(orders)
		s.Stats.TotalCustomers = len(chart.Customers)
	})

	products, rows := 0, 0
	if len(orders) > 0 {
		detail, err := c.api.OrderDetail(ctx, orders[0])
		if err != nil {
			c.fail("load dashboard", err, MsgLoadDashboardFailed)
			return
		}
		products = models.DistinctProductCodes(detail)
		rows = len(detail)
	}

	c.update(func(s *State) {
		s.Stats.TotalProducts = products
		s.Stats.TotalRows = rows
		if len(chart.Customers) > 0 {
			view := RenderChart(chart.Customers, chart.OrderCounts)
			s.Chart = &view
			s.ChartPlaceholder = ""
		} else {
			s.Chart = nil
			s.ChartPlaceholder = MsgNoChartData
		}
	})
}

// ImportData sends a spreadsheet to the backend; a nil upload means no file was picked
func (c *Controller) ImportData(ctx context.Context, upload *ports.Upload) {
	if upload == nil || upload.Content == nil {
		c.ShowAlert(MsgChooseExcelFile, AlertWarning)
		return
	}
	c.update(func(s *State) { s.FileInput = upload.Filename })

	result, err := c.api.Import(ctx, *upload)
	if err != nil {
		c.fail("import data", err, MsgImportFailed)
		return
	}

	c.reportResult(result.ActionResult)
	if result.Success {
		c.update(func(s *State) { s.FileInput = "" })
		c.LoadDashboard(ctx)
	}
}

// LoadOrders fills the detail select list
func (c *Controller) LoadOrders(ctx context.Context) {
	orders, err := c.api.ListOrders(ctx)
	if err != nil {
		c.fail("load orders", err, MsgLoadOrdersFailed)
		return
	}
	c.update(func(s *State) { s.OrderOptions = selectOptions(orders) })
}

// LoadOrderDetail shows the lines of one order; an empty id does nothing
func (c *Controller) LoadOrderDetail(ctx context.Context, orderID string) {
	c.update(func(s *State) { s.SelectedOrder = orderID })
	if orderID == "" {
		return
	}

	rows, err := c.api.OrderDetail(ctx, orderID)
	if err != nil {
		c.fail("load order detail", err, MsgLoadDetailFailed)
		return
	}
	detail := buildDetail(orderID, rows)
	c.update(func(s *State) { s.Detail = detail })
}

// DeleteOrder removes an order after the confirmer accepts
func (c *Controller) DeleteOrder(ctx context.Context, orderID string, confirmer ports.Confirmer) {
	if !confirmer.Confirm(ctx, fmt.Sprintf(MsgConfirmDeleteOrder, orderID)) {
		return
	}

	result, err := c.api.DeleteOrder(ctx, orderID)
	if err != nil {
		c.fail("delete order", err, MsgDeleteOrderFailed)
		return
	}
	if !result.Success {
		c.reportResult(result.ActionResult)
		return
	}

	c.ShowAlert(MsgOrderDeleted, AlertSuccess)
	c.LoadOrders(ctx)
	c.update(func(s *State) {
		s.Detail = nil
		if s.SelectedOrder == orderID {
			s.SelectedOrder = ""
		}
	})
	c.LoadDashboard(ctx)
}

// LoadExportOrders fills the export select list. Failures are only logged.
func (c *Controller) LoadExportOrders(ctx context.Context) {
	orders, err := c.api.ListOrders(ctx)
	if err != nil {
		c.logger.Error("dashboard operation failed",
			zap.String("operation", "load export orders"),
			zap.Error(err),
		)
		return
	}
	c.update(func(s *State) { s.ExportOptions = selectOptions(orders) })
}

// ExportReport asks the backend for a report and queues its download
func (c *Controller) ExportReport(ctx context.Context, orderID string) {
	c.update(func(s *State) { s.SelectedExport = orderID })
	if orderID == "" {
		c.ShowAlert(MsgChooseOrder, AlertWarning)
		return
	}

	result, err := c.api.Export(ctx, orderID)
	if err != nil {
		c.fail("export report", err, MsgExportFailed)
		return
	}

	c.reportResult(result.ActionResult)
	if result.Success {
		fileURL := result.FileURL
		if fileURL == "" {
			fileURL = result.DownloadURL
		}
		c.update(func(s *State) { s.PendingDownload = fileURL })
	}
}

// Refresh reloads the dashboard and says so
func (c *Controller) Refresh(ctx context.Context) {
	c.LoadDashboard(ctx)
	c.ShowAlert(MsgRefreshed, AlertInfo)
}

// LoadReports fetches the report archive listing
func (c *Controller) LoadReports(ctx context.Context) {
	reports, err := c.api.ListReports(ctx)
	if err != nil {
		c.fail("load reports", err, MsgLoadReportsFailed)
		return
	}
	c.update(func(s *State) { s.Reports = reports })
}

// DeleteReport removes one archived report after confirmation
func (c *Controller) DeleteReport(ctx context.Context, filename string, confirmer ports.Confirmer) {
	if filename == "" {
		return
	}
	if !confirmer.Confirm(ctx, fmt.Sprintf(MsgConfirmDeleteReport, filename)) {
		return
	}

	result, err := c.api.DeleteReport(ctx, filename)
	if err != nil {
		c.fail("delete report", err, MsgDeleteReportFailed)
		return
	}
	c.reportResult(result)
	if result.Success {
		c.LoadReports(ctx)
	}
}

// ClearReports removes the whole archive after confirmation
func (c *Controller) ClearReports(ctx context.Context, confirmer ports.Confirmer) {
	if !confirmer.Confirm(ctx, MsgConfirmClearReports) {
		return
	}

	result, err := c.api.ClearReports(ctx)
	if err != nil {
		c.fail("clear reports", err, MsgDeleteReportFailed)
		return
	}
	c.reportResult(result.ActionResult)
	if result.Success {
		c.LoadReports(ctx)
	}
}

// UploadTemplate replaces the report template
func (c *Controller) UploadTemplate(ctx context.Context, upload *ports.Upload) {
	if upload == nil || upload.Content == nil {
		c.ShowAlert(MsgChooseTemplateFile, AlertWarning)
		return
	}
	result, err := c.api.UploadTemplate(ctx, *upload)
	if err != nil {
		c.fail("upload template", err, MsgUploadTemplateFail)
		return
	}
	c.reportResult(result)
}

// UploadLogo replaces the report logo
func (c *Controller) UploadLogo(ctx context.Context, upload *ports.Upload) {
	if upload == nil || upload.Content == nil {
		c.ShowAlert(MsgChooseLogoFile, AlertWarning)
		return
	}
	result, err := c.api.UploadLogo(ctx, *upload)
	if err != nil {
		c.fail("upload logo", err, MsgUploadLogoFailed)
		return
	}
	c.reportResult(result)
}
