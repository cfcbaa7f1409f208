package dashboard

import (
	"context"
	"sync"
	"time"

	"burntest/models"
	"burntest/ports"

	"github.com/stretchr/testify/mock"
)

type mockAPI struct {
	mock.Mock
}

func (m *mockAPI) ListOrders(ctx context.Context) ([]string, error) {
	args := m.Called(ctx)
	orders, _ := args.Get(0).([]string)
	return orders, args.Error(1)
}

func (m *mockAPI) Chart(ctx context.Context) (models.ChartData, error) {
	args := m.Called(ctx)
	return args.Get(0).(models.ChartData), args.Error(1)
}

func (m *mockAPI) OrderDetail(ctx context.Context, orderID string) ([]models.Row, error) {
	args := m.Called(ctx, orderID)
	rows, _ := args.Get(0).([]models.Row)
	return rows, args.Error(1)
}

func (m *mockAPI) ListReports(ctx context.Context) ([]models.Report, error) {
	args := m.Called(ctx)
	reports, _ := args.Get(0).([]models.Report)
	return reports, args.Error(1)
}

func (m *mockAPI) Import(ctx context.Context, upload ports.Upload) (models.ImportResult, error) {
	args := m.Called(ctx, upload)
	return args.Get(0).(models.ImportResult), args.Error(1)
}

func (m *mockAPI) DeleteOrder(ctx context.Context, orderID string) (models.DeleteOrderResult, error) {
	args := m.Called(ctx, orderID)
	return args.Get(0).(models.DeleteOrderResult), args.Error(1)
}

func (m *mockAPI) Export(ctx context.Context, orderID string) (models.ExportResult, error) {
	args := m.Called(ctx, orderID)
	return args.Get(0).(models.ExportResult), args.Error(1)
}

func (m *mockAPI) DeleteReport(ctx context.Context, filename string) (models.ActionResult, error) {
	args := m.Called(ctx, filename)
	return args.Get(0).(models.ActionResult), args.Error(1)
}

func (m *mockAPI) ClearReports(ctx context.Context) (models.ClearReportsResult, error) {
	args := m.Called(ctx)
	return args.Get(0).(models.ClearReportsResult), args.Error(1)
}

func (m *mockAPI) UploadTemplate(ctx context.Context, upload ports.Upload) (models.ActionResult, error) {
	args := m.Called(ctx, upload)
	return args.Get(0).(models.ActionResult), args.Error(1)
}

func (m *mockAPI) UploadLogo(ctx context.Context, upload ports.Upload) (models.ActionResult, error) {
	args := m.Called(ctx, upload)
	return args.Get(0).(models.ActionResult), args.Error(1)
}

// fakeTimers captures scheduled alert removals so tests can fire them
type fakeTimers struct {
	mu     sync.Mutex
	delays []time.Duration
	funcs  []func()
}

func (f *fakeTimers) AfterFunc(d time.Duration, fn func()) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.delays = append(f.delays, d)
	f.funcs = append(f.funcs, fn)
}

func (f *fakeTimers) FireAll() {
	f.mu.Lock()
	funcs := append([]func(){}, f.funcs...)
	f.mu.Unlock()
	for _, fn := range funcs {
		fn()
	}
}

func newTestController(api *mockAPI, opts ...ControllerOption) (*Controller, *fakeTimers) {
	timers := &fakeTimers{}
	opts = append([]ControllerOption{WithAfterFunc(timers.AfterFunc)}, opts...)
	return NewController(api, nil, opts...), timers
}

func confirmWith(answer bool) (ports.Confirmer, *[]string) {
	var prompts []string
	return ports.ConfirmFunc(func(_ context.Context, prompt string) bool {
		prompts = append(prompts, prompt)
		return answer
	}), &prompts
}
