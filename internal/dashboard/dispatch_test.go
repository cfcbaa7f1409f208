package dashboard

import (
	"context"
	"testing"

	"burntest/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestDispatch_UnknownAction(t *testing.T) {
	c, _ := newTestController(&mockAPI{})
	assert.Error(t, c.Dispatch(context.Background(), Action{Kind: "explode"}))
}

func TestDispatch_EveryKindIsBound(t *testing.T) {
	kinds := []ActionKind{
		ActionInit, ActionSwitchSection, ActionRefresh, ActionImport, ActionLoadOrders,
		ActionSelectOrder, ActionDeleteOrder, ActionLoadExportOrders, ActionExport,
		ActionLoadReports, ActionDeleteReport, ActionClearReports, ActionUploadTemplate,
		ActionUploadLogo, ActionDismissAlert, ActionConfirm,
	}
	for _, kind := range kinds {
		_, ok := handlers[kind]
		assert.True(t, ok, "no handler for %s", kind)
	}
}

func TestDispatch_DeleteWaitsForConfirmation(t *testing.T) {
	api := &mockAPI{}
	api.On("DeleteOrder", mock.Anything, "ORD1").Return(models.DeleteOrderResult{ActionResult: models.Success("ok")}, nil)
	expectDashboard(api, []string{}, models.ChartData{}, nil)
	c, _ := newTestController(api)
	ctx := context.Background()

	require.NoError(t, c.Dispatch(ctx, Action{Kind: ActionDeleteOrder, OrderID: "ORD1"}))

	pending := c.Snapshot().PendingConfirm
	require.NotNil(t, pending)
	assert.Equal(t, `Bạn có chắc muốn xóa đơn hàng "ORD1"?`, pending.Prompt)
	api.AssertNotCalled(t, "DeleteOrder", mock.Anything, mock.Anything)

	require.NoError(t, c.Dispatch(ctx, Action{Kind: ActionConfirm, Confirmed: true}))

	assert.Nil(t, c.Snapshot().PendingConfirm)
	api.AssertCalled(t, "DeleteOrder", mock.Anything, "ORD1")
}

func TestDispatch_DeclinedConfirmationDropsAction(t *testing.T) {
	api := &mockAPI{}
	c, _ := newTestController(api)
	ctx := context.Background()

	require.NoError(t, c.Dispatch(ctx, Action{Kind: ActionClearReports}))
	require.NotNil(t, c.Snapshot().PendingConfirm)

	require.NoError(t, c.Dispatch(ctx, Action{Kind: ActionConfirm, Confirmed: false}))

	assert.Nil(t, c.Snapshot().PendingConfirm)
	api.AssertNotCalled(t, "ClearReports", mock.Anything)
}

func TestDispatch_ConfiguredConfirmerRunsImmediately(t *testing.T) {
	api := &mockAPI{}
	api.On("DeleteReport", mock.Anything, "a.xlsx").Return(models.Failure("Không thể xóa báo cáo"), nil)
	confirmer, prompts := confirmWith(true)
	c, _ := newTestController(api, WithConfirmer(confirmer))

	require.NoError(t, c.Dispatch(context.Background(), Action{Kind: ActionDeleteReport, Filename: "a.xlsx"}))

	assert.Len(t, *prompts, 1)
	assert.Nil(t, c.Snapshot().PendingConfirm)
	assert.Equal(t, "❌ Không thể xóa báo cáo", c.Snapshot().Alerts[0].Message)
}

func TestDispatch_DismissAlert(t *testing.T) {
	c, _ := newTestController(&mockAPI{})
	id := c.ShowAlert("x", AlertInfo)

	require.NoError(t, c.Dispatch(context.Background(), Action{Kind: ActionDismissAlert, AlertID: id}))
	assert.Empty(t, c.Snapshot().Alerts)
}
