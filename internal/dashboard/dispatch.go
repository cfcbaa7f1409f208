package dashboard

import (
	"context"
	"fmt"

	"burntest/ports"
)

// ActionKind names a user action on the page
type ActionKind string

const (
	ActionInit             ActionKind = "init"
	ActionSwitchSection    ActionKind = "switch-section"
	ActionRefresh          ActionKind = "refresh"
	ActionImport           ActionKind = "import"
	ActionLoadOrders       ActionKind = "load-orders"
	ActionSelectOrder      ActionKind = "select-order"
	ActionDeleteOrder      ActionKind = "delete-order"
	ActionLoadExportOrders ActionKind = "load-export-orders"
	ActionExport           ActionKind = "export"
	ActionLoadReports      ActionKind = "load-reports"
	ActionDeleteReport     ActionKind = "delete-report"
	ActionClearReports     ActionKind = "clear-reports"
	ActionUploadTemplate   ActionKind = "upload-template"
	ActionUploadLogo       ActionKind = "upload-logo"
	ActionDismissAlert     ActionKind = "dismiss-alert"
	ActionConfirm          ActionKind = "confirm"
)

// Action is one validated user input. Only the fields the kind needs are read.
type Action struct {
	Kind      ActionKind
	Section   string
	OrderID   string
	Filename  string
	Upload    *ports.Upload
	AlertID   int64
	Confirmed bool
}

type handler func(c *Controller, ctx context.Context, a Action)

var handlers = map[ActionKind]handler{
	ActionInit: func(c *Controller, ctx context.Context, _ Action) { c.Init(ctx) },
	ActionSwitchSection: func(c *Controller, ctx context.Context, a Action) {
		c.SwitchSection(ctx, a.Section)
	},
	ActionRefresh:    func(c *Controller, ctx context.Context, _ Action) { c.Refresh(ctx) },
	ActionImport:     func(c *Controller, ctx context.Context, a Action) { c.ImportData(ctx, a.Upload) },
	ActionLoadOrders: func(c *Controller, ctx context.Context, _ Action) { c.LoadOrders(ctx) },
	ActionSelectOrder: func(c *Controller, ctx context.Context, a Action) {
		c.LoadOrderDetail(ctx, a.OrderID)
	},
	ActionDeleteOrder: func(c *Controller, ctx context.Context, a Action) {
		if a.OrderID == "" {
			return
		}
		c.DeleteOrder(ctx, a.OrderID, c.confirmerFor(a))
	},
	ActionLoadExportOrders: func(c *Controller, ctx context.Context, _ Action) { c.LoadExportOrders(ctx) },
	ActionExport:           func(c *Controller, ctx context.Context, a Action) { c.ExportReport(ctx, a.OrderID) },
	ActionLoadReports:      func(c *Controller, ctx context.Context, _ Action) { c.LoadReports(ctx) },
	ActionDeleteReport: func(c *Controller, ctx context.Context, a Action) {
		c.DeleteReport(ctx, a.Filename, c.confirmerFor(a))
	},
	ActionClearReports: func(c *Controller, ctx context.Context, a Action) {
		c.ClearReports(ctx, c.confirmerFor(a))
	},
	ActionUploadTemplate: func(c *Controller, ctx context.Context, a Action) { c.UploadTemplate(ctx, a.Upload) },
	ActionUploadLogo:     func(c *Controller, ctx context.Context, a Action) { c.UploadLogo(ctx, a.Upload) },
	ActionDismissAlert:   func(c *Controller, _ context.Context, a Action) { c.DismissAlert(a.AlertID) },
	ActionConfirm:        func(c *Controller, ctx context.Context, a Action) { c.resolvePending(ctx, a.Confirmed) },
}

// Dispatch runs the handler bound to the action's kind
func (c *Controller) Dispatch(ctx context.Context, a Action) error {
	h, ok := handlers[a.Kind]
	if !ok {
		return fmt.Errorf("unknown action %q", a.Kind)
	}
	h(c, ctx, a)
	return nil
}

// confirmerFor returns the configured confirmer, or one that parks the action until
// the user answers through ActionConfirm
func (c *Controller) confirmerFor(a Action) ports.Confirmer {
	if c.confirmer != nil {
		return c.confirmer
	}
	return ports.ConfirmFunc(func(_ context.Context, prompt string) bool {
		c.update(func(s *State) {
			s.PendingConfirm = &Confirmation{Action: a, Prompt: prompt}
		})
		return false
	})
}

var accept = ports.ConfirmFunc(func(context.Context, string) bool { return true })

// resolvePending answers the parked confirmation, running its action when accepted
func (c *Controller) resolvePending(ctx context.Context, confirmed bool) {
	var pending *Confirmation
	c.update(func(s *State) {
		pending = s.PendingConfirm
		s.PendingConfirm = nil
	})
	if pending == nil || !confirmed {
		return
	}

	a := pending.Action
	switch a.Kind {
	case ActionDeleteOrder:
		c.DeleteOrder(ctx, a.OrderID, accept)
	case ActionDeleteReport:
		c.DeleteReport(ctx, a.Filename, accept)
	case ActionClearReports:
		c.ClearReports(ctx, accept)
	default:
		c.logger.Warn("confirmation for an action that needs none")
	}
}
