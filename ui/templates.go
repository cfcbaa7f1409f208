package ui

import (
	"bytes"
	"fmt"
	"html/template"
	"net/http"
	"net/url"

	"burntest/internal/dashboard"
	"burntest/internal/orders"

	"go.uber.org/zap"
)

// sectionTab is one entry of the section navigation
type sectionTab struct {
	Name  string
	Label string
}

var sectionTabs = []sectionTab{
	{Name: string(dashboard.SectionDashboard), Label: "Dashboard"},
	{Name: string(dashboard.SectionOrders), Label: "Đơn hàng"},
	{Name: string(dashboard.SectionReports), Label: "Báo cáo"},
	{Name: string(dashboard.SectionOthers), Label: "Template"},
}

// pageData is what dashboard.html renders
type pageData struct {
	State    dashboard.State
	Sections []sectionTab
	// Download is a backend file URL to fetch once through a hidden frame
	Download string
}

type selectData struct {
	Options  []dashboard.Option
	Selected string
}

var templateFuncs = template.FuncMap{
	"alertsIn": func(s dashboard.State, container string) []dashboard.Alert {
		var out []dashboard.Alert
		for _, a := range s.Alerts {
			if a.Container == container {
				out = append(out, a)
			}
		}
		return out
	},
	"options": func(opts []dashboard.Option, selected string) selectData {
		return selectData{Options: opts, Selected: selected}
	},
	"add":   func(a, b float64) float64 { return a + b },
	"sub":   func(a, b float64) float64 { return a - b },
	"half":  func(n int) float64 { return float64(n) / 2 },
	"half2": func(v float64) float64 { return v / 2 },
	"float": func(n int) float64 { return float64(n) },
	"fileSize": func(n int64) string {
		switch {
		case n >= 1<<20:
			return fmt.Sprintf("%.1f MB", float64(n)/(1<<20))
		case n >= 1<<10:
			return fmt.Sprintf("%.1f KB", float64(n)/(1<<10))
		}
		return fmt.Sprintf("%d B", n)
	},
	"downloadPath": func(filename string) string {
		return orders.DownloadPath + url.PathEscape(filename)
	},
}

// renderTemplate renders to a buffer first so a template error never leaves a half page
func (a *App) renderTemplate(w http.ResponseWriter, name string, data interface{}) {
	var buf bytes.Buffer
	if err := a.templates.ExecuteTemplate(&buf, name, data); err != nil {
		a.logger.Error("template error", zap.String("template", name), zap.Error(err))
		http.Error(w, "Template rendering failed", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(http.StatusOK)
	if _, err := buf.WriteTo(w); err != nil {
		a.logger.Warn("failed to write page", zap.Error(err))
	}
}
