package dashboard

import (
	"burntest/models"
)

// Section is one of the page's top-level panels
type Section string

const (
	SectionDashboard Section = "dashboard"
	SectionOrders    Section = "orders"
	SectionReports   Section = "reports"
	SectionOthers    Section = "others"
)

// Sections lists the panels in page order
var Sections = []Section{SectionDashboard, SectionOrders, SectionReports, SectionOthers}

// ParseSection reports whether name is a known section
func ParseSection(name string) (Section, bool) {
	for _, s := range Sections {
		if string(s) == name {
			return s, true
		}
	}
	return "", false
}

// Option is an entry of an order select list
type Option struct {
	Value string
	Label string
}

// Stats are the four dashboard counters
type Stats struct {
	TotalOrders    int
	TotalCustomers int
	TotalProducts  int
	TotalRows      int
}

// DetailView is the rendered order detail panel. When Message is set the order
// had no lines and the table is empty.
type DetailView struct {
	OrderID string
	Message string
	Header  []string
	Rows    [][]string
}

// HasTable reports whether the view carries a table (and its delete button)
func (d *DetailView) HasTable() bool {
	return d != nil && d.Message == ""
}

// Confirmation is a destructive action waiting for the user's answer
type Confirmation struct {
	Action Action
	Prompt string
}

// State is everything the dashboard page shows
type State struct {
	Section Section

	OrderOptions   []Option
	ExportOptions  []Option
	SelectedOrder  string
	SelectedExport string
	// FileInput is the name of the file picked for import; cleared after a successful import
	FileInput string

	Stats            Stats
	Chart            *ChartView
	ChartPlaceholder string
	Detail           *DetailView

	Reports []models.Report

	Alerts          []Alert
	PendingConfirm  *Confirmation
	PendingDownload string
}

// VisibleSection reports whether s is the section currently shown
func (s State) VisibleSection(name string) bool {
	return string(s.Section) == name
}

func (s State) clone() State {
	out := s
	out.OrderOptions = append([]Option(nil), s.OrderOptions...)
	out.ExportOptions = append([]Option(nil), s.ExportOptions...)
	out.Reports = append([]models.Report(nil), s.Reports...)
	out.Alerts = append([]Alert(nil), s.Alerts...)
	if s.Chart != nil {
		chart := *s.Chart
		chart.Bars = append([]Bar(nil), s.Chart.Bars...)
		chart.Ticks = append([]Tick(nil), s.Chart.Ticks...)
		out.Chart = &chart
	}
	if s.Detail != nil {
		detail := *s.Detail
		detail.Header = append([]string(nil), s.Detail.Header...)
		detail.Rows = make([][]string, len(s.Detail.Rows))
		for i, row := range s.Detail.Rows {
			detail.Rows[i] = append([]string(nil), row...)
		}
		out.Detail = &detail
	}
	if s.PendingConfirm != nil {
		pending := *s.PendingConfirm
		out.PendingConfirm = &pending
	}
	return out
}

// selectOptions builds a select list: the placeholder followed by one option per id
func selectOptions(ids []string) []Option {
	options := make([]Option, 0, len(ids)+1)
	options = append(options, Option{Value: "", Label: OrderPlaceholder})
	for _, id := range ids {
		options = append(options, Option{Value: id, Label: id})
	}
	return options
}

// buildDetail lays the rows out on the keys of the first row
func buildDetail(orderID string, rows []models.Row) *DetailView {
	if len(rows) == 0 {
		return &DetailView{OrderID: orderID, Message: MsgNoOrderData}
	}
	header := rows[0].Keys()
	body := make([][]string, len(rows))
	for i, row := range rows {
		body[i] = row.Project(header)
	}
	return &DetailView{OrderID: orderID, Header: header, Rows: body}
}
