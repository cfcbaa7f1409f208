package models

// Wire envelopes of the backend REST surface.

type OrdersResponse struct {
	Orders []string `json:"orders"`
}

type ChartResponse struct {
	ChartData ChartData `json:"chart_data"`
}

type OrderDetailResponse struct {
	Data       []Row `json:"data"`
	TotalItems int   `json:"total_items"`
}

// ActionResult is the success flag plus message every mutating endpoint returns.
// A false Success is a business outcome, not a transport failure.
type ActionResult struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

type ImportResult struct {
	ActionResult
	TotalRows int `json:"total_rows,omitempty"`
}

type DeleteOrderResult struct {
	ActionResult
	DeletedRows int `json:"deleted_rows,omitempty"`
}

type ExportResult struct {
	ActionResult
	FileURL       string `json:"file_url,omitempty"`
	DownloadURL   string `json:"download_url,omitempty"`
	SheetsCreated int    `json:"sheets_created,omitempty"`
}

type ClearReportsResult struct {
	ActionResult
	DeletedCount int `json:"deleted_count"`
}

// Report is one generated workbook in the archive
type Report struct {
	Filename    string `json:"filename"`
	OrderNo     string `json:"order_no"`
	FileSize    int64  `json:"file_size"`
	CreatedTime string `json:"created_time"`
}

type ReportsResponse struct {
	Reports []Report `json:"reports"`
}

// Success and Failure build plain action results
func Success(message string) ActionResult {
	return ActionResult{Success: true, Message: message}
}

func Failure(message string) ActionResult {
	return ActionResult{Success: false, Message: message}
}
