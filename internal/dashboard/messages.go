package dashboard

// User-facing texts shown by the dashboard.
const (
	MsgLoadDashboardFailed = "Có lỗi xảy ra khi tải dashboard"
	MsgNoChartData         = "Không có dữ liệu để hiển thị biểu đồ"
	MsgChooseExcelFile     = "Vui lòng chọn file Excel"
	MsgImportFailed        = "Có lỗi xảy ra khi import dữ liệu"
	MsgLoadOrdersFailed    = "Có lỗi xảy ra khi tải danh sách đơn hàng"
	MsgNoOrderData         = "Không có dữ liệu cho đơn hàng này"
	MsgLoadDetailFailed    = "Có lỗi xảy ra khi tải chi tiết đơn hàng"
	MsgConfirmDeleteOrder  = "Bạn có chắc muốn xóa đơn hàng \"%s\"?"
	MsgOrderDeleted        = "✅ Đã xóa đơn hàng thành công"
	MsgDeleteOrderFailed   = "Có lỗi xảy ra khi xóa đơn hàng"
	MsgChooseOrder         = "Vui lòng chọn đơn hàng"
	MsgExportFailed        = "Có lỗi xảy ra khi xuất báo cáo"
	MsgRefreshed           = "Đã làm mới dữ liệu"

	MsgLoadReportsFailed   = "Có lỗi xảy ra khi tải danh sách báo cáo"
	MsgConfirmDeleteReport = "Bạn có chắc muốn xóa báo cáo \"%s\"?"
	MsgConfirmClearReports = "Bạn có chắc muốn xóa tất cả báo cáo?"
	MsgDeleteReportFailed  = "Có lỗi xảy ra khi xóa báo cáo"
	MsgChooseTemplateFile  = "Vui lòng chọn file template"
	MsgUploadTemplateFail  = "Có lỗi xảy ra khi tải lên template"
	MsgChooseLogoFile      = "Vui lòng chọn file logo"
	MsgUploadLogoFailed    = "Có lỗi xảy ra khi tải lên logo"

	OrderPlaceholder = "-- Chọn đơn hàng --"

	ChartTitle  = "TOP 5 KHÁCH HÀNG CÓ NHIỀU ĐƠN NHẤT"
	ChartXLabel = "Khách hàng"
	ChartYLabel = "Số đơn hàng"
)

const (
	successPrefix = "✅ "
	failurePrefix = "❌ "
)
