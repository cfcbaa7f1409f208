package orders

// Messages returned to the dashboard in action results.
const (
	msgImported           = "Import thành công: %d dòng"
	msgMissingColumns     = "Thiếu cột: %s"
	msgFailed             = "Lỗi: %s"
	msgSaveFailed         = "Lỗi khi lưu dữ liệu"
	msgOrderNotFound      = "Không tìm thấy đơn hàng"
	msgOrderDeleted       = "Đã xóa đơn hàng thành công"
	msgNoOrderData        = "Không có dữ liệu đơn hàng"
	msgTemplateMissing    = "Không tìm thấy file template: %s"
	msgExported           = "Xuất báo cáo thành công: %d mã hàng"
	msgExportFailed       = "Lỗi xuất báo cáo: %s"
	msgReportDeleted      = "Đã xóa báo cáo thành công"
	msgReportDeleteFailed = "Không thể xóa báo cáo"
	msgReportsCleared     = "Đã xóa %d báo cáo thành công"
	msgClearFailed        = "Lỗi xóa báo cáo: %s"
	msgTemplateOnlyXLSX   = "Chỉ chấp nhận file .xlsx"
	msgTemplateUpdated    = "Đã cập nhật template thành công"
	msgTemplateUploadFail = "Lỗi tải lên template: %s"
	msgLogoOnlyImages     = "Chỉ chấp nhận file PNG, JPG, JPEG"
	msgLogoUpdated        = "Đã cập nhật logo thành công"
	msgLogoUploadFail     = "Lỗi tải lên logo: %s"
)

const (
	// TemplateFile and LogoFile are the fixed names inside the template directory
	TemplateFile = "MAU.xlsx"
	LogoFile     = "logo.png"

	reportTimestamp = "20060102_150405"
	createdLayout   = "2006-01-02 15:04:05"
	chartLimit      = 5
)
