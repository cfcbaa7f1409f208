package models

// Canonical spreadsheet columns
const (
	ColCustomer    = "KHÁCH HÀNG"
	ColOrder       = "ĐƠN HÀNG"
	ColProductCode = "MÃ HÀNG"
	ColSize        = "KÍCH THƯỚC"
	ColWick        = "BẤC"
	ColColor       = "MÀU"
	ColFragrance   = "HƯƠNG LIỆU"
	ColCreatedAt   = "NGÀY_TẠO"
)

// CanonicalColumns is the column order of an empty data table
var CanonicalColumns = []string{
	ColCustomer, ColOrder, ColProductCode, ColSize, ColWick, ColColor, ColFragrance, ColCreatedAt,
}

// RequiredColumns must be present in every imported sheet
var RequiredColumns = []string{ColCustomer, ColOrder, ColProductCode}

// ColumnAliases maps a canonical column to the headers accepted for it, in priority order
var ColumnAliases = map[string][]string{
	ColCustomer:    {"KHÁCH HÀNG", "CUSTOMER", "TEN_KHACH_HANG"},
	ColOrder:       {"ĐƠN HÀNG", "ORDER", "MA_DON_HANG"},
	ColProductCode: {"MÃ HÀNG", "PRODUCT_CODE", "MA_HANG"},
	ColSize:        {"KÍCH THƯỚC", "SIZE", "KICH_THUOC"},
	ColWick:        {"BẤC", "WICK", "Bac"},
	ColColor:       {"MÀU", "COLOR", "MAU"},
	ColFragrance:   {"HƯƠNG LIỆU", "FRAGRANCE", "HUONG_LIEU"},
}

// LineKey identifies a line inside the data table; a newer import replaces an older line
// with the same key.
type LineKey struct {
	Order       string
	ProductCode string
}

// KeyOf returns the identity of a line
func KeyOf(r Row) LineKey {
	return LineKey{Order: r.Value(ColOrder), ProductCode: r.Value(ColProductCode)}
}

// CustomerCount is the number of distinct orders placed by one customer
type CustomerCount struct {
	Customer string
	Orders   int
}

// ChartData pairs customer names with their order counts by index
type ChartData struct {
	Customers   []string `json:"customers"`
	OrderCounts []int    `json:"order_counts"`
}

// DistinctProductCodes counts distinct product codes; rows without one count as one blank code
func DistinctProductCodes(rows []Row) int {
	seen := make(map[string]struct{}, len(rows))
	for _, r := range rows {
		seen[r.Value(ColProductCode)] = struct{}{}
	}
	return len(seen)
}
