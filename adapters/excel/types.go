package excel

// SheetData is one worksheet read as text: trimmed headers plus data rows.
// Rows may be shorter than Headers; missing cells are empty.
type SheetData struct {
	Headers []string
	Rows    [][]string
}

// Cell returns the value of column j in row i, or "" when the row is short
func (s *SheetData) Cell(i, j int) string {
	if i < 0 || i >= len(s.Rows) || j < 0 || j >= len(s.Rows[i]) {
		return ""
	}
	return s.Rows[i][j]
}
