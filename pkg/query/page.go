package query

// Page bundles one page of rows with the total count of all rows
// matching the filter across every page.
type Page struct {
	Rows     []Row `json:"rows"`
	RowCount int   `json:"row_count"`
	Limit    int   `json:"limit"`
	Page     int   `json:"page"`
	Total    int64 `json:"total"`
}

// NewPage assembles a page result from the select rows and the count
// statement's single aggregate. Callers pass total = 0 when the count
// query produced no rows at all.
func NewPage(rows []Row, limit, page int, total int64) *Page {
	if rows == nil {
		rows = make([]Row, 0)
	}
	if page < 0 {
		page = 0
	}
	return &Page{
		Rows:     rows,
		RowCount: len(rows),
		Limit:    limit,
		Page:     page,
		Total:    total,
	}
}
