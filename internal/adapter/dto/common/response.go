package common

// Pagination is embedded in list responses so the page fields sit next to the items
type Pagination struct {
	Total      int64 `json:"total"`
	Page       int   `json:"page"`
	PageSize   int   `json:"page_size"`
	TotalPages int   `json:"total_pages"`
}

// NewPagination computes the page count for total items split by pageSize
func NewPagination(total int64, page, pageSize int) Pagination {
	p := Pagination{Total: total, Page: page, PageSize: pageSize}
	if pageSize > 0 {
		p.TotalPages = int((total + int64(pageSize) - 1) / int64(pageSize))
	}
	return p
}
