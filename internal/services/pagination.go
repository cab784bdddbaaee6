package services

// PageInfo describes one page of a paginated result set. Pages are
// zero-based, matching the query parameters the storefront sends.
type PageInfo struct {
	CurrentPage int
	TotalPages  int
	TotalItems  int64
}

func newPageInfo(page, size int, total int64) PageInfo {
	totalPages := 0
	if size > 0 {
		totalPages = int((total + int64(size) - 1) / int64(size))
	}
	return PageInfo{CurrentPage: page, TotalPages: totalPages, TotalItems: total}
}
