package view

// PageInfo describes where a requested page sits within the full result set
type PageInfo struct {
	ItemsOnPage  int
	LastPage     int
	HasMorePages bool
}

// Paginate maps a total count, page size and requested page to the page
// metrics the view needs. It never clamps and never errors: a page past the
// end simply yields zero items, and steering away from such pages is the
// controller's job.
func Paginate(totalCount, pageSize, requestedPage int) PageInfo {
	lastPage := (totalCount + pageSize - 1) / pageSize
	if lastPage < 1 {
		lastPage = 1
	}

	items := totalCount - (requestedPage-1)*pageSize
	if items > pageSize {
		items = pageSize
	}
	if items < 0 {
		items = 0
	}

	return PageInfo{
		ItemsOnPage:  items,
		LastPage:     lastPage,
		HasMorePages: requestedPage < lastPage,
	}
}
