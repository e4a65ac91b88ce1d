package search

// PaginationInfo describes the caller's window into the result set.
type PaginationInfo struct {
	CurrentPage  int   `json:"current_page"`
	PerPage      int   `json:"per_page"`
	TotalCount   int64 `json:"total_count"`
	TotalPages   int   `json:"total_pages"`
	HasNext      bool  `json:"has_next"`
	HasPrev      bool  `json:"has_prev"`
	ShowingStart int64 `json:"showing_start"`
	ShowingEnd   int64 `json:"showing_end"`
}

// Paginate computes page metadata for a page/perPage window over totalCount
// rows. ShowingStart/ShowingEnd are 1-based and both zero on an empty set.
func Paginate(page, perPage int, totalCount int64) PaginationInfo {
	if page < 1 {
		page = 1
	}
	if perPage < 1 {
		perPage = defaultPerPage
	}

	totalPages := int(totalCount) / perPage
	if int(totalCount)%perPage > 0 {
		totalPages++
	}

	info := PaginationInfo{
		CurrentPage: page,
		PerPage:     perPage,
		TotalCount:  totalCount,
		TotalPages:  totalPages,
		HasNext:     page < totalPages,
		HasPrev:     page > 1 && totalCount > 0,
	}

	if totalCount > 0 && page <= totalPages {
		start := int64(page-1)*int64(perPage) + 1
		end := start + int64(perPage) - 1
		if end > totalCount {
			end = totalCount
		}
		info.ShowingStart = start
		info.ShowingEnd = end
	}
	return info
}

// Offset converts a page/perPage window into a row offset.
func Offset(page, perPage int) int {
	if page < 1 {
		page = 1
	}
	return (page - 1) * perPage
}
