package types

import "fmt"

// AllowedPageSizes defines the page sizes the size changer offers.
var AllowedPageSizes = []int{10, 20, 50, 100}

const DefaultPageSize = 10

// Pagination is the server-driven paging view-model: 1-indexed page number,
// total record count from upstream, and the "Showing X to Y of Z" summary.
type Pagination struct {
	Page         int    `json:"page"`
	PageSize     int    `json:"pageSize"`
	TotalRecords int64  `json:"totalRecords"`
	TotalPages   int    `json:"totalPages"`
	From         int64  `json:"from"`
	To           int64  `json:"to"`
	Summary      string `json:"summary"`
}

// NormalizePageSize snaps a requested size onto the allowed list.
func NormalizePageSize(size int) int {
	for _, s := range AllowedPageSizes {
		if size == s {
			return size
		}
	}
	return DefaultPageSize
}

func NewPagination(page, pageSize int, totalRecords int64) Pagination {
	if page < 1 {
		page = 1
	}
	pageSize = NormalizePageSize(pageSize)

	totalPages := int((totalRecords + int64(pageSize) - 1) / int64(pageSize))

	var from, to int64
	if totalRecords > 0 {
		from = int64(page-1)*int64(pageSize) + 1
		to = int64(page) * int64(pageSize)
		if to > totalRecords {
			to = totalRecords
		}
	}

	return Pagination{
		Page:         page,
		PageSize:     pageSize,
		TotalRecords: totalRecords,
		TotalPages:   totalPages,
		From:         from,
		To:           to,
		Summary:      fmt.Sprintf("Showing %d to %d of %d events", from, to, totalRecords),
	}
}
