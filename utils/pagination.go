package utils

import (
	"net/http"
	"strconv"
)

// Pagination is the metadata block returned alongside every paginated list.
type Pagination struct {
	CurrentPage int64 `json:"currentPage"`
	TotalPages  int64 `json:"totalPages"`
	TotalItems  int64 `json:"totalItems"`
	Limit       int64 `json:"limit"`
}

// ParsePagination reads page and limit from the query string, falling back
// to page 1 and the given default limit on absent or malformed values.
func ParsePagination(r *http.Request, defaultLimit int64) (page, limit int64) {
	page = 1
	limit = defaultLimit
	if v, err := strconv.ParseInt(r.URL.Query().Get("page"), 10, 64); err == nil && v > 0 {
		page = v
	}
	if v, err := strconv.ParseInt(r.URL.Query().Get("limit"), 10, 64); err == nil && v > 0 {
		limit = v
	}
	return page, limit
}

// NewPagination computes the metadata block for a page of a total result set.
func NewPagination(page, limit, total int64) Pagination {
	totalPages := total / limit
	if total%limit != 0 {
		totalPages++
	}
	return Pagination{
		CurrentPage: page,
		TotalPages:  totalPages,
		TotalItems:  total,
		Limit:       limit,
	}
}
