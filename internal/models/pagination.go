package models

import "math"

// MaxPageSize is the enforced ceiling for every listing operation
const MaxPageSize = 100

// Pagination describes a page of a listing. Total always reflects the number
// of items the viewer can actually see, not a storage-level superset.
type Pagination struct {
	Page  int   `json:"page"`
	Limit int   `json:"limit"`
	Total int64 `json:"total"`
	Pages int   `json:"pages"`
}

// NewPagination builds pagination metadata from a visible total
func NewPagination(page, limit int, total int64) Pagination {
	return Pagination{
		Page:  page,
		Limit: limit,
		Total: total,
		Pages: int(math.Ceil(float64(total) / float64(limit))),
	}
}

// ClampPage normalizes page/limit query values against a default and the
// global ceiling
func ClampPage(page, limit, defaultLimit int) (int, int) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = defaultLimit
	}
	if limit > MaxPageSize {
		limit = MaxPageSize
	}
	return page, limit
}
