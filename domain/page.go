package domain

import "strings"

const (
	DefaultPageSize = 10
	MaxPageSize     = 100

	SortCreatedAt = "created_at"
	SortDueDate   = "due_date"
	SortTitle     = "title"
	SortStatus    = "status"

	OrderAsc  = "asc"
	OrderDesc = "desc"
)

// PageRequest describes which slice of a user's tasks to retrieve.
// It never mutates state.
type PageRequest struct {
	Page  int    `json:"page"`
	Size  int    `json:"size"`
	Sort  string `json:"sort"`
	Order string `json:"order"`
}

// Normalized returns a copy with defaults applied and unknown sort keys
// replaced, so every consumer (store, cache key) sees the same request.
func (p PageRequest) Normalized() PageRequest {
	if p.Page < 0 {
		p.Page = 0
	}
	if p.Size <= 0 {
		p.Size = DefaultPageSize
	}
	if p.Size > MaxPageSize {
		p.Size = MaxPageSize
	}
	switch p.Sort {
	case SortCreatedAt, SortDueDate, SortTitle, SortStatus:
	default:
		p.Sort = SortCreatedAt
	}
	if strings.ToLower(p.Order) == OrderAsc {
		p.Order = OrderAsc
	} else {
		p.Order = OrderDesc
	}
	return p
}

// TaskPage is one page of a task listing.
type TaskPage struct {
	Items      []Task `json:"items"`
	Page       int    `json:"page"`
	Size       int    `json:"size"`
	TotalItems int64  `json:"total_items"`
	TotalPages int    `json:"total_pages"`
}
