package repository

import (
	"context"
	"fmt"

	"github.com/taskmaster/backend/domain"
)

// ListKey identifies one cached list result. Two requests that would produce
// the same page produce the same key.
type ListKey struct {
	UserID string
	Status *domain.Status
	Page   int
	Size   int
	Sort   string
	Order  string
}

// NewListKey builds a key from a normalized page request.
func NewListKey(userID string, status *domain.Status, page domain.PageRequest) ListKey {
	page = page.Normalized()
	return ListKey{
		UserID: userID,
		Status: status,
		Page:   page.Page,
		Size:   page.Size,
		Sort:   page.Sort,
		Order:  page.Order,
	}
}

func (k ListKey) String() string {
	filter := "*"
	if k.Status != nil {
		filter = string(*k.Status)
	}
	return fmt.Sprintf("%s|%s|%d|%d|%s,%s", k.UserID, filter, k.Page, k.Size, k.Sort, k.Order)
}

// ListCache memoizes list query results. Get returns (nil, nil) on a miss.
// EvictAll drops every entry cached for the given user, regardless of filter
// or page; mutations rely on this coarse invalidation for coherence.
type ListCache interface {
	Get(ctx context.Context, key ListKey) (*domain.TaskPage, error)
	Put(ctx context.Context, key ListKey, page *domain.TaskPage) error
	EvictAll(ctx context.Context, userID string) error
}
