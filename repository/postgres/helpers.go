package postgres

import (
	"fmt"
	"time"

	"github.com/taskmaster/backend/domain"
)

// orderClause builds the ORDER BY expression from a normalized page request.
// Sort keys are whitelisted during normalization, so the value is safe to
// interpolate.
func orderClause(page domain.PageRequest) string {
	direction := "DESC"
	if page.Order == domain.OrderAsc {
		direction = "ASC"
	}
	return fmt.Sprintf("%s %s", page.Sort, direction)
}

func totalPages(total int64, size int) int {
	if size <= 0 {
		return 0
	}
	pages := total / int64(size)
	if total%int64(size) != 0 {
		pages++
	}
	return int(pages)
}

func nullTime(t time.Time) interface{} {
	if t.IsZero() {
		return nil
	}
	return t
}
