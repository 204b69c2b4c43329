package repository

import (
	"context"

	"github.com/taskmaster/backend/domain"
)

// TaskRepository is the persistence adapter for tasks. Every lookup is
// scoped by the owning user at the query level; a task belonging to another
// user is indistinguishable from a missing one.
type TaskRepository interface {
	FindPage(ctx context.Context, userID string, status *domain.Status, page domain.PageRequest) (*domain.TaskPage, error)
	FindByID(ctx context.Context, id, userID string) (*domain.Task, error)
	Save(ctx context.Context, task *domain.Task) (*domain.Task, error)
	Delete(ctx context.Context, id, userID string) error
	CountByStatus(ctx context.Context, userID string) ([]domain.StatusCount, error)
}
