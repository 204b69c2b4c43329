package task

import (
	"context"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/taskmaster/backend/domain"
	"github.com/taskmaster/backend/repository"
)

// Input carries the caller-supplied task fields. Status is a free-text token
// normalized per operation; a nil Status means the field was absent.
type Input struct {
	Title       string
	Description string
	Status      *string
	DueDate     *time.Time
}

// UseCase orchestrates the task lifecycle: ownership-scoped CRUD, paginated
// listing with a read cache, and the per-status analytics view. Every
// operation resolves the authenticated principal to its user record first;
// no caller-supplied user id is ever trusted.
type UseCase struct {
	tasks  repository.TaskRepository
	users  repository.UserRepository
	cache  repository.ListCache
	logger *zap.Logger
}

func New(tasks repository.TaskRepository, users repository.UserRepository, cache repository.ListCache, logger *zap.Logger) *UseCase {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &UseCase{
		tasks:  tasks,
		users:  users,
		cache:  cache,
		logger: logger,
	}
}

// List returns one page of the principal's tasks. An unparseable status
// filter is dropped and the unfiltered list returned, mirroring the
// forgiving normalization policy for reads.
func (uc *UseCase) List(ctx context.Context, principal, statusFilter string, page domain.PageRequest) (*domain.TaskPage, error) {
	user, err := uc.resolveUser(ctx, principal)
	if err != nil {
		return nil, err
	}

	var filter *domain.Status
	if statusFilter != "" {
		if parsed, ok := domain.ParseStatus(statusFilter); ok {
			filter = &parsed
		}
	}

	key := repository.NewListKey(user.ID, filter, page)
	if cached := uc.cacheGet(ctx, key); cached != nil {
		return cached, nil
	}

	result, err := uc.tasks.FindPage(ctx, user.ID, filter, page)
	if err != nil {
		return nil, err
	}

	uc.cachePut(ctx, key, result)
	return result, nil
}

// Get loads a single task. A task that does not exist and a task owned by
// another user are reported identically as not found.
func (uc *UseCase) Get(ctx context.Context, principal, id string) (*domain.Task, error) {
	user, err := uc.resolveUser(ctx, principal)
	if err != nil {
		return nil, err
	}
	return uc.tasks.FindByID(ctx, id, user.ID)
}

func (uc *UseCase) Create(ctx context.Context, principal string, in Input) (*domain.Task, error) {
	user, err := uc.resolveUser(ctx, principal)
	if err != nil {
		return nil, err
	}

	if strings.TrimSpace(in.Title) == "" {
		return nil, domain.NewError(domain.ErrCodeInvalid, "title is required")
	}

	task := &domain.Task{
		UserID:      user.ID,
		Title:       in.Title,
		Description: in.Description,
		Status:      domain.NormalizeCreateStatus(in.Status),
		DueDate:     in.DueDate,
		CreatedAt:   time.Now(),
	}

	created, err := uc.tasks.Save(ctx, task)
	if err != nil {
		return nil, err
	}

	uc.evict(ctx, user.ID)
	return created, nil
}

func (uc *UseCase) Update(ctx context.Context, principal, id string, in Input) (*domain.Task, error) {
	user, err := uc.resolveUser(ctx, principal)
	if err != nil {
		return nil, err
	}

	task, err := uc.tasks.FindByID(ctx, id, user.ID)
	if err != nil {
		return nil, err
	}

	// Title, description and due date are overwritten unconditionally; an
	// unrecognized status token keeps the previous status while the rest of
	// the update still lands.
	task.Title = in.Title
	task.Description = in.Description
	task.DueDate = in.DueDate
	task.Status = domain.NormalizeUpdateStatus(in.Status, task.Status)

	updated, err := uc.tasks.Save(ctx, task)
	if err != nil {
		return nil, err
	}

	uc.evict(ctx, user.ID)
	return updated, nil
}

func (uc *UseCase) Delete(ctx context.Context, principal, id string) error {
	user, err := uc.resolveUser(ctx, principal)
	if err != nil {
		return err
	}

	task, err := uc.tasks.FindByID(ctx, id, user.ID)
	if err != nil {
		return err
	}

	if err := uc.tasks.Delete(ctx, task.ID, user.ID); err != nil {
		return err
	}

	uc.evict(ctx, user.ID)
	return nil
}

// Analytics reports the principal's task count per status. Every known
// status is present even when its count is zero, and a TOTAL_TASKS entry
// carries the sum. Computed fresh on each call.
func (uc *UseCase) Analytics(ctx context.Context, principal string) (map[string]int64, error) {
	user, err := uc.resolveUser(ctx, principal)
	if err != nil {
		return nil, err
	}

	counts, err := uc.tasks.CountByStatus(ctx, user.ID)
	if err != nil {
		return nil, err
	}

	stats := make(map[string]int64, len(domain.Statuses())+1)
	for _, status := range domain.Statuses() {
		stats[string(status)] = 0
	}
	for _, sc := range counts {
		stats[string(sc.Status)] = sc.Count
	}

	var total int64
	for _, count := range stats {
		total += count
	}
	stats[domain.TotalTasksKey] = total

	return stats, nil
}

func (uc *UseCase) resolveUser(ctx context.Context, principal string) (*domain.User, error) {
	if principal == "" {
		return nil, domain.ErrUnauthorized
	}
	return uc.users.GetByUsername(ctx, principal)
}

func (uc *UseCase) cacheGet(ctx context.Context, key repository.ListKey) *domain.TaskPage {
	if uc.cache == nil {
		return nil
	}
	page, err := uc.cache.Get(ctx, key)
	if err != nil {
		uc.logger.Warn("list cache read failed", zap.String("key", key.String()), zap.Error(err))
		return nil
	}
	return page
}

func (uc *UseCase) cachePut(ctx context.Context, key repository.ListKey, page *domain.TaskPage) {
	if uc.cache == nil {
		return
	}
	if err := uc.cache.Put(ctx, key, page); err != nil {
		uc.logger.Warn("list cache write failed", zap.String("key", key.String()), zap.Error(err))
	}
}

func (uc *UseCase) evict(ctx context.Context, userID string) {
	if uc.cache == nil {
		return
	}
	if err := uc.cache.EvictAll(ctx, userID); err != nil {
		uc.logger.Error("list cache eviction failed", zap.String("user_id", userID), zap.Error(err))
	}
}
